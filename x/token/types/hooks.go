package types

import (
	"context"
)

// StakeHooks lets other modules react to changes of an account's stake.
type StakeHooks interface {
	// Called after the staked amount of account changed
	AfterStakeChanged(ctx context.Context, account string) error
}

// MultiStakeHooks allows multiple modules to listen to the same events.
type MultiStakeHooks []StakeHooks

// NewMultiStakeHooks creates a new combined hook instance.
func NewMultiStakeHooks(hooks ...StakeHooks) MultiStakeHooks {
	return hooks
}

// AfterStakeChanged calls every hook in the list, stopping at the first error.
func (mh MultiStakeHooks) AfterStakeChanged(ctx context.Context, account string) error {
	for _, h := range mh {
		if err := h.AfterStakeChanged(ctx, account); err != nil {
			return err
		}
	}
	return nil
}
