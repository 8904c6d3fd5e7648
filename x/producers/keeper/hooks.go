package keeper

import (
	"context"

	tokentypes "github.com/pushchain/dpos-core/x/token/types"
)

var _ tokentypes.StakeHooks = Hooks{}

// Hooks keeps producer vote totals in step with voter stake.
type Hooks struct {
	k *Keeper
}

// Hooks returns the stake hooks of the keeper.
func (k *Keeper) Hooks() Hooks {
	return Hooks{k}
}

// AfterStakeChanged recasts the existing votes of account with its new stake.
func (h Hooks) AfterStakeChanged(ctx context.Context, account string) error {
	acc, err := h.k.accountKeeper.GetAccount(ctx, account)
	if err != nil {
		return err
	}
	if len(acc.Producers) == 0 {
		return nil
	}
	return h.k.updateVotes(ctx, acc, acc.Producers, false)
}
