package types

import (
	errorsmod "cosmossdk.io/errors"
)

// GenesisState is the full producers state.
type GenesisState struct {
	Params    Params           `json:"params"`
	Global    GlobalState      `json:"global"`
	Producers []Producer       `json:"producers"`
	Schedule  ProducerSchedule `json:"schedule"`
}

// DefaultGenesis returns the default genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.ValidateBasic(); err != nil {
		return err
	}

	var unpaid uint64
	owners := make(map[string]struct{}, len(gs.Producers))
	for _, p := range gs.Producers {
		if p.Owner == "" {
			return errorsmod.Wrap(ErrInvalidGenesis, "producer without owner")
		}
		if _, dup := owners[p.Owner]; dup {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate producer %s", p.Owner)
		}
		if p.TotalVotes < 0 {
			return errorsmod.Wrapf(ErrInvalidGenesis, "producer %s has negative votes", p.Owner)
		}
		owners[p.Owner] = struct{}{}
		unpaid += uint64(p.UnpaidBlocks)
	}
	if unpaid != uint64(gs.Global.TotalUnpaidBlocks) {
		return errorsmod.Wrapf(ErrInvalidGenesis, "producers hold %d unpaid blocks, global state %d", unpaid, gs.Global.TotalUnpaidBlocks)
	}
	if gs.Global.PervoteBucket < 0 || gs.Global.PerblockBucket < 0 || gs.Global.Savings < 0 {
		return errorsmod.Wrap(ErrInvalidGenesis, "negative bucket")
	}
	return nil
}
