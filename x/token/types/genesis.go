package types

import (
	errorsmod "cosmossdk.io/errors"
)

// GenesisState holds the token params and the outstanding supply. Balances
// live on the accounts and must add up to Supply.
type GenesisState struct {
	Params Params `json:"params"`
	Supply int64  `json:"supply"`
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
	if gs.Supply < 0 || gs.Supply > gs.Params.MaxSupply {
		return errorsmod.Wrapf(ErrInvalidGenesis, "supply %d outside [0, %d]", gs.Supply, gs.Params.MaxSupply)
	}
	return nil
}
