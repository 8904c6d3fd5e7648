package types

import (
	errorsmod "cosmossdk.io/errors"
)

// GenesisState is the full accounts state: records keep their ids so that
// an export can be imported unchanged.
type GenesisState struct {
	Params      Params             `json:"params"`
	Accounts    []Account          `json:"accounts"`
	Permissions []Permission       `json:"permissions"`
	Links       []ActionPermission `json:"links,omitempty"`
}

// DefaultGenesis returns the default genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
	}
}

// AddAccount appends an account whose owner and active permissions are both
// controlled by key, allocating the next free ids.
func (gs *GenesisState) AddAccount(name, key string, balance int64) Account {
	acc := Account{
		ID:      uint64(len(gs.Accounts)) + 1,
		Name:    name,
		Balance: balance,
	}
	gs.Accounts = append(gs.Accounts, acc)

	owner := Permission{
		ID:    uint64(len(gs.Permissions)) + 1,
		Owner: acc.ID,
		Name:  OwnerPermission,
		Auth:  NewKeyAuthority(key),
	}
	active := Permission{
		ID:     owner.ID + 1,
		Owner:  acc.ID,
		Parent: owner.ID,
		Name:   ActivePermission,
		Auth:   NewKeyAuthority(key),
	}
	gs.Permissions = append(gs.Permissions, owner, active)
	return acc
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.ValidateBasic(); err != nil {
		return err
	}

	accounts := make(map[uint64]struct{}, len(gs.Accounts))
	names := make(map[string]struct{}, len(gs.Accounts))
	for _, acc := range gs.Accounts {
		if err := acc.ValidateBasic(); err != nil {
			return err
		}
		if _, dup := accounts[acc.ID]; dup {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate account id %d", acc.ID)
		}
		if _, dup := names[acc.Name]; dup {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate account name %s", acc.Name)
		}
		accounts[acc.ID] = struct{}{}
		names[acc.Name] = struct{}{}
	}

	perms := make(map[uint64]Permission, len(gs.Permissions))
	for _, p := range gs.Permissions {
		if p.ID == 0 {
			return errorsmod.Wrap(ErrInvalidGenesis, "permission id must be positive")
		}
		if _, dup := perms[p.ID]; dup {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate permission id %d", p.ID)
		}
		if _, ok := accounts[p.Owner]; !ok {
			return errorsmod.Wrapf(ErrInvalidGenesis, "permission %d owned by unknown account %d", p.ID, p.Owner)
		}
		if err := ValidateName(p.Name); err != nil {
			return err
		}
		if err := p.Auth.ValidateBasic(); err != nil {
			return err
		}
		perms[p.ID] = p
	}
	for _, p := range gs.Permissions {
		if p.IsRoot() {
			continue
		}
		parent, ok := perms[p.Parent]
		if !ok || parent.Owner != p.Owner {
			return errorsmod.Wrapf(ErrInvalidGenesis, "permission %d has an invalid parent %d", p.ID, p.Parent)
		}
	}

	for _, l := range gs.Links {
		if _, ok := accounts[l.Owner]; !ok {
			return errorsmod.Wrapf(ErrInvalidGenesis, "link %d owned by unknown account %d", l.ID, l.Owner)
		}
		if _, ok := perms[l.ScopePermission]; !ok {
			return errorsmod.Wrapf(ErrInvalidGenesis, "link %d has unknown scope %d", l.ID, l.ScopePermission)
		}
		if req, ok := perms[l.OwnerPermission]; !ok || req.Owner != l.Owner {
			return errorsmod.Wrapf(ErrInvalidGenesis, "link %d requires an invalid permission %d", l.ID, l.OwnerPermission)
		}
	}
	return nil
}
