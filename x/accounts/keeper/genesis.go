package keeper

import (
	"context"

	"github.com/pushchain/dpos-core/x/accounts/types"
)

// InitGenesis initializes the module's state from a genesis state.
func (k *Keeper) InitGenesis(ctx context.Context, data *types.GenesisState) error {
	if err := data.Validate(); err != nil {
		return err
	}
	if err := k.Params.Set(ctx, data.Params); err != nil {
		return err
	}

	var maxAccount, maxPermission, maxLink uint64
	for _, acc := range data.Accounts {
		if err := k.Accounts.Set(ctx, acc.ID, acc); err != nil {
			return err
		}
		maxAccount = max(maxAccount, acc.ID)
	}
	for _, p := range data.Permissions {
		if err := k.Permissions.Set(ctx, p.ID, p); err != nil {
			return err
		}
		maxPermission = max(maxPermission, p.ID)
	}
	for _, l := range data.Links {
		if err := k.Links.Set(ctx, l.ID, l); err != nil {
			return err
		}
		maxLink = max(maxLink, l.ID)
	}

	// sequences hold the last id handed out
	if err := k.AccountSeq.Set(ctx, maxAccount); err != nil {
		return err
	}
	if err := k.PermissionSeq.Set(ctx, maxPermission); err != nil {
		return err
	}
	return k.LinkSeq.Set(ctx, maxLink)
}

// ExportGenesis exports the module's state to a genesis state.
func (k *Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	gs := &types.GenesisState{Params: params}
	if gs.Accounts, err = k.GetAllAccounts(ctx); err != nil {
		return nil, err
	}
	err = k.Permissions.Walk(ctx, nil, func(_ uint64, p types.Permission) (bool, error) {
		gs.Permissions = append(gs.Permissions, p)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	err = k.Links.Walk(ctx, nil, func(_ uint64, l types.ActionPermission) (bool, error) {
		gs.Links = append(gs.Links, l)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return gs, nil
}
