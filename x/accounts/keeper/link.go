package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	"github.com/pushchain/dpos-core/x/accounts/types"
)

// LinkAuth makes requirement, a permission of account, the one required when
// account acts under scope. An existing link for the same scope is replaced.
func (k Keeper) LinkAuth(ctx context.Context, account string, scope types.PermissionLevel, requirement string) (types.ActionPermission, error) {
	acc, err := k.GetAccount(ctx, account)
	if err != nil {
		return types.ActionPermission{}, err
	}
	scopePerm, err := k.GetPermissionLevel(ctx, scope)
	if err != nil {
		return types.ActionPermission{}, err
	}
	required, err := k.GetPermission(ctx, acc.ID, requirement)
	if err != nil {
		return types.ActionPermission{}, err
	}

	link, found, err := k.getLink(ctx, acc.ID, scopePerm.ID)
	if err != nil {
		return types.ActionPermission{}, err
	}
	if !found {
		id, err := nextID(ctx, k.LinkSeq)
		if err != nil {
			return types.ActionPermission{}, err
		}
		link = types.ActionPermission{
			ID:              id,
			Owner:           acc.ID,
			ScopePermission: scopePerm.ID,
		}
	}
	link.OwnerPermission = required.ID

	if err := k.Links.Set(ctx, link.ID, link); err != nil {
		return types.ActionPermission{}, err
	}
	k.Logger().Info("action permission linked", "account", account, "scope", scope.String(), "requirement", requirement)
	return link, nil
}

// UnlinkAuth removes the link of account for scope.
func (k Keeper) UnlinkAuth(ctx context.Context, account string, scope types.PermissionLevel) error {
	acc, err := k.GetAccount(ctx, account)
	if err != nil {
		return err
	}
	scopePerm, err := k.GetPermissionLevel(ctx, scope)
	if err != nil {
		return err
	}

	link, found, err := k.getLink(ctx, acc.ID, scopePerm.ID)
	if err != nil {
		return err
	}
	if !found {
		return errorsmod.Wrapf(types.ErrLinkNotFound, "%s under %s", account, scope)
	}
	return k.Links.Remove(ctx, link.ID)
}

// getLink returns the link for (owner, scope), reporting false when none exists.
func (k Keeper) getLink(ctx context.Context, owner, scope uint64) (types.ActionPermission, bool, error) {
	id, err := k.Links.Indexes.Scope.MatchExact(ctx, collections.Join(owner, scope))
	if err != nil {
		if isNotFound(err) {
			return types.ActionPermission{}, false, nil
		}
		return types.ActionPermission{}, false, err
	}
	link, err := k.Links.Get(ctx, id)
	if err != nil {
		return types.ActionPermission{}, false, err
	}
	return link, true, nil
}
