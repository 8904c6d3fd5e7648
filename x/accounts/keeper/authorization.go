package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	"github.com/pushchain/dpos-core/x/accounts/types"
)

// ScopePermission returns the permission a contract declares for action: the
// contract's permission named after the action when it exists, otherwise the
// contract's active permission.
func (k Keeper) ScopePermission(ctx context.Context, contract, action string) (types.Permission, error) {
	acc, err := k.GetAccount(ctx, contract)
	if err != nil {
		return types.Permission{}, err
	}

	if types.ValidateName(action) == nil {
		p, err := k.GetPermission(ctx, acc.ID, action)
		if err == nil {
			return p, nil
		}
		if !errorsmod.IsOf(err, types.ErrPermissionNotFound) {
			return types.Permission{}, err
		}
	}
	return k.GetPermission(ctx, acc.ID, types.ActivePermission)
}

// RequiredPermission resolves which permission of actor must authorize an
// action declared under scope. It walks scope and its ancestors looking for a
// link made by actor and falls back to actor's active permission.
func (k Keeper) RequiredPermission(ctx context.Context, actor, scope uint64) (types.Permission, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.Permission{}, err
	}

	cur := scope
	for depth := uint32(0); cur != 0; depth++ {
		if depth >= params.MaxAuthorityDepth {
			return types.Permission{}, errorsmod.Wrapf(types.ErrAuthorityDepthExceeded, "scope permission %d", scope)
		}

		link, found, err := k.getLink(ctx, actor, cur)
		if err != nil {
			return types.Permission{}, err
		}
		if found {
			return k.GetPermissionByID(ctx, link.OwnerPermission)
		}

		p, err := k.GetPermissionByID(ctx, cur)
		if err != nil {
			return types.Permission{}, err
		}
		cur = p.Parent
	}

	return k.GetPermission(ctx, actor, types.ActivePermission)
}

// Satisfies checks that a request signed under signed may act with the
// authority of required: signed must be required itself or one of its
// ancestors.
func (k Keeper) Satisfies(ctx context.Context, signed, required types.Permission) error {
	if signed.Owner != required.Owner {
		return errorsmod.Wrapf(types.ErrInvalidPermission, "permission %s belongs to another account", signed.Name)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}

	cur := required
	for depth := uint32(1); ; depth++ {
		if cur.ID == signed.ID {
			return nil
		}
		if cur.IsRoot() {
			return errorsmod.Wrapf(types.ErrInvalidPermission, "%s does not satisfy %s", signed.Name, required.Name)
		}
		if depth >= params.MaxAuthorityDepth {
			return errorsmod.Wrapf(types.ErrAuthorityDepthExceeded, "parent chain of %s", required.Name)
		}
		if cur, err = k.GetPermissionByID(ctx, cur.Parent); err != nil {
			return err
		}
	}
}

// CheckAuthorization resolves the permission actor needs for an action
// declared under scope and checks that level, the permission the request was
// signed under, satisfies it. The signed permission is returned so its
// authority can be verified against the request's signatures.
func (k Keeper) CheckAuthorization(ctx context.Context, level types.PermissionLevel, scope uint64) (types.Permission, error) {
	acc, err := k.GetAccount(ctx, level.Actor)
	if err != nil {
		return types.Permission{}, err
	}
	signed, err := k.GetPermission(ctx, acc.ID, level.Permission)
	if err != nil {
		return types.Permission{}, errorsmod.Wrap(types.ErrInvalidPermission, err.Error())
	}

	required, err := k.RequiredPermission(ctx, acc.ID, scope)
	if err != nil {
		return types.Permission{}, err
	}
	if err := k.Satisfies(ctx, signed, required); err != nil {
		return types.Permission{}, err
	}
	return signed, nil
}
