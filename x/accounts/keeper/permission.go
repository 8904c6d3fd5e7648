package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/dpos-core/x/accounts/types"
)

func (k Keeper) createPermission(ctx context.Context, owner, parent uint64, name string, auth types.Authority) (types.Permission, error) {
	id, err := nextID(ctx, k.PermissionSeq)
	if err != nil {
		return types.Permission{}, err
	}

	p := types.Permission{
		ID:          id,
		Owner:       owner,
		Parent:      parent,
		Name:        name,
		Auth:        auth,
		LastUpdated: sdk.UnwrapSDKContext(ctx).BlockTime().UnixMicro(),
	}
	if err := k.Permissions.Set(ctx, p.ID, p); err != nil {
		return types.Permission{}, err
	}
	return p, nil
}

// GetPermission returns the permission called name of the given account id.
func (k Keeper) GetPermission(ctx context.Context, owner uint64, name string) (types.Permission, error) {
	id, err := k.Permissions.Indexes.Owner.MatchExact(ctx, collections.Join(owner, name))
	if err != nil {
		if isNotFound(err) {
			return types.Permission{}, errorsmod.Wrapf(types.ErrPermissionNotFound, "account %d permission %s", owner, name)
		}
		return types.Permission{}, err
	}
	return k.GetPermissionByID(ctx, id)
}

// GetPermissionByID returns the permission with the given id.
func (k Keeper) GetPermissionByID(ctx context.Context, id uint64) (types.Permission, error) {
	p, err := k.Permissions.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return types.Permission{}, errorsmod.Wrapf(types.ErrPermissionNotFound, "id %d", id)
		}
		return types.Permission{}, err
	}
	return p, nil
}

// GetPermissionLevel resolves actor@permission.
func (k Keeper) GetPermissionLevel(ctx context.Context, level types.PermissionLevel) (types.Permission, error) {
	acc, err := k.GetAccount(ctx, level.Actor)
	if err != nil {
		return types.Permission{}, err
	}
	return k.GetPermission(ctx, acc.ID, level.Permission)
}

// GetAccountPermissions returns every permission of an account ordered by name.
func (k Keeper) GetAccountPermissions(ctx context.Context, owner uint64) ([]types.Permission, error) {
	iter, err := k.Permissions.Indexes.Owner.Iterate(ctx, collections.NewPrefixedPairRange[uint64, string](owner))
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var perms []types.Permission
	for ; iter.Valid(); iter.Next() {
		id, err := iter.PrimaryKey()
		if err != nil {
			return nil, err
		}
		p, err := k.GetPermissionByID(ctx, id)
		if err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, nil
}

// UpdateAuth creates or replaces the permission name of account. parent is
// empty only for the owner permission.
func (k Keeper) UpdateAuth(ctx context.Context, account, name, parent string, auth types.Authority) (types.Permission, error) {
	if err := types.ValidateName(name); err != nil {
		return types.Permission{}, err
	}
	if err := auth.ValidateBasic(); err != nil {
		return types.Permission{}, err
	}
	if err := k.validateAuthorityLevels(ctx, auth); err != nil {
		return types.Permission{}, err
	}

	acc, err := k.GetAccount(ctx, account)
	if err != nil {
		return types.Permission{}, err
	}

	var parentID uint64
	switch {
	case name == types.OwnerPermission:
		if parent != "" {
			return types.Permission{}, errorsmod.Wrap(types.ErrInvalidPermission, "owner permission cannot have a parent")
		}
	case parent == "":
		return types.Permission{}, errorsmod.Wrapf(types.ErrInvalidPermission, "permission %s needs a parent", name)
	case parent == name:
		return types.Permission{}, errorsmod.Wrapf(types.ErrInvalidPermission, "permission %s cannot be its own parent", name)
	default:
		p, err := k.GetPermission(ctx, acc.ID, parent)
		if err != nil {
			return types.Permission{}, err
		}
		parentID = p.ID
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return types.Permission{}, err
	}

	existing, err := k.GetPermission(ctx, acc.ID, name)
	switch {
	case err == nil:
	case errorsmod.IsOf(err, types.ErrPermissionNotFound):
		if parentID != 0 {
			depth, err := k.permissionDepth(ctx, parentID, params.MaxAuthorityDepth)
			if err != nil {
				return types.Permission{}, err
			}
			if depth+1 > params.MaxAuthorityDepth {
				return types.Permission{}, errorsmod.Wrapf(types.ErrAuthorityDepthExceeded, "permission %s would be at depth %d", name, depth+1)
			}
		}
		created, err := k.createPermission(ctx, acc.ID, parentID, name, auth)
		if err != nil {
			return types.Permission{}, err
		}
		k.Logger().Info("permission created", "account", account, "permission", name, "parent", parent)
		return created, nil
	default:
		return types.Permission{}, err
	}

	if parentID != existing.Parent && parentID != 0 {
		if err := k.checkReparent(ctx, existing, parentID, params.MaxAuthorityDepth); err != nil {
			return types.Permission{}, err
		}
	}

	existing.Parent = parentID
	existing.Auth = auth
	existing.LastUpdated = sdk.UnwrapSDKContext(ctx).BlockTime().UnixMicro()
	if err := k.Permissions.Set(ctx, existing.ID, existing); err != nil {
		return types.Permission{}, err
	}
	k.Logger().Info("permission updated", "account", account, "permission", name, "parent", parent)
	return existing, nil
}

// checkReparent rejects moving perm under one of its own descendants and
// moves that would push its subtree past the depth limit.
func (k Keeper) checkReparent(ctx context.Context, perm types.Permission, parentID uint64, maxDepth uint32) error {
	cur := parentID
	var depth uint32
	for cur != 0 {
		depth++
		if depth > maxDepth {
			return errorsmod.Wrapf(types.ErrAuthorityDepthExceeded, "parent chain of permission %d", parentID)
		}
		if cur == perm.ID {
			return errorsmod.Wrapf(types.ErrInvalidPermission, "permission %s cannot be moved under its own descendant", perm.Name)
		}
		p, err := k.GetPermissionByID(ctx, cur)
		if err != nil {
			return err
		}
		cur = p.Parent
	}

	height, err := k.subtreeHeight(ctx, perm.ID, maxDepth)
	if err != nil {
		return err
	}
	if depth+height > maxDepth {
		return errorsmod.Wrapf(types.ErrAuthorityDepthExceeded, "moving permission %s would reach depth %d", perm.Name, depth+height)
	}
	return nil
}

// permissionDepth returns the number of permissions on the chain from id up
// to its root, inclusive.
func (k Keeper) permissionDepth(ctx context.Context, id uint64, maxDepth uint32) (uint32, error) {
	var depth uint32
	for cur := id; cur != 0; depth++ {
		if depth >= maxDepth {
			return 0, errorsmod.Wrapf(types.ErrAuthorityDepthExceeded, "parent chain of permission %d", id)
		}
		p, err := k.GetPermissionByID(ctx, cur)
		if err != nil {
			return 0, err
		}
		cur = p.Parent
	}
	return depth, nil
}

// subtreeHeight returns the number of levels of the tree rooted at id.
func (k Keeper) subtreeHeight(ctx context.Context, id uint64, maxDepth uint32) (uint32, error) {
	level := []uint64{id}
	var height uint32
	for len(level) > 0 {
		height++
		if height > maxDepth {
			return 0, errorsmod.Wrapf(types.ErrAuthorityDepthExceeded, "subtree of permission %d", id)
		}
		var next []uint64
		for _, parent := range level {
			children, err := k.children(ctx, parent)
			if err != nil {
				return 0, err
			}
			next = append(next, children...)
		}
		level = next
	}
	return height, nil
}

func (k Keeper) children(ctx context.Context, parent uint64) ([]uint64, error) {
	iter, err := k.Permissions.Indexes.Parent.MatchExact(ctx, parent)
	if err != nil {
		return nil, err
	}
	return iter.PrimaryKeys()
}

// DeleteAuth removes a permission that has no children and is not required by
// a link. Links of any account scoped to the permission are removed with it.
func (k Keeper) DeleteAuth(ctx context.Context, account, name string) error {
	if name == types.OwnerPermission || name == types.ActivePermission {
		return errorsmod.Wrapf(types.ErrInvalidPermission, "cannot delete %s permission", name)
	}

	acc, err := k.GetAccount(ctx, account)
	if err != nil {
		return err
	}
	perm, err := k.GetPermission(ctx, acc.ID, name)
	if err != nil {
		return err
	}

	children, err := k.children(ctx, perm.ID)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return errorsmod.Wrapf(types.ErrPermissionInUse, "permission %s has %d children", name, len(children))
	}

	links, err := k.Links.Indexes.Requirement.MatchExact(ctx, perm.ID)
	if err != nil {
		return err
	}
	defer links.Close()
	if links.Valid() {
		return errorsmod.Wrapf(types.ErrPermissionInUse, "permission %s is linked to an action", name)
	}

	scoped, err := k.Links.Indexes.ScopeOnly.MatchExact(ctx, perm.ID)
	if err != nil {
		return err
	}
	ids, err := scoped.PrimaryKeys()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := k.Links.Remove(ctx, id); err != nil {
			return err
		}
	}

	if err := k.Permissions.Remove(ctx, perm.ID); err != nil {
		return err
	}
	k.Logger().Info("permission deleted", "account", account, "permission", name, "scoped_links", len(ids))
	return nil
}

// validateAuthorityLevels checks that every account permission an authority
// delegates to exists.
func (k Keeper) validateAuthorityLevels(ctx context.Context, auth types.Authority) error {
	for _, pw := range auth.Accounts {
		if _, err := k.GetPermissionLevel(ctx, pw.Permission); err != nil {
			return errorsmod.Wrapf(types.ErrInvalidAuthority, "%s: %s", pw.Permission, err)
		}
	}
	return nil
}
