package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/dpos-core/x/accounts/types"
)

func isNotFound(err error) bool {
	return errors.Is(err, collections.ErrNotFound)
}

// CreateAccount creates name with an owner permission and an active
// permission beneath it.
func (k Keeper) CreateAccount(ctx context.Context, name string, owner, active types.Authority) (types.Account, error) {
	if err := types.ValidateName(name); err != nil {
		return types.Account{}, err
	}
	if err := owner.ValidateBasic(); err != nil {
		return types.Account{}, errorsmod.Wrap(err, "owner")
	}
	if err := active.ValidateBasic(); err != nil {
		return types.Account{}, errorsmod.Wrap(err, "active")
	}

	_, err := k.Accounts.Indexes.Name.MatchExact(ctx, name)
	switch {
	case err == nil:
		return types.Account{}, errorsmod.Wrap(types.ErrAccountExists, name)
	case !isNotFound(err):
		return types.Account{}, err
	}

	if err := k.validateAuthorityLevels(ctx, owner); err != nil {
		return types.Account{}, err
	}
	if err := k.validateAuthorityLevels(ctx, active); err != nil {
		return types.Account{}, err
	}

	id, err := nextID(ctx, k.AccountSeq)
	if err != nil {
		return types.Account{}, err
	}

	now := sdk.UnwrapSDKContext(ctx).BlockTime().UnixMicro()
	acc := types.Account{
		ID:      id,
		Name:    name,
		Created: now,
	}
	if err := k.Accounts.Set(ctx, acc.ID, acc); err != nil {
		return types.Account{}, err
	}

	ownerPerm, err := k.createPermission(ctx, acc.ID, 0, types.OwnerPermission, owner)
	if err != nil {
		return types.Account{}, err
	}
	if _, err := k.createPermission(ctx, acc.ID, ownerPerm.ID, types.ActivePermission, active); err != nil {
		return types.Account{}, err
	}

	k.Logger().Info("account created", "name", name, "id", id)
	return acc, nil
}

// GetAccount returns the account called name.
func (k Keeper) GetAccount(ctx context.Context, name string) (types.Account, error) {
	id, err := k.Accounts.Indexes.Name.MatchExact(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return types.Account{}, errorsmod.Wrap(types.ErrAccountNotFound, name)
		}
		return types.Account{}, err
	}
	return k.GetAccountByID(ctx, id)
}

// GetAccountByID returns the account with the given id.
func (k Keeper) GetAccountByID(ctx context.Context, id uint64) (types.Account, error) {
	acc, err := k.Accounts.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return types.Account{}, errorsmod.Wrapf(types.ErrAccountNotFound, "id %d", id)
		}
		return types.Account{}, err
	}
	return acc, nil
}

// HasAccount reports whether an account called name exists.
func (k Keeper) HasAccount(ctx context.Context, name string) (bool, error) {
	_, err := k.Accounts.Indexes.Name.MatchExact(ctx, name)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SetAccount stores a modified account. The account must already exist and
// keep its id and name.
func (k Keeper) SetAccount(ctx context.Context, acc types.Account) error {
	stored, err := k.GetAccountByID(ctx, acc.ID)
	if err != nil {
		return err
	}
	if stored.Name != acc.Name {
		return errorsmod.Wrapf(types.ErrInvalidName, "account %d cannot be renamed to %s", acc.ID, acc.Name)
	}
	return k.Accounts.Set(ctx, acc.ID, acc)
}

// GetAllAccounts returns every account in id order.
func (k Keeper) GetAllAccounts(ctx context.Context) ([]types.Account, error) {
	var accounts []types.Account
	err := k.Accounts.Walk(ctx, nil, func(_ uint64, acc types.Account) (bool, error) {
		accounts = append(accounts, acc)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
