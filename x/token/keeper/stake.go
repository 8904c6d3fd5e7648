package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/dpos-core/x/token/types"
)

// Stake locks amount of the liquid balance of account as voting stake.
func (k *Keeper) Stake(ctx context.Context, account string, amount int64) error {
	if amount <= 0 {
		return errorsmod.Wrapf(types.ErrInvalidAmount, "stake %d", amount)
	}

	acc, err := k.accountKeeper.GetAccount(ctx, account)
	if err != nil {
		return err
	}
	if acc.Balance < amount {
		return errorsmod.Wrapf(types.ErrInsufficientFunds, "%s has %d, stakes %d", account, acc.Balance, amount)
	}
	acc.Balance -= amount
	acc.Staked += amount
	if err := k.accountKeeper.SetAccount(ctx, acc); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewStakeEvent(types.EventTypeStake, account, amount))
	return k.afterStakeChanged(ctx, account)
}

// Unstake returns amount of the stake of account to its liquid balance.
func (k *Keeper) Unstake(ctx context.Context, account string, amount int64) error {
	if amount <= 0 {
		return errorsmod.Wrapf(types.ErrInvalidAmount, "unstake %d", amount)
	}

	acc, err := k.accountKeeper.GetAccount(ctx, account)
	if err != nil {
		return err
	}
	if acc.Staked < amount {
		return errorsmod.Wrapf(types.ErrInsufficientStake, "%s has %d staked, unstakes %d", account, acc.Staked, amount)
	}
	acc.Staked -= amount
	acc.Balance += amount
	if err := k.accountKeeper.SetAccount(ctx, acc); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewStakeEvent(types.EventTypeUnstake, account, amount))
	return k.afterStakeChanged(ctx, account)
}

func (k *Keeper) afterStakeChanged(ctx context.Context, account string) error {
	if k.hooks == nil {
		return nil
	}
	return k.hooks.AfterStakeChanged(ctx, account)
}
