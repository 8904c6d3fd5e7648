package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/dpos-core/x/token/types"
)

func validateMemo(memo string) error {
	if len(memo) > types.MaxMemoLength {
		return errorsmod.Wrapf(types.ErrMemoTooLong, "%d bytes", len(memo))
	}
	return nil
}

// Issue mints amount new tokens into the balance of to.
func (k *Keeper) Issue(ctx context.Context, to string, amount int64, memo string) error {
	if amount <= 0 {
		return errorsmod.Wrapf(types.ErrInvalidAmount, "issue %d", amount)
	}
	if err := validateMemo(memo); err != nil {
		return err
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	supply, err := k.GetSupply(ctx)
	if err != nil {
		return err
	}
	if amount > params.MaxSupply-supply {
		return errorsmod.Wrapf(types.ErrMaxSupplyExceeded, "supply %s + %s",
			types.FormatAmount(supply, params.Symbol), types.FormatAmount(amount, params.Symbol))
	}

	acc, err := k.accountKeeper.GetAccount(ctx, to)
	if err != nil {
		return err
	}
	acc.Balance += amount
	if err := k.accountKeeper.SetAccount(ctx, acc); err != nil {
		return err
	}
	if err := k.Supply.Set(ctx, supply+amount); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewIssueEvent(to, amount, memo))
	k.Logger().Debug("issued tokens", "to", to, "amount", types.FormatAmount(amount, params.Symbol))
	return nil
}

// Transfer moves amount from the liquid balance of from to to.
func (k *Keeper) Transfer(ctx context.Context, from, to string, amount int64, memo string) error {
	if amount <= 0 {
		return errorsmod.Wrapf(types.ErrInvalidAmount, "transfer %d", amount)
	}
	if from == to {
		return errorsmod.Wrap(types.ErrInvalidTransfer, "cannot transfer to self")
	}
	if err := validateMemo(memo); err != nil {
		return err
	}

	sender, err := k.accountKeeper.GetAccount(ctx, from)
	if err != nil {
		return err
	}
	recipient, err := k.accountKeeper.GetAccount(ctx, to)
	if err != nil {
		return err
	}
	if sender.Balance < amount {
		return errorsmod.Wrapf(types.ErrInsufficientFunds, "%s has %d, needs %d", from, sender.Balance, amount)
	}

	sender.Balance -= amount
	recipient.Balance += amount
	if err := k.accountKeeper.SetAccount(ctx, sender); err != nil {
		return err
	}
	if err := k.accountKeeper.SetAccount(ctx, recipient); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewTransferEvent(from, to, amount, memo))
	return nil
}

// GetBalance returns the liquid balance of account.
func (k *Keeper) GetBalance(ctx context.Context, account string) (int64, error) {
	acc, err := k.accountKeeper.GetAccount(ctx, account)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}
