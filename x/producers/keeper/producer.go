package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/dpos-core/x/producers/types"
)

// RegisterProducer registers owner as a producer candidate signing with key,
// or updates and reactivates an existing registration.
func (k *Keeper) RegisterProducer(ctx context.Context, auth types.Authorizer, owner, key, url string) error {
	if err := requireAuth(auth, owner); err != nil {
		return err
	}
	if err := types.ValidateProducerKey(key); err != nil {
		return err
	}
	if len(url) > types.MaxURLLength {
		return errorsmod.Wrapf(types.ErrInvalidURL, "%d bytes", len(url))
	}
	if _, err := k.accountKeeper.GetAccount(ctx, owner); err != nil {
		return err
	}

	prod, found, err := k.getProducer(ctx, owner)
	if err != nil {
		return err
	}
	if !found {
		prod = types.Producer{Owner: owner}
	}
	prod.ProducerKey = key
	prod.URL = url
	if err := k.Producers.Set(ctx, owner, prod); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRegisterProducer,
		sdk.NewAttribute(types.AttributeKeyProducer, owner),
	))
	k.Logger().Info("producer registered", "producer", owner, "update", found)
	return nil
}

// UnregisterProducer clears the key of owner. The record and its votes stay.
func (k *Keeper) UnregisterProducer(ctx context.Context, auth types.Authorizer, owner string) error {
	if err := requireAuth(auth, owner); err != nil {
		return err
	}

	prod, err := k.GetProducer(ctx, owner)
	if err != nil {
		return err
	}
	prod.ProducerKey = ""
	if err := k.Producers.Set(ctx, owner, prod); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeUnregister,
		sdk.NewAttribute(types.AttributeKeyProducer, owner),
	))
	return nil
}
