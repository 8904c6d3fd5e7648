package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/dpos-core/x/producers/types"
)

// OnBlock records that producer produced the block at timestamp. It runs
// under the system account once per block and does nothing until enough
// stake has been activated.
func (k *Keeper) OnBlock(ctx context.Context, auth types.Authorizer, timestamp types.BlockTimestamp, producer string) error {
	if err := requireAuth(auth, types.SystemAccount); err != nil {
		return err
	}

	gs, err := k.GetGlobalState(ctx)
	if err != nil {
		return err
	}
	if gs.TotalActivatedStake < types.MinActivatedStake {
		return nil
	}
	if gs.LastPervoteBucketFill == 0 {
		gs.LastPervoteBucketFill = sdk.UnwrapSDKContext(ctx).BlockTime().UnixMicro()
	}

	prod, found, err := k.getProducer(ctx, producer)
	if err != nil {
		return err
	}
	if found {
		gs.TotalUnpaidBlocks++
		prod.UnpaidBlocks++
		prod.LastProducedBlockTime = timestamp
		if err := k.Producers.Set(ctx, prod.Owner, prod); err != nil {
			return err
		}
	}

	// unsigned slot arithmetic
	if timestamp.Slot-gs.LastProducerScheduleUpdate.Slot > types.ScheduleUpdateSlots {
		if err := k.elector.UpdateElectedProducers(ctx, timestamp); err != nil {
			return err
		}
		gs.LastProducerScheduleUpdate = timestamp
	}

	return k.Global.Set(ctx, gs)
}

func requireAuth(auth types.Authorizer, account string) error {
	if auth == nil {
		return types.ErrUnauthorized.Wrap(account)
	}
	return auth.RequireAuth(account)
}
