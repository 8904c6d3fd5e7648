package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/dpos-core/x/producers/types"
)

// ClaimRewards mints the inflation accrued since the last bucket fill and
// pays owner its share of the block and vote buckets. A producer may claim
// once per day.
func (k *Keeper) ClaimRewards(ctx context.Context, auth types.Authorizer, owner string) (types.ClaimResult, error) {
	if err := requireAuth(auth, owner); err != nil {
		return types.ClaimResult{}, err
	}

	prod, err := k.GetProducer(ctx, owner)
	if err != nil {
		return types.ClaimResult{}, err
	}
	if !prod.Active() {
		return types.ClaimResult{}, errorsmod.Wrap(types.ErrProducerInactive, owner)
	}

	gs, err := k.GetGlobalState(ctx)
	if err != nil {
		return types.ClaimResult{}, err
	}
	if gs.TotalActivatedStake < types.MinActivatedStake {
		return types.ClaimResult{}, errorsmod.Wrapf(types.ErrStakeNotActivated, "%d activated", gs.TotalActivatedStake)
	}

	ct := sdk.UnwrapSDKContext(ctx).BlockTime().UnixMicro()
	if ct-prod.LastClaimTime <= types.UsecondsPerDay {
		return types.ClaimResult{}, errorsmod.Wrapf(types.ErrClaimTooSoon, "last claim at %d", prod.LastClaimTime)
	}

	var res types.ClaimResult
	if usecs := ct - gs.LastPervoteBucketFill; usecs > 0 {
		supply, err := k.tokenKeeper.GetSupply(ctx)
		if err != nil {
			return types.ClaimResult{}, err
		}
		minted := int64((types.ContinuousRate * float64(supply) * float64(usecs)) / float64(types.UsecondsPerYear))

		toProducers := minted / 5
		toSavings := minted - toProducers
		toPerBlock := toProducers / 4
		toPerVote := toProducers - toPerBlock

		if minted > 0 {
			if err := k.tokenKeeper.Issue(ctx, types.SystemAccount, minted, types.IssueMemo); err != nil {
				return types.ClaimResult{}, err
			}
		}

		gs.Savings += toSavings
		gs.PerblockBucket += toPerBlock
		gs.PervoteBucket += toPerVote
		gs.LastPervoteBucketFill = ct
		res.Minted = minted
	}

	if gs.TotalUnpaidBlocks > 0 {
		res.BlockPay = sdkmath.NewInt(gs.PerblockBucket).
			MulRaw(int64(prod.UnpaidBlocks)).
			QuoRaw(int64(gs.TotalUnpaidBlocks)).
			Int64()
	}
	if gs.TotalProducerVoteWeight > 0 {
		res.VotePay = int64((float64(gs.PervoteBucket) * prod.TotalVotes) / gs.TotalProducerVoteWeight)
	}
	if res.VotePay < types.MinVotePay {
		res.VotePay = 0
	}

	gs.PervoteBucket -= res.VotePay
	gs.PerblockBucket -= res.BlockPay
	gs.TotalUnpaidBlocks -= prod.UnpaidBlocks
	if err := k.Global.Set(ctx, gs); err != nil {
		return types.ClaimResult{}, err
	}

	prod.LastClaimTime = ct
	prod.UnpaidBlocks = 0
	if err := k.Producers.Set(ctx, owner, prod); err != nil {
		return types.ClaimResult{}, err
	}

	// the system account already holds the minted pay
	if pay := res.TotalPay(); pay > 0 && owner != types.SystemAccount {
		if err := k.tokenKeeper.Transfer(ctx, types.SystemAccount, owner, pay, types.ProducerPayMemo); err != nil {
			return types.ClaimResult{}, err
		}
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(types.NewClaimRewardsEvent(owner, ct, res))
	k.Logger().Info("producer rewards claimed", "producer", owner,
		"minted", res.Minted, "block_pay", res.BlockPay, "vote_pay", res.VotePay)
	return res, nil
}
