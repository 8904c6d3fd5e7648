package keeper

import (
	"context"
	"slices"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	accountstypes "github.com/pushchain/dpos-core/x/accounts/types"
	"github.com/pushchain/dpos-core/x/producers/types"
)

// VoteProducers replaces the producer votes of voter. producers must be sorted,
// unique and registered with an active key. The voter's full stake is cast
// for each of them.
func (k *Keeper) VoteProducers(ctx context.Context, auth types.Authorizer, voter string, producers []string) error {
	if err := requireAuth(auth, voter); err != nil {
		return err
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	if len(producers) > int(params.MaxVotedProducers) {
		return errorsmod.Wrapf(types.ErrInvalidVote, "at most %d producers", params.MaxVotedProducers)
	}
	for i := 1; i < len(producers); i++ {
		if producers[i-1] >= producers[i] {
			return errorsmod.Wrap(types.ErrInvalidVote, "producers must be unique and sorted")
		}
	}

	acc, err := k.accountKeeper.GetAccount(ctx, voter)
	if err != nil {
		return err
	}
	if err := k.updateVotes(ctx, acc, producers, true); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeVoteProducers,
		sdk.NewAttribute(types.AttributeKeyVoter, voter),
		sdk.NewAttribute(types.AttributeKeyProducer, strings.Join(producers, ",")),
		sdk.NewAttribute(types.AttributeKeyWeight, strconv.FormatInt(acc.Staked, 10)),
	))
	return nil
}

// updateVotes moves the last vote weight of acc off its old producers and its
// current stake onto producers. Newly voted producers must be active when
// checkActive is set.
func (k *Keeper) updateVotes(ctx context.Context, acc accountstypes.Account, producers []string, checkActive bool) error {
	gs, err := k.GetGlobalState(ctx)
	if err != nil {
		return err
	}

	if acc.LastVoteWeight <= 0 {
		gs.TotalActivatedStake += acc.Staked
		if gs.TotalActivatedStake >= types.MinActivatedStake && gs.ThreshActivatedStakeTime == 0 {
			gs.ThreshActivatedStakeTime = sdk.UnwrapSDKContext(ctx).BlockTime().UnixMicro()
		}
	}

	weight := float64(acc.Staked)
	deltas := make(map[string]float64, len(acc.Producers)+len(producers))
	voted := make(map[string]bool, len(producers))
	if acc.LastVoteWeight > 0 {
		for _, p := range acc.Producers {
			deltas[p] -= acc.LastVoteWeight
		}
	}
	for _, p := range producers {
		deltas[p] += weight
		voted[p] = true
	}

	owners := make([]string, 0, len(deltas))
	for p := range deltas {
		owners = append(owners, p)
	}
	slices.Sort(owners)

	prods := make([]types.Producer, 0, len(owners))
	for _, owner := range owners {
		prod, err := k.GetProducer(ctx, owner)
		if err != nil {
			return errorsmod.Wrap(types.ErrInvalidVote, err.Error())
		}
		if checkActive && voted[owner] && !prod.Active() {
			return errorsmod.Wrapf(types.ErrInvalidVote, "producer %s is not currently registered", owner)
		}
		prods = append(prods, prod)
	}

	for _, prod := range prods {
		delta := deltas[prod.Owner]
		prod.TotalVotes = max(prod.TotalVotes+delta, 0)
		gs.TotalProducerVoteWeight = max(gs.TotalProducerVoteWeight+delta, 0)
		if err := k.Producers.Set(ctx, prod.Owner, prod); err != nil {
			return err
		}
	}

	acc.LastVoteWeight = weight
	acc.Producers = slices.Clone(producers)
	if err := k.accountKeeper.SetAccount(ctx, acc); err != nil {
		return err
	}
	return k.Global.Set(ctx, gs)
}
