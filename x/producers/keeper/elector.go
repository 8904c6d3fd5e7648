package keeper

import (
	"context"
	"slices"
	"strconv"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/dpos-core/x/producers/types"
)

var _ types.ScheduleElector = TopVotesElector{}

// TopVotesElector schedules the active producers with the most votes, up to
// the MaxProducers param, sorted by name.
type TopVotesElector struct {
	k *Keeper
}

func (e TopVotesElector) UpdateElectedProducers(ctx context.Context, timestamp types.BlockTimestamp) error {
	params, err := e.k.GetParams(ctx)
	if err != nil {
		return err
	}

	var top []types.ProducerKey
	err = e.k.WalkProducersByVotes(ctx, func(p types.Producer) (bool, error) {
		if !(p.TotalVotes > 0) || len(top) >= int(params.MaxProducers) {
			return true, nil
		}
		if p.Active() {
			top = append(top, types.ProducerKey{Name: p.Owner, Key: p.ProducerKey})
		}
		return false, nil
	})
	if err != nil {
		return err
	}
	if len(top) == 0 {
		return nil
	}
	slices.SortFunc(top, func(a, b types.ProducerKey) int { return strings.Compare(a.Name, b.Name) })

	current, err := e.k.GetSchedule(ctx)
	if err != nil {
		return err
	}
	if slices.Equal(current.Producers, top) {
		return nil
	}

	next := types.ProducerSchedule{Version: current.Version + 1, Producers: top}
	if err := e.k.Schedule.Set(ctx, next); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeNewSchedule,
		sdk.NewAttribute(types.AttributeKeyVersion, strconv.FormatUint(uint64(next.Version), 10)),
	))
	e.k.Logger().Info("new producer schedule", "version", next.Version, "producers", len(top), "slot", timestamp.Slot)
	return nil
}
