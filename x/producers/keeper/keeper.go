package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	"cosmossdk.io/collections/indexes"
	storetypes "cosmossdk.io/core/store"
	"cosmossdk.io/log"

	"github.com/pushchain/dpos-core/chaindb"
	"github.com/pushchain/dpos-core/x/producers/types"
)

type ProducerIndexes struct {
	// Votes orders producers by descending total votes, ties by owner.
	Votes *indexes.Multi[uint64, string, types.Producer]
}

func (i ProducerIndexes) IndexesList() []collections.Index[string, types.Producer] {
	return []collections.Index[string, types.Producer]{i.Votes}
}

type Keeper struct {
	logger log.Logger

	// state management
	Schema    collections.Schema
	Params    collections.Item[types.Params]
	Global    collections.Item[types.GlobalState]
	Producers *collections.IndexedMap[string, types.Producer, ProducerIndexes]
	Schedule  collections.Item[types.ProducerSchedule]

	accountKeeper types.AccountKeeper
	tokenKeeper   types.TokenKeeper
	elector       types.ScheduleElector
}

// NewKeeper creates a new Keeper instance. The schedule is elected by vote
// rank until SetElector installs another strategy.
func NewKeeper(
	storeService storetypes.KVStoreService,
	logger log.Logger,
	accountKeeper types.AccountKeeper,
	tokenKeeper types.TokenKeeper,
) *Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	sb := collections.NewSchemaBuilder(storeService)

	k := &Keeper{
		logger: logger,

		Params: collections.NewItem(sb, types.ParamsKey, types.ParamsName, chaindb.JSONValue[types.Params]()),
		Global: collections.NewItem(sb, types.GlobalStateKey, types.GlobalStateName, chaindb.JSONValue[types.GlobalState]()),
		Producers: collections.NewIndexedMap(
			sb, types.ProducersKey, types.ProducersName,
			collections.StringKey, chaindb.JSONValue[types.Producer](),
			ProducerIndexes{
				Votes: indexes.NewMulti(
					sb, types.ProducersByVotesKey, types.ProducersByVotesName,
					collections.Uint64Key, collections.StringKey,
					func(_ string, p types.Producer) (uint64, error) { return types.VotesKey(p.TotalVotes), nil },
				),
			},
		),
		Schedule: collections.NewItem(sb, types.ScheduleKey, types.ScheduleName, chaindb.JSONValue[types.ProducerSchedule]()),

		accountKeeper: accountKeeper,
		tokenKeeper:   tokenKeeper,
	}
	k.elector = TopVotesElector{k: k}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// SetElector replaces the schedule election strategy.
func (k *Keeper) SetElector(e types.ScheduleElector) *Keeper {
	k.elector = e
	return k
}

func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetParams returns the module params, falling back to the defaults before
// genesis has been applied.
func (k *Keeper) GetParams(ctx context.Context) (types.Params, error) {
	p, err := k.Params.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.DefaultParams(), nil
		}
		return types.Params{}, err
	}
	return p, nil
}

// GetGlobalState returns the global state, zero valued before first use.
func (k *Keeper) GetGlobalState(ctx context.Context) (types.GlobalState, error) {
	gs, err := k.Global.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.GlobalState{}, nil
		}
		return types.GlobalState{}, err
	}
	return gs, nil
}

// GetSchedule returns the active producer schedule.
func (k *Keeper) GetSchedule(ctx context.Context) (types.ProducerSchedule, error) {
	s, err := k.Schedule.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.ProducerSchedule{}, nil
		}
		return types.ProducerSchedule{}, err
	}
	return s, nil
}

// getProducer reports false when owner never registered.
func (k *Keeper) getProducer(ctx context.Context, owner string) (types.Producer, bool, error) {
	p, err := k.Producers.Get(ctx, owner)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Producer{}, false, nil
		}
		return types.Producer{}, false, err
	}
	return p, true, nil
}

// GetProducer returns the producer registered by owner.
func (k *Keeper) GetProducer(ctx context.Context, owner string) (types.Producer, error) {
	p, found, err := k.getProducer(ctx, owner)
	if err != nil {
		return types.Producer{}, err
	}
	if !found {
		return types.Producer{}, types.ErrProducerNotFound.Wrap(owner)
	}
	return p, nil
}

// WalkProducersByVotes visits producers in descending vote order until cb
// returns true.
func (k *Keeper) WalkProducersByVotes(ctx context.Context, cb func(types.Producer) (bool, error)) error {
	iter, err := k.Producers.Indexes.Votes.Iterate(ctx, nil)
	if err != nil {
		return err
	}
	defer iter.Close()

	for ; iter.Valid(); iter.Next() {
		owner, err := iter.PrimaryKey()
		if err != nil {
			return err
		}
		p, err := k.Producers.Get(ctx, owner)
		if err != nil {
			return err
		}
		stop, err := cb(p)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
	return nil
}

// ProducersByVotes returns up to limit producers in descending vote order. A
// zero limit returns all of them.
func (k *Keeper) ProducersByVotes(ctx context.Context, limit int) ([]types.Producer, error) {
	var out []types.Producer
	err := k.WalkProducersByVotes(ctx, func(p types.Producer) (bool, error) {
		out = append(out, p)
		return limit > 0 && len(out) >= limit, nil
	})
	return out, err
}
