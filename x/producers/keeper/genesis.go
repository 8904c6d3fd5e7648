package keeper

import (
	"context"

	"github.com/pushchain/dpos-core/x/producers/types"
)

// InitGenesis initializes the module's state from a genesis state.
func (k *Keeper) InitGenesis(ctx context.Context, data *types.GenesisState) error {
	if err := data.Validate(); err != nil {
		return err
	}
	if err := k.Params.Set(ctx, data.Params); err != nil {
		return err
	}
	if err := k.Global.Set(ctx, data.Global); err != nil {
		return err
	}
	for _, p := range data.Producers {
		if err := k.Producers.Set(ctx, p.Owner, p); err != nil {
			return err
		}
	}
	return k.Schedule.Set(ctx, data.Schedule)
}

// ExportGenesis exports the module's state to a genesis state.
func (k *Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	global, err := k.GetGlobalState(ctx)
	if err != nil {
		return nil, err
	}
	schedule, err := k.GetSchedule(ctx)
	if err != nil {
		return nil, err
	}

	gs := &types.GenesisState{Params: params, Global: global, Schedule: schedule}
	err = k.Producers.Walk(ctx, nil, func(_ string, p types.Producer) (bool, error) {
		gs.Producers = append(gs.Producers, p)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return gs, nil
}
