package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	storetypes "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	"github.com/pushchain/dpos-core/chaindb"
	"github.com/pushchain/dpos-core/x/token/types"
)

type Keeper struct {
	logger log.Logger

	// state management
	Schema collections.Schema
	Params collections.Item[types.Params]
	Supply collections.Item[int64]

	accountKeeper types.AccountKeeper
	hooks         types.StakeHooks
}

// NewKeeper creates a new Keeper instance
func NewKeeper(
	storeService storetypes.KVStoreService,
	logger log.Logger,
	accountKeeper types.AccountKeeper,
) *Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	sb := collections.NewSchemaBuilder(storeService)

	k := &Keeper{
		logger: logger,

		Params: collections.NewItem(sb, types.ParamsKey, types.ParamsName, chaindb.JSONValue[types.Params]()),
		Supply: collections.NewItem(sb, types.SupplyKey, types.SupplyName, collections.Int64Value),

		accountKeeper: accountKeeper,
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// SetHooks sets the stake hooks. It may only be called once.
func (k *Keeper) SetHooks(h types.StakeHooks) *Keeper {
	if k.hooks != nil {
		panic("cannot set token hooks twice")
	}
	k.hooks = h
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

// GetSupply returns the outstanding token supply.
func (k *Keeper) GetSupply(ctx context.Context) (int64, error) {
	supply, err := k.Supply.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return supply, nil
}

// InitGenesis initializes the module's state from a genesis state.
func (k *Keeper) InitGenesis(ctx context.Context, data *types.GenesisState) error {
	if err := data.Validate(); err != nil {
		return err
	}

	accounts, err := k.accountKeeper.GetAllAccounts(ctx)
	if err != nil {
		return err
	}
	var held int64
	for _, acc := range accounts {
		held += acc.Balance + acc.Staked
	}
	if held != data.Supply {
		return errorsmod.Wrapf(types.ErrInvalidGenesis, "accounts hold %d, supply is %d", held, data.Supply)
	}

	if err := k.Params.Set(ctx, data.Params); err != nil {
		return err
	}
	return k.Supply.Set(ctx, data.Supply)
}

// ExportGenesis exports the module's state to a genesis state.
func (k *Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	supply, err := k.GetSupply(ctx)
	if err != nil {
		return nil, err
	}
	return &types.GenesisState{Params: params, Supply: supply}, nil
}
