package keeper

import (
	"context"

	"cosmossdk.io/collections"
	"cosmossdk.io/collections/indexes"
	storetypes "cosmossdk.io/core/store"
	"cosmossdk.io/log"

	"github.com/pushchain/dpos-core/chaindb"
	"github.com/pushchain/dpos-core/x/accounts/types"
)

type AccountIndexes struct {
	Name *indexes.Unique[string, uint64, types.Account]
}

func (i AccountIndexes) IndexesList() []collections.Index[uint64, types.Account] {
	return []collections.Index[uint64, types.Account]{i.Name}
}

type PermissionIndexes struct {
	Owner  *indexes.Unique[collections.Pair[uint64, string], uint64, types.Permission]
	Parent *indexes.Multi[uint64, uint64, types.Permission]
}

func (i PermissionIndexes) IndexesList() []collections.Index[uint64, types.Permission] {
	return []collections.Index[uint64, types.Permission]{i.Owner, i.Parent}
}

type LinkIndexes struct {
	Scope       *indexes.Unique[collections.Pair[uint64, uint64], uint64, types.ActionPermission]
	Requirement *indexes.Multi[uint64, uint64, types.ActionPermission]
	ScopeOnly   *indexes.Multi[uint64, uint64, types.ActionPermission]
}

func (i LinkIndexes) IndexesList() []collections.Index[uint64, types.ActionPermission] {
	return []collections.Index[uint64, types.ActionPermission]{i.Scope, i.Requirement, i.ScopeOnly}
}

type Keeper struct {
	logger log.Logger

	// state management
	Schema collections.Schema
	Params collections.Item[types.Params]

	AccountSeq collections.Sequence
	Accounts   *collections.IndexedMap[uint64, types.Account, AccountIndexes]

	PermissionSeq collections.Sequence
	Permissions   *collections.IndexedMap[uint64, types.Permission, PermissionIndexes]

	LinkSeq collections.Sequence
	Links   *collections.IndexedMap[uint64, types.ActionPermission, LinkIndexes]
}

// NewKeeper creates a new Keeper instance
func NewKeeper(
	storeService storetypes.KVStoreService,
	logger log.Logger,
) Keeper {
	logger = logger.With(log.ModuleKey, "x/"+types.ModuleName)

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		logger: logger,

		Params: collections.NewItem(sb, types.ParamsKey, types.ParamsName, chaindb.JSONValue[types.Params]()),

		AccountSeq: collections.NewSequence(sb, types.AccountSeqKey, types.AccountSeqName),
		Accounts: collections.NewIndexedMap(
			sb, types.AccountsKey, types.AccountsName,
			collections.Uint64Key, chaindb.JSONValue[types.Account](),
			AccountIndexes{
				Name: indexes.NewUnique(
					sb, types.AccountsByNameKey, types.AccountsByNameName,
					collections.StringKey, collections.Uint64Key,
					func(_ uint64, acc types.Account) (string, error) { return acc.Name, nil },
				),
			},
		),

		PermissionSeq: collections.NewSequence(sb, types.PermissionSeqKey, types.PermissionSeqName),
		Permissions: collections.NewIndexedMap(
			sb, types.PermissionsKey, types.PermissionsName,
			collections.Uint64Key, chaindb.JSONValue[types.Permission](),
			PermissionIndexes{
				Owner: indexes.NewUnique(
					sb, types.PermissionsByOwnerKey, types.PermissionsByOwnerName,
					collections.PairKeyCodec(collections.Uint64Key, collections.StringKey), collections.Uint64Key,
					func(_ uint64, p types.Permission) (collections.Pair[uint64, string], error) {
						return collections.Join(p.Owner, p.Name), nil
					},
				),
				Parent: indexes.NewMulti(
					sb, types.PermissionsByParentKey, types.PermissionsByParentName,
					collections.Uint64Key, collections.Uint64Key,
					func(_ uint64, p types.Permission) (uint64, error) { return p.Parent, nil },
				),
			},
		),

		LinkSeq: collections.NewSequence(sb, types.LinkSeqKey, types.LinkSeqName),
		Links: collections.NewIndexedMap(
			sb, types.LinksKey, types.LinksName,
			collections.Uint64Key, chaindb.JSONValue[types.ActionPermission](),
			LinkIndexes{
				Scope: indexes.NewUnique(
					sb, types.LinksByScopeKey, types.LinksByScopeName,
					collections.PairKeyCodec(collections.Uint64Key, collections.Uint64Key), collections.Uint64Key,
					func(_ uint64, l types.ActionPermission) (collections.Pair[uint64, uint64], error) {
						return collections.Join(l.Owner, l.ScopePermission), nil
					},
				),
				Requirement: indexes.NewMulti(
					sb, types.LinksByRequirementKey, types.LinksByRequirementName,
					collections.Uint64Key, collections.Uint64Key,
					func(_ uint64, l types.ActionPermission) (uint64, error) { return l.OwnerPermission, nil },
				),
				ScopeOnly: indexes.NewMulti(
					sb, types.LinksByScopePermissionKey, types.LinksByScopePermissionName,
					collections.Uint64Key, collections.Uint64Key,
					func(_ uint64, l types.ActionPermission) (uint64, error) { return l.ScopePermission, nil },
				),
			},
		),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

func (k Keeper) Logger() log.Logger {
	return k.logger
}

// GetParams returns the module params, falling back to the defaults before
// genesis has been applied.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	p, err := k.Params.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return types.DefaultParams(), nil
		}
		return types.Params{}, err
	}
	return p, nil
}

// nextID draws the next id from seq. Ids start at 1; 0 means "none".
func nextID(ctx context.Context, seq collections.Sequence) (uint64, error) {
	n, err := seq.Next(ctx)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}
