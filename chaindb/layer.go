package chaindb

import (
	"cosmossdk.io/store/cachemulti"
	storetypes "cosmossdk.io/store/types"
	dbm "github.com/cosmos/cosmos-db"
)

// parentStore is the store a layer reads through to. The embedded store is
// swapped to the root once every layer below it has been committed.
type parentStore struct {
	storetypes.KVStore
}

// layer is one pending block: a copy-on-write cache per mounted store.
type layer struct {
	revision int64
	parents  map[storetypes.StoreKey]*parentStore
	cache    storetypes.CacheMultiStore
}

// newLayer stacks a cache layer on top of base, which is either the root
// commit store or the cache of the previous pending layer.
func newLayer(base storetypes.MultiStore, keys map[string]*storetypes.KVStoreKey) *layer {
	l := &layer{
		parents: make(map[storetypes.StoreKey]*parentStore, len(keys)),
	}

	stores := make(map[storetypes.StoreKey]storetypes.CacheWrapper, len(keys))
	storeKeys := make(map[string]storetypes.StoreKey, len(keys))
	for name, key := range keys {
		p := &parentStore{KVStore: base.GetKVStore(key)}
		l.parents[key] = p
		stores[key] = p
		storeKeys[name] = key
	}

	l.cache = cachemulti.NewStore(dbm.NewMemDB(), stores, storeKeys, nil, nil)
	return l
}

// rebase points the layer's reads at base.
func (l *layer) rebase(base storetypes.MultiStore) {
	for key, p := range l.parents {
		p.KVStore = base.GetKVStore(key)
	}
}
