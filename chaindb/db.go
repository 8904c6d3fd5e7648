// Package chaindb is the versioned object store backing every chain module.
//
// Committed state lives in an IAVL commit multistore, one IAVL version per
// irreversible block. Blocks that are applied but still reversible are kept
// as a stack of copy-on-write cache layers above the root, so a fork switch
// can discard them without touching committed state.
package chaindb

import (
	"fmt"
	"sort"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DB owns the root commit store and the stack of pending block revisions.
// It is not safe for concurrent mutation; readers use Snapshot.
type DB struct {
	logger log.Logger

	root storetypes.CommitMultiStore
	keys map[string]*storetypes.KVStoreKey

	revisions []*layer
	revision  int64
	active    *Session
}

// Open mounts one IAVL store per name on db and loads the latest version.
func Open(db dbm.DB, logger log.Logger, storeNames ...string) (*DB, error) {
	if len(storeNames) == 0 {
		return nil, fmt.Errorf("chaindb: no stores to mount")
	}

	keys := storetypes.NewKVStoreKeys(storeNames...)
	root := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		root.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := root.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("chaindb: load latest version: %w", err)
	}

	d := &DB{
		logger:   logger.With(log.ModuleKey, "chaindb"),
		root:     root,
		keys:     keys,
		revision: root.LastCommitID().Version,
	}
	d.logger.Info("opened chain database", "version", d.revision, "stores", len(keys))
	return d, nil
}

// KVStoreKey returns the key of a mounted store, or nil if it is not mounted.
func (d *DB) KVStoreKey(name string) *storetypes.KVStoreKey {
	return d.keys[name]
}

// StoreNames returns the mounted store names in sorted order.
func (d *DB) StoreNames() []string {
	names := make([]string, 0, len(d.keys))
	for name := range d.keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Revision returns the revision of the newest pushed block.
func (d *DB) Revision() int64 {
	return d.revision
}

// CommittedRevision returns the revision of the newest irreversible block.
func (d *DB) CommittedRevision() int64 {
	return d.root.LastCommitID().Version
}

// PendingRevisions returns the number of pushed but uncommitted revisions.
func (d *DB) PendingRevisions() int {
	return len(d.revisions)
}

// LastCommitHash returns the app hash of the last committed version.
func (d *DB) LastCommitHash() []byte {
	return d.root.LastCommitID().Hash
}

func (d *DB) head() storetypes.MultiStore {
	if n := len(d.revisions); n > 0 {
		return d.revisions[n-1].cache
	}
	return d.root
}

// StartUndoSession opens a block-level session on top of the newest revision.
// Only one block-level session may be open at a time.
func (d *DB) StartUndoSession(header cmtproto.Header) (*Session, error) {
	if d.active != nil {
		return nil, ErrSessionOpen
	}

	l := newLayer(d.head(), d.keys)
	l.revision = d.revision + 1

	s := &Session{
		db:    d,
		layer: l,
		cache: l.cache,
		ctx:   sdk.NewContext(l.cache, header, false, d.logger),
	}
	d.active = s
	return s, nil
}

func (d *DB) push(l *layer) {
	d.revisions = append(d.revisions, l)
	d.revision = l.revision
	d.logger.Debug("pushed revision", "revision", l.revision, "pending", len(d.revisions))
}

// Undo discards the newest pushed revision.
func (d *DB) Undo() error {
	if d.active != nil {
		return ErrSessionOpen
	}
	n := len(d.revisions)
	if n == 0 {
		return ErrNoRevision
	}

	top := d.revisions[n-1]
	d.revisions[n-1] = nil
	d.revisions = d.revisions[:n-1]
	d.revision = top.revision - 1

	d.logger.Info("undid revision", "revision", top.revision)
	return nil
}

// UndoAll discards every pushed revision above the committed state.
func (d *DB) UndoAll() error {
	for len(d.revisions) > 0 {
		if err := d.Undo(); err != nil {
			return err
		}
	}
	return nil
}

// Commit makes every pushed revision up to and including revision
// irreversible. Each revision becomes one IAVL version.
func (d *DB) Commit(revision int64) error {
	if d.active != nil {
		return ErrSessionOpen
	}
	if revision <= d.CommittedRevision() || revision > d.revision {
		return fmt.Errorf("%w: %d not in (%d, %d]", ErrNoRevision, revision, d.CommittedRevision(), d.revision)
	}

	for len(d.revisions) > 0 && d.revisions[0].revision <= revision {
		bottom := d.revisions[0]
		bottom.cache.Write()
		id := d.root.Commit()

		d.revisions[0] = nil
		d.revisions = d.revisions[1:]
		if len(d.revisions) > 0 {
			d.revisions[0].rebase(d.root)
		}

		d.logger.Info("committed revision", "revision", bottom.revision, "version", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	}
	return nil
}

// Snapshot returns a read-only context over the last committed version.
// Pending revisions are never visible through it.
func (d *DB) Snapshot(header cmtproto.Header) (sdk.Context, error) {
	var (
		ms  storetypes.CacheMultiStore
		err error
	)

	version := d.CommittedRevision()
	if version == 0 {
		ms = d.root.CacheMultiStore()
	} else {
		ms, err = d.root.CacheMultiStoreWithVersion(version)
		if err != nil {
			return sdk.Context{}, fmt.Errorf("chaindb: snapshot at version %d: %w", version, err)
		}
	}

	return sdk.NewContext(ms, header, true, d.logger), nil
}
