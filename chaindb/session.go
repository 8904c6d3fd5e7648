package chaindb

import (
	"errors"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	ErrSessionOpen   = errors.New("chaindb: a block session is already open")
	ErrSessionClosed = errors.New("chaindb: session already closed")
	ErrNoRevision    = errors.New("chaindb: no such revision")
	ErrNotBlockLevel = errors.New("chaindb: only block-level sessions can be pushed")
)

// Session groups mutations that are kept or discarded together. A block-level
// session comes from DB.StartUndoSession; nested sessions come from
// Session.StartUndoSession and merge into their parent on Squash.
type Session struct {
	db     *DB
	layer  *layer
	parent *Session

	cache storetypes.CacheMultiStore
	ctx   sdk.Context
	done  bool
}

// Context returns the context every keeper call inside the session must use.
func (s *Session) Context() sdk.Context {
	return s.ctx
}

// Revision returns the revision this session becomes when pushed. Nested
// sessions report the revision of their block.
func (s *Session) Revision() int64 {
	root := s
	for root.parent != nil {
		root = root.parent
	}
	return root.layer.revision
}

// StartUndoSession opens a nested session whose writes are only visible to
// the parent after Squash.
func (s *Session) StartUndoSession() *Session {
	cache := s.cache.CacheMultiStore()
	return &Session{
		db:     s.db,
		parent: s,
		cache:  cache,
		ctx:    s.ctx.WithMultiStore(cache),
	}
}

// Undo discards every mutation made in the session.
func (s *Session) Undo() {
	if s.done {
		return
	}
	s.done = true
	s.release()
}

// Squash merges the session into its parent: the enclosing session for
// nested sessions, or the newest revision for a block-level session.
func (s *Session) Squash() error {
	if s.done {
		return ErrSessionClosed
	}
	s.done = true
	s.cache.Write()
	s.release()
	return nil
}

// Push keeps a block-level session as a new reversible revision.
func (s *Session) Push() error {
	if s.done {
		return ErrSessionClosed
	}
	if s.layer == nil {
		return ErrNotBlockLevel
	}
	s.done = true
	s.release()
	s.db.push(s.layer)
	return nil
}

func (s *Session) release() {
	if s.layer != nil && s.db.active == s {
		s.db.active = nil
	}
}
