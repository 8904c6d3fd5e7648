// Package app applies blocks of authorized actions to the chain state.
package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/dpos-core/chaindb"
	accountskeeper "github.com/pushchain/dpos-core/x/accounts/keeper"
	accountstypes "github.com/pushchain/dpos-core/x/accounts/types"
	"github.com/pushchain/dpos-core/x/producers"
	producerskeeper "github.com/pushchain/dpos-core/x/producers/keeper"
	producerstypes "github.com/pushchain/dpos-core/x/producers/types"
	tokenkeeper "github.com/pushchain/dpos-core/x/token/keeper"
	tokentypes "github.com/pushchain/dpos-core/x/token/types"
)

const Name = "dposd"

// BlockListener is told about every block once it is irreversible.
type BlockListener interface {
	OnIrreversibleBlock(res BlockResult) error
}

// Chain owns the state database and applies blocks one at a time.
type Chain struct {
	mu     sync.RWMutex
	logger log.Logger
	db     *chaindb.DB

	AccountKeeper   accountskeeper.Keeper
	TokenKeeper     *tokenkeeper.Keeper
	ProducersKeeper *producerskeeper.Keeper

	chainID           string
	verifier          SignatureVerifier
	irreversibleDepth int
	listeners         []BlockListener

	// pushed but reversible blocks, oldest first
	pending []BlockResult
	// time of the last irreversible block
	committedTime time.Time

	headBlockTime collections.Item[int64]
}

type Option func(*Chain)

// WithChainID sets the chain id reported in block headers.
func WithChainID(id string) Option {
	return func(c *Chain) { c.chainID = id }
}

// WithSignatureVerifier replaces the default weighted key verifier.
func WithSignatureVerifier(v SignatureVerifier) Option {
	return func(c *Chain) { c.verifier = v }
}

// WithIrreversibleDepth commits a block once depth newer blocks are pushed
// on top of it. Zero leaves commits to the caller.
func WithIrreversibleDepth(depth int) Option {
	return func(c *Chain) { c.irreversibleDepth = depth }
}

// WithBlockListener registers l for irreversible blocks.
func WithBlockListener(l BlockListener) Option {
	return func(c *Chain) { c.listeners = append(c.listeners, l) }
}

// NewChain opens the chain state stored in db.
func NewChain(db dbm.DB, logger log.Logger, opts ...Option) (*Chain, error) {
	cdb, err := chaindb.Open(db, logger, accountstypes.StoreKey, tokentypes.StoreKey, producerstypes.StoreKey, StoreKey)
	if err != nil {
		return nil, err
	}

	sb := collections.NewSchemaBuilder(runtime.NewKVStoreService(cdb.KVStoreKey(StoreKey)))
	headBlockTime := collections.NewItem(sb, HeadBlockTimeKey, HeadBlockTimeName, collections.Int64Value)
	if _, err := sb.Build(); err != nil {
		return nil, err
	}

	ak := accountskeeper.NewKeeper(runtime.NewKVStoreService(cdb.KVStoreKey(accountstypes.StoreKey)), logger)
	tk := tokenkeeper.NewKeeper(runtime.NewKVStoreService(cdb.KVStoreKey(tokentypes.StoreKey)), logger, ak)
	pk := producerskeeper.NewKeeper(runtime.NewKVStoreService(cdb.KVStoreKey(producerstypes.StoreKey)), logger, ak, tk)
	tk.SetHooks(tokentypes.NewMultiStakeHooks(pk.Hooks()))

	c := &Chain{
		logger:          logger.With(log.ModuleKey, "app"),
		db:              cdb,
		AccountKeeper:   ak,
		TokenKeeper:     tk,
		ProducersKeeper: pk,
		chainID:         Name,
		verifier:        WeightedKeyVerifier{Accounts: ak},
		headBlockTime:   headBlockTime,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.loadCommittedTime(); err != nil {
		return nil, err
	}
	return c, nil
}

// loadCommittedTime restores the time of the last irreversible block from a
// reopened database.
func (c *Chain) loadCommittedTime() error {
	if c.db.CommittedRevision() == 0 {
		return nil
	}
	ctx, err := c.db.Snapshot(cmtproto.Header{ChainID: c.chainID, Height: c.db.CommittedRevision()})
	if err != nil {
		return err
	}
	nanos, err := c.headBlockTime.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return errorsmod.Wrap(ErrNotInitialized, "committed state has no head block time")
		}
		return err
	}
	c.committedTime = time.Unix(0, nanos).UTC()
	return nil
}

// Initialized reports whether genesis has been applied.
func (c *Chain) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db.CommittedRevision() > 0
}

// HeadRevision returns the revision of the newest pushed block.
func (c *Chain) HeadRevision() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db.Revision()
}

// IrreversibleRevision returns the revision of the newest committed block.
func (c *Chain) IrreversibleRevision() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db.CommittedRevision()
}

// InitChain applies genesis as the first, immediately irreversible revision.
func (c *Chain) InitChain(genesis *GenesisState, genesisTime time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db.CommittedRevision() > 0 || c.db.Revision() > 0 {
		return ErrAlreadyInitialized
	}
	if err := genesis.Validate(); err != nil {
		return err
	}

	sess, err := c.db.StartUndoSession(c.header(genesisTime))
	if err != nil {
		return err
	}
	ctx := sess.Context()

	err = c.AccountKeeper.InitGenesis(ctx, genesis.Accounts)
	if err == nil {
		err = c.TokenKeeper.InitGenesis(ctx, genesis.Token)
	}
	if err == nil {
		err = c.ProducersKeeper.InitGenesis(ctx, genesis.Producers)
	}
	if err == nil {
		err = c.headBlockTime.Set(ctx, genesisTime.UnixNano())
	}
	if err != nil {
		sess.Undo()
		return errorsmod.Wrap(err, "init genesis")
	}

	if err := sess.Push(); err != nil {
		return err
	}
	if err := c.db.Commit(sess.Revision()); err != nil {
		return err
	}
	c.committedTime = genesisTime

	c.logger.Info("initialized chain", "chain_id", c.chainID, "accounts", len(genesis.Accounts.Accounts))
	return nil
}

func (c *Chain) header(t time.Time) cmtproto.Header {
	return cmtproto.Header{ChainID: c.chainID, Height: c.db.Revision() + 1, Time: t}
}

func (c *Chain) headTime() time.Time {
	if n := len(c.pending); n > 0 {
		return c.pending[n-1].Timestamp
	}
	return c.committedTime
}

// PushBlock applies block as a new reversible revision. Block bookkeeping
// runs first under the system account, then each transaction in its own
// session. Any failure discards the whole block.
//
// When the block is pushed but committing the blocks it made irreversible
// fails, the result is returned with an error wrapping ErrCommitFailed; the
// block stays at the head.
func (c *Chain) PushBlock(block Block) (BlockResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db.CommittedRevision() == 0 {
		return BlockResult{}, ErrNotInitialized
	}
	if block.Producer == "" {
		return BlockResult{}, errorsmod.Wrap(ErrInvalidBlock, "missing producer")
	}
	if !block.Timestamp.After(c.headTime()) {
		return BlockResult{}, errorsmod.Wrapf(ErrInvalidBlock, "timestamp %s not after head %s", block.Timestamp, c.headTime())
	}
	defer telemetry.MeasureSince(time.Now(), Name, "push_block")

	sess, err := c.db.StartUndoSession(c.header(block.Timestamp))
	if err != nil {
		return BlockResult{}, err
	}
	ctx := sess.Context()

	if err := producers.BeginBlocker(ctx, c.ProducersKeeper, block.Producer); err != nil {
		sess.Undo()
		return BlockResult{}, errorsmod.Wrap(err, "on block")
	}
	for i, tx := range block.Transactions {
		if err := c.applyTransaction(sess, tx); err != nil {
			sess.Undo()
			telemetry.IncrCounter(1, Name, "rejected_blocks")
			return BlockResult{}, errorsmod.Wrapf(err, "transaction %d", i)
		}
	}
	if err := c.headBlockTime.Set(ctx, block.Timestamp.UnixNano()); err != nil {
		sess.Undo()
		return BlockResult{}, err
	}
	if err := sess.Push(); err != nil {
		return BlockResult{}, err
	}

	res := BlockResult{
		Revision:  sess.Revision(),
		Timestamp: block.Timestamp,
		Producer:  block.Producer,
		Events:    ctx.EventManager().Events(),
	}
	c.pending = append(c.pending, res)
	telemetry.IncrCounter(1, Name, "pushed_blocks")
	c.logger.Debug("pushed block", "revision", res.Revision, "producer", block.Producer, "txs", len(block.Transactions))

	if c.irreversibleDepth > 0 && len(c.pending) > c.irreversibleDepth {
		if err := c.commit(res.Revision - int64(c.irreversibleDepth)); err != nil {
			return res, errorsmod.Wrapf(ErrCommitFailed, "revision %d: %s", res.Revision, err)
		}
	}
	return res, nil
}

func (c *Chain) applyTransaction(block *chaindb.Session, tx Transaction) error {
	if len(tx.Actions) == 0 {
		return errorsmod.Wrap(ErrInvalidBlock, "transaction without actions")
	}

	sess := block.StartUndoSession()
	ctx := sess.Context().WithEventManager(sdk.NewEventManager())
	for i, action := range tx.Actions {
		if err := c.applyAction(ctx, action, tx.SignedKeys); err != nil {
			sess.Undo()
			return errorsmod.Wrapf(err, "action %d %s::%s", i, action.Account, action.Name)
		}
	}
	if err := sess.Squash(); err != nil {
		return err
	}
	block.Context().EventManager().EmitEvents(ctx.EventManager().Events())
	return nil
}

func (c *Chain) applyAction(ctx sdk.Context, action Action, keys []string) error {
	h, ok := handlers[actionKey(action.Account, action.Name)]
	if !ok {
		return errorsmod.Wrapf(ErrUnknownAction, "%s::%s", action.Account, action.Name)
	}
	auth, err := c.authorize(ctx, action, keys)
	if err != nil {
		return err
	}
	if err := h(c, ctx, auth, action.Data); err != nil {
		return err
	}
	telemetry.IncrCounter(1, Name, "actions", action.Name)
	return nil
}

// PopBlock discards the newest reversible block.
func (c *Chain) PopBlock() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.Undo(); err != nil {
		return err
	}
	c.pending = c.pending[:len(c.pending)-1]
	telemetry.IncrCounter(1, Name, "popped_blocks")
	return nil
}

// Commit makes every block up to revision irreversible.
func (c *Chain) Commit(revision int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commit(revision)
}

func (c *Chain) commit(revision int64) error {
	if err := c.db.Commit(revision); err != nil {
		return err
	}

	n := 0
	for n < len(c.pending) && c.pending[n].Revision <= revision {
		n++
	}
	committed := c.pending[:n]
	c.pending = c.pending[n:]
	if n > 0 {
		c.committedTime = committed[n-1].Timestamp
	}
	telemetry.SetGauge(float32(revision), Name, "irreversible_revision")

	for _, res := range committed {
		for _, l := range c.listeners {
			if err := l.OnIrreversibleBlock(res); err != nil {
				return fmt.Errorf("block listener at revision %d: %w", res.Revision, err)
			}
		}
	}
	return nil
}
