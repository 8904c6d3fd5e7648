package app

import (
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	accountstypes "github.com/pushchain/dpos-core/x/accounts/types"
	producerstypes "github.com/pushchain/dpos-core/x/producers/types"
)

// queryContext returns a read-only context over the irreversible state.
func (c *Chain) queryContext() (sdk.Context, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.db.CommittedRevision() == 0 {
		return sdk.Context{}, ErrNotInitialized
	}
	return c.db.Snapshot(cmtproto.Header{ChainID: c.chainID, Height: c.db.CommittedRevision(), Time: c.committedTime})
}

// Account returns the irreversible state of an account.
func (c *Chain) Account(name string) (accountstypes.Account, error) {
	ctx, err := c.queryContext()
	if err != nil {
		return accountstypes.Account{}, err
	}
	return c.AccountKeeper.GetAccount(ctx, name)
}

// Producer returns the irreversible state of a producer.
func (c *Chain) Producer(owner string) (producerstypes.Producer, error) {
	ctx, err := c.queryContext()
	if err != nil {
		return producerstypes.Producer{}, err
	}
	return c.ProducersKeeper.GetProducer(ctx, owner)
}

// Producers returns up to limit producers by descending votes.
func (c *Chain) Producers(limit int) ([]producerstypes.Producer, error) {
	ctx, err := c.queryContext()
	if err != nil {
		return nil, err
	}
	return c.ProducersKeeper.ProducersByVotes(ctx, limit)
}

// GlobalState returns the irreversible global state.
func (c *Chain) GlobalState() (producerstypes.GlobalState, error) {
	ctx, err := c.queryContext()
	if err != nil {
		return producerstypes.GlobalState{}, err
	}
	return c.ProducersKeeper.GetGlobalState(ctx)
}

// ProjectedVotePay estimates the vote pay owner would receive from the
// current per-vote bucket.
func (c *Chain) ProjectedVotePay(owner string) (int64, error) {
	ctx, err := c.queryContext()
	if err != nil {
		return 0, err
	}
	prod, err := c.ProducersKeeper.GetProducer(ctx, owner)
	if err != nil {
		return 0, err
	}
	gs, err := c.ProducersKeeper.GetGlobalState(ctx)
	if err != nil {
		return 0, err
	}
	return c.ProducersKeeper.PaymentPerVote(ctx, owner, prod.TotalVotes, gs.PervoteBucket)
}

// ExportGenesis exports the irreversible state of every module.
func (c *Chain) ExportGenesis() (*GenesisState, error) {
	ctx, err := c.queryContext()
	if err != nil {
		return nil, err
	}

	g := &GenesisState{}
	if g.Accounts, err = c.AccountKeeper.ExportGenesis(ctx); err != nil {
		return nil, err
	}
	if g.Token, err = c.TokenKeeper.ExportGenesis(ctx); err != nil {
		return nil, err
	}
	if g.Producers, err = c.ProducersKeeper.ExportGenesis(ctx); err != nil {
		return nil, err
	}
	return g, nil
}
