package main

import (
	dbm "github.com/cosmos/cosmos-db"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/pushchain/dpos-core/app"
	"github.com/pushchain/dpos-core/history"
	"github.com/pushchain/dpos-core/internal/config"
	"github.com/pushchain/dpos-core/internal/logger"
)

// node is an opened chain with its optional history index.
type node struct {
	cfg     config.Config
	logger  zerolog.Logger
	chain   *app.Chain
	db      dbm.DB
	history *history.Store
	hdb     *gorm.DB
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	home, err := cmd.Flags().GetString(flagHome)
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(home)
}

// openNode opens the chain in the configured home. With withHistory set the
// history index is opened and fed irreversible blocks.
func openNode(cmd *cobra.Command, withHistory bool, opts ...app.Option) (*node, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	n := &node{cfg: cfg}
	n.logger = logger.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat, cfg.LogSampler)

	if withHistory && cfg.HistoryPath() != "" {
		if n.hdb, err = history.Open(cfg.HistoryPath()); err != nil {
			return nil, err
		}
		n.history = history.NewStore(n.hdb, n.logger)
		opts = append(opts, app.WithBlockListener(n.history))
	}

	n.db, err = dbm.NewDB("state", dbm.BackendType(cfg.DBBackend), cfg.DataDir())
	if err != nil {
		n.close()
		return nil, errors.Wrap(err, "failed to open state database")
	}

	opts = append([]app.Option{app.WithChainID(cfg.ChainID)}, opts...)
	n.chain, err = app.NewChain(n.db, logger.Chain(n.logger), opts...)
	if err != nil {
		n.close()
		return nil, errors.Wrap(err, "failed to open chain")
	}
	return n, nil
}

func (n *node) close() {
	if n.db != nil {
		if err := n.db.Close(); err != nil {
			n.logger.Error().Err(err).Msg("failed to close state database")
		}
	}
	if n.hdb != nil {
		if err := history.Close(n.hdb); err != nil {
			n.logger.Error().Err(err).Msg("failed to close history database")
		}
	}
}
