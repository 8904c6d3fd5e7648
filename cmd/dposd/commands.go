package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sdkversion "github.com/cosmos/cosmos-sdk/version"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pushchain/dpos-core/app"
	"github.com/pushchain/dpos-core/internal/config"
	tokentypes "github.com/pushchain/dpos-core/x/token/types"
)

const (
	flagKey       = "key"
	flagChainID   = "chain-id"
	flagAccount   = "account"
	flagOverwrite = "overwrite"
	flagLimit     = "limit"
	flagOutput    = "output"

	// block log lines may carry large transactions
	maxBlockLine = 16 << 20
)

func InitRootCmd(rootCmd *cobra.Command) {
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(replayCmd())
	rootCmd.AddCommand(queryCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(versionCmd())
}

func printJSON(cmd *cobra.Command, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}

// parseAccount parses name:key:balance, balance being an asset amount.
func parseAccount(s string) (name, key string, balance int64, err error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return "", "", 0, errors.Errorf("account %q is not name:key:balance", s)
	}
	balance, err = tokentypes.ParseAmount(parts[2]+" "+tokentypes.DefaultSymbol, tokentypes.DefaultSymbol)
	if err != nil {
		return "", "", 0, errors.Wrapf(err, "account %s", parts[0])
	}
	return parts[0], parts[1], balance, nil
}

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config and a genesis file",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := cmd.Flags().GetString(flagHome)
			if err != nil {
				return err
			}
			cfg, err := config.Load(home)
			if err != nil {
				return err
			}
			if chainID, _ := cmd.Flags().GetString(flagChainID); chainID != "" {
				cfg.ChainID = chainID
			}
			if err := config.Save(&cfg); err != nil {
				return err
			}

			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)
			if _, err := os.Stat(cfg.GenesisFile()); err == nil && !overwrite {
				return errors.Errorf("genesis file %s already exists", cfg.GenesisFile())
			}

			key, _ := cmd.Flags().GetString(flagKey)
			g := app.NewGenesis(key)
			g.GenesisTime = time.Now().UTC().Truncate(time.Second)

			accounts, _ := cmd.Flags().GetStringArray(flagAccount)
			for _, a := range accounts {
				name, key, balance, err := parseAccount(a)
				if err != nil {
					return err
				}
				g.AddAccount(name, key, balance)
			}
			if err := g.Validate(); err != nil {
				return errors.Wrap(err, "invalid genesis")
			}
			if err := g.Save(cfg.GenesisFile()); err != nil {
				return errors.Wrap(err, "failed to write genesis")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s in %s\n", cfg.ChainID, home)
			return nil
		},
	}
	cmd.Flags().String(flagKey, "", "public key controlling the system and token accounts")
	cmd.Flags().String(flagChainID, "", "chain id")
	cmd.Flags().StringArray(flagAccount, nil, "genesis account as name:key:balance, repeatable")
	cmd.Flags().Bool(flagOverwrite, false, "replace an existing genesis file")
	_ = cmd.MarkFlagRequired(flagKey)
	return cmd
}

func replayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay [block-log]",
		Short: "Apply a JSON lines block log, resuming after the last irreversible block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := cmd.Flags().GetString(flagHome)
			if err != nil {
				return err
			}
			cfg, err := config.Load(home)
			if err != nil {
				return err
			}

			n, err := openNode(cmd, true, app.WithIrreversibleDepth(cfg.IrreversibleDepth))
			if err != nil {
				return err
			}
			defer n.close()

			if !n.chain.Initialized() {
				g, err := app.LoadGenesis(cfg.GenesisFile())
				if err != nil {
					return err
				}
				if err := n.chain.InitChain(g, g.GenesisTime); err != nil {
					return err
				}
			}

			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "failed to open block log")
			}
			defer f.Close()

			// revision 1 is genesis, so block i of the log becomes revision i+2
			skip := n.chain.IrreversibleRevision() - 1
			var line, applied int64

			scanner := bufio.NewScanner(f)
			scanner.Buffer(make([]byte, 0, 64<<10), maxBlockLine)
			for scanner.Scan() {
				if len(strings.TrimSpace(scanner.Text())) == 0 {
					continue
				}
				line++
				if line <= skip {
					continue
				}

				var block app.Block
				if err := json.Unmarshal(scanner.Bytes(), &block); err != nil {
					return errors.Wrapf(err, "block %d", line)
				}
				if _, err := n.chain.PushBlock(block); err != nil {
					return errors.Wrapf(err, "block %d", line)
				}
				applied++
			}
			if err := scanner.Err(); err != nil {
				return errors.Wrap(err, "failed to read block log")
			}

			// a finished log is final
			if head := n.chain.HeadRevision(); head > n.chain.IrreversibleRevision() {
				if err := n.chain.Commit(head); err != nil {
					return err
				}
			}

			n.logger.Info().
				Int64("applied", applied).
				Int64("skipped", min(skip, line)).
				Int64("revision", n.chain.IrreversibleRevision()).
				Msg("replayed block log")
			return nil
		},
	}
}

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query irreversible chain state",
	}

	withNode := func(fn func(cmd *cobra.Command, n *node, args []string) (any, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			n, err := openNode(cmd, true)
			if err != nil {
				return err
			}
			defer n.close()

			out, err := fn(cmd, n, args)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		}
	}

	producersCmd := &cobra.Command{
		Use:   "producers",
		Short: "List producers by descending votes",
		RunE: withNode(func(cmd *cobra.Command, n *node, _ []string) (any, error) {
			limit, _ := cmd.Flags().GetInt(flagLimit)
			return n.chain.Producers(limit)
		}),
	}
	producersCmd.Flags().Int(flagLimit, 21, "maximum number of producers, 0 for all")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "account [name]",
			Short: "Show an account",
			Args:  cobra.ExactArgs(1),
			RunE: withNode(func(_ *cobra.Command, n *node, args []string) (any, error) {
				return n.chain.Account(args[0])
			}),
		},
		&cobra.Command{
			Use:   "producer [owner]",
			Short: "Show a producer",
			Args:  cobra.ExactArgs(1),
			RunE: withNode(func(_ *cobra.Command, n *node, args []string) (any, error) {
				return n.chain.Producer(args[0])
			}),
		},
		producersCmd,
		&cobra.Command{
			Use:   "global",
			Short: "Show the global reward state",
			RunE: withNode(func(_ *cobra.Command, n *node, _ []string) (any, error) {
				return n.chain.GlobalState()
			}),
		},
		&cobra.Command{
			Use:   "votepay [owner]",
			Short: "Project the vote pay of a producer from the current bucket",
			Args:  cobra.ExactArgs(1),
			RunE: withNode(func(_ *cobra.Command, n *node, args []string) (any, error) {
				pay, err := n.chain.ProjectedVotePay(args[0])
				if err != nil {
					return nil, err
				}
				return map[string]string{
					"producer": args[0],
					"vote_pay": tokentypes.FormatAmount(pay, tokentypes.DefaultSymbol),
				}, nil
			}),
		},
		&cobra.Command{
			Use:   "claims [owner] [limit]",
			Short: "List indexed reward claims of a producer",
			Args:  cobra.RangeArgs(1, 2),
			RunE: withNode(func(_ *cobra.Command, n *node, args []string) (any, error) {
				if n.history == nil {
					return nil, errors.New("history index is disabled")
				}
				limit := 0
				if len(args) == 2 {
					var err error
					if limit, err = strconv.Atoi(args[1]); err != nil {
						return nil, errors.Wrap(err, "limit")
					}
				}
				totals, err := n.history.Totals(args[0])
				if err != nil {
					return nil, err
				}
				claims, err := n.history.ClaimsByProducer(args[0], limit)
				if err != nil {
					return nil, err
				}
				return map[string]any{"totals": totals, "claims": claims}, nil
			}),
		},
	)
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export irreversible state as genesis",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := openNode(cmd, false)
			if err != nil {
				return err
			}
			defer n.close()

			g, err := n.chain.ExportGenesis()
			if err != nil {
				return err
			}
			if out, _ := cmd.Flags().GetString(flagOutput); out != "" {
				return g.Save(out)
			}
			return printJSON(cmd, g)
		},
	}
	cmd.Flags().String(flagOutput, "", "write to file instead of stdout")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print dposd version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Name:       %s\n", sdkversion.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "App Name:   %s\n", sdkversion.AppName)
			fmt.Fprintf(cmd.OutOrStdout(), "Version:    %s\n", sdkversion.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Commit:     %s\n", sdkversion.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "Build Tags: %s\n", sdkversion.BuildTags)
		},
	}
}
