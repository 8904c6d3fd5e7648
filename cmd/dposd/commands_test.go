package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pushchain/dpos-core/app"
	accountstypes "github.com/pushchain/dpos-core/x/accounts/types"
)

func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--"+flagHome, home))
	err := cmd.Execute()
	return out.String(), err
}

func writeBlockLog(t *testing.T, path string, start time.Time, n int) {
	t.Helper()
	transfer, err := app.NewAction(app.TokenContract, "transfer",
		app.Transfer{From: "alice", To: "bob", Quantity: "1.5000 SYS"},
		accountstypes.PermissionLevel{Actor: "alice", Permission: accountstypes.ActivePermission})
	require.NoError(t, err)

	var buf bytes.Buffer
	for i := 1; i <= n; i++ {
		bz, err := json.Marshal(app.Block{
			Timestamp: start.Add(time.Duration(i) * time.Second),
			Producer:  "alice",
			Transactions: []app.Transaction{{
				Actions:    []app.Action{transfer},
				SignedKeys: []string{"ALICE_KEY"},
			}},
		})
		require.NoError(t, err)
		buf.Write(bz)
		buf.WriteByte('\n')
	}
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func TestParseAccount(t *testing.T) {
	name, key, balance, err := parseAccount("alice:ALICE_KEY:12.5")
	require.NoError(t, err)
	require.Equal(t, "alice", name)
	require.Equal(t, "ALICE_KEY", key)
	require.Equal(t, int64(12_5000), balance)

	for _, bad := range []string{"alice", "alice:KEY", "alice:KEY:lots"} {
		_, _, _, err := parseAccount(bad)
		require.Error(t, err, bad)
	}
}

func TestInitReplayQuery(t *testing.T) {
	home := t.TempDir()

	_, err := run(t, home, "init", "--key", "SYS_KEY",
		"--account", "alice:ALICE_KEY:100.0000", "--account", "bob:BOB_KEY:0")
	require.NoError(t, err)
	_, err = run(t, home, "init", "--key", "SYS_KEY")
	require.ErrorContains(t, err, "already exists")

	var g app.GenesisState
	bz, err := os.ReadFile(filepath.Join(home, "config", "genesis.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(bz, &g))

	blocks := filepath.Join(t.TempDir(), "blocks.jsonl")
	writeBlockLog(t, blocks, g.GenesisTime, 3)
	_, err = run(t, home, "replay", blocks)
	require.NoError(t, err)

	// replaying again skips the irreversible blocks
	_, err = run(t, home, "replay", blocks)
	require.NoError(t, err)

	out, err := run(t, home, "query", "account", "bob")
	require.NoError(t, err)
	var bob accountstypes.Account
	require.NoError(t, json.Unmarshal([]byte(out), &bob))
	require.Equal(t, int64(4_5000), bob.Balance)

	out, err = run(t, home, "query", "claims", "alice")
	require.NoError(t, err)
	require.Contains(t, out, `"Blocks": 3`)

	exported := filepath.Join(t.TempDir(), "export.json")
	_, err = run(t, home, "export", "--"+flagOutput, exported)
	require.NoError(t, err)
	g2, err := app.LoadGenesis(exported)
	require.NoError(t, err)
	require.Equal(t, int64(100_0000), g2.Token.Supply)

	out, err = run(t, home, "version")
	require.NoError(t, err)
	require.Contains(t, out, "Version:")
}
