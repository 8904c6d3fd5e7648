package keeper_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil/integration"
	sdk "github.com/cosmos/cosmos-sdk/types"

	accountskeeper "github.com/pushchain/dpos-core/x/accounts/keeper"
	accountstypes "github.com/pushchain/dpos-core/x/accounts/types"
	"github.com/pushchain/dpos-core/x/token/keeper"
	"github.com/pushchain/dpos-core/x/token/types"
)

type recordingHooks struct {
	calls []string
	err   error
}

func (h *recordingHooks) AfterStakeChanged(_ context.Context, account string) error {
	h.calls = append(h.calls, account)
	return h.err
}

type testFixture struct {
	ctx   sdk.Context
	k     *keeper.Keeper
	ak    accountskeeper.Keeper
	hooks *recordingHooks
}

func SetupTest(t *testing.T) *testFixture {
	t.Helper()
	f := new(testFixture)

	logger := log.NewTestLogger(t)
	keys := storetypes.NewKVStoreKeys(accountstypes.StoreKey, types.StoreKey)
	cms := integration.CreateMultiStore(keys, logger)

	f.ctx = sdk.NewContext(cms, cmtproto.Header{Time: time.Unix(1_700_000_000, 0)}, false, logger)
	f.ak = accountskeeper.NewKeeper(runtime.NewKVStoreService(keys[accountstypes.StoreKey]), logger)
	f.hooks = &recordingHooks{}
	f.k = keeper.NewKeeper(runtime.NewKVStoreService(keys[types.StoreKey]), logger, f.ak).
		SetHooks(types.NewMultiStakeHooks(f.hooks))

	for _, name := range []string{"system", "alice", "bob"} {
		_, err := f.ak.CreateAccount(f.ctx, name, accountstypes.NewKeyAuthority(name), accountstypes.NewKeyAuthority(name))
		require.NoError(t, err)
	}
	return f
}

func (f *testFixture) balance(t *testing.T, name string) (liquid, staked int64) {
	t.Helper()
	acc, err := f.ak.GetAccount(f.ctx, name)
	require.NoError(t, err)
	return acc.Balance, acc.Staked
}

func TestIssue(t *testing.T) {
	f := SetupTest(t)

	require.NoError(t, f.k.Issue(f.ctx, "system", 1_000_0000, "genesis"))
	supply, err := f.k.GetSupply(f.ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1_000_0000), supply)

	liquid, _ := f.balance(t, "system")
	require.Equal(t, int64(1_000_0000), liquid)

	events := f.ctx.EventManager().Events()
	require.NotEmpty(t, events)
	require.Equal(t, types.EventTypeIssue, events[len(events)-1].Type)

	tests := []struct {
		name   string
		to     string
		amount int64
		memo   string
		err    error
	}{
		{"zero amount", "system", 0, "", types.ErrInvalidAmount},
		{"negative amount", "system", -1, "", types.ErrInvalidAmount},
		{"above max supply", "system", types.DefaultMaxSupply, "", types.ErrMaxSupplyExceeded},
		{"long memo", "system", 1, string(make([]byte, types.MaxMemoLength+1)), types.ErrMemoTooLong},
		{"unknown account", "nobody", 1, "", accountstypes.ErrAccountNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, f.k.Issue(f.ctx, tc.to, tc.amount, tc.memo), tc.err)
		})
	}

	supply, err = f.k.GetSupply(f.ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1_000_0000), supply)
}

func TestTransfer(t *testing.T) {
	f := SetupTest(t)
	require.NoError(t, f.k.Issue(f.ctx, "alice", 500_0000, ""))

	require.NoError(t, f.k.Transfer(f.ctx, "alice", "bob", 200_0000, "rent"))
	alice, _ := f.balance(t, "alice")
	bob, _ := f.balance(t, "bob")
	require.Equal(t, int64(300_0000), alice)
	require.Equal(t, int64(200_0000), bob)

	require.ErrorIs(t, f.k.Transfer(f.ctx, "alice", "bob", 300_0001, ""), types.ErrInsufficientFunds)
	require.ErrorIs(t, f.k.Transfer(f.ctx, "alice", "alice", 1, ""), types.ErrInvalidTransfer)
	require.ErrorIs(t, f.k.Transfer(f.ctx, "alice", "bob", 0, ""), types.ErrInvalidAmount)
	require.ErrorIs(t, f.k.Transfer(f.ctx, "alice", "nobody", 1, ""), accountstypes.ErrAccountNotFound)

	// transfers never change the supply
	supply, err := f.k.GetSupply(f.ctx)
	require.NoError(t, err)
	require.Equal(t, int64(500_0000), supply)
}

func TestStake(t *testing.T) {
	f := SetupTest(t)
	require.NoError(t, f.k.Issue(f.ctx, "alice", 100_0000, ""))

	require.NoError(t, f.k.Stake(f.ctx, "alice", 60_0000))
	liquid, staked := f.balance(t, "alice")
	require.Equal(t, int64(40_0000), liquid)
	require.Equal(t, int64(60_0000), staked)

	require.ErrorIs(t, f.k.Stake(f.ctx, "alice", 40_0001), types.ErrInsufficientFunds)
	require.ErrorIs(t, f.k.Unstake(f.ctx, "alice", 60_0001), types.ErrInsufficientStake)

	require.NoError(t, f.k.Unstake(f.ctx, "alice", 10_0000))
	liquid, staked = f.balance(t, "alice")
	require.Equal(t, int64(50_0000), liquid)
	require.Equal(t, int64(50_0000), staked)

	require.Equal(t, []string{"alice", "alice"}, f.hooks.calls)

	t.Run("hook errors abort the change", func(t *testing.T) {
		f.hooks.err = types.ErrInvalidTransfer
		require.ErrorIs(t, f.k.Stake(f.ctx, "alice", 1), types.ErrInvalidTransfer)
		f.hooks.err = nil
	})
}

func TestGenesis(t *testing.T) {
	f := SetupTest(t)

	acc, err := f.ak.GetAccount(f.ctx, "alice")
	require.NoError(t, err)
	acc.Balance, acc.Staked = 70, 30
	require.NoError(t, f.ak.SetAccount(f.ctx, acc))

	gs := types.DefaultGenesis()
	gs.Supply = 99
	require.ErrorIs(t, f.k.InitGenesis(f.ctx, gs), types.ErrInvalidGenesis)

	gs.Supply = 100
	require.NoError(t, f.k.InitGenesis(f.ctx, gs))

	exported, err := f.k.ExportGenesis(f.ctx)
	require.NoError(t, err)
	require.Equal(t, gs, exported)
}

func TestAmountFormatting(t *testing.T) {
	tests := []struct {
		amount int64
		text   string
	}{
		{0, "0.0000 SYS"},
		{1, "0.0001 SYS"},
		{1_000_0000, "1000.0000 SYS"},
		{-12345, "-1.2345 SYS"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.text, types.FormatAmount(tc.amount, "SYS"))
		if tc.amount >= 0 {
			got, err := types.ParseAmount(tc.text, "SYS")
			require.NoError(t, err)
			require.Equal(t, tc.amount, got)
		}
	}

	for _, bad := range []string{"1.00001 SYS", "1.0 EOS", "abc SYS", "1.0"} {
		_, err := types.ParseAmount(bad, "SYS")
		require.ErrorIs(t, err, types.ErrInvalidAmount, bad)
	}
}
