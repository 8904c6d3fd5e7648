package keeper_test

import (
	"context"
	"testing"
	"time"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil/integration"
	sdk "github.com/cosmos/cosmos-sdk/types"

	accountskeeper "github.com/pushchain/dpos-core/x/accounts/keeper"
	accountstypes "github.com/pushchain/dpos-core/x/accounts/types"
	"github.com/pushchain/dpos-core/x/producers/keeper"
	"github.com/pushchain/dpos-core/x/producers/types"
	tokenkeeper "github.com/pushchain/dpos-core/x/token/keeper"
	tokentypes "github.com/pushchain/dpos-core/x/token/types"
)

var (
	genesisTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	system      = types.Authority{types.SystemAccount}
)

// producerKey derives a well-formed compressed public key from seed.
func producerKey(seed string) string {
	bz := make([]byte, types.PublicKeyLength)
	bz[0] = 0x02
	copy(bz[1:], seed)
	return base58.Encode(bz)
}

type testFixture struct {
	ctx sdk.Context
	k   *keeper.Keeper
	ak  accountskeeper.Keeper
	tk  *tokenkeeper.Keeper
}

func SetupTest(t *testing.T) *testFixture {
	t.Helper()
	f := new(testFixture)

	logger := log.NewTestLogger(t)
	keys := storetypes.NewKVStoreKeys(accountstypes.StoreKey, tokentypes.StoreKey, types.StoreKey)
	cms := integration.CreateMultiStore(keys, logger)

	f.ctx = sdk.NewContext(cms, cmtproto.Header{Time: genesisTime}, false, logger)
	f.ak = accountskeeper.NewKeeper(runtime.NewKVStoreService(keys[accountstypes.StoreKey]), logger)
	f.tk = tokenkeeper.NewKeeper(runtime.NewKVStoreService(keys[tokentypes.StoreKey]), logger, f.ak)
	f.k = keeper.NewKeeper(runtime.NewKVStoreService(keys[types.StoreKey]), logger, f.ak, f.tk)
	f.tk.SetHooks(tokentypes.NewMultiStakeHooks(f.k.Hooks()))

	for _, name := range []string{types.SystemAccount, "alice", "bob", "carol", "dave"} {
		_, err := f.ak.CreateAccount(f.ctx, name, accountstypes.NewKeyAuthority(name), accountstypes.NewKeyAuthority(name))
		require.NoError(t, err)
	}
	return f
}

func (f *testFixture) register(t *testing.T, owners ...string) {
	t.Helper()
	for _, owner := range owners {
		require.NoError(t, f.k.RegisterProducer(f.ctx, types.Authority{owner}, owner, producerKey(owner), ""))
	}
}

func (f *testFixture) setVotes(t *testing.T, owner string, votes float64, unpaid uint32) {
	t.Helper()
	p, err := f.k.GetProducer(f.ctx, owner)
	require.NoError(t, err)
	p.TotalVotes = votes
	p.UnpaidBlocks = unpaid
	require.NoError(t, f.k.Producers.Set(f.ctx, owner, p))
}

func (f *testFixture) global(t *testing.T) types.GlobalState {
	t.Helper()
	gs, err := f.k.GetGlobalState(f.ctx)
	require.NoError(t, err)
	return gs
}

func (f *testFixture) balance(t *testing.T, name string) int64 {
	t.Helper()
	b, err := f.tk.GetBalance(f.ctx, name)
	require.NoError(t, err)
	return b
}

// requireConservation checks that every issued token is held by some account.
func (f *testFixture) requireConservation(t *testing.T) {
	t.Helper()
	supply, err := f.tk.GetSupply(f.ctx)
	require.NoError(t, err)
	accounts, err := f.ak.GetAllAccounts(f.ctx)
	require.NoError(t, err)
	var held int64
	for _, acc := range accounts {
		held += acc.Balance + acc.Staked
	}
	require.Equal(t, supply, held)
}

// requireUnpaidTotal checks that the unpaid blocks of all producers add up to
// the global total.
func (f *testFixture) requireUnpaidTotal(t *testing.T) {
	t.Helper()
	var sum uint32
	err := f.k.Producers.Walk(f.ctx, nil, func(_ string, p types.Producer) (bool, error) {
		sum += p.UnpaidBlocks
		return false, nil
	})
	require.NoError(t, err)
	require.Equal(t, f.global(t).TotalUnpaidBlocks, sum)
}

type countingElector struct {
	slots []uint32
}

func (e *countingElector) UpdateElectedProducers(_ context.Context, ts types.BlockTimestamp) error {
	e.slots = append(e.slots, ts.Slot)
	return nil
}

func TestBlockTimestamp(t *testing.T) {
	epoch := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, uint32(0), types.NewBlockTimestamp(epoch).Slot)
	require.Equal(t, uint32(3), types.NewBlockTimestamp(epoch.Add(1750*time.Millisecond)).Slot)
	require.Equal(t, uint32(0), types.NewBlockTimestamp(epoch.Add(-time.Hour)).Slot)
	require.Equal(t, epoch.Add(1500*time.Millisecond), types.BlockTimestamp{Slot: 3}.Time())
}

func TestOnBlockDormant(t *testing.T) {
	f := SetupTest(t)
	f.register(t, "alice")

	ts := types.NewBlockTimestamp(f.ctx.BlockTime())
	require.NoError(t, f.k.OnBlock(f.ctx, system, ts, "alice"))

	require.Equal(t, types.GlobalState{}, f.global(t))
	p, err := f.k.GetProducer(f.ctx, "alice")
	require.NoError(t, err)
	require.Zero(t, p.UnpaidBlocks)
}

func TestOnBlock(t *testing.T) {
	f := SetupTest(t)
	f.register(t, "alice")
	elector := &countingElector{}
	f.k.SetElector(elector)
	require.NoError(t, f.k.Global.Set(f.ctx, types.GlobalState{TotalActivatedStake: types.MinActivatedStake}))

	ts := types.NewBlockTimestamp(f.ctx.BlockTime())
	require.ErrorIs(t, f.k.OnBlock(f.ctx, types.Authority{"alice"}, ts, "alice"), types.ErrUnauthorized)

	require.NoError(t, f.k.OnBlock(f.ctx, system, ts, "alice"))
	gs := f.global(t)
	require.Equal(t, genesisTime.UnixMicro(), gs.LastPervoteBucketFill)
	require.Equal(t, uint32(1), gs.TotalUnpaidBlocks)
	require.Equal(t, ts, gs.LastProducerScheduleUpdate)

	p, err := f.k.GetProducer(f.ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, uint32(1), p.UnpaidBlocks)
	require.Equal(t, ts, p.LastProducedBlockTime)

	// blocks of unregistered producers are not counted
	require.NoError(t, f.k.OnBlock(f.ctx, system, ts, "carol"))
	require.Equal(t, uint32(1), f.global(t).TotalUnpaidBlocks)

	t.Run("schedule updates are throttled", func(t *testing.T) {
		f.ctx = f.ctx.WithBlockTime(f.ctx.BlockTime().Add(time.Minute))
		for _, d := range []uint32{1, 60, 120, 121, 200, 242} {
			require.NoError(t, f.k.OnBlock(f.ctx, system, types.BlockTimestamp{Slot: ts.Slot + d}, "alice"))
		}
		require.Equal(t, []uint32{ts.Slot, ts.Slot + 121, ts.Slot + 242}, elector.slots)

		// the fill time is only set once
		require.Equal(t, genesisTime.UnixMicro(), f.global(t).LastPervoteBucketFill)
		require.Equal(t, uint32(7), f.global(t).TotalUnpaidBlocks)
	})
}

func TestClaimRewardsMintsAndPays(t *testing.T) {
	f := SetupTest(t)
	f.register(t, "alice", "bob")
	require.NoError(t, f.tk.Issue(f.ctx, "bob", 1_000_000_0000, ""))

	f.setVotes(t, "alice", 100, 1)
	f.setVotes(t, "bob", 300, 3)
	require.NoError(t, f.k.Global.Set(f.ctx, types.GlobalState{
		TotalActivatedStake:     types.MinActivatedStake,
		TotalUnpaidBlocks:       4,
		TotalProducerVoteWeight: 400,
		LastPervoteBucketFill:   genesisTime.UnixMicro(),
	}))

	f.ctx = f.ctx.WithBlockTime(genesisTime.Add(24 * time.Hour))
	res, err := f.k.ClaimRewards(f.ctx, types.Authority{"alice"}, "alice")
	require.NoError(t, err)
	require.Equal(t, types.ClaimResult{Minted: 1_340_384, BlockPay: 16_754, VotePay: 50_264}, res)

	gs := f.global(t)
	require.Equal(t, int64(1_072_308), gs.Savings)
	require.Equal(t, int64(67_019-16_754), gs.PerblockBucket)
	require.Equal(t, int64(201_057-50_264), gs.PervoteBucket)
	require.Equal(t, uint32(3), gs.TotalUnpaidBlocks)
	require.Equal(t, f.ctx.BlockTime().UnixMicro(), gs.LastPervoteBucketFill)

	require.Equal(t, int64(67_018), f.balance(t, "alice"))
	require.Equal(t, int64(1_340_384-67_018), f.balance(t, types.SystemAccount))
	supply, err := f.tk.GetSupply(f.ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1_000_000_0000+1_340_384), supply)
	f.requireConservation(t)

	p, err := f.k.GetProducer(f.ctx, "alice")
	require.NoError(t, err)
	require.Zero(t, p.UnpaidBlocks)
	require.Equal(t, f.ctx.BlockTime().UnixMicro(), p.LastClaimTime)

	bob, err := f.k.GetProducer(f.ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, uint32(3), bob.UnpaidBlocks)
	f.requireUnpaidTotal(t)

	events := f.ctx.EventManager().Events()
	require.Equal(t, types.EventTypeClaimRewards, events[len(events)-1].Type)

	t.Run("second claim within a day", func(t *testing.T) {
		f.ctx = f.ctx.WithBlockTime(f.ctx.BlockTime().Add(24 * time.Hour))
		_, err := f.k.ClaimRewards(f.ctx, types.Authority{"alice"}, "alice")
		require.ErrorIs(t, err, types.ErrClaimTooSoon)
	})
}

func TestUnpaidBlocksMatchTotal(t *testing.T) {
	f := SetupTest(t)
	f.register(t, "alice", "bob", "carol")
	f.k.SetElector(&countingElector{})
	require.NoError(t, f.tk.Issue(f.ctx, "dave", 1_000_000_0000, ""))
	require.NoError(t, f.k.Global.Set(f.ctx, types.GlobalState{TotalActivatedStake: types.MinActivatedStake}))

	ts := types.NewBlockTimestamp(f.ctx.BlockTime())
	produce := func(producers ...string) {
		for _, producer := range producers {
			ts.Slot++
			require.NoError(t, f.k.OnBlock(f.ctx, system, ts, producer))
			f.requireUnpaidTotal(t)
		}
	}

	// dave is not a producer and is never counted
	produce("alice", "bob", "alice", "carol", "dave", "bob", "bob")
	require.Equal(t, uint32(6), f.global(t).TotalUnpaidBlocks)

	before := make(map[string]types.Producer)
	for _, owner := range []string{"bob", "carol"} {
		p, err := f.k.GetProducer(f.ctx, owner)
		require.NoError(t, err)
		before[owner] = p
	}

	f.ctx = f.ctx.WithBlockTime(genesisTime.Add(25 * time.Hour))
	res, err := f.k.ClaimRewards(f.ctx, types.Authority{"alice"}, "alice")
	require.NoError(t, err)
	require.Positive(t, res.BlockPay)
	f.requireUnpaidTotal(t)
	require.Equal(t, uint32(4), f.global(t).TotalUnpaidBlocks)

	for owner, p := range before {
		got, err := f.k.GetProducer(f.ctx, owner)
		require.NoError(t, err)
		require.Equal(t, p, got, owner)
	}

	produce("carol", "alice", "bob")
	require.Equal(t, uint32(7), f.global(t).TotalUnpaidBlocks)
	f.requireConservation(t)
}

func TestClaimRewardsBySystemAccount(t *testing.T) {
	f := SetupTest(t)
	f.register(t, types.SystemAccount)
	require.NoError(t, f.tk.Issue(f.ctx, "bob", 1_000_000_0000, ""))

	f.setVotes(t, types.SystemAccount, 100, 2)
	require.NoError(t, f.k.Global.Set(f.ctx, types.GlobalState{
		TotalActivatedStake:     types.MinActivatedStake,
		TotalUnpaidBlocks:       2,
		TotalProducerVoteWeight: 100,
		LastPervoteBucketFill:   genesisTime.UnixMicro(),
	}))

	f.ctx = f.ctx.WithBlockTime(genesisTime.Add(24 * time.Hour))
	res, err := f.k.ClaimRewards(f.ctx, system, types.SystemAccount)
	require.NoError(t, err)
	require.Positive(t, res.TotalPay())

	// the pay never leaves the account it was minted to
	require.Equal(t, res.Minted, f.balance(t, types.SystemAccount))
	require.Zero(t, f.global(t).TotalUnpaidBlocks)
	f.requireUnpaidTotal(t)
	f.requireConservation(t)
}

func TestClaimRewardsErrors(t *testing.T) {
	f := SetupTest(t)
	f.register(t, "alice", "bob")
	require.NoError(t, f.k.UnregisterProducer(f.ctx, types.Authority{"bob"}, "bob"))

	_, err := f.k.ClaimRewards(f.ctx, types.Authority{"alice"}, "alice")
	require.ErrorIs(t, err, types.ErrStakeNotActivated)

	require.NoError(t, f.k.Global.Set(f.ctx, types.GlobalState{TotalActivatedStake: types.MinActivatedStake}))
	tests := []struct {
		name  string
		auth  types.Authority
		owner string
		err   error
	}{
		{"missing authority", types.Authority{"bob"}, "alice", types.ErrUnauthorized},
		{"unknown producer", types.Authority{"carol"}, "carol", types.ErrProducerNotFound},
		{"inactive producer", types.Authority{"bob"}, "bob", types.ErrProducerInactive},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.k.ClaimRewards(f.ctx, tc.auth, tc.owner)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestClaimRewardsBlockPay(t *testing.T) {
	f := SetupTest(t)
	f.register(t, "alice")
	require.NoError(t, f.tk.Issue(f.ctx, types.SystemAccount, 400_0000, ""))

	f.setVotes(t, "alice", 0, 1)
	require.NoError(t, f.k.Global.Set(f.ctx, types.GlobalState{
		TotalActivatedStake:   types.MinActivatedStake,
		TotalUnpaidBlocks:     4,
		PerblockBucket:        400_0000,
		LastPervoteBucketFill: genesisTime.UnixMicro(),
	}))

	res, err := f.k.ClaimRewards(f.ctx, types.Authority{"alice"}, "alice")
	require.NoError(t, err)
	require.Equal(t, types.ClaimResult{BlockPay: 100_0000}, res)

	gs := f.global(t)
	require.Equal(t, int64(300_0000), gs.PerblockBucket)
	require.Equal(t, uint32(3), gs.TotalUnpaidBlocks)
	require.Equal(t, int64(100_0000), f.balance(t, "alice"))
	f.requireConservation(t)
}

func TestClaimRewardsVotePayFloor(t *testing.T) {
	tests := []struct {
		name   string
		bucket int64
		pay    int64
	}{
		{"below floor is not paid", 19_998, 0},
		{"floor is paid", 20_000, types.MinVotePay},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := SetupTest(t)
			f.register(t, "alice")
			require.NoError(t, f.tk.Issue(f.ctx, types.SystemAccount, tc.bucket, ""))

			f.setVotes(t, "alice", 1, 0)
			require.NoError(t, f.k.Global.Set(f.ctx, types.GlobalState{
				TotalActivatedStake:     types.MinActivatedStake,
				TotalProducerVoteWeight: 2,
				PervoteBucket:           tc.bucket,
				LastPervoteBucketFill:   genesisTime.UnixMicro(),
			}))

			res, err := f.k.ClaimRewards(f.ctx, types.Authority{"alice"}, "alice")
			require.NoError(t, err)
			require.Equal(t, tc.pay, res.VotePay)
			require.Equal(t, tc.bucket-tc.pay, f.global(t).PervoteBucket)
			require.Equal(t, tc.pay, f.balance(t, "alice"))
		})
	}
}

func TestPaymentPerVote(t *testing.T) {
	f := SetupTest(t)
	f.register(t, "alice", "bob", "carol", "dave", types.SystemAccount)
	f.setVotes(t, "alice", 600, 0)
	f.setVotes(t, "bob", 300, 0)
	f.setVotes(t, "carol", 100, 0)
	f.setVotes(t, "dave", 50, 0)
	// inactive producers hold votes but are skipped
	f.setVotes(t, types.SystemAccount, 700, 0)
	require.NoError(t, f.k.UnregisterProducer(f.ctx, system, types.SystemAccount))

	const bucket = 10_000_000
	tests := []struct {
		name   string
		owner  string
		votes  float64
		bucket int64
		pay    int64
	}{
		{"top producer", "alice", 600, bucket, 6_000_000},
		{"second producer", "bob", 300, bucket, 3_000_000},
		{"at the daily minimum", "carol", 100, bucket, 1_000_000},
		{"below the daily minimum", "dave", 50, bucket, 0},
		{"inactive producer", types.SystemAccount, 700, bucket, 0},
		{"unknown producer", "nobody", 10, bucket, 0},
		{"small bucket", "alice", 600, types.MinDailyAmount - 1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pay, err := f.k.PaymentPerVote(f.ctx, tc.owner, tc.votes, tc.bucket)
			require.NoError(t, err)
			require.Equal(t, tc.pay, pay)
		})
	}
}

func TestRegisterProducer(t *testing.T) {
	f := SetupTest(t)

	require.ErrorIs(t, f.k.RegisterProducer(f.ctx, types.Authority{"bob"}, "alice", producerKey("alice"), ""), types.ErrUnauthorized)
	for _, key := range []string{"", "not-base58", base58.Encode([]byte{0x02, 1, 2}), base58.Encode(make([]byte, types.PublicKeyLength))} {
		require.ErrorIs(t, f.k.RegisterProducer(f.ctx, types.Authority{"alice"}, "alice", key, ""), types.ErrInvalidProducerKey, key)
	}
	require.ErrorIs(t, f.k.RegisterProducer(f.ctx, types.Authority{"alice"}, "alice", producerKey("alice"), string(make([]byte, types.MaxURLLength+1))), types.ErrInvalidURL)
	require.ErrorIs(t, f.k.RegisterProducer(f.ctx, types.Authority{"nobody"}, "nobody", producerKey("nobody"), ""), accountstypes.ErrAccountNotFound)
	require.ErrorIs(t, f.k.UnregisterProducer(f.ctx, types.Authority{"alice"}, "alice"), types.ErrProducerNotFound)

	require.NoError(t, f.k.RegisterProducer(f.ctx, types.Authority{"alice"}, "alice", producerKey("one"), "https://alice.example"))
	f.setVotes(t, "alice", 42, 3)

	require.NoError(t, f.k.UnregisterProducer(f.ctx, types.Authority{"alice"}, "alice"))
	p, err := f.k.GetProducer(f.ctx, "alice")
	require.NoError(t, err)
	require.False(t, p.Active())
	require.Equal(t, 42.0, p.TotalVotes)

	// registering again reactivates and keeps the counters
	require.NoError(t, f.k.RegisterProducer(f.ctx, types.Authority{"alice"}, "alice", producerKey("two"), ""))
	p, err = f.k.GetProducer(f.ctx, "alice")
	require.NoError(t, err)
	require.True(t, p.Active())
	require.Equal(t, producerKey("two"), p.ProducerKey)
	require.Equal(t, uint32(3), p.UnpaidBlocks)
}

func TestVoteProducers(t *testing.T) {
	f := SetupTest(t)
	f.register(t, "alice", "bob", "dave")
	require.NoError(t, f.k.UnregisterProducer(f.ctx, types.Authority{"dave"}, "dave"))
	require.NoError(t, f.tk.Issue(f.ctx, "carol", 1000_0000, ""))
	require.NoError(t, f.tk.Stake(f.ctx, "carol", 600_0000))

	carol := types.Authority{"carol"}
	require.NoError(t, f.k.VoteProducers(f.ctx, carol, "carol", []string{"alice", "bob"}))

	votes := func(owner string) float64 {
		p, err := f.k.GetProducer(f.ctx, owner)
		require.NoError(t, err)
		return p.TotalVotes
	}
	require.Equal(t, 600_0000.0, votes("alice"))
	require.Equal(t, 600_0000.0, votes("bob"))
	gs := f.global(t)
	require.Equal(t, 1200_0000.0, gs.TotalProducerVoteWeight)
	require.Equal(t, int64(600_0000), gs.TotalActivatedStake)
	require.Zero(t, gs.ThreshActivatedStakeTime)

	// stake changes recast existing votes
	require.NoError(t, f.tk.Stake(f.ctx, "carol", 100_0000))
	require.Equal(t, 700_0000.0, votes("alice"))
	require.Equal(t, 1400_0000.0, f.global(t).TotalProducerVoteWeight)
	require.Equal(t, int64(600_0000), f.global(t).TotalActivatedStake)

	require.NoError(t, f.k.VoteProducers(f.ctx, carol, "carol", []string{"bob"}))
	require.Zero(t, votes("alice"))
	require.Equal(t, 700_0000.0, votes("bob"))
	require.Equal(t, 700_0000.0, f.global(t).TotalProducerVoteWeight)

	ranked, err := f.k.ProducersByVotes(f.ctx, 0)
	require.NoError(t, err)
	var order []string
	for _, p := range ranked {
		order = append(order, p.Owner)
	}
	require.Equal(t, []string{"bob", "alice", "dave"}, order)

	top, err := f.k.ProducersByVotes(f.ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)

	tests := []struct {
		name      string
		producers []string
		err       error
	}{
		{"unsorted", []string{"bob", "alice"}, types.ErrInvalidVote},
		{"duplicate", []string{"alice", "alice"}, types.ErrInvalidVote},
		{"inactive producer", []string{"dave"}, types.ErrInvalidVote},
		{"unknown producer", []string{"zed"}, types.ErrInvalidVote},
		{"too many", make([]string, types.DefaultMaxVotedProducers+1), types.ErrInvalidVote},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, f.k.VoteProducers(f.ctx, carol, "carol", tc.producers), tc.err)
		})
	}
	require.ErrorIs(t, f.k.VoteProducers(f.ctx, carol, "alice", nil), types.ErrUnauthorized)
}

func TestActivationThreshold(t *testing.T) {
	f := SetupTest(t)
	f.register(t, "alice")
	require.NoError(t, f.k.Global.Set(f.ctx, types.GlobalState{TotalActivatedStake: types.MinActivatedStake - 10}))
	require.NoError(t, f.tk.Issue(f.ctx, "carol", 10, ""))
	require.NoError(t, f.tk.Stake(f.ctx, "carol", 10))

	require.NoError(t, f.k.VoteProducers(f.ctx, types.Authority{"carol"}, "carol", []string{"alice"}))
	gs := f.global(t)
	require.Equal(t, types.MinActivatedStake, gs.TotalActivatedStake)
	require.Equal(t, genesisTime.UnixMicro(), gs.ThreshActivatedStakeTime)
}

func TestTopVotesElector(t *testing.T) {
	f := SetupTest(t)
	f.register(t, "alice", "bob", "carol", "dave")
	require.NoError(t, f.k.Params.Set(f.ctx, types.Params{MaxProducers: 2, MaxVotedProducers: 30}))
	f.setVotes(t, "alice", 10, 0)
	f.setVotes(t, "bob", 30, 0)
	f.setVotes(t, "carol", 20, 0)
	f.setVotes(t, "dave", 40, 0)
	require.NoError(t, f.k.UnregisterProducer(f.ctx, types.Authority{"dave"}, "dave"))
	require.NoError(t, f.k.Global.Set(f.ctx, types.GlobalState{TotalActivatedStake: types.MinActivatedStake}))

	ts := types.NewBlockTimestamp(f.ctx.BlockTime())
	require.NoError(t, f.k.OnBlock(f.ctx, system, ts, "alice"))

	schedule, err := f.k.GetSchedule(f.ctx)
	require.NoError(t, err)
	require.Equal(t, types.ProducerSchedule{
		Version: 1,
		Producers: []types.ProducerKey{
			{Name: "bob", Key: producerKey("bob")},
			{Name: "carol", Key: producerKey("carol")},
		},
	}, schedule)

	// an unchanged election keeps the version
	require.NoError(t, f.k.OnBlock(f.ctx, system, types.BlockTimestamp{Slot: ts.Slot + 121}, "alice"))
	schedule, err = f.k.GetSchedule(f.ctx)
	require.NoError(t, err)
	require.Equal(t, uint32(1), schedule.Version)
}

func TestGenesis(t *testing.T) {
	f := SetupTest(t)

	bad := types.DefaultGenesis()
	bad.Producers = []types.Producer{{Owner: "alice", UnpaidBlocks: 2}}
	require.ErrorIs(t, f.k.InitGenesis(f.ctx, bad), types.ErrInvalidGenesis)

	gs := types.DefaultGenesis()
	gs.Global = types.GlobalState{TotalActivatedStake: 5, TotalUnpaidBlocks: 3, PerblockBucket: 7}
	gs.Producers = []types.Producer{
		{Owner: "alice", ProducerKey: "KEY_alice", TotalVotes: 5, UnpaidBlocks: 1},
		{Owner: "bob", ProducerKey: "KEY_bob", TotalVotes: 9, UnpaidBlocks: 2},
	}
	gs.Schedule = types.ProducerSchedule{Version: 3, Producers: []types.ProducerKey{{Name: "bob", Key: "KEY_bob"}}}
	require.NoError(t, f.k.InitGenesis(f.ctx, gs))

	exported, err := f.k.ExportGenesis(f.ctx)
	require.NoError(t, err)
	require.Equal(t, gs, exported)
}
