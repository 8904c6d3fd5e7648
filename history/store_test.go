package history

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/dpos-core/app"
	producerstypes "github.com/pushchain/dpos-core/x/producers/types"
)

// setupTestStore creates a history store over an in-memory database.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(InMemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, Close(db)) })
	return NewStore(db, zerolog.Nop())
}

func block(revision int64, producer string, claims ...producerstypes.ClaimResult) app.BlockResult {
	res := app.BlockResult{
		Revision:  revision,
		Producer:  producer,
		Timestamp: time.Date(2024, 3, 1, 0, 0, int(revision), 0, time.UTC),
	}
	for _, c := range claims {
		res.Events = append(res.Events, sdk.NewEvent("transfer"))
		res.Events = append(res.Events, producerstypes.NewClaimRewardsEvent(producer, res.Timestamp.UnixMicro(), c))
	}
	return res
}

func TestOnIrreversibleBlock(t *testing.T) {
	s := setupTestStore(t)

	rev, err := s.LastRevision()
	require.NoError(t, err)
	require.Zero(t, rev)

	require.NoError(t, s.OnIrreversibleBlock(block(2, "alice")))
	require.NoError(t, s.OnIrreversibleBlock(block(3, "alice", producerstypes.ClaimResult{Minted: 50, BlockPay: 10, VotePay: 20})))
	require.NoError(t, s.OnIrreversibleBlock(block(4, "bob")))
	require.NoError(t, s.OnIrreversibleBlock(block(5, "alice", producerstypes.ClaimResult{BlockPay: 5})))

	rev, err = s.LastRevision()
	require.NoError(t, err)
	require.Equal(t, int64(5), rev)

	claims, err := s.ClaimsByProducer("alice", 0)
	require.NoError(t, err)
	require.Len(t, claims, 2)
	require.Equal(t, int64(5), claims[0].Revision)
	require.Equal(t, int64(30), claims[1].TotalPay())
	require.Equal(t, int64(50), claims[1].Minted)

	claims, err = s.ClaimsByProducer("alice", 1)
	require.NoError(t, err)
	require.Len(t, claims, 1)

	totals, err := s.Totals("alice")
	require.NoError(t, err)
	require.Equal(t, ProducerTotals{Producer: "alice", Blocks: 3, Claims: 2, Paid: 35}, totals)

	totals, err = s.Totals("carol")
	require.NoError(t, err)
	require.Equal(t, ProducerTotals{Producer: "carol"}, totals)
}

func TestReplayIsIdempotent(t *testing.T) {
	s := setupTestStore(t)
	b := block(7, "alice", producerstypes.ClaimResult{BlockPay: 1, VotePay: 2})

	require.NoError(t, s.OnIrreversibleBlock(b))
	require.NoError(t, s.OnIrreversibleBlock(b))

	totals, err := s.Totals("alice")
	require.NoError(t, err)
	require.Equal(t, int64(1), totals.Blocks)
	require.Equal(t, int64(1), totals.Claims)
	require.Equal(t, int64(3), totals.Paid)
}

func TestMalformedClaimEvent(t *testing.T) {
	s := setupTestStore(t)

	b := block(2, "alice")
	b.Events = append(b.Events, sdk.NewEvent(producerstypes.EventTypeClaimRewards,
		sdk.NewAttribute(producerstypes.AttributeKeyProducer, "alice"),
		sdk.NewAttribute(producerstypes.AttributeKeyBlockPay, "lots"),
	))
	require.Error(t, s.OnIrreversibleBlock(b))

	b.Events = []sdk.Event{sdk.NewEvent(producerstypes.EventTypeClaimRewards)}
	require.Error(t, s.OnIrreversibleBlock(b))

	rev, err := s.LastRevision()
	require.NoError(t, err)
	require.Zero(t, rev)
}
