package types

import (
	"encoding/json"
	"math"
)

// Producer is a block producer candidate. A producer with an empty key is
// inactive; records are never deleted.
type Producer struct {
	Owner                 string         `json:"owner"`
	ProducerKey           string         `json:"producer_key"`
	URL                   string         `json:"url,omitempty"`
	TotalVotes            float64        `json:"total_votes"`
	UnpaidBlocks          uint32         `json:"unpaid_blocks"`
	LastProducedBlockTime BlockTimestamp `json:"last_produced_block_time"`
	LastClaimTime         int64          `json:"last_claim_time"`
}

// Active reports whether the producer has a signing key.
func (p Producer) Active() bool {
	return p.ProducerKey != ""
}

func (p Producer) String() string {
	bz, err := json.Marshal(p)
	if err != nil {
		panic(err)
	}

	return string(bz)
}

// VotesKey maps total votes to an index key that sorts ascending in order of
// descending votes. Votes are never negative.
func VotesKey(votes float64) uint64 {
	return ^math.Float64bits(votes)
}

// GlobalState is the singleton chain state shared by block bookkeeping and
// the reward engine.
type GlobalState struct {
	TotalActivatedStake        int64          `json:"total_activated_stake"`
	ThreshActivatedStakeTime   int64          `json:"thresh_activated_stake_time"`
	TotalUnpaidBlocks          uint32         `json:"total_unpaid_blocks"`
	TotalProducerVoteWeight    float64        `json:"total_producer_vote_weight"`
	PervoteBucket              int64          `json:"pervote_bucket"`
	PerblockBucket             int64          `json:"perblock_bucket"`
	Savings                    int64          `json:"savings"`
	LastPervoteBucketFill      int64          `json:"last_pervote_bucket_fill"`
	LastProducerScheduleUpdate BlockTimestamp `json:"last_producer_schedule_update"`
}

func (g GlobalState) String() string {
	bz, err := json.Marshal(g)
	if err != nil {
		panic(err)
	}

	return string(bz)
}

// ProducerKey is one entry of a producer schedule.
type ProducerKey struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// ProducerSchedule is the elected producer set.
type ProducerSchedule struct {
	Version   uint32        `json:"version"`
	Producers []ProducerKey `json:"producers"`
}

// ClaimResult reports what a successful reward claim minted and paid.
type ClaimResult struct {
	Minted   int64 `json:"minted"`
	BlockPay int64 `json:"block_pay"`
	VotePay  int64 `json:"vote_pay"`
}

// TotalPay is the amount transferred to the producer.
func (c ClaimResult) TotalPay() int64 {
	return c.BlockPay + c.VotePay
}
