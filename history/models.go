package history

import (
	"time"

	"gorm.io/gorm"
)

// ProducedBlock is one irreversible block.
type ProducedBlock struct {
	gorm.Model
	Revision  int64     `gorm:"uniqueIndex;not null"`
	Producer  string    `gorm:"index;not null"`
	Timestamp time.Time `gorm:"not null"`
	Events    int       // number of events the block emitted
}

// TableName specifies the table name for ProducedBlock.
func (ProducedBlock) TableName() string {
	return "blocks"
}

// RewardClaim is one irreversible claimrewards payout.
type RewardClaim struct {
	gorm.Model
	Revision  int64  `gorm:"uniqueIndex:idx_claim;not null"`
	Producer  string `gorm:"uniqueIndex:idx_claim;index;not null"`
	ClaimTime int64  `gorm:"not null"` // microseconds since epoch
	Minted    int64
	BlockPay  int64
	VotePay   int64
}

// TableName specifies the table name for RewardClaim.
func (RewardClaim) TableName() string {
	return "reward_claims"
}

// TotalPay is what the producer received.
func (c RewardClaim) TotalPay() int64 {
	return c.BlockPay + c.VotePay
}
