package types

import (
	"time"
)

const (
	// BlockIntervalMs is the length of one block slot.
	BlockIntervalMs = 500
	// BlockTimestampEpochMs is 2000-01-01T00:00:00Z.
	BlockTimestampEpochMs = 946_684_800_000
)

// BlockTimestamp counts half second slots since 2000-01-01T00:00:00Z.
type BlockTimestamp struct {
	Slot uint32 `json:"slot"`
}

// NewBlockTimestamp returns the slot t falls in. Times before the epoch map
// to slot 0.
func NewBlockTimestamp(t time.Time) BlockTimestamp {
	ms := t.UnixMilli() - BlockTimestampEpochMs
	if ms < 0 {
		return BlockTimestamp{}
	}
	return BlockTimestamp{Slot: uint32(ms / BlockIntervalMs)}
}

// Time returns the start of the slot.
func (b BlockTimestamp) Time() time.Time {
	return time.UnixMilli(BlockTimestampEpochMs + int64(b.Slot)*BlockIntervalMs).UTC()
}

func (b BlockTimestamp) String() string {
	return b.Time().Format("2006-01-02T15:04:05.000")
}
