package app

import (
	"cosmossdk.io/collections"
)

// StoreKey is the store holding chain-level bookkeeping.
const StoreKey = "chain"

var (
	// HeadBlockTimeKey saves the timestamp of the newest applied block, in
	// unix nanoseconds.
	HeadBlockTimeKey  = collections.NewPrefix(0)
	HeadBlockTimeName = "head_block_time"
)
