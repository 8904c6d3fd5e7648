package app

import (
	"encoding/json"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	accountstypes "github.com/pushchain/dpos-core/x/accounts/types"
)

// Action invokes Name on the Account contract with the authority of every
// listed permission level.
type Action struct {
	Account       string                          `json:"account"`
	Name          string                          `json:"name"`
	Authorization []accountstypes.PermissionLevel `json:"authorization"`
	Data          json.RawMessage                 `json:"data"`
}

// Transaction is applied atomically. SignedKeys are the public keys whose
// signatures over the transaction were already verified.
type Transaction struct {
	Actions    []Action `json:"actions"`
	SignedKeys []string `json:"signed_keys"`
}

// Block is a producer-signed batch of transactions.
type Block struct {
	Timestamp    time.Time     `json:"timestamp"`
	Producer     string        `json:"producer"`
	Transactions []Transaction `json:"transactions"`
}

// BlockResult is the outcome of a pushed block.
type BlockResult struct {
	Revision  int64       `json:"revision"`
	Timestamp time.Time   `json:"timestamp"`
	Producer  string      `json:"producer"`
	Events    []sdk.Event `json:"events"`
}
