package types

import (
	"context"

	accountstypes "github.com/pushchain/dpos-core/x/accounts/types"
)

// AccountKeeper holds the balances this module moves.
type AccountKeeper interface {
	GetAccount(ctx context.Context, name string) (accountstypes.Account, error)
	SetAccount(ctx context.Context, acc accountstypes.Account) error
	GetAllAccounts(ctx context.Context) ([]accountstypes.Account, error)
}
