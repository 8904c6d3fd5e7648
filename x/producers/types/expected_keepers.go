package types

import (
	"context"

	accountstypes "github.com/pushchain/dpos-core/x/accounts/types"
)

// AccountKeeper holds voter stake and vote counters.
type AccountKeeper interface {
	GetAccount(ctx context.Context, name string) (accountstypes.Account, error)
	SetAccount(ctx context.Context, acc accountstypes.Account) error
}

// TokenKeeper is the ledger rewards are minted and paid through.
type TokenKeeper interface {
	Issue(ctx context.Context, to string, amount int64, memo string) error
	Transfer(ctx context.Context, from, to string, amount int64, memo string) error
	GetSupply(ctx context.Context) (int64, error)
}

// Authorizer answers whether the current request carries the authority of an
// account.
type Authorizer interface {
	RequireAuth(account string) error
}

// ScheduleElector picks the active producer set.
type ScheduleElector interface {
	UpdateElectedProducers(ctx context.Context, timestamp BlockTimestamp) error
}

// Authority grants the authority of a fixed set of accounts.
type Authority []string

func (a Authority) RequireAuth(account string) error {
	for _, name := range a {
		if name == account {
			return nil
		}
	}
	return ErrUnauthorized.Wrapf("missing authority of %s", account)
}
