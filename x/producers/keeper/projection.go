package keeper

import (
	"context"

	"github.com/pushchain/dpos-core/x/producers/types"
)

// PaymentPerVote projects the daily vote pay of owner holding ownersVotes
// when pervoteBucket is split among producers in vote rank order. Producers
// whose share would fall below the daily minimum cut the ranking off and are
// not paid.
func (k *Keeper) PaymentPerVote(ctx context.Context, owner string, ownersVotes float64, pervoteBucket int64) (int64, error) {
	if pervoteBucket < types.MinDailyAmount {
		return 0, nil
	}

	var (
		total    float64
		toBePaid bool
	)
	bucket := float64(pervoteBucket)
	err := k.WalkProducersByVotes(ctx, func(p types.Producer) (bool, error) {
		if !(p.TotalVotes > 0) {
			return true, nil
		}
		if !p.Active() {
			return false, nil
		}
		if p.Owner == owner {
			toBePaid = true
		}

		total += p.TotalVotes
		running := p.TotalVotes * bucket / total
		if running < float64(types.MinDailyAmount) {
			if p.Owner == owner {
				toBePaid = false
			}
			total -= p.TotalVotes
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		return 0, err
	}

	if !toBePaid {
		return 0, nil
	}
	return int64((bucket * ownersVotes) / total), nil
}
