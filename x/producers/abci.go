package producers

import (
	"time"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/pushchain/dpos-core/x/producers/keeper"
	"github.com/pushchain/dpos-core/x/producers/types"
)

// BeginBlocker runs the per block bookkeeping for the producer of the block in
// ctx under the system account's authority.
func BeginBlocker(ctx sdk.Context, k *keeper.Keeper, producer string) error {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), telemetry.MetricKeyBeginBlocker)

	return k.OnBlock(ctx, types.Authority{types.SystemAccount}, types.NewBlockTimestamp(ctx.BlockTime()), producer)
}
