package types

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	EventTypeClaimRewards     = "claim_rewards"
	EventTypeRegisterProducer = "register_producer"
	EventTypeUnregister       = "unregister_producer"
	EventTypeVoteProducers    = "vote_producers"
	EventTypeNewSchedule      = "new_producer_schedule"

	AttributeKeyProducer  = "producer"
	AttributeKeyVoter     = "voter"
	AttributeKeyMinted    = "minted"
	AttributeKeyBlockPay  = "block_pay"
	AttributeKeyVotePay   = "vote_pay"
	AttributeKeyClaimTime = "claim_time"
	AttributeKeyVersion   = "version"
	AttributeKeyWeight    = "weight"
)

// NewClaimRewardsEvent is emitted by every successful claim.
func NewClaimRewardsEvent(producer string, claimTime int64, res ClaimResult) sdk.Event {
	return sdk.NewEvent(
		EventTypeClaimRewards,
		sdk.NewAttribute(AttributeKeyProducer, producer),
		sdk.NewAttribute(AttributeKeyClaimTime, strconv.FormatInt(claimTime, 10)),
		sdk.NewAttribute(AttributeKeyMinted, strconv.FormatInt(res.Minted, 10)),
		sdk.NewAttribute(AttributeKeyBlockPay, strconv.FormatInt(res.BlockPay, 10)),
		sdk.NewAttribute(AttributeKeyVotePay, strconv.FormatInt(res.VotePay, 10)),
	)
}
