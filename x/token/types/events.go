package types

import (
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	EventTypeIssue    = "issue"
	EventTypeTransfer = "transfer"
	EventTypeStake    = "stake"
	EventTypeUnstake  = "unstake"

	AttributeKeyFrom    = "from"
	AttributeKeyTo      = "to"
	AttributeKeyAccount = "account"
	AttributeKeyAmount  = "amount"
	AttributeKeyMemo    = "memo"
)

func NewIssueEvent(to string, amount int64, memo string) sdk.Event {
	return sdk.NewEvent(
		EventTypeIssue,
		sdk.NewAttribute(AttributeKeyTo, to),
		sdk.NewAttribute(AttributeKeyAmount, strconv.FormatInt(amount, 10)),
		sdk.NewAttribute(AttributeKeyMemo, memo),
	)
}

func NewTransferEvent(from, to string, amount int64, memo string) sdk.Event {
	return sdk.NewEvent(
		EventTypeTransfer,
		sdk.NewAttribute(AttributeKeyFrom, from),
		sdk.NewAttribute(AttributeKeyTo, to),
		sdk.NewAttribute(AttributeKeyAmount, strconv.FormatInt(amount, 10)),
		sdk.NewAttribute(AttributeKeyMemo, memo),
	)
}

func NewStakeEvent(eventType, account string, amount int64) sdk.Event {
	return sdk.NewEvent(
		eventType,
		sdk.NewAttribute(AttributeKeyAccount, account),
		sdk.NewAttribute(AttributeKeyAmount, strconv.FormatInt(amount, 10)),
	)
}
