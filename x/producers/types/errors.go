package types

import (
	errorsmod "cosmossdk.io/errors"
)

const BaseErrorCode = 2300

var (
	ErrUnauthorized       = errorsmod.Register(ModuleName, BaseErrorCode+1, "missing required authority")
	ErrProducerNotFound   = errorsmod.Register(ModuleName, BaseErrorCode+2, "producer not found")
	ErrProducerInactive   = errorsmod.Register(ModuleName, BaseErrorCode+3, "producer does not have an active key")
	ErrStakeNotActivated  = errorsmod.Register(ModuleName, BaseErrorCode+4, "not enough has been staked for producers to claim rewards")
	ErrClaimTooSoon       = errorsmod.Register(ModuleName, BaseErrorCode+5, "already claimed rewards within past day")
	ErrInvalidProducerKey = errorsmod.Register(ModuleName, BaseErrorCode+6, "invalid producer key")
	ErrInvalidURL         = errorsmod.Register(ModuleName, BaseErrorCode+7, "invalid producer url")
	ErrInvalidVote        = errorsmod.Register(ModuleName, BaseErrorCode+8, "invalid producer vote")
	ErrInvalidGenesis     = errorsmod.Register(ModuleName, BaseErrorCode+9, "invalid genesis state")
)
