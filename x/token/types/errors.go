package types

import (
	errorsmod "cosmossdk.io/errors"
)

const BaseErrorCode = 2200

var (
	ErrInvalidAmount     = errorsmod.Register(ModuleName, BaseErrorCode+1, "invalid amount")
	ErrInsufficientFunds = errorsmod.Register(ModuleName, BaseErrorCode+2, "insufficient funds")
	ErrMaxSupplyExceeded = errorsmod.Register(ModuleName, BaseErrorCode+3, "max supply exceeded")
	ErrInvalidTransfer   = errorsmod.Register(ModuleName, BaseErrorCode+4, "invalid transfer")
	ErrInsufficientStake = errorsmod.Register(ModuleName, BaseErrorCode+5, "insufficient stake")
	ErrInvalidGenesis    = errorsmod.Register(ModuleName, BaseErrorCode+6, "invalid genesis state")
	ErrMemoTooLong       = errorsmod.Register(ModuleName, BaseErrorCode+7, "memo too long")
)
