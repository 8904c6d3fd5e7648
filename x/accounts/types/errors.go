package types

import (
	errorsmod "cosmossdk.io/errors"
)

const BaseErrorCode = 2100

var (
	ErrInvalidName            = errorsmod.Register(ModuleName, BaseErrorCode+1, "invalid name")
	ErrAccountExists          = errorsmod.Register(ModuleName, BaseErrorCode+2, "account already exists")
	ErrAccountNotFound        = errorsmod.Register(ModuleName, BaseErrorCode+3, "account not found")
	ErrPermissionNotFound     = errorsmod.Register(ModuleName, BaseErrorCode+4, "permission not found")
	ErrInvalidAuthority       = errorsmod.Register(ModuleName, BaseErrorCode+5, "invalid authority")
	ErrInvalidPermission      = errorsmod.Register(ModuleName, BaseErrorCode+6, "invalid permission")
	ErrAuthorityDepthExceeded = errorsmod.Register(ModuleName, BaseErrorCode+7, "authority depth exceeded")
	ErrPermissionInUse        = errorsmod.Register(ModuleName, BaseErrorCode+8, "permission in use")
	ErrLinkNotFound           = errorsmod.Register(ModuleName, BaseErrorCode+9, "action permission link not found")
	ErrInvalidGenesis         = errorsmod.Register(ModuleName, BaseErrorCode+10, "invalid genesis state")
)
