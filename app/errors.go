package app

import (
	errorsmod "cosmossdk.io/errors"
)

const codespace = "app"

var (
	ErrMissingAuthority   = errorsmod.Register(codespace, 2001, "action declares no authorization")
	ErrMissingSignatures  = errorsmod.Register(codespace, 2002, "signatures do not satisfy authority")
	ErrUnknownAction      = errorsmod.Register(codespace, 2003, "unknown action")
	ErrInvalidActionData  = errorsmod.Register(codespace, 2004, "invalid action data")
	ErrNotInitialized     = errorsmod.Register(codespace, 2005, "chain has no genesis state")
	ErrAlreadyInitialized = errorsmod.Register(codespace, 2006, "chain already initialized")
	ErrInvalidBlock       = errorsmod.Register(codespace, 2007, "invalid block")
	ErrCommitFailed       = errorsmod.Register(codespace, 2008, "block pushed but commit failed")
)
