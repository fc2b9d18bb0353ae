package types

import (
	"cosmossdk.io/errors"
)

// Contract host sentinel errors
var (
	ErrNoSuchCode        = errors.Register(ModuleName, 2, "no such code")
	ErrNoSuchContract    = errors.Register(ModuleName, 3, "no such contract")
	ErrUnauthorized      = errors.Register(ModuleName, 4, "unauthorized")
	ErrInvalidMsg        = errors.Register(ModuleName, 5, "invalid message")
	ErrReplyFailed       = errors.Register(ModuleName, 6, "reply failed")
	ErrMaxCallDepth      = errors.Register(ModuleName, 7, "max call depth exceeded")
	ErrInvalidAddress    = errors.Register(ModuleName, 8, "invalid address")
	ErrEmptyReplyData    = errors.Register(ModuleName, 9, "reply carries no data")
	ErrInvalidFunds      = errors.Register(ModuleName, 10, "invalid funds")
	ErrDuplicateInstance = errors.Register(ModuleName, 11, "contract address already in use")
	ErrContractPanic     = errors.Register(ModuleName, 12, "contract panicked")
)
