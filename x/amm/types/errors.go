package types

import (
	"cosmossdk.io/errors"
)

// AMM sentinel errors
var (
	// Authorization
	ErrUnauthorized    = errors.Register(ModuleName, 2, "unauthorized")
	ErrPoolWhitelisted = errors.Register(ModuleName, 3, "pool is whitelisted")

	// State conflicts
	ErrPairExisted           = errors.Register(ModuleName, 4, "pair already exists")
	ErrPairRegistered        = errors.Register(ModuleName, 5, "pair was already registered")
	ErrCreatorAlreadyExists  = errors.Register(ModuleName, 6, "creator already exists")
	ErrRestrictPrefixExisted = errors.Register(ModuleName, 7, "restricted prefix already exists")

	// Not found
	ErrCreatorNotFound = errors.Register(ModuleName, 8, "creator not found")
	ErrNotFound        = errors.Register(ModuleName, 9, "not found")

	// Validation
	ErrInvalidZeroAmount        = errors.Register(ModuleName, 10, "invalid zero amount")
	ErrAssetMismatch            = errors.Register(ModuleName, 11, "asset mismatch")
	ErrInvalidExceedOneSlippage = errors.Register(ModuleName, 12, "slippage tolerance must be less than or equal to one")
	ErrMaxSlippageAssertion     = errors.Register(ModuleName, 13, "max slippage assertion")
	ErrMaxSpreadAssertion       = errors.Register(ModuleName, 14, "max spread assertion")
	ErrInvalidZeroRatio         = errors.Register(ModuleName, 15, "invalid zero ratio")
	ErrOfferPoolIsZero          = errors.Register(ModuleName, 16, "offer pool is zero")
	ErrMustProvideNativeToken   = errors.Register(ModuleName, 17, "must provide native token")
	ErrInvalidFunds             = errors.Register(ModuleName, 18, "invalid funds")
	ErrInvalidCw20Hook          = errors.Register(ModuleName, 19, "invalid token hook message")
	ErrInvalidMsg               = errors.Register(ModuleName, 20, "invalid message")
	ErrInvalidAssetInfo         = errors.Register(ModuleName, 21, "invalid asset info")
	ErrInvalidRate              = errors.Register(ModuleName, 22, "invalid rate")
	ErrInsufficientLiquidity    = errors.Register(ModuleName, 23, "insufficient liquidity")

	// Arithmetic
	ErrOverflow = errors.Register(ModuleName, 24, "overflow")

	// Token ledger
	ErrInsufficientBalance   = errors.Register(ModuleName, 25, "insufficient balance")
	ErrInsufficientAllowance = errors.Register(ModuleName, 26, "insufficient allowance")
	ErrCannotExceedCap       = errors.Register(ModuleName, 27, "minting cannot exceed the cap")
)
