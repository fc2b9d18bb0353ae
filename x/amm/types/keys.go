package types

const (
	// ModuleName defines the AMM module name
	ModuleName = "amm"

	// DefaultCommissionRate is the swap commission retained by the pool.
	DefaultCommissionRate = "0.003"

	// DefaultOperatorFee is the swap fee routed to a pair's operator.
	DefaultOperatorFee = "0.001"

	// InstantiateLPTokenReplyID correlates a pair with its liquidity token instantiation.
	InstantiateLPTokenReplyID uint64 = 1

	// CreatePairReplyID correlates the factory with a pair instantiation.
	CreatePairReplyID uint64 = 1
)
