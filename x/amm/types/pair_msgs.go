package types

import (
	"cosmossdk.io/math"
)

// PairInstantiateMsg creates a pair. Fee rates default to DefaultCommissionRate
// and DefaultOperatorFee and can never change afterwards.
type PairInstantiateMsg struct {
	OracleAddr     string       `json:"oracle_addr"`
	AssetInfos     [2]AssetInfo `json:"asset_infos"`
	TokenCodeID    uint64       `json:"token_code_id"`
	CommissionRate *string      `json:"commission_rate,omitempty"`
	OperatorFee    *string      `json:"operator_fee,omitempty"`
	Admin          *string      `json:"admin,omitempty"`
	Operator       *string      `json:"operator,omitempty"`
}

type PairProvideLiquidity struct {
	Assets            [2]Asset        `json:"assets"`
	SlippageTolerance *math.LegacyDec `json:"slippage_tolerance,omitempty"`
	Receiver          *string         `json:"receiver,omitempty"`
}

type PairSwap struct {
	OfferAsset  Asset           `json:"offer_asset"`
	BeliefPrice *math.LegacyDec `json:"belief_price,omitempty"`
	MaxSpread   *math.LegacyDec `json:"max_spread,omitempty"`
	To          *string         `json:"to,omitempty"`
}

type PairEnableWhitelist struct {
	Status bool `json:"status"`
}

type PairRegisterTrader struct {
	Traders []string `json:"traders"`
}

type PairDeregisterTrader struct {
	Traders []string `json:"traders"`
}

type PairRegisterWithdrawLp struct {
	Providers []string `json:"providers"`
}

type PairDeregisterWithdrawLp struct {
	Providers []string `json:"providers"`
}

// PairUpdateOperator sets the operator, or clears it when Operator is nil.
type PairUpdateOperator struct {
	Operator *string `json:"operator,omitempty"`
}

// PairExecuteMsg is the pair execute message set. Exactly one field is set.
type PairExecuteMsg struct {
	Receive              *Cw20ReceiveMsg           `json:"receive,omitempty"`
	ProvideLiquidity     *PairProvideLiquidity     `json:"provide_liquidity,omitempty"`
	Swap                 *PairSwap                 `json:"swap,omitempty"`
	EnableWhitelist      *PairEnableWhitelist      `json:"enable_whitelist,omitempty"`
	RegisterTrader       *PairRegisterTrader       `json:"register_trader,omitempty"`
	DeregisterTrader     *PairDeregisterTrader     `json:"deregister_trader,omitempty"`
	RegisterWithdrawLp   *PairRegisterWithdrawLp   `json:"register_withdraw_lp,omitempty"`
	DeregisterWithdrawLp *PairDeregisterWithdrawLp `json:"deregister_withdraw_lp,omitempty"`
	UpdateOperator       *PairUpdateOperator       `json:"update_operator,omitempty"`
}

// PairExecute is implemented by every pair execute variant.
type PairExecute interface{ isPairExecute() }

func (*Cw20ReceiveMsg) isPairExecute()           {}
func (*PairProvideLiquidity) isPairExecute()     {}
func (*PairSwap) isPairExecute()                 {}
func (*PairEnableWhitelist) isPairExecute()      {}
func (*PairRegisterTrader) isPairExecute()       {}
func (*PairDeregisterTrader) isPairExecute()     {}
func (*PairRegisterWithdrawLp) isPairExecute()   {}
func (*PairDeregisterWithdrawLp) isPairExecute() {}
func (*PairUpdateOperator) isPairExecute()       {}

func (m PairExecuteMsg) Variant() (PairExecute, error) {
	var set []PairExecute
	if m.Receive != nil {
		set = append(set, m.Receive)
	}
	if m.ProvideLiquidity != nil {
		set = append(set, m.ProvideLiquidity)
	}
	if m.Swap != nil {
		set = append(set, m.Swap)
	}
	if m.EnableWhitelist != nil {
		set = append(set, m.EnableWhitelist)
	}
	if m.RegisterTrader != nil {
		set = append(set, m.RegisterTrader)
	}
	if m.DeregisterTrader != nil {
		set = append(set, m.DeregisterTrader)
	}
	if m.RegisterWithdrawLp != nil {
		set = append(set, m.RegisterWithdrawLp)
	}
	if m.DeregisterWithdrawLp != nil {
		set = append(set, m.DeregisterWithdrawLp)
	}
	if m.UpdateOperator != nil {
		set = append(set, m.UpdateOperator)
	}
	return exactlyOne("pair execute", set)
}

// PairSwapHook is the hook variant for swapping a token sent with TokenSend.
type PairSwapHook struct {
	BeliefPrice *math.LegacyDec `json:"belief_price,omitempty"`
	MaxSpread   *math.LegacyDec `json:"max_spread,omitempty"`
	To          *string         `json:"to,omitempty"`
}

// PairWithdrawLiquidityHook burns the liquidity tokens sent with TokenSend.
type PairWithdrawLiquidityHook struct{}

// PairHookMsg is carried inside Cw20ReceiveMsg.Msg. Exactly one field is set.
type PairHookMsg struct {
	Swap              *PairSwapHook              `json:"swap,omitempty"`
	WithdrawLiquidity *PairWithdrawLiquidityHook `json:"withdraw_liquidity,omitempty"`
}

type PairHook interface{ isPairHook() }

func (*PairSwapHook) isPairHook()              {}
func (*PairWithdrawLiquidityHook) isPairHook() {}

func (m PairHookMsg) Variant() (PairHook, error) {
	var set []PairHook
	if m.Swap != nil {
		set = append(set, m.Swap)
	}
	if m.WithdrawLiquidity != nil {
		set = append(set, m.WithdrawLiquidity)
	}
	hook, err := exactlyOne("pair hook", set)
	if err != nil {
		return nil, ErrInvalidCw20Hook.Wrap(err.Error())
	}
	return hook, nil
}

type PairInfoQuery struct{}

type PairPoolQuery struct{}

type PairSimulationQuery struct {
	OfferAsset Asset `json:"offer_asset"`
}

type PairReverseSimulationQuery struct {
	AskAsset Asset `json:"ask_asset"`
}

type PairOperatorQuery struct{}

type PairAdminQuery struct{}

type PairIsWhitelistedQuery struct {
	Address string `json:"address"`
}

// PairQueryMsg is the pair query message set. Exactly one field is set.
type PairQueryMsg struct {
	Pair              *PairInfoQuery              `json:"pair,omitempty"`
	Pool              *PairPoolQuery              `json:"pool,omitempty"`
	Simulation        *PairSimulationQuery        `json:"simulation,omitempty"`
	ReverseSimulation *PairReverseSimulationQuery `json:"reverse_simulation,omitempty"`
	Operator          *PairOperatorQuery          `json:"operator,omitempty"`
	Admin             *PairAdminQuery             `json:"admin,omitempty"`
	IsWhitelisted     *PairIsWhitelistedQuery     `json:"is_whitelisted,omitempty"`
}

type PairQuery interface{ isPairQuery() }

func (*PairInfoQuery) isPairQuery()              {}
func (*PairPoolQuery) isPairQuery()              {}
func (*PairSimulationQuery) isPairQuery()        {}
func (*PairReverseSimulationQuery) isPairQuery() {}
func (*PairOperatorQuery) isPairQuery()          {}
func (*PairAdminQuery) isPairQuery()             {}
func (*PairIsWhitelistedQuery) isPairQuery()     {}

func (m PairQueryMsg) Variant() (PairQuery, error) {
	var set []PairQuery
	if m.Pair != nil {
		set = append(set, m.Pair)
	}
	if m.Pool != nil {
		set = append(set, m.Pool)
	}
	if m.Simulation != nil {
		set = append(set, m.Simulation)
	}
	if m.ReverseSimulation != nil {
		set = append(set, m.ReverseSimulation)
	}
	if m.Operator != nil {
		set = append(set, m.Operator)
	}
	if m.Admin != nil {
		set = append(set, m.Admin)
	}
	if m.IsWhitelisted != nil {
		set = append(set, m.IsWhitelisted)
	}
	return exactlyOne("pair query", set)
}

type PoolResponse struct {
	Assets     [2]Asset `json:"assets"`
	TotalShare math.Int `json:"total_share"`
}

type SimulationResponse struct {
	ReturnAmount      math.Int `json:"return_amount"`
	SpreadAmount      math.Int `json:"spread_amount"`
	CommissionAmount  math.Int `json:"commission_amount"`
	OperatorFeeAmount math.Int `json:"operator_fee_amount"`
}

type ReverseSimulationResponse struct {
	OfferAmount       math.Int `json:"offer_amount"`
	SpreadAmount      math.Int `json:"spread_amount"`
	CommissionAmount  math.Int `json:"commission_amount"`
	OperatorFeeAmount math.Int `json:"operator_fee_amount"`
}

type OperatorResponse struct {
	Operator string `json:"operator"`
}

type AdminResponse struct {
	Admin string `json:"admin"`
}

type IsWhitelistedResponse struct {
	Enabled  bool `json:"enabled"`
	Trader   bool `json:"trader"`
	Provider bool `json:"provider"`
}

// PairMigrateMsg optionally replaces the pair admin. Pool state and fee
// rates are left untouched.
type PairMigrateMsg struct {
	Admin *string `json:"admin,omitempty"`
}
