// Package pair implements a two asset constant-product pool: liquidity
// provision and withdrawal against share tokens, swaps with commission and
// operator fee, and optional allow-list gating.
package pair

import (
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
	contractstypes "github.com/paw-chain/pawswap/x/contracts/types"
)

var _ contractstypes.Contract = Contract{}

// Contract is the pair code.
type Contract struct {
	metrics *Metrics
}

// New returns the pair code for upload to the contract host.
func New() Contract {
	return Contract{metrics: NewMetrics()}
}

func (Contract) Instantiate(deps contractstypes.Deps, env contractstypes.Env, info contractstypes.MessageInfo, msg []byte) (*contractstypes.Response, error) {
	var m types.PairInstantiateMsg
	if err := types.DecodeMsg(msg, &m); err != nil {
		return nil, err
	}
	for _, ai := range m.AssetInfos {
		if err := ai.Validate(deps.API); err != nil {
			return nil, err
		}
	}
	if m.AssetInfos[0].Equal(m.AssetInfos[1]) {
		return nil, types.ErrInvalidAssetInfo.Wrapf("pair of %s with itself", m.AssetInfos[0])
	}
	if m.OracleAddr != "" {
		if _, err := deps.API.AddrValidate(m.OracleAddr); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		AssetInfos:     m.AssetInfos,
		OracleAddr:     m.OracleAddr,
		CommissionRate: types.DefaultCommissionRate,
		OperatorFee:    types.DefaultOperatorFee,
	}
	if m.CommissionRate != nil {
		cfg.CommissionRate = *m.CommissionRate
	}
	if m.OperatorFee != nil {
		cfg.OperatorFee = *m.OperatorFee
	}
	commission, err := types.ParseRate(cfg.CommissionRate)
	if err != nil {
		return nil, err
	}
	operatorFee, err := types.ParseRate(cfg.OperatorFee)
	if err != nil {
		return nil, err
	}
	if commission.Add(operatorFee).GT(math.LegacyOneDec()) {
		return nil, types.ErrInvalidRate.Wrapf("commission %s plus operator fee %s exceeds one", commission, operatorFee)
	}
	if m.Admin != nil {
		if _, err := deps.API.AddrValidate(*m.Admin); err != nil {
			return nil, err
		}
		cfg.Admin = *m.Admin
	}
	if m.Operator != nil && *m.Operator != "" {
		if _, err := deps.API.AddrValidate(*m.Operator); err != nil {
			return nil, err
		}
		cfg.Operator = *m.Operator
	}

	if err := saveConfig(deps.Storage, cfg); err != nil {
		return nil, err
	}
	if err := savePool(deps.Storage, PoolState{
		Reserves:    [2]math.Int{math.ZeroInt(), math.ZeroInt()},
		TotalShares: math.ZeroInt(),
	}); err != nil {
		return nil, err
	}

	self, err := deps.API.AddrHumanize(env.Contract)
	if err != nil {
		return nil, err
	}
	tokenMsg, err := types.EncodeMsg(types.TokenInstantiateMsg{
		Name:     "pawswap liquidity token",
		Symbol:   "uLP",
		Decimals: 6,
		Mint:     &types.TokenMinter{Minter: self},
	})
	if err != nil {
		return nil, err
	}

	deps.Logger.Info("pair instantiated", "pair", types.PairLabel(cfg.AssetInfos), "commission_rate", cfg.CommissionRate, "operator_fee", cfg.OperatorFee)
	return contractstypes.NewResponse().
		AddAttribute(types.AttributeKeyPair, types.PairLabel(cfg.AssetInfos)).
		AddSubMessage(contractstypes.NewReplyOnSuccess(contractstypes.WasmInstantiate{
			CodeID: m.TokenCodeID,
			Label:  "lp token " + types.PairLabel(cfg.AssetInfos),
			Msg:    tokenMsg,
		}, types.InstantiateLPTokenReplyID)), nil
}

func (c Contract) Execute(deps contractstypes.Deps, env contractstypes.Env, info contractstypes.MessageInfo, msg []byte) (*contractstypes.Response, error) {
	var m types.PairExecuteMsg
	if err := types.DecodeMsg(msg, &m); err != nil {
		return nil, err
	}
	variant, err := m.Variant()
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(deps.Storage)
	if err != nil {
		return nil, err
	}

	switch v := variant.(type) {
	case *types.Cw20ReceiveMsg:
		return c.receive(deps, env, info, cfg, v)
	case *types.PairProvideLiquidity:
		return c.provideLiquidity(deps, env, info, cfg, v)
	case *types.PairSwap:
		if err := v.OfferAsset.Validate(deps.API); err != nil {
			return nil, err
		}
		if !v.OfferAsset.Info.IsNative() {
			return nil, types.ErrMustProvideNativeToken.Wrapf("offer %s is a token, use send", v.OfferAsset.Info)
		}
		if !info.Funds.Equal(types.NativeFunds(v.OfferAsset)) {
			return nil, types.ErrInvalidFunds.Wrapf("sent %s, declared %s", info.Funds, v.OfferAsset)
		}
		to, err := optionalAddr(deps.API, v.To, info.Sender)
		if err != nil {
			return nil, err
		}
		return c.swap(deps, env, cfg, info.Sender, v.OfferAsset, v.BeliefPrice, v.MaxSpread, to)
	case *types.PairEnableWhitelist:
		return c.enableWhitelist(deps, info, cfg, v)
	case *types.PairRegisterTrader:
		return c.updateList(deps, info, cfg, traderPrefix, v.Traders, true, types.ActionRegisterTrader)
	case *types.PairDeregisterTrader:
		return c.updateList(deps, info, cfg, traderPrefix, v.Traders, false, types.ActionDeregisterTrader)
	case *types.PairRegisterWithdrawLp:
		return c.updateList(deps, info, cfg, providerPrefix, v.Providers, true, types.ActionRegisterWithdrawLp)
	case *types.PairDeregisterWithdrawLp:
		return c.updateList(deps, info, cfg, providerPrefix, v.Providers, false, types.ActionDeregisterWithdrawLp)
	case *types.PairUpdateOperator:
		return c.updateOperator(deps, info, cfg, v)
	default:
		return nil, types.ErrInvalidMsg.Wrapf("unhandled pair execute %T", variant)
	}
}

// receive handles the token hook: swaps of a token asset and withdrawals
// paid in liquidity tokens.
func (c Contract) receive(deps contractstypes.Deps, env contractstypes.Env, info contractstypes.MessageInfo, cfg *Config, m *types.Cw20ReceiveMsg) (*contractstypes.Response, error) {
	if !info.Funds.Empty() {
		return nil, types.ErrInvalidFunds.Wrapf("token hook carries funds %s", info.Funds)
	}
	var hookMsg types.PairHookMsg
	if err := types.DecodeMsg(m.Msg, &hookMsg); err != nil {
		return nil, types.ErrInvalidCw20Hook.Wrap(err.Error())
	}
	hook, err := hookMsg.Variant()
	if err != nil {
		return nil, err
	}
	sender, err := deps.API.AddrValidate(m.Sender)
	if err != nil {
		return nil, err
	}
	tokenAddr, err := deps.API.AddrHumanize(info.Sender)
	if err != nil {
		return nil, err
	}

	switch h := hook.(type) {
	case *types.PairSwapHook:
		offerInfo := types.TokenAsset(tokenAddr)
		if _, err := cfg.assetIndex(offerInfo); err != nil {
			return nil, types.ErrUnauthorized.Wrapf("token %s is not part of this pair", tokenAddr)
		}
		to, err := optionalAddr(deps.API, h.To, sender)
		if err != nil {
			return nil, err
		}
		return c.swap(deps, env, cfg, sender, types.NewAsset(offerInfo, m.Amount), h.BeliefPrice, h.MaxSpread, to)
	case *types.PairWithdrawLiquidityHook:
		if cfg.LiquidityToken == "" || !types.TokenAsset(cfg.LiquidityToken).Equal(types.TokenAsset(tokenAddr)) {
			return nil, types.ErrUnauthorized.Wrapf("token %s is not the liquidity token", tokenAddr)
		}
		return c.withdrawLiquidity(deps, env, cfg, sender, m.Amount)
	default:
		return nil, types.ErrInvalidCw20Hook.Wrapf("unhandled hook %T", hook)
	}
}

func (Contract) Reply(deps contractstypes.Deps, env contractstypes.Env, reply contractstypes.Reply) (*contractstypes.Response, error) {
	if reply.ID != types.InstantiateLPTokenReplyID {
		return nil, types.ErrInvalidMsg.Wrapf("unknown reply id %d", reply.ID)
	}
	res, err := contractstypes.ParseReplyInstantiateData(reply)
	if err != nil {
		return nil, err
	}
	if _, err := deps.API.AddrValidate(res.Address); err != nil {
		return nil, err
	}

	cfg, err := loadConfig(deps.Storage)
	if err != nil {
		return nil, err
	}
	if cfg.LiquidityToken != "" {
		return nil, types.ErrUnauthorized.Wrapf("liquidity token already set to %s", cfg.LiquidityToken)
	}
	cfg.LiquidityToken = res.Address
	if err := saveConfig(deps.Storage, cfg); err != nil {
		return nil, err
	}
	return contractstypes.NewResponse().AddAttribute(types.AttributeKeyLiquidityToken, res.Address), nil
}

// Migrate optionally replaces the admin. Pool state and fee rates stay as they are.
func (Contract) Migrate(deps contractstypes.Deps, env contractstypes.Env, msg []byte) (*contractstypes.Response, error) {
	var m types.PairMigrateMsg
	if err := types.DecodeMsg(msg, &m); err != nil {
		return nil, err
	}
	cfg, err := loadConfig(deps.Storage)
	if err != nil {
		return nil, err
	}
	if m.Admin != nil {
		if _, err := deps.API.AddrValidate(*m.Admin); err != nil {
			return nil, err
		}
		cfg.Admin = *m.Admin
		if err := saveConfig(deps.Storage, cfg); err != nil {
			return nil, err
		}
	}
	return contractstypes.NewResponse().AddAttribute(types.AttributeKeyAction, types.ActionMigrate), nil
}

// optionalAddr validates addr when set and falls back to def.
func optionalAddr(api contractstypes.API, addr *string, def sdk.AccAddress) (sdk.AccAddress, error) {
	if addr == nil || *addr == "" {
		return def, nil
	}
	return api.AddrValidate(*addr)
}
