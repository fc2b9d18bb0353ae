package pair

import (
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/pool"
	"github.com/paw-chain/pawswap/x/amm/types"
	contractstypes "github.com/paw-chain/pawswap/x/contracts/types"
)

// provideLiquidity deposits both assets, pulls token portions with
// TransferFrom and mints shares to the receiver. The whole deposit is added
// to the reserves; any surplus above the proportional requirement is a
// donation to existing holders.
func (c Contract) provideLiquidity(
	deps contractstypes.Deps,
	env contractstypes.Env,
	info contractstypes.MessageInfo,
	cfg *Config,
	m *types.PairProvideLiquidity,
) (*contractstypes.Response, error) {
	if cfg.Whitelisted && !isTrader(deps.Storage, info.Sender) && !isProvider(deps.Storage, info.Sender) {
		return nil, types.ErrPoolWhitelisted.Wrapf("%s may not provide liquidity", info.Sender)
	}
	if cfg.LiquidityToken == "" {
		return nil, types.ErrNotFound.Wrap("liquidity token not registered yet")
	}
	for _, a := range m.Assets {
		if err := a.Validate(deps.API); err != nil {
			return nil, err
		}
	}
	deposits, err := cfg.alignAssets(m.Assets)
	if err != nil {
		return nil, err
	}
	if !info.Funds.Equal(types.NativeFunds(m.Assets[0], m.Assets[1])) {
		return nil, types.ErrInvalidFunds.Wrapf("sent %s, declared %s", info.Funds, types.FormatAssets(m.Assets[0], m.Assets[1]))
	}

	st, err := loadPool(deps.Storage)
	if err != nil {
		return nil, err
	}
	if err := pool.AssertSlippageTolerance(m.SlippageTolerance, deposits, st.Reserves); err != nil {
		return nil, err
	}
	res, err := pool.ComputeShareOnProvide(deposits, st.Reserves, st.TotalShares)
	if err != nil {
		return nil, err
	}
	receiver, err := optionalAddr(deps.API, m.Receiver, info.Sender)
	if err != nil {
		return nil, err
	}

	resp := contractstypes.NewResponse()
	assets := cfg.assets(deposits)
	for _, a := range assets {
		if a.Info.IsNative() || a.Amount.IsZero() {
			continue
		}
		pull, err := a.TransferFromMsg(deps.API, info.Sender, env.Contract)
		if err != nil {
			return nil, err
		}
		resp.AddMessage(pull)
	}

	lpToken, err := deps.API.AddrValidate(cfg.LiquidityToken)
	if err != nil {
		return nil, err
	}
	receiverStr, err := deps.API.AddrHumanize(receiver)
	if err != nil {
		return nil, err
	}
	mint, err := contractstypes.NewWasmExecute(lpToken, types.TokenExecuteMsg{
		Mint: &types.TokenMint{Recipient: receiverStr, Amount: res.Shares},
	}, nil)
	if err != nil {
		return nil, err
	}
	resp.AddMessage(mint)

	for i := range st.Reserves {
		st.Reserves[i] = st.Reserves[i].Add(deposits[i])
	}
	st.TotalShares = st.TotalShares.Add(res.Shares)
	if err := savePool(deps.Storage, st); err != nil {
		return nil, err
	}

	senderStr, err := deps.API.AddrHumanize(info.Sender)
	if err != nil {
		return nil, err
	}
	resp.AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionProvideLiquidity),
		sdk.NewAttribute(types.AttributeKeySender, senderStr),
		sdk.NewAttribute(types.AttributeKeyReceiver, receiverStr),
		sdk.NewAttribute(types.AttributeKeyAssets, types.FormatAssets(assets[0], assets[1])),
		sdk.NewAttribute(types.AttributeKeyShare, res.Shares.String()),
	)
	if !res.Donated[0].IsZero() || !res.Donated[1].IsZero() {
		donated := cfg.assets(res.Donated)
		resp.AddAttribute(types.AttributeKeyDonatedAssets, types.FormatAssets(donated[0], donated[1]))
	}

	c.metrics.recordProvide(env.Contract.String(), assets, res.Donated, st)
	return resp, nil
}

// withdrawLiquidity burns shares the pair received from burner and pays out
// the proportional reserves.
func (c Contract) withdrawLiquidity(
	deps contractstypes.Deps,
	env contractstypes.Env,
	cfg *Config,
	burner sdk.AccAddress,
	amount math.Int,
) (*contractstypes.Response, error) {
	if cfg.Whitelisted && !isProvider(deps.Storage, burner) {
		return nil, types.ErrPoolWhitelisted.Wrapf("%s may not withdraw liquidity", burner)
	}
	st, err := loadPool(deps.Storage)
	if err != nil {
		return nil, err
	}
	refunds, err := pool.ComputeWithdraw(amount, st.TotalShares, st.Reserves)
	if err != nil {
		return nil, err
	}

	for i := range st.Reserves {
		if st.Reserves[i], err = st.Reserves[i].SafeSub(refunds[i]); err != nil {
			return nil, types.ErrOverflow.Wrapf("reserve %d: %s", i, err)
		}
	}
	if st.TotalShares, err = st.TotalShares.SafeSub(amount); err != nil {
		return nil, types.ErrOverflow.Wrapf("total share: %s", err)
	}
	if err := savePool(deps.Storage, st); err != nil {
		return nil, err
	}

	resp := contractstypes.NewResponse()
	paid := cfg.assets(refunds)
	for i, a := range paid {
		if a.Amount.IsZero() {
			continue
		}
		out, tax, err := c.payout(deps, cfg, a, burner)
		if err != nil {
			return nil, err
		}
		paid[i].Amount = a.Amount.Sub(tax)
		resp.AddMessage(out)
	}

	lpToken, err := deps.API.AddrValidate(cfg.LiquidityToken)
	if err != nil {
		return nil, err
	}
	burn, err := contractstypes.NewWasmExecute(lpToken, types.TokenExecuteMsg{Burn: &types.TokenBurn{Amount: amount}}, nil)
	if err != nil {
		return nil, err
	}
	resp.AddMessage(burn)

	burnerStr, err := deps.API.AddrHumanize(burner)
	if err != nil {
		return nil, err
	}
	resp.AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionWithdrawLiquidity),
		sdk.NewAttribute(types.AttributeKeySender, burnerStr),
		sdk.NewAttribute(types.AttributeKeyWithdrawnShare, amount.String()),
		sdk.NewAttribute(types.AttributeKeyRefundAssets, types.FormatAssets(paid[0], paid[1])),
	)

	c.metrics.recordWithdraw(env.Contract.String(), cfg.assets(refunds), st)
	return resp, nil
}
