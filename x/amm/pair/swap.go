package pair

import (
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/oracle"
	"github.com/paw-chain/pawswap/x/amm/pool"
	"github.com/paw-chain/pawswap/x/amm/types"
	contractstypes "github.com/paw-chain/pawswap/x/contracts/types"
)

// swap prices offer against the pool and pays the return to receiver. The
// commission stays in the pool; the operator fee leaves it for the operator.
func (c Contract) swap(
	deps contractstypes.Deps,
	env contractstypes.Env,
	cfg *Config,
	sender sdk.AccAddress,
	offer types.Asset,
	beliefPrice, maxSpread *math.LegacyDec,
	receiver sdk.AccAddress,
) (*contractstypes.Response, error) {
	if cfg.Whitelisted && !isTrader(deps.Storage, sender) {
		return nil, types.ErrPoolWhitelisted.Wrapf("%s may not swap", sender)
	}
	if err := offer.Validate(deps.API); err != nil {
		return nil, err
	}
	if offer.Amount.IsZero() {
		return nil, types.ErrInvalidZeroAmount.Wrap("offer amount")
	}
	offerIdx, err := cfg.assetIndex(offer.Info)
	if err != nil {
		return nil, err
	}
	askIdx := 1 - offerIdx

	commissionRate, operatorFeeRate, err := cfg.rates()
	if err != nil {
		return nil, err
	}
	st, err := loadPool(deps.Storage)
	if err != nil {
		return nil, err
	}
	res, err := pool.ComputeSwap(offer.Amount, st.Reserves[offerIdx], st.Reserves[askIdx], commissionRate, operatorFeeRate)
	if err != nil {
		return nil, err
	}
	if err := pool.AssertMaxSpread(beliefPrice, maxSpread, offer.Amount, res.ReturnAmount, res.SpreadAmount); err != nil {
		return nil, err
	}

	st.Reserves[offerIdx] = st.Reserves[offerIdx].Add(offer.Amount)
	if st.Reserves[askIdx], err = st.Reserves[askIdx].SafeSub(res.ReturnAmount.Add(res.OperatorFeeAmount)); err != nil {
		return nil, types.ErrOverflow.Wrapf("ask reserve: %s", err)
	}
	if err := savePool(deps.Storage, st); err != nil {
		return nil, err
	}

	resp := contractstypes.NewResponse()
	askInfo := cfg.AssetInfos[askIdx]
	tax := math.ZeroInt()
	if res.ReturnAmount.IsPositive() {
		out, t, err := c.payout(deps, cfg, types.NewAsset(askInfo, res.ReturnAmount), receiver)
		if err != nil {
			return nil, err
		}
		tax = t
		resp.AddMessage(out)
	}
	if cfg.Operator != "" && res.OperatorFeeAmount.IsPositive() {
		operator, err := deps.API.AddrValidate(cfg.Operator)
		if err != nil {
			return nil, err
		}
		fee, err := types.NewAsset(askInfo, res.OperatorFeeAmount).TransferMsg(deps.API, operator)
		if err != nil {
			return nil, err
		}
		resp.AddMessage(fee)
	}

	senderStr, err := deps.API.AddrHumanize(sender)
	if err != nil {
		return nil, err
	}
	receiverStr, err := deps.API.AddrHumanize(receiver)
	if err != nil {
		return nil, err
	}
	resp.AddAttributes(
		sdk.NewAttribute(types.AttributeKeyAction, types.ActionSwap),
		sdk.NewAttribute(types.AttributeKeySender, senderStr),
		sdk.NewAttribute(types.AttributeKeyReceiver, receiverStr),
		sdk.NewAttribute(types.AttributeKeyOfferAsset, offer.Info.String()),
		sdk.NewAttribute(types.AttributeKeyAskAsset, askInfo.String()),
		sdk.NewAttribute(types.AttributeKeyOfferAmount, offer.Amount.String()),
		sdk.NewAttribute(types.AttributeKeyReturnAmount, res.ReturnAmount.String()),
		sdk.NewAttribute(types.AttributeKeyTaxAmount, tax.String()),
		sdk.NewAttribute(types.AttributeKeySpreadAmount, res.SpreadAmount.String()),
		sdk.NewAttribute(types.AttributeKeyCommissionAmount, res.CommissionAmount.String()),
		sdk.NewAttribute(types.AttributeKeyOperatorFeeAmount, res.OperatorFeeAmount.String()),
	)

	c.metrics.recordSwap(env.Contract.String(), offer, askInfo, res, st, cfg)
	return resp, nil
}

// payout builds the transfer of a to recipient, deducting the oracle tax
// from native assets. It returns the message and the tax withheld.
func (Contract) payout(deps contractstypes.Deps, cfg *Config, a types.Asset, recipient sdk.AccAddress) (contractstypes.CosmosMsg, math.Int, error) {
	tax := math.ZeroInt()
	if a.Info.IsNative() && cfg.OracleAddr != "" {
		oracleAddr, err := deps.API.AddrValidate(cfg.OracleAddr)
		if err != nil {
			return nil, math.Int{}, err
		}
		if tax, err = oracle.QueryTax(deps.Querier, oracleAddr, a.Info.Denom(), a.Amount); err != nil {
			return nil, math.Int{}, err
		}
	}
	msg, err := types.NewAsset(a.Info, a.Amount.Sub(tax)).TransferMsg(deps.API, recipient)
	if err != nil {
		return nil, math.Int{}, err
	}
	return msg, tax, nil
}
