package oracle

import (
	"errors"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
	contractstypes "github.com/paw-chain/pawswap/x/contracts/types"
)

// ComputeTax returns min(amount - amount/(1+rate), cap) for a native payout.
func ComputeTax(amount math.Int, rate math.LegacyDec, taxCap math.Int) math.Int {
	if !amount.IsPositive() || !rate.IsPositive() {
		return math.ZeroInt()
	}
	net := math.LegacyNewDecFromInt(amount).Quo(math.LegacyOneDec().Add(rate)).TruncateInt()
	return math.MinInt(amount.Sub(net), taxCap)
}

// QueryTax asks the oracle at oracleAddr for the tax on paying amount of
// denom. A denom without a configured cap is untaxed.
func QueryTax(q contractstypes.Querier, oracleAddr sdk.AccAddress, denom string, amount math.Int) (math.Int, error) {
	capReq, err := types.EncodeMsg(types.OracleQueryMsg{TaxCap: &types.OracleTaxCapQuery{Denom: denom}})
	if err != nil {
		return math.Int{}, err
	}
	capBz, err := q.QuerySmart(oracleAddr, capReq)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.Int{}, err
	}
	var capRes types.OracleTaxCapResponse
	if err := types.DecodeMsg(capBz, &capRes); err != nil {
		return math.Int{}, err
	}

	rateReq, err := types.EncodeMsg(types.OracleQueryMsg{TaxRate: &types.OracleTaxRateQuery{}})
	if err != nil {
		return math.Int{}, err
	}
	rateBz, err := q.QuerySmart(oracleAddr, rateReq)
	if err != nil {
		return math.Int{}, err
	}
	var rateRes types.OracleTaxRateResponse
	if err := types.DecodeMsg(rateBz, &rateRes); err != nil {
		return math.Int{}, err
	}
	return ComputeTax(amount, rateRes.Rate, capRes.Cap), nil
}
