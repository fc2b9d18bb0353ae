package pool

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// SwapResult is the outcome of offering one side of a pool. The gross
// constant-product output equals ReturnAmount + CommissionAmount +
// OperatorFeeAmount.
type SwapResult struct {
	ReturnAmount      math.Int
	SpreadAmount      math.Int
	CommissionAmount  math.Int
	OperatorFeeAmount math.Int
}

// ReverseSwapResult is the offer needed to receive a given net amount.
type ReverseSwapResult struct {
	OfferAmount       math.Int
	SpreadAmount      math.Int
	CommissionAmount  math.Int
	OperatorFeeAmount math.Int
}

func validateRates(commissionRate, operatorFeeRate math.LegacyDec) error {
	if commissionRate.IsNil() || operatorFeeRate.IsNil() {
		return types.ErrInvalidRate.Wrap("nil fee rate")
	}
	if commissionRate.IsNegative() || operatorFeeRate.IsNegative() {
		return types.ErrInvalidRate.Wrapf("negative fee rate %s/%s", commissionRate, operatorFeeRate)
	}
	if commissionRate.Add(operatorFeeRate).GT(math.LegacyOneDec()) {
		return types.ErrInvalidRate.Wrapf("commission %s plus operator fee %s exceeds one", commissionRate, operatorFeeRate)
	}
	return nil
}

// ComputeSwap prices offerAmount against the pool. The gross output is
// floor(askReserve*offerAmount/(offerReserve+offerAmount)); commission and
// operator fee are each floor(gross*rate). Callers pass a zero operator fee
// rate when the pair has no operator.
func ComputeSwap(
	offerAmount, offerReserve, askReserve math.Int,
	commissionRate, operatorFeeRate math.LegacyDec,
) (SwapResult, error) {
	if err := checkInputs(offerAmount, offerReserve, askReserve); err != nil {
		return SwapResult{}, err
	}
	if err := validateRates(commissionRate, operatorFeeRate); err != nil {
		return SwapResult{}, err
	}
	if offerAmount.IsZero() {
		return SwapResult{}, types.ErrInvalidZeroAmount.Wrap("offer amount")
	}
	if offerReserve.IsZero() {
		return SwapResult{}, types.ErrOfferPoolIsZero
	}

	offer, offerPool, askPool := offerAmount.BigInt(), offerReserve.BigInt(), askReserve.BigInt()

	gross := mulDiv(askPool, offer, new(big.Int).Add(offerPool, offer))
	spread := saturatingSub(mulDiv(offer, askPool, offerPool), gross)
	commission := mulRate(gross, commissionRate)
	operatorFee := mulRate(gross, operatorFeeRate)
	ret := new(big.Int).Sub(gross, commission)
	ret.Sub(ret, operatorFee)

	return narrowSwap(ret, spread, commission, operatorFee)
}

func narrowSwap(ret, spread, commission, operatorFee *big.Int) (SwapResult, error) {
	var (
		res SwapResult
		err error
	)
	if res.ReturnAmount, err = narrow(ret); err != nil {
		return SwapResult{}, err
	}
	if res.SpreadAmount, err = narrow(spread); err != nil {
		return SwapResult{}, err
	}
	if res.CommissionAmount, err = narrow(commission); err != nil {
		return SwapResult{}, err
	}
	if res.OperatorFeeAmount, err = narrow(operatorFee); err != nil {
		return SwapResult{}, err
	}
	return res, nil
}

// ComputeOfferAmount returns the smallest offer whose swap yields at least
// askAmount after commission and operator fee.
func ComputeOfferAmount(
	askAmount, offerReserve, askReserve math.Int,
	commissionRate, operatorFeeRate math.LegacyDec,
) (ReverseSwapResult, error) {
	if err := checkInputs(askAmount, offerReserve, askReserve); err != nil {
		return ReverseSwapResult{}, err
	}
	if err := validateRates(commissionRate, operatorFeeRate); err != nil {
		return ReverseSwapResult{}, err
	}
	if askAmount.IsZero() {
		return ReverseSwapResult{}, types.ErrInvalidZeroAmount.Wrap("ask amount")
	}
	if offerReserve.IsZero() {
		return ReverseSwapResult{}, types.ErrOfferPoolIsZero
	}

	keep := new(big.Int).Sub(decPrecision, commissionRate.BigInt())
	keep.Sub(keep, operatorFeeRate.BigInt())
	if keep.Sign() <= 0 {
		return ReverseSwapResult{}, types.ErrInvalidRate.Wrap("fees consume the whole output")
	}

	offerPool, askPool := offerReserve.BigInt(), askReserve.BigInt()
	gross := mulDivCeil(askAmount.BigInt(), decPrecision, keep)
	if gross.Cmp(askPool) >= 0 {
		return ReverseSwapResult{}, types.ErrInsufficientLiquidity.Wrapf("ask %s exceeds pool %s", askAmount, askReserve)
	}

	offer := mulDivCeil(offerPool, gross, new(big.Int).Sub(askPool, gross))
	spread := saturatingSub(mulDiv(offer, askPool, offerPool), gross)

	res := ReverseSwapResult{}
	var err error
	if res.OfferAmount, err = narrow(offer); err != nil {
		return ReverseSwapResult{}, err
	}
	if res.SpreadAmount, err = narrow(spread); err != nil {
		return ReverseSwapResult{}, err
	}
	if res.CommissionAmount, err = narrow(mulRate(gross, commissionRate)); err != nil {
		return ReverseSwapResult{}, err
	}
	if res.OperatorFeeAmount, err = narrow(mulRate(gross, operatorFeeRate)); err != nil {
		return ReverseSwapResult{}, err
	}
	return res, nil
}

// AssertMaxSpread enforces maxSpread when set. With a belief price the spread
// is measured against offer/beliefPrice, otherwise against return+spread.
func AssertMaxSpread(beliefPrice, maxSpread *math.LegacyDec, offerAmount, returnAmount, spreadAmount math.Int) error {
	if maxSpread == nil {
		return nil
	}
	if maxSpread.IsNil() || maxSpread.IsNegative() {
		return types.ErrInvalidRate.Wrap("max spread must be non-negative")
	}
	maxRaw := maxSpread.BigInt()
	ret := returnAmount.BigInt()

	if beliefPrice != nil {
		if beliefPrice.IsNil() || !beliefPrice.IsPositive() {
			return types.ErrInvalidMsg.Wrap("belief price must be positive")
		}
		expected := mulDiv(offerAmount.BigInt(), decPrecision, beliefPrice.BigInt())
		if ret.Cmp(expected) >= 0 {
			return nil
		}
		spread := new(big.Int).Sub(expected, ret)
		if new(big.Int).Mul(spread, decPrecision).Cmp(new(big.Int).Mul(maxRaw, expected)) > 0 {
			return types.ErrMaxSpreadAssertion.Wrapf("expected %s, got %s", expected, returnAmount)
		}
		return nil
	}

	spread := spreadAmount.BigInt()
	total := new(big.Int).Add(ret, spread)
	if new(big.Int).Mul(spread, decPrecision).Cmp(new(big.Int).Mul(maxRaw, total)) > 0 {
		return types.ErrMaxSpreadAssertion.Wrapf("spread %s on return %s", spreadAmount, returnAmount)
	}
	return nil
}
