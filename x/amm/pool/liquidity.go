package pool

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// ProvideResult is the outcome of a deposit. Accepted[i] + Donated[i] equals
// the requested deposit; only Accepted counts toward Shares.
type ProvideResult struct {
	Shares   math.Int
	Accepted [2]math.Int
	Donated  [2]math.Int
}

// ComputeShareOnProvide computes the shares minted for depositing deposits
// into a pool holding reserves with totalShares outstanding.
//
// The first deposit mints isqrt(d0*d1). Later deposits mint
// min(d0*T/r0, d1*T/r1); the side above the proportional requirement is
// accepted only up to that requirement and the surplus is a donation.
func ComputeShareOnProvide(deposits, reserves [2]math.Int, totalShares math.Int) (ProvideResult, error) {
	if err := checkInputs(deposits[0], deposits[1], reserves[0], reserves[1], totalShares); err != nil {
		return ProvideResult{}, err
	}
	if deposits[0].IsZero() || deposits[1].IsZero() {
		return ProvideResult{}, types.ErrInvalidZeroAmount.Wrapf("deposit %s/%s", deposits[0], deposits[1])
	}

	d0, d1 := deposits[0].BigInt(), deposits[1].BigInt()

	if totalShares.IsZero() {
		shares, err := narrow(Isqrt(new(big.Int).Mul(d0, d1)))
		if err != nil {
			return ProvideResult{}, err
		}
		return ProvideResult{
			Shares:   shares,
			Accepted: deposits,
			Donated:  [2]math.Int{math.ZeroInt(), math.ZeroInt()},
		}, nil
	}

	if reserves[0].IsZero() || reserves[1].IsZero() {
		return ProvideResult{}, types.ErrInsufficientLiquidity.Wrapf("pool has %s shares but reserves %s/%s", totalShares, reserves[0], reserves[1])
	}

	r0, r1, total := reserves[0].BigInt(), reserves[1].BigInt(), totalShares.BigInt()
	share0 := mulDiv(d0, total, r0)
	share1 := mulDiv(d1, total, r1)

	var shares, a0, a1 *big.Int
	if share0.Cmp(share1) <= 0 {
		shares = share0
		a0 = d0
		a1 = minBig(d1, mulDivCeil(d0, r1, r0))
	} else {
		shares = share1
		a1 = d1
		a0 = minBig(d0, mulDivCeil(d1, r0, r1))
	}
	if shares.Sign() == 0 {
		return ProvideResult{}, types.ErrInvalidZeroAmount.Wrapf("deposit %s/%s mints no shares", deposits[0], deposits[1])
	}

	res := ProvideResult{}
	var err error
	if res.Shares, err = narrow(shares); err != nil {
		return ProvideResult{}, err
	}
	for i, accepted := range []*big.Int{a0, a1} {
		if res.Accepted[i], err = narrow(accepted); err != nil {
			return ProvideResult{}, err
		}
		res.Donated[i] = deposits[i].Sub(res.Accepted[i])
	}
	return res, nil
}

// ComputeWithdraw returns floor(reserve_i*burn/totalShares) for both sides.
func ComputeWithdraw(burnShares, totalShares math.Int, reserves [2]math.Int) ([2]math.Int, error) {
	if err := checkInputs(burnShares, totalShares, reserves[0], reserves[1]); err != nil {
		return [2]math.Int{}, err
	}
	if burnShares.IsZero() {
		return [2]math.Int{}, types.ErrInvalidZeroRatio.Wrap("burn amount is zero")
	}
	if burnShares.GT(totalShares) {
		return [2]math.Int{}, types.ErrOverflow.Wrapf("burn %s exceeds total share %s", burnShares, totalShares)
	}

	burn, total := burnShares.BigInt(), totalShares.BigInt()
	var refunds [2]math.Int
	for i := range reserves {
		refund, err := narrow(mulDiv(reserves[i].BigInt(), burn, total))
		if err != nil {
			return [2]math.Int{}, err
		}
		refunds[i] = refund
	}
	if refunds[0].IsZero() && refunds[1].IsZero() {
		return [2]math.Int{}, types.ErrInvalidZeroRatio.Wrapf("burning %s of %s refunds nothing", burnShares, totalShares)
	}
	return refunds, nil
}

// AssertSlippageTolerance checks that the deposit ratio is within tolerance
// of the pool ratio on both sides. A nil tolerance or an empty pool passes.
func AssertSlippageTolerance(tolerance *math.LegacyDec, deposits, reserves [2]math.Int) error {
	if tolerance == nil {
		return nil
	}
	if tolerance.IsNil() || tolerance.IsNegative() {
		return types.ErrInvalidRate.Wrap("slippage tolerance must be non-negative")
	}
	if tolerance.GT(math.LegacyOneDec()) {
		return types.ErrInvalidExceedOneSlippage.Wrapf("tolerance %s", tolerance)
	}
	if reserves[0].IsZero() || reserves[1].IsZero() {
		return nil
	}

	keep := new(big.Int).Sub(decPrecision, tolerance.BigInt())
	d0, d1 := deposits[0].BigInt(), deposits[1].BigInt()
	r0, r1 := reserves[0].BigInt(), reserves[1].BigInt()

	// d0/d1 * (1-t) > r0/r1  or  d1/d0 * (1-t) > r1/r0
	lhs0 := new(big.Int).Mul(new(big.Int).Mul(d0, r1), keep)
	rhs0 := new(big.Int).Mul(new(big.Int).Mul(r0, d1), decPrecision)
	lhs1 := new(big.Int).Mul(new(big.Int).Mul(d1, r0), keep)
	rhs1 := new(big.Int).Mul(new(big.Int).Mul(r1, d0), decPrecision)
	if lhs0.Cmp(rhs0) > 0 || lhs1.Cmp(rhs1) > 0 {
		return types.ErrMaxSlippageAssertion.Wrapf("deposit %s/%s against pool %s/%s", deposits[0], deposits[1], reserves[0], reserves[1])
	}
	return nil
}

func minBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}
