package pool

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// decPrecision is the fixed point scale of math.LegacyDec.
var decPrecision = new(big.Int).Exp(big.NewInt(10), big.NewInt(math.LegacyPrecision), nil)

// checkInputs rejects nil, negative or wider than 128 bit amounts.
func checkInputs(values ...math.Int) error {
	for _, v := range values {
		if v.IsNil() {
			return types.ErrInvalidMsg.Wrap("nil amount")
		}
		if err := types.CheckUint128(v); err != nil {
			return err
		}
	}
	return nil
}

// narrow converts an intermediate back to a 128-bit amount.
func narrow(v *big.Int) (math.Int, error) {
	if v.Sign() < 0 {
		return math.Int{}, types.ErrOverflow.Wrapf("negative result %s", v)
	}
	if v.BitLen() > 128 {
		return math.Int{}, types.ErrOverflow.Wrapf("%s does not fit in 128 bits", v)
	}
	return math.NewIntFromBigInt(v), nil
}

// mulDiv computes floor(a*b/c).
func mulDiv(a, b, c *big.Int) *big.Int {
	n := new(big.Int).Mul(a, b)
	return n.Quo(n, c)
}

// mulDivCeil computes ceil(a*b/c).
func mulDivCeil(a, b, c *big.Int) *big.Int {
	n := new(big.Int).Mul(a, b)
	q, r := new(big.Int).QuoRem(n, c, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// mulRate computes floor(v*rate) exactly on the rate's 18 decimal fixed point form.
func mulRate(v *big.Int, rate math.LegacyDec) *big.Int {
	return mulDiv(v, rate.BigInt(), decPrecision)
}

// saturatingSub returns max(a-b, 0).
func saturatingSub(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(a, b)
}

// Isqrt returns floor(sqrt(v)).
func Isqrt(v *big.Int) *big.Int {
	if v.Sign() <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Sqrt(v)
}
