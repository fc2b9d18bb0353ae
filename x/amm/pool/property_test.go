package pool_test

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"pgregory.net/rapid"

	"github.com/paw-chain/pawswap/x/amm/pool"
)

// amount draws a positive amount of up to 128 bits, biased toward small values.
func amount(t *rapid.T, label string) math.Int {
	lo := rapid.Uint64Range(1, ^uint64(0)).Draw(t, label+"_lo")
	hi := rapid.SampledFrom([]uint64{0, 0, 0, 1, 1 << 20, ^uint64(0)}).Draw(t, label+"_hi")
	v := new(big.Int).Lsh(new(big.Int).SetUint64(hi), 64)
	v.Or(v, new(big.Int).SetUint64(lo))
	return math.NewIntFromBigInt(v)
}

func rate(t *rapid.T, label string, maxPermille int64) math.LegacyDec {
	return math.LegacyNewDecWithPrec(rapid.Int64Range(0, maxPermille).Draw(t, label), 3)
}

// Property: fees are carved out of the gross output and the product of the
// reserves never shrinks when the pool keeps the commission.
func TestPropertySwapConstantProductNonDecreasing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		offerReserve := amount(t, "offer_reserve")
		askReserve := amount(t, "ask_reserve")
		offer := amount(t, "offer")
		commissionRate := rate(t, "commission", 500)
		operatorFeeRate := rate(t, "operator_fee", 500)

		res, err := pool.ComputeSwap(offer, offerReserve, askReserve, commissionRate, operatorFeeRate)
		if err != nil {
			t.Fatalf("swap failed: %v", err)
		}

		gross := new(big.Int).Mul(askReserve.BigInt(), offer.BigInt())
		gross.Quo(gross, new(big.Int).Add(offerReserve.BigInt(), offer.BigInt()))
		paid := new(big.Int).Add(res.ReturnAmount.BigInt(), res.CommissionAmount.BigInt())
		paid.Add(paid, res.OperatorFeeAmount.BigInt())
		if paid.Cmp(gross) > 0 {
			t.Fatalf("return+fees %s exceeds gross %s", paid, gross)
		}

		before := new(big.Int).Mul(offerReserve.BigInt(), askReserve.BigInt())
		newOffer := new(big.Int).Add(offerReserve.BigInt(), offer.BigInt())
		newAsk := new(big.Int).Sub(askReserve.BigInt(), gross)
		if new(big.Int).Mul(newOffer, newAsk).Cmp(before) < 0 {
			t.Fatalf("product decreased: %s*%s < %s", newOffer, newAsk, before)
		}
	})
}

// Property: identical inputs always produce identical outputs.
func TestPropertySwapDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		offerReserve := amount(t, "offer_reserve")
		askReserve := amount(t, "ask_reserve")
		offer := amount(t, "offer")
		commissionRate := rate(t, "commission", 100)
		operatorFeeRate := rate(t, "operator_fee", 100)

		a, errA := pool.ComputeSwap(offer, offerReserve, askReserve, commissionRate, operatorFeeRate)
		b, errB := pool.ComputeSwap(offer, offerReserve, askReserve, commissionRate, operatorFeeRate)
		if (errA == nil) != (errB == nil) {
			t.Fatalf("errors differ: %v vs %v", errA, errB)
		}
		if errA != nil {
			return
		}
		if !a.ReturnAmount.Equal(b.ReturnAmount) || !a.CommissionAmount.Equal(b.CommissionAmount) ||
			!a.OperatorFeeAmount.Equal(b.OperatorFeeAmount) || !a.SpreadAmount.Equal(b.SpreadAmount) {
			t.Fatalf("non-deterministic swap: %+v vs %+v", a, b)
		}
	})
}

// Property: withdrawing never pays out more than the reserves and withdrawing
// everything pays out exactly the reserves.
func TestPropertyWithdrawBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserves := [2]math.Int{amount(t, "reserve0"), amount(t, "reserve1")}
		total := amount(t, "total")
		burn := math.MinInt(amount(t, "burn"), total)

		refunds, err := pool.ComputeWithdraw(burn, total, reserves)
		if err != nil {
			return
		}
		for i := range refunds {
			if refunds[i].GT(reserves[i]) {
				t.Fatalf("refund %s exceeds reserve %s", refunds[i], reserves[i])
			}
		}

		all, err := pool.ComputeWithdraw(total, total, reserves)
		if err != nil {
			t.Fatalf("full withdraw failed: %v", err)
		}
		if !all[0].Equal(reserves[0]) || !all[1].Equal(reserves[1]) {
			t.Fatalf("full withdraw %v != reserves %v", all, reserves)
		}
	})
}

// Property: provide followed by a full withdraw of the minted shares returns
// no more than the accepted deposit, and at most one unit less per side.
func TestPropertyProvideWithdrawRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reserves := [2]math.Int{amount(t, "reserve0"), amount(t, "reserve1")}
		total := amount(t, "total")
		deposits := [2]math.Int{amount(t, "deposit0"), amount(t, "deposit1")}

		res, err := pool.ComputeShareOnProvide(deposits, reserves, total)
		if err != nil {
			return
		}
		newReserves := [2]math.Int{reserves[0].Add(deposits[0]), reserves[1].Add(deposits[1])}
		newTotal := total.Add(res.Shares)

		refunds, err := pool.ComputeWithdraw(res.Shares, newTotal, newReserves)
		if err != nil {
			return
		}
		for i := range refunds {
			if refunds[i].GT(deposits[i]) {
				t.Fatalf("side %d: refund %s exceeds deposit %s", i, refunds[i], deposits[i])
			}
			if !res.Accepted[i].Add(res.Donated[i]).Equal(deposits[i]) {
				t.Fatalf("side %d: accepted+donated != deposit", i)
			}
		}
	})
}
