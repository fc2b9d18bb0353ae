package pool_test

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/amm/pool"
	"github.com/paw-chain/pawswap/x/amm/types"
)

func ints(a, b int64) [2]math.Int {
	return [2]math.Int{math.NewInt(a), math.NewInt(b)}
}

func TestComputeShareOnProvide_FirstDeposit(t *testing.T) {
	res, err := pool.ComputeShareOnProvide(ints(100, 100), ints(0, 0), math.ZeroInt())
	require.NoError(t, err)
	requireInt(t, 100, res.Shares)
	requirePair(t, res.Accepted, 100, 100)
	requirePair(t, res.Donated, 0, 0)

	res, err = pool.ComputeShareOnProvide(ints(2, 8), ints(0, 0), math.ZeroInt())
	require.NoError(t, err)
	requireInt(t, 4, res.Shares)
}

func TestComputeShareOnProvide_ImbalancedDonates(t *testing.T) {
	res, err := pool.ComputeShareOnProvide(ints(100, 200), ints(100, 100), math.NewInt(100))
	require.NoError(t, err)
	requireInt(t, 100, res.Shares)
	requirePair(t, res.Accepted, 100, 100)
	requirePair(t, res.Donated, 0, 100)

	res, err = pool.ComputeShareOnProvide(ints(300, 100), ints(100, 100), math.NewInt(100))
	require.NoError(t, err)
	requireInt(t, 100, res.Shares)
	requirePair(t, res.Accepted, 100, 100)
	requirePair(t, res.Donated, 200, 0)
}

func TestComputeShareOnProvide_Errors(t *testing.T) {
	_, err := pool.ComputeShareOnProvide(ints(0, 100), ints(0, 0), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidZeroAmount)

	// one unit against a pool of a million per share mints nothing
	_, err = pool.ComputeShareOnProvide(ints(1, 1), ints(1_000_000, 1_000_000), math.NewInt(1))
	require.ErrorIs(t, err, types.ErrInvalidZeroAmount)

	_, err = pool.ComputeShareOnProvide(ints(1, 1), ints(0, 10), math.NewInt(10))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestComputeWithdraw(t *testing.T) {
	refunds, err := pool.ComputeWithdraw(math.NewInt(100), math.NewInt(100), ints(100, 100))
	require.NoError(t, err)
	requirePair(t, refunds, 100, 100)

	refunds, err = pool.ComputeWithdraw(math.NewInt(50), math.NewInt(100), ints(200, 301))
	require.NoError(t, err)
	requirePair(t, refunds, 100, 150)

	_, err = pool.ComputeWithdraw(math.ZeroInt(), math.NewInt(100), ints(100, 100))
	require.ErrorIs(t, err, types.ErrInvalidZeroRatio)

	_, err = pool.ComputeWithdraw(math.NewInt(1), math.NewInt(1_000), ints(10, 10))
	require.ErrorIs(t, err, types.ErrInvalidZeroRatio)

	// one side rounding to zero is still a valid burn
	refunds, err = pool.ComputeWithdraw(math.NewInt(1), math.NewInt(1_000), ints(10, 5_000))
	require.NoError(t, err)
	requirePair(t, refunds, 0, 5)

	_, err = pool.ComputeWithdraw(math.NewInt(101), math.NewInt(100), ints(100, 100))
	require.ErrorIs(t, err, types.ErrOverflow)
}

func TestAssertSlippageTolerance(t *testing.T) {
	tol := math.LegacyMustNewDecFromStr("0.01")
	tooHigh := math.LegacyMustNewDecFromStr("1.5")

	require.NoError(t, pool.AssertSlippageTolerance(nil, ints(1, 1000), ints(100, 100)))
	require.NoError(t, pool.AssertSlippageTolerance(&tol, ints(100, 100), ints(100, 100)))
	require.NoError(t, pool.AssertSlippageTolerance(&tol, ints(100, 101), ints(100, 100)))
	require.NoError(t, pool.AssertSlippageTolerance(&tol, ints(100, 102), ints(0, 0)))
	require.ErrorIs(t, pool.AssertSlippageTolerance(&tol, ints(100, 102), ints(100, 100)), types.ErrMaxSlippageAssertion)
	require.ErrorIs(t, pool.AssertSlippageTolerance(&tol, ints(102, 100), ints(100, 100)), types.ErrMaxSlippageAssertion)
	require.ErrorIs(t, pool.AssertSlippageTolerance(&tooHigh, ints(100, 100), ints(100, 100)), types.ErrInvalidExceedOneSlippage)
}

func TestIsqrt(t *testing.T) {
	require.Equal(t, int64(0), pool.Isqrt(big.NewInt(0)).Int64())
	require.Equal(t, int64(3), pool.Isqrt(big.NewInt(15)).Int64())
	require.Equal(t, int64(4), pool.Isqrt(big.NewInt(16)).Int64())
}

func requireInt(t *testing.T, want int64, got math.Int) {
	t.Helper()
	require.Equal(t, math.NewInt(want).String(), got.String())
}

func requirePair(t *testing.T, got [2]math.Int, want0, want1 int64) {
	t.Helper()
	requireInt(t, want0, got[0])
	requireInt(t, want1, got[1])
}
