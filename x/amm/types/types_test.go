package types_test

import (
	"bytes"
	"strings"
	"testing"

	"cosmossdk.io/math"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/paw-chain/pawswap/x/amm/types"
)

var codec = addresscodec.NewBech32Codec("paw")

type api struct{}

func (api) AddrValidate(addr string) (sdk.AccAddress, error) { return codec.StringToBytes(addr) }
func (api) AddrHumanize(addr sdk.AccAddress) (string, error) { return codec.BytesToString(addr) }

func tokenAddr(t *testing.T, seed byte) string {
	t.Helper()
	s, err := codec.BytesToString(bytes.Repeat([]byte{seed}, 20))
	require.NoError(t, err)
	return s
}

func TestPairKeyIsOrderIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		denom := rapid.StringMatching(`[a-z]{3,12}`)
		a := types.NativeAsset(denom.Draw(t, "a"))
		b := types.NativeAsset(denom.Draw(t, "b"))
		require.Equal(t, types.PairKey([2]types.AssetInfo{a, b}), types.PairKey([2]types.AssetInfo{b, a}))
		require.Equal(t, types.PairLabel([2]types.AssetInfo{a, b}), types.PairLabel([2]types.AssetInfo{b, a}))
	})
}

func TestPairKeySeparatesKinds(t *testing.T) {
	addr := tokenAddr(t, 7)
	native := [2]types.AssetInfo{types.NativeAsset("upaw"), types.NativeAsset(addr)}
	token := [2]types.AssetInfo{types.NativeAsset("upaw"), types.TokenAsset(addr)}
	require.NotEqual(t, types.PairKey(native), types.PairKey(token))

	// length prefixes keep "ab"+"c" apart from "a"+"bc"
	left := [2]types.AssetInfo{types.NativeAsset("uab"), types.NativeAsset("uc")}
	right := [2]types.AssetInfo{types.NativeAsset("ua"), types.NativeAsset("ubc")}
	require.NotEqual(t, types.PairKey(left), types.PairKey(right))

	// token addresses compare by their decoded bytes
	upper := types.TokenAsset(strings.ToUpper(addr))
	require.True(t, upper.Equal(types.TokenAsset(addr)))
}

func TestAssetInfoValidate(t *testing.T) {
	require.NoError(t, types.NativeAsset("upaw").Validate(api{}))
	require.NoError(t, types.TokenAsset(tokenAddr(t, 1)).Validate(api{}))

	both := types.AssetInfo{Token: &types.TokenAssetInfo{ContractAddr: tokenAddr(t, 1)}, NativeToken: &types.NativeAssetInfo{Denom: "upaw"}}
	for name, info := range map[string]types.AssetInfo{
		"empty":       {},
		"both":        both,
		"bad denom":   types.NativeAsset("1"),
		"bad address": types.TokenAsset("cosmos1notours"),
	} {
		require.ErrorIs(t, info.Validate(api{}), types.ErrInvalidAssetInfo, name)
	}
}

func TestAssetValidateBounds(t *testing.T) {
	info := types.NativeAsset("upaw")
	require.NoError(t, types.NewAsset(info, types.MaxUint128).Validate(api{}))
	require.ErrorIs(t, types.NewAsset(info, types.MaxUint128.AddRaw(1)).Validate(api{}), types.ErrOverflow)
	require.ErrorIs(t, types.NewAsset(info, math.NewInt(-1)).Validate(api{}), types.ErrInvalidMsg)
}

func TestNativeFundsSkipsTokensAndZero(t *testing.T) {
	coins := types.NativeFunds(
		types.NewAsset(types.NativeAsset("upaw"), math.NewInt(5)),
		types.NewAsset(types.TokenAsset(tokenAddr(t, 2)), math.NewInt(7)),
		types.NewAsset(types.NativeAsset("uusdc"), math.ZeroInt()),
	)
	require.Equal(t, sdk.NewCoins(sdk.NewInt64Coin("upaw", 5)).String(), coins.String())
}

func TestVariantRequiresExactlyOne(t *testing.T) {
	_, err := types.PairExecuteMsg{}.Variant()
	require.ErrorIs(t, err, types.ErrInvalidMsg)

	_, err = types.FactoryExecuteMsg{
		AddCreator:    &types.AddCreator{},
		RemoveCreator: &types.RemoveCreator{},
	}.Variant()
	require.ErrorIs(t, err, types.ErrInvalidMsg)

	v, err := types.FactoryQueryMsg{Config: &types.FactoryConfigQuery{}}.Variant()
	require.NoError(t, err)
	require.IsType(t, &types.FactoryConfigQuery{}, v)
}

func TestDecodeMsgRejectsUnknownFields(t *testing.T) {
	var m types.PairExecuteMsg
	require.ErrorIs(t, types.DecodeMsg([]byte(`{"reply":{"id":1}}`), &m), types.ErrInvalidMsg)
	require.NoError(t, types.DecodeMsg([]byte(`{"update_operator":{}}`), &m))
	require.NotNil(t, m.UpdateOperator)
}

func TestParseRate(t *testing.T) {
	for _, ok := range []string{"0", "0.003", "1"} {
		_, err := types.ParseRate(ok)
		require.NoError(t, err, ok)
	}
	for _, bad := range []string{"-0.1", "1.0001", "abc", ""} {
		_, err := types.ParseRate(bad)
		require.ErrorIs(t, err, types.ErrInvalidRate, bad)
	}
}

func TestPairRecordRegistersOnce(t *testing.T) {
	infos := [2]types.AssetInfo{types.NativeAsset("upaw"), types.NativeAsset("uusdc")}
	record := types.NewPendingRecord(infos, "", types.DefaultCommissionRate, types.DefaultOperatorFee)
	require.False(t, record.IsRegistered())
	require.Empty(t, record.PairInfo().ContractAddr)

	registered, err := record.Register("pair", "lp")
	require.NoError(t, err)
	require.True(t, registered.IsRegistered())
	require.Equal(t, "pair", registered.PairInfo().ContractAddr)
	require.Equal(t, "lp", registered.PairInfo().LiquidityToken)

	again, err := registered.Register("other", "other-lp")
	require.ErrorIs(t, err, types.ErrPairRegistered)
	require.Equal(t, "pair", again.PairInfo().ContractAddr)
}
