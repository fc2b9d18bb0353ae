package factory

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/store/dbadapter"
	dbm "github.com/cosmos/cosmos-db"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/amm/types"
	contractstypes "github.com/paw-chain/pawswap/x/contracts/types"
)

type testAPI struct{}

var bech32 = addresscodec.NewBech32Codec("paw")

func (testAPI) AddrValidate(addr string) (sdk.AccAddress, error) {
	return bech32.StringToBytes(addr)
}

func (testAPI) AddrHumanize(addr sdk.AccAddress) (string, error) {
	return bech32.BytesToString(addr)
}

// pairQuerier answers the pair info query with a fixed description.
type pairQuerier struct {
	info types.PairInfo
}

func (q pairQuerier) QuerySmart(sdk.AccAddress, []byte) ([]byte, error) {
	return json.Marshal(q.info)
}

func (pairQuerier) QueryBalance(addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewInt64Coin(denom, 0)
}

func humanize(t *testing.T, name string) string {
	t.Helper()
	s, err := bech32.BytesToString(sdk.AccAddress([]byte(name + "____________________")[:20]))
	require.NoError(t, err)
	return s
}

func instantiateReply(t *testing.T, addr string) contractstypes.Reply {
	t.Helper()
	bz, err := json.Marshal(contractstypes.InstantiateResponse{Address: addr})
	require.NoError(t, err)
	return contractstypes.Reply{
		ID:     types.CreatePairReplyID,
		Result: contractstypes.SubMsgResult{Ok: &contractstypes.SubMsgResponse{Data: bz}},
	}
}

func TestReplyRegistersExactlyOnce(t *testing.T) {
	infos := [2]types.AssetInfo{types.NativeAsset("upaw"), types.NativeAsset("uusdc")}
	pairAddr, lpAddr := humanize(t, "pair"), humanize(t, "lp")
	deps := contractstypes.Deps{
		Storage: dbadapter.Store{DB: dbm.NewMemDB()},
		API:     testAPI{},
		Querier: pairQuerier{info: types.PairInfo{AssetInfos: infos, LiquidityToken: lpAddr}},
		Logger:  log.NewNopLogger(),
	}
	c := New()

	// no record to complete
	_, err := c.Reply(deps, contractstypes.Env{}, instantiateReply(t, pairAddr))
	require.ErrorIs(t, err, types.ErrNotFound)

	require.NoError(t, savePair(deps.Storage, types.NewPendingRecord(infos, "", types.DefaultCommissionRate, types.DefaultOperatorFee)))
	pending, err := loadPair(deps.Storage, infos)
	require.NoError(t, err)
	require.False(t, pending.IsRegistered())
	require.Empty(t, pending.PairInfo().ContractAddr)

	resp, err := c.Reply(deps, contractstypes.Env{}, instantiateReply(t, pairAddr))
	require.NoError(t, err)
	require.Contains(t, resp.Attributes, sdk.NewAttribute(types.AttributeKeyPairContractAddr, pairAddr))

	record, err := loadPair(deps.Storage, [2]types.AssetInfo{infos[1], infos[0]})
	require.NoError(t, err)
	require.Equal(t, types.Registered{ContractAddr: pairAddr, LiquidityToken: lpAddr}, record.Registration)

	// a replayed reply never rewrites the record
	_, err = c.Reply(deps, contractstypes.Env{}, instantiateReply(t, humanize(t, "other")))
	require.ErrorIs(t, err, types.ErrPairRegistered)
	record, err = loadPair(deps.Storage, infos)
	require.NoError(t, err)
	require.Equal(t, pairAddr, record.PairInfo().ContractAddr)
}

func TestReplyRejectsUnusableResults(t *testing.T) {
	deps := contractstypes.Deps{
		Storage: dbadapter.Store{DB: dbm.NewMemDB()},
		API:     testAPI{},
		Querier: pairQuerier{},
		Logger:  log.NewNopLogger(),
	}
	c := New()

	_, err := c.Reply(deps, contractstypes.Env{}, contractstypes.Reply{ID: 7})
	require.ErrorIs(t, err, types.ErrInvalidMsg)

	_, err = c.Reply(deps, contractstypes.Env{}, contractstypes.Reply{
		ID:     types.CreatePairReplyID,
		Result: contractstypes.SubMsgResult{Err: "out of gas"},
	})
	require.ErrorIs(t, err, contractstypes.ErrReplyFailed)

	_, err = c.Reply(deps, contractstypes.Env{}, contractstypes.Reply{
		ID:     types.CreatePairReplyID,
		Result: contractstypes.SubMsgResult{Ok: &contractstypes.SubMsgResponse{}},
	})
	require.ErrorIs(t, err, contractstypes.ErrEmptyReplyData)
}

func TestRestrictedPrefixOf(t *testing.T) {
	cases := map[string]struct {
		info types.AssetInfo
		want string
		ok   bool
	}{
		"plain denom":   {types.NativeAsset("upaw"), "", false},
		"two segments":  {types.NativeAsset("ibc/ABCDEF"), "", false},
		"three":         {types.NativeAsset("factory/issuer/coin"), "factory/issuer", true},
		"deeper":        {types.NativeAsset("factory/issuer/a/b"), "factory/issuer", true},
		"token address": {types.TokenAsset("paw1x/y/z"), "", false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := restrictedPrefixOf(tc.info)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}
