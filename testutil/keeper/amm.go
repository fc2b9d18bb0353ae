package keeper

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/cometbft/cometbft/crypto"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/app"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// AMMFixture is an in-memory app with helpers for driving contracts from tests.
type AMMFixture struct {
	t   testing.TB
	App *app.App
	Ctx sdk.Context
}

// AMMKeeper builds an app over a MemDB with every code uploaded.
func AMMKeeper(t testing.TB) *AMMFixture {
	t.Helper()
	a, err := app.New(dbm.NewMemDB(), log.NewNopLogger(), app.DefaultConfig())
	require.NoError(t, err)
	return &AMMFixture{t: t, App: a, Ctx: a.NewContext()}
}

// Addr derives a deterministic account address from name.
func Addr(name string) sdk.AccAddress {
	return sdk.AccAddress(crypto.AddressHash([]byte(name)))
}

// Bech32 renders addr with the app prefix.
func (f *AMMFixture) Bech32(addr sdk.AccAddress) string {
	s, err := f.App.ContractKeeper.AddressCodec().BytesToString(addr)
	require.NoError(f.t, err)
	return s
}

// Fund mints coins to addr.
func (f *AMMFixture) Fund(addr sdk.AccAddress, coins ...sdk.Coin) {
	f.t.Helper()
	require.NoError(f.t, f.App.Mint(f.Ctx, addr, sdk.NewCoins(coins...)))
}

// Balance returns the native balance of addr.
func (f *AMMFixture) Balance(addr sdk.AccAddress, denom string) math.Int {
	return f.App.BankKeeper.GetBalance(f.Ctx, addr, denom).Amount
}

// ResetEvents drops the events collected so far.
func (f *AMMFixture) ResetEvents() {
	f.Ctx = f.Ctx.WithEventManager(sdk.NewEventManager())
}

// Events returns the events emitted since the last reset.
func (f *AMMFixture) Events() sdk.Events {
	return f.Ctx.EventManager().Events()
}

// Instantiate creates an instance of codeID and fails the test on error.
func (f *AMMFixture) Instantiate(codeID uint64, sender, admin sdk.AccAddress, msg any, funds ...sdk.Coin) sdk.AccAddress {
	f.t.Helper()
	bz, err := json.Marshal(msg)
	require.NoError(f.t, err)
	addr, _, err := f.App.ContractKeeper.Instantiate(f.Ctx, codeID, sender, admin, "test", bz, sdk.NewCoins(funds...))
	require.NoError(f.t, err)
	return addr
}

// Execute calls contract with msg encoded as JSON.
func (f *AMMFixture) Execute(contract, sender sdk.AccAddress, msg any, funds ...sdk.Coin) error {
	bz, err := json.Marshal(msg)
	require.NoError(f.t, err)
	_, err = f.App.ContractKeeper.Execute(f.Ctx, contract, sender, bz, sdk.NewCoins(funds...))
	return err
}

// MustExecute is Execute that fails the test on error.
func (f *AMMFixture) MustExecute(contract, sender sdk.AccAddress, msg any, funds ...sdk.Coin) {
	f.t.Helper()
	require.NoError(f.t, f.Execute(contract, sender, msg, funds...))
}

// Query runs a smart query and decodes the answer into out.
func (f *AMMFixture) Query(contract sdk.AccAddress, msg any, out any) error {
	bz, err := json.Marshal(msg)
	require.NoError(f.t, err)
	res, err := f.App.ContractKeeper.QuerySmart(f.Ctx, contract, bz)
	if err != nil {
		return err
	}
	return json.Unmarshal(res, out)
}

// TokenBalance returns the balance of addr on the token contract.
func (f *AMMFixture) TokenBalance(token, addr sdk.AccAddress) math.Int {
	f.t.Helper()
	var res types.TokenBalanceResponse
	require.NoError(f.t, f.Query(token, types.TokenQueryMsg{
		Balance: &types.TokenBalanceQuery{Address: f.Bech32(addr)},
	}, &res))
	return res.Balance
}

// CreateToken instantiates a token with initial balances and minter as the
// minter.
func (f *AMMFixture) CreateToken(symbol string, minter sdk.AccAddress, balances map[string]math.Int) sdk.AccAddress {
	f.t.Helper()
	msg := types.TokenInstantiateMsg{
		Name:     symbol + " token",
		Symbol:   symbol,
		Decimals: 6,
		Mint:     &types.TokenMinter{Minter: f.Bech32(minter)},
	}
	for addr, amount := range balances {
		msg.InitialBalances = append(msg.InitialBalances, types.TokenBalance{Address: addr, Amount: amount})
	}
	return f.Instantiate(f.App.Codes.Token, minter, nil, msg)
}

// CreateOracle instantiates the tax oracle with admin.
func (f *AMMFixture) CreateOracle(admin sdk.AccAddress) sdk.AccAddress {
	f.t.Helper()
	return f.Instantiate(f.App.Codes.Oracle, admin, nil, types.OracleInstantiateMsg{})
}

// CreateFactory instantiates the factory owned by owner.
func (f *AMMFixture) CreateFactory(owner, oracleAddr sdk.AccAddress) sdk.AccAddress {
	f.t.Helper()
	msg := types.FactoryInstantiateMsg{
		PairCodeID:  f.App.Codes.Pair,
		TokenCodeID: f.App.Codes.Token,
	}
	if oracleAddr != nil {
		msg.OracleAddr = f.Bech32(oracleAddr)
	}
	return f.Instantiate(f.App.Codes.Factory, owner, owner, msg)
}

// CreatePair creates a pair through factory and returns the registered pair
// and liquidity token addresses.
func (f *AMMFixture) CreatePair(factoryAddr, sender sdk.AccAddress, infos [2]types.AssetInfo) (sdk.AccAddress, sdk.AccAddress) {
	f.t.Helper()
	f.MustExecute(factoryAddr, sender, types.FactoryExecuteMsg{
		CreatePair: &types.CreatePair{AssetInfos: infos},
	})
	var info types.PairInfo
	require.NoError(f.t, f.Query(factoryAddr, types.FactoryQueryMsg{
		Pair: &types.FactoryPairQuery{AssetInfos: infos},
	}, &info))
	require.NotEmpty(f.t, info.ContractAddr)
	return f.MustAddr(info.ContractAddr), f.MustAddr(info.LiquidityToken)
}

// MustAddr parses a bech32 address.
func (f *AMMFixture) MustAddr(s string) sdk.AccAddress {
	f.t.Helper()
	bz, err := f.App.ContractKeeper.AddressCodec().StringToBytes(s)
	require.NoError(f.t, err)
	return bz
}

// EventAttrs returns every value of key on events of type typ.
func EventAttrs(events sdk.Events, typ, key string) []string {
	var values []string
	for _, ev := range events {
		if ev.Type != typ {
			continue
		}
		for _, attr := range ev.Attributes {
			if attr.Key == key {
				values = append(values, attr.Value)
			}
		}
	}
	return values
}
