package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/app"
	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
)

const nativePair = `[{"native_token":{"denom":"upaw"}},{"native_token":{"denom":"uusdc"}}]`

func execCmd(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--"+flagHome, home))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustExec(t *testing.T, home string, args ...string) string {
	t.Helper()
	out, err := execCmd(t, home, args...)
	require.NoError(t, err, "pawswapd %s", strings.Join(args, " "))
	return out
}

func initHome(t *testing.T, args ...string) (string, Bootstrap) {
	t.Helper()
	home := t.TempDir()
	out := mustExec(t, home, append([]string{"init"}, args...)...)
	var boot Bootstrap
	require.NoError(t, json.Unmarshal([]byte(out), &boot))
	return home, boot
}

func setFlag(tb testing.TB, flagSet *pflag.FlagSet, name, value string) {
	tb.Helper()
	require.NoError(tb, flagSet.Set(name, value))
}

func TestInitBootstrapsOracleAndFactory(t *testing.T) {
	home, boot := initHome(t, "--chain-id", "pawswap-test", "--from", "owner")

	require.Equal(t, "pawswap-test", boot.ChainID)
	require.NotEmpty(t, boot.Oracle)
	require.NotEmpty(t, boot.Factory)
	require.NotEqual(t, boot.Oracle, boot.Factory)

	toml, err := os.ReadFile(configPath(home))
	require.NoError(t, err)
	require.Contains(t, string(toml), "pawswap-test")
	require.Contains(t, string(toml), "[factory]")

	saved, err := readBootstrap(home)
	require.NoError(t, err)
	require.Equal(t, boot, saved)

	out := mustExec(t, home, "query", "smart", boot.Factory, `{"config":{}}`)
	var cfg ammtypes.FactoryConfig
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	require.Equal(t, boot.Owner, cfg.Owner)
	require.Equal(t, boot.Oracle, cfg.OracleAddr)
	require.Equal(t, boot.Codes.Pair, cfg.PairCodeID)
	require.Equal(t, ammtypes.DefaultCommissionRate, cfg.CommissionRate)
}

func TestInitRefusesToOverwrite(t *testing.T) {
	home, first := initHome(t)

	_, err := execCmd(t, home, "init")
	require.ErrorContains(t, err, "already exists")

	out := mustExec(t, home, "init", "--"+flagOverwrite)
	var second Bootstrap
	require.NoError(t, json.Unmarshal([]byte(out), &second))
	// fresh state replays the same instance sequence
	require.Equal(t, first.Factory, second.Factory)
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("PAWSWAP_FACTORY_COMMISSION_RATE", "0.005")
	home, boot := initHome(t)

	out := mustExec(t, home, "query", "smart", boot.Factory, `{"config":{}}`)
	var cfg ammtypes.FactoryConfig
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	require.Equal(t, "0.005", cfg.CommissionRate)

	toml, err := os.ReadFile(configPath(home))
	require.NoError(t, err)
	require.Contains(t, string(toml), "0.005")
}

func TestLoadConfigPrecedence(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfig(home, Config{
		ChainID:        "from-file",
		DBBackend:      "memdb",
		LogLevel:       "error",
		CommissionRate: "0.002",
		OperatorFee:    "0",
	}))

	v := newViper(home)
	cfg, err := loadConfig(v)
	require.NoError(t, err)
	require.Equal(t, "from-file", cfg.ChainID)
	require.Equal(t, "memdb", cfg.DBBackend)
	require.Equal(t, "0.002", cfg.CommissionRate)

	t.Setenv("PAWSWAP_CHAIN_ID", "from-env")
	v = newViper(home)
	cfg, err = loadConfig(v)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.ChainID)

	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.String(flagChainID, "", "")
	flagSet.String(flagLogLevel, "", "")
	setFlag(t, flagSet, flagChainID, "from-flag")

	v = newViper(home)
	require.NoError(t, bindFlags(v, flagSet))
	cfg, err = loadConfig(v)
	require.NoError(t, err)
	require.Equal(t, "from-flag", cfg.ChainID)
	require.Equal(t, "error", cfg.LogLevel)
}

func TestLoadConfigRejectsBadRate(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfig(home, Config{
		ChainID:        "c",
		DBBackend:      "goleveldb",
		LogLevel:       "info",
		CommissionRate: "abc",
		OperatorFee:    "0",
	}))

	_, err := loadConfig(newViper(home))
	require.ErrorContains(t, err, "commission rate")
}

func TestCreatePairProvideAndQuery(t *testing.T) {
	home, boot := initHome(t)

	mustExec(t, home, "bank", "mint", "alice", "1000000upaw,1000000uusdc")
	out := mustExec(t, home, "query", "balance", "alice")
	require.Contains(t, out, "1000000")

	out = mustExec(t, home, "tx", "execute", boot.Factory,
		`{"create_pair":{"asset_infos":`+nativePair+`}}`, "--from", "alice")
	var res txResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Positive(t, res.Height)
	require.NotEmpty(t, res.Events)

	out = mustExec(t, home, "query", "pairs")
	var pairs ammtypes.PairsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &pairs))
	require.Len(t, pairs.Pairs, 1)
	pairAddr := pairs.Pairs[0].ContractAddr
	require.NotEmpty(t, pairAddr)
	require.NotEmpty(t, pairs.Pairs[0].LiquidityToken)

	provide := `{"provide_liquidity":{"assets":[` +
		`{"info":{"native_token":{"denom":"upaw"}},"amount":"1000"},` +
		`{"info":{"native_token":{"denom":"uusdc"}},"amount":"1000"}]}}`
	mustExec(t, home, "tx", "execute", pairAddr, provide, "--from", "alice", "--funds", "1000upaw,1000uusdc")

	out = mustExec(t, home, "query", "smart", pairAddr, `{"pool":{}}`)
	var pool ammtypes.PoolResponse
	require.NoError(t, json.Unmarshal([]byte(out), &pool))
	require.Equal(t, "1000", pool.TotalShare.String())

	// a failing tx leaves committed state untouched
	_, err := execCmd(t, home, "tx", "execute", boot.Factory,
		`{"create_pair":{"asset_infos":`+nativePair+`}}`, "--from", "alice")
	require.Error(t, err)

	out = mustExec(t, home, "query", "pairs", "--"+flagLimit, "5", "--"+flagStartAfter, nativePair)
	require.NoError(t, json.Unmarshal([]byte(out), &pairs))
	require.Empty(t, pairs.Pairs)
}

func TestInstantiateAssignsLabel(t *testing.T) {
	home, boot := initHome(t)

	out := mustExec(t, home, "tx", "instantiate", "4", `{}`, "--from", "bob", "--admin", "bob")
	var res txResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.NotEmpty(t, res.Contract)
	require.NotEqual(t, boot.Oracle, res.Contract)

	out = mustExec(t, home, "query", "smart", res.Contract, `{"admin":{}}`)
	require.NotEmpty(t, strings.TrimSpace(out))

	db, err := dbm.NewDB("application", dbm.GoLevelDBBackend, dataDir(home))
	require.NoError(t, err)
	a, err := app.New(db, log.NewNopLogger(), app.DefaultConfig())
	require.NoError(t, err)
	addr, err := a.ContractKeeper.AddressCodec().StringToBytes(res.Contract)
	require.NoError(t, err)
	info, err := a.ContractKeeper.GetContractInfo(a.NewContext(), addr)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(info.Label, "instance-"), info.Label)
	require.Equal(t, a.Codes.Oracle, info.CodeID)
	require.NoError(t, db.Close())

	_, err = execCmd(t, home, "tx", "instantiate", "zero", `{}`, "--from", "bob")
	require.ErrorContains(t, err, "invalid code id")
	_, err = execCmd(t, home, "tx", "instantiate", "4", `{not json`, "--from", "bob")
	require.ErrorContains(t, err, "not valid json")
}
