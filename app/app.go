package app

import (
	"fmt"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"

	"github.com/paw-chain/pawswap/x/amm/factory"
	"github.com/paw-chain/pawswap/x/amm/oracle"
	"github.com/paw-chain/pawswap/x/amm/pair"
	"github.com/paw-chain/pawswap/x/amm/token"
	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
	contractskeeper "github.com/paw-chain/pawswap/x/contracts/keeper"
	contractstypes "github.com/paw-chain/pawswap/x/contracts/types"
)

const (
	// Name is the application name.
	Name = "pawswap"

	// FaucetModuleName is the module account allowed to mint native coins
	// for development and tests.
	FaucetModuleName = "faucet"
)

// module account permissions
var maccPerms = map[string][]string{
	authtypes.FeeCollectorName: nil,
	FaucetModuleName:           {authtypes.Minter, authtypes.Burner},
}

// Config holds the settings App needs at construction.
type Config struct {
	ChainID        string
	CommissionRate string
	OperatorFee    string
}

// DefaultConfig returns the configuration used by `init` and tests.
func DefaultConfig() Config {
	return Config{
		ChainID:        "pawswap-1",
		CommissionRate: ammtypes.DefaultCommissionRate,
		OperatorFee:    ammtypes.DefaultOperatorFee,
	}
}

// Validate checks the fee rates.
func (c Config) Validate() error {
	if c.ChainID == "" {
		return fmt.Errorf("chain id must not be empty")
	}
	if _, err := ammtypes.ParseRate(c.CommissionRate); err != nil {
		return fmt.Errorf("commission rate: %w", err)
	}
	if _, err := ammtypes.ParseRate(c.OperatorFee); err != nil {
		return fmt.Errorf("operator fee: %w", err)
	}
	return nil
}

// CodeIDs holds the ids assigned to the built-in codes.
type CodeIDs struct {
	Token   uint64
	Pair    uint64
	Factory uint64
	Oracle  uint64
}

// App wires a committed multistore, the auth and bank keepers and the
// contract host with every AMM code uploaded.
type App struct {
	logger log.Logger
	cfg    Config
	cms    storetypes.CommitMultiStore
	keys   map[string]*storetypes.KVStoreKey

	AccountKeeper  authkeeper.AccountKeeper
	BankKeeper     bankkeeper.BaseKeeper
	ContractKeeper *contractskeeper.Keeper

	Codes CodeIDs
}

// New loads the latest committed state from db and returns a ready App.
func New(db dbm.DB, logger log.Logger, cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	SetConfig()

	keys := storetypes.NewKVStoreKeys(authtypes.StoreKey, banktypes.StoreKey, contractstypes.StoreKey)
	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("load latest version: %w", err)
	}

	encodingConfig := MakeEncodingConfig()
	authority := authtypes.NewModuleAddress(govtypes.ModuleName).String()
	addressCodec := address.NewBech32Codec(Bech32PrefixAccAddr)

	app := &App{
		logger: logger,
		cfg:    cfg,
		cms:    cms,
		keys:   keys,
	}
	app.AccountKeeper = authkeeper.NewAccountKeeper(
		encodingConfig.Codec,
		runtime.NewKVStoreService(keys[authtypes.StoreKey]),
		authtypes.ProtoBaseAccount,
		maccPerms,
		addressCodec,
		Bech32PrefixAccAddr,
		authority,
	)
	app.BankKeeper = bankkeeper.NewBaseKeeper(
		encodingConfig.Codec,
		runtime.NewKVStoreService(keys[banktypes.StoreKey]),
		app.AccountKeeper,
		app.BlockedModuleAccountAddrs(),
		authority,
		logger,
	)
	app.ContractKeeper = contractskeeper.NewKeeper(keys[contractstypes.StoreKey], app.BankKeeper, addressCodec)

	// upload order fixes the code ids across restarts
	app.Codes = CodeIDs{
		Token:   app.ContractKeeper.StoreCode(token.New()),
		Pair:    app.ContractKeeper.StoreCode(pair.New()),
		Factory: app.ContractKeeper.StoreCode(factory.New()),
		Oracle:  app.ContractKeeper.StoreCode(oracle.New()),
	}
	return app, nil
}

// Config returns the configuration the app was built with.
func (app *App) Config() Config {
	return app.cfg
}

// BlockedModuleAccountAddrs returns the module accounts that may not receive
// coins from contracts or users.
func (app *App) BlockedModuleAccountAddrs() map[string]bool {
	blocked := make(map[string]bool)
	for acc := range maccPerms {
		blocked[authtypes.NewModuleAddress(acc).String()] = true
	}
	return blocked
}

// LastBlockHeight returns the height of the last commit.
func (app *App) LastBlockHeight() int64 {
	return app.cms.LastCommitID().Version
}

// NewContext returns a context for the block following the last commit.
func (app *App) NewContext() sdk.Context {
	header := cmtproto.Header{
		ChainID: app.cfg.ChainID,
		Height:  app.LastBlockHeight() + 1,
		Time:    time.Now().UTC(),
	}
	return sdk.NewContext(app.cms, header, false, app.logger)
}

// Commit persists every write made through contexts of this app.
func (app *App) Commit() storetypes.CommitID {
	id := app.cms.Commit()
	app.logger.Debug("committed state", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return id
}

// Mint creates coins through the faucet module account and sends them to addr.
func (app *App) Mint(ctx sdk.Context, addr sdk.AccAddress, coins sdk.Coins) error {
	if err := app.BankKeeper.MintCoins(ctx, FaucetModuleName, coins); err != nil {
		return fmt.Errorf("mint %s: %w", coins, err)
	}
	return app.BankKeeper.SendCoinsFromModuleToAccount(ctx, FaucetModuleName, addr, coins)
}
