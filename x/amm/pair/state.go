package pair

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

var (
	configKey      = []byte("config")
	poolKey        = []byte("pool")
	traderPrefix   = []byte("trader/")
	providerPrefix = []byte("provider/")
)

// Config is the pair configuration. The fee rates are written once at
// instantiation; no execute path rewrites them.
type Config struct {
	AssetInfos     [2]types.AssetInfo `json:"asset_infos"`
	LiquidityToken string             `json:"liquidity_token"`
	OracleAddr     string             `json:"oracle_addr"`
	CommissionRate string             `json:"commission_rate"`
	OperatorFee    string             `json:"operator_fee"`
	Admin          string             `json:"admin,omitempty"`
	Operator       string             `json:"operator,omitempty"`
	Whitelisted    bool               `json:"whitelisted"`
}

// PoolState holds the tracked reserves, indexed like Config.AssetInfos.
type PoolState struct {
	Reserves    [2]math.Int `json:"reserves"`
	TotalShares math.Int    `json:"total_shares"`
}

// rates returns the commission rate and the operator fee rate in effect. The
// operator fee is zero while no operator is registered.
func (c *Config) rates() (math.LegacyDec, math.LegacyDec, error) {
	commission, err := types.ParseRate(c.CommissionRate)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	if c.Operator == "" {
		return commission, math.LegacyZeroDec(), nil
	}
	operatorFee, err := types.ParseRate(c.OperatorFee)
	if err != nil {
		return math.LegacyDec{}, math.LegacyDec{}, err
	}
	return commission, operatorFee, nil
}

// assetIndex returns the position of info in the pair.
func (c *Config) assetIndex(info types.AssetInfo) (int, error) {
	for i, own := range c.AssetInfos {
		if own.Equal(info) {
			return i, nil
		}
	}
	return 0, types.ErrAssetMismatch.Wrapf("%s is not part of pair %s", info, types.PairLabel(c.AssetInfos))
}

// alignAssets orders two assets given in either order like the pair.
func (c *Config) alignAssets(assets [2]types.Asset) ([2]math.Int, error) {
	switch {
	case assets[0].Info.Equal(c.AssetInfos[0]) && assets[1].Info.Equal(c.AssetInfos[1]):
		return [2]math.Int{assets[0].Amount, assets[1].Amount}, nil
	case assets[0].Info.Equal(c.AssetInfos[1]) && assets[1].Info.Equal(c.AssetInfos[0]):
		return [2]math.Int{assets[1].Amount, assets[0].Amount}, nil
	default:
		return [2]math.Int{}, types.ErrAssetMismatch.Wrapf("assets %s do not match pair %s",
			types.FormatAssets(assets[0], assets[1]), types.PairLabel(c.AssetInfos))
	}
}

func (c *Config) assets(amounts [2]math.Int) [2]types.Asset {
	return [2]types.Asset{
		types.NewAsset(c.AssetInfos[0], amounts[0]),
		types.NewAsset(c.AssetInfos[1], amounts[1]),
	}
}

func loadConfig(store storetypes.KVStore) (*Config, error) {
	bz := store.Get(configKey)
	if bz == nil {
		return nil, types.ErrNotFound.Wrap("pair config")
	}
	var cfg Config
	if err := json.Unmarshal(bz, &cfg); err != nil {
		return nil, fmt.Errorf("loadConfig: unmarshal: %w", err)
	}
	return &cfg, nil
}

func saveConfig(store storetypes.KVStore, cfg *Config) error {
	bz, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("saveConfig: marshal: %w", err)
	}
	store.Set(configKey, bz)
	return nil
}

func loadPool(store storetypes.KVStore) (PoolState, error) {
	bz := store.Get(poolKey)
	if bz == nil {
		return PoolState{}, types.ErrNotFound.Wrap("pool state")
	}
	var st PoolState
	if err := json.Unmarshal(bz, &st); err != nil {
		return PoolState{}, fmt.Errorf("loadPool: unmarshal: %w", err)
	}
	return st, nil
}

func savePool(store storetypes.KVStore, st PoolState) error {
	for _, v := range []math.Int{st.Reserves[0], st.Reserves[1], st.TotalShares} {
		if err := types.CheckUint128(v); err != nil {
			return err
		}
	}
	bz, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("savePool: marshal: %w", err)
	}
	store.Set(poolKey, bz)
	return nil
}

func isTrader(store storetypes.KVStore, addr sdk.AccAddress) bool {
	return prefix.NewStore(store, traderPrefix).Has(addr)
}

func isProvider(store storetypes.KVStore, addr sdk.AccAddress) bool {
	return prefix.NewStore(store, providerPrefix).Has(addr)
}

func setMembers(store storetypes.KVStore, listPrefix []byte, addrs []sdk.AccAddress, member bool) {
	list := prefix.NewStore(store, listPrefix)
	for _, addr := range addrs {
		if member {
			list.Set(addr, []byte{1})
		} else {
			list.Delete(addr)
		}
	}
}
