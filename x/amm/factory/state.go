package factory

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

var (
	configKey        = []byte("config")
	pairPrefix       = []byte("pairs/")
	creatorPrefix    = []byte("creator/")
	restrictedPrefix = []byte("restricted/")
)

const (
	defaultLimit = 10
	maxLimit     = 30
)

// pairRecordJSON is the stored form of types.PairRecord. Registered is nil
// while the record is pending.
type pairRecordJSON struct {
	AssetInfos     [2]types.AssetInfo `json:"asset_infos"`
	OracleAddr     string             `json:"oracle_addr"`
	CommissionRate string             `json:"commission_rate"`
	OperatorFee    string             `json:"operator_fee"`
	Registered     *registeredJSON    `json:"registered,omitempty"`
}

type registeredJSON struct {
	ContractAddr   string `json:"contract_addr"`
	LiquidityToken string `json:"liquidity_token"`
}

func encodeRecord(r types.PairRecord) ([]byte, error) {
	raw := pairRecordJSON{
		AssetInfos:     r.AssetInfos,
		OracleAddr:     r.OracleAddr,
		CommissionRate: r.CommissionRate,
		OperatorFee:    r.OperatorFee,
	}
	if reg, ok := r.Registration.(types.Registered); ok {
		raw.Registered = &registeredJSON{ContractAddr: reg.ContractAddr, LiquidityToken: reg.LiquidityToken}
	}
	return json.Marshal(raw)
}

func decodeRecord(bz []byte) (types.PairRecord, error) {
	var raw pairRecordJSON
	if err := json.Unmarshal(bz, &raw); err != nil {
		return types.PairRecord{}, fmt.Errorf("decodeRecord: %w", err)
	}
	r := types.NewPendingRecord(raw.AssetInfos, raw.OracleAddr, raw.CommissionRate, raw.OperatorFee)
	if raw.Registered != nil {
		r.Registration = types.Registered{
			ContractAddr:   raw.Registered.ContractAddr,
			LiquidityToken: raw.Registered.LiquidityToken,
		}
	}
	return r, nil
}

func loadConfig(store storetypes.KVStore) (*types.FactoryConfig, error) {
	bz := store.Get(configKey)
	if bz == nil {
		return nil, types.ErrNotFound.Wrap("factory config")
	}
	var cfg types.FactoryConfig
	if err := json.Unmarshal(bz, &cfg); err != nil {
		return nil, fmt.Errorf("loadConfig: unmarshal: %w", err)
	}
	return &cfg, nil
}

func saveConfig(store storetypes.KVStore, cfg *types.FactoryConfig) error {
	bz, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("saveConfig: marshal: %w", err)
	}
	store.Set(configKey, bz)
	return nil
}

func hasPair(store storetypes.KVStore, key []byte) bool {
	return prefix.NewStore(store, pairPrefix).Has(key)
}

func loadPair(store storetypes.KVStore, infos [2]types.AssetInfo) (types.PairRecord, error) {
	bz := prefix.NewStore(store, pairPrefix).Get(types.PairKey(infos))
	if bz == nil {
		return types.PairRecord{}, types.ErrNotFound.Wrapf("pair %s", types.PairLabel(infos))
	}
	return decodeRecord(bz)
}

func savePair(store storetypes.KVStore, r types.PairRecord) error {
	bz, err := encodeRecord(r)
	if err != nil {
		return err
	}
	prefix.NewStore(store, pairPrefix).Set(types.PairKey(r.AssetInfos), bz)
	return nil
}

// listPairs returns up to limit records in PairKey order, starting strictly
// after the key of startAfter when it is set.
func listPairs(store storetypes.KVStore, startAfter *[2]types.AssetInfo, limit *uint32) ([]types.PairRecord, error) {
	n := defaultLimit
	if limit != nil {
		n = min(int(*limit), maxLimit)
	}
	var start []byte
	if startAfter != nil {
		start = append(types.PairKey(*startAfter), 0x00)
	}

	iter := prefix.NewStore(store, pairPrefix).Iterator(start, nil)
	defer iter.Close()

	records := make([]types.PairRecord, 0, n)
	for ; iter.Valid() && len(records) < n; iter.Next() {
		r, err := decodeRecord(iter.Value())
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func isCreator(store storetypes.KVStore, addr sdk.AccAddress) bool {
	return prefix.NewStore(store, creatorPrefix).Has(addr)
}

func listCreators(store storetypes.KVStore) []string {
	iter := prefix.NewStore(store, creatorPrefix).Iterator(nil, nil)
	defer iter.Close()
	creators := []string{}
	for ; iter.Valid(); iter.Next() {
		creators = append(creators, string(iter.Value()))
	}
	return creators
}

func isRestricted(store storetypes.KVStore, p string) bool {
	return prefix.NewStore(store, restrictedPrefix).Has([]byte(p))
}

func listRestricted(store storetypes.KVStore) []string {
	iter := prefix.NewStore(store, restrictedPrefix).Iterator(nil, nil)
	defer iter.Close()
	prefixes := []string{}
	for ; iter.Valid(); iter.Next() {
		prefixes = append(prefixes, string(iter.Key()))
	}
	return prefixes
}

func setCreator(store storetypes.KVStore, addr sdk.AccAddress, human string) {
	prefix.NewStore(store, creatorPrefix).Set(addr, []byte(human))
}

func deleteCreator(store storetypes.KVStore, addr sdk.AccAddress) {
	prefix.NewStore(store, creatorPrefix).Delete(addr)
}

func setRestricted(store storetypes.KVStore, p string) {
	prefix.NewStore(store, restrictedPrefix).Set([]byte(p), []byte{1})
}
