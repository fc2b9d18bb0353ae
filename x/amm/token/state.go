package token

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/paw-chain/pawswap/x/amm/types"
)

var (
	tokenInfoKey    = []byte("token_info")
	balancePrefix   = []byte("balance/")
	allowancePrefix = []byte("allowance/")
)

type tokenState struct {
	Name        string             `json:"name"`
	Symbol      string             `json:"symbol"`
	Decimals    uint8              `json:"decimals"`
	TotalSupply math.Int           `json:"total_supply"`
	Mint        *types.TokenMinter `json:"mint,omitempty"`
}

func loadTokenState(store storetypes.KVStore) (tokenState, error) {
	bz := store.Get(tokenInfoKey)
	if bz == nil {
		return tokenState{}, types.ErrNotFound.Wrap("token info")
	}
	var st tokenState
	if err := json.Unmarshal(bz, &st); err != nil {
		return tokenState{}, fmt.Errorf("loadTokenState: unmarshal: %w", err)
	}
	return st, nil
}

func saveTokenState(store storetypes.KVStore, st tokenState) error {
	bz, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("saveTokenState: marshal: %w", err)
	}
	store.Set(tokenInfoKey, bz)
	return nil
}

func loadInt(store storetypes.KVStore, key []byte) (math.Int, error) {
	bz := store.Get(key)
	if bz == nil {
		return math.ZeroInt(), nil
	}
	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		return math.Int{}, fmt.Errorf("loadInt: %w", err)
	}
	return v, nil
}

func saveInt(store storetypes.KVStore, key []byte, v math.Int) error {
	if v.IsZero() {
		store.Delete(key)
		return nil
	}
	bz, err := v.Marshal()
	if err != nil {
		return fmt.Errorf("saveInt: %w", err)
	}
	store.Set(key, bz)
	return nil
}

func balances(store storetypes.KVStore) storetypes.KVStore {
	return prefix.NewStore(store, balancePrefix)
}

func allowanceKey(owner, spender sdk.AccAddress) []byte {
	return append(address.MustLengthPrefix(owner), spender...)
}

func allowances(store storetypes.KVStore) storetypes.KVStore {
	return prefix.NewStore(store, allowancePrefix)
}

func getBalance(store storetypes.KVStore, addr sdk.AccAddress) (math.Int, error) {
	return loadInt(balances(store), addr)
}

func addBalance(store storetypes.KVStore, addr sdk.AccAddress, amount math.Int) error {
	bal, err := getBalance(store, addr)
	if err != nil {
		return err
	}
	bal, err = bal.SafeAdd(amount)
	if err != nil {
		return types.ErrOverflow.Wrapf("balance of %s: %s", addr, err)
	}
	if err := types.CheckUint128(bal); err != nil {
		return err
	}
	return saveInt(balances(store), addr, bal)
}

func subBalance(store storetypes.KVStore, addr sdk.AccAddress, amount math.Int) error {
	bal, err := getBalance(store, addr)
	if err != nil {
		return err
	}
	if bal.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("%s has %s, needs %s", addr, bal, amount)
	}
	return saveInt(balances(store), addr, bal.Sub(amount))
}

func getAllowance(store storetypes.KVStore, owner, spender sdk.AccAddress) (math.Int, error) {
	return loadInt(allowances(store), allowanceKey(owner, spender))
}

func setAllowance(store storetypes.KVStore, owner, spender sdk.AccAddress, amount math.Int) error {
	return saveInt(allowances(store), allowanceKey(owner, spender), amount)
}

// deductAllowance spends amount of spender's allowance over owner.
func deductAllowance(store storetypes.KVStore, owner, spender sdk.AccAddress, amount math.Int) error {
	allowance, err := getAllowance(store, owner, spender)
	if err != nil {
		return err
	}
	if allowance.LT(amount) {
		return types.ErrInsufficientAllowance.Wrapf("%s may spend %s of %s, needs %s", spender, allowance, owner, amount)
	}
	return setAllowance(store, owner, spender, allowance.Sub(amount))
}
