package keeper

import (
	"context"
	"encoding/binary"
	"sort"
	"sync"

	"cosmossdk.io/core/address"
	"cosmossdk.io/log"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/contracts/types"
)

// MaxCallDepth bounds nested contract calls within one transaction.
const MaxCallDepth = 16

// Keeper hosts contract instances: it owns the code registry, instance
// metadata, per-instance storage and the sub-message dispatcher.
type Keeper struct {
	storeKey     storetypes.StoreKey
	bankKeeper   types.BankKeeper
	addressCodec address.Codec
	codes        *codeRegistry
}

type codeRegistry struct {
	mu    sync.RWMutex
	codes map[uint64]types.Contract
	next  uint64
}

// NewKeeper creates a new contract host keeper
func NewKeeper(key storetypes.StoreKey, bankKeeper types.BankKeeper, addressCodec address.Codec) *Keeper {
	return &Keeper{
		storeKey:     key,
		bankKeeper:   bankKeeper,
		addressCodec: addressCodec,
		codes:        &codeRegistry{codes: make(map[uint64]types.Contract), next: 1},
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.Logger().With("module", "x/"+types.ModuleName)
}

// AddressCodec returns the codec used to render and parse account addresses.
func (k Keeper) AddressCodec() address.Codec {
	return k.addressCodec
}

// StoreCode registers contract code and returns its code id. Code ids are
// assigned sequentially starting at 1, so a process that uploads the same
// codes in the same order sees the same ids.
func (k Keeper) StoreCode(code types.Contract) uint64 {
	k.codes.mu.Lock()
	defer k.codes.mu.Unlock()

	id := k.codes.next
	k.codes.codes[id] = code
	k.codes.next++
	return id
}

// CodeIDs lists every uploaded code id in ascending order.
func (k Keeper) CodeIDs() []uint64 {
	k.codes.mu.RLock()
	defer k.codes.mu.RUnlock()

	ids := make([]uint64, 0, len(k.codes.codes))
	for id := range k.codes.codes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (k Keeper) getCode(codeID uint64) (types.Contract, error) {
	k.codes.mu.RLock()
	defer k.codes.mu.RUnlock()

	code, ok := k.codes.codes[codeID]
	if !ok {
		return nil, types.ErrNoSuchCode.Wrapf("code id %d", codeID)
	}
	return code, nil
}

func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// contractStore returns the private storage of one instance.
func (k Keeper) contractStore(ctx context.Context, contract sdk.AccAddress) storetypes.KVStore {
	return prefix.NewStore(k.getStore(ctx), types.GetContractStorePrefix(contract))
}

// nextInstanceSeq returns the next instance sequence and advances it.
func (k Keeper) nextInstanceSeq(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	seq := uint64(1)
	if bz := store.Get(types.InstanceSeqKey); bz != nil {
		seq = binary.BigEndian.Uint64(bz)
	}
	store.Set(types.InstanceSeqKey, sdk.Uint64ToBigEndian(seq+1))
	return seq
}

func (k Keeper) env(ctx sdk.Context, contract sdk.AccAddress) types.Env {
	return types.Env{
		BlockHeight: ctx.BlockHeight(),
		BlockTime:   ctx.BlockTime(),
		ChainID:     ctx.ChainID(),
		Contract:    contract,
	}
}

func (k Keeper) deps(ctx sdk.Context, contract sdk.AccAddress) types.Deps {
	return types.Deps{
		Storage: k.contractStore(ctx, contract),
		API:     addressAPI{codec: k.addressCodec},
		Querier: contractQuerier{keeper: k, ctx: ctx},
		Logger:  k.Logger(ctx).With("contract", contract.String()),
	}
}
