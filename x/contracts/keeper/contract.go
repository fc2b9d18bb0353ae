package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/hashicorp/go-metrics"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/paw-chain/pawswap/x/contracts/types"
)

// GetContractInfo returns the host record of an instance.
func (k Keeper) GetContractInfo(ctx context.Context, contract sdk.AccAddress) (types.ContractInfo, error) {
	bz := k.getStore(ctx).Get(types.GetContractInfoKey(contract))
	if bz == nil {
		return types.ContractInfo{}, types.ErrNoSuchContract.Wrapf("contract %s", contract)
	}
	var info types.ContractInfo
	if err := json.Unmarshal(bz, &info); err != nil {
		return types.ContractInfo{}, fmt.Errorf("GetContractInfo: unmarshal: %w", err)
	}
	return info, nil
}

func (k Keeper) setContractInfo(ctx context.Context, contract sdk.AccAddress, info types.ContractInfo) error {
	bz, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("setContractInfo: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.GetContractInfoKey(contract), bz)
	return nil
}

// ContractAddress derives the deterministic address of the seq-th instance of codeID.
func ContractAddress(codeID, seq uint64) sdk.AccAddress {
	key := append(sdk.Uint64ToBigEndian(codeID), sdk.Uint64ToBigEndian(seq)...)
	return sdk.AccAddress(address.Module(types.ModuleName, key))
}

// Instantiate creates a new instance of codeID and returns its address and
// the data its instantiate call produced. All state changes are discarded on error.
func (k Keeper) Instantiate(
	ctx sdk.Context,
	codeID uint64,
	creator, admin sdk.AccAddress,
	label string,
	msg []byte,
	funds sdk.Coins,
) (sdk.AccAddress, []byte, error) {
	cacheCtx, write := ctx.CacheContext()
	addr, data, err := k.instantiate(cacheCtx, codeID, creator, admin, label, msg, funds, 0)
	if err != nil {
		return nil, nil, err
	}
	write()
	return addr, data, nil
}

// Execute calls contract with sender as caller. All state changes, including
// those of dispatched sub-messages, are discarded on error.
func (k Keeper) Execute(ctx sdk.Context, contract, sender sdk.AccAddress, msg []byte, funds sdk.Coins) ([]byte, error) {
	cacheCtx, write := ctx.CacheContext()
	data, err := k.execute(cacheCtx, contract, sender, msg, funds, 0)
	if err != nil {
		return nil, err
	}
	write()
	return data, nil
}

// Migrate moves contract to newCodeID. caller must be the instance admin.
func (k Keeper) Migrate(ctx sdk.Context, contract, caller sdk.AccAddress, newCodeID uint64, msg []byte) ([]byte, error) {
	cacheCtx, write := ctx.CacheContext()
	data, err := k.migrate(cacheCtx, contract, caller, newCodeID, msg, 0)
	if err != nil {
		return nil, err
	}
	write()
	return data, nil
}

// QuerySmart runs a read-only query against contract. Writes made by the
// query are never persisted.
func (k Keeper) QuerySmart(ctx sdk.Context, contract sdk.AccAddress, msg []byte) ([]byte, error) {
	info, err := k.GetContractInfo(ctx, contract)
	if err != nil {
		return nil, err
	}
	code, err := k.getCode(info.CodeID)
	if err != nil {
		return nil, err
	}
	queryCtx, _ := ctx.CacheContext()
	res, err := callContract(queryCtx, "query", contract, func() ([]byte, error) {
		return code.Query(k.deps(queryCtx, contract), k.env(queryCtx, contract), msg)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (k Keeper) instantiate(
	ctx sdk.Context,
	codeID uint64,
	creator, admin sdk.AccAddress,
	label string,
	msg []byte,
	funds sdk.Coins,
	depth int,
) (contract sdk.AccAddress, data []byte, err error) {
	defer telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, "instantiate"}, 1,
		[]metrics.Label{telemetry.NewLabel("code_id", fmt.Sprintf("%d", codeID))},
	)

	if depth > MaxCallDepth {
		return nil, nil, types.ErrMaxCallDepth.Wrapf("depth %d", depth)
	}
	code, err := k.getCode(codeID)
	if err != nil {
		return nil, nil, err
	}

	contract = ContractAddress(codeID, k.nextInstanceSeq(ctx))
	ctx, span := startSpan(ctx, types.EventTypeInstantiate, contract, depth)
	defer func() { endSpan(span, err) }()
	if k.getStore(ctx).Has(types.GetContractInfoKey(contract)) {
		return nil, nil, types.ErrDuplicateInstance.Wrapf("contract %s", contract)
	}

	creatorStr, err := k.addressCodec.BytesToString(creator)
	if err != nil {
		return nil, nil, types.ErrInvalidAddress.Wrapf("creator: %s", err)
	}
	info := types.ContractInfo{CodeID: codeID, Creator: creatorStr, Label: label}
	if len(admin) > 0 {
		if info.Admin, err = k.addressCodec.BytesToString(admin); err != nil {
			return nil, nil, types.ErrInvalidAddress.Wrapf("admin: %s", err)
		}
	}
	if err := k.setContractInfo(ctx, contract, info); err != nil {
		return nil, nil, err
	}

	if err := k.transferFunds(ctx, creator, contract, funds); err != nil {
		return nil, nil, err
	}

	resp, err := callContract(ctx, types.EventTypeInstantiate, contract, func() (*types.Response, error) {
		return code.Instantiate(k.deps(ctx, contract), k.env(ctx, contract), types.MessageInfo{Sender: creator, Funds: funds}, msg)
	})
	if err != nil {
		return nil, nil, errorsmod.Wrapf(err, "instantiate code %d", codeID)
	}

	contractStr, err := k.addressCodec.BytesToString(contract)
	if err != nil {
		return nil, nil, types.ErrInvalidAddress.Wrapf("contract: %s", err)
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeInstantiate,
		sdk.NewAttribute(types.AttributeKeyContractAddr, contractStr),
		sdk.NewAttribute(types.AttributeKeyCodeID, fmt.Sprintf("%d", codeID)),
		sdk.NewAttribute(types.AttributeKeyCreator, creatorStr),
	))

	data, err = k.handleResponse(ctx, contract, resp, depth)
	if err != nil {
		return nil, nil, err
	}

	k.Logger(ctx).Debug("contract instantiated", "code_id", codeID, "contract", contractStr, "label", label)
	return contract, data, nil
}

func (k Keeper) execute(ctx sdk.Context, contract, sender sdk.AccAddress, msg []byte, funds sdk.Coins, depth int) (data []byte, err error) {
	defer telemetry.IncrCounter(1, types.ModuleName, "execute")
	ctx, span := startSpan(ctx, types.EventTypeExecute, contract, depth)
	defer func() { endSpan(span, err) }()

	if depth > MaxCallDepth {
		return nil, types.ErrMaxCallDepth.Wrapf("depth %d", depth)
	}
	info, err := k.GetContractInfo(ctx, contract)
	if err != nil {
		return nil, err
	}
	code, err := k.getCode(info.CodeID)
	if err != nil {
		return nil, err
	}

	if err := k.transferFunds(ctx, sender, contract, funds); err != nil {
		return nil, err
	}

	resp, err := callContract(ctx, types.EventTypeExecute, contract, func() (*types.Response, error) {
		return code.Execute(k.deps(ctx, contract), k.env(ctx, contract), types.MessageInfo{Sender: sender, Funds: funds}, msg)
	})
	if err != nil {
		return nil, err
	}

	contractStr, err := k.addressCodec.BytesToString(contract)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("contract: %s", err)
	}
	senderStr, err := k.addressCodec.BytesToString(sender)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("sender: %s", err)
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeExecute,
		sdk.NewAttribute(types.AttributeKeyContractAddr, contractStr),
		sdk.NewAttribute(types.AttributeKeySender, senderStr),
	))

	return k.handleResponse(ctx, contract, resp, depth)
}

func (k Keeper) migrate(ctx sdk.Context, contract, caller sdk.AccAddress, newCodeID uint64, msg []byte, depth int) (data []byte, err error) {
	ctx, span := startSpan(ctx, types.EventTypeMigrate, contract, depth)
	defer func() { endSpan(span, err) }()

	if depth > MaxCallDepth {
		return nil, types.ErrMaxCallDepth.Wrapf("depth %d", depth)
	}
	info, err := k.GetContractInfo(ctx, contract)
	if err != nil {
		return nil, err
	}
	callerStr, err := k.addressCodec.BytesToString(caller)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("caller: %s", err)
	}
	if info.Admin == "" || info.Admin != callerStr {
		return nil, types.ErrUnauthorized.Wrapf("%s is not the admin of %s", callerStr, contract)
	}
	code, err := k.getCode(newCodeID)
	if err != nil {
		return nil, err
	}

	info.CodeID = newCodeID
	if err := k.setContractInfo(ctx, contract, info); err != nil {
		return nil, err
	}

	resp, err := callContract(ctx, types.EventTypeMigrate, contract, func() (*types.Response, error) {
		return code.Migrate(k.deps(ctx, contract), k.env(ctx, contract), msg)
	})
	if err != nil {
		return nil, errorsmod.Wrapf(err, "migrate %s", contract)
	}

	contractStr, err := k.addressCodec.BytesToString(contract)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("contract: %s", err)
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeMigrate,
		sdk.NewAttribute(types.AttributeKeyContractAddr, contractStr),
		sdk.NewAttribute(types.AttributeKeyNewCodeID, fmt.Sprintf("%d", newCodeID)),
	))

	return k.handleResponse(ctx, contract, resp, depth)
}

func (k Keeper) transferFunds(ctx sdk.Context, from, to sdk.AccAddress, funds sdk.Coins) error {
	if funds.Empty() {
		return nil
	}
	if !funds.IsValid() {
		return types.ErrInvalidFunds.Wrapf("funds %s", funds)
	}
	if err := k.bankKeeper.SendCoins(ctx, from, to, funds); err != nil {
		return types.ErrInvalidFunds.Wrapf("send %s: %s", funds, err)
	}
	return nil
}
