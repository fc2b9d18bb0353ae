package keeper

import (
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/contracts/types"
)

// handleResponse emits the response attributes and events, then dispatches
// its sub-messages depth-first in declaration order. The returned data is the
// response data unless a reply overrides it.
func (k Keeper) handleResponse(ctx sdk.Context, contract sdk.AccAddress, resp *types.Response, depth int) ([]byte, error) {
	if resp == nil {
		return nil, nil
	}

	contractStr, err := k.addressCodec.BytesToString(contract)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("contract: %s", err)
	}
	contractAttr := sdk.NewAttribute(types.AttributeKeyContractAddr, contractStr)

	if len(resp.Attributes) > 0 {
		attrs := append([]sdk.Attribute{contractAttr}, resp.Attributes...)
		ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeWasm, attrs...))
	}
	for _, ev := range resp.Events {
		attrs := make([]sdk.Attribute, 0, len(ev.Attributes)+1)
		attrs = append(attrs, contractAttr)
		for _, a := range ev.Attributes {
			attrs = append(attrs, sdk.NewAttribute(a.Key, a.Value))
		}
		ctx.EventManager().EmitEvent(sdk.NewEvent(types.CustomEventPrefix+ev.Type, attrs...))
	}

	data := resp.Data
	for _, sub := range resp.Messages {
		replyData, err := k.dispatchSubMsg(ctx, contract, sub, depth+1)
		if err != nil {
			return nil, err
		}
		if replyData != nil {
			data = replyData
		}
	}
	return data, nil
}

// dispatchSubMsg runs one sub-message in its own cache context. The emitter's
// Reply runs once, after the sub-message and everything it dispatched has
// been committed to ctx (or discarded, for error replies).
func (k Keeper) dispatchSubMsg(ctx sdk.Context, contract sdk.AccAddress, sub types.SubMsg, depth int) ([]byte, error) {
	subCtx, commit := ctx.CacheContext()

	data, err := k.dispatchMsg(subCtx, contract, sub.Msg, depth)
	var events sdk.Events
	if err == nil {
		events = subCtx.EventManager().Events()
		commit()
	}

	switch {
	case err != nil && (sub.ReplyOn == types.ReplyNever || sub.ReplyOn == types.ReplyOnSuccess):
		return nil, err
	case err == nil && (sub.ReplyOn == types.ReplyNever || sub.ReplyOn == types.ReplyOnError):
		return nil, nil
	}

	reply := types.Reply{ID: sub.ID}
	if err != nil {
		k.Logger(ctx).Debug("sub-message failed, delivering error reply", "reply_id", sub.ID, "error", err)
		reply.Result.Err = err.Error()
	} else {
		reply.Result.Ok = &types.SubMsgResponse{Events: events, Data: data}
	}
	return k.reply(ctx, contract, reply, depth)
}

func (k Keeper) reply(ctx sdk.Context, contract sdk.AccAddress, reply types.Reply, depth int) (data []byte, err error) {
	ctx, span := startSpan(ctx, types.EventTypeReply, contract, depth)
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Int64("reply.id", int64(reply.ID)))

	info, err := k.GetContractInfo(ctx, contract)
	if err != nil {
		return nil, err
	}
	code, err := k.getCode(info.CodeID)
	if err != nil {
		return nil, err
	}

	resp, err := callContract(ctx, types.EventTypeReply, contract, func() (*types.Response, error) {
		return code.Reply(k.deps(ctx, contract), k.env(ctx, contract), reply)
	})
	if err != nil {
		return nil, err
	}

	contractStr, err := k.addressCodec.BytesToString(contract)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("contract: %s", err)
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeReply,
		sdk.NewAttribute(types.AttributeKeyContractAddr, contractStr),
		sdk.NewAttribute(types.AttributeKeyReplyID, fmt.Sprintf("%d", reply.ID)),
	))

	return k.handleResponse(ctx, contract, resp, depth)
}

// dispatchMsg executes msg with emitter as the acting account.
func (k Keeper) dispatchMsg(ctx sdk.Context, emitter sdk.AccAddress, msg types.CosmosMsg, depth int) ([]byte, error) {
	switch m := msg.(type) {
	case types.BankSend:
		if err := k.transferFunds(ctx, emitter, m.ToAddress, m.Amount); err != nil {
			return nil, err
		}
		return nil, nil

	case types.WasmExecute:
		return k.execute(ctx, m.Contract, emitter, m.Msg, m.Funds, depth)

	case types.WasmInstantiate:
		addr, data, err := k.instantiate(ctx, m.CodeID, emitter, m.Admin, m.Label, m.Msg, m.Funds, depth)
		if err != nil {
			return nil, err
		}
		addrStr, err := k.addressCodec.BytesToString(addr)
		if err != nil {
			return nil, types.ErrInvalidAddress.Wrapf("contract: %s", err)
		}
		ack, err := json.Marshal(types.InstantiateResponse{Address: addrStr, Data: data})
		if err != nil {
			return nil, fmt.Errorf("dispatchMsg: marshal instantiate response: %w", err)
		}
		return ack, nil

	case types.WasmMigrate:
		return k.migrate(ctx, m.Contract, emitter, m.NewCodeID, m.Msg, depth)

	default:
		return nil, types.ErrInvalidMsg.Wrapf("unsupported message type %T", msg)
	}
}
