package types

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// CosmosMsg is the closed set of messages a contract can ask the host to
// dispatch on its behalf.
type CosmosMsg interface {
	isCosmosMsg()
}

// BankSend moves native coins out of the emitting contract.
type BankSend struct {
	ToAddress sdk.AccAddress
	Amount    sdk.Coins
}

// WasmExecute calls another contract with the emitting contract as sender.
type WasmExecute struct {
	Contract sdk.AccAddress
	Msg      []byte
	Funds    sdk.Coins
}

// WasmInstantiate creates a new instance of an uploaded code.
type WasmInstantiate struct {
	CodeID uint64
	Admin  sdk.AccAddress
	Label  string
	Msg    []byte
	Funds  sdk.Coins
}

// WasmMigrate moves an instance to a new code. The emitter must be the
// instance admin.
type WasmMigrate struct {
	Contract  sdk.AccAddress
	NewCodeID uint64
	Msg       []byte
}

func (BankSend) isCosmosMsg()        {}
func (WasmExecute) isCosmosMsg()     {}
func (WasmInstantiate) isCosmosMsg() {}
func (WasmMigrate) isCosmosMsg()     {}

// NewWasmExecute marshals msg to JSON and wraps it in a WasmExecute.
func NewWasmExecute(contract sdk.AccAddress, msg any, funds sdk.Coins) (WasmExecute, error) {
	bz, err := json.Marshal(msg)
	if err != nil {
		return WasmExecute{}, ErrInvalidMsg.Wrapf("marshal execute msg: %s", err)
	}
	return WasmExecute{Contract: contract, Msg: bz, Funds: funds}, nil
}

// ReplyOn selects when the emitter wants to be called back.
type ReplyOn int

const (
	ReplyNever ReplyOn = iota
	ReplyOnSuccess
	ReplyOnError
	ReplyAlways
)

func (r ReplyOn) String() string {
	switch r {
	case ReplyNever:
		return "never"
	case ReplyOnSuccess:
		return "success"
	case ReplyOnError:
		return "error"
	case ReplyAlways:
		return "always"
	default:
		return "unknown"
	}
}

// SubMsg is a message tagged with a correlation id.
type SubMsg struct {
	ID      uint64
	Msg     CosmosMsg
	ReplyOn ReplyOn
}

// NewSubMsg wraps msg without asking for a reply.
func NewSubMsg(msg CosmosMsg) SubMsg {
	return SubMsg{Msg: msg, ReplyOn: ReplyNever}
}

// NewReplyOnSuccess wraps msg so the emitter's Reply runs with id once msg succeeds.
func NewReplyOnSuccess(msg CosmosMsg, id uint64) SubMsg {
	return SubMsg{ID: id, Msg: msg, ReplyOn: ReplyOnSuccess}
}

// SubMsgResponse is what a successful sub-message produced.
type SubMsgResponse struct {
	Events sdk.Events
	Data   []byte
}

// SubMsgResult holds either Ok or Err, never both.
type SubMsgResult struct {
	Ok  *SubMsgResponse
	Err string
}

// Reply is delivered to the emitter of a SubMsg.
type Reply struct {
	ID     uint64
	Result SubMsgResult
}

// InstantiateResponse is the acknowledgement the host returns as the data of
// a WasmInstantiate.
type InstantiateResponse struct {
	Address string `json:"address"`
	Data    []byte `json:"data,omitempty"`
}

// ParseReplyInstantiateData extracts the instantiate acknowledgement from a
// successful reply.
func ParseReplyInstantiateData(reply Reply) (InstantiateResponse, error) {
	if reply.Result.Ok == nil {
		return InstantiateResponse{}, ErrReplyFailed.Wrapf("reply %d: %s", reply.ID, reply.Result.Err)
	}
	if len(reply.Result.Ok.Data) == 0 {
		return InstantiateResponse{}, ErrEmptyReplyData.Wrapf("reply %d", reply.ID)
	}
	var res InstantiateResponse
	if err := json.Unmarshal(reply.Result.Ok.Data, &res); err != nil {
		return InstantiateResponse{}, ErrInvalidMsg.Wrapf("decode instantiate response: %s", err)
	}
	if res.Address == "" {
		return InstantiateResponse{}, ErrInvalidAddress.Wrap("instantiate response carries no address")
	}
	return res, nil
}

// Response is returned by every contract entry point.
type Response struct {
	Messages   []SubMsg
	Attributes []sdk.Attribute
	Events     sdk.Events
	Data       []byte
}

// NewResponse returns an empty response.
func NewResponse() *Response {
	return &Response{}
}

func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, sdk.NewAttribute(key, value))
	return r
}

func (r *Response) AddAttributes(attrs ...sdk.Attribute) *Response {
	r.Attributes = append(r.Attributes, attrs...)
	return r
}

// AddMessage appends fire-and-forget messages.
func (r *Response) AddMessage(msgs ...CosmosMsg) *Response {
	for _, msg := range msgs {
		r.Messages = append(r.Messages, NewSubMsg(msg))
	}
	return r
}

func (r *Response) AddSubMessage(sub SubMsg) *Response {
	r.Messages = append(r.Messages, sub)
	return r
}

func (r *Response) AddEvent(event sdk.Event) *Response {
	r.Events = append(r.Events, event)
	return r
}

func (r *Response) SetData(data []byte) *Response {
	r.Data = data
	return r
}
