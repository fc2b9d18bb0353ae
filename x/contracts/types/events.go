package types

// Contract host event types
const (
	EventTypeInstantiate = "instantiate"
	EventTypeExecute     = "execute"
	EventTypeMigrate     = "migrate"
	EventTypeReply       = "reply"

	// EventTypeWasm carries the attributes a contract adds to its response.
	EventTypeWasm = "wasm"

	// CustomEventPrefix is prepended to every custom event type a contract emits.
	CustomEventPrefix = "wasm-"
)

// Contract host event attribute keys
const (
	AttributeKeyContractAddr = "_contract_address"
	AttributeKeyCodeID       = "code_id"
	AttributeKeyCreator      = "creator"
	AttributeKeySender       = "sender"
	AttributeKeyReplyID      = "reply_id"
	AttributeKeyNewCodeID    = "new_code_id"
)
