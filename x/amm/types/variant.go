package types

import (
	"bytes"
	"encoding/json"
)

// exactlyOne returns the only element of set, failing when the message
// carried no variant or more than one.
func exactlyOne[T any](name string, set []T) (T, error) {
	var zero T
	switch len(set) {
	case 1:
		return set[0], nil
	case 0:
		return zero, ErrInvalidMsg.Wrapf("%s: no variant set", name)
	default:
		return zero, ErrInvalidMsg.Wrapf("%s: %d variants set, expected exactly one", name, len(set))
	}
}

// DecodeMsg unmarshals a JSON message, rejecting unknown fields.
func DecodeMsg(bz []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(bz))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return ErrInvalidMsg.Wrapf("decode %T: %s", v, err)
	}
	return nil
}

// EncodeMsg marshals a message or response to JSON.
func EncodeMsg(v any) ([]byte, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return nil, ErrInvalidMsg.Wrapf("encode %T: %s", v, err)
	}
	return bz, nil
}
