package extrinsic

import (
	"errors"
	"fmt"
)

var (
	// ErrCallDecode is returned when call bytes do not have the runtime call shape
	ErrCallDecode = errors.New("call decode error")
	// ErrPayloadConstruction is returned when the signed payload cannot be built
	ErrPayloadConstruction = errors.New("payload construction error")
)

// Call is a runtime call: pallet index, call index within the pallet and the
// already-encoded arguments. Arguments are opaque to this package.
type Call struct {
	PalletIndex uint8
	CallIndex   uint8
	Args        []byte
}

// DecodeCall splits encoded call bytes into a Call
func DecodeCall(b []byte) (Call, error) {
	if len(b) < 2 {
		return Call{}, fmt.Errorf("%w: need at least 2 bytes for pallet and call index, got %d",
			ErrCallDecode, len(b))
	}

	args := make([]byte, len(b)-2)
	copy(args, b[2:])

	return Call{
		PalletIndex: b[0],
		CallIndex:   b[1],
		Args:        args,
	}, nil
}

// Encode returns the call's canonical encoding
func (c Call) Encode() []byte {
	out := make([]byte, 0, 2+len(c.Args))
	out = append(out, c.PalletIndex, c.CallIndex)
	return append(out, c.Args...)
}
