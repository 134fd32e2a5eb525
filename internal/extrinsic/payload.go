package extrinsic

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// maxUnhashedPayload is the largest payload signed as-is; longer payloads are
// signed via their blake2b-256 hash
const maxUnhashedPayload = 256

// SignedPayload is the view of a transaction that gets signed
type SignedPayload struct {
	Call       Call
	Extra      Extra
	additional []byte
}

// NewSignedPayload builds the payload for call and extra under runtime
func NewSignedPayload(call Call, extra Extra, runtime RuntimeAdapter) (*SignedPayload, error) {
	additional, err := runtime.AdditionalSigned(extra)
	if err != nil {
		return nil, err
	}
	return &SignedPayload{
		Call:       call,
		Extra:      extra,
		additional: additional,
	}, nil
}

// Encode returns the bytes handed to the signer
func (p *SignedPayload) Encode() ([]byte, error) {
	extra, err := p.Extra.Encode()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadConstruction, err)
	}

	call := p.Call.Encode()
	payload := make([]byte, 0, len(call)+len(extra)+len(p.additional))
	payload = append(payload, call...)
	payload = append(payload, extra...)
	payload = append(payload, p.additional...)

	if len(payload) > maxUnhashedPayload {
		sum := blake2b.Sum256(payload)
		return sum[:], nil
	}
	return payload, nil
}
