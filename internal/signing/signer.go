package signing

import (
	"errors"
	"fmt"
	"io"
)

// ErrSignatureCheck is returned when a fresh signature does not verify
// against the signer's own public key
var ErrSignatureCheck = errors.New("signature failed self-verification")

// Signer is anything that can produce and check a raw signature over a message
type Signer interface {
	Sign(data []byte) ([]byte, error)
	Verify(data, signature []byte) bool
}

// ReadMessage resolves the message to sign. A given message is used
// literally unless isHex is set; without one the raw bytes of stdin are read
// and hex-decoded when isHex is set.
func ReadMessage(message *string, isHex bool, stdin io.Reader) ([]byte, error) {
	var raw []byte
	if message != nil {
		raw = []byte(*message)
	} else {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read message from stdin: %w", err)
		}
		raw = b
	}

	if !isHex {
		return raw, nil
	}
	return DecodeHex(string(raw))
}

// Sign signs message and returns the signature as 0x-prefixed hex
func Sign(signer Signer, message []byte) (string, error) {
	signature, err := signer.Sign(message)
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}
	if !signer.Verify(message, signature) {
		return "", ErrSignatureCheck
	}
	return EncodeHex(signature), nil
}
