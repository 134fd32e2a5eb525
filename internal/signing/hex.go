package signing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrInvalidHex is returned when a message or call is not valid hex
var ErrInvalidHex = errors.New("invalid hex")

// DecodeHex decodes a hex string with or without a 0x prefix. The prefix is
// never part of the decoded bytes.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}

	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrInvalidHex, err)
	}
	return b, nil
}

// EncodeHex encodes bytes as a 0x-prefixed lowercase hex string
func EncodeHex(b []byte) string {
	return hexutil.Encode(b)
}
