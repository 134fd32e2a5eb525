package keystore

import (
	"context"
	"errors"
	"fmt"

	"github.com/EmekaIwuagwu/keyforge/internal/config"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
)

// KeyTypeLength is the exact width of a keystore key type identifier
const KeyTypeLength = 4

const insertKeyMethod = "author_insertKey"

var (
	// ErrInvalidKeyType is returned when a key type is not exactly four bytes
	ErrInvalidKeyType = errors.New("invalid key type")
	// ErrTransport wraps connection and JSON-RPC failures
	ErrTransport = errors.New("keystore transport error")
)

// Client inserts keys into a node keystore over JSON-RPC
type Client struct {
	url    string
	logger zerolog.Logger
}

// NewClient creates a keystore client for url, falling back to the local node
func NewClient(url string, logger zerolog.Logger) *Client {
	if url == "" {
		url = config.DefaultNodeURL
	}
	return &Client{
		url:    url,
		logger: logger.With().Str("component", "keystore").Logger(),
	}
}

// URL returns the node endpoint
func (c *Client) URL() string {
	return c.url
}

// ValidateKeyType checks that keyType is exactly four bytes
func ValidateKeyType(keyType string) error {
	if len(keyType) != KeyTypeLength {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeyType, KeyTypeLength, len(keyType))
	}
	return nil
}

// Insert stores the key derived from suri under keyType in the node keystore.
// The key type is validated before the endpoint is contacted.
func (c *Client) Insert(ctx context.Context, keyType, suri string, public []byte) error {
	if err := ValidateKeyType(keyType); err != nil {
		return err
	}

	client, err := rpc.DialContext(ctx, c.url)
	if err != nil {
		return fmt.Errorf("%w: failed to connect to %s: %v", ErrTransport, c.url, err)
	}
	defer client.Close()

	c.logger.Debug().
		Str("endpoint", c.url).
		Str("key_type", keyType).
		Str("public_key", hexutil.Encode(public)).
		Msg("Inserting key")

	if err := client.CallContext(ctx, nil, insertKeyMethod, keyType, suri, hexutil.Bytes(public)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTransport, insertKeyMethod, err)
	}

	c.logger.Info().
		Str("key_type", keyType).
		Msg("Key inserted")

	return nil
}
