package extrinsic

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/EmekaIwuagwu/keyforge/internal/address"
	"github.com/EmekaIwuagwu/keyforge/internal/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/rs/zerolog"
)

// signedVersion is extrinsic format version 4 with the signed bit set
const signedVersion byte = 0x84

// AddressFormat selects how the signer is encoded in the envelope
type AddressFormat string

const (
	// AddressMulti encodes MultiAddress::Id (0x00 || account id)
	AddressMulti AddressFormat = "multi"
	// AddressID encodes the bare account id
	AddressID AddressFormat = "id"
)

// SignatureFormat selects how the signature is encoded in the envelope
type SignatureFormat string

const (
	// SignatureMulti prefixes the signature with its MultiSignature variant
	SignatureMulti SignatureFormat = "multi"
	// SignatureRaw encodes the bare signature
	SignatureRaw SignatureFormat = "raw"
)

// ParseAddressFormat parses an address format name; empty means multi
func ParseAddressFormat(s string) (AddressFormat, error) {
	switch AddressFormat(s) {
	case "", AddressMulti:
		return AddressMulti, nil
	case AddressID:
		return AddressID, nil
	default:
		return "", fmt.Errorf("unsupported address format: %q", s)
	}
}

// ParseSignatureFormat parses a signature format name; empty means multi
func ParseSignatureFormat(s string) (SignatureFormat, error) {
	switch SignatureFormat(s) {
	case "", SignatureMulti:
		return SignatureMulti, nil
	case SignatureRaw:
		return SignatureRaw, nil
	default:
		return "", fmt.Errorf("unsupported signature format: %q", s)
	}
}

// Signer is the key pair view the builder needs
type Signer interface {
	Scheme() types.Scheme
	Public() []byte
	Sign(data []byte) ([]byte, error)
	Verify(data, signature []byte) bool
}

// Extrinsic is a signed transaction envelope. It is immutable once built;
// only its encoding leaves the process.
type Extrinsic struct {
	account         []byte
	scheme          types.Scheme
	signature       []byte
	call            Call
	extra           Extra
	addressFormat   AddressFormat
	signatureFormat SignatureFormat
}

// Account returns the signer's account id
func (x *Extrinsic) Account() []byte { return append([]byte(nil), x.account...) }

// Signature returns the raw signature
func (x *Extrinsic) Signature() []byte { return append([]byte(nil), x.signature...) }

// Call returns the signed call
func (x *Extrinsic) Call() Call { return x.call }

// Extra returns the signed extra
func (x *Extrinsic) Extra() Extra { return x.extra }

// Encode returns compact(len) || version || address || signature || extra || call
func (x *Extrinsic) Encode() ([]byte, error) {
	extra, err := x.extra.Encode()
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	body.WriteByte(signedVersion)

	if x.addressFormat == AddressMulti {
		body.WriteByte(0x00)
	}
	body.Write(x.account)

	if x.signatureFormat == SignatureMulti {
		body.WriteByte(x.scheme.MultiSignatureIndex())
	}
	body.Write(x.signature)

	body.Write(extra)
	body.Write(x.call.Encode())

	var out bytes.Buffer
	enc := scale.NewEncoder(&out)
	if err := enc.EncodeUintCompact(*big.NewInt(int64(body.Len()))); err != nil {
		return nil, fmt.Errorf("failed to encode length prefix: %w", err)
	}
	if err := enc.Write(body.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to encode body: %w", err)
	}

	return out.Bytes(), nil
}

// Builder assembles signed extrinsics for one runtime
type Builder struct {
	runtime         RuntimeAdapter
	addressFormat   AddressFormat
	signatureFormat SignatureFormat
	logger          zerolog.Logger
}

// NewBuilder creates a new extrinsic builder
func NewBuilder(
	runtime RuntimeAdapter,
	addressFormat AddressFormat,
	signatureFormat SignatureFormat,
	logger zerolog.Logger,
) *Builder {
	return &Builder{
		runtime:         runtime,
		addressFormat:   addressFormat,
		signatureFormat: signatureFormat,
		logger:          logger.With().Str("component", "extrinsic_builder").Logger(),
	}
}

// Build decodes callBytes, signs it together with the nonce-derived extra and
// returns the assembled extrinsic
func (b *Builder) Build(callBytes []byte, nonce uint64, signer Signer) (*Extrinsic, error) {
	call, err := DecodeCall(callBytes)
	if err != nil {
		return nil, err
	}

	extra := b.runtime.BuildExtra(nonce)

	payload, err := NewSignedPayload(call, extra, b.runtime)
	if err != nil {
		return nil, err
	}
	encoded, err := payload.Encode()
	if err != nil {
		return nil, err
	}

	signature, err := signer.Sign(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to sign payload: %w", err)
	}
	if !signer.Verify(encoded, signature) {
		return nil, fmt.Errorf("%w: signature does not verify against the signer", ErrPayloadConstruction)
	}

	account := address.AccountID(signer.Public())
	if len(account) != address.AccountIDLength {
		return nil, fmt.Errorf("unexpected account id length: %d", len(account))
	}

	b.logger.Debug().
		Str("scheme", signer.Scheme().String()).
		Uint8("pallet_index", call.PalletIndex).
		Uint8("call_index", call.CallIndex).
		Uint64("nonce", nonce).
		Bool("mortal", extra.Era.IsMortal).
		Int("payload_len", len(encoded)).
		Msg("Signed transaction payload")

	return &Extrinsic{
		account:         account,
		scheme:          signer.Scheme(),
		signature:       signature,
		call:            call,
		extra:           extra,
		addressFormat:   b.addressFormat,
		signatureFormat: b.signatureFormat,
	}, nil
}
