package extrinsic

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/EmekaIwuagwu/keyforge/internal/config"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const hashLength = 32

// RuntimeAdapter supplies the runtime-specific parts of a transaction
type RuntimeAdapter interface {
	// BuildExtra derives the transaction extra from a nonce
	BuildExtra(nonce uint64) Extra

	// AdditionalSigned returns the data that is signed but not transmitted
	AdditionalSigned(extra Extra) ([]byte, error)
}

// Extra is the signed extension data carried with every transaction
type Extra struct {
	Era   Era
	Nonce uint64
	Tip   uint64
}

// Encode returns era || compact(nonce) || compact(tip)
func (e Extra) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := scale.NewEncoder(&buf)

	if err := enc.Write(e.Era.Encode()); err != nil {
		return nil, fmt.Errorf("failed to encode era: %w", err)
	}
	if err := enc.EncodeUintCompact(*new(big.Int).SetUint64(e.Nonce)); err != nil {
		return nil, fmt.Errorf("failed to encode nonce: %w", err)
	}
	if err := enc.EncodeUintCompact(*new(big.Int).SetUint64(e.Tip)); err != nil {
		return nil, fmt.Errorf("failed to encode tip: %w", err)
	}

	return buf.Bytes(), nil
}

// GenericRuntime is a RuntimeAdapter driven by static configuration
type GenericRuntime struct {
	SpecVersion        uint32
	TransactionVersion uint32
	GenesisHash        []byte
	Tip                uint64
	EraPeriod          uint64
	CheckpointBlock    uint64
	CheckpointHash     []byte
}

// NewGenericRuntime creates a runtime adapter from configuration. Hashes are
// only parsed here; missing ones are reported when a payload is built.
func NewGenericRuntime(cfg *config.RuntimeConfig) (*GenericRuntime, error) {
	r := &GenericRuntime{
		SpecVersion:        cfg.SpecVersion,
		TransactionVersion: cfg.TransactionVersion,
		Tip:                cfg.Tip,
		EraPeriod:          cfg.EraPeriod,
		CheckpointBlock:    cfg.CheckpointBlock,
	}

	var err error
	if cfg.GenesisHash != "" {
		if r.GenesisHash, err = hexutil.Decode(cfg.GenesisHash); err != nil {
			return nil, fmt.Errorf("invalid genesis hash: %w", err)
		}
	}
	if cfg.CheckpointHash != "" {
		if r.CheckpointHash, err = hexutil.Decode(cfg.CheckpointHash); err != nil {
			return nil, fmt.Errorf("invalid checkpoint hash: %w", err)
		}
	}

	return r, nil
}

// BuildExtra derives the transaction extra from a nonce
func (r *GenericRuntime) BuildExtra(nonce uint64) Extra {
	era := Era{}
	if r.EraPeriod > 0 {
		era = MortalEra(r.EraPeriod, r.CheckpointBlock)
	}
	return Extra{
		Era:   era,
		Nonce: nonce,
		Tip:   r.Tip,
	}
}

// AdditionalSigned returns spec_version || transaction_version || genesis || checkpoint
func (r *GenericRuntime) AdditionalSigned(extra Extra) ([]byte, error) {
	if len(r.GenesisHash) != hashLength {
		return nil, fmt.Errorf("%w: genesis hash must be %d bytes, got %d",
			ErrPayloadConstruction, hashLength, len(r.GenesisHash))
	}

	checkpoint := r.GenesisHash
	if extra.Era.IsMortal {
		if len(r.CheckpointHash) != hashLength {
			return nil, fmt.Errorf("%w: mortal era requires a %d-byte checkpoint hash",
				ErrPayloadConstruction, hashLength)
		}
		if birth := extra.Era.Birth(r.CheckpointBlock); birth != r.CheckpointBlock {
			return nil, fmt.Errorf("%w: era begins at block %d but checkpoint is block %d",
				ErrPayloadConstruction, birth, r.CheckpointBlock)
		}
		checkpoint = r.CheckpointHash
	}

	var buf bytes.Buffer
	enc := scale.NewEncoder(&buf)

	if err := enc.Encode(r.SpecVersion); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadConstruction, err)
	}
	if err := enc.Encode(r.TransactionVersion); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadConstruction, err)
	}
	if err := enc.Write(r.GenesisHash); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadConstruction, err)
	}
	if err := enc.Write(checkpoint); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadConstruction, err)
	}

	return buf.Bytes(), nil
}
