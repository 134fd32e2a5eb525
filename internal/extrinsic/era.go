package extrinsic

import (
	"math/bits"
)

const (
	minEraPeriod = 4
	maxEraPeriod = 1 << 16
)

// Era is the transaction validity window. The zero value is immortal.
type Era struct {
	IsMortal bool
	Period   uint64
	Phase    uint64
}

// MortalEra returns an era valid for roughly period blocks starting at current.
// The period is rounded up to a power of two in [4, 65536] and the phase is
// quantized for long periods.
func MortalEra(period, current uint64) Era {
	p := nextPowerOfTwo(period)
	if p < minEraPeriod {
		p = minEraPeriod
	}
	if p > maxEraPeriod {
		p = maxEraPeriod
	}

	phase := current % p
	quantize := quantizeFactor(p)
	return Era{
		IsMortal: true,
		Period:   p,
		Phase:    phase / quantize * quantize,
	}
}

// Birth returns the block at which an era observed at current began
func (e Era) Birth(current uint64) uint64 {
	if !e.IsMortal {
		return 0
	}
	if current < e.Phase {
		current = e.Phase
	}
	return (current-e.Phase)/e.Period*e.Period + e.Phase
}

// Encode returns the era's canonical encoding: one zero byte when immortal,
// otherwise a little-endian u16
func (e Era) Encode() []byte {
	if !e.IsMortal {
		return []byte{0x00}
	}

	low := uint64(1)
	if tz := uint64(bits.TrailingZeros64(e.Period)); tz > 2 {
		low = tz - 1
	}
	if low > 15 {
		low = 15
	}
	encoded := uint16(low) | uint16((e.Phase/quantizeFactor(e.Period))<<4)
	return []byte{byte(encoded), byte(encoded >> 8)}
}

func quantizeFactor(period uint64) uint64 {
	if q := period >> 12; q > 1 {
		return q
	}
	return 1
}

func nextPowerOfTwo(v uint64) uint64 {
	if v <= 1 {
		return 1
	}
	if v > maxEraPeriod {
		return maxEraPeriod
	}
	return 1 << bits.Len64(v-1)
}
