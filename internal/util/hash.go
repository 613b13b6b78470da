// Package util contains internal helpers (hashing, striping, padding).
//
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fnv64a hashes common element types using 64-bit FNV-1a.
// Supported: string, [16|32|64]byte, all int/uint widths, uintptr, float32/64,
// bool, fmt.Stringer. Floats are normalized so that +0 and -0 collide.
// Panicking on unsupported types is deliberate to avoid silently poor hashing.
func Fnv64a[T comparable](v T) uint64 {
	if u, ok := integerBits(v); ok {
		return fnv64aFromUint64(u)
	}
	switch x := any(v).(type) {
	case string:
		return fnv64aFromString(x)
	case [16]byte:
		return fnv64aFromBytes(x[:])
	case [32]byte:
		return fnv64aFromBytes(x[:])
	case [64]byte:
		return fnv64aFromBytes(x[:])
	case fmt.Stringer:
		return fnv64aFromString(x.String())
	default:
		panic(unsupported("Fnv64a", v))
	}
}

// XXHash64 hashes the same element types as Fnv64a using xxhash.
// It is noticeably faster than FNV for long strings.
func XXHash64[T comparable](v T) uint64 {
	if u, ok := integerBits(v); ok {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], u)
		return xxhash.Sum64(b[:])
	}
	switch x := any(v).(type) {
	case string:
		return xxhash.Sum64String(x)
	case [16]byte:
		return xxhash.Sum64(x[:])
	case [32]byte:
		return xxhash.Sum64(x[:])
	case [64]byte:
		return xxhash.Sum64(x[:])
	case fmt.Stringer:
		return xxhash.Sum64String(x.String())
	default:
		panic(unsupported("XXHash64", v))
	}
}

// integerBits widens integer-like, float and bool values to 64 bits.
// Equal values always produce equal bits.
func integerBits[T comparable](v T) (uint64, bool) {
	switch x := any(v).(type) {
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	case uint:
		return uint64(x), true
	case uintptr:
		return uint64(x), true
	case int8:
		return uint64(uint8(x)), true
	case int16:
		return uint64(uint16(x)), true
	case int32:
		return uint64(uint32(x)), true
	case int64:
		return uint64(x), true
	case int:
		return uint64(x), true
	case float32:
		return floatBits(float64(x)), true
	case float64:
		return floatBits(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func floatBits(f float64) uint64 {
	if f == 0 {
		return 0 // +0 == -0
	}
	return math.Float64bits(f)
}

func unsupported[T any](fn string, v T) string {
	return fmt.Sprintf("util.%s: unsupported element type %T; convert it to string or provide a custom hasher", fn, v)
}

const (
	fnvOffset64 = 1469598103934665603
	fnvPrime64  = 1099511628211
)

func fnv64aFromBytes(b []byte) uint64 {
	h := uint64(fnvOffset64)
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime64
	}
	return h
}

func fnv64aFromString(s string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}

func fnv64aFromUint64(u uint64) uint64 {
	// Hash the 8 little-endian bytes of u without allocating.
	h := uint64(fnvOffset64)
	for i := 0; i < 8; i++ {
		h ^= uint64(byte(u))
		h *= fnvPrime64
		u >>= 8
	}
	return h
}
