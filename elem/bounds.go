// Package elem holds element traits shared by the sets: sentinel bounds for
// ordered element types and the hash functions used for striping.
package elem

import (
	"cmp"
	"math"
	"reflect"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Bounds supplies the sentinel values of an ordered element type.
// Every storable element v satisfies Min() <= v <= Max().
type Bounds[T any] interface {
	Min() T
	Max() T
}

// Range is a closed interval [Lo, Hi] implementing Bounds.
type Range[T cmp.Ordered] struct {
	Lo, Hi T
}

func (r Range[T]) Min() T { return r.Lo }
func (r Range[T]) Max() T { return r.Hi }

// Custom returns bounds for types without natural extremes (e.g. strings).
func Custom[T cmp.Ordered](lo, hi T) Range[T] { return Range[T]{Lo: lo, Hi: hi} }

// IntegerBounds returns the full representable range of an integer type.
func IntegerBounds[T constraints.Integer]() Range[T] {
	var zero T
	ones := ^zero
	if ones > zero { // unsigned
		return Range[T]{Lo: zero, Hi: ones}
	}
	bits := unsafe.Sizeof(zero) * 8
	lo := T(1) << (bits - 1)
	return Range[T]{Lo: lo, Hi: ^lo}
}

// FloatBounds returns [-Inf, +Inf] for a float type.
func FloatBounds[T constraints.Float]() Range[T] {
	return Range[T]{Lo: T(math.Inf(-1)), Hi: T(math.Inf(1))}
}

// OrderedBounds picks natural bounds for integer and float kinds (including
// named types such as `type ID int32`). It reports false for strings, which
// have no representable maximum; use Custom for those.
func OrderedBounds[T cmp.Ordered]() (Range[T], bool) {
	var r Range[T]
	lo := reflect.ValueOf(&r.Lo).Elem()
	hi := reflect.ValueOf(&r.Hi).Elem()

	switch lo.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bits := lo.Type().Bits()
		lowest := int64(-1) << (bits - 1)
		lo.SetInt(lowest)
		hi.SetInt(^lowest)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		bits := lo.Type().Bits()
		lo.SetUint(0)
		hi.SetUint(math.MaxUint64 >> (64 - bits))
	case reflect.Float32, reflect.Float64:
		lo.SetFloat(math.Inf(-1))
		hi.SetFloat(math.Inf(1))
	default:
		return r, false
	}
	return r, true
}

// Within reports whether v lies in [b.Min(), b.Max()].
// NaN is never within any bounds.
func Within[T cmp.Ordered](b Bounds[T], v T) bool {
	return v >= b.Min() && v <= b.Max()
}
