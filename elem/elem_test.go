package elem

import (
	"math"
	"testing"
)

type userID int32

func TestIntegerBounds(t *testing.T) {
	t.Parallel()

	if r := IntegerBounds[int8](); r.Lo != math.MinInt8 || r.Hi != math.MaxInt8 {
		t.Fatalf("int8: %+v", r)
	}
	if r := IntegerBounds[int64](); r.Lo != math.MinInt64 || r.Hi != math.MaxInt64 {
		t.Fatalf("int64: %+v", r)
	}
	if r := IntegerBounds[uint16](); r.Lo != 0 || r.Hi != math.MaxUint16 {
		t.Fatalf("uint16: %+v", r)
	}
	if r := IntegerBounds[userID](); r.Lo != math.MinInt32 || r.Hi != math.MaxInt32 {
		t.Fatalf("userID: %+v", r)
	}
}

func TestFloatBounds(t *testing.T) {
	t.Parallel()

	r := FloatBounds[float32]()
	if !math.IsInf(float64(r.Lo), -1) || !math.IsInf(float64(r.Hi), 1) {
		t.Fatalf("float32: %+v", r)
	}
}

func TestOrderedBounds(t *testing.T) {
	t.Parallel()

	if r, ok := OrderedBounds[int](); !ok || r.Lo != math.MinInt || r.Hi != math.MaxInt {
		t.Fatalf("int: %+v ok=%v", r, ok)
	}
	if r, ok := OrderedBounds[uint32](); !ok || r.Lo != 0 || r.Hi != math.MaxUint32 {
		t.Fatalf("uint32: %+v ok=%v", r, ok)
	}
	if r, ok := OrderedBounds[userID](); !ok || r.Lo != math.MinInt32 || r.Hi != math.MaxInt32 {
		t.Fatalf("userID: %+v ok=%v", r, ok)
	}
	if r, ok := OrderedBounds[float64](); !ok || !math.IsInf(r.Hi, 1) {
		t.Fatalf("float64: %+v ok=%v", r, ok)
	}
	if _, ok := OrderedBounds[string](); ok {
		t.Fatal("string has no natural maximum")
	}
}

func TestWithin(t *testing.T) {
	t.Parallel()

	b := Custom("b", "y")
	for v, want := range map[string]bool{"a": false, "b": true, "m": true, "y": true, "z": false} {
		if got := Within[string](b, v); got != want {
			t.Errorf("Within(%q) = %v, want %v", v, got, want)
		}
	}
	if Within[float64](FloatBounds[float64](), math.NaN()) {
		t.Fatal("NaN must not be within bounds")
	}
}

func TestDefaultHasher(t *testing.T) {
	t.Parallel()

	hs := DefaultHasher[string]()
	if hs("k") != XXHash[string]()("k") {
		t.Fatal("strings must default to xxhash")
	}
	hi := DefaultHasher[int]()
	if hi(5) != FNV[int]()(5) {
		t.Fatal("ints must default to FNV-1a")
	}
}
