package util

import "runtime"

// MaxStripes caps the automatic stripe count.
const MaxStripes = 256

// ReasonableStripeCount picks a practical default stripe count based on CPU
// parallelism. Heuristic: nextPow2(2*GOMAXPROCS), clamped to [1..MaxStripes].
func ReasonableStripeCount() int {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	n := int(NextPow2(uint64(p * 2)))
	if n < 1 {
		n = 1
	}
	if n > MaxStripes {
		n = MaxStripes
	}
	return n
}

// Index maps a 64-bit hash onto [0, n).
// Uses a mask when n is a power of two and modulo otherwise; both agree,
// so callers may mix power-of-two and arbitrary sizes.
func Index(hash uint64, n int) int {
	if n <= 1 {
		return 0
	}
	if IsPowerOfTwo(uint64(n)) {
		return int(hash & uint64(n-1))
	}
	return int(hash % uint64(n))
}

// RoundUpMultiple returns the smallest multiple of m that is >= x (and >= m).
func RoundUpMultiple(x, m int) int {
	if m <= 0 {
		return x
	}
	if x <= m {
		return m
	}
	return (x + m - 1) / m * m
}

// IsPowerOfTwo reports whether x is a power of two (> 0).
func IsPowerOfTwo(x uint64) bool {
	return x != 0 && x&(x-1) == 0
}

// NextPow2 returns the smallest power of two >= x (1 for x <= 1).
// Results that would overflow are clamped to 1<<63.
func NextPow2(x uint64) uint64 {
	if x <= 1 {
		return 1
	}
	x--
	for shift := uint(1); shift < 64; shift <<= 1 {
		x |= x >> shift
	}
	x++
	if x == 0 {
		return 1 << 63
	}
	return x
}
