package safe

import "math"

// SafeAdd adds two int64 values, clamping at the int64 boundaries instead
// of wrapping. Overflow here means corrupted upstream data; clamping keeps
// the hotpath branch-predictable while staying detectable.
func SafeAdd(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	if b < 0 && a < math.MinInt64-b {
		return math.MinInt64
	}
	return a + b
}

// SafeSub subtracts b from a with the same clamping policy as SafeAdd.
func SafeSub(a, b int64) int64 {
	if b < 0 && a > math.MaxInt64+b {
		return math.MaxInt64
	}
	if b > 0 && a < math.MinInt64+b {
		return math.MinInt64
	}
	return a - b
}

// SafeMul multiplies two int64 values, clamping on overflow.
func SafeMul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	r := a * b
	if r/b != a || (a == math.MinInt64 && b == -1) {
		if (a > 0) == (b > 0) {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return r
}

// AddU64 adds two uint64 values and reports whether the sum overflowed.
func AddU64(a, b uint64) (uint64, bool) {
	r := a + b
	return r, r < a
}

// SubU64 subtracts b from a and reports whether it underflowed.
func SubU64(a, b uint64) (uint64, bool) {
	return a - b, b > a
}
