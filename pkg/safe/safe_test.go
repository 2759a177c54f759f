package safe

import (
	"math"
	"testing"
)

func TestSafeAdd(t *testing.T) {
	if got := SafeAdd(1, 2); got != 3 {
		t.Errorf("SafeAdd(1,2) = %d", got)
	}
	if got := SafeAdd(math.MaxInt64, 1); got != math.MaxInt64 {
		t.Errorf("SafeAdd overflow should clamp, got %d", got)
	}
	if got := SafeAdd(math.MinInt64, -1); got != math.MinInt64 {
		t.Errorf("SafeAdd underflow should clamp, got %d", got)
	}
}

func TestSafeSub(t *testing.T) {
	if got := SafeSub(5, 3); got != 2 {
		t.Errorf("SafeSub(5,3) = %d", got)
	}
	if got := SafeSub(math.MinInt64, 1); got != math.MinInt64 {
		t.Errorf("SafeSub underflow should clamp, got %d", got)
	}
	if got := SafeSub(math.MaxInt64, -1); got != math.MaxInt64 {
		t.Errorf("SafeSub overflow should clamp, got %d", got)
	}
}

func TestSafeMul(t *testing.T) {
	if got := SafeMul(6, 7); got != 42 {
		t.Errorf("SafeMul(6,7) = %d", got)
	}
	if got := SafeMul(math.MaxInt64, 2); got != math.MaxInt64 {
		t.Errorf("SafeMul overflow should clamp, got %d", got)
	}
	if got := SafeMul(math.MinInt64/2, 3); got != math.MinInt64 {
		t.Errorf("SafeMul negative overflow should clamp, got %d", got)
	}
	if got := SafeMul(0, math.MaxInt64); got != 0 {
		t.Errorf("SafeMul(0,max) = %d", got)
	}
}

func TestU64Helpers(t *testing.T) {
	if r, over := AddU64(math.MaxUint64, 1); !over || r != 0 {
		t.Errorf("AddU64 overflow not detected: %d, %v", r, over)
	}
	if r, over := AddU64(1, 2); over || r != 3 {
		t.Errorf("AddU64(1,2) = %d, %v", r, over)
	}
	if _, under := SubU64(1, 2); !under {
		t.Error("SubU64 underflow not detected")
	}
	if r, under := SubU64(5, 2); under || r != 3 {
		t.Errorf("SubU64(5,2) = %d, %v", r, under)
	}
}
