package domain

import (
	"math"
	"testing"

	"match_go/pkg/quant"
)

func TestSummaryCrossed(t *testing.T) {
	s := &BookSummary{
		Bids: []DepthLevel{{Price: 990000}},
		Asks: []DepthLevel{{Price: 1010000}},
	}
	if s.Crossed() {
		t.Error("healthy book reported crossed")
	}

	s.Bids[0].Price = 1010000
	if !s.Crossed() {
		t.Error("bid == ask should report crossed")
	}

	empty := &BookSummary{}
	if empty.Crossed() {
		t.Error("empty book cannot be crossed")
	}
}

func TestDepthLevelNotional(t *testing.T) {
	l := &DepthLevel{Price: 1000000, Volume: 10}
	if got := l.Notional(); got != 10000000 {
		t.Errorf("Notional = %d, want 10000000", got)
	}

	huge := &DepthLevel{Price: quant.Price(math.MaxInt64), Volume: 2}
	if got := huge.Notional(); got != math.MaxInt64 {
		t.Errorf("overflow should clamp, got %d", got)
	}
}
