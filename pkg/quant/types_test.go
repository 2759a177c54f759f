package quant

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPriceFromString(t *testing.T) {
	cases := []struct {
		in   string
		want Price
		ok   bool
	}{
		{"100.00", 1000000, true},
		{"100.5", 1005000, true},
		{"0.0001", 1, true},
		{"-1.5", -15000, true},
		{"100.00005", 0, false}, // finer than one tick
		{"abc", 0, false},
	}

	for _, c := range cases {
		got, err := PriceFromString(c.in)
		if c.ok && err != nil {
			t.Errorf("PriceFromString(%q) unexpected error: %v", c.in, err)
			continue
		}
		if !c.ok {
			if err == nil {
				t.Errorf("PriceFromString(%q) expected error, got %d", c.in, got)
			}
			continue
		}
		if got != c.want {
			t.Errorf("PriceFromString(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestPriceDecimalRoundTrip(t *testing.T) {
	p := MustPrice("123.4567")
	if got := p.Decimal(); !got.Equal(decimal.RequireFromString("123.4567")) {
		t.Errorf("round trip produced %s", got)
	}
	if p.String() != "123.4567" {
		t.Errorf("String() = %q", p.String())
	}
}

func TestPriceComparisonsAreExact(t *testing.T) {
	// The classic float trap: 0.1+0.2 != 0.3. Scaled integers must not
	// reproduce it.
	a := MustPrice("0.1")
	b := MustPrice("0.2")
	c := MustPrice("0.3")
	if a+b != c {
		t.Fatalf("fixed-point addition drifted: %d + %d != %d", a, b, c)
	}
}

func TestParseSide(t *testing.T) {
	if s, err := ParseSide("BUY"); err != nil || s != Buy {
		t.Errorf("ParseSide(BUY) = %v, %v", s, err)
	}
	if s, err := ParseSide("SELL"); err != nil || s != Sell {
		t.Errorf("ParseSide(SELL) = %v, %v", s, err)
	}
	if _, err := ParseSide("buy"); err == nil {
		t.Error("ParseSide should reject lowercase tokens")
	}
}

func TestSideOpposite(t *testing.T) {
	if Buy.Opposite() != Sell || Sell.Opposite() != Buy {
		t.Error("Opposite() is not an involution")
	}
}
