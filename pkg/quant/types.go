// Package quant defines the strongly typed fixed-point integers used by
// the matching engine. No float ever enters book state: prices exist as
// decimals only at the conversion boundary in this package.
package quant

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceScale is the fixed-point multiplier for Price: four decimal places.
// 100.00 is stored as 1000000.
const PriceScale = 10_000

// Price is a limit price as a scaled signed integer.
type Price int64

// Qty is an order quantity. Strictly positive on submission.
type Qty uint64

// OrderID is a caller-assigned order identifier, unique while resting.
type OrderID uint64

// Seq is the engine's logical clock. Strictly monotonic across the
// lifetime of a book; there is no wall-clock anywhere in the hotpath.
type Seq uint64

// Side of an order.
type Side uint8

const (
	Buy Side = iota
	Sell
)

var ErrPriceOverflow = errors.New("price overflows fixed-point range")

var priceScaleDec = decimal.NewFromInt(PriceScale)

// PriceFromDecimal converts a decimal price into its scaled integer
// representation. This is the only place decimal prices exist; everything
// past this boundary compares exact integers.
func PriceFromDecimal(d decimal.Decimal) (Price, error) {
	scaled := d.Mul(priceScaleDec)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("price %s is finer than 1/%d tick", d.String(), PriceScale)
	}
	if !scaled.BigInt().IsInt64() {
		return 0, ErrPriceOverflow
	}
	return Price(scaled.IntPart()), nil
}

// PriceFromString parses a decimal literal ("100.25") into a Price.
func PriceFromString(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return PriceFromDecimal(d)
}

// MustPrice is PriceFromString for constants in tests and demos.
func MustPrice(s string) Price {
	p, err := PriceFromString(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Decimal renders the price back as a decimal for display. Never used in
// matching or book state.
func (p Price) Decimal() decimal.Decimal {
	return decimal.New(int64(p), 0).Div(priceScaleDec)
}

func (p Price) String() string {
	return p.Decimal().String()
}

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// Opposite returns the side an aggressor matches against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// ParseSide parses the wire tokens "BUY" and "SELL".
func ParseSide(s string) (Side, error) {
	switch s {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	}
	return 0, fmt.Errorf("unknown side token %q", s)
}
