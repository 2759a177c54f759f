// Package event defines the engine's event-sourced log entries, the
// textual record codec, and the pooled command structs fed to the
// sequencer.
package event

import "match_go/pkg/quant"

type Kind uint8

const (
	KindNewOrder Kind = iota
	KindCancelOrder
	KindTrade
)

func (k Kind) String() string {
	switch k {
	case KindNewOrder:
		return "NEW_ORDER"
	case KindCancelOrder:
		return "CANCEL_ORDER"
	case KindTrade:
		return "TRADE"
	default:
		return "UNKNOWN"
	}
}

// Event is one entry of the append-only log. A single flat struct holds
// all three kinds so the log is a contiguous []Event with no per-entry
// allocation; unused fields stay zero.
//
//	NEW_ORDER:    Seq, ID, Side, Price, Qty
//	CANCEL_ORDER: Seq, ID
//	TRADE:        Seq, PassiveID, AggressiveID, Price, Qty
type Event struct {
	Kind         Kind
	Side         quant.Side
	Seq          quant.Seq
	ID           quant.OrderID
	PassiveID    quant.OrderID
	AggressiveID quant.OrderID
	Price        quant.Price
	Qty          quant.Qty
}

// NewOrder builds a NEW_ORDER log entry.
func NewOrder(seq quant.Seq, id quant.OrderID, side quant.Side, price quant.Price, qty quant.Qty) Event {
	return Event{Kind: KindNewOrder, Seq: seq, ID: id, Side: side, Price: price, Qty: qty}
}

// CancelOrder builds a CANCEL_ORDER log entry.
func CancelOrder(seq quant.Seq, id quant.OrderID) Event {
	return Event{Kind: KindCancelOrder, Seq: seq, ID: id}
}

// Trade builds a TRADE log entry. Price is always the passive order's
// resting price.
func Trade(seq quant.Seq, passive, aggressive quant.OrderID, price quant.Price, qty quant.Qty) Event {
	return Event{Kind: KindTrade, Seq: seq, PassiveID: passive, AggressiveID: aggressive, Price: price, Qty: qty}
}
