// Package book implements the single-instrument limit order book: a
// pre-sized order pool, intrusive FIFO price levels, two price-sorted
// side indexes, and the price/time-priority matching core with its
// append-only event log.
package book

import "match_go/pkg/quant"

// Order is one resting or matching order record. Records live in the
// pool's arena; the level chain and the id index borrow pointers to them
// and never own the storage. prev/next are the intrusive FIFO links;
// a record joins a level only through them, never via a wrapper node.
type Order struct {
	ID        quant.OrderID
	Seq       quant.Seq // sequence assigned at submission; FIFO tiebreak
	Side      quant.Side
	Price     quant.Price
	Original  quant.Qty
	Remaining quant.Qty

	prev *Order
	next *Order
}

// Filled reports whether the order has no remaining quantity.
func (o *Order) Filled() bool {
	return o.Remaining == 0
}
