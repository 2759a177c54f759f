package domain

import (
	"match_go/pkg/quant"
	"match_go/pkg/safe"
)

// DepthLevel is one aggregated price level as seen by observers.
type DepthLevel struct {
	Price  quant.Price `json:"price"`
	Volume quant.Qty   `json:"volume"`
	Orders int         `json:"orders"`
}

// Notional returns price × volume in scaled price units, clamped rather
// than wrapped on overflow. Display only.
func (l *DepthLevel) Notional() int64 {
	return safe.SafeMul(int64(l.Price), int64(l.Volume))
}

// BookSummary is a read-only snapshot of the book for UIs and post-mortem
// dumps. Built off the hotpath; the engine never reads one back.
type BookSummary struct {
	Seq     quant.Seq    `json:"seq"`
	Bids    []DepthLevel `json:"bids"` // best first
	Asks    []DepthLevel `json:"asks"` // best first
	Resting int          `json:"resting"`
}

// Crossed reports whether the snapshot shows bid >= ask. A healthy book
// never is; observers of a snapshot can use this as a sanity check.
func (s *BookSummary) Crossed() bool {
	if len(s.Bids) == 0 || len(s.Asks) == 0 {
		return false
	}
	return s.Bids[0].Price >= s.Asks[0].Price
}
