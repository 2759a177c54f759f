package book

import (
	"fmt"

	"match_go/internal/domain"
	"match_go/internal/event"
	"match_go/pkg/quant"
	"match_go/pkg/safe"
)

// logReserveFactor sizes the event log reserve relative to pool capacity.
// The log may grow past the reserve (amortised append); the pool may not.
const logReserveFactor = 4

// Book is the deterministic matching core. Strictly single-threaded: the
// sequence counter is its only clock, and every public operation runs to
// completion before the next. Callers feed it from one goroutine.
type Book struct {
	pool  *Pool
	bids  sideBook
	asks  sideBook
	index map[quant.OrderID]*Order

	seq quant.Seq
	log []event.Event
}

// New constructs a book whose pool holds exactly capacity records.
// Size capacity for peak resting orders plus headroom; the pool cannot
// grow later without invalidating every borrowed record pointer.
func New(capacity int) *Book {
	return &Book{
		pool:  NewPool(capacity),
		bids:  newSideBook(quant.Buy, 64),
		asks:  newSideBook(quant.Sell, 64),
		index: make(map[quant.OrderID]*Order, capacity),
		log:   make([]event.Event, 0, capacity*logReserveFactor),
	}
}

// ProcessNewOrder runs one aggressor through the book: log the input,
// walk the opposite side while the price crosses, then rest any residual
// on the own side. Price and qty must be positive; callers filter.
//
// domain.ErrPoolExhausted is unrecoverable: the input event is already
// logged, so the caller must halt rather than continue.
func (b *Book) ProcessNewOrder(id quant.OrderID, side quant.Side, price quant.Price, qty quant.Qty) error {
	b.seq++
	b.log = append(b.log, event.NewOrder(b.seq, id, side, price, qty))

	ord := b.pool.Allocate()
	if ord == nil {
		return domain.ErrPoolExhausted
	}
	*ord = Order{
		ID:        id,
		Seq:       b.seq,
		Side:      side,
		Price:     price,
		Original:  qty,
		Remaining: qty,
	}

	opp := b.oppositeOf(side)
	b.match(ord, opp)

	if ord.Remaining > 0 {
		// Residual rests; the id becomes queryable only now. Deferring
		// registration past matching is safe: nothing reads the index
		// mid-call, and trades reference the aggressor id directly.
		b.sideOf(side).getOrCreate(price).pushBack(ord)
		b.index[id] = ord
	} else {
		b.pool.Deallocate(ord)
	}
	return nil
}

// match walks the opposite side from its leading end, sweeping levels
// until the aggressor is filled or the price no longer crosses.
func (b *Book) match(agg *Order, opp *sideBook) {
	for agg.Remaining > 0 {
		lvl, ok := opp.best()
		if !ok {
			return
		}
		if !opp.crosses(agg.Price, lvl.price) {
			return
		}
		b.fillAtLevel(agg, lvl)
		if lvl.empty() {
			opp.removeBest()
		}
	}
}

// fillAtLevel trades the aggressor against the level head until one of
// them is exhausted. The trade price is always the passive order's
// resting price; the aggressor cannot dictate execution.
func (b *Book) fillAtLevel(agg *Order, lvl *level) {
	for agg.Remaining > 0 {
		passive := lvl.front()
		if passive == nil {
			return
		}

		fill := agg.Remaining
		if passive.Remaining < fill {
			fill = passive.Remaining
		}

		b.seq++
		b.log = append(b.log, event.Trade(b.seq, passive.ID, agg.ID, lvl.price, fill))

		agg.Remaining -= fill
		passive.Remaining -= fill
		lvl.reduce(fill)

		if passive.Filled() {
			// pop before deallocate: the chain must never hold a
			// pointer to a freed record.
			lvl.popFront()
			delete(b.index, passive.ID)
			b.pool.Deallocate(passive)
		}
	}
}

// ProcessCancel removes a resting order in O(1). An unknown id (already
// filled, already cancelled, or never resident) is a silent no-op, but
// the CANCEL_ORDER event is still logged so replay stays faithful.
func (b *Book) ProcessCancel(id quant.OrderID) {
	b.seq++
	b.log = append(b.log, event.CancelOrder(b.seq, id))

	ord, ok := b.index[id]
	if !ok {
		return
	}

	sb := b.sideOf(ord.Side)
	lvl := sb.get(ord.Price)
	lvl.unlink(ord)
	if lvl.empty() {
		sb.remove(ord.Price)
	}

	delete(b.index, id)
	b.pool.Deallocate(ord)
}

// BestBid returns the highest resting bid price.
func (b *Book) BestBid() (quant.Price, bool) {
	lvl, ok := b.bids.best()
	if !ok {
		return 0, false
	}
	return lvl.price, true
}

// BestAsk returns the lowest resting ask price.
func (b *Book) BestAsk() (quant.Price, bool) {
	lvl, ok := b.asks.best()
	if !ok {
		return 0, false
	}
	return lvl.price, true
}

// EventLog borrows the append-only log. Callers must not mutate it.
func (b *Book) EventLog() []event.Event {
	return b.log
}

// Seq returns the current value of the logical clock.
func (b *Book) Seq() quant.Seq {
	return b.seq
}

// Resting returns the number of live resting orders.
func (b *Book) Resting() int {
	return len(b.index)
}

// PoolInUse exposes pool occupancy for metrics and sizing.
func (b *Book) PoolInUse() int {
	return b.pool.InUse()
}

func (b *Book) sideOf(s quant.Side) *sideBook {
	if s == quant.Buy {
		return &b.bids
	}
	return &b.asks
}

func (b *Book) oppositeOf(s quant.Side) *sideBook {
	if s == quant.Buy {
		return &b.asks
	}
	return &b.bids
}

// Summary snapshots up to maxDepth aggregated levels per side, best
// first. Observer path only; never read back by the engine.
func (b *Book) Summary(maxDepth int) *domain.BookSummary {
	return &domain.BookSummary{
		Seq:     b.seq,
		Bids:    b.bids.snapshot(maxDepth),
		Asks:    b.asks.snapshot(maxDepth),
		Resting: len(b.index),
	}
}

func (s *sideBook) snapshot(maxDepth int) []domain.DepthLevel {
	n := len(s.prices)
	if maxDepth > n {
		maxDepth = n
	}
	out := make([]domain.DepthLevel, 0, maxDepth)
	for i := n - 1; i >= n-maxDepth; i-- {
		lvl := s.levels[s.prices[i]]
		out = append(out, domain.DepthLevel{
			Price:  lvl.price,
			Volume: lvl.volume,
			Orders: int(lvl.count),
		})
	}
	return out
}

// CheckInvariants verifies the structural invariants after a public
// operation: aggregate consistency per level, chain link integrity, id
// index completeness, no empty levels, no crossed book. Debug and test
// path only, never called while matching.
func (b *Book) CheckInvariants() error {
	bb, hasBid := b.BestBid()
	ba, hasAsk := b.BestAsk()
	if hasBid && hasAsk && bb >= ba {
		return fmt.Errorf("crossed book: best bid %s >= best ask %s", bb, ba)
	}

	reachable := 0
	for _, sb := range []*sideBook{&b.bids, &b.asks} {
		if len(sb.prices) != len(sb.levels) {
			return fmt.Errorf("%s index: %d sorted prices vs %d levels", sb.side, len(sb.prices), len(sb.levels))
		}
		for _, price := range sb.prices {
			lvl, ok := sb.levels[price]
			if !ok {
				return fmt.Errorf("%s price %s sorted but not mapped", sb.side, price)
			}
			if lvl.empty() || lvl.head == nil || lvl.tail == nil {
				return fmt.Errorf("%s level %s indexed while empty", sb.side, price)
			}
			if lvl.head.prev != nil || lvl.tail.next != nil {
				return fmt.Errorf("%s level %s chain ends are linked outward", sb.side, price)
			}

			var volume uint64
			var count uint32
			for o := lvl.head; o != nil; o = o.next {
				if o.Price != price || o.Side != sb.side {
					return fmt.Errorf("order %d chained on wrong level %s/%s", o.ID, sb.side, price)
				}
				if o.Remaining == 0 || o.Remaining > o.Original {
					return fmt.Errorf("order %d remaining %d out of (0, %d]", o.ID, o.Remaining, o.Original)
				}
				if o.next != nil && o.next.prev != o {
					return fmt.Errorf("order %d successor back-link broken", o.ID)
				}
				if idx, ok := b.index[o.ID]; !ok || idx != o {
					return fmt.Errorf("order %d chained but not indexed", o.ID)
				}
				v, overflow := safe.AddU64(volume, uint64(o.Remaining))
				if overflow {
					return fmt.Errorf("level %s/%s volume sum overflows uint64", sb.side, price)
				}
				volume = v
				count++
				reachable++
			}
			if quant.Qty(volume) != lvl.volume || count != lvl.count {
				return fmt.Errorf("level %s/%s aggregates drifted: volume %d/%d, count %d/%d",
					sb.side, price, volume, lvl.volume, count, lvl.count)
			}
		}
	}
	if reachable != len(b.index) {
		return fmt.Errorf("id index holds %d entries, chains hold %d", len(b.index), reachable)
	}

	var prev quant.Seq
	for i := range b.log {
		if b.log[i].Seq <= prev {
			return fmt.Errorf("log seq not strictly increasing at entry %d", i)
		}
		prev = b.log[i].Seq
	}
	return nil
}
