package book

import (
	"sort"

	"match_go/pkg/quant"
)

// sideBook indexes one side's levels by price. Lookup goes through the
// map; ordering through the sorted price slice, kept with the best price
// at the END so best access and best removal are O(1). Bids sort
// ascending (best = highest last), asks descending (best = lowest last).
//
// Levels are created on first insertion at a price and erased as soon as
// their chain empties; no empty level is ever indexed.
type sideBook struct {
	side   quant.Side
	levels map[quant.Price]*level
	prices []quant.Price
}

func newSideBook(side quant.Side, capacityHint int) sideBook {
	return sideBook{
		side:   side,
		levels: make(map[quant.Price]*level, capacityHint),
		prices: make([]quant.Price, 0, capacityHint),
	}
}

// rank returns the insertion point for price: the first index whose
// price is at least as close to the best as the argument.
func (s *sideBook) rank(price quant.Price) int {
	if s.side == quant.Buy {
		return sort.Search(len(s.prices), func(i int) bool { return s.prices[i] >= price })
	}
	return sort.Search(len(s.prices), func(i int) bool { return s.prices[i] <= price })
}

// best returns the leading level: highest bid or lowest ask.
func (s *sideBook) best() (*level, bool) {
	if len(s.prices) == 0 {
		return nil, false
	}
	return s.levels[s.prices[len(s.prices)-1]], true
}

func (s *sideBook) get(price quant.Price) *level {
	return s.levels[price]
}

// getOrCreate returns the level at price, creating and indexing it on
// first use. Creation is the one allowed allocation outside the pool.
func (s *sideBook) getOrCreate(price quant.Price) *level {
	if l, ok := s.levels[price]; ok {
		return l
	}
	l := &level{price: price}
	s.levels[price] = l
	i := s.rank(price)
	s.prices = append(s.prices, 0)
	copy(s.prices[i+1:], s.prices[i:])
	s.prices[i] = price
	return l
}

// removeBest erases the leading level. Must only be called once the
// level's chain is empty.
func (s *sideBook) removeBest() {
	n := len(s.prices)
	delete(s.levels, s.prices[n-1])
	s.prices = s.prices[:n-1]
}

// remove erases the level at price, wherever it ranks.
func (s *sideBook) remove(price quant.Price) {
	if _, ok := s.levels[price]; !ok {
		return
	}
	delete(s.levels, price)
	i := s.rank(price)
	s.prices = append(s.prices[:i], s.prices[i+1:]...)
}

func (s *sideBook) depth() int {
	return len(s.prices)
}

// crosses reports whether an aggressor at aggPrice trades against this
// side's level at best: a BUY crosses a resting ask at best ⇔
// aggPrice >= best; a SELL crosses a resting bid ⇔ aggPrice <= best.
func (s *sideBook) crosses(aggPrice, best quant.Price) bool {
	if s.side == quant.Sell {
		return aggPrice >= best // aggressor is a BUY hitting asks
	}
	return aggPrice <= best // aggressor is a SELL hitting bids
}
