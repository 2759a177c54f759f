package infra

import (
	"sync/atomic"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety: the hotpath writes, readers
// snapshot from other goroutines.
type Metrics struct {
	// Counters
	ordersProcessed  atomic.Uint64
	cancelsProcessed atomic.Uint64
	tradesMatched    atomic.Uint64
	eventsLogged     atomic.Uint64
	recordsSkipped   atomic.Uint64

	// Gauges
	poolInUse atomic.Int64
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordOrder records a processed new-order command.
func (m *Metrics) RecordOrder() {
	m.ordersProcessed.Add(1)
}

// RecordCancel records a processed cancel command.
func (m *Metrics) RecordCancel() {
	m.cancelsProcessed.Add(1)
}

// RecordTrade records a matched trade.
func (m *Metrics) RecordTrade() {
	m.tradesMatched.Add(1)
}

// RecordEventLogged records one entry appended to the event log.
func (m *Metrics) RecordEventLogged() {
	m.eventsLogged.Add(1)
}

// RecordSkippedRecord records a malformed persisted record skipped on parse.
func (m *Metrics) RecordSkippedRecord() {
	m.recordsSkipped.Add(1)
}

// SetPoolInUse sets the current order-pool occupancy.
func (m *Metrics) SetPoolInUse(n int64) {
	m.poolInUse.Store(n)
}

// MetricsSnapshot is a point-in-time copy for dumps and shutdown reports.
type MetricsSnapshot struct {
	OrdersProcessed  uint64 `json:"orders_processed"`
	CancelsProcessed uint64 `json:"cancels_processed"`
	TradesMatched    uint64 `json:"trades_matched"`
	EventsLogged     uint64 `json:"events_logged"`
	RecordsSkipped   uint64 `json:"records_skipped"`
	PoolInUse        int64  `json:"pool_in_use"`
}

// Snapshot reads all counters atomically (each individually).
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		OrdersProcessed:  m.ordersProcessed.Load(),
		CancelsProcessed: m.cancelsProcessed.Load(),
		TradesMatched:    m.tradesMatched.Load(),
		EventsLogged:     m.eventsLogged.Load(),
		RecordsSkipped:   m.recordsSkipped.Load(),
		PoolInUse:        m.poolInUse.Load(),
	}
}

// Reset zeroes all counters. Test helper.
func (m *Metrics) Reset() {
	m.ordersProcessed.Store(0)
	m.cancelsProcessed.Store(0)
	m.tradesMatched.Store(0)
	m.eventsLogged.Store(0)
	m.recordsSkipped.Store(0)
	m.poolInUse.Store(0)
}
