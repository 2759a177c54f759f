package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"match_go/internal/book"
	"match_go/internal/domain"
	"match_go/internal/event"
	"match_go/internal/infra"
	"match_go/internal/infra/storage"
)

// Sequencer is the single-threaded front-end of the matching core. It
// drains a buffered inbox of pooled commands, applies each to the book
// in strict arrival order, and mirrors every newly appended log entry
// into the event store before accepting the next command.
type Sequencer struct {
	inbox chan *event.Command
	book  *book.Book
	store *storage.EventStore

	persisted int           // log entries already mirrored to the store
	processed atomic.Uint64 // commands fully applied; gateways poll this to drain

	mu sync.RWMutex // guards external reads (UI, metrics dump)
}

// NewSequencer creates a sequencer over an existing book. store may be
// nil to run without persistence (tests, replay verification).
func NewSequencer(inboxSize int, bk *book.Book, store *storage.EventStore) *Sequencer {
	return &Sequencer{
		inbox: make(chan *event.Command, inboxSize),
		book:  bk,
		store: store,
	}
}

// Inbox returns the command channel. Gateways send here.
func (s *Sequencer) Inbox() chan<- *event.Command {
	return s.inbox
}

// Run starts the main command loop. This MUST be run in a single goroutine.
func (s *Sequencer) Run(ctx context.Context) {
	slog.Info("Sequencer started (Single-Thread Hotpath)")

	defer func() {
		if r := recover(); r != nil {
			slog.Error("CRITICAL_PANIC_DETECTED", slog.Any("panic", r))
			s.DumpState("panic_dump.json")
			// Halt after dump: a diverged log must not keep matching.
			panic(fmt.Sprintf("HALTED: %v", r))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Sequencer stopping...")
			return
		case cmd := <-s.inbox:
			s.processCommand(cmd)
		}
	}
}

func (s *Sequencer) processCommand(cmd *event.Command) {
	s.mu.Lock()

	switch cmd.Kind {
	case event.CmdNewOrder:
		if err := s.book.ProcessNewOrder(cmd.ID, cmd.Side, cmd.Price, cmd.Qty); err != nil {
			s.mu.Unlock()
			panic(fmt.Sprintf("ORDER_POOL_EXHAUSTED: %v", err))
		}
		infra.GlobalMetrics.RecordOrder()
	case event.CmdCancelOrder:
		s.book.ProcessCancel(cmd.ID)
		infra.GlobalMetrics.RecordCancel()
	default:
		slog.Warn("Unknown command kind", slog.Any("kind", cmd.Kind))
	}

	err := s.flushLog()
	s.mu.Unlock()

	if err != nil {
		panic(fmt.Sprintf("PERSISTENCE_FAILURE: %v", err))
	}

	event.ReleaseCommand(cmd)
	s.processed.Add(1)
}

// Processed returns the number of commands fully applied. Batch gateways
// use it to wait for the inbox to drain before reading the book.
func (s *Sequencer) Processed() uint64 {
	return s.processed.Load()
}

// flushLog mirrors log entries appended by the last command into the
// event store. The book's log is authoritative; the store is a WAL-style
// shadow used for durable replay.
func (s *Sequencer) flushLog() error {
	log := s.book.EventLog()
	for s.persisted < len(log) {
		e := &log[s.persisted]
		if e.Kind == event.KindTrade {
			infra.GlobalMetrics.RecordTrade()
		}
		infra.GlobalMetrics.RecordEventLogged()
		if s.store != nil {
			if err := s.store.SaveEvent(context.Background(), e); err != nil {
				return err
			}
		}
		s.persisted++
	}
	infra.GlobalMetrics.SetPoolInUse(int64(s.book.PoolInUse()))
	return nil
}

// Summary returns a depth snapshot for external readers.
func (s *Sequencer) Summary(maxDepth int) *domain.BookSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Summary(maxDepth)
}

// DumpState writes the book snapshot to a file (for post-mortem).
func (s *Sequencer) DumpState(filename string) {
	slog.Info("Dumping internal state...", slog.String("file", filename))

	data := struct {
		Summary *domain.BookSummary   `json:"summary"`
		Events  int                   `json:"events"`
		Metrics infra.MetricsSnapshot `json:"metrics"`
	}{
		Summary: s.book.Summary(16),
		Events:  len(s.book.EventLog()),
		Metrics: infra.GlobalMetrics.Snapshot(),
	}

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		slog.Error("Failed to marshal state", slog.Any("error", err))
		return
	}

	if err := os.WriteFile(filename, b, 0644); err != nil {
		slog.Error("Failed to write state dump", slog.Any("error", err))
	}
}
