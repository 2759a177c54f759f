package storage

import (
	"context"
	"path/filepath"
	"testing"

	"match_go/internal/event"
	"match_go/pkg/quant"
)

func setupTestStore(t *testing.T) *EventStore {
	t.Helper()
	s, err := NewEventStore(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	return s
}

func sessionEvents() []event.Event {
	return []event.Event{
		event.NewOrder(1, 1, quant.Sell, 1000000, 10),
		event.NewOrder(2, 2, quant.Buy, 1000000, 10),
		event.Trade(3, 1, 2, 1000000, 10),
		event.CancelOrder(4, 999),
	}
}

func TestSaveAndLoadEvents(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, e := range sessionEvents() {
		if err := s.SaveEvent(ctx, &e); err != nil {
			t.Fatalf("SaveEvent(seq=%d): %v", e.Seq, err)
		}
	}

	loaded, err := s.LoadEvents(ctx)
	if err != nil {
		t.Fatalf("LoadEvents: %v", err)
	}

	want := sessionEvents()
	if len(loaded) != len(want) {
		t.Fatalf("loaded %d events, want %d", len(loaded), len(want))
	}
	for i := range want {
		if loaded[i] != want[i] {
			t.Errorf("event %d: got %+v, want %+v", i, loaded[i], want[i])
		}
	}
}

func TestDuplicateSeqRejected(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	e := event.NewOrder(1, 1, quant.Sell, 1000000, 10)
	if err := s.SaveEvent(ctx, &e); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveEvent(ctx, &e); err == nil {
		t.Error("second write of the same seq should be rejected")
	}
}

func TestCountAndReset(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, e := range sessionEvents() {
		if err := s.SaveEvent(ctx, &e); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.Count(ctx)
	if err != nil || n != 4 {
		t.Fatalf("Count = %d, %v", n, err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	n, err = s.Count(ctx)
	if err != nil || n != 0 {
		t.Fatalf("Count after reset = %d, %v", n, err)
	}
}
