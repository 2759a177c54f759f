// Package storage persists the engine's event log in SQLite (pure Go,
// no cgo). The store is a durable shadow of the in-memory log: the
// sequencer mirrors every appended event, and replay can rebuild a book
// from the stored sequence alone.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"match_go/internal/event"
	"match_go/pkg/quant"
)

// EventRecord is the persisted row form of one log entry.
type EventRecord struct {
	Seq          uint64 `gorm:"primaryKey;autoIncrement:false"`
	Kind         string `gorm:"size:16;index"`
	OrderID      uint64
	PassiveID    uint64
	AggressiveID uint64
	Side         string `gorm:"size:4"`
	Price        int64
	Qty          uint64
}

// EventStore wraps the SQLite-backed event log.
type EventStore struct {
	db *gorm.DB
}

// NewEventStore opens (or creates) the store at path.
func NewEventStore(path string) (*EventStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open event store: %w", err)
	}

	if err := db.AutoMigrate(&EventRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate event store: %w", err)
	}

	return &EventStore{db: db}, nil
}

// SaveEvent appends one event. Seq is the primary key, so a replayed
// write of the same entry is rejected rather than duplicated.
func (s *EventStore) SaveEvent(ctx context.Context, e *event.Event) error {
	rec := toRecord(e)
	return s.db.WithContext(ctx).Create(&rec).Error
}

// LoadEvents returns the full stored sequence ordered by seq.
func (s *EventStore) LoadEvents(ctx context.Context) ([]event.Event, error) {
	var rows []EventRecord
	if err := s.db.WithContext(ctx).Order("seq").Find(&rows).Error; err != nil {
		return nil, err
	}

	events := make([]event.Event, 0, len(rows))
	for i := range rows {
		e, err := fromRecord(&rows[i])
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// Count returns the number of stored events.
func (s *EventStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&EventRecord{}).Count(&n).Error
	return n, err
}

// Reset drops all stored events. Used when starting a fresh session over
// an existing store file.
func (s *EventStore) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("seq > 0").Delete(&EventRecord{}).Error
}

func toRecord(e *event.Event) EventRecord {
	rec := EventRecord{
		Seq:  uint64(e.Seq),
		Kind: e.Kind.String(),
	}
	switch e.Kind {
	case event.KindNewOrder:
		rec.OrderID = uint64(e.ID)
		rec.Side = e.Side.String()
		rec.Price = int64(e.Price)
		rec.Qty = uint64(e.Qty)
	case event.KindCancelOrder:
		rec.OrderID = uint64(e.ID)
	case event.KindTrade:
		rec.PassiveID = uint64(e.PassiveID)
		rec.AggressiveID = uint64(e.AggressiveID)
		rec.Price = int64(e.Price)
		rec.Qty = uint64(e.Qty)
	}
	return rec
}

func fromRecord(rec *EventRecord) (event.Event, error) {
	switch rec.Kind {
	case "NEW_ORDER":
		side, err := quant.ParseSide(rec.Side)
		if err != nil {
			return event.Event{}, fmt.Errorf("stored event seq %d: %w", rec.Seq, err)
		}
		return event.NewOrder(quant.Seq(rec.Seq), quant.OrderID(rec.OrderID), side, quant.Price(rec.Price), quant.Qty(rec.Qty)), nil
	case "CANCEL_ORDER":
		return event.CancelOrder(quant.Seq(rec.Seq), quant.OrderID(rec.OrderID)), nil
	case "TRADE":
		return event.Trade(quant.Seq(rec.Seq), quant.OrderID(rec.PassiveID), quant.OrderID(rec.AggressiveID), quant.Price(rec.Price), quant.Qty(rec.Qty)), nil
	}
	return event.Event{}, fmt.Errorf("stored event seq %d: unknown kind %q", rec.Seq, rec.Kind)
}
