package app

import (
	"context"
	"log/slog"

	"match_go/internal/book"
	"match_go/internal/engine"
	"match_go/internal/infra"
	"match_go/internal/infra/storage"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config     *infra.Config
	EventStore *storage.EventStore
	Book       *book.Book
	Sequencer  *engine.Sequencer
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, store,
// book, sequencer).
func (b *Bootstrap) Initialize(configPath string) error {
	slog.Info("🚀 Bootstrapping match_go...")

	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Initialize Event Store (optional)
	if cfg.Storage.Enabled {
		store, err := storage.NewEventStore(cfg.Storage.Path)
		if err != nil {
			return err
		}
		// Each session writes a fresh sequence starting at 1; stale rows
		// would collide on the seq primary key.
		if err := store.Reset(context.Background()); err != nil {
			return err
		}
		b.EventStore = store
		slog.Info("✅ Event store initialized", slog.String("path", cfg.Storage.Path))
	}

	// 4. Construct the book and its sequencer front-end
	b.Book = book.New(cfg.Engine.Capacity)
	b.Sequencer = engine.NewSequencer(cfg.Engine.InboxSize, b.Book, b.EventStore)
	slog.Info("✅ Matching core ready", slog.Int("capacity", cfg.Engine.Capacity))

	return nil
}
