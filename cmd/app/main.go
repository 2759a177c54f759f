package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"match_go/internal/app"
	"match_go/internal/domain"
	"match_go/internal/engine"
	"match_go/internal/event"
	"match_go/internal/infra"
	"match_go/pkg/quant"

	_ "net/http/pprof" // For pprof profiling
)

// gateway feeds the scripted demonstration into the sequencer inbox and
// tracks how many commands it has sent, so scenario boundaries can wait
// for the book to quiesce before printing.
type gateway struct {
	seq  *engine.Sequencer
	sent uint64
}

func (g *gateway) newOrder(id quant.OrderID, side quant.Side, price quant.Price, qty quant.Qty) {
	cmd := event.AcquireCommand()
	cmd.Kind = event.CmdNewOrder
	cmd.ID = id
	cmd.Side = side
	cmd.Price = price
	cmd.Qty = qty
	g.seq.Inbox() <- cmd
	g.sent++
}

func (g *gateway) cancel(id quant.OrderID) {
	cmd := event.AcquireCommand()
	cmd.Kind = event.CmdCancelOrder
	cmd.ID = id
	g.seq.Inbox() <- cmd
	g.sent++
}

func (g *gateway) drain() {
	for g.seq.Processed() < g.sent {
		time.Sleep(time.Millisecond)
	}
}

func main() {
	// 1. Pprof Server (for performance profiling)
	go func() {
		// Localhost only for security
		slog.Info("🕵️ Pprof server started on localhost:6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			slog.Error("Pprof server failed", slog.Any("error", err))
		}
	}()

	// 2. System Bootstrapping
	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(configPath); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	cfg := bootstrap.Config
	seq := bootstrap.Sequencer

	// 3. Start Sequencer in its own goroutine (The Hotpath Loop)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go seq.Run(ctx)
	slog.Info("✅ Sequencer (Hotpath) started")

	g := &gateway{seq: seq}

	slog.Info("========== SCENARIO 1: Building Order Book ==========")
	g.newOrder(1, quant.Sell, quant.MustPrice("101.0"), 50)
	g.newOrder(2, quant.Sell, quant.MustPrice("100.5"), 30)
	g.newOrder(3, quant.Sell, quant.MustPrice("100.0"), 20)
	g.newOrder(4, quant.Buy, quant.MustPrice("99.0"), 40)
	g.newOrder(5, quant.Buy, quant.MustPrice("99.5"), 35)
	g.drain()
	printBook(seq, cfg.Engine.SummaryDepth)

	slog.Info("========== SCENARIO 2: Aggressive Order (multi-level sweep) ==========")
	g.newOrder(6, quant.Buy, quant.MustPrice("101.5"), 80)
	g.drain()
	printBook(seq, cfg.Engine.SummaryDepth)

	slog.Info("========== SCENARIO 3: Order Cancellation ==========")
	g.cancel(4)
	g.drain()
	printBook(seq, cfg.Engine.SummaryDepth)

	slog.Info("========== SCENARIO 4: Unpriced Aggressor ==========")
	g.newOrder(7, quant.Buy, quant.MustPrice("999999.0"), 25)
	g.drain()
	printBook(seq, cfg.Engine.SummaryDepth)

	// Quiesced: the sequencer is idle, so reading the book directly is safe.
	cancel()
	bk := bootstrap.Book

	log := bk.EventLog()
	slog.Info("Event log complete", slog.Int("events", len(log)))
	tail := log
	if len(tail) > 5 {
		tail = tail[len(tail)-5:]
	}
	for i := range tail {
		fmt.Println("  " + event.Record(&tail[i]))
	}

	// 4. Save the textual log and replay it through a fresh book.
	slog.Info("========== DETERMINISTIC REPLAY ==========")
	if err := saveLogFile(cfg.Replay.LogFile, log); err != nil {
		slog.Error("❌ Failed to save event log", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("💾 Event log saved", slog.String("file", cfg.Replay.LogFile))

	if err := engine.VerifyReplay(log, cfg.Engine.Capacity); err != nil {
		slog.Error("❌ Replay verification FAILED", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("✅ Replay verification passed: identical event log")

	// 5. Durable path: the sequencer mirrored every event into the store
	// while processing; replay from what was actually persisted.
	if bootstrap.EventStore != nil {
		if err := verifyStoredReplay(bootstrap, log); err != nil {
			slog.Error("❌ Stored replay FAILED", slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("✅ Stored replay passed: sqlite round-trip is faithful")
	}

	if err := bk.CheckInvariants(); err != nil {
		slog.Error("❌ Invariant violation", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("✅ All invariants satisfied")

	m := infra.GlobalMetrics.Snapshot()
	slog.Info("✨ Demonstration complete",
		slog.Uint64("orders", m.OrdersProcessed),
		slog.Uint64("trades", m.TradesMatched),
		slog.Uint64("events", m.EventsLogged))
}

func printBook(seq *engine.Sequencer, depth int) {
	s := seq.Summary(depth)
	fmt.Printf("  ── book @ seq %d (%d resting) ──\n", s.Seq, s.Resting)
	for i := len(s.Asks) - 1; i >= 0; i-- {
		fmt.Printf("    ASK %10s × %-6d (%d orders)\n", s.Asks[i].Price, s.Asks[i].Volume, s.Asks[i].Orders)
	}
	for _, l := range s.Bids {
		fmt.Printf("    BID %10s × %-6d (%d orders)\n", l.Price, l.Volume, l.Orders)
	}
}

func saveLogFile(path string, log []event.Event) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return engine.SaveLog(f, log)
}

func verifyStoredReplay(bootstrap *app.Bootstrap, log []event.Event) error {
	ctx := context.Background()

	stored, err := bootstrap.EventStore.LoadEvents(ctx)
	if err != nil {
		return err
	}
	if !engine.LogsEqual(log, stored) {
		return domain.ErrReplayDiverged
	}

	replayed, err := engine.ReplayLog(stored, bootstrap.Config.Engine.Capacity)
	if err != nil {
		return err
	}
	if !engine.LogsEqual(log, replayed.EventLog()) {
		return domain.ErrReplayDiverged
	}
	return nil
}
