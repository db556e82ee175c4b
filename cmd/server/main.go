package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itbasis/go-clock"
	"golang.org/x/sync/errgroup"

	web "badminton/internal/adapters/http"
	"badminton/internal/adapters/http/perf"
	"badminton/internal/adapters/storage"
	attendanceStore "badminton/internal/adapters/storage/attendance"
	feeStore "badminton/internal/adapters/storage/fee"
	playerStore "badminton/internal/adapters/storage/player"
	"badminton/internal/adapters/storage/snapshot"
	weekLabelStore "badminton/internal/adapters/storage/weeklabel"
	"badminton/internal/application/orchestrators"
	"badminton/internal/config"
	"badminton/internal/domain/navigator"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// shutdownTimeout bounds how long in-flight requests may finish after a signal.
const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	collector := perf.NewCollector()
	timedDB := storage.NewTimedDB(db, collector, cfg.SlowQuery)

	stores := &web.Stores{
		DB:              db,
		PlayerStore:     playerStore.NewSQLiteStore(timedDB),
		FeeStore:        feeStore.NewSQLiteStore(timedDB),
		AttendanceStore: attendanceStore.NewSQLiteStore(timedDB),
		WeekLabelStore:  weekLabelStore.NewSQLiteStore(timedDB),
	}

	clk := clock.New()

	if cfg.SnapshotPath != "" {
		image, err := os.ReadFile(cfg.SnapshotPath)
		if err != nil {
			return err
		}
		if err := snapshot.Load(ctx, db, image); err != nil {
			return err
		}
	} else if cfg.Seed {
		_, err := orchestrators.ExecuteResetStore(ctx, orchestrators.ResetStoreInput{Seed: true}, orchestrators.ResetStoreDeps{
			Reset:    func(context.Context) error { return storage.ResetDB(db) },
			FeeStore: stores.FeeStore,
			Now:      clk.Now,
		})
		if err != nil {
			return err
		}
	}

	handler := web.NewMux(stores, navigator.New(clk), collector, web.Options{
		CSRFKey:        cfg.CSRFKey(),
		Secure:         cfg.IsProduction(),
		TrustedOrigins: cfg.TrustedOrigins,
		RateLimit:      cfg.RateLimit,
		SlowRequest:    cfg.SlowRequest,
		Clock:          clk,
	})

	srv := &http.Server{
		Addr:           cfg.Addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server_event", "event", "starting", "version", version, "addr", cfg.Addr,
			"env", cfg.Env, "schema", storage.LatestSchemaVersion())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("server_event", "event", "shutting_down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
