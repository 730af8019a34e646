// Package main is the entry point for the PixelSoft tycoon game server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pixelsoft/tycoon-server/internal/config"
	"github.com/pixelsoft/tycoon-server/internal/engine"
	"github.com/pixelsoft/tycoon-server/internal/infra/storage"
	"github.com/pixelsoft/tycoon-server/internal/network"
	"github.com/pixelsoft/tycoon-server/internal/platform/logger"
	"github.com/pixelsoft/tycoon-server/internal/platform/metrics"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the server configuration file")
	freshGame := flag.Bool("new", false, "ignore the autosave and start a fresh game")
	flag.Parse()

	log.Println("[TYCOON-SERVER] Initializing PixelSoft Authoritative Server...")

	appLogger := logger.NewLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	appLogger.Info("Initializing SQLite database '" + cfg.DBPath + "'...")
	db, err := storage.InitSQLite(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to initialize SQLite: %v", err)
		os.Exit(1)
	}
	defer db.Close()
	saveRepo := storage.NewSaveRepository(db)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	appLogger.Info("Bootstrapping Engine Subsystems...")
	gameEngine := engine.New(cfg.CompanyName, seed, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *freshGame {
		gameEngine.InitGame()
	} else if err := bootstrapState(ctx, saveRepo, gameEngine, appLogger); err != nil {
		appLogger.Error("Failed to bootstrap game state: %v", err)
		os.Exit(1)
	}

	collector := metrics.Get()
	runner := engine.NewRunner(gameEngine, cfg.TickInterval(), appLogger, collector)
	go runner.Start(ctx)

	if cfg.AutosaveInterval() > 0 {
		go autosaveLoop(ctx, runner, saveRepo, cfg.AutosaveInterval(), appLogger, collector)
	}

	appLogger.Info("Bootstrapping WebSocket Hub...")
	hub := network.NewHub(runner, appLogger, collector)
	go hub.Run(ctx)
	hub.StartSnapshotPusher(ctx, cfg.BroadcastInterval())

	mux := http.NewServeMux()
	hub.Routes(mux)
	server := &http.Server{Addr: cfg.ListenAddr, Handler: mux}

	go func() {
		log.Printf("[TYCOON-SERVER] HTTP API & WS Server listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	log.Println("[TYCOON-SERVER] Server running. Press Ctrl+C to exit.")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[TYCOON-SERVER] Shutting down...")
	cancel()
	runner.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown: %v", err)
	}

	// One last save so a clean restart resumes where we left off.
	saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer saveCancel()
	err = runner.Do(func(e *engine.Engine) error {
		return saveRepo.Save(saveCtx, storage.AutosaveSlot, "Autosave", e.State())
	})
	if err != nil {
		appLogger.Error("Final autosave failed: %v", err)
	}
}

// bootstrapState resumes from the autosave slot when one exists, otherwise
// starts a fresh game.
func bootstrapState(ctx context.Context, repo *storage.SaveRepository, eng *engine.Engine, appLogger *logger.Logger) error {
	appLogger.Info("Checking DB for an existing autosave...")
	state, err := repo.Load(ctx, storage.AutosaveSlot)
	if err != nil {
		appLogger.Info("No usable autosave found. Starting a new game.")
		eng.InitGame()
		return nil
	}

	appLogger.Info("Reconstructing game state from SQLite...")
	return eng.LoadState(state)
}

// autosaveLoop periodically persists the running game to the autosave slot.
func autosaveLoop(ctx context.Context, runner *engine.Runner, repo *storage.SaveRepository, interval time.Duration, appLogger *logger.Logger, collector *metrics.Collector) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			err := runner.Do(func(e *engine.Engine) error {
				return repo.Save(ctx, storage.AutosaveSlot, "Autosave", e.State())
			})
			collector.RecordSave(time.Since(start), err)
			if err != nil {
				appLogger.Error("Autosave failed: %v", err)
			}
		}
	}
}
