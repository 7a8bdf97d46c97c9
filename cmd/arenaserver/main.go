package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arkodev/skirmish/internal/config"
	"github.com/arkodev/skirmish/internal/db"
	"github.com/arkodev/skirmish/internal/instance"
	"github.com/arkodev/skirmish/internal/instance/gen"
	"github.com/arkodev/skirmish/internal/model"
	"github.com/arkodev/skirmish/internal/status"
	"github.com/arkodev/skirmish/internal/world"
)

const ConfigPath = "config/server.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("SKIRMISH_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("skirmish server starting", "log_level", cfg.LogLevel)

	defs, err := worldDefinitions(cfg)
	if err != nil {
		return err
	}
	worlds := world.NewManager(defs)

	lobbyKey, err := world.ParseKey(cfg.Lobby)
	if err != nil {
		return fmt.Errorf("lobby key: %w", err)
	}

	manager := instance.NewManager(worlds, lobbyKey, cfg.MaxWorldExtent)

	board := status.NewBoard()
	manager.AddObserver(board)

	if cfg.RoundHistory {
		dsn := cfg.Database.DSN()
		if err := db.RunMigrations(ctx, dsn); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
		database, err := db.New(ctx, dsn)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		manager.AddObserver(db.NewRoundRecorder(db.NewRoundRepository(database)))
		slog.Info("round history enabled", "db", cfg.Database.DBName)
	}

	// The lobby must be up before any instance can be torn down.
	if _, err := worlds.LoadWorld(ctx, lobbyKey); err != nil {
		return fmt.Errorf("loading lobby: %w", err)
	}

	types := instanceTypes(cfg)
	slog.Info("instance types registered", "count", len(types))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				for _, e := range board.Entries() {
					slog.Info("instance status", "world", e.World, "state", e.State, "players", e.Players)
				}
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		drain(manager)
		return ctx.Err()
	})

	return g.Wait()
}

// drain force-stops and unloads every live instance on shutdown.
func drain(manager *instance.Manager) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, inst := range manager.All() {
		key := inst.WorldKey()
		if err := manager.EndInstance(key, true); err != nil && !errors.Is(err, instance.ErrUnknownInstance) {
			slog.Warn("failed to end instance on shutdown", "world", key, "err", err)
		}
		if _, err := manager.UnloadInstance(ctx, key); err != nil {
			slog.Warn("failed to unload instance on shutdown", "world", key, "err", err)
		}
	}
}

func worldDefinitions(cfg config.Server) ([]world.Definition, error) {
	defs := make([]world.Definition, 0, len(cfg.Worlds))
	for _, wc := range cfg.Worlds {
		key, err := world.ParseKey(wc.Key)
		if err != nil {
			return nil, fmt.Errorf("world config: %w", err)
		}
		defs = append(defs, world.Definition{
			Key:    key,
			Extent: wc.Extent,
			Spawn:  model.Point{X: wc.SpawnX, Y: wc.SpawnY, Z: wc.SpawnZ},
		})
	}
	return defs, nil
}

func instanceTypes(cfg config.Server) map[string]*instance.Type {
	types := make(map[string]*instance.Type, len(cfg.Types))
	for _, tc := range cfg.Types {
		types[tc.ID] = instance.NewType(tc.ID, instance.TypeConfig{
			Name:        tc.Name,
			Countdown:   time.Duration(tc.CountdownSeconds) * time.Second,
			RoundLength: time.Duration(tc.RoundSeconds) * time.Second,
			MinPlayers:  tc.MinPlayers,
			MaxPlayers:  tc.MaxPlayers,
			Pipeline: gen.NewPipeline(
				&gen.SpawnMutator{Count: tc.Spawns, Radius: tc.SpawnRadius},
				&gen.ChestMutator{Count: tc.Chests, Spread: tc.ChestSpread},
			),
		})
	}
	return types
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
