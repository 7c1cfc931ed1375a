// Package app wires configuration, logging, curriculum sources and the
// blueprint engine together for the binaries.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/p-n-ai/pai-paper/internal/curriculum"
	"github.com/p-n-ai/pai-paper/internal/paper"
	"github.com/p-n-ai/pai-paper/internal/platform/config"
	"github.com/p-n-ai/pai-paper/internal/platform/database"
)

// NewLogger builds the process logger described by cfg.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level(cfg.Level)}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func level(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Runtime holds the long-lived pieces shared by request handlers.
type Runtime struct {
	Config  *config.Config
	Catalog *curriculum.Catalog
	Engine  *paper.Engine
	DB      *database.DB // nil when no database is configured
}

// New loads the curriculum catalog from every configured source and builds
// the engine. Sources are read in order: bundled documents, the curriculum
// directory, then the database.
func New(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	mode, err := paper.ParseMode(cfg.DistributionMode)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Config: cfg}
	sources := []curriculum.Source{curriculum.Bundled()}
	if cfg.CurriculumPath != "" {
		sources = append(sources, curriculum.Dir(cfg.CurriculumPath))
	}
	if cfg.Database.Enabled() {
		src, err := rt.openDatabase(ctx)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	catalog, err := curriculum.Load(ctx, sources...)
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.Catalog = catalog
	rt.Engine = paper.NewEngine(paper.EngineConfig{
		Catalog:     catalog,
		DefaultMode: mode,
	})
	return rt, nil
}

// OpenPostgresSource connects to the configured database and returns its
// curriculum source with the table in place. The caller closes the DB.
func OpenPostgresSource(ctx context.Context, cfg config.DatabaseConfig) (*database.DB, *curriculum.PostgresSource, error) {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	src, err := curriculum.NewPostgresSource(db.Pool)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	if err := src.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, src, nil
}

func (r *Runtime) openDatabase(ctx context.Context) (curriculum.Source, error) {
	db, src, err := OpenPostgresSource(ctx, r.Config.Database)
	if err != nil {
		return nil, err
	}
	r.DB = db
	slog.Info("database curriculum source enabled")
	return src, nil
}

// Ready reports whether dependencies needed to serve requests are reachable.
func (r *Runtime) Ready(ctx context.Context) error {
	if r.Catalog == nil || r.Catalog.Len() == 0 {
		return fmt.Errorf("curriculum catalog is empty")
	}
	if r.DB != nil {
		if err := r.DB.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	return nil
}

// Close releases the database pool, if any.
func (r *Runtime) Close() {
	if r.DB != nil {
		r.DB.Close()
		r.DB = nil
	}
}
