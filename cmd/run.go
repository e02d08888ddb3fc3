package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wordloop/wordloop/internal/app"
	"github.com/wordloop/wordloop/internal/config"
	"github.com/wordloop/wordloop/internal/hints"
	"github.com/wordloop/wordloop/internal/llm"
	"github.com/wordloop/wordloop/internal/logging"
	"github.com/wordloop/wordloop/internal/mastery"
	"github.com/wordloop/wordloop/internal/store"
	"github.com/wordloop/wordloop/internal/vocab"
)

// appDeps holds what every command touching progress needs.
type appDeps struct {
	cfg     *config.Config
	log     *logrus.Logger
	store   *store.Store
	dataset *vocab.Dataset
	mastery *mastery.Service
	logFile io.Closer
}

func (r *appDeps) Close() {
	if r.store != nil {
		r.store.Close()
	}
	if r.logFile != nil {
		r.logFile.Close()
	}
}

// openDeps loads config, opens the store and the dataset and restores
// progress. With toFile set, logs go to the log file instead of stderr.
func openDeps(cmd *cobra.Command, toFile bool) (*appDeps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	rt := &appDeps{cfg: cfg}

	var out io.Writer = os.Stderr
	if toFile {
		path, err := logPath(cfg)
		if err != nil {
			return nil, err
		}
		f, err := logging.OpenFile(path)
		if err != nil {
			return nil, err
		}
		rt.logFile = f
		out = f
	}
	rt.log, err = logging.New(cfg.Log.Level, cfg.Log.Format, out)
	if err != nil {
		rt.Close()
		return nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	rt.store, err = store.Open(dbPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	rt.dataset, err = loadDataset(cfg)
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.mastery, err = mastery.NewService(cmd.Context(), mastery.Options{
		Items:        rt.dataset.Items,
		SnapshotRepo: rt.store.SnapshotRepo(),
		EventRepo:    rt.store.EventRepo(),
		Keep:         cfg.Snapshot.Keep,
		Mode:         cfg.ModeOverride(),
		Category:     cfg.CategoryOverride(),
		Log:          rt.log,
		Now:          time.Now,
	})
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.log.WithFields(logrus.Fields{
		"db":    dbPath,
		"items": len(rt.dataset.Items),
	}).Debug("dependencies ready")
	return rt, nil
}

// hintService builds the hint service. A provider that fails to initialize
// disables hints instead of failing the command.
func (r *appDeps) hintService(ctx context.Context) *hints.Service {
	if !r.cfg.Hints.Enabled {
		return hints.NewService(nil, r.cfg.Hints, r.log)
	}
	provider, err := llm.New(ctx, r.cfg.LLM, r.store.EventRepo(), r.log)
	if err != nil {
		r.log.WithError(err).Warn("LLM provider unavailable, hints disabled")
		provider = nil
	}
	return hints.NewService(provider, r.cfg.Hints, r.log)
}

// runApp launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := openDeps(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	hintSvc := rt.hintService(cmd.Context())
	defer hintSvc.Cancel()
	if !hintSvc.Enabled() {
		rt.log.Info("memory hints disabled")
	}

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(cmd.Context(), app.Options{
		Mastery:   rt.mastery,
		Hints:     hintSvc,
		EventRepo: rt.store.EventRepo(),
		Log:       rt.log,
		Now:       time.Now,
		Splash:    !noSplash,
	})
}

// resolveDBPath returns the database path using --db or the db config key
// (highest priority), then WORDLOOP_DB, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func logPath(cfg *config.Config) (string, error) {
	if cfg.Log.File != "" {
		return cfg.Log.File, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wordloop.log"), nil
}

func loadDataset(cfg *config.Config) (*vocab.Dataset, error) {
	if cfg.Dataset == "" {
		ds, err := vocab.Default()
		if err != nil {
			return nil, fmt.Errorf("load starter dataset: %w", err)
		}
		return ds, nil
	}
	ds, err := vocab.Load(cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", cfg.Dataset, err)
	}
	return ds, nil
}
