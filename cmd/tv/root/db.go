package root

import (
	"context"

	"taskventure/internal/config"
	"taskventure/internal/logging"
	"taskventure/internal/progress"
	"taskventure/internal/storage"
)

// env is everything an open command needs: config, the store, and the
// progression engine wired on top of it.
type env struct {
	cfg   *config.Config
	store *storage.Store
	svc   *progress.Service
}

func openEnv(ctx context.Context) (*env, func(), error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logging.Setup(level)

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	store := storage.New(db)
	opts, err := cfg.EngineOptions()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	svc, err := progress.NewService(store, opts)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return &env{cfg: cfg, store: store, svc: svc}, cleanup, nil
}
