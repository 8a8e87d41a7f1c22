package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/tudu/internal/config"
	"github.com/sandeepkv93/tudu/internal/logging"
	"github.com/sandeepkv93/tudu/internal/storage"
	"github.com/sandeepkv93/tudu/internal/tasklist"
)

// session is one opened list plus the resources backing it.
type session struct {
	cfg     config.RuntimeConfig
	store   *storage.TaskListStore
	list    *tasklist.List
	logger  *log.Logger
	closers []io.Closer
}

func openSession(ctx context.Context, flags *globalFlags) (*session, error) {
	cfg, err := config.Load(config.DefaultRuntimeConfig(), flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}
	if flags.ephemeral {
		cfg.Ephemeral = true
	}
	if flags.verbose {
		cfg.Debug = true
	}

	logger, logCloser, err := logging.New(logging.Options{Path: cfg.LogFile, Debug: cfg.Debug})
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	var kv storage.KV
	if cfg.Ephemeral {
		kv = storage.NewMemoryKV(cfg.StorageQuotaBytes)
	} else {
		sqliteKV, err := storage.OpenSQLite(cfg.DBPath, cfg.StorageQuotaBytes)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("open storage: %w", err)
		}
		s.closers = append([]io.Closer{sqliteKV}, s.closers...)
		kv = sqliteKV
	}

	s.store = storage.NewTaskListStore(kv, logger)
	s.list = tasklist.Open(ctx, s.store, tasklist.WithLogger(logger))
	logger.Debug("session opened", "db", cfg.DBPath, "ephemeral", cfg.Ephemeral, "tasks", s.list.Len())
	return s, nil
}

func (s *session) Close() error {
	s.logger.Debug("session closed", "saves", s.list.SaveCount(), "last_save_err", s.list.LastSaveError())
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
