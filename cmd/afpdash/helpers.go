package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/common"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/config"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/ingest"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/model"
	"github.com/isaac24012000-oss/NOVIEMBRE-AFP-PRIMA/internal/storage"
	"github.com/spf13/viper"
)

// initStore opens the snapshot database with proper path expansion.
func initStore(ctx context.Context) (*storage.SnapshotStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultSnapshotDBPath
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSnapshotStore(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadRecords resolves the record set for a command. With --snapshot it
// replays the latest stored load; otherwise it reads the workbook named
// by --file (or source.file in the config) and stores a new snapshot.
func loadRecords(ctx context.Context) ([]model.AccountRecord, time.Time, error) {
	if viper.GetBool("source.snapshot") {
		store, err := initStore(ctx)
		if err != nil {
			return nil, time.Time{}, err
		}
		defer func() {
			_ = store.Close()
		}()

		info, records, err := store.LatestSnapshot(ctx)
		if errors.Is(err, common.ErrNotFound) {
			return nil, time.Time{}, common.NewUserError("no snapshots stored yet, load a workbook first", err)
		}
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to load snapshot: %w", err)
		}
		slog.Info("Loaded records from snapshot",
			"source", info.Source, "loaded_at", info.LoadedAt, "records", len(records))
		return records, info.LoadedAt, nil
	}

	source := viper.GetString("source.file")
	if source == "" {
		return nil, time.Time{}, fmt.Errorf("%w: no source workbook, pass --file or set source.file", common.ErrMissingConfig)
	}
	source = config.ExpandPath(source)

	loadedAt := time.Now()
	records, err := ingest.NewLoader(source).Load(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}

	if err := saveSnapshot(ctx, source, loadedAt, records); err != nil {
		slog.Warn("Failed to store load snapshot", "error", err)
	}

	return records, loadedAt, nil
}

func saveSnapshot(ctx context.Context, source string, loadedAt time.Time, records []model.AccountRecord) error {
	store, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	_, err = store.SaveSnapshot(ctx, source, loadedAt, records)
	return err
}
