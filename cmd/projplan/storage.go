package main

import (
	"fmt"

	"github.com/lumenrig/projplan/internal/config"
	"github.com/lumenrig/projplan/internal/database"
	"github.com/lumenrig/projplan/internal/storage"
	"github.com/lumenrig/projplan/internal/storage/gormstore"
	"github.com/lumenrig/projplan/internal/storage/memory"

	"github.com/rs/zerolog"
)

func initStorage(storageCfg config.StorageConfig, log zerolog.Logger) (storage.Backend, error) {
	backend, err := createStorageBackend(storageCfg, log)
	if err != nil {
		Logger.Error("Failed to create storage backend", "error", err)
		return nil, err
	}
	if err := backend.Init(); err != nil {
		Logger.Error("Failed to initialize storage backend", "error", err)
		return nil, err
	}
	return backend, nil
}

func createStorageBackend(storageCfg config.StorageConfig, log zerolog.Logger) (storage.Backend, error) {
	switch storageCfg.Type {
	case "postgres":
		// falls back to the SQLite file when postgres is unreachable
		mgr := database.NewManager(log, storageCfg.SQLite.Path)
		if err := mgr.Connect(); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		Logger.Info("Database storage backend initialized", "sqlite", mgr.UsingSQLite)
		return gormstore.New(mgr), nil

	case "sqlite":
		mgr := database.NewManager(log, storageCfg.SQLite.Path)
		if err := mgr.ConnectSQLite(); err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		Logger.Info("SQLite storage backend initialized", "path", storageCfg.SQLite.Path)
		return gormstore.New(mgr), nil

	case "memory", "":
		Logger.Info("Memory storage backend initialized", "dir", storageCfg.Memory.OutputDir)
		return memory.New(storageCfg.Memory), nil
	}
	return nil, fmt.Errorf("unknown storage type %q", storageCfg.Type)
}
