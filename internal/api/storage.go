package api

import (
	"fmt"

	"flightdesk/internal/cache"
	"flightdesk/internal/config"
	"flightdesk/internal/database"
	"flightdesk/internal/repository"
	"flightdesk/internal/storage"
)

// Session storage drivers
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverValkey   = "valkey"
	DriverPostgres = "postgres"
)

// sessionBackend is the opened session storage and what must be closed with it.
type sessionBackend struct {
	store  storage.Store
	db     *database.DB
	valkey *cache.ValkeyClient
}

func openSessionStorage(cfg *config.Config) (*sessionBackend, error) {
	switch cfg.Session.Driver {
	case DriverMemory:
		return &sessionBackend{store: storage.NewMemoryStore()}, nil

	case DriverFile, "":
		fs, err := storage.NewFileStore(cfg.Session.FilePath)
		if err != nil {
			return nil, err
		}
		return &sessionBackend{store: fs}, nil

	case DriverValkey:
		client, err := cache.NewValkeyClient(cfg.Valkey, cfg.Session.Namespace)
		if err != nil {
			return nil, err
		}
		return &sessionBackend{store: client, valkey: client}, nil

	case DriverPostgres:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, err
		}
		return &sessionBackend{store: repository.NewStorageRepository(db, cfg.Session.Namespace), db: db}, nil
	}
	return nil, fmt.Errorf("unknown session driver %q", cfg.Session.Driver)
}

func (b *sessionBackend) Close() error {
	if b.valkey != nil {
		if err := b.valkey.Close(); err != nil {
			return fmt.Errorf("failed to close valkey client: %w", err)
		}
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
