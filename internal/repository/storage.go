package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"flightdesk/internal/database"

	"github.com/lib/pq"
)

// StorageRepository is the postgres session storage driver. Every shell
// pointed at the same namespace sees the same session.
type StorageRepository struct {
	db        *database.DB
	namespace string
}

func NewStorageRepository(db *database.DB, namespace string) *StorageRepository {
	return &StorageRepository{db: db, namespace: namespace}
}

func (r *StorageRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query := `
		SELECT value
		FROM client_storage
		WHERE namespace = $1 AND key = $2`

	var value string
	err := r.db.QueryRowContext(ctx, query, r.namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (r *StorageRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO client_storage (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, r.namespace, key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (r *StorageRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query := `
		DELETE FROM client_storage
		WHERE namespace = $1 AND key = ANY($2)`

	if _, err := r.db.ExecContext(ctx, query, r.namespace, pq.Array(keys)); err != nil {
		return fmt.Errorf("failed to delete session keys: %w", err)
	}
	return nil
}
