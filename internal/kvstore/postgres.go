package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, userId int, key string) ([]byte, error) {
	query := `SELECT value FROM kv_entry WHERE user_id = $1 AND key = $2`
	var value []byte
	err := s.db.QueryRow(ctx, query, userId, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		err := fmt.Errorf("could not read key %s: %w", key, err)
		log.Error(err)
		return nil, err
	}
	return value, nil
}

func (s *PostgresStore) Put(ctx context.Context, userId int, key string, value []byte) error {
	query := `INSERT INTO kv_entry (user_id, key, value, updated_at) VALUES ($1, $2, $3, now())
				ON CONFLICT (user_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	_, err := s.db.Exec(ctx, query, userId, key, value)
	if err != nil {
		err := fmt.Errorf("could not store key %s: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, userId int, key string) error {
	query := `DELETE FROM kv_entry WHERE user_id = $1 AND key = $2`
	result, err := s.db.Exec(ctx, query, userId, key)
	if err != nil {
		err := fmt.Errorf("could not delete key %s: %w", key, err)
		log.Error(err)
		return err
	}
	log.Debugf("deleted %d entries for key %s of user %d", result.RowsAffected(), key, userId)
	return nil
}
