package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgKV stores blobs in the cart_blobs table.
type PgKV struct {
	DB *pgxpool.Pool
}

func NewPgKV(db *pgxpool.Pool) *PgKV {
	return &PgKV{DB: db}
}

func (s *PgKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	query := `SELECT value FROM cart_blobs WHERE key=$1`
	if err := s.DB.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (s *PgKV) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO cart_blobs (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	_, err := s.DB.Exec(ctx, query, key, value)
	return err
}

func (s *PgKV) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM cart_blobs WHERE key=$1`
	_, err := s.DB.Exec(ctx, query, key)
	return err
}
