package repository

import (
	"context"
	"errors"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PromoRepository struct {
	DB *pgxpool.Pool
}

func NewPromoRepository(db *pgxpool.Pool) *PromoRepository {
	return &PromoRepository{DB: db}
}

// FindByCode returns the active promo with the given code, or nil when no
// such code exists.
func (r *PromoRepository) FindByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	var p model.PromoCode
	query := `
		SELECT code, percentoff, allowedcourseids
		FROM promo_codes
		WHERE code=$1 AND active
	`
	if err := r.DB.QueryRow(ctx, query, code).Scan(&p.Code, &p.PercentOff, &p.AllowedItemIDs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
