package repository

import (
	"context"
	"errors"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SaleRepository struct {
	DB *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{DB: db}
}

// GetConfig materializes the site-wide sale row plus all per-course
// overrides. A missing site_sale row means no sale.
func (r *SaleRepository) GetConfig(ctx context.Context) (model.SaleConfig, error) {
	var cfg model.SaleConfig

	query := `SELECT active, percentoff FROM site_sale LIMIT 1`
	if err := r.DB.QueryRow(ctx, query).Scan(&cfg.Active, &cfg.PercentOff); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return model.SaleConfig{}, err
		}
	}

	rows, err := r.DB.Query(ctx, `SELECT courseid, active, percentoff FROM course_sales`)
	if err != nil {
		return model.SaleConfig{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var ov model.SaleOverride
		if err := rows.Scan(&id, &ov.Active, &ov.PercentOff); err != nil {
			return model.SaleConfig{}, err
		}
		if cfg.Overrides == nil {
			cfg.Overrides = make(map[string]model.SaleOverride)
		}
		cfg.Overrides[id] = ov
	}
	return cfg, nil
}
