package repository

import (
	"context"
	"errors"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepository struct {
	DB *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// List returns all live courses, newest first. The catalog is small; search,
// filter and sort run over this slice in memory.
func (r *CatalogRepository) List(ctx context.Context) ([]model.Course, error) {
	query := `
		SELECT courseid, title, creatorname, price, imageurl, slug, videoid, created_at
		FROM courses
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.CreatorName, &c.Price, &c.ImageURL, &c.Slug, &c.VideoID, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, nil
}

func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var c model.Course
	query := `
		SELECT courseid, title, creatorname, price, imageurl, slug, videoid, created_at
		FROM courses
		WHERE courseid=$1 AND deleted_at IS NULL
	`
	if err := r.DB.
		QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Title, &c.CreatorName, &c.Price, &c.ImageURL, &c.Slug, &c.VideoID, &c.CreatedAt); err != nil {
		return nil, errors.New("course not found")
	}
	return &c, nil
}

func (r *CatalogRepository) GetBySlug(ctx context.Context, slug string) (*model.Course, error) {
	var c model.Course
	query := `
		SELECT courseid, title, creatorname, price, imageurl, slug, videoid, created_at
		FROM courses
		WHERE slug=$1 AND deleted_at IS NULL
	`
	if err := r.DB.
		QueryRow(ctx, query, slug).
		Scan(&c.ID, &c.Title, &c.CreatorName, &c.Price, &c.ImageURL, &c.Slug, &c.VideoID, &c.CreatedAt); err != nil {
		return nil, errors.New("course not found")
	}
	return &c, nil
}
