package services

import (
	"context"
	"sort"
	"strings"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/pricing"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/repository"
)

// CatalogService serves the course library pages. The catalog is small, so
// search, filter and sort run over the in-memory slice after one query.
type CatalogService struct {
	Repo  *repository.CatalogRepository
	Sales SaleConfigGetter
}

func NewCatalogService(r *repository.CatalogRepository, sales SaleConfigGetter) *CatalogService {
	return &CatalogService{Repo: r, Sales: sales}
}

// Browse lists courses matching the text query and creator filter, ordered by
// the requested sort, with sale-adjusted display prices attached.
func (s *CatalogService) Browse(ctx context.Context, query, creator, sortBy string) ([]model.PricedCourse, error) {
	courses, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sale, err := s.Sales.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	filtered := filterCourses(courses, query, creator)
	sortCourses(filtered, sortBy)

	out := make([]model.PricedCourse, 0, len(filtered))
	for _, c := range filtered {
		display := pricing.AdjustedPrice(c.Price, c.ID, sale, nil)
		out = append(out, model.PricedCourse{
			Course:       c,
			DisplayPrice: display,
			OnSale:       display != c.Price,
		})
	}
	return out, nil
}

// GetBySlug returns one course with its display price, for detail pages.
func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (*model.PricedCourse, error) {
	c, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	sale, err := s.Sales.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	display := pricing.AdjustedPrice(c.Price, c.ID, sale, nil)
	return &model.PricedCourse{
		Course:       *c,
		DisplayPrice: display,
		OnSale:       display != c.Price,
	}, nil
}

func filterCourses(courses []model.Course, query, creator string) []model.Course {
	query = strings.ToLower(strings.TrimSpace(query))
	creator = strings.ToLower(strings.TrimSpace(creator))

	out := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		if creator != "" && strings.ToLower(c.CreatorName) != creator {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(c.Title), query) &&
			!strings.Contains(strings.ToLower(c.CreatorName), query) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func sortCourses(courses []model.Course, sortBy string) {
	switch sortBy {
	case "price-asc":
		sort.SliceStable(courses, func(i, j int) bool { return courses[i].Price < courses[j].Price })
	case "price-desc":
		sort.SliceStable(courses, func(i, j int) bool { return courses[i].Price > courses[j].Price })
	case "title":
		sort.SliceStable(courses, func(i, j int) bool {
			return strings.ToLower(courses[i].Title) < strings.ToLower(courses[j].Title)
		})
	default:
		// repo order: newest first
	}
}
