package services

import (
	"context"
	"errors"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/repository"
)

// ErrNotEntitled gates video playback: owned courses only.
var ErrNotEntitled = errors.New("playback is gated by entitlement")

// LibraryItem is an owned course with the viewer's progress.
type LibraryItem struct {
	Course          model.Course `json:"course"`
	ProgressSeconds int64        `json:"progressSeconds"`
}

// LibraryService serves the signed-in user's owned courses, the entitlement
// gate in front of video playback, and the periodic progress sync.
type LibraryService struct {
	Entitlements *repository.EntitlementRepository
	Catalog      *repository.CatalogRepository
}

func NewLibraryService(er *repository.EntitlementRepository, cr *repository.CatalogRepository) *LibraryService {
	return &LibraryService{Entitlements: er, Catalog: cr}
}

// List returns the user's owned courses with progress, newest grant first.
func (s *LibraryService) List(ctx context.Context, userID string) ([]LibraryItem, error) {
	ents, err := s.Entitlements.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]LibraryItem, 0, len(ents))
	for _, e := range ents {
		course, err := s.Catalog.GetByID(ctx, e.CourseID)
		if err != nil {
			// course was unpublished after purchase; skip it in the library
			continue
		}
		out = append(out, LibraryItem{Course: *course, ProgressSeconds: e.ProgressSeconds})
	}
	return out, nil
}

// VideoFor returns the course's video id only when the user owns the course.
func (s *LibraryService) VideoFor(ctx context.Context, userID, courseID string) (string, error) {
	owned, err := s.Entitlements.IsOwned(ctx, userID, courseID)
	if err != nil {
		return "", err
	}
	if !owned {
		return "", ErrNotEntitled
	}
	course, err := s.Catalog.GetByID(ctx, courseID)
	if err != nil {
		return "", err
	}
	return course.VideoID, nil
}

// SyncProgress upserts the viewer's position. Clients call this periodically
// during playback.
func (s *LibraryService) SyncProgress(ctx context.Context, userID, courseID string, seconds int64) error {
	if seconds < 0 {
		return errors.New("progress must be >= 0")
	}
	if err := s.Entitlements.UpdateProgress(ctx, userID, courseID, seconds); err != nil {
		if err.Error() == "course not owned" {
			return ErrNotEntitled
		}
		return err
	}
	return nil
}
