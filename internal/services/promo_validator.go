package services

import (
	"context"
	"errors"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"
)

// PromoFinder looks up an active promo rule by code.
type PromoFinder interface {
	FindByCode(ctx context.Context, code string) (*model.PromoCode, error)
}

// PromoValidatorService resolves user-entered codes against the cart's item
// ids. Error messages are user-visible; they surface inline, never fatally.
type PromoValidatorService struct {
	Promos PromoFinder
}

func NewPromoValidatorService(p PromoFinder) *PromoValidatorService {
	return &PromoValidatorService{Promos: p}
}

func (s *PromoValidatorService) Validate(ctx context.Context, code string, itemIDs []string) (*model.PromoCode, error) {
	promo, err := s.Promos.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, errors.New("invalid promo code")
	}
	if len(promo.AllowedItemIDs) > 0 && !anyAllowed(promo, itemIDs) {
		return nil, errors.New("this code is not applicable to these items")
	}
	return promo, nil
}

func anyAllowed(promo *model.PromoCode, itemIDs []string) bool {
	for _, id := range itemIDs {
		if promo.Allows(id) {
			return true
		}
	}
	return false
}
