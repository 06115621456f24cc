package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"
)

type fakePromoFinder struct {
	promos map[string]*model.PromoCode
	err    error
}

func (f fakePromoFinder) FindByCode(_ context.Context, code string) (*model.PromoCode, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.promos[code], nil
}

func TestPromoValidator_UnknownCode(t *testing.T) {
	v := NewPromoValidatorService(fakePromoFinder{promos: map[string]*model.PromoCode{}})

	_, err := v.Validate(context.Background(), "NOPE-10", []string{"c1"})
	require.Error(t, err)
	assert.Equal(t, "invalid promo code", err.Error())
}

func TestPromoValidator_NotApplicable(t *testing.T) {
	v := NewPromoValidatorService(fakePromoFinder{promos: map[string]*model.PromoCode{
		"FRIENDS-20": {Code: "FRIENDS-20", PercentOff: 20, AllowedItemIDs: []string{"c9"}},
	}})

	_, err := v.Validate(context.Background(), "FRIENDS-20", []string{"c1", "c2"})
	require.Error(t, err)
	assert.Equal(t, "this code is not applicable to these items", err.Error())
}

func TestPromoValidator_Applicable(t *testing.T) {
	promo := &model.PromoCode{Code: "FRIENDS-20", PercentOff: 20, AllowedItemIDs: []string{"c2"}}
	v := NewPromoValidatorService(fakePromoFinder{promos: map[string]*model.PromoCode{
		"FRIENDS-20": promo,
	}})

	got, err := v.Validate(context.Background(), "FRIENDS-20", []string{"c1", "c2"})
	require.NoError(t, err)
	assert.Equal(t, promo, got)
}

func TestPromoValidator_Unrestricted(t *testing.T) {
	promo := &model.PromoCode{Code: "EVERYONE", PercentOff: 10}
	v := NewPromoValidatorService(fakePromoFinder{promos: map[string]*model.PromoCode{
		"EVERYONE": promo,
	}})

	got, err := v.Validate(context.Background(), "EVERYONE", nil)
	require.NoError(t, err)
	assert.Equal(t, promo, got)
}

func TestPromoValidator_LookupError(t *testing.T) {
	v := NewPromoValidatorService(fakePromoFinder{err: errors.New("db down")})

	_, err := v.Validate(context.Background(), "FRIENDS-20", []string{"c1"})
	assert.Error(t, err)
}
