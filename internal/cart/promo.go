package cart

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"
)

// PromoValidator resolves a user-entered code against the cart's item ids.
// The returned error message is shown to the user as-is.
type PromoValidator interface {
	Validate(ctx context.Context, code string, itemIDs []string) (*model.PromoCode, error)
}

// ErrPromoFormat is returned before any external validation when the entered
// code fails the structural check.
var ErrPromoFormat = errors.New("that doesn't look like a promo code")

// codes are uppercase letters, digits and dashes, 3 to 32 chars
var promoCodeRe = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{2,31}$`)

// ApplyPromo validates the entered code and, on success, attaches the
// resulting promo to the cart. On failure nothing changes and the error is
// user-visible. A newer apply (or a manual clear) supersedes an in-flight
// validation: its late result is discarded.
func (s *Store) ApplyPromo(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !promoCodeRe.MatchString(code) {
		return ErrPromoFormat
	}

	s.mu.Lock()
	s.promoGen++
	gen := s.promoGen
	ids := s.itemIDsLocked()
	s.mu.Unlock()

	// Validation is a network round trip; the lock is not held across it.
	promo, err := s.validator.Validate(ctx, code, ids)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.promoGen {
		return nil // superseded while in flight
	}
	s.promo = promo
	return nil
}

// AutoApplyPromo applies an externally supplied code/course pair, e.g. from a
// referral link. It is a no-op once the user has manually cleared a promo in
// this session, and when the same code is already applied.
func (s *Store) AutoApplyPromo(ctx context.Context, code, itemID string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !promoCodeRe.MatchString(code) {
		return ErrPromoFormat
	}

	s.mu.Lock()
	if s.promoCleared {
		s.mu.Unlock()
		return nil
	}
	if s.promo != nil && s.promo.Code == code {
		s.mu.Unlock()
		return nil
	}
	s.promoGen++
	gen := s.promoGen
	ids := s.itemIDsLocked()
	if itemID != "" && !s.containsLocked(itemID) {
		ids = append(ids, itemID)
	}
	s.mu.Unlock()

	promo, err := s.validator.Validate(ctx, code, ids)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.promoCleared || gen != s.promoGen {
		return nil
	}
	s.promo = promo
	return nil
}

// ClearPromo removes the applied promo and latches the manual-clear flag:
// auto-apply will not re-trigger for the rest of this session. The latch is
// in-memory only; it does not survive a new Store instance.
func (s *Store) ClearPromo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promo = nil
	s.promoCleared = true
	s.promoGen++
}

// Promo returns the currently applied promo code, or nil.
func (s *Store) Promo() *model.PromoCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.promo
}
