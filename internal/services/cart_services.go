package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/cart"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/pricing"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/storage"
)

// EventTracker is the analytics collaborator. Advisory only.
type EventTracker interface {
	Track(ctx context.Context, ev model.Event) error
}

// CartSyncer is the remote cart-sync collaborator, used only for signed-in
// users. Advisory only.
type CartSyncer interface {
	Add(ctx context.Context, ownerID string, itemIDs []string) error
	Remove(ctx context.Context, ownerID, itemID string) error
}

// CourseGetter fetches catalog records for add-to-cart.
type CourseGetter interface {
	GetByID(ctx context.Context, id string) (*model.Course, error)
}

// SaleConfigGetter supplies the current sale state, passed explicitly into
// pricing.
type SaleConfigGetter interface {
	GetConfig(ctx context.Context) (model.SaleConfig, error)
}

// CartService owns the live cart aggregates, one per owner, and performs the
// advisory effects their mutations produce. A mutation's local state change
// and its persistence complete before the call returns; effect delivery runs
// in the background and its failures are logged and dropped.
type CartService struct {
	KV        storage.KV
	Validator cart.PromoValidator
	Catalog   CourseGetter
	Sales     SaleConfigGetter
	Tracker   EventTracker
	Syncer    CartSyncer

	mu    sync.Mutex
	carts map[string]*cart.Store
}

func NewCartService(kv storage.KV, v cart.PromoValidator, catalog CourseGetter, sales SaleConfigGetter, tracker EventTracker, syncer CartSyncer) *CartService {
	return &CartService{
		KV:        kv,
		Validator: v,
		Catalog:   catalog,
		Sales:     sales,
		Tracker:   tracker,
		Syncer:    syncer,
		carts:     make(map[string]*cart.Store),
	}
}

// StoreFor returns the owner's cart, rehydrating it from storage on first
// use. Owner keys are "user:<id>" or "guest:<session uuid>".
func (s *CartService) StoreFor(ctx context.Context, ownerID string) *cart.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.carts[ownerID]; ok {
		return st
	}
	st := cart.New(ctx, "cart:"+ownerID, s.KV, s.Validator)
	s.carts[ownerID] = st
	return st
}

// AddItem puts a course in the owner's cart. Adding a course already present
// is a no-op.
func (s *CartService) AddItem(ctx context.Context, ownerID string, hasSession bool, courseID, location string) error {
	course, err := s.Catalog.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	st := s.StoreFor(ctx, ownerID)
	effects := st.Add(ctx, course.LineItem(), location)
	s.dispatch(ownerID, hasSession, effects)
	return nil
}

// RemoveItem drops a course from the owner's cart; absent ids are a no-op.
func (s *CartService) RemoveItem(ctx context.Context, ownerID string, hasSession bool, courseID string) {
	st := s.StoreFor(ctx, ownerID)
	effects := st.Remove(ctx, courseID)
	s.dispatch(ownerID, hasSession, effects)
}

// ClearCart empties the owner's cart.
func (s *CartService) ClearCart(ctx context.Context, ownerID string) {
	s.StoreFor(ctx, ownerID).Clear(ctx)
}

// ApplyPromo validates and attaches a promo code; the returned error is the
// user-visible message.
func (s *CartService) ApplyPromo(ctx context.Context, ownerID, code string) error {
	st := s.StoreFor(ctx, ownerID)
	if err := st.ApplyPromo(ctx, code); err != nil {
		return err
	}
	if promo := st.Promo(); promo != nil {
		s.dispatch(ownerID, false, []cart.Effect{{
			Kind:  cart.EffectTrackEvent,
			Event: model.Event{Name: model.EventPromoApplied, Title: promo.Code},
		}})
	}
	return nil
}

// AutoApplyPromo applies a referral code/course pair unless the user has
// manually cleared a promo this session.
func (s *CartService) AutoApplyPromo(ctx context.Context, ownerID, code, courseID string) error {
	return s.StoreFor(ctx, ownerID).AutoApplyPromo(ctx, code, courseID)
}

// ClearPromo removes the applied promo and latches out auto-apply for the
// session.
func (s *CartService) ClearPromo(ctx context.Context, ownerID string) {
	s.StoreFor(ctx, ownerID).ClearPromo()
}

// Get assembles the priced cart view.
func (s *CartService) Get(ctx context.Context, ownerID string) (*model.CartResponse, error) {
	sale, err := s.Sales.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	st := s.StoreFor(ctx, ownerID)
	promo := st.Promo()

	items := st.Items()
	lines := make([]model.CartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, model.CartLine{
			CartLineItem:  it,
			AdjustedPrice: pricing.AdjustedPrice(it.Price, it.ID, sale, promo),
		})
	}

	return &model.CartResponse{
		Items:    lines,
		Subtotal: st.Subtotal(),
		Total:    st.Total(sale),
		Promo:    promo,
	}, nil
}

// TrackViewCart emits the view-cart analytics event.
func (s *CartService) TrackViewCart(ownerID string) {
	s.dispatch(ownerID, false, []cart.Effect{{
		Kind:  cart.EffectTrackEvent,
		Event: model.Event{Name: model.EventViewCart},
	}})
}

// PricedItems snapshots the owner's cart with adjusted prices, for checkout.
func (s *CartService) PricedItems(ctx context.Context, ownerID string) ([]model.OrderItem, int64, string, error) {
	sale, err := s.Sales.GetConfig(ctx)
	if err != nil {
		return nil, 0, "", err
	}
	st := s.StoreFor(ctx, ownerID)
	items := st.Items()
	if len(items) == 0 {
		return nil, 0, "", errors.New("cart is empty")
	}
	promo := st.Promo()
	promoCode := ""
	if promo != nil {
		promoCode = promo.Code
	}

	out := make([]model.OrderItem, 0, len(items))
	var total int64
	for _, it := range items {
		adjusted := pricing.AdjustedPrice(it.Price, it.ID, sale, promo)
		out = append(out, model.OrderItem{
			CourseID:        it.ID,
			Title:           it.Title,
			PriceAtPurchase: adjusted,
		})
		total += adjusted
	}
	return out, total, promoCode, nil
}

// dispatch performs a mutation's advisory effects in the background. Local
// state is the source of truth; a failed effect is logged and dropped, and a
// disabled collaborator (nil client) is skipped.
func (s *CartService) dispatch(ownerID string, hasSession bool, effects []cart.Effect) {
	for _, ef := range effects {
		ef := ef
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			switch ef.Kind {
			case cart.EffectTrackEvent:
				if s.Tracker == nil {
					return
				}
				ev := ef.Event
				ev.OwnerID = ownerID
				ev.SentAt = time.Now()
				if err := s.Tracker.Track(ctx, ev); err != nil {
					log.Printf("analytics: %s event dropped: %v", ev.Name, err)
				}
			case cart.EffectSyncAdd:
				if s.Syncer == nil || !hasSession {
					return
				}
				if err := s.Syncer.Add(ctx, ownerID, ef.ItemIDs); err != nil {
					log.Printf("cart sync: add for %s dropped: %v", ownerID, err)
				}
			case cart.EffectSyncRemove:
				if s.Syncer == nil || !hasSession {
					return
				}
				if err := s.Syncer.Remove(ctx, ownerID, ef.ItemID); err != nil {
					log.Printf("cart sync: remove for %s dropped: %v", ownerID, err)
				}
			}
		}()
	}
}
