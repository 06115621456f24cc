// Package cart holds the shopping cart aggregate: an ordered, unique-by-id
// sequence of line items persisted as a single blob, with an attached promo
// code sub-component. Mutations return the advisory side effects to perform
// (analytics, remote sync) instead of performing them inline; the service
// layer dispatches those best-effort.
package cart

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/pricing"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/storage"
)

// EffectKind discriminates the advisory side effects a mutation produces.
type EffectKind string

const (
	EffectTrackEvent EffectKind = "track_event"
	EffectSyncAdd    EffectKind = "sync_add"
	EffectSyncRemove EffectKind = "sync_remove"
)

// Effect is one advisory side effect of a cart mutation. Failures performing
// an effect must never roll back or block the mutation that produced it.
type Effect struct {
	Kind    EffectKind
	Event   model.Event // EffectTrackEvent
	ItemIDs []string    // EffectSyncAdd: full item id set after the add
	ItemID  string      // EffectSyncRemove
}

// Store is the cart aggregate for one owner. Local state is the source of
// truth; the KV write happens before each mutating call returns so a reload
// immediately after observes the new state.
type Store struct {
	mu        sync.Mutex
	key       string
	kv        storage.KV
	validator PromoValidator

	items []model.CartLineItem
	open  bool

	promo        *model.PromoCode
	promoCleared bool
	promoGen     uint64
}

// New rehydrates a cart from the KV under the given key. An absent or
// unparseable blob yields an empty cart.
func New(ctx context.Context, key string, kv storage.KV, validator PromoValidator) *Store {
	s := &Store{key: key, kv: kv, validator: validator}
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		log.Printf("cart %s: rehydrate failed, starting empty: %v", key, err)
		return s
	}
	if !ok {
		return s
	}
	var items []model.CartLineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("cart %s: stored blob unparseable, starting empty: %v", key, err)
		return s
	}
	s.items = items
	return s
}

// Add prepends a course to the cart. Adding an id already present is a no-op.
func (s *Store) Add(ctx context.Context, item model.CartLineItem, location string) []Effect {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.containsLocked(item.ID) {
		return nil
	}
	s.items = append([]model.CartLineItem{item}, s.items...)
	s.persistLocked(ctx)

	return []Effect{
		{
			Kind: EffectTrackEvent,
			Event: model.Event{
				Name:     model.EventAddToCart,
				CourseID: item.ID,
				Title:    item.Title,
				Price:    item.Price,
				Location: location,
			},
		},
		{Kind: EffectSyncAdd, ItemIDs: s.itemIDsLocked()},
	}
}

// Remove drops the course with the given id. Removing an absent id is a
// no-op.
func (s *Store) Remove(ctx context.Context, itemID string) []Effect {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.containsLocked(itemID) {
		return nil
	}
	kept := s.items[:0:0]
	for _, it := range s.items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.persistLocked(ctx)

	return []Effect{
		{
			Kind:  EffectTrackEvent,
			Event: model.Event{Name: model.EventRemoveFromCart, CourseID: itemID},
		},
		{Kind: EffectSyncRemove, ItemID: itemID},
	}
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []model.CartLineItem{}
	s.persistLocked(ctx)
}

// Contains reports whether the course is in the cart.
func (s *Store) Contains(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.containsLocked(itemID)
}

// Items returns a copy of the line items, newest first.
func (s *Store) Items() []model.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemIDs returns the ids of the line items, newest first.
func (s *Store) ItemIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemIDsLocked()
}

// Subtotal is the sum of base prices, recomputed on every read.
func (s *Store) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum int64
	for _, it := range s.items {
		sum += it.Price
	}
	return sum
}

// Total is the sum of per-item adjusted prices with the given sale config
// and the currently applied promo code.
func (s *Store) Total(sale model.SaleConfig) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum int64
	for _, it := range s.items {
		sum += pricing.AdjustedPrice(it.Price, it.ID, sale, s.promo)
	}
	return sum
}

// SetOpen records the cart drawer's open/closed UI state. Not persisted.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *Store) containsLocked(itemID string) bool {
	for _, it := range s.items {
		if it.ID == itemID {
			return true
		}
	}
	return false
}

func (s *Store) itemIDsLocked() []string {
	ids := make([]string, 0, len(s.items))
	for _, it := range s.items {
		ids = append(ids, it.ID)
	}
	return ids
}

// persistLocked rewrites the full line-item sequence under the cart's key.
// Persistence is best-effort: on failure the in-memory state stays
// authoritative and the error is logged.
func (s *Store) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(s.items)
	if err != nil {
		log.Printf("cart %s: marshal failed: %v", s.key, err)
		return
	}
	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		log.Printf("cart %s: persist failed, keeping in-memory state: %v", s.key, err)
	}
}
