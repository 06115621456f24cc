package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/storage"
)

const testKey = "cart:test"

func lineItem(id string, price int64) model.CartLineItem {
	return model.CartLineItem{
		ID:          id,
		Title:       "Course " + id,
		CreatorName: "Someone",
		Price:       price,
		Slug:        "course-" + id,
	}
}

func newTestStore(t *testing.T) (*Store, *storage.MemKV) {
	t.Helper()
	kv := storage.NewMemKV()
	return New(context.Background(), testKey, kv, nil), kv
}

func TestAdd_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	effects := s.Add(ctx, lineItem("c1", 2400), "course-page")
	require.Len(t, effects, 2)
	assert.Equal(t, EffectTrackEvent, effects[0].Kind)
	assert.Equal(t, model.EventAddToCart, effects[0].Event.Name)
	assert.Equal(t, "course-page", effects[0].Event.Location)
	assert.Equal(t, EffectSyncAdd, effects[1].Kind)
	assert.Equal(t, []string{"c1"}, effects[1].ItemIDs)

	// second add of the same id is a no-op with no effects
	effects = s.Add(ctx, lineItem("c1", 2400), "course-page")
	assert.Nil(t, effects)
	assert.Len(t, s.Items(), 1)
}

func TestAdd_PrependsNewest(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, lineItem("c1", 2400), "")
	s.Add(ctx, lineItem("c2", 3600), "")

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "c2", items[0].ID)
	assert.Equal(t, "c1", items[1].ID)
}

func TestRemove(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, lineItem("c1", 2400), "")
	s.Add(ctx, lineItem("c2", 3600), "")

	effects := s.Remove(ctx, "c1")
	require.Len(t, effects, 2)
	assert.Equal(t, model.EventRemoveFromCart, effects[0].Event.Name)
	assert.Equal(t, EffectSyncRemove, effects[1].Kind)
	assert.Equal(t, "c1", effects[1].ItemID)
	assert.False(t, s.Contains("c1"))
	assert.True(t, s.Contains("c2"))
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, lineItem("c1", 2400), "")
	effects := s.Remove(ctx, "nope")
	assert.Nil(t, effects)
	assert.Len(t, s.Items(), 1)
}

func TestSubtotalAndTotal(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	assert.Equal(t, int64(0), s.Subtotal())

	s.Add(ctx, lineItem("c1", 2400), "")
	assert.Equal(t, int64(2400), s.Subtotal())
	assert.Equal(t, int64(2400), s.Total(model.SaleConfig{}))

	// a 30% global sale changes the total but not the subtotal
	sale := model.SaleConfig{Active: true, PercentOff: 30}
	assert.Equal(t, int64(1600), s.Total(sale))
	assert.Equal(t, int64(2400), s.Subtotal())
}

func TestTotal_ReflectsCurrentPromo(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, lineItem("c1", 2400), "")
	s.Add(ctx, lineItem("c2", 1200), "")
	assert.Equal(t, int64(3600), s.Total(model.SaleConfig{}))

	s.validator = fakeValidator{promo: &model.PromoCode{
		Code:           "HALF",
		PercentOff:     50,
		AllowedItemIDs: []string{"c1"},
	}}
	require.NoError(t, s.ApplyPromo(ctx, "HALF"))

	// c1 discounted to 1200, c2 not in the allow-list stays 1200
	assert.Equal(t, int64(2400), s.Total(model.SaleConfig{}))

	s.ClearPromo()
	assert.Equal(t, int64(3600), s.Total(model.SaleConfig{}))
}

func TestClear_PersistsEmptySequence(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, lineItem("c1", 2400), "")
	s.Clear(ctx)

	assert.Equal(t, int64(0), s.Subtotal())
	raw, ok, err := kv.Get(ctx, testKey)
	require.NoError(t, err)
	require.True(t, ok)
	var items []model.CartLineItem
	require.NoError(t, json.Unmarshal(raw, &items))
	assert.Empty(t, items)
}

func TestRehydrate(t *testing.T) {
	kv := storage.NewMemKV()
	ctx := context.Background()

	s := New(ctx, testKey, kv, nil)
	s.Add(ctx, lineItem("c1", 2400), "")
	s.Add(ctx, lineItem("c2", 3600), "")

	// a fresh instance over the same KV sees the persisted sequence
	reloaded := New(ctx, testKey, kv, nil)
	items := reloaded.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "c2", items[0].ID)
	assert.Equal(t, int64(6000), reloaded.Subtotal())
}

func TestRehydrate_UnparseableBlobStartsEmpty(t *testing.T) {
	kv := storage.NewMemKV()
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, testKey, []byte("{not json")))

	s := New(ctx, testKey, kv, nil)
	assert.Empty(t, s.Items())
}

func TestPersist_FailureKeepsInMemoryState(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, testKey, failingKV{}, nil)

	s.Add(ctx, lineItem("c1", 2400), "")
	assert.True(t, s.Contains("c1"))
	assert.Equal(t, int64(2400), s.Subtotal())
}

func TestOpenFlag(t *testing.T) {
	s, _ := newTestStore(t)
	assert.False(t, s.IsOpen())
	s.SetOpen(true)
	assert.True(t, s.IsOpen())
}
