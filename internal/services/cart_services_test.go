package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"
	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/storage"
)

type fakeCatalog struct {
	courses map[string]*model.Course
}

func (f fakeCatalog) GetByID(_ context.Context, id string) (*model.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, errors.New("course not found")
	}
	return c, nil
}

type fakeSales struct {
	cfg model.SaleConfig
}

func (f fakeSales) GetConfig(context.Context) (model.SaleConfig, error) {
	return f.cfg, nil
}

type chanTracker struct {
	events chan model.Event
}

func (t chanTracker) Track(_ context.Context, ev model.Event) error {
	t.events <- ev
	return nil
}

type chanSyncer struct {
	adds    chan []string
	removes chan string
}

func (s chanSyncer) Add(_ context.Context, _ string, itemIDs []string) error {
	s.adds <- itemIDs
	return nil
}

func (s chanSyncer) Remove(_ context.Context, _ string, itemID string) error {
	s.removes <- itemID
	return nil
}

func waitFor[T any](t *testing.T, ch chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		panic("unreachable")
	}
}

func newTestCartService(sale model.SaleConfig) (*CartService, chanTracker, chanSyncer) {
	tracker := chanTracker{events: make(chan model.Event, 8)}
	syncer := chanSyncer{adds: make(chan []string, 8), removes: make(chan string, 8)}
	catalog := fakeCatalog{courses: map[string]*model.Course{
		"c1": {ID: "c1", Title: "Tuscany by Rail", CreatorName: "Ada", Price: 2400, Slug: "tuscany-by-rail"},
		"c2": {ID: "c2", Title: "Walking the Camino", CreatorName: "Ben", Price: 3600, Slug: "walking-the-camino"},
	}}
	svc := NewCartService(storage.NewMemKV(), nil, catalog, fakeSales{cfg: sale}, tracker, syncer)
	return svc, tracker, syncer
}

func TestCartService_AddAndGet(t *testing.T) {
	svc, tracker, syncer := newTestCartService(model.SaleConfig{})
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "user:u1", true, "c1", "course-page"))

	ev := waitFor(t, tracker.events, "add_to_cart event")
	assert.Equal(t, model.EventAddToCart, ev.Name)
	assert.Equal(t, "user:u1", ev.OwnerID)
	assert.Equal(t, "course-page", ev.Location)
	assert.False(t, ev.SentAt.IsZero())

	ids := waitFor(t, syncer.adds, "cart sync add")
	assert.Equal(t, []string{"c1"}, ids)

	resp, err := svc.Get(ctx, "user:u1")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(2400), resp.Subtotal)
	assert.Equal(t, int64(2400), resp.Total)
	assert.Equal(t, int64(2400), resp.Items[0].AdjustedPrice)
}

func TestCartService_GuestSessionSkipsRemoteSync(t *testing.T) {
	svc, tracker, syncer := newTestCartService(model.SaleConfig{})
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "guest:abc", false, "c1", ""))

	waitFor(t, tracker.events, "add_to_cart event")
	select {
	case <-syncer.adds:
		t.Fatal("remote sync must not fire without a user session")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCartService_UnknownCourse(t *testing.T) {
	svc, _, _ := newTestCartService(model.SaleConfig{})

	err := svc.AddItem(context.Background(), "user:u1", true, "nope", "")
	assert.Error(t, err)
}

func TestCartService_SaleAffectsTotalNotSubtotal(t *testing.T) {
	svc, _, _ := newTestCartService(model.SaleConfig{Active: true, PercentOff: 30})
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "user:u1", true, "c1", ""))

	resp, err := svc.Get(ctx, "user:u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2400), resp.Subtotal)
	assert.Equal(t, int64(1600), resp.Total)
	assert.Equal(t, int64(1600), resp.Items[0].AdjustedPrice)
}

func TestCartService_RemoveSyncsDelete(t *testing.T) {
	svc, tracker, syncer := newTestCartService(model.SaleConfig{})
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "user:u1", true, "c1", ""))
	waitFor(t, tracker.events, "add event")
	waitFor(t, syncer.adds, "sync add")

	svc.RemoveItem(ctx, "user:u1", true, "c1")
	ev := waitFor(t, tracker.events, "remove event")
	assert.Equal(t, model.EventRemoveFromCart, ev.Name)
	assert.Equal(t, "c1", waitFor(t, syncer.removes, "sync remove"))

	resp, err := svc.Get(ctx, "user:u1")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestCartService_PricedItems(t *testing.T) {
	svc, _, _ := newTestCartService(model.SaleConfig{Active: true, PercentOff: 30})
	ctx := context.Background()

	_, _, _, err := svc.PricedItems(ctx, "user:u1")
	require.Error(t, err, "empty cart cannot be priced for checkout")

	require.NoError(t, svc.AddItem(ctx, "user:u1", true, "c1", ""))
	require.NoError(t, svc.AddItem(ctx, "user:u1", true, "c2", ""))

	items, total, promoCode, err := svc.PricedItems(ctx, "user:u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Empty(t, promoCode)
	// c2 first (newest), 3600 -> $25 = 2500; c1 2400 -> $16 = 1600
	assert.Equal(t, int64(2500), items[0].PriceAtPurchase)
	assert.Equal(t, int64(1600), items[1].PriceAtPurchase)
	assert.Equal(t, int64(4100), total)
}

func TestCartService_CartsAreIsolatedByOwner(t *testing.T) {
	svc, _, _ := newTestCartService(model.SaleConfig{})
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "user:u1", true, "c1", ""))
	require.NoError(t, svc.AddItem(ctx, "guest:g1", false, "c2", ""))

	u1, err := svc.Get(ctx, "user:u1")
	require.NoError(t, err)
	g1, err := svc.Get(ctx, "guest:g1")
	require.NoError(t, err)

	require.Len(t, u1.Items, 1)
	require.Len(t, g1.Items, 1)
	assert.Equal(t, "c1", u1.Items[0].ID)
	assert.Equal(t, "c2", g1.Items[0].ID)
}
