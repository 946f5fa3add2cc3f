package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suavecitoo1998-ship-it/Santa/internal/models"
)

// memStore is an in-memory Store that records every saved snapshot.
type memStore struct {
	mu       sync.Mutex
	initial  []models.WishItem
	saved    [][]models.WishItem
	failSave bool
}

func (m *memStore) Load() []models.WishItem {
	items := make([]models.WishItem, len(m.initial))
	copy(items, m.initial)
	return items
}

func (m *memStore) Save(items []models.WishItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errors.New("quota exceeded")
	}
	snap := make([]models.WishItem, len(items))
	copy(snap, items)
	m.saved = append(m.saved, snap)
	return nil
}

func (m *memStore) lastSaved() []models.WishItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saved) == 0 {
		return nil
	}
	return m.saved[len(m.saved)-1]
}

// stubElf is a Describer whose resolution can be held back with a gate
// channel, so tests can interleave mutations with an in-flight call.
type stubElf struct {
	mu    sync.Mutex
	calls int
	gate  chan struct{}
	text  string
}

func (e *stubElf) Describe(ctx context.Context, label string) string {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.gate != nil {
		<-e.gate
	}
	return e.text
}

func (e *stubElf) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func newTestService(store *memStore, elf *stubElf) *Service {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return New(store, elf, l)
}

func findItem(t *testing.T, svc *Service, id string) *models.WishItem {
	t.Helper()
	for _, item := range svc.Items() {
		if item.ID == id {
			return &item
		}
	}
	return nil
}

func waitForIdle(t *testing.T, svc *Service) {
	t.Helper()
	require.Eventually(t, func() bool {
		return svc.InFlight() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNewLoadsFromStore(t *testing.T) {
	store := &memStore{initial: []models.WishItem{
		{ID: "a", Title: "Sled", Price: models.NewPrice(30)},
		{ID: "b", Title: "Mittens", Price: models.NewPrice(10), Purchased: true},
	}}
	svc := newTestService(store, &stubElf{})

	assert.Len(t, svc.Items(), 2)
	assert.Equal(t, 30.0, svc.TotalPrice())
}

func TestAddPrependsAndRecomputesTotal(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, &stubElf{})

	first := svc.Add("Lego", "40", "http://example.com/lego")
	require.NotNil(t, first)
	second := svc.Add("Scarf", "12.5", "")
	require.NotNil(t, second)

	items := svc.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Scarf", items[0].Title, "new items go to the front")
	assert.Equal(t, "Lego", items[1].Title)
	assert.Equal(t, 52.5, svc.TotalPrice())

	assert.NotEqual(t, items[0].ID, items[1].ID)
	assert.False(t, items[0].Purchased)
	assert.Empty(t, items[0].Description)
	assert.False(t, items[0].Pending)
}

func TestAddRejectsEmptyTitle(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, &stubElf{})

	assert.Nil(t, svc.Add("", "10", "http://x"))
	assert.Nil(t, svc.Add("   ", "10", ""))
	assert.Empty(t, svc.Items())
	assert.Zero(t, svc.TotalPrice())
	assert.Empty(t, store.saved, "a rejected add must not persist anything")
}

func TestAddParsesPriceLeniently(t *testing.T) {
	svc := newTestService(&memStore{}, &stubElf{})

	tests := []struct {
		name      string
		priceText string
		want      *float64
	}{
		{"empty", "", nil},
		{"non-numeric", "cheap", nil},
		{"negative", "-5", nil},
		{"integer", "20", models.NewPrice(20)},
		{"decimal", "19.99", models.NewPrice(19.99)},
		{"padded", " 15 ", models.NewPrice(15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := svc.Add("Gift "+tt.name, tt.priceText, "")
			require.NotNil(t, item)
			assert.Equal(t, tt.want, item.Price)
		})
	}
}

func TestTotalPriceAfterEveryOperation(t *testing.T) {
	svc := newTestService(&memStore{}, &stubElf{})

	check := func() {
		t.Helper()
		assert.Equal(t, models.TotalPrice(svc.Items()), svc.TotalPrice())
	}

	a := svc.Add("Bike", "100", "")
	check()
	b := svc.Add("Book", "", "")
	check()
	c := svc.Add("Ball", "7", "")
	check()
	svc.TogglePurchased(a.ID)
	check()
	assert.Equal(t, 7.0, svc.TotalPrice())
	svc.Delete(c.ID)
	check()
	assert.Zero(t, svc.TotalPrice())
	svc.TogglePurchased(a.ID)
	check()
	assert.Equal(t, 100.0, svc.TotalPrice())
	svc.Delete(b.ID)
	check()
}

func TestDeleteMissingIDIsNoOp(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, &stubElf{})
	svc.Add("Drum", "25", "")

	saves := len(store.saved)
	assert.False(t, svc.Delete("no-such-id"))
	assert.Len(t, svc.Items(), 1)
	assert.Len(t, store.saved, saves, "a no-op must not persist")
}

func TestTogglePurchasedTwiceRestoresState(t *testing.T) {
	svc := newTestService(&memStore{}, &stubElf{})
	item := svc.Add("Train set", "60", "")
	before := svc.TotalPrice()

	require.True(t, svc.TogglePurchased(item.ID))
	assert.Zero(t, svc.TotalPrice())
	require.True(t, svc.TogglePurchased(item.ID))

	assert.Equal(t, before, svc.TotalPrice())
	assert.False(t, findItem(t, svc, item.ID).Purchased)
}

func TestTogglePurchasedMissingIDIsNoOp(t *testing.T) {
	svc := newTestService(&memStore{}, &stubElf{})
	assert.False(t, svc.TogglePurchased("ghost"))
}

func TestBeginEnrichmentAppliesDescription(t *testing.T) {
	elf := &stubElf{text: "You were SO good this year!"}
	svc := newTestService(&memStore{}, elf)
	item := svc.Add("Puzzle", "14", "")

	require.True(t, svc.BeginEnrichment(item.ID))
	waitForIdle(t, svc)

	got := findItem(t, svc, item.ID)
	require.NotNil(t, got)
	assert.Equal(t, "You were SO good this year!", got.Description)
	assert.False(t, got.Pending)
	assert.Equal(t, 1, elf.callCount())
}

func TestBeginEnrichmentSetsPendingWhileInFlight(t *testing.T) {
	elf := &stubElf{text: "soon", gate: make(chan struct{})}
	svc := newTestService(&memStore{}, elf)
	item := svc.Add("Robot", "80", "")

	require.True(t, svc.BeginEnrichment(item.ID))
	assert.True(t, findItem(t, svc, item.ID).Pending)
	assert.Equal(t, 80.0, svc.TotalPrice(), "pending must not change the total")

	close(elf.gate)
	waitForIdle(t, svc)
	assert.False(t, findItem(t, svc, item.ID).Pending)
}

func TestBeginEnrichmentGuards(t *testing.T) {
	elf := &stubElf{text: "x"}
	svc := newTestService(&memStore{}, elf)

	// Missing id: no call issued.
	assert.False(t, svc.BeginEnrichment("missing"))
	assert.Equal(t, 0, elf.callCount())

	// Purchased item: no call issued.
	item := svc.Add("Socks", "5", "")
	svc.TogglePurchased(item.ID)
	assert.False(t, svc.BeginEnrichment(item.ID))
	assert.Equal(t, 0, elf.callCount())
}

func TestBeginEnrichmentDuplicateCallGuard(t *testing.T) {
	elf := &stubElf{text: "one", gate: make(chan struct{})}
	svc := newTestService(&memStore{}, elf)
	item := svc.Add("Kite", "9", "")

	require.True(t, svc.BeginEnrichment(item.ID))
	assert.False(t, svc.BeginEnrichment(item.ID), "second call while pending must be a no-op")

	close(elf.gate)
	waitForIdle(t, svc)
	assert.Equal(t, 1, elf.callCount(), "at most one underlying call may be issued")
}

func TestDeleteDuringEnrichmentDiscardsResult(t *testing.T) {
	elf := &stubElf{text: "too late", gate: make(chan struct{})}
	store := &memStore{}
	svc := newTestService(store, elf)
	item := svc.Add("Drone", "120", "")

	require.True(t, svc.BeginEnrichment(item.ID))
	require.True(t, svc.Delete(item.ID), "the delete must not wait for the call")
	assert.Zero(t, svc.TotalPrice())

	close(elf.gate)
	waitForIdle(t, svc)

	assert.Nil(t, findItem(t, svc, item.ID), "the late result must not resurrect the item")
	for _, saved := range store.saved[len(store.saved)-1:] {
		for _, it := range saved {
			assert.NotEqual(t, item.ID, it.ID)
		}
	}
}

func TestSaveFailureKeepsSessionUsable(t *testing.T) {
	store := &memStore{failSave: true}
	svc := newTestService(store, &stubElf{})

	item := svc.Add("Guitar", "200", "")
	require.NotNil(t, item)
	assert.Len(t, svc.Items(), 1)
	assert.Equal(t, 200.0, svc.TotalPrice())
}

func TestCloseFlushesFinalState(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, &stubElf{})
	item := svc.Add("Sleigh bells", "18", "")

	require.NoError(t, svc.Close())
	last := store.lastSaved()
	require.Len(t, last, 1)
	assert.Equal(t, item.ID, last[0].ID)
}
