package service

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/suavecitoo1998-ship-it/Santa/internal/metrics"
	"github.com/suavecitoo1998-ship-it/Santa/internal/models"
)

// Store persists the wishlist between sessions. Load recovers from any
// failure on its own (falling back to the seed list); Save may fail, and the
// engine only logs that — the in-memory list stays authoritative.
type Store interface {
	Load() []models.WishItem
	Save(items []models.WishItem) error
}

// Describer produces a playful description for an item label. It must
// always return usable text, never an error.
type Describer interface {
	Describe(ctx context.Context, label string) string
}

// Service is the wishlist engine. It owns the single authoritative item
// list for the session, applies every mutation under one lock, and after
// each committed mutation recomputes the total price and persists the list.
//
// Enrichment is the one asynchronous path: BeginEnrichment marks the item
// pending and fires the describe call in a goroutine; the follow-up
// mutation re-checks that the item still exists before applying the result,
// so a delete racing a slow describe call always wins.
type Service struct {
	mu     sync.Mutex
	items  []models.WishItem
	total  float64
	store  Store
	elf    Describer
	logger *logrus.Logger

	inFlight atomic.Int64
}

// New creates a Service, loads the persisted wishlist and computes the
// initial total.
func New(store Store, elf Describer, logger *logrus.Logger) *Service {
	s := &Service{
		store:  store,
		elf:    elf,
		logger: logger,
	}
	s.items = store.Load()
	s.total = models.TotalPrice(s.items)
	return s
}

// commit recomputes the total and persists the list. Must be called with
// the lock held, after every mutation. A failed save is logged and the
// session continues on the in-memory state.
func (s *Service) commit() {
	s.total = models.TotalPrice(s.items)
	if err := s.store.Save(s.items); err != nil {
		metrics.StorageSaveFailures.Inc()
		s.logger.WithError(err).Error("Failed to persist wishlist")
	}
}

func (s *Service) find(id string) *models.WishItem {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i]
		}
	}
	return nil
}

// Add creates a new item and prepends it to the list. A title that is empty
// after trimming is rejected. priceText is parsed leniently: empty input,
// non-numeric input or a negative number all mean "price unknown", never an
// error. Returns the created item, or nil when the add was rejected.
func (s *Service) Add(title, priceText, url string) *models.WishItem {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	var price *float64
	if v, err := strconv.ParseFloat(strings.TrimSpace(priceText), 64); err == nil && v >= 0 {
		price = &v
	}

	item := models.WishItem{
		ID:    uuid.NewString(),
		Title: title,
		Price: price,
		URL:   strings.TrimSpace(url),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.WishItem{item}, s.items...)
	s.commit()

	metrics.WishesAdded.Inc()
	s.logger.WithFields(logrus.Fields{
		"item_id": item.ID,
		"title":   item.Title,
	}).Info("Wish added")

	return &item
}

// Delete removes the item with the given id. A missing id is a silent
// no-op; the result of any enrichment call still in flight for the item is
// discarded when it arrives. Reports whether an item was removed.
func (s *Service) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.commit()
			metrics.WishesDeleted.Inc()
			s.logger.WithField("item_id", id).Info("Wish deleted")
			return true
		}
	}
	return false
}

// TogglePurchased flips the purchased flag on the item with the given id,
// which adds or removes its price from the total. A missing id is a silent
// no-op. Reports whether an item was toggled.
func (s *Service) TogglePurchased(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(id)
	if item == nil {
		return false
	}
	item.Purchased = !item.Purchased
	s.commit()
	return true
}

// BeginEnrichment requests a generated description for the item with the
// given id. It is a no-op when the item does not exist, is already
// purchased, or already has a call in flight — the pending flag guarantees
// at most one outstanding call per item. Reports whether a call was issued.
//
// The describe call runs in its own goroutine and carries no ordering
// relationship to later mutations; its result is applied only if the item
// still exists when it resolves.
func (s *Service) BeginEnrichment(id string) bool {
	s.mu.Lock()
	item := s.find(id)
	if item == nil || item.Purchased || item.Pending {
		s.mu.Unlock()
		return false
	}
	item.Pending = true
	title := item.Title
	s.commit()
	s.mu.Unlock()

	s.inFlight.Inc()
	go func() {
		defer s.inFlight.Dec()
		text := s.elf.Describe(context.Background(), title)
		s.applyEnrichment(id, text)
	}()
	return true
}

// applyEnrichment is the follow-up mutation for a resolved describe call.
// If the item was deleted while the call was in flight, the result is
// discarded without touching the list.
func (s *Service) applyEnrichment(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(id)
	if item == nil {
		s.logger.WithField("item_id", id).Debug("Discarding description for deleted wish")
		return
	}
	item.Description = text
	item.Pending = false
	s.commit()
}

// Items returns a snapshot copy of the wishlist, newest first.
func (s *Service) Items() []models.WishItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.WishItem, len(s.items))
	copy(items, s.items)
	return items
}

// TotalPrice returns the current total: the sum of known prices over items
// not yet purchased. Always consistent with the last committed mutation.
func (s *Service) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// InFlight returns the number of enrichment calls currently outstanding.
func (s *Service) InFlight() int64 {
	return s.inFlight.Load()
}

// Close performs a final save so the last state before exit is durable even
// if an earlier save failed.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Save(s.items)
}
