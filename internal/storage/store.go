package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/suavecitoo1998-ship-it/Santa/internal/models"
)

// wishlistKey is the well-known key the serialized list is stored under.
// It matches the key used by earlier versions of the app, so an existing
// list survives upgrades.
const wishlistKey = "santa_wishlist_v1"

// storedItem is the persisted form of a wish item. The pending flag is
// deliberately absent: an enrichment call never outlives the process, so a
// loaded item is always idle.
type storedItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       *float64 `json:"price"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Purchased   bool     `json:"purchased"`
}

// Store persists the wishlist as a single JSON blob in the database.
type Store struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewStore creates a new Store backed by the given database.
func NewStore(db *sql.DB, logger *logrus.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Load reads the persisted wishlist. A missing row, a read error or a
// corrupt blob all fall back to the seed list; Load never fails.
func (s *Store) Load() []models.WishItem {
	var blob []byte
	err := s.db.QueryRow(`SELECT data FROM wishlist WHERE key = ?`, wishlistKey).Scan(&blob)
	if err == sql.ErrNoRows {
		s.logger.Info("No saved wishlist found, starting from the seed list")
		return SeedItems()
	}
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read saved wishlist, starting from the seed list")
		return SeedItems()
	}

	var records []storedItem
	if err := json.Unmarshal(blob, &records); err != nil {
		s.logger.WithError(err).Warn("Saved wishlist is corrupt, starting from the seed list")
		return SeedItems()
	}

	items := make([]models.WishItem, len(records))
	for i, rec := range records {
		items[i] = models.WishItem{
			ID:          rec.ID,
			Title:       rec.Title,
			Price:       rec.Price,
			URL:         rec.URL,
			Description: rec.Description,
			Purchased:   rec.Purchased,
		}
	}
	return items
}

// Save serializes the given items and replaces the stored blob in a single
// statement. Last successful save wins.
func (s *Store) Save(items []models.WishItem) error {
	records := make([]storedItem, len(items))
	for i, item := range items {
		records[i] = storedItem{
			ID:          item.ID,
			Title:       item.Title,
			Price:       item.Price,
			URL:         item.URL,
			Description: item.Description,
			Purchased:   item.Purchased,
		}
	}

	blob, err := json.Marshal(records)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO wishlist (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		wishlistKey, blob, time.Now().UTC(),
	)
	return err
}
