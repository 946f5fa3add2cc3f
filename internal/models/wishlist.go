package models

// WishItem represents one gift request on the wishlist.
type WishItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       *float64 `json:"price"` // nil means the price is unknown
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Purchased   bool     `json:"purchased"`
	// Pending is true only while a description request is in flight for
	// this item. It is never persisted as true.
	Pending bool `json:"pending"`
}

// TotalPrice returns the sum of prices over all items that have not been
// purchased yet. Items with an unknown price count as zero.
func TotalPrice(items []WishItem) float64 {
	var total float64
	for _, item := range items {
		if item.Purchased || item.Price == nil {
			continue
		}
		total += *item.Price
	}
	return total
}

// NewPrice returns a pointer to the given price value. Convenience for
// constructing items with a known price.
func NewPrice(v float64) *float64 {
	return &v
}
