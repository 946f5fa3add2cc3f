package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WishesAdded counts items added to the wishlist.
	WishesAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "santa_wishes_added_total",
		Help: "Number of items added to the wishlist.",
	})

	// WishesDeleted counts items removed from the wishlist.
	WishesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "santa_wishes_deleted_total",
		Help: "Number of items removed from the wishlist.",
	})

	// EnrichmentRequests counts description requests issued to the elf client.
	EnrichmentRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "santa_enrichment_requests_total",
		Help: "Number of description requests issued.",
	})

	// EnrichmentFallbacks counts description requests answered with a
	// fallback string instead of generated text, by failure reason.
	EnrichmentFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "santa_enrichment_fallbacks_total",
		Help: "Number of description requests that fell back to fixed text.",
	}, []string{"reason"})

	// StorageSaveFailures counts failed wishlist persistence writes.
	StorageSaveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "santa_storage_save_failures_total",
		Help: "Number of failed wishlist saves.",
	})
)
