package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_search_queries_total",
		Help: "Listing search queries by outcome.",
	}, []string{"outcome"})

	ImageUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listing_image_uploads_total",
		Help: "Per-file image upload attempts by outcome.",
	}, []string{"outcome"})

	ListingsPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listings_published_total",
		Help: "Listings successfully created through the publish flow.",
	})
)

const (
	OutcomeOK             = "ok"
	OutcomeError          = "error"
	OutcomeUploadFailed   = "upload_failed"
	OutcomeMetadataFailed = "metadata_failed"
)
