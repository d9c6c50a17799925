package etag

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// digests counts entity tags computed for successful responses
	digests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "respond_etag_digests_total",
			Help: "Total number of entity tags computed",
		},
	)

	// notModified counts responses rewritten to 304 Not Modified
	notModified = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "respond_etag_not_modified_total",
			Help: "Total number of 304 Not Modified responses",
		},
	)

	// skipped counts responses left untouched, by reason
	skipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "respond_etag_skipped_total",
			Help: "Total number of responses without an entity tag",
		},
		[]string{"reason"}, // "status", "no_digest"
	)
)
