package extractor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	skippedTransactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "indexer_extract_skipped_transactions_total",
		Help: "Transactions not indexed, by reason",
	}, []string{"reason"})

	matchedTransactions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "indexer_extract_matched_transactions_total",
		Help: "Transactions that call the target package",
	})

	degradedFields = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "indexer_extract_degraded_fields_total",
		Help: "Fields stored as empty values because serialization failed",
	}, []string{"field"})
)
