package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkpointsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "indexer_checkpoints_processed_total",
		Help: "Checkpoints extracted successfully",
	})

	processErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "indexer_process_errors_total",
		Help: "Checkpoints that failed extraction",
	})

	lastCheckpoint = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "indexer_last_processed_checkpoint",
		Help: "Highest sequence number extracted so far",
	})

	committedTransactions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "indexer_committed_transactions_total",
		Help: "Transactions rows newly inserted",
	})

	commitErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "indexer_commit_errors_total",
		Help: "Failed batch commits by table",
	}, []string{"table"})

	commitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "indexer_commit_duration_seconds",
		Help:    "Time taken to commit one batch",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})
)
