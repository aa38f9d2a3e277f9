// Package pipeline binds the extractor and the batch committer behind the
// two calls a checkpoint framework makes: process one checkpoint, commit one
// batch.
package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/checkpoint"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/connector/store"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/extractor"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/filter"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/logger"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/model"
)

const Name = "indexer_pipeline"

var ErrPackageNotSet = errors.New("package filter not set")

// Indexer collects configuration before the pipeline starts.
type Indexer struct {
	packageFilter   *checkpoint.Address
	fieldFilters    []IndexField
	checkpointRoots bool
}

func NewIndexer() *Indexer {
	return &Indexer{}
}

func (i *Indexer) SetFilterPackage(pkg checkpoint.Address) {
	i.packageFilter = &pkg
}

func (i *Indexer) SetFilterFields(fields []IndexField) {
	i.fieldFilters = append([]IndexField(nil), fields...)
}

// EnableCheckpointRoots records a Merkle root of each checkpoint's matched
// transactions in my_index_data.
func (i *Indexer) EnableCheckpointRoots() {
	i.checkpointRoots = true
}

// Build freezes the configuration. It fails when no package was set.
func (i *Indexer) Build() (*Pipeline, error) {
	if i.packageFilter == nil {
		return nil, ErrPackageNotSet
	}
	fields := i.fieldFilters
	if len(fields) == 0 {
		fields = DefaultFields()
	}

	var opts []extractor.Option
	if i.checkpointRoots {
		opts = append(opts, extractor.WithCheckpointRoots())
	}
	matcher := filter.New(*i.packageFilter)

	logger.GetLogger().WithFields(logrus.Fields{
		"pipeline": Name,
		"package":  matcher.Target(),
		"fields":   fields,
		"roots":    i.checkpointRoots,
	}).Info("pipeline configured")

	return &Pipeline{
		extractor: extractor.New(matcher, opts...),
		pkg:       *i.packageFilter,
		fields:    append([]IndexField(nil), fields...),
	}, nil
}

// Pipeline configuration is immutable and Process is safe for concurrent use.
// Commit calls should be serialized per connection by the caller.
type Pipeline struct {
	extractor *extractor.Extractor
	pkg       checkpoint.Address
	fields    []IndexField

	mu       sync.Mutex
	observed bool
	highest  uint64
}

func (p *Pipeline) Name() string {
	return Name
}

func (p *Pipeline) Package() checkpoint.Address {
	return p.pkg
}

// Fields returns the configured field filter. Record-sets are currently always
// extracted in full.
func (p *Pipeline) Fields() []IndexField {
	return append([]IndexField(nil), p.fields...)
}

// Process extracts the record-sets of one checkpoint.
func (p *Pipeline) Process(cp *checkpoint.Checkpoint) ([]model.RecordSet, error) {
	sets, err := p.extractor.Extract(cp)
	if err != nil {
		processErrors.Inc()
		return nil, err
	}
	checkpointsProcessed.Inc()
	p.observeCheckpoint(cp.SequenceNumber)
	return sets, nil
}

// observeCheckpoint keeps the last checkpoint gauge at the highest sequence
// number seen, whatever order concurrent Process calls finish in.
func (p *Pipeline) observeCheckpoint(seq uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.observed && seq <= p.highest {
		return
	}
	p.observed = true
	p.highest = seq
	lastCheckpoint.Set(float64(seq))
}

// Commit writes one batch and returns the number of new transactions rows.
func (p *Pipeline) Commit(ctx context.Context, db *gorm.DB, values []model.RecordSet) (int64, error) {
	start := time.Now()
	inserted, err := store.CommitBatch(ctx, db, values)
	commitDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		table := "none"
		var commitErr *store.CommitError
		if errors.As(err, &commitErr) && commitErr.Table != "" {
			table = commitErr.Table
		}
		commitErrors.WithLabelValues(table).Inc()
		return 0, err
	}
	committedTransactions.Add(float64(inserted))
	logger.GetLogger().WithFields(logrus.Fields{
		"records":  len(values),
		"inserted": inserted,
	}).Info("committed batch")
	return inserted, nil
}
