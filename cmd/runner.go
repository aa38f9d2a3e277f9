package main

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/checkpoint"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/loader"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/model"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/pipeline"
)

// runner feeds checkpoints to the pipeline: each window of batchSize
// checkpoints is extracted concurrently and committed as one batch.
type runner struct {
	pipeline  *pipeline.Pipeline
	db        *gorm.DB
	batchSize int
	workers   int
}

type runStats struct {
	checkpoints int
	recordSets  int
	inserted    int64
}

func (r *runner) run(ctx context.Context, src io.Reader, after *uint64) (runStats, error) {
	var stats runStats
	window := make([]*checkpoint.Checkpoint, 0, r.batchSize)

	flush := func() error {
		if len(window) == 0 {
			return nil
		}
		sets, err := r.processWindow(window)
		if err != nil {
			return err
		}
		inserted, err := r.pipeline.Commit(ctx, r.db, sets)
		if err != nil {
			return err
		}
		stats.checkpoints += len(window)
		stats.recordSets += len(sets)
		stats.inserted += inserted
		window = window[:0]
		return nil
	}

	err := loader.ScanCheckpoints(src, after, func(cp *checkpoint.Checkpoint) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		window = append(window, cp)
		if len(window) >= r.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return stats, err
	}
	return stats, flush()
}

// processWindow extracts checkpoints in parallel and concatenates the
// results in checkpoint order.
func (r *runner) processWindow(window []*checkpoint.Checkpoint) ([]model.RecordSet, error) {
	workers := r.workers
	if workers < 1 {
		workers = 1
	}
	results := make([][]model.RecordSet, len(window))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, cp := range window {
		i, cp := i, cp
		g.Go(func() error {
			sets, err := r.pipeline.Process(cp)
			if err != nil {
				return err
			}
			results[i] = sets
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var sets []model.RecordSet
	for i := range results {
		sets = append(sets, results[i]...)
	}
	return sets, nil
}
