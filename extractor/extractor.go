// Package extractor turns checkpoints into record-sets for the transactions
// that call the indexed package.
package extractor

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/checkpoint"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/filter"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/logger"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/model"
)

const (
	skipNoMoveCalls     = "no_move_calls"
	skipPackageMismatch = "package_mismatch"
)

// MalformedError reports a transaction reference that could not be parsed.
// It aborts the whole checkpoint.
type MalformedError struct {
	Checkpoint uint64
	Index      int
	Field      string
	Err        error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("checkpoint %d transaction %d: invalid %s: %v", e.Checkpoint, e.Index, e.Field, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

type Option func(*Extractor)

// WithCheckpointRoots attaches a Merkle root of the matched digests to every
// record-set of a checkpoint.
func WithCheckpointRoots() Option {
	return func(e *Extractor) {
		e.checkpointRoots = true
	}
}

// Extractor holds only read-only configuration and may be shared between
// goroutines.
type Extractor struct {
	matcher         filter.Matcher
	checkpointRoots bool
}

func New(matcher filter.Matcher, opts ...Option) *Extractor {
	e := &Extractor{matcher: matcher}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns one record-set per matching transaction, in checkpoint order.
func (e *Extractor) Extract(cp *checkpoint.Checkpoint) ([]model.RecordSet, error) {
	log := logger.GetLogger().WithFields(logrus.Fields{
		"checkpoint": cp.SequenceNumber,
		"package":    e.matcher.Target(),
	})
	log.WithField("transactions", len(cp.Transactions)).Debug("processing checkpoint")

	var results []model.RecordSet
	for i := range cp.Transactions {
		rs, ok, err := e.extractTransaction(cp.SequenceNumber, i, &cp.Transactions[i], log)
		if err != nil {
			return nil, err
		}
		if ok {
			results = append(results, rs)
		}
	}

	if e.checkpointRoots && len(results) > 0 {
		root, err := checkpointRoot(cp.SequenceNumber, results)
		if err != nil {
			degradedFields.WithLabelValues("checkpoint_root").Inc()
			log.WithError(err).Warn("could not build checkpoint root")
		} else {
			for i := range results {
				results[i].CheckpointRoot = root
			}
		}
	}

	matchedTransactions.Add(float64(len(results)))
	log.WithField("matched", len(results)).Info("finished processing checkpoint")
	return results, nil
}

func (e *Extractor) extractTransaction(seq uint64, index int, etx *checkpoint.ExecutedTransaction, log *logrus.Entry) (model.RecordSet, bool, error) {
	data := &etx.Transaction.Data

	digest, err := checkpoint.ParseDigest(etx.Transaction.Digest)
	if err != nil {
		return model.RecordSet{}, false, &MalformedError{Checkpoint: seq, Index: index, Field: "digest", Err: err}
	}
	sender, err := checkpoint.ParseAddress(data.Sender)
	if err != nil {
		return model.RecordSet{}, false, &MalformedError{Checkpoint: seq, Index: index, Field: "sender", Err: err}
	}
	txDigest := digest.String()
	log = log.WithField("tx", txDigest)

	moveCalls := data.MoveCalls()
	if len(moveCalls) == 0 {
		skippedTransactions.WithLabelValues(skipNoMoveCalls).Inc()
		log.Debug("transaction has no move calls, skipping")
		return model.RecordSet{}, false, nil
	}

	calls, err := filter.Resolve(moveCalls)
	if err != nil {
		return model.RecordSet{}, false, &MalformedError{Checkpoint: seq, Index: index, Field: "move call package", Err: err}
	}
	matched, ok := e.matcher.Match(calls)
	if !ok {
		skippedTransactions.WithLabelValues(skipPackageMismatch).Inc()
		log.WithField("move_calls", len(calls)).Debug("no call into target package, skipping")
		return model.RecordSet{}, false, nil
	}
	log.WithFields(logrus.Fields{
		"move_calls": len(calls),
		"matched":    len(matched),
	}).Debug("transaction calls target package")

	rs := model.RecordSet{
		Transaction: model.Transaction{
			TxDigest:                 txDigest,
			CheckpointSequenceNumber: int64(seq),
			Sender:                   sender.String(),
			TxKind:                   renderObject("tx_kind", projectKind(data.Kind, matched, len(calls)), log),
			GasBudget:                int64(data.GasData.Budget),
			GasPrice:                 int64(data.GasData.Price),
			SerializedTx:             renderObject("serialized_tx", &etx.Transaction, log),
		},
		Effect: model.TransactionEffect{
			TxDigest:    txDigest,
			EffectsJSON: renderObject("effects", etx.Effects, log),
		},
		InputObjects: model.InputObjects{
			TxDigest:    txDigest,
			ObjectsJSON: renderList("input_objects", nonNil(etx.InputObjects), log),
		},
		OutputObjects: model.OutputObjects{
			TxDigest:    txDigest,
			ObjectsJSON: renderList("output_objects", nonNil(etx.OutputObjects), log),
		},
	}
	if etx.Events != nil {
		rs.Event = &model.TransactionEvent{
			TxDigest:   txDigest,
			EventsJSON: renderObject("events", etx.Events, log),
		}
	}
	return rs, true, nil
}

func nonNil(objects []checkpoint.Object) []checkpoint.Object {
	if objects == nil {
		return []checkpoint.Object{}
	}
	return objects
}
