package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	logger2 "github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/logger"
	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/model"
)

// transactionParams is the number of bind parameters one transactions row
// takes; created_at is left to the column default.
const transactionParams = 7

// MaxBatchRecordSets is the largest batch CommitBatch accepts. All
// transactions rows go out in one INSERT and Postgres and MySQL both cap a
// statement at 65535 bind parameters.
const MaxBatchRecordSets = 65535 / transactionParams

var ErrBatchTooLarge = errors.New("batch exceeds the bind parameter limit")

// CommitBatch writes a batch of record-sets in one database transaction and
// returns how many transactions rows were newly inserted. Rows that already
// exist are left untouched, so redelivering a batch is harmless. Any failure
// rolls back the whole batch.
func CommitBatch(ctx context.Context, db *gorm.DB, sets []model.RecordSet) (int64, error) {
	if len(sets) == 0 {
		return 0, nil
	}
	if len(sets) > MaxBatchRecordSets {
		return 0, &CommitError{
			Op:    "insert",
			Table: model.Transaction{}.TableName(),
			Err:   fmt.Errorf("%w: %d record-sets, at most %d", ErrBatchTooLarge, len(sets), MaxBatchRecordSets),
		}
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, &CommitError{Op: "begin", Err: tx.Error}
	}

	inserted, err := commitRecordSets(tx, sets)
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return 0, &CommitError{Op: "commit", Err: err}
	}
	return inserted, nil
}

func commitRecordSets(tx *gorm.DB, sets []model.RecordSet) (int64, error) {
	var logger = logger2.GetLogger()

	transactions := make([]model.Transaction, 0, len(sets))
	for i := range sets {
		transactions = append(transactions, sets[i].Transaction)
	}
	inserted, err := insertIgnore(tx, &transactions)
	if err != nil {
		return 0, newInsertError(model.Transaction{}.TableName(), "", err)
	}
	logger.Debugf("inserted %d of %d transaction records", inserted, len(transactions))

	for i := range sets {
		// Copies keep store-filled columns out of the caller's record-sets.
		rs := sets[i]
		digest := rs.TxDigest()

		if _, err := insertIgnore(tx, &rs.Effect); err != nil {
			return 0, newInsertError(rs.Effect.TableName(), digest, err)
		}
		if rs.Event != nil {
			event := *rs.Event
			if _, err := insertIgnore(tx, &event); err != nil {
				return 0, newInsertError(event.TableName(), digest, err)
			}
		}
		if _, err := insertIgnore(tx, &rs.InputObjects); err != nil {
			return 0, newInsertError(rs.InputObjects.TableName(), digest, err)
		}
		if _, err := insertIgnore(tx, &rs.OutputObjects); err != nil {
			return 0, newInsertError(rs.OutputObjects.TableName(), digest, err)
		}
	}

	if roots := distinctRoots(sets); len(roots) > 0 {
		if _, err := insertIgnore(tx, &roots); err != nil {
			return 0, newInsertError(model.MyIndexData{}.TableName(), "", err)
		}
	}
	return inserted, nil
}

// insertIgnore inserts rows and ignores primary key conflicts. rows is a
// pointer to a model or to a slice of models.
func insertIgnore[T any](tx *gorm.DB, rows *T) (int64, error) {
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(rows)
	return result.RowsAffected, result.Error
}

func distinctRoots(sets []model.RecordSet) []model.MyIndexData {
	var roots []model.MyIndexData
	seen := make(map[string]bool)
	for i := range sets {
		root := sets[i].CheckpointRoot
		if root == nil || seen[root.ID] {
			continue
		}
		seen[root.ID] = true
		roots = append(roots, *root)
	}
	return roots
}
