package store

import (
	"database/sql"

	"gorm.io/gorm"

	"github.com/Project-Magma-Monorepo/sui-indexer-checkpointTx/model"
)

// GetMaxCheckpointFromDB returns the highest checkpoint with a stored
// transaction, or nil when nothing has been indexed yet. Checkpoints without
// matches leave no trace, so this is a lower bound for resuming.
func GetMaxCheckpointFromDB(db *gorm.DB) (*uint64, error) {
	exist, err := JudgeTableExistOrNot(db, model.Transaction{}.TableName())
	if err != nil || !exist {
		return nil, err
	}
	var maxSeq sql.NullInt64
	row := db.Model(&model.Transaction{}).Select("MAX(checkpoint_sequence_number)").Row()
	if err := row.Scan(&maxSeq); err != nil {
		return nil, err
	}
	if !maxSeq.Valid {
		return nil, nil
	}
	seq := uint64(maxSeq.Int64)
	return &seq, nil
}
