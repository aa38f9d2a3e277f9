package model

import (
	"time"

	"gorm.io/datatypes"
)

type Transaction struct {
	TxDigest                 string         `gorm:"column:tx_digest;primaryKey;size:64"`
	CheckpointSequenceNumber int64          `gorm:"column:checkpoint_sequence_number;not null"`
	Sender                   string         `gorm:"column:sender;not null;size:66"`
	TxKind                   datatypes.JSON `gorm:"column:tx_kind;not null"`
	GasBudget                int64          `gorm:"column:gas_budget;not null"`
	GasPrice                 int64          `gorm:"column:gas_price;not null"`
	SerializedTx             datatypes.JSON `gorm:"column:serialized_tx;not null"`
	CreatedAt                *time.Time     `gorm:"column:created_at;autoCreateTime:false;default:CURRENT_TIMESTAMP"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// CheckpointTransaction maps a transaction to the digests of its parts. The
// table is created with the schema but not populated by the pipeline.
type CheckpointTransaction struct {
	TxDigest                 string     `gorm:"column:tx_digest;primaryKey;size:64"`
	TransactionDigest        string     `gorm:"column:transaction_digest;not null;size:64"`
	TransactionEffectsDigest *string    `gorm:"column:transaction_effects_digest;size:64"`
	TransactionEventsDigest  *string    `gorm:"column:transaction_events_digest;size:64"`
	InputObjectsDigest       *string    `gorm:"column:input_objects_digest;size:64"`
	OutputObjectsDigest      *string    `gorm:"column:output_objects_digest;size:64"`
	CreatedAt                *time.Time `gorm:"column:created_at;autoCreateTime:false;default:CURRENT_TIMESTAMP"`
}

func (CheckpointTransaction) TableName() string {
	return "checkpoint_transactions"
}
