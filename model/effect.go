package model

import (
	"time"

	"gorm.io/datatypes"
)

type TransactionEffect struct {
	TxDigest    string         `gorm:"column:tx_digest;primaryKey;size:64"`
	EffectsJSON datatypes.JSON `gorm:"column:effects_json;not null"`
	CreatedAt   *time.Time     `gorm:"column:created_at;autoCreateTime:false;default:CURRENT_TIMESTAMP"`
}

func (TransactionEffect) TableName() string {
	return "transaction_effects"
}

type TransactionEvent struct {
	TxDigest   string         `gorm:"column:tx_digest;primaryKey;size:64"`
	EventsJSON datatypes.JSON `gorm:"column:events_json;not null"`
	CreatedAt  *time.Time     `gorm:"column:created_at;autoCreateTime:false;default:CURRENT_TIMESTAMP"`
}

func (TransactionEvent) TableName() string {
	return "transaction_events"
}
