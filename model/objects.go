package model

import (
	"time"

	"gorm.io/datatypes"
)

type InputObjects struct {
	TxDigest    string         `gorm:"column:tx_digest;primaryKey;size:64"`
	ObjectsJSON datatypes.JSON `gorm:"column:objects_json;not null"`
	CreatedAt   *time.Time     `gorm:"column:created_at;autoCreateTime:false;default:CURRENT_TIMESTAMP"`
}

func (InputObjects) TableName() string {
	return "input_objects"
}

type OutputObjects struct {
	TxDigest    string         `gorm:"column:tx_digest;primaryKey;size:64"`
	ObjectsJSON datatypes.JSON `gorm:"column:objects_json;not null"`
	CreatedAt   *time.Time     `gorm:"column:created_at;autoCreateTime:false;default:CURRENT_TIMESTAMP"`
}

func (OutputObjects) TableName() string {
	return "output_objects"
}
