package model

// MyIndexData is the extension table for custom indexing. The pipeline uses
// it for checkpoint Merkle roots when they are enabled.
type MyIndexData struct {
	ID                       string `gorm:"column:id;primaryKey;size:128"`
	CheckpointSequenceNumber int64  `gorm:"column:checkpoint_sequence_number;not null"`
}

func (MyIndexData) TableName() string {
	return "my_index_data"
}
