package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Key-value records
// ============================================================

// KVRecord represents kv_records table.
// One row per collection; Payload holds the whole JSON document.
type KVRecord struct {
	RecordKey   string    `gorm:"column:record_key;primaryKey;size:128" json:"record_key"`
	Payload     string    `gorm:"column:payload;type:longtext;not null" json:"payload"`
	PayloadHash string    `gorm:"column:payload_hash;size:64;not null;index" json:"-"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (KVRecord) TableName() string {
	return "kv_records"
}

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&KVRecord{},
	)
}
