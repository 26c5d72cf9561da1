package kv

import (
	"context"
	"errors"
	"fmt"

	"opor-loyalty/internal/adapters/persistence/models"
	"opor-loyalty/internal/pkg/password"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps records in the kv_records table.
// Compare-and-swap matches on the SHA256 of the previous payload.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Get gets a record payload by key
func (s *GormStore) Get(ctx context.Context, key string) (string, error) {
	var rec models.KVRecord
	err := s.db.WithContext(ctx).Where("record_key = ?", key).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return rec.Payload, nil
}

// Set upserts a record
func (s *GormStore) Set(ctx context.Context, key, value string) error {
	rec := models.KVRecord{
		RecordKey:   key,
		Payload:     value,
		PayloadHash: password.HashToken(value),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
}

// CompareAndSwap writes next if the stored payload still equals prev
func (s *GormStore) CompareAndSwap(ctx context.Context, key, prev, next string) (bool, error) {
	if prev == "" {
		rec := models.KVRecord{
			RecordKey:   key,
			Payload:     next,
			PayloadHash: password.HashToken(next),
		}
		result := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&rec)
		if result.Error != nil {
			return false, fmt.Errorf("kv insert %s: %w", key, result.Error)
		}
		return result.RowsAffected == 1, nil
	}

	result := s.db.WithContext(ctx).
		Model(&models.KVRecord{}).
		Where("record_key = ? AND payload_hash = ?", key, password.HashToken(prev)).
		Updates(map[string]interface{}{
			"payload":      next,
			"payload_hash": password.HashToken(next),
		})
	if result.Error != nil {
		return false, fmt.Errorf("kv swap %s: %w", key, result.Error)
	}
	return result.RowsAffected == 1, nil
}

// Ping checks the database connection
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
