package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyValue is the GORM model backing GORMStore: one row per storage key.
type KeyValue struct {
	Key   string `gorm:"primaryKey;type:varchar(255)"`
	Value []byte
}

// TableName keeps the table name stable regardless of GORM's pluralization.
func (KeyValue) TableName() string {
	return "key_values"
}

// GORMStore is a database-backed implementation of Store.
type GORMStore struct {
	db *gorm.DB
}

// NewGORMStore creates a GORMStore and migrates its table.
func NewGORMStore(db *gorm.DB) (*GORMStore, error) {
	if err := db.AutoMigrate(&KeyValue{}); err != nil {
		return nil, fmt.Errorf("failed to migrate key_values table: %w", err)
	}
	return &GORMStore{db: db}, nil
}

// Get returns the value stored under key.
func (s *GORMStore) Get(key string) ([]byte, error) {
	var kv KeyValue
	if err := s.db.First(&kv, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return kv.Value, nil
}

// Set stores value under key, replacing any previous value.
func (s *GORMStore) Set(key string, value []byte) error {
	kv := KeyValue{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key. Deleting a missing key is not
// an error.
func (s *GORMStore) Delete(key string) error {
	if err := s.db.Delete(&KeyValue{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
