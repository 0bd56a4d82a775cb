package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is a single keyed blob row. Values are always JSON payloads.
type KVEntry struct {
	Key       string         `gorm:"primaryKey;size:128" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName keeps the portal's storage table apart from anything else sharing
// the database.
func (KVEntry) TableName() string {
	return "kv_entries"
}

// ConnectGorm opens the relational database behind the key/value backend.
// Postgres DSNs are detected by scheme; anything else is treated as a SQLite
// path, which keeps local development dependency-free.
func ConnectGorm(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database dsn must not be empty")
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

type gormStorage struct {
	db *gorm.DB
}

// NewGorm wraps a relational database as keyed blob storage.
func NewGorm(db *gorm.DB) (Storage, error) {
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv storage: %w", err)
	}
	return &gormStorage{db: db}, nil
}

func (s *gormStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var entry KVEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv get %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

func (s *gormStorage) Put(ctx context.Context, key string, value []byte) error {
	entry := KVEntry{Key: key, Value: datatypes.JSON(value), UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("kv put %s: %w", key, err)
	}
	return nil
}

func (s *gormStorage) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Delete(&KVEntry{}, "key = ?", key).Error
	if err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}
