// Package kvstore persists whole collections as JSON blobs keyed by collection
// name, backed by a single sqlite table.
package kvstore

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Collection is one persisted blob. The payload is always the JSON encoding of
// the full collection; every save is a full overwrite.
type Collection struct {
	Name      string `gorm:"primaryKey;size:64"`
	Payload   []byte `gorm:"type:blob"`
	UpdatedAt time.Time
}

func (Collection) TableName() string {
	return "collections"
}

type Store struct {
	db *gorm.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&Collection{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Blob store initialized at %s", dbPath)

	return &Store{db: db}, nil
}

// Ping verifies the underlying database connection is alive.
func (s *Store) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Load returns the stored payload for the named collection, or nil when the
// collection has never been saved.
func (s *Store) Load(name string) ([]byte, error) {
	var col Collection
	err := s.db.Where("name = ?", name).First(&col).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return col.Payload, nil
}

// Save overwrites the named collection with payload.
func (s *Store) Save(name string, payload []byte) error {
	var col Collection
	result := s.db.Where("name = ?", name).First(&col)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		col = Collection{Name: name, Payload: payload}
		return s.db.Create(&col).Error
	} else if result.Error != nil {
		return result.Error
	}

	col.Payload = payload
	return s.db.Save(&col).Error
}
