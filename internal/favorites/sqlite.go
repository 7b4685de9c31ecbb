package favorites

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// entry is one row of the favorites table
type entry struct {
	StorageKey string `gorm:"primaryKey;column:storage_key"`
	Value      []byte
	UpdatedAt  time.Time
}

func (entry) TableName() string {
	return "favorites"
}

// SQLiteStorage implements Storage on a SQLite database through gorm
type SQLiteStorage struct {
	db *gorm.DB
}

// NewSQLiteStorage opens (or creates) the database at path
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate favorites table: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Get returns the stored value, or nil when the key is absent
func (s *SQLiteStorage) Get(key string) ([]byte, error) {
	var e entry
	err := s.db.Where("storage_key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e.Value, nil
}

// Put upserts the value stored under key
func (s *SQLiteStorage) Put(key string, value []byte) error {
	e := entry{StorageKey: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		UpdateAll: true,
	}).Create(&e).Error
}

// Close closes the underlying connection pool
func (s *SQLiteStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
