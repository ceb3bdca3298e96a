package store

import (
	"errors"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is the single table behind the postgres backend.
type KVEntry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// GormKV stores the document blobs in postgres, for deployments where the
// store must survive the host instead of living in a local file.
type GormKV struct {
	db *gorm.DB
}

func OpenGormKV(dsn string) (*GormKV, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, err
	}

	return &GormKV{db: db}, nil
}

func (g *GormKV) Get(key string) (string, bool) {
	var entry KVEntry
	err := g.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false
	}
	if err != nil {
		log.Printf("[STORE ERROR] get %q: %v", key, err)
		return "", false
	}
	return entry.Value, true
}

func (g *GormKV) Set(key, value string) {
	entry := KVEntry{Key: key, Value: value}
	err := g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
	if err != nil {
		log.Printf("[STORE ERROR] set %q: %v", key, err)
	}
}

func (g *GormKV) Remove(key string) {
	if err := g.db.Delete(&KVEntry{}, "key = ?", key).Error; err != nil {
		log.Printf("[STORE ERROR] remove %q: %v", key, err)
	}
}

func (g *GormKV) Keys() []string {
	var keys []string
	if err := g.db.Model(&KVEntry{}).Pluck("key", &keys).Error; err != nil {
		log.Printf("[STORE ERROR] keys: %v", err)
		return nil
	}
	return keys
}
