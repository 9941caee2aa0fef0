package db

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"recbox/model"
)

// Open opens the embedded recording store at dbFile, creating the parent
// directory and migrating the schema. It must succeed before any repository
// operation is attempted.
func Open(dbFile string) (*gorm.DB, error) {
	if dir := filepath.Dir(dbFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create data directory: %v", model.ErrStorageUnavailable, err)
		}
	}

	gdb, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", model.ErrStorageUnavailable, dbFile, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}
	// SQLite allows a single writer; serialize access instead of queueing
	// on database locks.
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(&model.Recording{}); err != nil {
		return nil, fmt.Errorf("%w: migrate schema: %v", model.ErrStorageUnavailable, err)
	}
	return gdb, nil
}

// Close closes the underlying connection. Safe to call with a nil handle.
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
