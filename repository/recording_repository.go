package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recbox/logger"
	"recbox/model"
)

// RecordingRepository defines the interface for recording storage operations.
// Every read goes to the store; no in-memory cache is kept.
type RecordingRepository interface {
	Put(rec *model.Recording) error
	ListAll() ([]*model.Recording, error)
	Get(id string) (*model.Recording, error)
	Delete(id string) error
}

// sqliteRecordingRepository implements RecordingRepository over gorm/SQLite.
type sqliteRecordingRepository struct {
	db *gorm.DB
}

// NewSQLiteRecordingRepository creates a repository over an open database handle.
func NewSQLiteRecordingRepository(db *gorm.DB) RecordingRepository {
	return &sqliteRecordingRepository{db: db}
}

// Put upserts a recording by identifier.
func (r *sqliteRecordingRepository) Put(rec *model.Recording) error {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(rec)
	if result.Error != nil {
		return fmt.Errorf("%w: put %s: %v", model.ErrPersistenceFailed, rec.ID, result.Error)
	}
	logger.Debug("Recording stored",
		logger.String("id", rec.ID),
		logger.Int("durationSec", rec.Duration),
		logger.Int("payloadBytes", len(rec.Payload)))
	return nil
}

// ListAll returns every stored recording, newest first.
func (r *sqliteRecordingRepository) ListAll() ([]*model.Recording, error) {
	var recs []*model.Recording
	result := r.db.Order("created_at DESC").Find(&recs)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: list: %v", model.ErrPersistenceFailed, result.Error)
	}
	return recs, nil
}

// Get returns the recording for id, or nil without error when absent.
func (r *sqliteRecordingRepository) Get(id string) (*model.Recording, error) {
	rec := &model.Recording{}
	result := r.db.First(rec, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get %s: %v", model.ErrPersistenceFailed, id, result.Error)
	}
	return rec, nil
}

// Delete removes the recording for id. Deleting an unknown id is a no-op.
func (r *sqliteRecordingRepository) Delete(id string) error {
	result := r.db.Delete(&model.Recording{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("%w: delete %s: %v", model.ErrPersistenceFailed, id, result.Error)
	}
	return nil
}
