package repository

import "gorm.io/gorm"

type IngestBatchRepository struct {
	db *gorm.DB
}

func NewIngestBatchRepository(db *gorm.DB) *IngestBatchRepository {
	return &IngestBatchRepository{db: db}
}

func (r *IngestBatchRepository) DB() *gorm.DB {
	return r.db
}
