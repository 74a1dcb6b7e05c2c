package repository

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/database"
	"tradejournal/src/model"
)

// ImportBatchRepository records processed uploads for auditing.
type ImportBatchRepository struct {
	db *gorm.DB
}

func NewImportBatchRepository() *ImportBatchRepository {
	return &ImportBatchRepository{db: database.MainDB}
}

func (r *ImportBatchRepository) WithDB(db *gorm.DB) *ImportBatchRepository {
	return &ImportBatchRepository{db: db}
}

func (r *ImportBatchRepository) Create(ctx context.Context, batch *model.ImportBatch) error {
	err := r.db.WithContext(ctx).Create(batch).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":     "ImportBatchRepository",
			"op":       "Create",
			"batch_id": batch.ID,
		}).WithError(err).Error("Failed to record import batch")

		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":     "ImportBatchRepository",
		"op":       "Create",
		"batch_id": batch.ID,
		"trades":   batch.TradeCount,
	}).Info("Import batch recorded")

	return nil
}
