package repository

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/database"
	"tradejournal/src/model"
)

// LookupRepository serves the strategy/setup tag tables used by the journal
// dropdowns.
type LookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository() *LookupRepository {
	return &LookupRepository{db: database.MainDB}
}

func (r *LookupRepository) WithDB(db *gorm.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// ListStrategies returns all strategies ordered by name.
func (r *LookupRepository) ListStrategies(ctx context.Context) ([]model.Strategy, error) {
	var strategies []model.Strategy

	err := r.db.WithContext(ctx).
		Order("strategy_name ASC").
		Find(&strategies).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "LookupRepository",
			"op":   "ListStrategies",
		}).WithError(err).Error("Failed to fetch strategies")

		return nil, err
	}

	return strategies, nil
}

// ListSetups returns all setups ordered by name.
func (r *LookupRepository) ListSetups(ctx context.Context) ([]model.Setup, error) {
	var setups []model.Setup

	err := r.db.WithContext(ctx).
		Order("setup_name ASC").
		Find(&setups).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "LookupRepository",
			"op":   "ListSetups",
		}).WithError(err).Error("Failed to fetch setups")

		return nil, err
	}

	return setups, nil
}
