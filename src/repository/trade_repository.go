package repository

import (
	"context"
	"encoding/json"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/database"
	"tradejournal/src/model"
)

// TradeRepository handles read/write operations for reconstructed trades.
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new repository instance using the main read/write database.
func NewTradeRepository() *TradeRepository {
	logger.WithField("component", "TradeRepository").
		Info("Creating new TradeRepository with MainDB")

	return &TradeRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *TradeRepository) WithDB(db *gorm.DB) *TradeRepository {
	logger.WithField("component", "TradeRepository").
		Debug("Creating TradeRepository with custom DB instance")

	return &TradeRepository{db: db}
}

// TradeSearchOptions filters and paginates journal queries. Zero-valued
// fields are skipped.
type TradeSearchOptions struct {
	Symbol      *string
	Side        *string
	StrategyID  *uint
	SetupID     *uint
	BatchID     *string
	EntryAfter  *time.Time
	EntryBefore *time.Time
	Limit       int
	Offset      int
}

// SaveTrades inserts a reconciled batch of trades into the journal.
func (r *TradeRepository) SaveTrades(
	ctx context.Context,
	trades []model.Trade,
) error {

	if len(trades) == 0 {
		return nil
	}

	logger.WithFields(map[string]interface{}{
		"repo":   "TradeRepository",
		"op":     "SaveTrades",
		"trades": len(trades),
	}).Debug("Persisting reconciled trades")

	err := r.db.WithContext(ctx).CreateInBatches(trades, 100).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "SaveTrades",
		}).WithError(err).Error("Failed to persist trades")

		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":   "TradeRepository",
		"op":     "SaveTrades",
		"trades": len(trades),
	}).Info("Trades persisted successfully")

	return nil
}

// Search returns journal trades, newest entry first.
func (r *TradeRepository) Search(
	ctx context.Context,
	options TradeSearchOptions,
) ([]model.Trade, error) {

	logger.WithFields(map[string]interface{}{
		"repo":   "TradeRepository",
		"op":     "Search",
		"limit":  options.Limit,
		"offset": options.Offset,
	}).Debug("Searching trades")

	query := r.db.WithContext(ctx).Model(&model.Trade{})

	if options.Symbol != nil {
		query = query.Where("symbol = ?", *options.Symbol)
	}
	if options.Side != nil {
		query = query.Where("side = ?", *options.Side)
	}
	if options.StrategyID != nil {
		query = query.Where("strategy_id = ?", *options.StrategyID)
	}
	if options.SetupID != nil {
		query = query.Where("setup_id = ?", *options.SetupID)
	}
	if options.BatchID != nil {
		query = query.Where("batch_id = ?", *options.BatchID)
	}
	if options.EntryAfter != nil {
		query = query.Where("entry_timestamp >= ?", *options.EntryAfter)
	}
	if options.EntryBefore != nil {
		query = query.Where("entry_timestamp <= ?", *options.EntryBefore)
	}

	query = query.Order("entry_timestamp DESC, id DESC")

	if options.Limit > 0 {
		query = query.Limit(options.Limit)
	}
	if options.Offset > 0 {
		query = query.Offset(options.Offset)
	}

	var trades []model.Trade
	if err := query.Find(&trades).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "Search",
		}).WithError(err).Error("Failed to search trades")

		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "TradeRepository",
		"op":          "Search",
		"rows_return": len(trades),
	}).Info("Trades fetched")

	return trades, nil
}

// DeleteByIDs removes the given trades and reports how many rows were deleted.
func (r *TradeRepository) DeleteByIDs(
	ctx context.Context,
	ids []uint,
) (int64, error) {

	logger.WithFields(map[string]interface{}{
		"repo": "TradeRepository",
		"op":   "DeleteByIDs",
		"ids":  len(ids),
	}).Debug("Deleting trades")

	result := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&model.Trade{})

	if result.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "DeleteByIDs",
		}).WithError(result.Error).Error("Failed to delete trades")

		return 0, result.Error
	}

	logger.WithFields(map[string]interface{}{
		"repo":    "TradeRepository",
		"op":      "DeleteByIDs",
		"deleted": result.RowsAffected,
	}).Info("Trades deleted")

	return result.RowsAffected, nil
}

// NullableUint distinguishes a JSON field that was absent from one set to
// null: Set is true whenever the field appeared in the body, and a nil Value
// clears the column back to NULL.
type NullableUint struct {
	Set   bool
	Value *uint
}

func (n *NullableUint) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// NullableString is NullableUint for text columns.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// TradeAnnotations carries the journal fields a PATCH may change. Absent
// fields leave the stored value untouched; an explicit null untags.
type TradeAnnotations struct {
	StrategyID NullableUint   `json:"strategy_id"`
	SetupID    NullableUint   `json:"setup_id"`
	Notes      NullableString `json:"notes"`
}

// UpdateAnnotations tags a trade with strategy/setup/notes. Returns
// gorm.ErrRecordNotFound when the trade does not exist.
func (r *TradeRepository) UpdateAnnotations(
	ctx context.Context,
	id uint,
	annotations TradeAnnotations,
) error {

	logger.WithFields(map[string]interface{}{
		"repo":     "TradeRepository",
		"op":       "UpdateAnnotations",
		"trade_id": id,
	}).Debug("Updating trade annotations")

	values := map[string]interface{}{}
	if annotations.StrategyID.Set {
		values["strategy_id"] = annotations.StrategyID.Value
	}
	if annotations.SetupID.Set {
		values["setup_id"] = annotations.SetupID.Value
	}
	if annotations.Notes.Set {
		values["notes"] = annotations.Notes.Value
	}
	if len(values) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&model.Trade{}).
		Where("id = ?", id).
		Updates(values)

	if result.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo":     "TradeRepository",
			"op":       "UpdateAnnotations",
			"trade_id": id,
		}).WithError(result.Error).Error("Failed to update trade annotations")

		return result.Error
	}

	if result.RowsAffected == 0 {
		logger.WithFields(map[string]interface{}{
			"repo":     "TradeRepository",
			"op":       "UpdateAnnotations",
			"trade_id": id,
		}).Info("Trade not found")

		return gorm.ErrRecordNotFound
	}

	logger.WithFields(map[string]interface{}{
		"repo":     "TradeRepository",
		"op":       "UpdateAnnotations",
		"trade_id": id,
	}).Info("Trade annotations updated")

	return nil
}
