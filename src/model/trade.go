package model

import "time"

const (
	SideLong  = "long"
	SideShort = "short"
)

// Trade represents one reconstructed round-trip trade, merged from one or
// more partial fills of the same order.
type Trade struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	BatchID        string    `gorm:"size:36;index" json:"batch_id"`
	Symbol         string    `gorm:"size:30;index" json:"symbol"`
	Side           string    `gorm:"size:10;not null" json:"side"`
	Qty            uint      `json:"qty"`
	EntryTimestamp time.Time `gorm:"index" json:"entry_timestamp"`
	ExitTimestamp  time.Time `json:"exit_timestamp"`
	EntryPrice     float64   `json:"entry_price"`
	ExitPrice      float64   `json:"exit_price"`
	Duration       string    `gorm:"size:30" json:"duration"`
	Pnl            float64   `json:"pnl"`
	FillCount      int       `json:"fill_count"`

	// Journal annotations, set after import via PATCH.
	StrategyID *uint  `gorm:"index" json:"strategy_id,omitempty"`
	SetupID    *uint  `gorm:"index" json:"setup_id,omitempty"`
	Notes      string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName allows you to control the exact table name for trades.
func (Trade) TableName() string {
	return "trades"
}
