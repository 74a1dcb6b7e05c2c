package model

import "time"

// ImportBatch records one processed upload for auditing. Every trade emitted
// by the reconciliation engine carries the batch ID it came from.
type ImportBatch struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Filename   string    `gorm:"size:255" json:"filename"`
	Source     string    `gorm:"size:50" json:"source"` // "upload" | "cli"
	FillCount  int       `json:"fill_count"`
	TradeCount int       `json:"trade_count"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ImportBatch) TableName() string {
	return "import_batches"
}
