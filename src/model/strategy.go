package model

import "time"

// Strategy is a user-defined playbook label that trades can be tagged with
// from the journal page (e.g. "ORB breakout", "VWAP fade").
type Strategy struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex;column:strategy_name" json:"strategy_name"`
	Color     string    `gorm:"size:20" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Strategy) TableName() string {
	return "strategies"
}

// Setup is a finer-grained tag than Strategy: the market condition that made
// the trade valid (e.g. "gap and go", "failed breakdown").
type Setup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex;column:setup_name" json:"setup_name"`
	Color     string    `gorm:"size:20" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setup) TableName() string {
	return "setups"
}
