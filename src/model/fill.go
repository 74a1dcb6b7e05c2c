package model

// RawFill is one row of a broker performance report. The CSV contract keeps
// timestamps, duration and pnl as raw strings; prices and qty arrive numeric.
// Fills are ephemeral: they live between CSV parsing and reconciliation and
// are never persisted.
type RawFill struct {
	Symbol          string
	BoughtTimestamp string
	SoldTimestamp   string
	BuyPrice        float64
	SellPrice       float64
	Qty             uint
	Duration        string
	Pnl             string
}
