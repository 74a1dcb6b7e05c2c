package reconcile

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/src/model"
)

func TestReconcileMergesPartialFills(t *testing.T) {
	rows := []model.RawFill{
		{
			Symbol:          "MNQZ5",
			BoughtTimestamp: "01/02/2025 09:30:00",
			SoldTimestamp:   "01/02/2025 09:35:00",
			BuyPrice:        100,
			SellPrice:       101,
			Qty:             1,
			Duration:        "5m",
			Pnl:             "$10.00",
		},
		{
			Symbol:          "MNQZ5",
			BoughtTimestamp: "01/02/2025 09:30:00",
			SoldTimestamp:   "01/02/2025 09:35:00",
			BuyPrice:        100,
			SellPrice:       101,
			Qty:             2,
			Duration:        "5m",
			Pnl:             "$20.00",
		},
	}

	trades, err := Reconcile(rows)
	require.NoError(t, err)
	require.Len(t, trades, 1)

	trade := trades[0]
	assert.Equal(t, "MNQ", trade.Symbol)
	assert.Equal(t, model.SideLong, trade.Side)
	assert.Equal(t, uint(3), trade.Qty)
	assert.Equal(t, 30.0, trade.Pnl)
	assert.Equal(t, "5m", trade.Duration)
	assert.Equal(t, 100.0, trade.EntryPrice)
	assert.Equal(t, 101.0, trade.ExitPrice)
	assert.Equal(t, time.Date(2025, time.January, 2, 9, 30, 0, 0, time.UTC), trade.EntryTimestamp)
	assert.Equal(t, time.Date(2025, time.January, 2, 9, 35, 0, 0, time.UTC), trade.ExitTimestamp)
	assert.Equal(t, 2, trade.FillCount)
}

func TestReconcileShortSide(t *testing.T) {
	// Bought after sold: the position was opened by the sell leg.
	rows := []model.RawFill{
		{
			Symbol:          "ESH6",
			BoughtTimestamp: "01/02/2025 10:05:00",
			SoldTimestamp:   "01/02/2025 10:00:00",
			BuyPrice:        4999.25,
			SellPrice:       5001.50,
			Qty:             1,
			Duration:        "5m",
			Pnl:             "$(5.25)",
		},
	}

	trades, err := Reconcile(rows)
	require.NoError(t, err)
	require.Len(t, trades, 1)

	trade := trades[0]
	assert.Equal(t, model.SideShort, trade.Side)
	assert.Equal(t, -5.25, trade.Pnl)

	// Entry/exit stay anchored to chronological order, not buy/sell labels.
	assert.Equal(t, time.Date(2025, time.January, 2, 10, 0, 0, 0, time.UTC), trade.EntryTimestamp)
	assert.Equal(t, time.Date(2025, time.January, 2, 10, 5, 0, 0, time.UTC), trade.ExitTimestamp)
	assert.Equal(t, 5001.50, trade.EntryPrice)
	assert.Equal(t, 4999.25, trade.ExitPrice)
}

func TestReconcileEqualTimestampsResolveLong(t *testing.T) {
	rows := []model.RawFill{
		{
			Symbol:          "MNQZ5",
			BoughtTimestamp: "01/02/2025 09:30:00",
			SoldTimestamp:   "01/02/2025 09:30:00",
			BuyPrice:        100,
			SellPrice:       100,
			Qty:             1,
			Duration:        "0s",
			Pnl:             "$0.00",
		},
	}

	trades, err := Reconcile(rows)
	require.NoError(t, err)
	require.Len(t, trades, 1)

	assert.Equal(t, model.SideLong, trades[0].Side)
	assert.Equal(t, trades[0].EntryTimestamp, trades[0].ExitTimestamp)
	assert.Equal(t, 100.0, trades[0].EntryPrice)
}

func TestReconcileGroupingIsAPartition(t *testing.T) {
	// Four fills, three distinct keys: same symbol at a different bought
	// timestamp is a different trade, as is a different symbol.
	rows := []model.RawFill{
		{Symbol: "MNQZ5", BoughtTimestamp: "01/02/2025 09:30:00", SoldTimestamp: "01/02/2025 09:35:00", BuyPrice: 100, SellPrice: 101, Qty: 1, Duration: "5m", Pnl: "$10.00"},
		{Symbol: "MNQZ5", BoughtTimestamp: "01/02/2025 11:00:00", SoldTimestamp: "01/02/2025 11:10:00", BuyPrice: 102, SellPrice: 103, Qty: 2, Duration: "10m", Pnl: "$4.00"},
		{Symbol: "ESH6", BoughtTimestamp: "01/02/2025 09:30:00", SoldTimestamp: "01/02/2025 09:35:00", BuyPrice: 100, SellPrice: 101, Qty: 1, Duration: "5m", Pnl: "$2.00"},
		{Symbol: "MNQZ5", BoughtTimestamp: "01/02/2025 09:30:00", SoldTimestamp: "01/02/2025 09:35:00", BuyPrice: 100, SellPrice: 101, Qty: 3, Duration: "5m", Pnl: "$(1.00)"},
	}

	trades, err := Reconcile(rows)
	require.NoError(t, err)
	require.Len(t, trades, 3)

	var totalQty uint
	var totalFills int
	for _, trade := range trades {
		totalQty += trade.Qty
		totalFills += trade.FillCount
	}
	assert.Equal(t, uint(7), totalQty)
	assert.Equal(t, len(rows), totalFills)

	// First-seen key order is preserved.
	assert.Equal(t, uint(4), trades[0].Qty)
	assert.Equal(t, 9.0, trades[0].Pnl)
	assert.Equal(t, "MNQ", trades[1].Symbol)
	assert.Equal(t, "ES", trades[2].Symbol)
}

func TestReconcileAggregationIsOrderInvariant(t *testing.T) {
	rows := []model.RawFill{
		{Symbol: "MNQZ5", BoughtTimestamp: "01/02/2025 09:30:00", SoldTimestamp: "01/02/2025 09:35:00", BuyPrice: 100, SellPrice: 101, Qty: 1, Duration: "5m", Pnl: "$10.10"},
		{Symbol: "MNQZ5", BoughtTimestamp: "01/02/2025 09:30:00", SoldTimestamp: "01/02/2025 09:35:00", BuyPrice: 100, SellPrice: 101, Qty: 2, Duration: "5m", Pnl: "$(0.10)"},
		{Symbol: "MNQZ5", BoughtTimestamp: "01/02/2025 09:30:00", SoldTimestamp: "01/02/2025 09:35:00", BuyPrice: 100, SellPrice: 101, Qty: 4, Duration: "5m", Pnl: "$5.00"},
	}
	reversed := []model.RawFill{rows[2], rows[1], rows[0]}

	forward, err := Reconcile(rows)
	require.NoError(t, err)
	backward, err := Reconcile(reversed)
	require.NoError(t, err)

	require.Len(t, forward, 1)
	require.Len(t, backward, 1)
	assert.Equal(t, forward[0].Qty, backward[0].Qty)
	assert.Equal(t, forward[0].Pnl, backward[0].Pnl)
	assert.Equal(t, 15.0, forward[0].Pnl)
}

func TestReconcileEmptyInput(t *testing.T) {
	trades, err := Reconcile(nil)
	require.NoError(t, err)
	assert.Empty(t, trades)
	assert.NotNil(t, trades)
}

func TestReconcileAbortsBatchOnMalformedRow(t *testing.T) {
	rows := []model.RawFill{
		{Symbol: "MNQZ5", BoughtTimestamp: "01/02/2025 09:30:00", SoldTimestamp: "01/02/2025 09:35:00", BuyPrice: 100, SellPrice: 101, Qty: 1, Duration: "5m", Pnl: "$10.00"},
		{Symbol: "MNQZ5", BoughtTimestamp: "not a timestamp", SoldTimestamp: "01/02/2025 09:35:00", BuyPrice: 100, SellPrice: 101, Qty: 1, Duration: "5m", Pnl: "$10.00"},
	}

	trades, err := Reconcile(rows)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedTimestamp))
	assert.Nil(t, trades)

	rows[1].BoughtTimestamp = "01/02/2025 09:31:00"
	rows[1].Pnl = "???"
	trades, err = Reconcile(rows)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedAmount))
	assert.Nil(t, trades)
}

func TestFormatSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"MNQZ5", "MNQ"},
		{"ESH6", "ES"},
		{"MES", "M"},
		{"NQ", "NQ"},
		{"A", "A"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := formatSymbol(tt.input); got != tt.expected {
			t.Fatalf("formatSymbol(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
