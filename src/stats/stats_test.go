package stats

import (
	"math"
	"testing"

	"tradejournal/src/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeSummaryEmpty(t *testing.T) {
	got := ComputeSummary(nil)

	if got.Trades != 0 || got.TotalPnl != 0 || got.WinRate != 0 {
		t.Fatalf("expected zero summary, got %+v", got)
	}
}

func TestComputeSummaryMixed(t *testing.T) {
	trades := []model.Trade{
		{Side: model.SideLong, Pnl: 30.0},
		{Side: model.SideLong, Pnl: -10.0},
		{Side: model.SideShort, Pnl: 12.5},
		{Side: model.SideShort, Pnl: 0.0},
	}

	got := ComputeSummary(trades)

	if got.Trades != 4 {
		t.Fatalf("expected 4 trades, got %d", got.Trades)
	}
	if got.Winners != 2 || got.Losers != 1 || got.Scratches != 1 {
		t.Fatalf("expected 2 winners, 1 loser, 1 scratch, got %+v", got)
	}
	if got.Longs != 2 || got.Shorts != 2 {
		t.Fatalf("expected 2 longs and 2 shorts, got %+v", got)
	}
	if !almostEqual(got.TotalPnl, 32.5) {
		t.Fatalf("expected total pnl 32.5, got %v", got.TotalPnl)
	}
	if !almostEqual(got.WinRate, 2.0/3.0) {
		t.Fatalf("expected win rate 2/3, got %v", got.WinRate)
	}
	if !almostEqual(got.AvgWin, 21.25) {
		t.Fatalf("expected avg win 21.25, got %v", got.AvgWin)
	}
	if !almostEqual(got.AvgLoss, 10.0) {
		t.Fatalf("expected avg loss 10, got %v", got.AvgLoss)
	}
	if !almostEqual(got.ProfitFactor, 4.25) {
		t.Fatalf("expected profit factor 4.25, got %v", got.ProfitFactor)
	}
}

func TestComputeSummaryAllWinners(t *testing.T) {
	trades := []model.Trade{
		{Side: model.SideLong, Pnl: 5.0},
		{Side: model.SideLong, Pnl: 7.5},
	}

	got := ComputeSummary(trades)

	if got.Winners != 2 || got.Losers != 0 {
		t.Fatalf("expected all winners, got %+v", got)
	}
	if got.WinRate != 1.0 {
		t.Fatalf("expected win rate 1, got %v", got.WinRate)
	}
	if got.ProfitFactor != 0 {
		t.Fatalf("expected profit factor 0 with no losers, got %v", got.ProfitFactor)
	}
	if got.AvgLoss != 0 {
		t.Fatalf("expected avg loss 0, got %v", got.AvgLoss)
	}
}

func TestComputeSummaryNoFloatDrift(t *testing.T) {
	trades := make([]model.Trade, 0, 10)
	for i := 0; i < 10; i++ {
		trades = append(trades, model.Trade{Side: model.SideLong, Pnl: 0.1})
	}

	got := ComputeSummary(trades)

	if got.TotalPnl != 1.0 {
		t.Fatalf("expected exact total pnl 1.0, got %v", got.TotalPnl)
	}
}
