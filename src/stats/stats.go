package stats

import (
	"github.com/shopspring/decimal"

	"tradejournal/src/model"
)

// Summary aggregates journal performance for the dashboard header.
type Summary struct {
	Trades       int     `json:"trades"`
	Winners      int     `json:"winners"`
	Losers       int     `json:"losers"`
	Scratches    int     `json:"scratches"`
	Longs        int     `json:"longs"`
	Shorts       int     `json:"shorts"`
	WinRate      float64 `json:"win_rate"`
	TotalPnl     float64 `json:"total_pnl"`
	AvgWin       float64 `json:"avg_win"`
	AvgLoss      float64 `json:"avg_loss"`
	ProfitFactor float64 `json:"profit_factor"`
}

// ComputeSummary reduces a set of trades to dashboard metrics. Sums run on
// decimals so a long journal does not accumulate float drift. A zero-pnl
// trade counts as a scratch and stays out of the win rate. ProfitFactor is
// zero when there are no losing trades.
func ComputeSummary(trades []model.Trade) Summary {
	summary := Summary{Trades: len(trades)}

	total := decimal.Zero
	grossWin := decimal.Zero
	grossLoss := decimal.Zero

	for _, trade := range trades {
		pnl := decimal.NewFromFloat(trade.Pnl)
		total = total.Add(pnl)

		switch {
		case pnl.IsPositive():
			summary.Winners++
			grossWin = grossWin.Add(pnl)
		case pnl.IsNegative():
			summary.Losers++
			grossLoss = grossLoss.Add(pnl.Neg())
		default:
			summary.Scratches++
		}

		if trade.Side == model.SideShort {
			summary.Shorts++
		} else {
			summary.Longs++
		}
	}

	summary.TotalPnl = total.InexactFloat64()

	decided := summary.Winners + summary.Losers
	if decided > 0 {
		summary.WinRate = decimal.NewFromInt(int64(summary.Winners)).
			Div(decimal.NewFromInt(int64(decided))).
			InexactFloat64()
	}
	if summary.Winners > 0 {
		summary.AvgWin = grossWin.Div(decimal.NewFromInt(int64(summary.Winners))).InexactFloat64()
	}
	if summary.Losers > 0 {
		summary.AvgLoss = grossLoss.Div(decimal.NewFromInt(int64(summary.Losers))).InexactFloat64()
		if grossLoss.IsPositive() {
			summary.ProfitFactor = grossWin.Div(grossLoss).InexactFloat64()
		}
	}

	return summary
}
