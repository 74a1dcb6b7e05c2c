package reconcile

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/src/model"
)

// tradeKey identifies the logical trade a fill belongs to. Fills sharing the
// symbol, bought timestamp and both leg prices are partial executions of the
// same order and must be merged.
type tradeKey struct {
	symbol    string
	bought    time.Time
	buyPrice  float64
	sellPrice float64
}

// Reconcile merges a raw fills ledger into round-trip trades: rows are
// normalized, grouped by tradeKey, and each group is reduced to one Trade
// with summed qty/pnl and entry/exit legs anchored to chronological order.
//
// The transform is pure and single-pass. The first malformed row aborts the
// whole batch; an empty ledger yields an empty slice and no error. Output
// trades appear in first-seen key order, so equal inputs produce equal
// outputs. Safe to run concurrently, one invocation per uploaded file.
func Reconcile(rows []model.RawFill) ([]model.Trade, error) {
	groups := make(map[tradeKey][]fill, len(rows))
	order := make([]tradeKey, 0, len(rows))

	for i, row := range rows {
		f, err := normalizeFill(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		key := tradeKey{
			symbol:    f.symbol,
			bought:    f.bought,
			buyPrice:  f.buyPrice,
			sellPrice: f.sellPrice,
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], f)
	}

	trades := make([]model.Trade, 0, len(order))
	for _, key := range order {
		trades = append(trades, aggregate(key, groups[key]))
	}
	return trades, nil
}

// aggregate reduces one group of fills to a single Trade. Qty and pnl are
// additive; duration and the sold leg are taken from the first fill seen,
// which all members of a group are expected to share.
func aggregate(key tradeKey, members []fill) model.Trade {
	var qty uint
	pnl := decimal.Zero
	for _, m := range members {
		qty += m.qty
		pnl = pnl.Add(m.pnl)
	}

	first := members[0]
	side, entry, exit, entryPrice, exitPrice := resolveLegs(
		key.bought, first.sold, key.buyPrice, key.sellPrice)

	return model.Trade{
		Symbol:         formatSymbol(key.symbol),
		Side:           side,
		Qty:            qty,
		EntryTimestamp: entry,
		ExitTimestamp:  exit,
		EntryPrice:     entryPrice,
		ExitPrice:      exitPrice,
		Duration:       first.duration,
		Pnl:            pnl.InexactFloat64(),
		FillCount:      len(members),
	}
}

// resolveLegs anchors entry/exit to chronological order, not to the buy/sell
// labels: the earlier leg is the entry and carries its own price. Selling
// before buying makes the trade a short. Equal timestamps resolve as a long
// with the bought leg as entry.
func resolveLegs(bought, sold time.Time, buyPrice, sellPrice float64) (side string, entry, exit time.Time, entryPrice, exitPrice float64) {
	if bought.After(sold) {
		return model.SideShort, sold, bought, sellPrice, buyPrice
	}
	return model.SideLong, bought, sold, buyPrice, sellPrice
}

// formatSymbol strips the 2-character contract month/year code from an
// exchange-suffixed symbol ("MNQZ5" -> "MNQ"). Symbols with 2 characters or
// fewer carry no contract code and pass through unchanged.
func formatSymbol(symbol string) string {
	if len(symbol) <= 2 {
		return symbol
	}
	return symbol[:len(symbol)-2]
}
