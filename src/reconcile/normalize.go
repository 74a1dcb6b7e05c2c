package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/src/model"
)

// TimestampLayout is the fixed wall-clock format of broker performance
// exports (MM/DD/YYYY HH:MM:SS).
const TimestampLayout = "01/02/2006 15:04:05"

// fill is a RawFill after field normalization: timestamps parsed against the
// broker layout and pnl decoded from accounting notation.
type fill struct {
	symbol    string
	bought    time.Time
	sold      time.Time
	buyPrice  float64
	sellPrice float64
	qty       uint
	duration  string
	pnl       decimal.Decimal
}

func normalizeFill(row model.RawFill) (fill, error) {
	bought, err := parseTimestamp(row.BoughtTimestamp)
	if err != nil {
		return fill{}, err
	}
	sold, err := parseTimestamp(row.SoldTimestamp)
	if err != nil {
		return fill{}, err
	}
	pnl, err := parsePnl(row.Pnl)
	if err != nil {
		return fill{}, err
	}

	return fill{
		symbol:    row.Symbol,
		bought:    bought,
		sold:      sold,
		buyPrice:  row.BuyPrice,
		sellPrice: row.SellPrice,
		qty:       row.Qty,
		duration:  row.Duration,
		pnl:       pnl,
	}, nil
}

// parsePnl decodes a currency amount in accounting notation: the dollar sign
// is stripped and a parenthesised amount is negative, e.g. "$(12.50)" -> -12.50.
func parsePnl(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), "$", "")

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && len(s) >= 2 {
		negative = true
		s = s[1 : len(s)-1]
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedAmount, raw)
	}

	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	ts, err := time.Parse(TimestampLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, raw)
	}
	return ts, nil
}
