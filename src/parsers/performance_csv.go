package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/model"
)

// Column names as they appear in a broker performance export header.
const (
	colSymbol          = "symbol"
	colBoughtTimestamp = "boughtTimestamp"
	colSoldTimestamp   = "soldTimestamp"
	colBuyPrice        = "buyPrice"
	colSellPrice       = "sellPrice"
	colQty             = "qty"
	colDuration        = "duration"
	colPnl             = "pnl"
)

var requiredColumns = []string{
	colSymbol,
	colBoughtTimestamp,
	colSoldTimestamp,
	colBuyPrice,
	colSellPrice,
	colQty,
	colDuration,
	colPnl,
}

// PerformanceCSVParser reads the per-fill performance report exported by the
// broker. Columns are located by header name, so extra columns and column
// reordering are tolerated; a missing required column fails the upload.
type PerformanceCSVParser struct{}

func NewPerformanceCSVParser() *PerformanceCSVParser {
	return &PerformanceCSVParser{}
}

func (p *PerformanceCSVParser) Parse(file io.Reader) ([]model.RawFill, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		logger.WithField("parser", "performance_csv").Warn("Empty report uploaded")
		return []model.RawFill{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var fills []model.RawFill
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record at line %d: %w", line+1, err)
		}
		line++

		field := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		buyPrice, err := strconv.ParseFloat(field(colBuyPrice), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid %s %q", line, colBuyPrice, field(colBuyPrice))
		}
		sellPrice, err := strconv.ParseFloat(field(colSellPrice), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid %s %q", line, colSellPrice, field(colSellPrice))
		}
		qty, err := strconv.ParseUint(field(colQty), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid %s %q", line, colQty, field(colQty))
		}

		fills = append(fills, model.RawFill{
			Symbol:          field(colSymbol),
			BoughtTimestamp: field(colBoughtTimestamp),
			SoldTimestamp:   field(colSoldTimestamp),
			BuyPrice:        buyPrice,
			SellPrice:       sellPrice,
			Qty:             uint(qty),
			Duration:        field(colDuration),
			Pnl:             field(colPnl),
		})
	}

	logger.WithFields(map[string]interface{}{
		"parser": "performance_csv",
		"fills":  len(fills),
	}).Debug("Parsed performance report")

	return fills, nil
}

// mapColumns resolves each required column to its position in the header.
// Matching is case-insensitive; broker exports have flip-flopped casing
// between versions.
func mapColumns(header []string) (map[string]int, error) {
	position := make(map[string]int, len(header))
	for i, name := range header {
		position[strings.ToLower(strings.TrimSpace(name))] = i
	}

	index := make(map[string]int, len(requiredColumns))
	for _, col := range requiredColumns {
		i, ok := position[strings.ToLower(col)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
		index[col] = i
	}
	return index, nil
}
