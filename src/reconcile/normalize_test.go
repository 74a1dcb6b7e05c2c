package reconcile

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParsePnl(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"$12.50", "12.5"},
		{"$(12.50)", "-12.5"},
		{"$(5.25)", "-5.25"},
		{"$0.00", "0"},
		{"(3)", "-3"},
		{"  $150.00  ", "150"},
	}

	for _, tt := range tests {
		got, err := parsePnl(tt.input)
		if err != nil {
			t.Fatalf("parsePnl(%q) returned error: %v", tt.input, err)
		}
		if !got.Equal(decimal.RequireFromString(tt.expected)) {
			t.Fatalf("parsePnl(%q) = %s, expected %s", tt.input, got, tt.expected)
		}
	}
}

func TestParsePnlMalformed(t *testing.T) {
	for _, input := range []string{"", "$", "$(abc)", "twelve", "$(12.50", "()"} {
		if _, err := parsePnl(input); !errors.Is(err, ErrMalformedAmount) {
			t.Fatalf("parsePnl(%q) expected ErrMalformedAmount, got %v", input, err)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := parseTimestamp("01/02/2025 09:30:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := time.Date(2025, time.January, 2, 9, 30, 0, 0, time.UTC)
	if !got.Equal(expected) {
		t.Fatalf("expected %s, got %s", expected, got)
	}
}

func TestParseTimestampMalformed(t *testing.T) {
	for _, input := range []string{"", "2025-01-02 09:30:00", "01/02/2025", "13/45/2025 99:00:00"} {
		if _, err := parseTimestamp(input); !errors.Is(err, ErrMalformedTimestamp) {
			t.Fatalf("parseTimestamp(%q) expected ErrMalformedTimestamp, got %v", input, err)
		}
	}
}
