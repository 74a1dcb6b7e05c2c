package parsers

import (
	"errors"
	"io"

	"tradejournal/src/model"
)

// ErrMissingColumn reports a required column absent from the report header.
// The whole upload is rejected; there is no partial-header contract.
var ErrMissingColumn = errors.New("missing required column")

// Parser turns an uploaded broker report into raw fill rows for the
// reconciliation engine.
type Parser interface {
	Parse(file io.Reader) ([]model.RawFill, error)
}
