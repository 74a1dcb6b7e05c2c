package reconcile

import "errors"

var (
	// ErrMalformedAmount reports a pnl value that does not reduce to a
	// numeric string after currency/parenthesis stripping.
	ErrMalformedAmount = errors.New("malformed pnl amount")

	// ErrMalformedTimestamp reports a timestamp that does not match the
	// broker's fixed export layout.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)
