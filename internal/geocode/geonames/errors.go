package geonames

import (
	"errors"
	"fmt"
)

// Sentinel errors for GeoNames API operations.
var (
	ErrRateLimited  = errors.New("geonames: rate limited by server")
	ErrUnauthorized = errors.New("geonames: invalid or missing username")
	ErrQuota        = errors.New("geonames: daily or hourly quota exceeded")
	ErrServer       = errors.New("geonames: server error")
	ErrBadRequest   = errors.New("geonames: bad request")
)

// Error wraps an underlying error with lookup context.
type Error struct {
	Op      string // "search", "validate"
	Query   string // city name queried
	Country string // country code filter, if any
	Err     error
}

func (e *Error) Error() string {
	if e.Country != "" {
		return fmt.Sprintf("geonames %s %q [%s]: %v", e.Op, e.Query, e.Country, e.Err)
	}
	return fmt.Sprintf("geonames %s %q: %v", e.Op, e.Query, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op, query, country string, err error) error {
	return &Error{Op: op, Query: query, Country: country, Err: err}
}
