package domain

import "errors"

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrInvalidListingData = errors.New("invalid listing data")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("action forbidden")
	ErrUnsupportedClause  = errors.New("unsupported query clause")
)
