package domain

import "errors"

// ErrCacheMiss is returned by a TriCache when the key is not present.
var ErrCacheMiss = errors.New("cache miss")

// ErrBodyNotFound is returned when a preview is requested for an unregistered body.
var ErrBodyNotFound = errors.New("body not found")

// ErrNoCatalog is returned when validation is requested before a catalog was provided.
var ErrNoCatalog = errors.New("slider catalog not configured")
