package store

import "errors"

// ErrNotFound indicates a missing directory record.
var ErrNotFound = errors.New("record not found")
