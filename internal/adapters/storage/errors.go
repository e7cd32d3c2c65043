package storage

import "errors"

// ErrScanNotFound is returned when no scan record has the requested ID
var ErrScanNotFound = errors.New("scan not found")
