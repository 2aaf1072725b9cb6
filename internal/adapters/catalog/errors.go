package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrLoadCatalog  = errors.New("load catalog failed")
	ErrLoadIntent   = errors.New("load intent failed")
	ErrEmptyCatalog = errors.New("catalog contains no valid items")
)
