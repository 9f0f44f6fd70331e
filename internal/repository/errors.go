package repository

import "errors"

// ErrNotFound is returned by scoped writes that matched no row,
// either because the id does not exist or it belongs to another family.
var ErrNotFound = errors.New("record not found")
