package domain

import "errors"

// ErrConflict means an insert collided with a row that already exists,
// for example a second interview for a candidate who already has one.
var ErrConflict = errors.New("conflicting record already exists")
