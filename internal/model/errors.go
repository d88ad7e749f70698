package model

import "errors"

// ErrInvalidRule is returned when a CheckRule cannot be evaluated.
var ErrInvalidRule = errors.New("invalid check rule")
