package service

import "errors"

var (
	ErrValidation   = errors.New("validation")    // 400
	ErrMissingField = errors.New("missing field") // 400
	ErrNotFound     = errors.New("not found")     // 404
	ErrConflict     = errors.New("conflict")      // 409
)
