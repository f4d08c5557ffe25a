package finance

import "errors"

var (
	ErrNotFound        = errors.New("expense not found")
	ErrInvalidInput    = errors.New("invalid expense input")
	ErrUnknownResource = errors.New("unknown expense resource")
)
