package memo

import "errors"

var ErrInvalidInput = errors.New("invalid input")
