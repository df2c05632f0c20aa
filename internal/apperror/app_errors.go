package apperror

import "errors"

var (
	ErrInvalidColumn = errors.New("invalid column index")
	ErrColumnFull    = errors.New("column is full")
	ErrEmptyHistory  = errors.New("move history is empty")
	ErrNotFound      = errors.New("not found")
)
