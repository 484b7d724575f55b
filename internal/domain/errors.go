package domain

import "errors"

var (
	ErrInvalidRecord     = errors.New("invalid item record")
	ErrInvalidWindowSize = errors.New("invalid window size")
	ErrInvalidEvaluation = errors.New("invalid evaluation")
	ErrItemNotFound      = errors.New("item not found")
	ErrSelfEvaluation    = errors.New("owners cannot evaluate their own items")
)
