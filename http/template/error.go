package template

import "errors"

var (
	ErrNoFiles    = errors.New("no files provided")
	ErrNoRenderer = errors.New("no renderer configured")
)
