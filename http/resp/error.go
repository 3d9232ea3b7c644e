package resp

import "errors"

var (
	ErrEncode = errors.New("cannot encode body")
	ErrWrite  = errors.New("cannot write response")
)
