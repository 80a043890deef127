package apperror

import "errors"

var (
	ErrOutOfRange       = errors.New("cell coordinate is out of range")
	ErrInvalidMark      = errors.New("invalid mark")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrResultNotFound   = errors.New("match result not found")
)
