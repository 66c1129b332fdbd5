package matrix

import "errors"

var (
	// returned by Get/Set style accessors through panic
	ErrIndexOutOfRange = errors.New("matrix: index out of range")
	// a matrix needs at least one row and one column
	ErrBadShape = errors.New("matrix: non-positive dimension not allowed")
)
