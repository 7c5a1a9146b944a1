package grid

import "errors"

var (
	// ErrInvalidGridSpec reports a grid whose usable area or cell count is not
	// positive. Nothing may be cropped or written when it is returned.
	ErrInvalidGridSpec = errors.New("invalid grid spec")

	// ErrDegenerateCell reports a cell rectangle with no positive extent after
	// margins or padding. The cell is skipped; processing continues.
	ErrDegenerateCell = errors.New("degenerate cell")
)
