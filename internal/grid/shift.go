package grid

import "fmt"

// Shift cyclically moves every element k positions forward, wrapping at the
// end: result[(i+k) mod N] = cells[i]. Negative k moves elements backward
// and |k| may exceed N. Shift(Shift(c, k), -k) returns c.
func Shift[T any](cells []T, k int) ([]T, error) {
	n := len(cells)
	if n == 0 {
		return nil, fmt.Errorf("%w: cannot shift an empty grid", ErrInvalidGridSpec)
	}

	// Reduce k first so i+off cannot overflow for any int k.
	off := wrap(k, n)
	shifted := make([]T, n)
	for i, cell := range cells {
		shifted[(i+off)%n] = cell
	}
	return shifted, nil
}

// wrap maps any integer into [0, n).
func wrap(i, n int) int {
	return (i%n + n) % n
}
