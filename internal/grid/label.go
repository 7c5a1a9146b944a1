package grid

// Label returns the 1-based position of cell idx when cell start is treated
// as position 1 and numbering wraps around n cells. For a fixed start the
// labels of 0..n-1 are a permutation of 1..n. Label returns 0 if n <= 0.
func Label(idx, start, n int) int {
	if n <= 0 {
		return 0
	}
	return wrap(idx-start, n) + 1
}
