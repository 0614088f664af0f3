package mathutil

// IntMin returns the smaller of a and b.
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the larger of a and b.
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntClamp limits v to [lo, hi].
func IntClamp(v, lo, hi int) int {
	return IntMax(lo, IntMin(hi, v))
}
