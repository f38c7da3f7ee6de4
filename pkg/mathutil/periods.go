package mathutil

import "math"

// SaturatingAdd sums its arguments, clamping at the int bounds instead of
// wrapping around.
func SaturatingAdd(values ...int) int {
	sum := 0
	for _, v := range values {
		switch {
		case v > 0 && sum > math.MaxInt-v:
			sum = math.MaxInt
		case v < 0 && sum < math.MinInt-v:
			sum = math.MinInt
		default:
			sum += v
		}
	}
	return sum
}

// FloorInt returns floor(val) as an int, clamped to the int range. NaN maps
// to zero.
func FloorInt(val float64) int {
	f := math.Floor(val)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}
