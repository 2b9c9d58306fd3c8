package utils

// MinInt64 returns the smaller of two int64 values
func MinInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
