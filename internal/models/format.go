package models

import (
	"fmt"
	"strconv"
)

// FormatInstalls renders an install count as 0, 950, 200.0K, 1.5M or 2.0B.
func FormatInstalls(n int64) string {
	switch {
	case n <= 0:
		return "0"
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}
