package progress

import (
	"fmt"
	"time"
)

// FormatDuration formats d as whole minutes and seconds, e.g. "2mins 5secs".
// Sub-second remainders are truncated and negative durations format as
// "0mins 0secs".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	totalSecs := int64(d / time.Second)
	return fmt.Sprintf("%dmins %dsecs", totalSecs/60, totalSecs%60)
}

// FormatNumber formats a number with thousands separators (commas).
// This makes large numbers more readable (e.g., 1,234,567 instead of 1234567).
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	result := ""
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}

// Rate returns count per second over elapsed.
// Returns 0 if no time has elapsed to avoid division by zero.
func Rate(count int64, elapsed time.Duration) float64 {
	if elapsed.Seconds() == 0 {
		return 0
	}
	return float64(count) / elapsed.Seconds()
}
