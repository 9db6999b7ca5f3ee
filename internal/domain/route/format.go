package route

import (
	"fmt"
	"math"
)

// FormatDuration renders seconds as "M min" below an hour and "Hh Mm" above.
// Minutes are rounded, so 45 seconds reads as "1 min".
func FormatDuration(seconds float64) string {
	m := int(math.Round(seconds / 60))
	if m < 60 {
		return fmt.Sprintf("%d min", m)
	}
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}

// FormatDistance renders meters as one-decimal kilometers.
func FormatDistance(meters float64) string {
	return fmt.Sprintf("%.1f km", meters/1000)
}
