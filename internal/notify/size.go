package notify

import "fmt"

var sizeUnits = []string{"KB", "MB", "GB", "TB", "PB"}

// FormatSize renders a byte count using the largest unit where the value is
// at least 1.0, with one decimal place. Plain bytes stay integral.
func FormatSize(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	v := float64(n)
	i := 0
	for v >= unit*unit && i < len(sizeUnits)-1 {
		v /= unit
		i++
	}
	return fmt.Sprintf("%.1f %s", v/unit, sizeUnits[i])
}
