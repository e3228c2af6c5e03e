package report

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// USD renders a price as "$1,234.56".
func USD(x float64) string {
	if x < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", math.Abs(x))
	}
	return "$" + humanize.FormatFloat("#,###.##", x)
}

// Pct renders a fractional return as a signed percentage, "+1.23%".
func Pct(x float64) string {
	return fmt.Sprintf("%+.2f%%", x*100)
}

// Mult renders a ratio as "1.23×".
func Mult(x float64) string {
	return fmt.Sprintf("%.2f×", x)
}

// Position renders a 0..1 range position as "45.6%".
func Position(x float64) string {
	return fmt.Sprintf("%.1f%%", x*100)
}
