package stats

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatMicros renders a duration expressed in microseconds using a unit
// that suits its magnitude.
func FormatMicros(v Value) string {
	us, ok := v.Get()
	if !ok {
		return "---- ms"
	}

	ms := us / 1000.0
	switch {
	case ms <= 0.099:
		return fmt.Sprintf("%4.0f μs", us)
	case ms <= 99:
		return fmt.Sprintf("%4.1f ms", ms)
	}
	return fmt.Sprintf("%4.0f ms", ms)
}

// FormatRate renders a frames per second figure; NaN and Inf are shown as
// dashes.
func FormatRate(fps float64) string {
	if math.IsNaN(fps) || math.IsInf(fps, 0) {
		return "--- fps"
	}
	return fmt.Sprintf("%3.0f fps", fps)
}

// FormatCount renders an integer with locale digit grouping (12,345).
func FormatCount(n uint64) string {
	return printer.Sprintf("%d", n)
}
