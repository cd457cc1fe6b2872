package components

import (
	"strings"
)

var bars = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a row of block characters scaled against ceiling.
// Longer series are sampled down to width columns; the last value is always shown.
func Sparkline(values []float64, width int, ceiling float64) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	cols := width
	if len(values) < cols {
		cols = len(values)
	}
	var sb strings.Builder
	for c := 0; c < cols; c++ {
		idx := len(values) - 1
		if cols > 1 {
			idx = c * (len(values) - 1) / (cols - 1)
		}
		sb.WriteRune(bar(values[idx], ceiling))
	}
	return sb.String()
}

func bar(v, ceiling float64) rune {
	if ceiling <= 0 || v <= 0 {
		return bars[0]
	}
	level := int(v / ceiling * float64(len(bars)-1))
	if level >= len(bars) {
		level = len(bars) - 1
	}
	return bars[level]
}

// Ints converts counts to floats for Sparkline.
func Ints(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
