package render

import (
	"fmt"
	"math"
)

// Class colours, cycled in class order.
var palette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd"}

func classColor(i int) string {
	return palette[i%len(palette)]
}

type rgb struct{ r, g, b float64 }

// Ends and centre of the diverging correlation scale.
var (
	coolEnd = rgb{59, 76, 192}   // #3B4CC0
	neutral = rgb{221, 221, 221} // #DDDDDD
	warmEnd = rgb{180, 4, 38}    // #B40426
)

// divergingColor maps a value in [-1, 1] to blue-grey-red, centred at 0.
// NaN is drawn white.
func divergingColor(value float64) string {
	if math.IsNaN(value) {
		return "#FFFFFF"
	}
	value = math.Max(-1, math.Min(1, value))

	from, to, t := neutral, warmEnd, value
	if value < 0 {
		from, to, t = neutral, coolEnd, -value
	}
	r := int(math.Round(lerp(from.r, to.r, t)))
	g := int(math.Round(lerp(from.g, to.g, t)))
	b := int(math.Round(lerp(from.b, to.b, t)))
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
