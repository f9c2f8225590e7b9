package analytics

import (
	"fmt"
	"math"
)

// Colors returns n visually distinct series colors as rgba() strings. Hues
// are spaced evenly around the color wheel, so the same n always yields
// the same palette.
func Colors(n int) []string {
	if n <= 0 {
		return nil
	}
	colors := make([]string, n)
	for i := 0; i < n; i++ {
		hue := float64(i) * 360.0 / float64(n)
		r, g, b := hslToRGB(hue, 0.65, 0.55)
		colors[i] = fmt.Sprintf("rgba(%d, %d, %d, 0.6)", r, g, b)
	}
	return colors
}

// hslToRGB converts hue [0,360), saturation [0,1], lightness [0,1] into
// 8-bit RGB components.
func hslToRGB(h, s, l float64) (int, int, int) {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return int(math.Round((r + m) * 255)),
		int(math.Round((g + m) * 255)),
		int(math.Round((b + m) * 255))
}
