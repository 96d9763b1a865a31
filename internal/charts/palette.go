package charts

import (
	"fmt"
	"image/color"
)

// viridis anchor stops, dark to light.
var viridis = []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"}

// palette samples n evenly spaced colors from the viridis ramp.
func palette(n int) []color.RGBA {
	stops := make([]color.RGBA, len(viridis))
	for i, h := range viridis {
		stops[i] = parseHex(h)
	}
	out := make([]color.RGBA, n)
	for i := range out {
		t := 0.5
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = sample(stops, t)
	}
	return out
}

func sample(stops []color.RGBA, t float64) color.RGBA {
	pos := t * float64(len(stops)-1)
	lo := int(pos)
	if lo >= len(stops)-1 {
		return stops[len(stops)-1]
	}
	w := pos - float64(lo)
	a, b := stops[lo], stops[lo+1]
	mix := func(x, y uint8) uint8 { return uint8(float64(x)*(1-w) + float64(y)*w + 0.5) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func parseHex(h string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(h, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func translucent(c color.RGBA, alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}
