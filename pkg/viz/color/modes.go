package color

import "math"

// Fixed colors for the binary strand and highlight modes.
var (
	strandReverse    = RGB{200, 50, 50}
	strandForward    = RGB{50, 50, 200}
	highlightHit     = RGB{255, 0, 0}
	highlightMiss    = RGB{180, 180, 180}
	depthGreyVeryLow = RGB{196, 196, 196}
	depthGreyLow     = RGB{128, 128, 128}
)

// Depth maps a bin's mean depth through a diverging palette. With the
// grey floor active, depths under 0.5x and 1.5x render as fixed greys
// before the palette takes over. A nil palette means Spectral with
// half-open cuts at 0.5, 1.5, 2.5, ... matching odgi's depth legend.
func Depth(meanDepth float64, noGrey bool, palette []RGB) RGB {
	if palette != nil {
		n := len(palette)
		if n == 0 {
			return depthGreyLow
		}
		var idx int
		if noGrey {
			idx = int(math.Floor(math.Max(meanDepth-1.0, 0) / float64(n)))
		} else {
			if meanDepth < 0.5 {
				return depthGreyVeryLow
			}
			if meanDepth < 1.5 {
				return depthGreyLow
			}
			idx = int(math.Floor((meanDepth - 1.5) / float64(n)))
		}
		if idx > n-1 {
			idx = n - 1
		}
		return palette[idx]
	}

	if noGrey {
		for i := 0; i < 11; i++ {
			if meanDepth <= 1.5+float64(i) {
				return spectral13[i+2]
			}
		}
		return spectral13[12]
	}
	for i := 0; i < 13; i++ {
		if meanDepth <= 0.5+float64(i) {
			return spectral13[i]
		}
	}
	return spectral13[12]
}

// Strand is the binary strand color: red when the bin is majority
// reverse, blue otherwise.
func Strand(meanInv float64) RGB {
	if meanInv > 0.5 {
		return strandReverse
	}
	return strandForward
}

// InversionRate shades black to red by the bin's mean inversion rate.
func InversionRate(meanInv float64) RGB {
	return RGB{R: clampByte(meanInv * 255.0)}
}

// Uncalled shades black to green by the proportion of N bases.
func Uncalled(meanUncalled float64) RGB {
	return RGB{G: clampByte(meanUncalled * 255.0)}
}

// Highlight returns red for bins touching a highlighted node and grey
// for everything else.
func Highlight(hit bool) RGB {
	if hit {
		return highlightHit
	}
	return highlightMiss
}

// Darkness applies the position gradient to a base color. meanPos is
// the bin's mean position along the path, length the normalization
// length (the path's own, or the longest displayed path). The gradient
// direction flips for majority-reverse bins. whiteToBlack discards the
// base color and renders a pure grey ramp instead; otherwise the base
// color is darkened by up to 80% toward the path end.
func Darkness(base RGB, meanPos float64, length uint64, meanInv float64, whiteToBlack bool) RGB {
	if length == 0 {
		return base
	}
	posFactor := meanPos / float64(length)
	darkness := posFactor
	if meanInv > 0.5 {
		darkness = 1.0 - posFactor
	}

	if whiteToBlack {
		grey := clampByte(math.Round(255.0 * (1.0 - darkness)))
		return RGB{grey, grey, grey}
	}

	factor := 1.0 - darkness*0.8
	return RGB{
		R: clampByte(math.Round(float64(base.R) * factor)),
		G: clampByte(math.Round(float64(base.G) * factor)),
		B: clampByte(math.Round(float64(base.B) * factor)),
	}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
