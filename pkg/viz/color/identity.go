package color

import (
	"crypto/sha256"
	"math"
	"strings"
)

// PathColor derives a stable color from a path name. The recipe matches
// odgi: SHA-256 the name, pick bytes 24/8/16 as r/g/b, normalize by the
// component sum, then brighten so the strongest channel approaches full
// scale. Identical names yield bit-identical colors in every run.
func PathColor(name string) RGB {
	sum := sha256.Sum256([]byte(name))

	r := float64(sum[24]) / 255.0
	g := float64(sum[8]) / 255.0
	b := float64(sum[16]) / 255.0

	if s := r + g + b; s > 0 {
		r /= s
		g /= s
		b /= s
	}

	f := 1.0
	if m := math.Max(r, math.Max(g, b)); m > 0 {
		f = math.Min(1.5, 1.0/m)
	}

	return RGB{
		R: uint8(math.Round(255.0 * math.Min(r*f, 1.0))),
		G: uint8(math.Round(255.0 * math.Min(g*f, 1.0))),
		B: uint8(math.Round(255.0 * math.Min(b*f, 1.0))),
	}
}

// PathColorPrefix colors by the part of the name before the first sep,
// so all haplotypes of one sample share a color.
func PathColorPrefix(name string, sep string) RGB {
	if sep != "" {
		if i := strings.Index(name, sep); i >= 0 {
			name = name[:i]
		}
	}
	return PathColor(name)
}
