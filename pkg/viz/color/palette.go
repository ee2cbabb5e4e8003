package color

import (
	"strconv"
	"strings"
)

// spectral13 is the ColorBrewer Spectral 11-class diverging palette in
// reversed order, with two grey entries prepended for low coverage.
var spectral13 = []RGB{
	{196, 196, 196}, // < 0.5x coverage
	{128, 128, 128}, // < 1.5x coverage
	{158, 1, 66},
	{213, 62, 79},
	{244, 109, 67},
	{253, 174, 97},
	{254, 224, 139},
	{255, 255, 191},
	{230, 245, 152},
	{171, 221, 164},
	{102, 194, 165},
	{50, 136, 189},
	{94, 79, 162},
}

// RdBu is the default palette for compressed mode.
var rdBu11 = []RGB{
	{103, 0, 31},
	{178, 24, 43},
	{214, 96, 77},
	{244, 165, 130},
	{253, 219, 199},
	{247, 247, 247},
	{209, 229, 240},
	{146, 197, 222},
	{67, 147, 195},
	{33, 102, 172},
	{5, 48, 97},
}

var rdYlGn11 = []RGB{
	{165, 0, 38},
	{215, 48, 39},
	{244, 109, 67},
	{253, 174, 97},
	{254, 224, 139},
	{255, 255, 191},
	{217, 239, 139},
	{166, 217, 106},
	{102, 189, 99},
	{26, 152, 80},
	{0, 104, 55},
}

var piYG11 = []RGB{
	{142, 1, 82},
	{197, 27, 125},
	{222, 119, 174},
	{241, 182, 218},
	{253, 224, 239},
	{247, 247, 247},
	{230, 245, 208},
	{184, 225, 134},
	{127, 188, 65},
	{77, 146, 33},
	{39, 100, 25},
}

var pRGn11 = []RGB{
	{64, 0, 75},
	{118, 42, 131},
	{153, 112, 171},
	{194, 165, 207},
	{231, 212, 232},
	{247, 247, 247},
	{217, 240, 211},
	{166, 219, 160},
	{90, 174, 97},
	{27, 120, 55},
	{0, 68, 27},
}

var rdYlBu11 = []RGB{
	{165, 0, 38},
	{215, 48, 39},
	{244, 109, 67},
	{253, 174, 97},
	{254, 224, 144},
	{255, 255, 191},
	{224, 243, 248},
	{171, 217, 233},
	{116, 173, 209},
	{69, 117, 180},
	{49, 54, 149},
}

var brBG11 = []RGB{
	{84, 48, 5},
	{140, 81, 10},
	{191, 129, 45},
	{223, 194, 125},
	{246, 232, 195},
	{245, 245, 245},
	{199, 234, 229},
	{128, 205, 193},
	{53, 151, 143},
	{1, 102, 94},
	{0, 60, 48},
}

// clusterColors is ColorBrewer Set1, used for the cluster indicator bar.
var clusterColors = []RGB{
	{228, 26, 28},   // red
	{55, 126, 184},  // blue
	{77, 175, 74},   // green
	{152, 78, 163},  // purple
	{255, 127, 0},   // orange
	{255, 255, 51},  // yellow
	{166, 86, 40},   // brown
	{247, 129, 191}, // pink
	{153, 153, 153}, // grey
}

// annotationColors is ColorBrewer Set2 (8 pastels), kept distinct from
// the Set1 cluster colors so the two bands read apart.
var annotationColors = []RGB{
	{102, 194, 165},
	{252, 141, 98},
	{141, 160, 203},
	{231, 138, 195},
	{166, 216, 84},
	{255, 217, 47},
	{229, 196, 148},
	{179, 179, 179},
}

// annotationColorsExtended is ColorBrewer Paired (12 entries) for
// annotation sets with more than 8 categories.
var annotationColorsExtended = []RGB{
	{166, 206, 227},
	{31, 120, 180},
	{178, 223, 138},
	{51, 160, 44},
	{251, 154, 153},
	{227, 26, 28},
	{253, 191, 111},
	{255, 127, 0},
	{202, 178, 214},
	{106, 61, 154},
	{255, 255, 153},
	{177, 89, 40},
}

// Palette looks up a ColorBrewer diverging palette by name
// (case-insensitive). Spectral is returned without its grey entries.
func Palette(name string) ([]RGB, bool) {
	switch strings.ToLower(name) {
	case "spectral":
		return spectral13[2:], true
	case "rdbu":
		return rdBu11, true
	case "rdylgn":
		return rdYlGn11, true
	case "piyg":
		return piYG11, true
	case "prgn":
		return pRGn11, true
	case "rdylbu":
		return rdYlBu11, true
	case "brbg":
		return brBG11, true
	}
	return nil, false
}

// ParsePaletteArg splits a "SCHEME:N" palette argument. A bare scheme
// name defaults to 11 classes.
func ParsePaletteArg(arg string) (scheme string, n int, ok bool) {
	parts := strings.Split(arg, ":")
	switch len(parts) {
	case 1:
		return parts[0], 11, true
	case 2:
		v, err := strconv.Atoi(parts[1])
		if err != nil {
			return "", 0, false
		}
		return parts[0], v, true
	}
	return "", 0, false
}

// ClusterColor cycles Set1 by cluster id.
func ClusterColor(id int) RGB {
	return clusterColors[id%len(clusterColors)]
}

// AnnotationColor picks an annotation category color, switching to the
// larger Paired palette when more than 8 categories are in play.
func AnnotationColor(index, total int) RGB {
	if total <= len(annotationColors) {
		return annotationColors[index%len(annotationColors)]
	}
	return annotationColorsExtended[index%len(annotationColorsExtended)]
}
