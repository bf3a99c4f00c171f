package core

// Color is an 8-bit RGBA color. Annotation colors always carry full alpha.
type Color struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// White is the fallback color for unclassified objects.
var White = RGB(255, 255, 255)
