package trio

// Color is an RGB triple with 8-bit channels. Channel arithmetic saturates
// at the [0,255] range instead of wrapping.
type Color struct {
	R, G, B uint8
}

func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

func (c Color) Add(other Color) Color {
	return Color{
		R: satAdd(c.R, other.R),
		G: satAdd(c.G, other.G),
		B: satAdd(c.B, other.B),
	}
}

func (c Color) Sub(other Color) Color {
	return Color{
		R: satSub(c.R, other.R),
		G: satSub(c.G, other.G),
		B: satSub(c.B, other.B),
	}
}

// Blend averages channel-wise.
func (c Color) Blend(other Color) Color {
	return Color{
		R: uint8((uint16(c.R) + uint16(other.R)) / 2),
		G: uint8((uint16(c.G) + uint16(other.G)) / 2),
		B: uint8((uint16(c.B) + uint16(other.B)) / 2),
	}
}

// Mix interpolates between c and other. ratio 0 is all c, 1 is all other;
// out-of-range ratios are clamped.
func (c Color) Mix(other Color, ratio float64) Color {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	inv := 1 - ratio
	return Color{
		R: clampChannel(float64(c.R)*inv + float64(other.R)*ratio),
		G: clampChannel(float64(c.G)*inv + float64(other.G)*ratio),
		B: clampChannel(float64(c.B)*inv + float64(other.B)*ratio),
	}
}

func (c Color) Scale(factor float64) Color {
	return Color{
		R: clampChannel(float64(c.R) * factor),
		G: clampChannel(float64(c.G) * factor),
		B: clampChannel(float64(c.B) * factor),
	}
}

func satAdd(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

func satSub(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}

func clampChannel(f float64) uint8 {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f)
}
