package scene

// Palette is a small ordered list of colors that beam animators can index
// into by center/spread instead of carrying a fixed hue directly,
// grounded on the original's ColorPalette (tunnels/src/palette.rs). It
// always holds at least one entry so Index never has nothing to return.
type Palette struct {
	colors []Color
}

// NewPalette builds a Palette seeded with black, matching the original's
// MIN_PALETTE_SIZE-1 default.
func NewPalette() *Palette {
	return &Palette{colors: []Color{{}}}
}

// SetContents replaces the whole palette. An empty slice is rejected in
// favor of keeping the existing contents, since a palette must never be
// empty.
func (p *Palette) SetContents(colors []Color) {
	if len(colors) == 0 {
		return
	}
	p.colors = append([]Color(nil), colors...)
}

// Contents returns a copy of the current palette colors, for snapshotting
// and state emission.
func (p *Palette) Contents() []Color {
	return append([]Color(nil), p.colors...)
}

// Index resolves a Unipolar center/spread pair into a color, wrapping
// around the palette length the way col_center/col_spread address it in
// the original: center selects a base slot and spread walks outward from
// it modulo the palette size.
func (p *Palette) Index(center, spread Unipolar) Color {
	n := len(p.colors)
	base := int(float64(center) * float64(n))
	if base >= n {
		base = n - 1
	}
	offset := int(float64(spread) * float64(n))
	idx := ((base+offset)%n + n) % n
	return p.colors[idx]
}
