package scene

import "testing"

func TestPaletteIndexWrapsAround(t *testing.T) {
	p := NewPalette()
	p.SetContents([]Color{
		{Hue: NewPhase(0.0)},
		{Hue: NewPhase(0.25)},
		{Hue: NewPhase(0.5)},
		{Hue: NewPhase(0.75)},
	})

	c := p.Index(NewUnipolar(0), NewUnipolar(0))
	if c.Hue != NewPhase(0.0) {
		t.Fatalf("want hue 0, got %v", c.Hue)
	}

	c = p.Index(NewUnipolar(1), NewUnipolar(1))
	if c.Hue != NewPhase(0.75) {
		t.Fatalf("want wraparound to last slot, got %v", c.Hue)
	}
}

func TestPaletteRejectsEmptyContents(t *testing.T) {
	p := NewPalette()
	before := p.Contents()
	p.SetContents(nil)
	if len(p.Contents()) != len(before) {
		t.Fatalf("palette must never become empty")
	}
}
