package netconfig

import "testing"

func TestDirectionDeltaAndOpposite(t *testing.T) {
	for _, d := range Directions {
		dr, dc := d.Delta()
		or, oc := d.Opposite().Delta()
		if dr+or != 0 || dc+oc != 0 {
			t.Fatalf("%s and its opposite do not cancel: (%d,%d)+(%d,%d)", d, dr, dc, or, oc)
		}
		if dr == 0 && dc == 0 {
			t.Fatalf("%s has zero delta", d)
		}
	}
	if dr, dc := DirNone.Delta(); dr != 0 || dc != 0 {
		t.Fatalf("DirNone delta = (%d,%d), want (0,0)", dr, dc)
	}
}

func TestVisualFlags(t *testing.T) {
	f := VisualImmune | VisualKnockback
	if !f.Has(VisualImmune) || f.Has(VisualFrozen) || !f.Has(VisualKnockback) {
		t.Fatalf("flags %08b decoded wrong", f)
	}
}
