package fonts

import "testing"

func TestLoadDefaults(t *testing.T) {
	if err := LoadDefaults(10, 14, 28); err != nil {
		t.Fatalf("LoadDefaults: %v", err)
	}
	for _, name := range []FontName{Regular, NameTag, HUD, Title} {
		if name.Get() == nil {
			t.Fatalf("font %s not registered", name)
		}
	}
	if got := Title.Get().Metrics().Height; got <= HUD.Get().Metrics().Height {
		t.Fatalf("title height %v not larger than HUD %v", got, HUD.Get().Metrics().Height)
	}
}

func TestLoadFontRejectsGarbage(t *testing.T) {
	if err := LoadFontWithSize("bad", []byte("not a font"), 10); err == nil {
		t.Fatal("expected a parse error")
	}
}
