package scoring

import "testing"

func TestSlot_Label(t *testing.T) {
	tests := map[Slot]string{
		SlotBranding:           "BRAND",
		SlotContentStructureV2: "CONTENT",
		SlotURLStructureV1:     "URL",
		Slot("other"):          "other",
	}
	for slot, want := range tests {
		if got := slot.Label(); got != want {
			t.Errorf("%s.Label() = %q, want %q", slot, got, want)
		}
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	a := NewAnalyzer()

	t.Run("all inputs", func(t *testing.T) {
		slots := a.Analyze(Input{
			Text:  "<h1>Acme</h1><p>Acme widgets</p>",
			Brand: "Acme",
			URL:   "https://acme.com/widgets",
		})
		for _, slot := range AllSlots {
			if !slots.Get(slot).Measured() {
				t.Errorf("slot %s unmeasured", slot)
			}
		}
	})

	t.Run("text only", func(t *testing.T) {
		slots := a.Analyze(Input{Text: "<p>hello</p>"})
		if slots.Branding != nil {
			t.Error("branding measured without a brand")
		}
		if slots.URLStructureV1 != nil {
			t.Error("url measured without a url")
		}
		if !slots.ContentStructureV2.Measured() {
			t.Error("content unmeasured")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		slots := a.Analyze(Input{})
		for _, slot := range AllSlots {
			if slots.Get(slot) != nil {
				t.Errorf("slot %s = %+v, want nil", slot, slots.Get(slot))
			}
		}
	})
}

func TestScoreSlots_GetUnknown(t *testing.T) {
	slots := ScoreSlots{Branding: NewScore(10, nil)}
	if slots.Get(Slot("nope")) != nil {
		t.Error("Get() of unknown slot should be nil")
	}
}
