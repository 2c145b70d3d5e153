package gems

import (
	"encoding/json"
	"testing"
)

func TestExtract(t *testing.T) {
	metadata := json.RawMessage(`{"data":{"gems":{"SLOT_1":"FINE","unlocked_slots":["SLOT_1"]}}}`)

	slots := Extract(metadata)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if slots[0].Key != "SLOT_1" || slots[0].Quality != "FINE" || !slots[0].Unlocked {
		t.Errorf("unexpected slot: %+v", slots[0])
	}
	if !slots[0].Valid() {
		t.Error("expected slot to be valid")
	}
}

func TestExtractPreservesKeyOrder(t *testing.T) {
	metadata := json.RawMessage(`{"data":{"gems":{
		"JADE_0":"PERFECT",
		"AMBER_0":"FLAWLESS",
		"unlocked_slots":["AMBER_0"],
		"TOPAZ_0":"FINE"
	}}}`)

	slots := Extract(metadata)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}

	wantKeys := []string{"JADE_0", "AMBER_0", "TOPAZ_0"}
	for i, want := range wantKeys {
		if slots[i].Key != want {
			t.Errorf("slot %d key = %q, want %q", i, slots[i].Key, want)
		}
	}
	if slots[0].Unlocked || !slots[1].Unlocked || slots[2].Unlocked {
		t.Errorf("unexpected unlocked flags: %+v", slots)
	}
}

func TestExtractNonStringQuality(t *testing.T) {
	metadata := json.RawMessage(`{"data":{"gems":{"COMBAT_0":{"uuid":"abc","quality":"FINE"}}}}`)

	slots := Extract(metadata)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if slots[0].Quality != UnknownQuality {
		t.Errorf("quality = %q, want %q", slots[0].Quality, UnknownQuality)
	}
}

func TestExtractDegenerateInputs(t *testing.T) {
	cases := []struct {
		name     string
		metadata string
	}{
		{"empty payload", ""},
		{"no data", `{}`},
		{"no gems", `{"data":{"enchantments":{"sharpness":5}}}`},
		{"malformed", `{"data":`},
		{"gems not an object", `{"data":{"gems":[1,2]}}`},
	}

	for _, tc := range cases {
		if slots := Extract(json.RawMessage(tc.metadata)); len(slots) != 0 {
			t.Errorf("%s: expected no slots, got %+v", tc.name, slots)
		}
	}
}
