// Package gems extracts gemstone slots from the raw item metadata payload.
package gems

import (
	"bytes"
	"encoding/json"

	"github.com/skyflipper/engine/internal/store"
)

// UnknownQuality is the sentinel used when a gem value is not a plain string.
const UnknownQuality = "UNKNOWN"

// unlockedSlotsKey is the reserved key inside the gems object.
const unlockedSlotsKey = "unlocked_slots"

// Extract reads the nested data.gems structure from an item metadata payload
// and returns one slot per gem key, in the payload's own key order. Slot order
// matters downstream: comparability pairs slots positionally. Malformed or
// missing metadata yields an empty result, never an error.
func Extract(metadata json.RawMessage) []store.GemstoneSlot {
	if len(metadata) == 0 {
		return nil
	}

	var outer struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(metadata, &outer); err != nil {
		return nil
	}
	gemsRaw, ok := outer.Data["gems"]
	if !ok {
		return nil
	}

	unlocked := unlockedSet(gemsRaw)

	// encoding/json maps do not preserve key order, so walk the object with a
	// token decoder instead.
	dec := json.NewDecoder(bytes.NewReader(gemsRaw))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	var slots []store.GemstoneSlot
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return slots
		}
		key, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return slots
		}

		if key == unlockedSlotsKey {
			continue
		}

		quality := UnknownQuality
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			quality = s
		}

		slots = append(slots, store.GemstoneSlot{
			Key:      key,
			Quality:  quality,
			Unlocked: unlocked[key],
		})
	}

	return slots
}

// unlockedSet parses the unlocked_slots list into a membership set.
func unlockedSet(gemsRaw json.RawMessage) map[string]bool {
	var wrapper struct {
		UnlockedSlots []string `json:"unlocked_slots"`
	}
	if err := json.Unmarshal(gemsRaw, &wrapper); err != nil {
		return nil
	}

	set := make(map[string]bool, len(wrapper.UnlockedSlots))
	for _, slot := range wrapper.UnlockedSlots {
		set[slot] = true
	}
	return set
}
