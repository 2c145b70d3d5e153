package evaluator

import (
	"encoding/json"

	"github.com/skyflipper/engine/internal/gems"
	"github.com/skyflipper/engine/internal/names"
	"github.com/skyflipper/engine/internal/store"
)

// IsComparable reports whether a completed sale is close enough to the target
// listing to inform its fair price: same star count, same upgrade prefix,
// same tier, direct-buy only, matching pet level for pets, and matching gem
// qualities when both sides expose an equally-sized slot set.
func (e *Evaluator) IsComparable(c store.SoldRecord, t Target, listingMeta json.RawMessage) bool {
	if names.StarCount(c.ItemName) != t.Stars {
		return false
	}
	if names.HasUpgradePrefix(c.ItemName) != t.HasUpgrade {
		return false
	}
	if c.Tier != t.Tier {
		return false
	}
	if !c.DirectBuy {
		return false
	}

	if t.IsPet {
		level, _, ok := names.ParsePetName(c.ItemName)
		if !ok || level != t.PetLevel {
			return false
		}
	}

	if len(c.Metadata) > 0 || len(listingMeta) > 0 {
		candSlots := gems.Extract(c.Metadata)
		targetSlots := gems.Extract(listingMeta)
		if len(candSlots) > 0 && len(targetSlots) > 0 && len(candSlots) == len(targetSlots) {
			for i := range targetSlots {
				if targetSlots[i].Quality != candSlots[i].Quality {
					return false
				}
			}
		}
		// Mismatched slot counts or a one-sided empty set do not exclude the
		// candidate. The gem check is best-effort, not exhaustive.
	}

	return true
}

// Comparables filters sold records down to the comparable set.
func (e *Evaluator) Comparables(t Target, listingMeta json.RawMessage, sold []store.SoldRecord) []store.SoldRecord {
	out := make([]store.SoldRecord, 0, len(sold))
	for _, c := range sold {
		if e.IsComparable(c, t, listingMeta) {
			out = append(out, c)
		}
	}
	return out
}
