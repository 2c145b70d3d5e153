// Package catalog resolves canonical item identifiers from display names,
// using the static reference dataset loaded once at startup.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/skyflipper/engine/internal/names"
)

const (
	// starredPrefix marks dataset variants that must never win a lookup.
	starredPrefix = "STARRED"

	// The reference dataset carries a duplicate god potion id that the rest
	// of the marketplace does not use; it is patched to the canonical one.
	godPotionVariantID   = "GOD_POTION_2"
	godPotionCanonicalID = "GOD_POTION"
)

// Item is one entry of the reference dataset.
type Item struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Tier string `json:"tier"`
}

// Catalog maps glyph-stripped display names to item identifiers. Candidates
// for the same name keep dataset order so rejection rules can fall through to
// later entries.
type Catalog struct {
	byName map[string][]string
	size   int
}

// New builds a catalog from dataset items.
func New(items []Item) *Catalog {
	byName := make(map[string][]string, len(items))
	for _, item := range items {
		if item.Name == "" || item.ID == "" {
			continue
		}
		key := strings.TrimSpace(names.StripGlyphs(item.Name))
		byName[key] = append(byName[key], item.ID)
	}
	return &Catalog{byName: byName, size: len(items)}
}

// Load reads the reference dataset from a JSON file of the shape
// {"items":[{"name":...,"id":...},...]}.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var wrapper struct {
		Items []Item `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if len(wrapper.Items) == 0 {
		return nil, fmt.Errorf("catalog file %s holds no items", path)
	}

	return New(wrapper.Items), nil
}

// Size returns the number of dataset entries loaded.
func (c *Catalog) Size() int {
	return c.size
}

// ResolveID looks up the identifier for a normalized display name. Candidates
// with the STARRED prefix are skipped and scanning continues with later
// dataset entries. A miss is expected and not an error.
func (c *Catalog) ResolveID(normalizedName string) (string, bool) {
	for _, id := range c.byName[normalizedName] {
		if strings.HasPrefix(id, starredPrefix) {
			continue
		}
		if id == godPotionVariantID {
			return godPotionCanonicalID, true
		}
		return id, true
	}
	return "", false
}
