// Package names turns raw marketplace display names into canonical lookup keys
// and extracts the star/pet attributes encoded in them.
package names

import "strings"

// Display glyphs embedded in item names. Both are multi-byte in UTF-8, so all
// scanning here works on runes, never on bytes.
const (
	// GlyphDecorative marks an upgraded item at the front of its name
	GlyphDecorative = '⚚'
	// GlyphStar encodes one upgrade star; repeated once per star
	GlyphStar = '✪'
)

// Normalize strips glyphs and at most one reforge token from a raw display
// name, producing the canonical catalog lookup key. It is a pure best-effort
// function: malformed input yields a best-effort key, never an error.
func Normalize(raw string) string {
	stripped := StripGlyphs(raw)
	for i := 0; i < len(reforgeTokens); i++ {
		tok := reforgeTokens[i]
		if strings.Contains(stripped, tok) {
			// First match by table order wins; all its occurrences go.
			return strings.TrimSpace(strings.ReplaceAll(stripped, tok, ""))
		}
	}
	return strings.TrimSpace(stripped)
}

// StripGlyphs removes the decorative and star glyphs from a display name:
// star glyphs everywhere, decorative glyphs only where they pad the ends.
// Catalog keys are built with this alone, without reforge removal.
func StripGlyphs(raw string) string {
	runes := []rune(raw)

	start, end := 0, len(runes)
	for start < end && isGlyph(runes[start]) {
		start++
	}
	for end > start && isGlyph(runes[end-1]) {
		end--
	}

	var b strings.Builder
	for _, r := range runes[start:end] {
		if r == GlyphStar {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// StarCount returns the number of star glyphs in the raw display name.
func StarCount(raw string) int {
	return strings.Count(raw, string(GlyphStar))
}

// HasUpgradePrefix reports whether the raw name begins with a star glyph.
func HasUpgradePrefix(raw string) bool {
	runes := []rune(raw)
	return len(runes) > 0 && runes[0] == GlyphStar
}

func isGlyph(r rune) bool {
	return r == GlyphDecorative || r == GlyphStar
}
