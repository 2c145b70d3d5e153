package names

import (
	"regexp"
	"strconv"
	"strings"
)

// petPattern matches the pet naming convention "[Lvl N] <name>".
var petPattern = regexp.MustCompile(`\[Lvl (\d+)\] (.+)`)

// ParsePetName detects the pet naming convention and, on a match, returns the
// parsed level and a synthesized identifier ("PET_" + upper-snake pet name).
// Used only as a fallback when the catalog lookup fails.
func ParsePetName(raw string) (level int, id string, ok bool) {
	m := petPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, "", false
	}

	level, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}

	id = "PET_" + strings.ReplaceAll(strings.ToUpper(m[2]), " ", "_")
	return level, id, true
}
