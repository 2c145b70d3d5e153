package names

import "fmt"

// Reforge identifies one entry of the canonical reforge enumeration. The
// enumeration order is load-bearing: name scrubbing removes the first token
// found in this order, which is the tie-break when a name could match several.
type Reforge int

// reforgeTokens lists the display tokens in canonical enumeration order. The
// mixed casing mirrors the reference dataset and is intentional.
var reforgeTokens = []string{
	"None",
	"ancient",
	"Fierce",
	"Wise",
	"Necrotic",
	"Heroic",
	"Pure",
	"Fabled",
	"Titanic",
	"Mythic",
	"Spicy",
	"Sharp",
	"Giant",
	"Withered",
	"Jaded",
	"Light",
	"Blessed",
	"Smart",
	"Heavy",
	"Clean",
	"bustling",
	"Legendary",
	"Loving",
	"Spiritual",
	"Auspicious",
	"Rapid",
	"Epic",
	"strengthened",
	"Fast",
	"rooted",
	"Fair",
	"glistening",
	"odd_sword",
	"Unreal",
	"Gentle",
	"waxed",
	"blooming",
	"Renowned",
	"Hasty",
	"Precise",
	"Strange",
	"Deadly",
	"excellent",
	"Reinforced",
	"submerged",
	"pitchin",
	"heated",
	"Grand",
	"suspicious",
	"Fine",
	"Neat",
	"rich_bow",
	"Salty",
	"awkward",
	"mossy",
	"robust",
	"dirty",
	"shaded",
	"double_bit",
	"Strong",
	"lumberjack",
	"Godly",
	"Spiked",
	"fleet",
	"Refined",
	"bountiful",
	"Forceful",
	"menacing",
	"Perfect",
	"Unpleasant",
	"brilliant",
	"fortunate",
	"lucky",
	"lush",
	"candied",
	"toil",
	"fruitful",
	"Superior",
	"Hurtful",
	"prospector",
	"festive",
	"Treacherous",
	"Itchy",
	"unyielding",
	"sturdy",
	"blended",
	"moil",
	"aote_stone",
	"green_thumb",
	"stiff",
	"warped",
	"buzzing",
	"warped_on_aote",
	"snowy",
	"peasant",
	"Gilded",
	"honored",
	"Magnetic",
	"earthy",
	"bloody",
	"Zealous",
	"great",
	"Bizarre",
	"fortified",
	"headstrong",
	"Unknown",
	"mithraic",
	"Demonic",
	"zooming",
	"Silky",
	"colossal",
	"rugged",
	"Shiny",
	"ridiculous",
	"chomp",
	"ambered",
	"soft",
	"cubic",
	"empowered",
	"stellar",
	"Vivid",
	"stained",
	"Keen",
	"astute",
	"beady",
	"blood_soaked",
	"greater_spook",
	"hefty",
	"Pleasant",
	"Simple",
	"jerry_stone",
	"bulky",
	"Ominous",
	"Pretty",
	"rich_sword",
	"fanged",
	"coldfusion",
	"sweet",
	"odd_bow",
}

// ReforgeCount returns the number of entries in the enumeration.
func ReforgeCount() int {
	return len(reforgeTokens)
}

// Token returns the display token for r, or an error for a value outside the
// enumeration.
func (r Reforge) Token() (string, error) {
	if r < 0 || int(r) >= len(reforgeTokens) {
		return "", fmt.Errorf("unknown reforge category %d", int(r))
	}
	return reforgeTokens[r], nil
}
