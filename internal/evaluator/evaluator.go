// Package evaluator implements the pricing decision pipeline: it resolves a
// listing's canonical identifier, matches comparable sales and decides whether
// the listing is a profitable flip.
package evaluator

import (
	"strconv"
	"time"

	"github.com/skyflipper/engine/internal/catalog"
	"github.com/skyflipper/engine/internal/config"
	"github.com/skyflipper/engine/internal/names"
	"github.com/skyflipper/engine/internal/stats"
	"github.com/skyflipper/engine/internal/store"
)

// directBuyFee is the marketplace cut taken from a direct-buy sale.
const directBuyFee = 0.03

// godPotionID is exempt from the low-tier notification filter.
const godPotionID = "GOD_POTION"

// Filter query keys recognized by the price endpoints.
const (
	filterKeyRarity   = "Rarity"
	filterKeyStars    = "Stars"
	filterKeyPetLevel = "PetLevel"
)

// Evaluator applies the flip rules to one listing at a time. It holds no
// per-listing state, so a single instance is safe for concurrent use.
type Evaluator struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	policy  DeltaPolicy
}

// New creates an Evaluator.
func New(cfg *config.Config, cat *catalog.Catalog) *Evaluator {
	policy := RequireAny
	if cfg.DeltaPolicy == config.DeltaPolicyBoth {
		policy = RequireBoth
	}
	return &Evaluator{cfg: cfg, catalog: cat, policy: policy}
}

// Target carries everything Resolve derives from a listing's raw display name:
// the resolved identifier, star/pet attributes and the price query filter.
type Target struct {
	NormalizedName string
	ItemID         string
	Tier           string
	Stars          int
	HasUpgrade     bool
	IsPet          bool
	PetLevel       int
	Filter         store.Filter
}

// Resolve normalizes the listing name and resolves its item identifier,
// falling back to the synthesized pet identifier when the catalog misses.
// The second return is false when no identifier can be resolved; such
// listings are skipped without a decision.
func (e *Evaluator) Resolve(l store.Listing) (Target, bool) {
	normalized := names.Normalize(l.ItemName)
	id, found := e.catalog.ResolveID(normalized)
	petLevel, petID, isPet := names.ParsePetName(l.ItemName)

	t := Target{
		NormalizedName: normalized,
		Tier:           l.Tier,
		HasUpgrade:     names.HasUpgradePrefix(l.ItemName),
		IsPet:          isPet,
		PetLevel:       petLevel,
	}

	if !found {
		if !isPet {
			return Target{}, false
		}
		// Pet fallback: stars stay at zero and the level joins the filter.
		t.ItemID = petID
		t.Filter = store.Filter{
			{Key: filterKeyRarity, Value: l.Tier},
			{Key: filterKeyStars, Value: "0"},
			{Key: filterKeyPetLevel, Value: strconv.Itoa(petLevel)},
		}
		return t, true
	}

	t.ItemID = id
	t.Stars = names.StarCount(l.ItemName)
	t.Filter = store.Filter{
		{Key: filterKeyRarity, Value: l.Tier},
		{Key: filterKeyStars, Value: strconv.Itoa(t.Stars)},
	}
	return t, true
}

// Evaluate decides whether the listing is a profitable flip. It returns the
// decision, or nil plus the skip reason. All inputs are read-only; the
// evaluator allocates only local collections.
func (e *Evaluator) Evaluate(t Target, l store.Listing, history, lowest []store.PriceSample, sold []store.SoldRecord) (*store.FlipDecision, string) {
	volumeDay := stats.TotalVolume(history)
	volumeDayAvg := stats.AverageVolume(history)

	// The liquidity gate only applies to unstarred non-pets; starred items
	// and pets trade thinly by nature.
	if t.Stars == 0 && !t.IsPet {
		if volumeDay < e.cfg.MinDayVolume || volumeDayAvg < e.cfg.MinDayVolumeAvg {
			return nil, store.SkipLowVolume
		}
	}

	if len(lowest) == 0 {
		return nil, store.SkipNoDirectBuy
	}

	delta1, delta2 := directBuyDeltas(lowest, l.StartingBid)

	comparables := e.Comparables(t, l.Metadata, sold)
	askingPrices := make([]float64, 0, len(comparables))
	for _, c := range comparables {
		askingPrices = append(askingPrices, c.StartingBid)
	}
	fairPrice := stats.TrimmedMean(askingPrices, e.cfg.TrimFraction)
	margin := fairPrice - l.StartingBid

	if len(l.Bids) > 0 {
		return nil, store.SkipHasBids
	}
	if margin < e.cfg.ProfitThreshold || !e.policy.Accept(delta1, delta2, e.cfg.ProfitThreshold) {
		return nil, store.SkipUnprofitable
	}

	return &store.FlipDecision{
		UUID:            l.UUID,
		ItemID:          t.ItemID,
		ItemName:        l.ItemName,
		Tier:            l.Tier,
		Stars:           t.Stars,
		IsPet:           t.IsPet,
		PetLevel:        t.PetLevel,
		StartingBid:     l.StartingBid,
		FairPrice:       fairPrice,
		DirectBuyDelta1: delta1,
		DirectBuyDelta2: delta2,
		Margin:          margin,
		ComparableCount: len(comparables),
		VolumeDay:       volumeDay,
		VolumeDayAvg:    volumeDayAvg,
		Notify:          shouldNotify(l.Tier, t.ItemID),
		EvaluatedAt:     time.Now(),
	}, ""
}

// directBuyDeltas takes the first two direct-buy samples in response order and
// returns their fee-adjusted deltas against the asking price. Missing samples
// leave the corresponding delta at zero.
func directBuyDeltas(lowest []store.PriceSample, askingPrice float64) (float64, float64) {
	var deltas [2]float64
	n := 0
	for _, s := range lowest {
		if !s.DirectBuy {
			continue
		}
		deltas[n] = s.Price*(1-directBuyFee) - askingPrice
		n++
		if n == len(deltas) {
			break
		}
	}
	return deltas[0], deltas[1]
}

// shouldNotify is the display-only filter: low-tier flips stay silent unless
// the item is the god potion. The decision itself is unaffected.
func shouldNotify(tier, itemID string) bool {
	if tier != "COMMON" && tier != "UNCOMMON" {
		return true
	}
	return itemID == godPotionID
}
