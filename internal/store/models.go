// Package store provides the data model shared across the scanner.
package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// Listing represents a single live auction from the marketplace list endpoint.
// All fields are immutable once fetched for a cycle; Metadata is only populated
// after the per-auction detail fetch.
type Listing struct {
	// UUID is the auction identifier
	UUID string

	// SellerID is the auctioneer's account id
	SellerID string

	// ItemName is the raw display name, including decorative glyphs and stars
	ItemName string

	// Tier is the rarity classification string (COMMON..LEGENDARY etc.)
	Tier string

	// Category is the marketplace category the item is listed under
	Category string

	// StartingBid is the asking price (the buy price for direct-buy listings)
	StartingBid float64

	// HighestBid is the current highest bid amount
	HighestBid float64

	// Bids holds the bids placed so far (empty for untouched listings)
	Bids []Bid

	// Start is when the auction was created
	Start time.Time

	// End is when the auction expires
	End time.Time

	// DirectBuy marks a listing purchasable instantly at StartingBid ("BIN")
	DirectBuy bool

	// Metadata is the raw embedded item payload (enchantments, gem slots, ...)
	Metadata json.RawMessage
}

// Bid is a single bid on a listing.
type Bid struct {
	Bidder string
	Amount float64
}

// PriceSample is one entry from the price-history or lowest-price endpoints.
type PriceSample struct {
	// Tag is the canonical item identifier the sample belongs to
	Tag string

	// Price is the listed price for lowest-price samples (zero for history buckets)
	Price float64

	// Min, Max and Avg summarize a history bucket
	Min float64
	Max float64
	Avg float64

	// Volume is the number of sales in the bucket
	Volume float64

	// Bucket is the time bucket label
	Bucket string

	// DirectBuy marks samples from instant-buy listings
	DirectBuy bool

	// UUID references the underlying auction when the sample maps to one
	UUID string
}

// SoldRecord is a completed sale, shaped like a Listing plus the raw metadata
// needed for comparability checks.
type SoldRecord struct {
	UUID        string
	ItemName    string
	Tier        string
	StartingBid float64
	DirectBuy   bool
	Metadata    json.RawMessage
}

// GemstoneSlot is one embedded gem slot derived from a listing's metadata.
type GemstoneSlot struct {
	Key      string
	Quality  string
	Unlocked bool
}

// Valid reports whether the slot carries usable data.
func (g GemstoneSlot) Valid() bool {
	return g.Key != "" && g.Quality != ""
}

// FilterParam is one key-value pair of a price query filter. The transport
// layer owns serialization; the core only constructs the pairs.
type FilterParam struct {
	Key   string
	Value string
}

// Filter is an ordered set of query filter pairs (Rarity, Stars, PetLevel).
type Filter []FilterParam

// Skip reasons recorded when a listing produces no decision.
const (
	SkipNoItemID     = "NO_ITEM_ID"
	SkipLowVolume    = "LOW_VOLUME"
	SkipNoDirectBuy  = "NO_DIRECT_BUY"
	SkipUnprofitable = "BELOW_THRESHOLD"
	SkipHasBids      = "HAS_BIDS"
)

// FlipDecision is the outcome of evaluating one listing that cleared the
// profitability rules. It is handed to the notification sinks and never
// persisted.
type FlipDecision struct {
	UUID            string    `json:"uuid"`
	ItemID          string    `json:"item_id"`
	ItemName        string    `json:"item_name"`
	Tier            string    `json:"tier"`
	Stars           int       `json:"stars"`
	IsPet           bool      `json:"is_pet"`
	PetLevel        int       `json:"pet_level,omitempty"`
	StartingBid     float64   `json:"starting_bid"`
	FairPrice       float64   `json:"fair_price"`
	DirectBuyDelta1 float64   `json:"direct_buy_delta_1"`
	DirectBuyDelta2 float64   `json:"direct_buy_delta_2"`
	Margin          float64   `json:"margin"`
	ComparableCount int       `json:"comparable_count"`
	VolumeDay       float64   `json:"volume_day"`
	VolumeDayAvg    float64   `json:"volume_day_avg"`
	Notify          bool      `json:"notify"`
	EvaluatedAt     time.Time `json:"evaluated_at"`
}

// ViewCommand returns the in-game command for opening the auction.
func (d FlipDecision) ViewCommand() string {
	return "/viewauction " + d.UUID
}

// Summary returns a one-line human-readable description of the decision.
func (d FlipDecision) Summary() string {
	return fmt.Sprintf("%s [%s] ask %.0f, fair %.0f, margin %.0f (%d comps, bin deltas %.0f/%.0f)",
		d.ItemName, d.Tier, d.StartingBid, d.FairPrice, d.Margin,
		d.ComparableCount, d.DirectBuyDelta1, d.DirectBuyDelta2)
}

// ScanEvent is a lightweight record of one listing evaluation, consumed by the
// scan feed view.
type ScanEvent struct {
	UUID     string
	ItemName string
	Tier     string
	ItemID   string
	Reason   string // skip reason, empty when a decision was emitted
	Flip     bool
	At       time.Time
}
