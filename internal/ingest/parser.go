package ingest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/skyflipper/engine/internal/catalog"
	"github.com/skyflipper/engine/internal/store"
)

// auctionPage is the envelope of the marketplace list endpoint.
type auctionPage struct {
	Success  bool              `json:"success"`
	Auctions []json.RawMessage `json:"auctions"`
}

// auctionWire is one listing as the marketplace reports it.
type auctionWire struct {
	UUID             string    `json:"uuid"`
	Auctioneer       string    `json:"auctioneer"`
	ItemName         string    `json:"item_name"`
	Category         string    `json:"category"`
	Tier             string    `json:"tier"`
	StartingBid      float64   `json:"starting_bid"`
	HighestBidAmount float64   `json:"highest_bid_amount"`
	Bids             []bidWire `json:"bids"`
	Start            int64     `json:"start"`
	End              int64     `json:"end"`
	Bin              bool      `json:"bin"`
}

type bidWire struct {
	Bidder string  `json:"bidder"`
	Amount float64 `json:"amount"`
}

// detailWire is an auction record as the price data API reports it, both for
// the per-auction detail endpoint and for sold/active listing arrays.
type detailWire struct {
	UUID        string          `json:"uuid"`
	ItemName    string          `json:"itemName"`
	Tag         string          `json:"tag"`
	Tier        string          `json:"tier"`
	StartingBid float64         `json:"startingBid"`
	Bin         bool            `json:"bin"`
	NBTData     json.RawMessage `json:"nbtData"`
}

// pricePointWire is one bucket of the price history endpoint.
type pricePointWire struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Avg    float64 `json:"avg"`
	Volume float64 `json:"volume"`
	Time   string  `json:"time"`
}

// itemPage is the envelope of the item reference endpoint.
type itemPage struct {
	Success bool           `json:"success"`
	Items   []catalog.Item `json:"items"`
}

// parseAuctionPage converts the list endpoint body into listings, keeping
// direct-buy entries only. Elements that fail to parse are skipped so one
// malformed listing never discards the page.
func parseAuctionPage(body []byte) []store.Listing {
	var page auctionPage
	if err := json.Unmarshal(body, &page); err != nil {
		slog.Debug("auction_page_parse_failed", "error", err)
		return nil
	}

	listings := make([]store.Listing, 0, len(page.Auctions))
	for _, raw := range page.Auctions {
		var w auctionWire
		if err := json.Unmarshal(raw, &w); err != nil {
			slog.Debug("auction_element_parse_failed", "error", err)
			continue
		}
		if !w.Bin {
			continue
		}
		listings = append(listings, convertAuction(w))
	}
	return listings
}

// convertAuction maps a wire auction to the store model.
func convertAuction(w auctionWire) store.Listing {
	bids := make([]store.Bid, 0, len(w.Bids))
	for _, b := range w.Bids {
		bids = append(bids, store.Bid{Bidder: b.Bidder, Amount: b.Amount})
	}

	return store.Listing{
		UUID:        w.UUID,
		SellerID:    w.Auctioneer,
		ItemName:    w.ItemName,
		Tier:        w.Tier,
		Category:    w.Category,
		StartingBid: w.StartingBid,
		HighestBid:  w.HighestBidAmount,
		Bids:        bids,
		Start:       time.UnixMilli(w.Start),
		End:         time.UnixMilli(w.End),
		DirectBuy:   w.Bin,
	}
}

// parseAuctionDetail decodes a single auction detail body.
func parseAuctionDetail(body []byte) (store.SoldRecord, error) {
	var w detailWire
	if err := json.Unmarshal(body, &w); err != nil {
		return store.SoldRecord{}, fmt.Errorf("decode auction detail: %w", err)
	}
	return convertDetail(w), nil
}

// parseActiveListings converts the active direct-buy array into price samples.
func parseActiveListings(tag string, body []byte) []store.PriceSample {
	records := decodeDetailArray(body)
	samples := make([]store.PriceSample, 0, len(records))
	for _, r := range records {
		samples = append(samples, store.PriceSample{
			Tag:       tag,
			Price:     r.StartingBid,
			DirectBuy: r.DirectBuy,
			UUID:      r.UUID,
		})
	}
	return samples
}

// parseSoldRecords converts the sold history array.
func parseSoldRecords(body []byte) []store.SoldRecord {
	return decodeDetailArray(body)
}

// decodeDetailArray parses an array of auction records, skipping elements
// that fail to decode.
func decodeDetailArray(body []byte) []store.SoldRecord {
	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		slog.Debug("auction_array_parse_failed", "error", err)
		return nil
	}

	records := make([]store.SoldRecord, 0, len(raws))
	for _, raw := range raws {
		var w detailWire
		if err := json.Unmarshal(raw, &w); err != nil {
			slog.Debug("auction_record_parse_failed", "error", err)
			continue
		}
		records = append(records, convertDetail(w))
	}
	return records
}

// convertDetail maps a price API auction record to the store model.
func convertDetail(w detailWire) store.SoldRecord {
	return store.SoldRecord{
		UUID:        w.UUID,
		ItemName:    w.ItemName,
		Tier:        w.Tier,
		StartingBid: w.StartingBid,
		DirectBuy:   w.Bin,
		Metadata:    w.NBTData,
	}
}

// parsePriceHistory converts the history endpoint body into bucket samples.
func parsePriceHistory(tag string, body []byte) []store.PriceSample {
	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		slog.Debug("price_history_parse_failed", "error", err)
		return nil
	}

	samples := make([]store.PriceSample, 0, len(raws))
	for _, raw := range raws {
		var w pricePointWire
		if err := json.Unmarshal(raw, &w); err != nil {
			slog.Debug("price_point_parse_failed", "error", err)
			continue
		}
		samples = append(samples, store.PriceSample{
			Tag:    tag,
			Min:    w.Min,
			Max:    w.Max,
			Avg:    w.Avg,
			Volume: w.Volume,
			Bucket: w.Time,
		})
	}
	return samples
}

// parseItemCatalog decodes the item reference endpoint body.
func parseItemCatalog(body []byte) ([]catalog.Item, error) {
	var page itemPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode item catalog: %w", err)
	}
	if !page.Success {
		return nil, fmt.Errorf("item catalog request unsuccessful")
	}
	return page.Items, nil
}
