// Package ingest implements the HTTP clients for the marketplace and the
// price data API. Transport and parse failures degrade to empty result sets
// so one bad listing never stalls a scan cycle.
package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/skyflipper/engine/internal/catalog"
	"github.com/skyflipper/engine/internal/config"
	"github.com/skyflipper/engine/internal/store"
)

// Client wraps the two upstream APIs behind typed fetch methods.
type Client struct {
	hypixelBase string
	coflnetBase string
	apiKey      string
	http        *resty.Client
}

// NewClient creates a Client configured from cfg.
func NewClient(cfg *config.Config) *Client {
	client := resty.New()
	client.SetTimeout(cfg.RequestTimeout)

	return &Client{
		hypixelBase: strings.TrimRight(cfg.HypixelBaseURL, "/"),
		coflnetBase: strings.TrimRight(cfg.CoflnetBaseURL, "/"),
		apiKey:      cfg.HypixelAPIKey,
		http:        client,
	}
}

// FetchActiveAuctions returns the current direct-buy listings from the
// marketplace list endpoint. Bidding-only auctions are dropped here; the
// scanner never evaluates them.
func (c *Client) FetchActiveAuctions(ctx context.Context) ([]store.Listing, error) {
	endpoint := fmt.Sprintf("%s/skyblock/auctions?key=%s", c.hypixelBase, c.apiKey)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch auctions: %w", err)
	}

	return parseAuctionPage(body), nil
}

// FetchAuctionByUUID returns the detail record for one auction, including the
// embedded item metadata needed for gem comparisons.
func (c *Client) FetchAuctionByUUID(ctx context.Context, uuid string) (store.SoldRecord, error) {
	endpoint := fmt.Sprintf("%s/api/auction/%s", c.coflnetBase, url.PathEscape(uuid))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return store.SoldRecord{}, fmt.Errorf("fetch auction %s: %w", uuid, err)
	}

	return parseAuctionDetail(body)
}

// FetchLowestDirectBuyListings returns the currently cheapest direct-buy
// listings for an item, filtered by the target's attributes.
func (c *Client) FetchLowestDirectBuyListings(ctx context.Context, tag string, filter store.Filter) ([]store.PriceSample, error) {
	endpoint := fmt.Sprintf("%s/api/auctions/tag/%s/active/bin%s", c.coflnetBase, url.PathEscape(tag), filterQuery(filter))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch lowest bin %s: %w", tag, err)
	}

	return parseActiveListings(tag, body), nil
}

// FetchPriceHistory returns the bucketed price history for an item over the
// given window ("day", "week" or "month").
func (c *Client) FetchPriceHistory(ctx context.Context, tag, window string, filter store.Filter) ([]store.PriceSample, error) {
	endpoint := fmt.Sprintf("%s/api/item/price/%s/history/%s%s", c.coflnetBase, url.PathEscape(tag), window, filterQuery(filter))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch price history %s: %w", tag, err)
	}

	return parsePriceHistory(tag, body), nil
}

// FetchSoldHistory returns one page of recently completed sales for an item.
func (c *Client) FetchSoldHistory(ctx context.Context, tag string, page, pageSize int) ([]store.SoldRecord, error) {
	endpoint := fmt.Sprintf("%s/api/auctions/tag/%s/sold?page=%d&pageSize=%d", c.coflnetBase, url.PathEscape(tag), page, pageSize)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch sold history %s: %w", tag, err)
	}

	return parseSoldRecords(body), nil
}

// FetchItemCatalog returns the full item reference dataset from the
// marketplace resources endpoint. Used as a fallback when no local catalog
// file is available.
func (c *Client) FetchItemCatalog(ctx context.Context) ([]catalog.Item, error) {
	endpoint := fmt.Sprintf("%s/resources/skyblock/items?key=%s", c.hypixelBase, c.apiKey)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch item catalog: %w", err)
	}

	return parseItemCatalog(body)
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode())
	}

	return resp.Body(), nil
}

// filterQuery serializes a price filter as the query[Key]=value form the
// price endpoints expect, e.g. ?query[Rarity]=LEGENDARY&query[Stars]=0.
func filterQuery(filter store.Filter) string {
	if len(filter) == 0 {
		return ""
	}

	var b strings.Builder
	for i, p := range filter {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		fmt.Fprintf(&b, "query[%s]=%s", p.Key, url.QueryEscape(p.Value))
	}
	return b.String()
}
