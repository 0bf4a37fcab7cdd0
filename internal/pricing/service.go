// Package pricing maintains an in-memory USD price snapshot for the fixed
// asset set, refreshed on a timer from CoinGecko. A failed refresh never
// clears the snapshot: callers always see the last known good prices, or
// the hardcoded defaults before the first successful fetch.
package pricing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	gocache "github.com/patrickmn/go-cache"

	"xrpvault/internal/logger"
	"xrpvault/internal/metrics"
)

// PriceData holds the USD quote for a single asset.
type PriceData struct {
	USD          float64 `json:"usd"`
	USD24hChange float64 `json:"usd_24h_change"`
	USD24hVol    float64 `json:"usd_24h_vol,omitempty"`
	USDMarketCap float64 `json:"usd_market_cap,omitempty"`
}

// Snapshot is a point-in-time view of all tracked asset prices.
type Snapshot struct {
	Prices    map[string]PriceData `json:"prices"`
	Timestamp time.Time            `json:"timestamp"`
	Fallback  bool                 `json:"fallback,omitempty"`
}

// coinGeckoIDs maps our asset symbols to CoinGecko coin IDs.
var coinGeckoIDs = map[string]string{
	"xrp":   "ripple",
	"btc":   "bitcoin",
	"eth":   "ethereum",
	"sol":   "solana",
	"trx":   "tron",
	"bnb":   "binancecoin",
	"matic": "matic-network",
}

// stablecoins are always priced at exactly 1.0 regardless of the snapshot.
var stablecoins = map[string]bool{
	"usdt": true,
	"usdc": true,
	"busd": true,
	"dai":  true,
}

// defaultSnapshot returns the hardcoded starting prices used before the
// first successful refresh.
func defaultSnapshot() Snapshot {
	return Snapshot{
		Prices: map[string]PriceData{
			"xrp":   {USD: 0.52},
			"btc":   {USD: 67000},
			"eth":   {USD: 3200},
			"sol":   {USD: 145},
			"trx":   {USD: 0.12},
			"bnb":   {USD: 580},
			"matic": {USD: 0.85},
		},
		Timestamp: time.Now(),
		Fallback:  true,
	}
}

const snapshotKey = "snapshot"

// Service fetches and caches asset prices.
type Service struct {
	rest     *resty.Client
	baseURL  string
	interval time.Duration
	store    *gocache.Cache

	stopOnce sync.Once
	stop     chan struct{}
}

// NewService creates a price service polling the given CoinGecko endpoint.
func NewService(baseURL string, interval time.Duration) *Service {
	store := gocache.New(gocache.NoExpiration, gocache.NoExpiration)
	store.Set(snapshotKey, defaultSnapshot(), gocache.NoExpiration)

	return &Service{
		rest:     resty.New().SetTimeout(15 * time.Second).SetHeader("Accept", "application/json"),
		baseURL:  baseURL,
		interval: interval,
		store:    store,
		stop:     make(chan struct{}),
	}
}

// Start launches the refresh loop. A single ticker drives all refreshes;
// Stop (or context cancellation) ends the loop.
func (s *Service) Start(ctx context.Context) {
	go func() {
		// Prime the snapshot immediately rather than waiting a full interval.
		if err := s.Refresh(ctx); err != nil {
			logger.Get().Warnw("initial price refresh failed, keeping defaults", "error", err)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
				if err := s.Refresh(ctx); err != nil {
					logger.Get().Warnw("price refresh failed, keeping last snapshot", "error", err)
				}
			}
		}
	}()
}

// Stop ends the refresh loop.
func (s *Service) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Refresh fetches current prices and replaces the snapshot. On failure the
// previous snapshot is retained and the error returned for logging only.
func (s *Service) Refresh(ctx context.Context) error {
	ids := make([]string, 0, len(coinGeckoIDs))
	for _, id := range coinGeckoIDs {
		ids = append(ids, id)
	}

	var out map[string]PriceData
	resp, err := s.rest.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":                 strings.Join(ids, ","),
			"vs_currencies":       "usd",
			"include_24hr_change": "true",
			"include_24hr_vol":    "true",
			"include_market_cap":  "true",
		}).
		SetResult(&out).
		Get(s.baseURL)
	if err != nil {
		metrics.PriceRefreshTotal.WithLabelValues("failure").Inc()
		return err
	}
	if resp.IsError() {
		metrics.PriceRefreshTotal.WithLabelValues("failure").Inc()
		return fmt.Errorf("price API error: %s", resp.Status())
	}

	prev := s.Snapshot()
	next := Snapshot{
		Prices:    make(map[string]PriceData, len(coinGeckoIDs)),
		Timestamp: time.Now(),
	}
	for symbol, id := range coinGeckoIDs {
		if data, ok := out[id]; ok && data.USD > 0 {
			next.Prices[symbol] = data
		} else {
			// Missing asset in the response: keep its previous quote.
			next.Prices[symbol] = prev.Prices[symbol]
		}
	}

	s.store.Set(snapshotKey, next, gocache.NoExpiration)
	metrics.PriceRefreshTotal.WithLabelValues("success").Inc()
	return nil
}

// Snapshot returns the current price snapshot.
func (s *Service) Snapshot() Snapshot {
	if v, ok := s.store.Get(snapshotKey); ok {
		if snap, ok := v.(Snapshot); ok {
			return snap
		}
	}
	return defaultSnapshot()
}

// Price returns the USD unit price for a token symbol. Stablecoins are
// pinned to 1.0; unknown symbols price at 0.
func (s *Service) Price(symbol string) float64 {
	sym := strings.ToLower(symbol)
	if data, ok := s.Snapshot().Prices[sym]; ok {
		return data.USD
	}
	if stablecoins[sym] {
		return 1
	}
	return 0
}
