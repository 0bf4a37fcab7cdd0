package pricing

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func priceServer(t *testing.T, xrpUSD float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("vs_currencies") != "usd" {
			t.Errorf("expected vs_currencies=usd, got %s", r.URL.Query().Get("vs_currencies"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"ripple": {"usd": %f, "usd_24h_change": 1.2},
			"bitcoin": {"usd": 68000},
			"ethereum": {"usd": 3500},
			"solana": {"usd": 150},
			"tron": {"usd": 0.13},
			"binancecoin": {"usd": 600},
			"matic-network": {"usd": 0.9}
		}`, xrpUSD)
	}))
}

func TestRefresh(t *testing.T) {
	t.Run("replaces_snapshot", func(t *testing.T) {
		server := priceServer(t, 0.61)
		defer server.Close()

		svc := NewService(server.URL, time.Minute)
		if err := svc.Refresh(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		snap := svc.Snapshot()
		if snap.Fallback {
			t.Error("expected live snapshot after refresh")
		}
		if got := svc.Price("XRP"); got != 0.61 {
			t.Errorf("expected XRP price 0.61, got %f", got)
		}
		if got := svc.Price("eth"); got != 3500 {
			t.Errorf("expected ETH price 3500, got %f", got)
		}
	})

	t.Run("failure_retains_previous_snapshot", func(t *testing.T) {
		server := priceServer(t, 0.61)
		svc := NewService(server.URL, time.Minute)
		if err := svc.Refresh(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		server.Close()

		if err := svc.Refresh(context.Background()); err == nil {
			t.Fatal("expected error from closed server")
		}
		if got := svc.Price("XRP"); got != 0.61 {
			t.Errorf("expected retained price 0.61, got %f", got)
		}
	})

	t.Run("missing_asset_keeps_previous_quote", func(t *testing.T) {
		partial := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"ripple": {"usd": 0.7}}`)
		}))
		defer partial.Close()

		svc := NewService(partial.URL, time.Minute)
		if err := svc.Refresh(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := svc.Price("XRP"); got != 0.7 {
			t.Errorf("expected XRP price 0.7, got %f", got)
		}
		// BTC absent from the response: the default quote survives.
		if got := svc.Price("BTC"); got != 67000 {
			t.Errorf("expected retained BTC price 67000, got %f", got)
		}
	})

	t.Run("server_error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		svc := NewService(server.URL, time.Minute)
		if err := svc.Refresh(context.Background()); err == nil {
			t.Fatal("expected error from 429 response")
		}
		if !svc.Snapshot().Fallback {
			t.Error("expected fallback snapshot to survive a failed refresh")
		}
	})
}

func TestPrice(t *testing.T) {
	svc := NewService("http://127.0.0.1:1", time.Minute)

	t.Run("defaults_before_first_refresh", func(t *testing.T) {
		if got := svc.Price("XRP"); got != 0.52 {
			t.Errorf("expected default XRP price 0.52, got %f", got)
		}
	})

	t.Run("stablecoins_pinned", func(t *testing.T) {
		for _, symbol := range []string{"USDT", "usdc", "BUSD", "DAI"} {
			if got := svc.Price(symbol); got != 1 {
				t.Errorf("expected %s price 1, got %f", symbol, got)
			}
		}
	})

	t.Run("unknown_symbol", func(t *testing.T) {
		if got := svc.Price("DOGE"); got != 0 {
			t.Errorf("expected 0 for unknown symbol, got %f", got)
		}
	})
}

func TestStartStop(t *testing.T) {
	server := priceServer(t, 0.55)
	defer server.Close()

	svc := NewService(server.URL, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc.Start(ctx)
	defer svc.Stop()

	deadline := time.After(2 * time.Second)
	for svc.Price("XRP") != 0.55 {
		select {
		case <-deadline:
			t.Fatal("snapshot never refreshed")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
