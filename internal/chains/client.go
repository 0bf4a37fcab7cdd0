package chains

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"sync"
	"time"

	ethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"xrpvault/internal/metrics"
)

// Config holds the public endpoints for the non-EVM chain families.
// EVM endpoints come from the chain table and are passed per call.
type Config struct {
	XRPLEndpoint    string
	SolanaEndpoint  string
	TronEndpoint    string
	BitcoinEndpoint string

	// RequestsPerSecond caps outbound calls to the public endpoints.
	// Zero disables the limiter.
	RequestsPerSecond float64
}

// Client reads balances from public chain endpoints. It is safe for
// concurrent use; EVM RPC connections are dialed lazily and reused.
type Client struct {
	cfg     Config
	rest    *resty.Client
	limiter *rate.Limiter

	mu       sync.Mutex
	evmConns map[string]*ethrpc.Client
}

// NewClient creates a balance reader client with the given endpoints.
func NewClient(cfg Config) *Client {
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), int(cfg.RequestsPerSecond)+1)
	}

	rest := resty.New().
		SetTimeout(15 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{
		cfg:      cfg,
		rest:     rest,
		limiter:  limiter,
		evmConns: make(map[string]*ethrpc.Client),
	}
}

// wait blocks until the rate limiter admits another request.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// evmConn returns a cached JSON-RPC connection for the given endpoint,
// dialing it on first use.
func (c *Client) evmConn(ctx context.Context, rpcURL string) (*ethrpc.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if conn, ok := c.evmConns[rpcURL]; ok {
		return conn, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, err := ethrpc.DialContext(dialCtx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rpcURL, err)
	}
	c.evmConns[rpcURL] = conn
	return conn, nil
}

// observe records metrics for a single balance fetch.
func observe(chain string, start time.Time, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	metrics.BalanceFetchTotal.WithLabelValues(chain, outcome).Inc()
	metrics.BalanceFetchDuration.WithLabelValues(chain).Observe(time.Since(start).Seconds())
}

// formatUnits splits a raw integer amount into integer and fractional parts
// using the given decimals, truncating the fraction to places digits.
func formatUnits(v *big.Int, decimals, places int) string {
	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	intPart, frac := new(big.Int).QuoRem(v, divisor, new(big.Int))

	fracStr := frac.String()
	for len(fracStr) < decimals {
		fracStr = "0" + fracStr
	}
	if places < len(fracStr) {
		fracStr = fracStr[:places]
	}
	return intPart.String() + "." + fracStr
}

// formatFloat renders a float balance with a fixed number of decimal places.
func formatFloat(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}
