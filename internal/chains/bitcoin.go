package chains

import (
	"context"
	"strconv"
	"strings"
	"time"

	"xrpvault/internal/logger"
)

// BitcoinBalance returns the BTC balance of an address as an 8-decimal
// string using a public balance-by-address endpoint that responds with the
// raw satoshi count as plain text. Any failure yields "0".
func (c *Client) BitcoinBalance(ctx context.Context, address string) string {
	start := time.Now()
	if err := c.wait(ctx); err != nil {
		observe("bitcoin", start, false)
		return "0"
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		Get(c.cfg.BitcoinEndpoint + "/q/addressbalance/" + address)
	if err != nil || resp.IsError() {
		logger.Get().Warnw("bitcoin balance lookup failed", "address", address, "error", err)
		observe("bitcoin", start, false)
		return "0"
	}

	satoshis, err := strconv.ParseInt(strings.TrimSpace(string(resp.Body())), 10, 64)
	if err != nil {
		logger.Get().Warnw("bitcoin balance not an integer", "address", address, "body", string(resp.Body()))
		observe("bitcoin", start, false)
		return "0"
	}

	observe("bitcoin", start, true)
	return formatFloat(float64(satoshis)/1e8, 8)
}
