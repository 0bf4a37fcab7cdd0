package chains

import (
	"context"
	"time"

	"xrpvault/internal/logger"
)

type solanaBalanceRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type solanaBalanceResponse struct {
	Result struct {
		Value uint64 `json:"value"`
	} `json:"result"`
}

// SolanaBalance returns the SOL balance of an address as a 6-decimal
// string, converting lamports at 10^9 per SOL. Any failure yields "0".
func (c *Client) SolanaBalance(ctx context.Context, address string) string {
	start := time.Now()
	if err := c.wait(ctx); err != nil {
		observe("solana", start, false)
		return "0"
	}

	var out solanaBalanceResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(solanaBalanceRequest{
			JSONRPC: "2.0",
			ID:      1,
			Method:  "getBalance",
			Params:  []interface{}{address},
		}).
		SetResult(&out).
		Post(c.cfg.SolanaEndpoint)
	if err != nil || resp.IsError() {
		logger.Get().Warnw("solana getBalance failed", "address", address, "error", err)
		observe("solana", start, false)
		return "0"
	}

	observe("solana", start, true)
	return formatFloat(float64(out.Result.Value)/1e9, 6)
}
