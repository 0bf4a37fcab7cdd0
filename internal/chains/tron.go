package chains

import (
	"context"
	"time"

	"xrpvault/internal/logger"
)

type tronAccountResponse struct {
	Data []struct {
		Balance int64 `json:"balance"`
	} `json:"data"`
}

// TronBalance returns the TRX balance of an address as a 6-decimal string,
// converting sun at 10^6 per TRX. A missing account or any failure yields "0".
func (c *Client) TronBalance(ctx context.Context, address string) string {
	start := time.Now()
	if err := c.wait(ctx); err != nil {
		observe("tron", start, false)
		return "0"
	}

	var out tronAccountResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&out).
		Get(c.cfg.TronEndpoint + "/v1/accounts/" + address)
	if err != nil || resp.IsError() {
		logger.Get().Warnw("tron account lookup failed", "address", address, "error", err)
		observe("tron", start, false)
		return "0"
	}

	if len(out.Data) == 0 {
		observe("tron", start, true)
		return "0"
	}

	observe("tron", start, true)
	return formatFloat(float64(out.Data[0].Balance)/1e6, 6)
}
