package chains

import (
	"context"
	"math/big"
	"strings"
	"time"

	"xrpvault/internal/logger"
)

type xrplAccountInfoRequest struct {
	Method string                `json:"method"`
	Params []xrplAccountInfoArgs `json:"params"`
}

type xrplAccountInfoArgs struct {
	Account     string `json:"account"`
	LedgerIndex string `json:"ledger_index"`
}

type xrplAccountInfoResponse struct {
	Result struct {
		AccountData struct {
			Balance string `json:"Balance"`
		} `json:"account_data"`
	} `json:"result"`
}

// XRPBalance returns the XRP balance of a classic address as a 6-decimal
// string. The drops value is converted with integer arithmetic to avoid
// float precision loss on the raw balance. Malformed addresses (not
// starting with 'r') return "0" without a network call; a missing account
// or any failure also yields "0".
func (c *Client) XRPBalance(ctx context.Context, address string) string {
	if address == "" || !strings.HasPrefix(address, "r") {
		return "0"
	}

	start := time.Now()
	if err := c.wait(ctx); err != nil {
		observe("xrpl", start, false)
		return "0"
	}

	var out xrplAccountInfoResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(xrplAccountInfoRequest{
			Method: "account_info",
			Params: []xrplAccountInfoArgs{{Account: address, LedgerIndex: "validated"}},
		}).
		SetResult(&out).
		Post(c.cfg.XRPLEndpoint)
	if err != nil || resp.IsError() {
		logger.Get().Warnw("xrpl account_info failed", "address", address, "error", err)
		observe("xrpl", start, false)
		return "0"
	}

	if out.Result.AccountData.Balance == "" {
		// Account not found on ledger.
		observe("xrpl", start, true)
		return "0"
	}

	drops, ok := new(big.Int).SetString(out.Result.AccountData.Balance, 10)
	if !ok {
		logger.Get().Warnw("xrpl balance not a drops integer", "address", address, "balance", out.Result.AccountData.Balance)
		observe("xrpl", start, false)
		return "0"
	}

	observe("xrpl", start, true)
	return formatUnits(drops, 6, 6)
}
