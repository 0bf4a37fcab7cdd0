package chains

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"xrpvault/internal/logger"
)

// balanceOf(address) function selector.
var balanceOfSelector = []byte{0x70, 0xa0, 0x82, 0x31}

// NativeBalance returns an EVM chain's native coin balance for an address
// as a 6-decimal string. Any RPC or decoding failure yields "0".
func (c *Client) NativeBalance(ctx context.Context, address, rpcURL string) string {
	start := time.Now()

	if err := c.wait(ctx); err != nil {
		observe("evm", start, false)
		return "0"
	}

	conn, err := c.evmConn(ctx, rpcURL)
	if err != nil {
		logger.Get().Warnw("evm dial failed", "rpc_url", rpcURL, "error", err)
		observe("evm", start, false)
		return "0"
	}

	var result hexutil.Big
	if err := conn.CallContext(ctx, &result, "eth_getBalance", common.HexToAddress(address), "latest"); err != nil {
		logger.Get().Warnw("eth_getBalance failed", "address", address, "rpc_url", rpcURL, "error", err)
		observe("evm", start, false)
		return "0"
	}

	observe("evm", start, true)
	wei := new(big.Float).SetInt((*big.Int)(&result))
	balance, _ := new(big.Float).Quo(wei, big.NewFloat(1e18)).Float64()
	return formatFloat(balance, 6)
}

// TokenBalance returns an ERC-20 token balance for an owner address as a
// decimal string with the fraction truncated to 6 digits. An empty "0x"
// result or any failure yields "0".
func (c *Client) TokenBalance(ctx context.Context, tokenAddress, ownerAddress, rpcURL string, decimals int) string {
	start := time.Now()

	if err := c.wait(ctx); err != nil {
		observe("evm", start, false)
		return "0"
	}

	conn, err := c.evmConn(ctx, rpcURL)
	if err != nil {
		logger.Get().Warnw("evm dial failed", "rpc_url", rpcURL, "error", err)
		observe("evm", start, false)
		return "0"
	}

	callData := append(balanceOfSelector, common.LeftPadBytes(common.HexToAddress(ownerAddress).Bytes(), 32)...)
	callArgs := map[string]interface{}{
		"to":   common.HexToAddress(tokenAddress),
		"data": hexutil.Bytes(callData),
	}

	var result hexutil.Bytes
	if err := conn.CallContext(ctx, &result, "eth_call", callArgs, "latest"); err != nil {
		logger.Get().Warnw("eth_call balanceOf failed",
			"token", tokenAddress, "owner", ownerAddress, "rpc_url", rpcURL, "error", err)
		observe("evm", start, false)
		return "0"
	}

	if len(result) == 0 {
		observe("evm", start, true)
		return "0"
	}

	observe("evm", start, true)
	return formatUnits(new(big.Int).SetBytes(result), decimals, 6)
}
