// Package portfolio aggregates balances across a user's wallets into a
// valued token list and portfolio totals.
package portfolio

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"xrpvault/internal/chains"
	"xrpvault/internal/models"
)

// BalanceReader is the subset of the chains client the aggregator needs.
type BalanceReader interface {
	XRPBalance(ctx context.Context, address string) string
	NativeBalance(ctx context.Context, address, rpcURL string) string
	TokenBalance(ctx context.Context, tokenAddress, ownerAddress, rpcURL string, decimals int) string
	SolanaBalance(ctx context.Context, address string) string
	TronBalance(ctx context.Context, address string) string
	BitcoinBalance(ctx context.Context, address string) string
}

// Pricer supplies current USD unit prices by token symbol.
type Pricer interface {
	Price(symbol string) float64
}

// TokenBalance is one valued, nonzero asset held by a wallet. Recomputed
// on every refresh, never persisted.
type TokenBalance struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Balance    string  `json:"balance"`
	BalanceUSD float64 `json:"balance_usd"`
	Chain      string  `json:"chain"`
	ChainID    string  `json:"chain_id"`
	Icon       string  `json:"icon"`
	Address    string  `json:"address,omitempty"`
}

// WalletAssets is a wallet with its aggregated, valued token list.
type WalletAssets struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	XRPAddress    string         `json:"xrp_address"`
	XRPBalance    string         `json:"xrp_balance"`
	XRPBalanceUSD float64        `json:"xrp_balance_usd"`
	EVMAddress    string         `json:"evm_address,omitempty"`
	SolanaAddress string         `json:"solana_address,omitempty"`
	TronAddress   string         `json:"tron_address,omitempty"`
	Tokens        []TokenBalance `json:"tokens"`
	TotalValueUSD float64        `json:"total_value_usd"`
}

// Result is the portfolio view across all of a user's wallets.
type Result struct {
	Wallets           []WalletAssets `json:"wallets"`
	TotalPortfolioUSD float64        `json:"total_portfolio_usd"`
	TotalXRPBalance   float64        `json:"total_xrp_balance"`
}

// maxFetchesPerWallet caps concurrent balance reads for one wallet so a
// wallet with addresses on every chain doesn't flood the public endpoints.
const maxFetchesPerWallet = 8

// Aggregator joins chain balances with prices. It retains the last
// successfully computed result so a cancelled or failed refresh never
// resets callers to an empty view.
type Aggregator struct {
	reader BalanceReader
	prices Pricer

	mu   sync.Mutex
	last *Result
}

// NewAggregator creates an aggregator over the given reader and pricer.
func NewAggregator(reader BalanceReader, prices Pricer) *Aggregator {
	return &Aggregator{reader: reader, prices: prices}
}

// Aggregate computes the portfolio for the given wallets. Wallets are
// processed concurrently, and all per-chain fetches within a wallet fan
// out concurrently as well; a failed fetch contributes a zero balance
// rather than failing the refresh. If the context is cancelled mid-flight
// the last good result is returned along with the context error.
func (a *Aggregator) Aggregate(ctx context.Context, wallets []models.Wallet) (*Result, error) {
	result := &Result{Wallets: make([]WalletAssets, len(wallets))}

	var wg sync.WaitGroup
	for i := range wallets {
		wg.Add(1)
		go func(i int, w models.Wallet) {
			defer wg.Done()
			result.Wallets[i] = a.aggregateWallet(ctx, w)
		}(i, wallets[i])
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return a.lastResult(), err
	}

	for _, w := range result.Wallets {
		result.TotalPortfolioUSD += w.TotalValueUSD
		if bal, err := strconv.ParseFloat(w.XRPBalance, 64); err == nil {
			result.TotalXRPBalance += bal
		}
	}

	a.mu.Lock()
	a.last = result
	a.mu.Unlock()
	return result, nil
}

// lastResult returns the previous aggregation, or an empty result if no
// refresh has succeeded yet.
func (a *Aggregator) lastResult() *Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.last != nil {
		return a.last
	}
	return &Result{Wallets: []WalletAssets{}}
}

// aggregateWallet fetches and values every asset of a single wallet.
func (a *Aggregator) aggregateWallet(ctx context.Context, w models.Wallet) WalletAssets {
	assets := WalletAssets{
		ID:            w.ID,
		Name:          w.Name,
		XRPAddress:    w.XRPAddress,
		XRPBalance:    "0",
		EVMAddress:    w.EVMAddress,
		SolanaAddress: w.SolanaAddress,
		TronAddress:   w.TronAddress,
	}

	var mu sync.Mutex
	addToken := func(t TokenBalance) {
		mu.Lock()
		assets.Tokens = append(assets.Tokens, t)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxFetchesPerWallet)

	g.Go(func() error {
		balance := a.reader.XRPBalance(gctx, w.XRPAddress)
		mu.Lock()
		assets.XRPBalance = balance
		mu.Unlock()
		return nil
	})

	if w.EVMAddress != "" {
		for _, chain := range chains.SupportedEVMChains {
			for _, token := range chains.ChainTokens[chain.Key] {
				g.Go(func() error {
					var balance string
					if token.Address != "" {
						balance = a.reader.TokenBalance(gctx, token.Address, w.EVMAddress, chain.RPCURL, token.Decimals)
					} else {
						balance = a.reader.NativeBalance(gctx, w.EVMAddress, chain.RPCURL)
					}
					if num, err := strconv.ParseFloat(balance, 64); err == nil && num > 0 {
						addToken(TokenBalance{
							Symbol:     token.Symbol,
							Name:       token.Name,
							Balance:    balance,
							BalanceUSD: num * a.prices.Price(token.Symbol),
							Chain:      chain.Name,
							ChainID:    chain.Key,
							Icon:       chains.IconFor(token.Symbol),
							Address:    token.Address,
						})
					}
					return nil
				})
			}
		}
	}

	if w.SolanaAddress != "" {
		g.Go(func() error {
			balance := a.reader.SolanaBalance(gctx, w.SolanaAddress)
			if num, err := strconv.ParseFloat(balance, 64); err == nil && num > 0 {
				addToken(TokenBalance{
					Symbol:     "SOL",
					Name:       "Solana",
					Balance:    balance,
					BalanceUSD: num * a.prices.Price("SOL"),
					Chain:      "Solana",
					ChainID:    "solana",
					Icon:       chains.IconFor("SOL"),
				})
			}
			return nil
		})
	}

	if w.TronAddress != "" {
		g.Go(func() error {
			balance := a.reader.TronBalance(gctx, w.TronAddress)
			if num, err := strconv.ParseFloat(balance, 64); err == nil && num > 0 {
				addToken(TokenBalance{
					Symbol:     "TRX",
					Name:       "TRON",
					Balance:    balance,
					BalanceUSD: num * a.prices.Price("TRX"),
					Chain:      "TRON",
					ChainID:    "tron",
					Icon:       chains.IconFor("TRX"),
				})
			}
			return nil
		})
	}

	if w.BitcoinAddress != "" {
		g.Go(func() error {
			balance := a.reader.BitcoinBalance(gctx, w.BitcoinAddress)
			if num, err := strconv.ParseFloat(balance, 64); err == nil && num > 0 {
				addToken(TokenBalance{
					Symbol:     "BTC",
					Name:       "Bitcoin",
					Balance:    balance,
					BalanceUSD: num * a.prices.Price("BTC"),
					Chain:      "Bitcoin",
					ChainID:    "bitcoin",
					Icon:       chains.IconFor("BTC"),
				})
			}
			return nil
		})
	}

	_ = g.Wait()

	if num, err := strconv.ParseFloat(assets.XRPBalance, 64); err == nil {
		assets.XRPBalanceUSD = num * a.prices.Price("XRP")
	}

	total := assets.XRPBalanceUSD
	for _, t := range assets.Tokens {
		total += t.BalanceUSD
	}
	assets.TotalValueUSD = total

	if assets.Tokens == nil {
		assets.Tokens = []TokenBalance{}
	}
	return assets
}
