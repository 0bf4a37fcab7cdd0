// Package chains implements read-only balance lookups against public
// endpoints for every supported chain family. All readers are stateless and
// best-effort: a failed or malformed response yields a "0" balance rather
// than an error, so one slow or broken endpoint never fails a whole
// portfolio refresh.
package chains

// EVMChain describes one supported EVM-compatible network.
type EVMChain struct {
	Key      string
	ChainID  uint64
	Name     string
	RPCURL   string
	Symbol   string
	Explorer string
}

// Token describes a native coin or ERC-20 token tracked on an EVM chain.
// Address is empty for the chain's native coin.
type Token struct {
	Symbol   string
	Name     string
	Decimals int
	Address  string
}

// SupportedEVMChains is the fixed table of EVM networks scanned during
// portfolio aggregation.
var SupportedEVMChains = []EVMChain{
	{Key: "ethereum", ChainID: 1, Name: "Ethereum", RPCURL: "https://eth.llamarpc.com", Symbol: "ETH", Explorer: "https://etherscan.io"},
	{Key: "polygon", ChainID: 137, Name: "Polygon", RPCURL: "https://polygon.llamarpc.com", Symbol: "MATIC", Explorer: "https://polygonscan.com"},
	{Key: "bsc", ChainID: 56, Name: "BNB Chain", RPCURL: "https://bsc-dataseed.binance.org", Symbol: "BNB", Explorer: "https://bscscan.com"},
	{Key: "arbitrum", ChainID: 42161, Name: "Arbitrum", RPCURL: "https://arb1.arbitrum.io/rpc", Symbol: "ETH", Explorer: "https://arbiscan.io"},
	{Key: "optimism", ChainID: 10, Name: "Optimism", RPCURL: "https://mainnet.optimism.io", Symbol: "ETH", Explorer: "https://optimistic.etherscan.io"},
	{Key: "avalanche", ChainID: 43114, Name: "Avalanche", RPCURL: "https://api.avax.network/ext/bc/C/rpc", Symbol: "AVAX", Explorer: "https://snowtrace.io"},
}

// ChainTokens maps an EVM chain key to the tokens tracked on it.
var ChainTokens = map[string][]Token{
	"ethereum": {
		{Symbol: "ETH", Name: "Ethereum", Decimals: 18},
		{Symbol: "USDT", Name: "Tether", Decimals: 6, Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7"},
		{Symbol: "USDC", Name: "USD Coin", Decimals: 6, Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"},
		{Symbol: "WBTC", Name: "Wrapped Bitcoin", Decimals: 8, Address: "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599"},
	},
	"polygon": {
		{Symbol: "MATIC", Name: "Polygon", Decimals: 18},
		{Symbol: "USDT", Name: "Tether", Decimals: 6, Address: "0xc2132D05D31c914a87C6611C10748AEb04B58e8F"},
		{Symbol: "USDC", Name: "USD Coin", Decimals: 6, Address: "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174"},
	},
	"bsc": {
		{Symbol: "BNB", Name: "BNB", Decimals: 18},
		{Symbol: "BUSD", Name: "Binance USD", Decimals: 18, Address: "0xe9e7CEA3DedcA5984780Bafc599bD69ADd087D56"},
		{Symbol: "USDT", Name: "Tether", Decimals: 18, Address: "0x55d398326f99059fF775485246999027B3197955"},
	},
	"arbitrum": {
		{Symbol: "ETH", Name: "Ethereum", Decimals: 18},
		{Symbol: "USDC", Name: "USD Coin", Decimals: 6, Address: "0xaf88d065e77c8cC2239327C5EDb3A432268e5831"},
		{Symbol: "ARB", Name: "Arbitrum", Decimals: 18, Address: "0x912CE59144191C1204E64559FE8253a0e49E6548"},
	},
	"optimism": {
		{Symbol: "ETH", Name: "Ethereum", Decimals: 18},
		{Symbol: "USDC", Name: "USD Coin", Decimals: 6, Address: "0x7F5c764cBc14f9669B88837ca1490cCa17c31607"},
		{Symbol: "OP", Name: "Optimism", Decimals: 18, Address: "0x4200000000000000000000000000000000000042"},
	},
	"avalanche": {
		{Symbol: "AVAX", Name: "Avalanche", Decimals: 18},
		{Symbol: "USDC", Name: "USD Coin", Decimals: 6, Address: "0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E"},
		{Symbol: "USDT", Name: "Tether", Decimals: 6, Address: "0x9702230A8Ea53601f5cD2dc00fDBc13d4dF4A8c7"},
	},
}

// TokenIcons maps token symbols to their display glyphs.
var TokenIcons = map[string]string{
	"ETH":  "⟠",
	"USDT": "💵",
	"USDC": "🔵",
	"WBTC": "🟠",
	"MATIC": "🟣",
	"BNB":  "🔶",
	"BUSD": "💛",
	"ARB":  "🔷",
	"OP":   "🔴",
	"AVAX": "🔺",
	"SOL":  "◎",
	"TRX":  "⚡",
	"XRP":  "✕",
}

// IconFor returns the icon glyph for a token symbol, with a generic
// fallback for unknown symbols.
func IconFor(symbol string) string {
	if icon, ok := TokenIcons[symbol]; ok {
		return icon
	}
	return "🪙"
}
