// Package quote computes swap and fiat-purchase quotes for XRP, including
// fees and the fixed promotional bonus.
package quote

// Fee schedule. Swaps pay a 0.3% fee plus a flat network fee; fiat
// purchases pay a 3.5% fee with no flat component. Both receive the same
// 35% bonus, computed from the post-fee base amount.
const (
	SwapFeeRate   = 0.003
	NetworkFeeUSD = 0.5
	FiatFeeRate   = 0.035
	BonusRate     = 0.35
	BonusPercent  = 35
)

// SwapQuote describes the full breakdown of a source-asset to XRP conversion.
type SwapQuote struct {
	SourceSymbol  string  `json:"source_symbol"`
	SourceAmount  float64 `json:"source_amount"`
	SourceUSD     float64 `json:"source_usd"`
	FeeUSD        float64 `json:"fee_usd"`
	NetworkFeeUSD float64 `json:"network_fee_usd"`
	BaseXRP       float64 `json:"base_xrp"`
	BonusXRP      float64 `json:"bonus_xrp"`
	FinalXRP      float64 `json:"final_xrp"`
	XRPPriceUSD   float64 `json:"xrp_price_usd"`
}

// Swap computes a swap quote from a source amount, its USD unit price, and
// the current XRP price. The base amount is not clamped when fees exceed
// the source value; tiny trades can therefore quote negative, and callers
// gate execution on the minimum-amount threshold instead.
func Swap(sourceSymbol string, sourceAmount, tokenPriceUSD, xrpPriceUSD float64) SwapQuote {
	sourceUSD := sourceAmount * tokenPriceUSD
	fee := sourceUSD * SwapFeeRate
	baseXRP := (sourceUSD - fee - NetworkFeeUSD) / xrpPriceUSD
	bonusXRP := baseXRP * BonusRate

	return SwapQuote{
		SourceSymbol:  sourceSymbol,
		SourceAmount:  sourceAmount,
		SourceUSD:     sourceUSD,
		FeeUSD:        fee,
		NetworkFeeUSD: NetworkFeeUSD,
		BaseXRP:       baseXRP,
		BonusXRP:      bonusXRP,
		FinalXRP:      baseXRP + bonusXRP,
		XRPPriceUSD:   xrpPriceUSD,
	}
}

// FiatQuote describes the breakdown of a fiat purchase of XRP.
type FiatQuote struct {
	FiatCurrency string  `json:"fiat_currency"`
	FiatAmount   float64 `json:"fiat_amount"`
	FeeUSD       float64 `json:"fee_usd"`
	BaseXRP      float64 `json:"base_xrp"`
	BonusXRP     float64 `json:"bonus_xrp"`
	FinalXRP     float64 `json:"final_xrp"`
	XRPPriceUSD  float64 `json:"xrp_price_usd"`
}

// Fiat computes a fiat-purchase quote. The fiat path uses the 3.5% fee
// schedule with no flat network fee and the same bonus rule as swaps.
func Fiat(fiatCurrency string, fiatAmount, xrpPriceUSD float64) FiatQuote {
	fee := fiatAmount * FiatFeeRate
	baseXRP := (fiatAmount - fee) / xrpPriceUSD
	bonusXRP := baseXRP * BonusRate

	return FiatQuote{
		FiatCurrency: fiatCurrency,
		FiatAmount:   fiatAmount,
		FeeUSD:       fee,
		BaseXRP:      baseXRP,
		BonusXRP:     bonusXRP,
		FinalXRP:     baseXRP + bonusXRP,
		XRPPriceUSD:  xrpPriceUSD,
	}
}
