package models

// ChainFamily identifies one of the supported chain families a wallet
// may hold an address on.
type ChainFamily string

const (
	ChainFamilyXRPL    ChainFamily = "xrpl"
	ChainFamilyEVM     ChainFamily = "evm"
	ChainFamilySolana  ChainFamily = "solana"
	ChainFamilyTron    ChainFamily = "tron"
	ChainFamilyBitcoin ChainFamily = "bitcoin"
)

// Wallet represents an imported or generated multi-chain wallet. Addresses
// are derived once at creation time and are immutable thereafter. The seed
// phrase itself is never persisted; only a one-way fingerprint is kept so a
// re-import of the same phrase can be detected.
type Wallet struct {
	Base
	UserID         string `gorm:"type:uuid;index;not null" json:"user_id"`
	Name           string `gorm:"not null" json:"name"`
	SeedPhraseHash string `gorm:"size:64;not null" json:"-"`

	// The XRP address is mandatory; the other families are optional.
	XRPAddress     string `gorm:"not null;index" json:"xrp_address"`
	EVMAddress     string `json:"evm_address,omitempty"`
	SolanaAddress  string `json:"solana_address,omitempty"`
	TronAddress    string `json:"tron_address,omitempty"`
	BitcoinAddress string `json:"bitcoin_address,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
