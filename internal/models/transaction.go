package models

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeBuy     TransactionType = "buy"
	TransactionTypeSwap    TransactionType = "swap"
	TransactionTypeSend    TransactionType = "send"
	TransactionTypeReceive TransactionType = "receive"
)

// TransactionStatus represents the lifecycle state of a transaction
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusProcessing TransactionStatus = "processing"
	TransactionStatusCompleted  TransactionStatus = "completed"
	TransactionStatusFailed     TransactionStatus = "failed"
	TransactionStatusCancelled  TransactionStatus = "cancelled"
)

// Transaction represents a buy, swap, send, or receive record. Source and
// fiat fields are nullable because they only apply to some types: swaps
// carry source chain/token/amount, fiat buys carry fiat currency/amount.
type Transaction struct {
	Base
	UserID string            `gorm:"type:uuid;index;not null" json:"user_id"`
	Type   TransactionType   `gorm:"not null" json:"transaction_type"`
	Status TransactionStatus `gorm:"not null;default:'pending'" json:"status"`

	SourceChain  *string  `json:"source_chain,omitempty"`
	SourceToken  *string  `json:"source_token,omitempty"`
	SourceAmount *float64 `json:"source_amount,omitempty"`

	DestinationChain   string  `json:"destination_chain"`
	DestinationToken   string  `json:"destination_token"`
	DestinationAmount  float64 `json:"destination_amount"`
	DestinationAddress string  `json:"destination_address"`

	FeeAmount   float64 `json:"fee_amount"`
	FeeCurrency string  `gorm:"size:10;default:'USD'" json:"fee_currency"`

	// Reference assigned by the external payment provider on fiat buys.
	ExternalReference *string  `json:"external_reference,omitempty"`
	FiatCurrency      *string  `json:"fiat_currency,omitempty"`
	FiatAmount        *float64 `json:"fiat_amount,omitempty"`

	TxHash   *string                `json:"tx_hash,omitempty"`
	Metadata map[string]interface{} `gorm:"serializer:json" json:"metadata,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
