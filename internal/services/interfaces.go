package services

import (
	"context"
	"time"

	"xrpvault/internal/models"
	"xrpvault/internal/pagination"
	"xrpvault/internal/quote"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, fullName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID string, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// GeneratedWallet pairs a newly created wallet with its seed phrase. The
// phrase is returned exactly once and never stored.
type GeneratedWallet struct {
	Wallet     *models.Wallet `json:"wallet"`
	SeedPhrase string         `json:"seed_phrase"`
}

// WalletServicer defines the contract for wallet-related business logic.
type WalletServicer interface {
	GenerateWallet(ctx context.Context, userID, name string) (*GeneratedWallet, error)
	ImportWallet(ctx context.Context, userID, name, seedPhrase string) (*models.Wallet, error)
	GetUserWallets(userID string) ([]models.Wallet, error)
	GetWalletByID(userID, walletID string) (*models.Wallet, error)
	DeleteWallet(userID, walletID string) error
}

// SwapRequest carries the parameters of a swap execution.
type SwapRequest struct {
	WalletID     string
	SourceChain  string
	SourceToken  string
	SourceAmount float64
}

// FiatPurchaseRequest carries the parameters of a fiat purchase.
type FiatPurchaseRequest struct {
	WalletID          string
	FiatCurrency      string
	FiatAmount        float64
	ExternalReference string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
	Status   *models.TransactionStatus
}

// TransactionServicer defines the contract for swap and purchase business logic.
type TransactionServicer interface {
	QuoteSwap(sourceToken string, sourceAmount float64) (*quote.SwapQuote, error)
	QuoteFiat(fiatCurrency string, fiatAmount float64) (*quote.FiatQuote, error)
	ExecuteSwap(ctx context.Context, userID string, req SwapRequest) (*models.Transaction, error)
	ExecuteFiatPurchase(ctx context.Context, userID string, req FiatPurchaseRequest) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
}

// KYCPersonalInfo is the payload of the first verification step.
type KYCPersonalInfo struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	PhoneNumber string
}

// KYCAddress is the payload of the second verification step.
type KYCAddress struct {
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// KYCDocuments is the payload of the third verification step.
type KYCDocuments struct {
	DocumentType     models.KYCDocumentType
	DocumentFrontURL string
	DocumentBackURL  string
	SelfieURL        string
}

// KYCServicer defines the contract for identity verification business logic.
type KYCServicer interface {
	GetOrCreate(userID string) (*models.KYCVerification, error)
	SavePersonalInfo(userID string, info KYCPersonalInfo) (*models.KYCVerification, error)
	SaveAddress(userID string, addr KYCAddress) (*models.KYCVerification, error)
	SaveDocuments(userID string, docs KYCDocuments) (*models.KYCVerification, error)
	Submit(ctx context.Context, userID string) (*models.KYCVerification, error)
	Approve(ctx context.Context, userID string) (*models.KYCVerification, error)
	Reject(ctx context.Context, userID, reason string) (*models.KYCVerification, error)
	Retry(userID string) (*models.KYCVerification, error)
}

// TelegramNotifier defines the contract for the admin notification channel.
// Implementations must be safe to call when the channel is not configured:
// sends become no-ops rather than errors so business flows never depend on
// Telegram availability.
type TelegramNotifier interface {
	Enabled() bool
	NotifyText(ctx context.Context, text string) error
	NotifyKYCSubmission(ctx context.Context, user *models.User, kyc *models.KYCVerification) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
	EditMessageText(ctx context.Context, chatID string, messageID int64, text string) error
}
