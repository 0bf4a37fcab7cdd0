package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "xrpvault/internal/errors"
	"xrpvault/internal/events"
	"xrpvault/internal/models"
	"xrpvault/internal/pagination"
	"xrpvault/internal/quote"
)

// Pricer supplies current USD unit prices by token symbol. A zero price
// means the symbol is unknown.
type Pricer interface {
	Price(symbol string) float64
}

// transactionService handles swap and purchase business logic.
type transactionService struct {
	db             *gorm.DB
	prices         Pricer
	hub            *events.Hub
	minPurchaseUSD float64
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, prices Pricer, hub *events.Hub, minPurchaseUSD float64) TransactionServicer {
	return &transactionService{db: db, prices: prices, hub: hub, minPurchaseUSD: minPurchaseUSD}
}

// QuoteSwap prices a source-asset to XRP conversion without executing it.
// Quotes have no minimum; the threshold only gates execution.
func (s *transactionService) QuoteSwap(sourceToken string, sourceAmount float64) (*quote.SwapQuote, error) {
	if sourceAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}

	symbol := strings.ToUpper(sourceToken)
	tokenPrice := s.prices.Price(symbol)
	if tokenPrice <= 0 {
		return nil, apperrors.ErrUnknownToken
	}

	q := quote.Swap(symbol, sourceAmount, tokenPrice, s.prices.Price("XRP"))
	return &q, nil
}

// QuoteFiat prices a fiat purchase of XRP without executing it.
func (s *transactionService) QuoteFiat(fiatCurrency string, fiatAmount float64) (*quote.FiatQuote, error) {
	if fiatAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	if fiatCurrency == "" {
		fiatCurrency = "USD"
	}

	q := quote.Fiat(strings.ToUpper(fiatCurrency), fiatAmount, s.prices.Price("XRP"))
	return &q, nil
}

// ExecuteSwap performs a swap into XRP for one of the user's wallets. The
// user must have an approved verification and the trade must meet the
// minimum USD threshold.
func (s *transactionService) ExecuteSwap(ctx context.Context, userID string, req SwapRequest) (*models.Transaction, error) {
	if err := s.requireApprovedKYC(userID); err != nil {
		return nil, err
	}

	wallet, err := s.walletFor(userID, req.WalletID)
	if err != nil {
		return nil, err
	}

	q, err := s.QuoteSwap(req.SourceToken, req.SourceAmount)
	if err != nil {
		return nil, err
	}

	if q.SourceUSD < s.minPurchaseUSD {
		return nil, apperrors.ErrBelowMinimum
	}

	sourceChain := req.SourceChain
	txHash := mockTxHash()
	transaction := &models.Transaction{
		UserID:             userID,
		Type:               models.TransactionTypeSwap,
		Status:             models.TransactionStatusCompleted,
		SourceChain:        &sourceChain,
		SourceToken:        &q.SourceSymbol,
		SourceAmount:       &q.SourceAmount,
		DestinationChain:   "xrpl",
		DestinationToken:   "XRP",
		DestinationAmount:  q.FinalXRP,
		DestinationAddress: wallet.XRPAddress,
		FeeAmount:          q.FeeUSD + q.NetworkFeeUSD,
		FeeCurrency:        "USD",
		TxHash:             &txHash,
		Metadata: map[string]interface{}{
			"bonus_percentage":   quote.BonusPercent,
			"bonus_amount":       q.BonusXRP,
			"xrp_price":          q.XRPPriceUSD,
			"source_token_price": q.SourceUSD / q.SourceAmount,
		},
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.publish(events.TypeTransactionCreated, userID, transaction)
	return transaction, nil
}

// ExecuteFiatPurchase records a fiat purchase of XRP. The record stays
// pending until the payment provider confirms it.
func (s *transactionService) ExecuteFiatPurchase(ctx context.Context, userID string, req FiatPurchaseRequest) (*models.Transaction, error) {
	if err := s.requireApprovedKYC(userID); err != nil {
		return nil, err
	}

	wallet, err := s.walletFor(userID, req.WalletID)
	if err != nil {
		return nil, err
	}

	if req.FiatAmount < s.minPurchaseUSD {
		return nil, apperrors.ErrBelowMinimum
	}

	q, err := s.QuoteFiat(req.FiatCurrency, req.FiatAmount)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:             userID,
		Type:               models.TransactionTypeBuy,
		Status:             models.TransactionStatusPending,
		DestinationChain:   "xrpl",
		DestinationToken:   "XRP",
		DestinationAmount:  q.FinalXRP,
		DestinationAddress: wallet.XRPAddress,
		FeeAmount:          q.FeeUSD,
		FeeCurrency:        "USD",
		FiatCurrency:       &q.FiatCurrency,
		FiatAmount:         &q.FiatAmount,
		Metadata: map[string]interface{}{
			"bonus_percentage": quote.BonusPercent,
			"bonus_amount":     q.BonusXRP,
			"xrp_price":        q.XRPPriceUSD,
		},
	}
	if req.ExternalReference != "" {
		transaction.ExternalReference = &req.ExternalReference
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.publish(events.TypeTransactionCreated, userID, transaction)
	return transaction, nil
}

// GetUserTransactions returns the user's transactions, newest first.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	query := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	response := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &response, nil
}

// GetTransactionByID returns one of the user's transactions by ID.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// requireApprovedKYC rejects trading for any user without an approved
// verification.
func (s *transactionService) requireApprovedKYC(userID string) error {
	var kyc models.KYCVerification
	if err := s.db.Where("user_id = ?", userID).First(&kyc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrKYCRequired
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !kyc.CanTrade() {
		return apperrors.ErrKYCRequired
	}
	return nil
}

// walletFor loads the destination wallet and checks its XRP address shape.
func (s *transactionService) walletFor(userID, walletID string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.db.Where("id = ? AND user_id = ?", walletID, userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if wallet.XRPAddress == "" {
		return nil, apperrors.ErrMissingXRPAddress
	}
	if !strings.HasPrefix(wallet.XRPAddress, "r") {
		return nil, apperrors.ErrInvalidXRPAddress
	}
	return &wallet, nil
}

func (s *transactionService) publish(eventType, userID string, transaction *models.Transaction) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(events.Event{
		Type:    eventType,
		UserID:  userID,
		Payload: transaction,
	})
}

// mockTxHash returns a placeholder 64-character hex ledger hash. Real
// submission to the XRP Ledger is out of scope for this service.
func mockTxHash() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return strings.Repeat("0", 64)
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}
