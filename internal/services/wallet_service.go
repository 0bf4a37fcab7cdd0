package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "xrpvault/internal/errors"
	"xrpvault/internal/logger"
	"xrpvault/internal/models"
	"xrpvault/internal/wallet"
)

// walletService handles wallet-related business logic.
type walletService struct {
	db       *gorm.DB
	notifier TelegramNotifier
}

// NewWalletService creates a new WalletServicer.
func NewWalletService(db *gorm.DB, notifier TelegramNotifier) WalletServicer {
	return &walletService{db: db, notifier: notifier}
}

// GenerateWallet creates a wallet from a freshly generated seed phrase.
// The phrase is returned to the caller once and only its fingerprint is
// stored.
func (s *walletService) GenerateWallet(ctx context.Context, userID, name string) (*GeneratedWallet, error) {
	phrase, err := wallet.GenerateSeedPhrase()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	created, err := s.createWallet(ctx, userID, name, phrase)
	if err != nil {
		return nil, err
	}

	return &GeneratedWallet{Wallet: created, SeedPhrase: phrase}, nil
}

// ImportWallet creates a wallet from a user-supplied seed phrase.
func (s *walletService) ImportWallet(ctx context.Context, userID, name, seedPhrase string) (*models.Wallet, error) {
	if err := wallet.ValidateSeedPhrase(seedPhrase); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidSeedPhrase, err.Error())
	}
	return s.createWallet(ctx, userID, name, seedPhrase)
}

func (s *walletService) createWallet(ctx context.Context, userID, name, seedPhrase string) (*models.Wallet, error) {
	if strings.TrimSpace(name) == "" {
		name = "My Wallet"
	}

	addresses, err := wallet.Derive(seedPhrase)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidSeedPhrase, err.Error())
	}

	// A re-import of the same phrase resolves to the same XRP address.
	var count int64
	s.db.Model(&models.Wallet{}).
		Where("user_id = ? AND xrp_address = ?", userID, addresses.XRP).
		Count(&count)
	if count > 0 {
		return nil, apperrors.ErrWalletExists
	}

	w := &models.Wallet{
		UserID:         userID,
		Name:           name,
		SeedPhraseHash: wallet.HashSeedPhrase(seedPhrase),
		XRPAddress:     addresses.XRP,
		EVMAddress:     addresses.EVM,
		SolanaAddress:  addresses.Solana,
		TronAddress:    addresses.Tron,
		BitcoinAddress: addresses.Bitcoin,
	}

	if err := s.db.Create(w).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if s.notifier != nil && s.notifier.Enabled() {
		text := fmt.Sprintf("💼 New wallet added\nUser: %s\nName: %s\nXRP address: %s", userID, w.Name, w.XRPAddress)
		if err := s.notifier.NotifyText(ctx, text); err != nil {
			logger.Get().Warnw("wallet notification failed", "error", err)
		}
	}

	return w, nil
}

// GetUserWallets returns all wallets belonging to a user.
func (s *walletService) GetUserWallets(userID string) ([]models.Wallet, error) {
	var wallets []models.Wallet
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&wallets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return wallets, nil
}

// GetWalletByID returns one of the user's wallets by ID.
func (s *walletService) GetWalletByID(userID, walletID string) (*models.Wallet, error) {
	var w models.Wallet
	if err := s.db.Where("id = ? AND user_id = ?", walletID, userID).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &w, nil
}

// DeleteWallet soft deletes one of the user's wallets.
func (s *walletService) DeleteWallet(userID, walletID string) error {
	result := s.db.Where("id = ? AND user_id = ?", walletID, userID).Delete(&models.Wallet{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrWalletNotFound
	}
	return nil
}
