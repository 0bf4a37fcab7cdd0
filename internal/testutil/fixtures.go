package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"xrpvault/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestWallet creates a wallet with placeholder addresses.
func CreateTestWallet(t *testing.T, db *gorm.DB, userID string) *models.Wallet {
	t.Helper()

	n := nextID()
	wallet := &models.Wallet{
		UserID:         userID,
		Name:           fmt.Sprintf("Test Wallet %d", n),
		SeedPhraseHash: fmt.Sprintf("%064d", n),
		XRPAddress:     fmt.Sprintf("rTestWallet%021d", n),
		EVMAddress:     fmt.Sprintf("0x%040d", n),
	}
	if err := db.Create(wallet).Error; err != nil {
		t.Fatalf("failed to create test wallet: %v", err)
	}
	return wallet
}

// CreateTestKYC creates a verification record in the given status. Records
// past not_started are backfilled with complete step data.
func CreateTestKYC(t *testing.T, db *gorm.DB, userID string, status models.KYCStatus) *models.KYCVerification {
	t.Helper()

	kyc := &models.KYCVerification{
		UserID: userID,
		Status: status,
		Step:   1,
	}

	if status != models.KYCStatusNotStarted {
		now := time.Now()
		kyc.Step = 4
		kyc.FirstName = "Test"
		kyc.LastName = "User"
		kyc.DateOfBirth = "1990-01-01"
		kyc.AddressLine1 = "1 Test Street"
		kyc.City = "Testville"
		kyc.Country = "US"
		kyc.DocumentType = models.KYCDocumentPassport
		kyc.DocumentFrontURL = "https://files.test/front.jpg"
		kyc.SelfieURL = "https://files.test/selfie.jpg"
		kyc.SubmittedAt = &now
	}

	if err := db.Create(kyc).Error; err != nil {
		t.Fatalf("failed to create test kyc record: %v", err)
	}
	return kyc
}

// CreateTestTransaction creates a completed swap transaction.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string) *models.Transaction {
	t.Helper()

	sourceChain := "ethereum"
	sourceToken := "ETH"
	sourceAmount := 1.0
	transaction := &models.Transaction{
		UserID:             userID,
		Type:               models.TransactionTypeSwap,
		Status:             models.TransactionStatusCompleted,
		SourceChain:        &sourceChain,
		SourceToken:        &sourceToken,
		SourceAmount:       &sourceAmount,
		DestinationChain:   "xrpl",
		DestinationToken:   "XRP",
		DestinationAmount:  9058.0,
		DestinationAddress: fmt.Sprintf("rTestWallet%021d", nextID()),
		FeeAmount:          11.0,
		FeeCurrency:        "USD",
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}
