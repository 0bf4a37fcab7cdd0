package models

import "time"

// KYCStatus represents the review state of an identity verification.
//
// A fresh record starts as not_started. Submitting the completed flow moves
// it to pending. Only an external reviewer action moves it to approved or
// rejected. A rejected record may be restarted by the user, which returns it
// to not_started with the previous documents cleared.
type KYCStatus string

const (
	KYCStatusNotStarted KYCStatus = "not_started"
	KYCStatusPending    KYCStatus = "pending"
	KYCStatusApproved   KYCStatus = "approved"
	KYCStatusRejected   KYCStatus = "rejected"
)

// KYCDocumentType enumerates the accepted identity document kinds.
type KYCDocumentType string

const (
	KYCDocumentPassport       KYCDocumentType = "passport"
	KYCDocumentDriversLicense KYCDocumentType = "drivers_license"
	KYCDocumentNationalID     KYCDocumentType = "national_id"
)

// KYCVerification holds a user's identity verification record. Fields are
// filled in step by step (personal info, address, documents) while the
// status remains not_started, then the whole record is submitted at once.
type KYCVerification struct {
	Base
	UserID string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Status KYCStatus `gorm:"not null;default:'not_started'" json:"status"`
	Step   int       `gorm:"default:1" json:"step"`

	// Personal info (step 1)
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`

	// Address (step 2)
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`

	// Documents (step 3)
	DocumentType     KYCDocumentType `json:"document_type,omitempty"`
	DocumentFrontURL string          `json:"document_front_url,omitempty"`
	DocumentBackURL  string          `json:"document_back_url,omitempty"`
	SelfieURL        string          `json:"selfie_url,omitempty"`

	RejectionReason string     `json:"rejection_reason,omitempty"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// CanTrade reports whether the record permits trading. Only an approved
// verification allows swaps and purchases.
func (k *KYCVerification) CanTrade() bool {
	return k.Status == KYCStatusApproved
}
