package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "xrpvault/internal/errors"
	"xrpvault/internal/events"
	"xrpvault/internal/logger"
	"xrpvault/internal/models"
)

// kycService handles identity verification business logic.
type kycService struct {
	db       *gorm.DB
	hub      *events.Hub
	notifier TelegramNotifier
}

// NewKYCService creates a new KYCServicer.
func NewKYCService(db *gorm.DB, hub *events.Hub, notifier TelegramNotifier) KYCServicer {
	return &kycService{db: db, hub: hub, notifier: notifier}
}

// GetOrCreate returns the user's verification record, creating an empty
// not_started record on first access.
func (s *kycService) GetOrCreate(userID string) (*models.KYCVerification, error) {
	var kyc models.KYCVerification
	err := s.db.Where("user_id = ?", userID).First(&kyc).Error
	if err == nil {
		return &kyc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	kyc = models.KYCVerification{
		UserID: userID,
		Status: models.KYCStatusNotStarted,
		Step:   1,
	}
	if err := s.db.Create(&kyc).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &kyc, nil
}

// editable returns the record if its status still allows step edits.
func (s *kycService) editable(userID string) (*models.KYCVerification, error) {
	kyc, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if kyc.Status == models.KYCStatusPending || kyc.Status == models.KYCStatusApproved {
		return nil, apperrors.ErrKYCAlreadySubmitted
	}
	return kyc, nil
}

// SavePersonalInfo records the first verification step.
func (s *kycService) SavePersonalInfo(userID string, info KYCPersonalInfo) (*models.KYCVerification, error) {
	if info.FirstName == "" || info.LastName == "" || info.DateOfBirth == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "first name, last name, and date of birth are required")
	}

	kyc, err := s.editable(userID)
	if err != nil {
		return nil, err
	}

	kyc.FirstName = info.FirstName
	kyc.LastName = info.LastName
	kyc.DateOfBirth = info.DateOfBirth
	kyc.PhoneNumber = info.PhoneNumber
	if kyc.Step < 2 {
		kyc.Step = 2
	}

	if err := s.db.Save(kyc).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return kyc, nil
}

// SaveAddress records the second verification step.
func (s *kycService) SaveAddress(userID string, addr KYCAddress) (*models.KYCVerification, error) {
	if addr.AddressLine1 == "" || addr.City == "" || addr.Country == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "address line, city, and country are required")
	}

	kyc, err := s.editable(userID)
	if err != nil {
		return nil, err
	}

	kyc.AddressLine1 = addr.AddressLine1
	kyc.AddressLine2 = addr.AddressLine2
	kyc.City = addr.City
	kyc.State = addr.State
	kyc.PostalCode = addr.PostalCode
	kyc.Country = addr.Country
	if kyc.Step < 3 {
		kyc.Step = 3
	}

	if err := s.db.Save(kyc).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return kyc, nil
}

// SaveDocuments records the third verification step.
func (s *kycService) SaveDocuments(userID string, docs KYCDocuments) (*models.KYCVerification, error) {
	if docs.DocumentType == "" || docs.DocumentFrontURL == "" || docs.SelfieURL == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "document type, front image, and selfie are required")
	}

	kyc, err := s.editable(userID)
	if err != nil {
		return nil, err
	}

	kyc.DocumentType = docs.DocumentType
	kyc.DocumentFrontURL = docs.DocumentFrontURL
	kyc.DocumentBackURL = docs.DocumentBackURL
	kyc.SelfieURL = docs.SelfieURL
	if kyc.Step < 4 {
		kyc.Step = 4
	}

	if err := s.db.Save(kyc).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return kyc, nil
}

// Submit moves a completed verification to pending and notifies reviewers.
func (s *kycService) Submit(ctx context.Context, userID string) (*models.KYCVerification, error) {
	kyc, err := s.editable(userID)
	if err != nil {
		return nil, err
	}

	if kyc.FirstName == "" || kyc.AddressLine1 == "" || kyc.DocumentFrontURL == "" {
		return nil, apperrors.ErrKYCIncomplete
	}

	now := time.Now()
	kyc.Status = models.KYCStatusPending
	kyc.SubmittedAt = &now
	kyc.RejectionReason = ""

	if err := s.db.Save(kyc).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.publish(userID, kyc)

	if s.notifier != nil && s.notifier.Enabled() {
		var user models.User
		if err := s.db.Where("id = ?", userID).First(&user).Error; err == nil {
			if err := s.notifier.NotifyKYCSubmission(ctx, &user, kyc); err != nil {
				logger.Get().Warnw("kyc review notification failed", "user_id", userID, "error", err)
			}
		}
	}

	return kyc, nil
}

// Approve marks a pending verification approved. Only pending records can
// be reviewed.
func (s *kycService) Approve(ctx context.Context, userID string) (*models.KYCVerification, error) {
	return s.review(userID, models.KYCStatusApproved, "")
}

// Reject marks a pending verification rejected with a reason.
func (s *kycService) Reject(ctx context.Context, userID, reason string) (*models.KYCVerification, error) {
	return s.review(userID, models.KYCStatusRejected, reason)
}

func (s *kycService) review(userID string, status models.KYCStatus, reason string) (*models.KYCVerification, error) {
	var kyc models.KYCVerification
	if err := s.db.Where("user_id = ?", userID).First(&kyc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrKYCNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if kyc.Status != models.KYCStatusPending {
		return nil, apperrors.ErrKYCNotPending
	}

	now := time.Now()
	kyc.Status = status
	kyc.ReviewedAt = &now
	kyc.RejectionReason = reason

	if err := s.db.Save(&kyc).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.publish(userID, &kyc)
	return &kyc, nil
}

// Retry returns a rejected verification to not_started so the user can
// redo the flow. Previously uploaded documents are cleared.
func (s *kycService) Retry(userID string) (*models.KYCVerification, error) {
	var kyc models.KYCVerification
	if err := s.db.Where("user_id = ?", userID).First(&kyc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrKYCNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if kyc.Status != models.KYCStatusRejected {
		return nil, apperrors.ErrKYCNotRejected
	}

	kyc.Status = models.KYCStatusNotStarted
	kyc.Step = 1
	kyc.DocumentType = ""
	kyc.DocumentFrontURL = ""
	kyc.DocumentBackURL = ""
	kyc.SelfieURL = ""
	kyc.RejectionReason = ""
	kyc.SubmittedAt = nil
	kyc.ReviewedAt = nil

	if err := s.db.Save(&kyc).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.publish(userID, &kyc)
	return &kyc, nil
}

func (s *kycService) publish(userID string, kyc *models.KYCVerification) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(events.Event{
		Type:    events.TypeKYCUpdated,
		UserID:  userID,
		Payload: kyc,
	})
}
