package services

import (
	"context"
	"testing"

	"xrpvault/internal/events"
	"xrpvault/internal/models"
	"xrpvault/internal/testutil"
)

func completeKYCFlow(t *testing.T, svc KYCServicer, userID string) {
	t.Helper()

	_, err := svc.SavePersonalInfo(userID, KYCPersonalInfo{
		FirstName: "Ada", LastName: "Lovelace", DateOfBirth: "1990-12-10",
	})
	testutil.AssertNoError(t, err)

	_, err = svc.SaveAddress(userID, KYCAddress{
		AddressLine1: "1 Analytical Way", City: "London", Country: "GB",
	})
	testutil.AssertNoError(t, err)

	_, err = svc.SaveDocuments(userID, KYCDocuments{
		DocumentType:     models.KYCDocumentPassport,
		DocumentFrontURL: "https://files.test/front.jpg",
		SelfieURL:        "https://files.test/selfie.jpg",
	})
	testutil.AssertNoError(t, err)
}

func TestKYCGetOrCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewKYCService(db, nil, nil)
	user := testutil.CreateTestUser(t, db)

	kyc, err := svc.GetOrCreate(user.ID)
	testutil.AssertNoError(t, err)
	if kyc.Status != models.KYCStatusNotStarted {
		t.Errorf("expected not_started, got %s", kyc.Status)
	}
	if kyc.Step != 1 {
		t.Errorf("expected step 1, got %d", kyc.Step)
	}
	if kyc.CanTrade() {
		t.Error("fresh record must not permit trading")
	}

	again, err := svc.GetOrCreate(user.ID)
	testutil.AssertNoError(t, err)
	if again.ID != kyc.ID {
		t.Error("expected the same record on second access")
	}
}

func TestKYCStepsAndSubmit(t *testing.T) {
	t.Run("steps_advance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewKYCService(db, nil, nil)
		user := testutil.CreateTestUser(t, db)

		completeKYCFlow(t, svc, user.ID)

		kyc, err := svc.GetOrCreate(user.ID)
		testutil.AssertNoError(t, err)
		if kyc.Step != 4 {
			t.Errorf("expected step 4, got %d", kyc.Step)
		}
		if kyc.Status != models.KYCStatusNotStarted {
			t.Errorf("saving steps must not submit, got %s", kyc.Status)
		}
	})

	t.Run("submit_incomplete_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewKYCService(db, nil, nil)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SavePersonalInfo(user.ID, KYCPersonalInfo{
			FirstName: "Ada", LastName: "Lovelace", DateOfBirth: "1990-12-10",
		})
		testutil.AssertNoError(t, err)

		_, err = svc.Submit(context.Background(), user.ID)
		testutil.AssertAppError(t, err, "KYC_INCOMPLETE")
	})

	t.Run("submit_moves_to_pending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		hub := events.NewHub()
		svc := NewKYCService(db, hub, nil)
		user := testutil.CreateTestUser(t, db)

		ch, cancel := hub.Subscribe(user.ID)
		defer cancel()

		completeKYCFlow(t, svc, user.ID)
		kyc, err := svc.Submit(context.Background(), user.ID)
		testutil.AssertNoError(t, err)

		if kyc.Status != models.KYCStatusPending {
			t.Errorf("expected pending, got %s", kyc.Status)
		}
		if kyc.SubmittedAt == nil {
			t.Error("expected submitted_at to be set")
		}
		if len(ch) == 0 {
			t.Error("expected a kyc.updated event")
		}

		// Editing after submission is rejected.
		_, err = svc.SavePersonalInfo(user.ID, KYCPersonalInfo{
			FirstName: "X", LastName: "Y", DateOfBirth: "2000-01-01",
		})
		testutil.AssertAppError(t, err, "KYC_ALREADY_SUBMITTED")
	})
}

func TestKYCReview(t *testing.T) {
	t.Run("approve_pending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewKYCService(db, nil, nil)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestKYC(t, db, user.ID, models.KYCStatusPending)

		kyc, err := svc.Approve(context.Background(), user.ID)
		testutil.AssertNoError(t, err)
		if kyc.Status != models.KYCStatusApproved {
			t.Errorf("expected approved, got %s", kyc.Status)
		}
		if kyc.ReviewedAt == nil {
			t.Error("expected reviewed_at to be set")
		}
		if !kyc.CanTrade() {
			t.Error("approved record must permit trading")
		}
	})

	t.Run("reject_pending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewKYCService(db, nil, nil)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestKYC(t, db, user.ID, models.KYCStatusPending)

		kyc, err := svc.Reject(context.Background(), user.ID, "blurry document")
		testutil.AssertNoError(t, err)
		if kyc.Status != models.KYCStatusRejected {
			t.Errorf("expected rejected, got %s", kyc.Status)
		}
		if kyc.RejectionReason != "blurry document" {
			t.Errorf("unexpected reason %q", kyc.RejectionReason)
		}
	})

	t.Run("review_requires_pending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewKYCService(db, nil, nil)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestKYC(t, db, user.ID, models.KYCStatusApproved)

		_, err := svc.Approve(context.Background(), user.ID)
		testutil.AssertAppError(t, err, "KYC_NOT_PENDING")

		_, err = svc.Reject(context.Background(), user.ID, "n/a")
		testutil.AssertAppError(t, err, "KYC_NOT_PENDING")
	})

	t.Run("review_unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewKYCService(db, nil, nil)

		_, err := svc.Approve(context.Background(), "00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "KYC_NOT_FOUND")
	})
}

func TestKYCRetry(t *testing.T) {
	t.Run("rejected_returns_to_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewKYCService(db, nil, nil)
		user := testutil.CreateTestUser(t, db)
		rejected := testutil.CreateTestKYC(t, db, user.ID, models.KYCStatusRejected)
		rejected.RejectionReason = "blurry document"
		db.Save(rejected)

		kyc, err := svc.Retry(user.ID)
		testutil.AssertNoError(t, err)

		if kyc.Status != models.KYCStatusNotStarted {
			t.Errorf("expected not_started, got %s", kyc.Status)
		}
		if kyc.Step != 1 {
			t.Errorf("expected step 1, got %d", kyc.Step)
		}
		if kyc.DocumentFrontURL != "" || kyc.SelfieURL != "" {
			t.Error("expected documents cleared")
		}
		if kyc.RejectionReason != "" {
			t.Error("expected rejection reason cleared")
		}
		if kyc.SubmittedAt != nil || kyc.ReviewedAt != nil {
			t.Error("expected timestamps cleared")
		}
	})

	t.Run("retry_requires_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewKYCService(db, nil, nil)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestKYC(t, db, user.ID, models.KYCStatusPending)

		_, err := svc.Retry(user.ID)
		testutil.AssertAppError(t, err, "KYC_NOT_REJECTED")
	})
}
