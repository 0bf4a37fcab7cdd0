package services

import (
	"testing"

	"xrpvault/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Ada@Example.com", "password123", "Ada Lovelace")
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Fatal("expected non-empty user ID")
		}
		if user.Email != "ada@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
		if user.Password == "password123" {
			t.Error("password stored in plaintext")
		}
		if !svc.VerifyPassword(user, "password123") {
			t.Error("expected password to verify")
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("dup@example.com", "password123", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("DUP@example.com", "password456", "")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "password123", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAttemptLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	created, err := svc.CreateUser("login@example.com", "password123", "")
	testutil.AssertNoError(t, err)

	t.Run("success_records_login_time", func(t *testing.T) {
		user, err := svc.AttemptLogin("login@example.com", "password123")
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %s, got %s", created.ID, user.ID)
		}
		if user.LastLoginAt == nil {
			t.Error("expected last_login_at to be set")
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := svc.AttemptLogin("login@example.com", "wrongpassword")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email_same_error", func(t *testing.T) {
		_, err := svc.AttemptLogin("nobody@example.com", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestStoreAndGetRefreshTokenHash(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user, err := svc.CreateUser("refresh@example.com", "password123", "")
	testutil.AssertNoError(t, err)

	hash := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.ID, hash))

	stored, err := svc.GetRefreshTokenHash(user.ID)
	testutil.AssertNoError(t, err)
	if stored != hash {
		t.Errorf("expected %s, got %s", hash, stored)
	}

	t.Run("unknown_user", func(t *testing.T) {
		err := svc.StoreRefreshTokenHash("00000000-0000-0000-0000-000000000000", hash)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
