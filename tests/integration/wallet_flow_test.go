package integration

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestWalletFlow_GenerateListDelete(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "wallet@test.com", "password123")

	// Generate returns the seed phrase exactly once
	rec := app.request("POST", "/api/v1/wallets/generate", `{"name":"Savings"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	phrase, ok := result["seed_phrase"].(string)
	if !ok || len(strings.Fields(phrase)) != 12 {
		t.Fatalf("expected 12-word seed phrase, got %v", result["seed_phrase"])
	}
	wallet := result["wallet"].(map[string]interface{})
	if wallet["name"] != "Savings" {
		t.Errorf("expected name Savings, got %v", wallet["name"])
	}
	xrpAddress, _ := wallet["xrp_address"].(string)
	if !strings.HasPrefix(xrpAddress, "r") {
		t.Errorf("expected XRP classic address, got %q", xrpAddress)
	}
	if _, leaked := wallet["seed_phrase_hash"]; leaked {
		t.Error("seed phrase hash must not appear in responses")
	}

	// List shows the wallet
	rec = app.request("GET", "/api/v1/wallets", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	wallets := parseJSON(t, rec)["wallets"].([]interface{})
	if len(wallets) != 1 {
		t.Fatalf("expected 1 wallet, got %d", len(wallets))
	}

	// Delete removes it
	walletID := wallet["id"].(string)
	rec = app.request("DELETE", "/api/v1/wallets/"+walletID, "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/wallets/"+walletID, "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestWalletFlow_ImportAndDuplicates(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "import@test.com", "password123")

	// Generate, then re-import the same phrase into the same account
	rec := app.request("POST", "/api/v1/wallets/generate", `{"name":"First"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate failed: %d %s", rec.Code, rec.Body.String())
	}
	phrase := parseJSON(t, rec)["seed_phrase"].(string)

	body := fmt.Sprintf(`{"name":"Again","seed_phrase":%q}`, phrase)
	rec = app.request("POST", "/api/v1/wallets/import", body, token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate import, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "WALLET_EXISTS" {
		t.Errorf("expected WALLET_EXISTS, got %v", errObj["code"])
	}

	// The same phrase imports fine for a different user
	otherToken, _, _ := app.registerUser(t, "other@test.com", "password123")
	rec = app.request("POST", "/api/v1/wallets/import", body, otherToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("cross-user import failed: %d %s", rec.Code, rec.Body.String())
	}

	// Garbage phrases are rejected
	rec = app.request("POST", "/api/v1/wallets/import",
		`{"seed_phrase":"definitely not a valid recovery phrase at all"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid phrase, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj = parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "INVALID_SEED_PHRASE" {
		t.Errorf("expected INVALID_SEED_PHRASE, got %v", errObj["code"])
	}
}

func TestWalletFlow_OwnershipScoping(t *testing.T) {
	app := setupApp(t)
	ownerToken, _, _ := app.registerUser(t, "owner@test.com", "password123")
	otherToken, _, _ := app.registerUser(t, "intruder@test.com", "password123")

	rec := app.request("POST", "/api/v1/wallets/generate", `{"name":"Private"}`, ownerToken)
	wallet := parseJSON(t, rec)["wallet"].(map[string]interface{})
	walletID := wallet["id"].(string)

	rec = app.request("GET", "/api/v1/wallets/"+walletID, "", otherToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign wallet, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("DELETE", "/api/v1/wallets/"+walletID, "", otherToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting foreign wallet, got %d: %s", rec.Code, rec.Body.String())
	}

	// Still intact for the owner
	rec = app.request("GET", "/api/v1/wallets/"+walletID, "", ownerToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d: %s", rec.Code, rec.Body.String())
	}
}
