package wallet

import (
	"strings"
	"testing"
)

// validPhrase is a checksum-valid 12-word BIP39 mnemonic.
const validPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestValidateSeedPhrase(t *testing.T) {
	t.Run("valid_12_words", func(t *testing.T) {
		if err := ValidateSeedPhrase(validPhrase); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("case_and_whitespace_insensitive", func(t *testing.T) {
		messy := "  Abandon ABANDON abandon   abandon abandon abandon abandon abandon abandon abandon abandon About "
		if err := ValidateSeedPhrase(messy); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("wrong_word_count", func(t *testing.T) {
		err := ValidateSeedPhrase("abandon abandon abandon")
		if err == nil {
			t.Fatal("expected error for 3-word phrase")
		}
		if !strings.Contains(err.Error(), "12 or 24 words") {
			t.Errorf("unexpected message: %v", err)
		}
	})

	t.Run("unknown_words_listed", func(t *testing.T) {
		phrase := "zzzz abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
		err := ValidateSeedPhrase(phrase)
		if err == nil {
			t.Fatal("expected error for unknown word")
		}
		if !strings.Contains(err.Error(), "invalid words: zzzz") {
			t.Errorf("unexpected message: %v", err)
		}
	})

	t.Run("bad_checksum", func(t *testing.T) {
		// All wordlist words but an invalid checksum.
		phrase := strings.TrimSpace(strings.Repeat("abandon ", 12))
		err := ValidateSeedPhrase(phrase)
		if err == nil {
			t.Fatal("expected checksum error")
		}
		if !strings.Contains(err.Error(), "checksum") {
			t.Errorf("unexpected message: %v", err)
		}
	})
}

func TestGenerateSeedPhrase(t *testing.T) {
	phrase, err := GenerateSeedPhrase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(strings.Fields(phrase)); got != 12 {
		t.Errorf("expected 12 words, got %d", got)
	}
	if err := ValidateSeedPhrase(phrase); err != nil {
		t.Errorf("generated phrase failed validation: %v", err)
	}

	other, err := GenerateSeedPhrase()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other == phrase {
		t.Error("expected distinct phrases across generations")
	}
}

func TestDerive(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		first, err := Derive(validPhrase)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := Derive("  " + strings.ToUpper(validPhrase) + "  ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *first != *second {
			t.Errorf("expected identical addresses for the same phrase, got %+v vs %+v", first, second)
		}
	})

	t.Run("address_shapes", func(t *testing.T) {
		addrs, err := Derive(validPhrase)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.HasPrefix(addrs.XRP, "r") || len(addrs.XRP) != 34 {
			t.Errorf("bad XRP address: %s", addrs.XRP)
		}
		if !strings.HasPrefix(addrs.EVM, "0x") || len(addrs.EVM) != 42 {
			t.Errorf("bad EVM address: %s", addrs.EVM)
		}
		if addrs.Solana == "" {
			t.Error("expected non-empty Solana address")
		}
		if !strings.HasPrefix(addrs.Tron, "T") {
			t.Errorf("bad TRON address: %s", addrs.Tron)
		}
		if !strings.HasPrefix(addrs.Bitcoin, "1") {
			t.Errorf("bad Bitcoin address: %s", addrs.Bitcoin)
		}
	})

	t.Run("families_differ", func(t *testing.T) {
		addrs, err := Derive(validPhrase)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if addrs.Solana == addrs.Tron[1:] || addrs.Solana == addrs.Bitcoin[1:] {
			t.Error("expected distinct seed windows per family")
		}
	})

	t.Run("invalid_phrase", func(t *testing.T) {
		if _, err := Derive("not a phrase"); err == nil {
			t.Fatal("expected error for invalid phrase")
		}
	})
}

func TestHashSeedPhrase(t *testing.T) {
	digest := HashSeedPhrase(validPhrase)
	if len(digest) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(digest))
	}
	if digest != HashSeedPhrase("  "+strings.ToUpper(validPhrase)) {
		t.Error("expected normalization-invariant digest")
	}
	if digest == HashSeedPhrase("some other phrase") {
		t.Error("expected distinct digests for distinct phrases")
	}
}
