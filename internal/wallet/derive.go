// Package wallet derives per-chain addresses from a BIP39 seed phrase.
//
// Only the mnemonic validation and seed derivation follow the BIP39
// standard. The per-chain addresses are display-only placeholders: each is
// a fixed byte window of the seed formatted with a chain-appropriate prefix
// and alphabet, not an HD-path key derivation. They are deterministic and
// syntactically plausible but carry no spendable keys.
package wallet

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	bip39 "github.com/tyler-smith/go-bip39"
)

// DerivedAddresses holds one address per supported chain family. The XRP
// address is always present; the others are best-effort.
type DerivedAddresses struct {
	XRP     string
	EVM     string
	Solana  string
	Tron    string
	Bitcoin string
}

// Normalize lowercases a seed phrase and collapses runs of whitespace.
func Normalize(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(phrase))), " ")
}

// GenerateSeedPhrase returns a new random 12-word BIP39 mnemonic.
func GenerateSeedPhrase() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateSeedPhrase checks that a phrase is exactly 12 or 24 words, that
// every word is in the BIP39 English wordlist, and that the checksum is
// valid. The returned error describes the first failure for inline display.
func ValidateSeedPhrase(phrase string) error {
	normalized := Normalize(phrase)
	words := strings.Fields(normalized)

	if len(words) != 12 && len(words) != 24 {
		return fmt.Errorf("recovery phrase must be 12 or 24 words (you entered %d)", len(words))
	}

	if bip39.IsMnemonicValid(normalized) {
		return nil
	}

	// Distinguish bad words from a bad checksum for a clearer message.
	wordlist := make(map[string]bool, 2048)
	for _, w := range bip39.GetWordList() {
		wordlist[w] = true
	}
	var invalid []string
	for _, w := range words {
		if !wordlist[w] {
			invalid = append(invalid, w)
		}
	}
	if len(invalid) > 0 {
		if len(invalid) > 3 {
			return fmt.Errorf("invalid words: %s...", strings.Join(invalid[:3], ", "))
		}
		return fmt.Errorf("invalid words: %s", strings.Join(invalid, ", "))
	}

	return fmt.Errorf("recovery phrase checksum is invalid")
}

// Seed byte windows for the placeholder per-chain addresses. The BIP39
// seed is 64 bytes; each family reads a distinct window so the rendered
// addresses differ.
const (
	evmWindowStart     = 32
	tronWindowStart    = 1
	bitcoinWindowStart = 12
)

// Derive validates the phrase and produces one address per chain family.
func Derive(phrase string) (*DerivedAddresses, error) {
	if err := ValidateSeedPhrase(phrase); err != nil {
		return nil, err
	}

	seed := bip39.NewSeed(Normalize(phrase), "")

	return &DerivedAddresses{
		XRP:     deriveXRPAddress(seed),
		EVM:     "0x" + hex.EncodeToString(seed[evmWindowStart:evmWindowStart+20]),
		Solana:  base58.Encode(seed[:32]),
		Tron:    "T" + base58.Encode(seed[tronWindowStart:tronWindowStart+20]),
		Bitcoin: "1" + base58.Encode(seed[bitcoinWindowStart:bitcoinWindowStart+20]),
	}, nil
}

// deriveXRPAddress renders a deterministic classic-style address from the
// seed: 'r' followed by 33 hex characters of the leading seed bytes. This
// matches the pseudo-address scheme wallets derived under, so re-imports
// resolve to the same address.
func deriveXRPAddress(seed []byte) string {
	h := hex.EncodeToString(seed[:20])
	return "r" + h[:33]
}

// HashSeedPhrase returns the SHA-256 hex digest of the normalized phrase.
// The digest is stored as a non-reversible fingerprint so a re-import of
// the same phrase can be detected; the phrase itself is never persisted.
func HashSeedPhrase(phrase string) string {
	sum := sha256.Sum256([]byte(Normalize(phrase)))
	return hex.EncodeToString(sum[:])
}
