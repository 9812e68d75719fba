package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"hawker/internal/core/domain/model/order"
)

const pickupTokenBytes = 16

var (
	ErrTokenMissing     = errors.New("pickup token has not been issued")
	ErrTokenAlreadyUsed = errors.New("pickup token has already been used")
	ErrTokenMismatch    = errors.New("pickup token does not match")
)

// PickupTokenService issues 128-bit pickup secrets and checks them at the counter.
type PickupTokenService struct {
	random io.Reader
}

func NewPickupTokenService() PickupTokenService {
	return PickupTokenService{random: rand.Reader}
}

// NewPickupTokenServiceWithRandom swaps the entropy source; tests use it for
// deterministic tokens.
func NewPickupTokenServiceWithRandom(random io.Reader) PickupTokenService {
	return PickupTokenService{random: random}
}

// DigestPickupToken is the lowercase hex SHA-256 of the token text.
func DigestPickupToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Issue generates a token, attaches it to o and returns the plaintext. A previous
// token on o is replaced.
func (s PickupTokenService) Issue(o *order.Order) (string, error) {
	raw := make([]byte, pickupTokenBytes)
	if _, err := io.ReadFull(s.random, raw); err != nil {
		return "", fmt.Errorf("generate pickup token: %w", err)
	}

	plaintext := hex.EncodeToString(raw)
	token, err := order.NewPickupToken(plaintext, DigestPickupToken(plaintext))
	if err != nil {
		return "", err
	}
	if err = o.IssuePickupToken(token); err != nil {
		return "", err
	}
	return plaintext, nil
}

// Verify consumes o's token when presented matches it.
func (s PickupTokenService) Verify(o *order.Order, presented string, now time.Time) error {
	token := o.PickupToken()
	if !token.IsIssued() {
		return ErrTokenMissing
	}
	if token.IsUsed() {
		return ErrTokenAlreadyUsed
	}

	want := []byte(token.Digest())
	got := []byte(DigestPickupToken(presented))
	if subtle.ConstantTimeCompare(want, got) != 1 {
		return ErrTokenMismatch
	}

	return o.ConsumePickupToken(now)
}
