package order

import (
	"time"

	"hawker/internal/pkg/errs"
)

// PickupToken is the single-use secret a customer presents at the counter. Only the
// digest is persisted. The plaintext lives in memory between issue and the end of the
// request that issued it, or until the token is consumed.
type PickupToken struct {
	digest    string
	plaintext string
	usedAt    *time.Time
}

func NewPickupToken(plaintext, digest string) (PickupToken, error) {
	if digest == "" {
		return PickupToken{}, errs.NewValueIsRequiredError("pickupTokenDigest")
	}
	if plaintext == "" {
		return PickupToken{}, errs.NewValueIsRequiredError("pickupToken")
	}
	return PickupToken{digest: digest, plaintext: plaintext}, nil
}

// RestorePickupToken rebuilds a token read from storage; the plaintext is never there.
func RestorePickupToken(digest string, usedAt *time.Time) PickupToken {
	return PickupToken{digest: digest, usedAt: copyTime(usedAt)}
}

func (t PickupToken) Digest() string { return t.digest }
func (t PickupToken) Plaintext() string { return t.plaintext }
func (t PickupToken) UsedAt() *time.Time { return copyTime(t.usedAt) }
func (t PickupToken) IsIssued() bool { return t.digest != "" }
func (t PickupToken) IsUsed() bool { return t.usedAt != nil }

func (t PickupToken) consume(now time.Time) PickupToken {
	return PickupToken{digest: t.digest, usedAt: &now}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
