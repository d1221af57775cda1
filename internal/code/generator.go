// Package code supplies the random codes used across the engine. The source
// of randomness is injected as a capability so services stay deterministic
// under test.
package code

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

// Generator produces the opaque random codes the engine hands out.
type Generator interface {
	// VerificationCode returns a fresh alphanumeric code for account
	// activation and password recovery.
	VerificationCode() (string, error)
	// CouponCode returns a fresh system-generated coupon code.
	CouponCode() string
}

const (
	alphabet               = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	verificationCodeLength = 10
	couponCodePrefix       = "COUPON-"
)

// SecureGenerator draws from crypto/rand.
type SecureGenerator struct{}

// NewSecureGenerator returns the production Generator.
func NewSecureGenerator() *SecureGenerator {
	return &SecureGenerator{}
}

// VerificationCode returns a 10-character code over the 62-symbol
// alphanumeric alphabet.
func (*SecureGenerator) VerificationCode() (string, error) {
	buf := make([]byte, verificationCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf), nil
}

// CouponCode returns a "COUPON-<uuid>" code.
func (*SecureGenerator) CouponCode() string {
	return couponCodePrefix + uuid.NewString()
}
