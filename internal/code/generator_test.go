package code

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureGenerator_VerificationCode(t *testing.T) {
	gen := NewSecureGenerator()

	got, err := gen.VerificationCode()
	require.NoError(t, err)
	assert.Len(t, got, 10)
	for _, r := range got {
		assert.Contains(t, alphabet, string(r), "code must only use the alphanumeric alphabet")
	}
}

func TestSecureGenerator_VerificationCode_Fresh(t *testing.T) {
	gen := NewSecureGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		got, err := gen.VerificationCode()
		require.NoError(t, err)
		assert.False(t, seen[got], "codes must not repeat across issues")
		seen[got] = true
	}
}

func TestSecureGenerator_CouponCode(t *testing.T) {
	gen := NewSecureGenerator()

	got := gen.CouponCode()
	require.True(t, strings.HasPrefix(got, "COUPON-"))

	_, err := uuid.Parse(strings.TrimPrefix(got, "COUPON-"))
	assert.NoError(t, err, "suffix should be a valid uuid")

	assert.NotEqual(t, got, gen.CouponCode(), "codes must be unique")
}
