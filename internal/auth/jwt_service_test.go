package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		email string
		admin bool
	}{
		{name: "regular user", email: "ann@x.com", admin: false},
		{name: "admin user", email: "root@x.com", admin: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewJWTService("test-secret")

			token, err := svc.Issue(tt.email, tt.admin)
			assert.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := svc.Verify(token)
			assert.NoError(t, err)
			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.admin, claims.Admin)
		})
	}
}

func TestJWTService_Expiry(t *testing.T) {
	svc := NewJWTService("test-secret")
	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue("ann@x.com", false)
	assert.NoError(t, err)

	// still valid just before the deadline
	svc.now = func() time.Time { return issuedAt.Add(TokenExpiry - time.Second) }
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	// strictly after issuance + 5 minutes
	svc.now = func() time.Time { return issuedAt.Add(TokenExpiry + time.Second) }
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTService_TamperedSignature(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.Issue("ann@x.com", false)
	assert.NoError(t, err)

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestJWTService_MissingSignature(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.Issue("ann@x.com", false)
	assert.NoError(t, err)

	parts := strings.Split(token, ".")

	_, err = svc.Verify(parts[0] + "." + parts[1])
	assert.ErrorIs(t, err, ErrSignatureRequired)

	_, err = svc.Verify(parts[0] + "." + parts[1] + ".")
	assert.ErrorIs(t, err, ErrSignatureRequired)
}

func TestJWTService_MissingEmailClaim(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.Issue("", false)
	assert.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer := NewJWTService("one-secret")
	verifier := NewJWTService("another-secret")

	token, err := issuer.Issue("ann@x.com", false)
	assert.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}
