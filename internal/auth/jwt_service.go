package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenExpiry is the duration for which issued tokens are valid.
const TokenExpiry = 5 * time.Minute

// Authentication failures. The messages double as the reply bodies, so
// they keep the wording the API has always used.
var (
	ErrTokenRequired     = errors.New("Token Required")
	ErrBearerRequired    = errors.New("Bearer Required")
	ErrInvalidSignature  = errors.New("Invalid Token Signature")
	ErrSignatureRequired = errors.New("Token Signature is required")
	ErrTokenExpired      = errors.New("Token Expired")
	ErrEmailRequired     = errors.New("Token EMAIL required")
)

// Claims carries the identity asserted by a bearer token.
type Claims struct {
	Email string `json:"email"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies HS256 bearer tokens.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService creates a token service with the given shared secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue produces a signed token embedding the email and admin flag,
// expiring TokenExpiry from now.
func (s *JWTService) Issue(email string, admin bool) (string, error) {
	claims := &Claims{
		Email: email,
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(s.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the token's signature and expiry and returns its claims.
// Failures are reported as one of the sentinel errors above.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	if parts := strings.Split(tokenString, "."); len(parts) != 3 || parts[2] == "" {
		return nil, ErrSignatureRequired
	}

	// Claims validation is done by hand below so the expiry check runs
	// against the service clock instead of the package-global one.
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorSignatureInvalid != 0 {
			return nil, ErrInvalidSignature
		}
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSignature
	}
	if claims.ExpiresAt != nil && s.now().After(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}
	if claims.Email == "" {
		return nil, ErrEmailRequired
	}

	return claims, nil
}
