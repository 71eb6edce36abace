package auth

import (
	"errors"
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apierrors "patchwork/internal/errors"
	"patchwork/internal/repository"
)

// ContextKey is the echo context key the verified claims are stored under.
const ContextKey = "credentials"

// Middleware returns the bearer-token authentication middleware. It reads
// the Authorization header, verifies the token, stores the claims in the
// context, and arranges for every successful response to carry a freshly
// signed token in its Authorization header, sliding the expiry forward.
func Middleware(jwtSvc *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtSvc.Verify(token)
		},
		SuccessHandler: func(c echo.Context) {
			c.Response().Before(func() {
				// Only successful replies slide the expiry forward.
				if c.Response().Status >= http.StatusBadRequest {
					return
				}
				claims, ok := ClaimsFrom(c)
				if !ok {
					return
				}
				if token, err := jwtSvc.Issue(claims.Email, claims.Admin); err == nil {
					c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+token)
				}
			})
		},
		ErrorHandler: func(c echo.Context, err error) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			switch {
			case header == "":
				return unauthorized(ErrTokenRequired.Error())
			case !strings.HasPrefix(header, "Bearer "):
				return unauthorized(ErrBearerRequired.Error())
			}
			for _, sentinel := range []error{ErrSignatureRequired, ErrInvalidSignature, ErrTokenExpired, ErrEmailRequired} {
				if errors.Is(err, sentinel) {
					return unauthorized(sentinel.Error())
				}
			}
			return unauthorized(err.Error())
		},
	})
}

// ClaimsFrom returns the verified claims stored by Middleware, if any.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	return claims, ok
}

// RequireOwnerOrAdmin gates a route on the token subject matching the
// email path parameter, or the token carrying the admin flag.
func RequireOwnerOrAdmin(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return unauthorized("Unauthorized")
			}
			if claims.Email != c.Param(param) && !claims.Admin {
				return unauthorized("Invalid User Email")
			}
			return next(c)
		}
	}
}

// RequireAdmin gates a route on a fresh user-store lookup confirming the
// token subject is an admin. The claim's own admin flag is not trusted
// here: a token can be up to TokenExpiry stale.
func RequireAdmin(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return unauthorized("Unauthorized")
			}
			user, err := users.FindByEmail(c.Request().Context(), claims.Email)
			if err != nil || !user.Admin {
				return echo.NewHTTPError(http.StatusForbidden,
					apierrors.New("Normal User not allowed", apierrors.CodeForbidden))
			}
			return next(c)
		}
	}
}

func unauthorized(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized,
		apierrors.New(message, apierrors.CodeUnauthorized))
}
