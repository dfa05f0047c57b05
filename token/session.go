package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/jrsteele09/go-inventory-server/internal/errors"
	"github.com/jrsteele09/go-inventory-server/users"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// SessionClaims is the identity embedded in a session token. Claims are
// immutable once encoded; the signature covers the exact header.payload
// bytes, so any mutation of either part invalidates the token.
type SessionClaims struct {
	Email string         `json:"email"`
	Role  users.RoleType `json:"role"`
	jwt.RegisteredClaims
}

// SessionService issues and verifies stateless session tokens. Nothing is
// persisted server-side: a token's validity is recomputable from its bytes
// plus the signing secret.
type SessionService struct {
	signer *HMACsigner
	expiry time.Duration
}

// NewSessionService creates a session service signing with the given
// process-wide secret. The secret is passed in explicitly so tests can run
// against fixture material.
func NewSessionService(secret string, expiry time.Duration) *SessionService {
	return &SessionService{
		signer: NewHMACSigner(secret),
		expiry: expiry,
	}
}

// Issue creates a signed session token for an authenticated user
func (s *SessionService) Issue(user *users.User) (string, error) {
	now := NowTimeFunc()
	claims := &SessionClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	signedToken, err := s.signer.Sign(claims)
	if err != nil {
		return "", apperrors.Wrapf(err, "failed to issue session token")
	}
	return signedToken, nil
}

// Verify parses a session token and returns its claims. Failures are
// classified as ErrTokenMalformed, ErrTokenSignature or ErrTokenExpired;
// an expired token is rejected even when its signature checks out.
func (s *SessionService) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, s.signer.GetVerificationKey)
	if err != nil {
		switch {
		case apperrors.Is(err, jwt.ErrTokenMalformed):
			return nil, apperrors.Wrapf(apperrors.ErrTokenMalformed, "verify session token: %v", err)
		case apperrors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, apperrors.Wrapf(apperrors.ErrTokenSignature, "verify session token: %v", err)
		case apperrors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.Wrapf(apperrors.ErrTokenExpired, "verify session token: %v", err)
		default:
			// Unexpected signing method and other verification faults
			return nil, apperrors.Wrapf(apperrors.ErrTokenSignature, "verify session token: %v", err)
		}
	}
	if !parsed.Valid {
		return nil, apperrors.ErrTokenSignature
	}
	return claims, nil
}
