package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/jrsteele09/go-inventory-server/internal/errors"
)

// AssertionSigner builds and signs the short-lived RS256 assertion
// presented to the external authorization server under the jwt-bearer
// grant. The private key is supplied as PEM at construction time; any
// inability to produce a genuine signature is a hard ErrSigning failure,
// never a fabricated or unsigned value.
type AssertionSigner struct {
	signer   *KeyPairSigner
	issuer   string
	scope    string
	audience string
	expiry   time.Duration
}

// NewAssertionSigner parses the PEM-encoded RSA private key and returns a
// signer for the given service-account identity. issuer is the service
// account identifier, audience the token endpoint URL the assertion is
// presented to.
func NewAssertionSigner(issuer, scope, audience, privateKeyPEM string, expiry time.Duration) (*AssertionSigner, error) {
	keyPair, err := LoadKeyPairFromPEM("", privateKeyPEM)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrSigning, "load service account key: %v", err)
	}
	return &AssertionSigner{
		signer:   NewKeyPairSigner(keyPair),
		issuer:   issuer,
		scope:    scope,
		audience: audience,
		expiry:   expiry,
	}, nil
}

// Sign produces a fresh assertion. Assertions are single-use in the
// baseline design: one per delegated-access need, never reused across
// requests.
func (s *AssertionSigner) Sign() (string, error) {
	now := NowTimeFunc()
	claims := jwt.MapClaims{
		"iss":   s.issuer,   // The service-account identity asserting itself
		"scope": s.scope,    // Access scope being requested
		"aud":   s.audience, // The token endpoint this assertion is presented to
		"iat":   now.Unix(),
		"exp":   now.Add(s.expiry).Unix(),
	}

	signedToken, err := s.signer.Sign(claims)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrSigning, "sign assertion: %v", err)
	}
	return signedToken, nil
}

// VerificationKey exposes the public half of the signing key so callers
// can validate assertions they just produced.
func (s *AssertionSigner) VerificationKey(token *jwt.Token) (any, error) {
	return s.signer.GetVerificationKey(token)
}
