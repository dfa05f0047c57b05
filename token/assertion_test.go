package token_test

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jrsteele09/go-inventory-server/internal/errors"
	"github.com/jrsteele09/go-inventory-server/token"
)

const (
	testIssuer   = "inventory-bot@project.iam.gserviceaccount.com"
	testScope    = "https://www.googleapis.com/auth/spreadsheets"
	testAudience = "https://oauth2.googleapis.com/token"
)

func newTestAssertionSigner(t *testing.T) *token.AssertionSigner {
	t.Helper()

	keyPair, err := token.GenerateRSAKeyPair("test-key", 2048)
	require.NoError(t, err)
	privatePEM, err := keyPair.ExportPrivateKeyPEM()
	require.NoError(t, err)

	signer, err := token.NewAssertionSigner(testIssuer, testScope, testAudience, privatePEM, time.Hour)
	require.NoError(t, err)
	return signer
}

func TestAssertionSignRoundTrip(t *testing.T) {
	issuedAt := time.Now().Truncate(time.Second)
	pinTime(t, issuedAt)

	signer := newTestAssertionSigner(t)
	signed, err := signer.Sign()
	require.NoError(t, err)
	require.Len(t, strings.Split(signed, "."), 3)

	parsed, err := jwt.Parse(signed, signer.VerificationKey)
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, "RS256", parsed.Header["alg"])
	require.Equal(t, "JWT", parsed.Header["typ"])

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, testIssuer, claims["iss"])
	require.Equal(t, testScope, claims["scope"])
	require.Equal(t, testAudience, claims["aud"])
	require.EqualValues(t, issuedAt.Unix(), claims["iat"])
	require.EqualValues(t, issuedAt.Unix()+3600, claims["exp"])
}

func TestAssertionBitFlipInvalidates(t *testing.T) {
	signer := newTestAssertionSigner(t)
	signed, err := signer.Sign()
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	for segment := 0; segment < 3; segment++ {
		mutated := make([]string, 3)
		copy(mutated, parts)
		seg := []byte(mutated[segment])
		mid := len(seg) / 2
		seg[mid] ^= 0x02 // stays within the base64url alphabet for letters
		mutated[segment] = string(seg)

		_, err := jwt.Parse(strings.Join(mutated, "."), signer.VerificationKey)
		require.Error(t, err, "mutated segment %d must not validate", segment)
	}
}

func TestAssertionSignerWrongKeyDoesNotVerify(t *testing.T) {
	signer := newTestAssertionSigner(t)
	other := newTestAssertionSigner(t)

	signed, err := signer.Sign()
	require.NoError(t, err)

	_, err = jwt.Parse(signed, other.VerificationKey)
	require.Error(t, err)
}

func TestNewAssertionSignerRejectsBadKey(t *testing.T) {
	t.Run("garbage PEM", func(t *testing.T) {
		_, err := token.NewAssertionSigner(testIssuer, testScope, testAudience, "not a pem", time.Hour)
		require.ErrorIs(t, err, apperrors.ErrSigning)
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := token.NewAssertionSigner(testIssuer, testScope, testAudience, "", time.Hour)
		require.ErrorIs(t, err, apperrors.ErrSigning)
	})
}

func TestLoadRSAPrivateKeyFromPEMFormats(t *testing.T) {
	keyPair, err := token.GenerateRSAKeyPair("fmt-key", 2048)
	require.NoError(t, err)
	rsaKey := keyPair.PrivateKey.(*rsa.PrivateKey)

	t.Run("PKCS#8", func(t *testing.T) {
		pkcs8PEM, err := keyPair.ExportPrivateKeyPEM()
		require.NoError(t, err)
		loaded, err := token.LoadRSAPrivateKeyFromPEM(pkcs8PEM)
		require.NoError(t, err)
		require.True(t, rsaKey.Equal(loaded))
	})

	t.Run("PKCS#1", func(t *testing.T) {
		pkcs1PEM := pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: x509.MarshalPKCS1PrivateKey(rsaKey),
		})
		loaded, err := token.LoadRSAPrivateKeyFromPEM(string(pkcs1PEM))
		require.NoError(t, err)
		require.True(t, rsaKey.Equal(loaded))
	})
}
