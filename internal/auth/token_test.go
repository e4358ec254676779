package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nikhil/zsechat/internal/apperrors"
	"github.com/nikhil/zsechat/internal/models"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-which-is-long-enough"

func sign(t *testing.T, method jwt.SigningMethod, secret interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestVerifier_Verify(t *testing.T) {
	verifier := NewVerifier(testSecret)
	exp := time.Now().Add(time.Hour).Unix()

	t.Run("should return the nickname of a token issued with the same secret", func(t *testing.T) {
		req := require.New(t)
		token, err := NewIssuer(testSecret, time.Hour).Issue("alice")
		req.NoError(err)

		identity, err := verifier.Verify(token)

		req.NoError(err)
		req.Equal(models.Identity("alice"), identity)
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		req := require.New(t)
		token, err := NewIssuer("another-secret", time.Hour).Issue("alice")
		req.NoError(err)

		_, err = verifier.Verify(token)

		req.ErrorIs(err, apperrors.ErrInvalidToken)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		req := require.New(t)
		issuer := NewIssuer(testSecret, time.Hour)
		issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := issuer.Issue("alice")
		req.NoError(err)

		_, err = verifier.Verify(token)

		req.ErrorIs(err, apperrors.ErrInvalidToken)
	})

	t.Run("should reject malformed and empty tokens", func(t *testing.T) {
		req := require.New(t)
		for _, raw := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
			_, err := verifier.Verify(raw)
			req.ErrorIs(err, apperrors.ErrInvalidToken, "token %q", raw)
		}
	})

	t.Run("should reject a token without a nickname claim", func(t *testing.T) {
		req := require.New(t)
		token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"exp": exp})

		_, err := verifier.Verify(token)

		req.ErrorIs(err, apperrors.ErrInvalidToken)
	})

	t.Run("should reject a non-string nickname claim", func(t *testing.T) {
		req := require.New(t)
		token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"nickname": 42, "exp": exp})

		_, err := verifier.Verify(token)

		req.ErrorIs(err, apperrors.ErrInvalidToken)
	})

	t.Run("should reject a token without expiry", func(t *testing.T) {
		req := require.New(t)
		token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"nickname": "alice"})

		_, err := verifier.Verify(token)

		req.ErrorIs(err, apperrors.ErrInvalidToken)
	})

	t.Run("should reject other algorithms even with the right secret", func(t *testing.T) {
		req := require.New(t)
		hs512 := sign(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.MapClaims{"nickname": "alice", "exp": exp})
		none := sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"nickname": "alice", "exp": exp})

		_, err := verifier.Verify(hs512)
		req.ErrorIs(err, apperrors.ErrInvalidToken)

		_, err = verifier.Verify(none)
		req.ErrorIs(err, apperrors.ErrInvalidToken)
	})
}

func TestIssuer_Issue(t *testing.T) {
	t.Run("should refuse an empty nickname", func(t *testing.T) {
		req := require.New(t)

		token, err := NewIssuer(testSecret, time.Hour).Issue("")

		req.Error(err)
		req.Empty(token)
	})

	t.Run("should set exp from the configured ttl", func(t *testing.T) {
		req := require.New(t)
		now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
		issuer := NewIssuer(testSecret, 7*24*time.Hour)
		issuer.now = func() time.Time { return now }

		raw, err := issuer.Issue("bob")
		req.NoError(err)

		claims := jwt.MapClaims{}
		_, _, err = jwt.NewParser().ParseUnverified(raw, claims)
		req.NoError(err)
		expiry, err := claims.GetExpirationTime()
		req.NoError(err)
		req.Equal(now.Add(7*24*time.Hour).Unix(), expiry.Unix())
		req.Equal("bob", claims["nickname"])
	})
}
