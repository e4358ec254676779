package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nikhil/zsechat/internal/apperrors"
	"github.com/nikhil/zsechat/internal/models"
)

// NicknameClaim is the claim carrying the caller's identity.
const NicknameClaim = "nickname"

// TokenVerifier turns a raw bearer token into a verified identity.
type TokenVerifier interface {
	Verify(rawToken string) (models.Identity, error)
}

// HMACVerifier verifies HS256 tokens signed with a shared secret.
type HMACVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify fails with apperrors.ErrInvalidToken when the token is malformed,
// badly signed, expired, or lacks a string nickname claim.
func (v *HMACVerifier) Verify(rawToken string) (models.Identity, error) {
	if strings.TrimSpace(rawToken) == "" {
		return "", fmt.Errorf("%w: empty token", apperrors.ErrInvalidToken)
	}

	claims := jwt.MapClaims{}
	token, err := v.parser.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, jwt.ErrTokenSignatureInvalid)
	}

	nickname, ok := claims[NicknameClaim].(string)
	if !ok || nickname == "" {
		return "", fmt.Errorf("%w: missing %q claim", apperrors.ErrInvalidToken, NicknameClaim)
	}
	return models.Identity(nickname), nil
}

// Issuer signs tokens the verifier accepts.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a signed token for nickname expiring after the issuer's TTL.
func (i *Issuer) Issue(nickname models.Identity) (string, error) {
	if nickname == "" {
		return "", errors.New("cannot issue a token without a nickname")
	}
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		NicknameClaim: string(nickname),
		"iat":         now.Unix(),
		"exp":         now.Add(i.ttl).Unix(),
	})
	return token.SignedString(i.secret)
}
