package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/worldsell/internal"
	"github.com/golang-jwt/jwt/v5"
)

const PermissionManageCatalog = "manage_catalog"

// Claims represents admin JWT claims
type Claims struct {
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// TokenVerifier validates RS256 tokens issued by the WorldSell back office.
type TokenVerifier struct {
	publicKey *rsa.PublicKey
	issuer    string
	leeway    time.Duration
	logger    *slog.Logger
}

func NewTokenVerifier(publicKey *rsa.PublicKey, issuer string, logger *slog.Logger) *TokenVerifier {
	return &TokenVerifier{
		publicKey: publicKey,
		issuer:    issuer,
		leeway:    30 * time.Second,
		logger:    logger,
	}
}

// ValidateToken validates a JWT token and returns its claims
func (v *TokenVerifier) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.publicKey, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		v.logger.Debug("token rejected", "error", err)
		return nil, internal.ErrInvalidToken.WithCause(err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}

func (c *Claims) Principal() *internal.Principal {
	return &internal.Principal{
		Subject:     c.Subject,
		Permissions: c.Permissions,
	}
}
