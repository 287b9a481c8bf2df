package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tally/internal/domain"
	"tally/internal/domain/models"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// VerifyingExtractor implements IdentityExtractor with full signature
// verification against the identity provider's JWKS endpoint. It is the
// hardened deployment mode for environments where no upstream gateway
// verifies tokens before they reach the authorizer.
type VerifyingExtractor struct {
	jwks   keyfunc.Keyfunc
	logger *slog.Logger
}

// NewVerifyingExtractor creates an extractor that fetches public keys from
// the given JWKS endpoint. Keys are cached and refreshed automatically based
// on HTTP cache headers.
func NewVerifyingExtractor(jwksURL string, logger *slog.Logger) (*VerifyingExtractor, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	jwks, err := keyfunc.NewDefaultCtx(context.Background(), []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("create JWKS client: %w", err)
	}

	logger.Info("verifying extractor initialized", "jwks_url", jwksURL)

	return &VerifyingExtractor{
		jwks:   jwks,
		logger: logger,
	}, nil
}

// ExtractIdentity verifies the credential's signature and then extracts the
// user identifier with the same claim precedence as the unverified path.
func (e *VerifyingExtractor) ExtractIdentity(credential string) (string, error) {
	tokenString := strings.TrimSpace(strings.TrimPrefix(credential, "Bearer "))
	if tokenString == "" {
		return "", fmt.Errorf("empty credential: %w", domain.ErrCredentialDecode)
	}

	claims := &models.AccessTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, e.jwks.Keyfunc)
	if err != nil || !token.Valid {
		e.logger.Debug("credential verification failed", "error", err)
		return "", fmt.Errorf("verify credential: %w", domain.ErrCredentialDecode)
	}

	// Prevent algorithm confusion attacks - allow only RS256 or ES256
	switch token.Method.Alg() {
	case "RS256", "ES256":
	default:
		e.logger.Warn("credential uses unexpected algorithm", "algorithm", token.Method.Alg())
		return "", fmt.Errorf("unexpected signing algorithm: %w", domain.ErrCredentialDecode)
	}

	userID := claims.UserID()
	if userID == "" {
		return "", fmt.Errorf("no usable identity claim: %w", domain.ErrCredentialDecode)
	}

	return userID, nil
}
