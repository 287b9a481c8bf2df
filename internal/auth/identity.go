package auth

import (
	"fmt"
	"log/slog"
	"strings"

	"tally/internal/domain"
	"tally/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

// ClaimsExtractor implements IdentityExtractor by decoding the token's claims
// segment without verifying the signature. Verification is owned by an
// external trust boundary (the API gateway in front of this service, or the
// VerifyingExtractor when enabled); this component assumes it rather than
// re-validating.
type ClaimsExtractor struct {
	parser *jwt.Parser
	logger *slog.Logger
}

// NewClaimsExtractor creates an extractor that decodes claims without
// signature verification.
func NewClaimsExtractor(logger *slog.Logger) *ClaimsExtractor {
	return &ClaimsExtractor{
		parser: jwt.NewParser(),
		logger: logger,
	}
}

// ExtractIdentity decodes the credential and extracts the user identifier
// using the claim precedence defined on AccessTokenClaims.
func (e *ClaimsExtractor) ExtractIdentity(credential string) (string, error) {
	token := strings.TrimSpace(strings.TrimPrefix(credential, "Bearer "))
	if token == "" {
		return "", fmt.Errorf("empty credential: %w", domain.ErrCredentialDecode)
	}

	claims := &models.AccessTokenClaims{}
	if _, _, err := e.parser.ParseUnverified(token, claims); err != nil {
		e.logger.Debug("credential decode failed", "error", err)
		return "", fmt.Errorf("parse credential: %w", domain.ErrCredentialDecode)
	}

	userID := claims.UserID()
	if userID == "" {
		return "", fmt.Errorf("no usable identity claim: %w", domain.ErrCredentialDecode)
	}

	return userID, nil
}
