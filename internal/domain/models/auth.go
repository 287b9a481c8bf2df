package models

import "github.com/golang-jwt/jwt/v5"

// AccessTokenClaims is the claims structure of the bearer tokens issued by the
// identity provider. Only the fields used for identity extraction are typed;
// everything else in the token is ignored.
type AccessTokenClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	CognitoUsername      string `json:"cognito:username"`
	Username             string `json:"username"`
}

// UserID returns the stable user identifier for the token, using the
// precedence order: provider-specific username, generic username, then the
// subject claim. Returns "" when none is present.
func (c *AccessTokenClaims) UserID() string {
	if c.CognitoUsername != "" {
		return c.CognitoUsername
	}
	if c.Username != "" {
		return c.Username
	}
	return c.Subject
}
