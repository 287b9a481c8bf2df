package auth

// IdentityExtractor decodes an opaque bearer credential into a stable user
// identifier. Implementations differ only in whether they verify the token
// signature first; extraction semantics are identical.
type IdentityExtractor interface {
	// ExtractIdentity returns the user identifier for the credential.
	// Returns an error wrapping domain.ErrCredentialDecode when the token
	// cannot be decoded or yields no usable identifier; callers must treat
	// that as a deny, never as a crash.
	ExtractIdentity(credential string) (string, error)
}
