package auth

// TokenIssuer issues signed session tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64, email string) (string, error)
}

// TokenVerifier validates a bearer token and extracts the user id.
// Implementations: the local HS256 TokenService and the JWKS verifier
// for externally issued tokens.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}
