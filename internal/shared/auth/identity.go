package auth

// Identity is the acting user derived from a verified session.
type Identity struct {
	UserID    int64
	Email     string
	Name      string
	SessionID string
}

// Valid reports whether the identity names a user.
func (id Identity) Valid() bool {
	return id.UserID > 0
}

// IdentityFromClaims converts verified claims.
func IdentityFromClaims(c Claims) Identity {
	return Identity{
		UserID:    c.UserID,
		Email:     c.Email,
		Name:      c.Name,
		SessionID: c.SessionID,
	}
}
