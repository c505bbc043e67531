package auth

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor, tuned for interactive login latency.
const PasswordCost = 10

// HashPassword returns a salted bcrypt digest of the password.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether password matches digest. Malformed digests never match.
func VerifyPassword(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
