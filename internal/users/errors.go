package users

import "errors"

var (
	// ErrNotFound indicates the user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken indicates another account already uses the email.
	ErrEmailTaken = errors.New("user already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
