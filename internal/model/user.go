package model

import "time"

// User represents an account in the demo credential store. Passwords
// are persisted only as bcrypt hashes; the plaintext never leaves the
// login/register request.
type User struct {
	ID               int64     `json:"id" db:"id"`
	Email            string    `json:"email" db:"email"`
	Name             string    `json:"name" db:"name"`
	PasswordHash     string    `json:"-" db:"password_hash"`
	Verified         bool      `json:"verified" db:"verified"`
	VerificationCode string    `json:"-" db:"verification_code"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Name            string `json:"name"`
}

// Credentials carries a login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthToken is returned on a successful login.
type AuthToken struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
