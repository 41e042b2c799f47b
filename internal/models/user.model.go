package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User holds a registered account. Emails are stored exactly as given
// (case-sensitive) and are unique; the row is insert-only in this system.
type User struct {
	BaseUUIDModel
	Email        string `gorm:"type:text;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:text;not null"             json:"-"`
}

// SetPassword derives a salted bcrypt hash from the plaintext. bcrypt
// generates a fresh salt on every call, so identical passwords never share
// a hash.
func (u *User) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies the plaintext against the stored hash.
func (u *User) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserProfile represents public user information
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:    u.ID.String(),
		Email: u.Email,
	}
}
