package users

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/jrsteele09/go-inventory-server/internal/errors"
)

// RoleType represents a user role within the inventory system
type RoleType string

const (
	RoleAdmin   RoleType = "admin"   // Can manage inventory, send notifications, and run reports
	RoleManager RoleType = "manager" // Can manage inventory and send notifications
	RoleStaff   RoleType = "staff"   // Read-only inventory access plus reports
)

// ParseRole converts a stored role string to a RoleType. An unknown role is
// a data-integrity fault in the user store, not a credential error.
func ParseRole(s string) (RoleType, error) {
	switch RoleType(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleManager:
		return RoleManager, nil
	case RoleStaff:
		return RoleStaff, nil
	default:
		return "", apperrors.Wrapf(apperrors.ErrMalformedRecord, "unknown role %q", s)
	}
}

// User is a record from the external user store. Records are created and
// updated out of band; this server only ever reads them.
type User struct {
	Email        string   `json:"email,omitempty"` // User's email address, unique key (case-insensitive)
	Role         RoleType `json:"role,omitempty"`  // Role within the inventory system
	PasswordHash string   `json:"-"`               // Hashed version of the user's password - never serialize
}

// NormalizeEmail lowercases an email for use as a store key
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plaintext password against a stored bcrypt
// hash. A mismatch returns (false, nil); only a structurally invalid stored
// hash returns an error, wrapped as ErrMalformedRecord so callers report it
// as a server fault rather than a credential failure.
func CheckPasswordHash(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if apperrors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, apperrors.Wrapf(apperrors.ErrMalformedRecord, "stored hash is not a valid bcrypt hash: %v", err)
}

// dummyHash is a well-formed bcrypt hash that no real password produced.
// CompareDummyHash runs a full bcrypt comparison against it when no user
// record exists, so a missing user and a wrong password take comparable
// time at the HTTP layer.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func CompareDummyHash(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}

// CheckPassword checks a password against the user's stored hash
func (u *User) CheckPassword(password string) (bool, error) {
	return CheckPasswordHash(password, u.PasswordHash)
}
