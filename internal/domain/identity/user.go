package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/supplychain/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents an account in the system
// It is the aggregate root for user-related operations
type User struct {
	shared.BaseAggregateRoot
	Username     string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(200);not null"`
	FullName     string     `gorm:"type:varchar(200)"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'user'"`
	IsActive     bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user with the given role
func NewUser(username, email, password string, role Role) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          strings.ToLower(strings.TrimSpace(username)),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      passwordHash,
		Role:              role,
		IsActive:          true,
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// SetFullName sets the user's display name
func (u *User) SetFullName(fullName string) error {
	if fullName != "" && len(fullName) > 200 {
		return shared.NewDomainError("INVALID_FULL_NAME", "Full name cannot exceed 200 characters")
	}

	u.FullName = strings.TrimSpace(fullName)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetRole changes the user's role
func (u *User) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// ChangePassword changes the user's password after verifying the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	return u.SetPassword(newPassword)
}

// SetPassword sets a new password (admin reset, no old password check)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// RecordLogin records a successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
	u.IncrementVersion()
}

// Activate activates the user account
func (u *User) Activate() error {
	if u.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	u.IsActive = true
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Deactivate deactivates the user account
func (u *User) Deactivate() error {
	if !u.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "User is already inactive")
	}

	u.IsActive = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 100 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}

	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers, underscores, hyphens, and dots")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
