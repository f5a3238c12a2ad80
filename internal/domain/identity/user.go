package identity

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/garments-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus is the lifecycle state of a login account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusLocked   UserStatus = "locked"
)

const bcryptCost = 12

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	letterPattern   = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
)

// rule rejects a value when broken reports true
type rule struct {
	broken  func(string) bool
	message string
}

func longerThan(n int) func(string) bool  { return func(s string) bool { return len(s) > n } }
func shorterThan(n int) func(string) bool { return func(s string) bool { return len(s) < n } }

func empty(s string) bool { return s == "" }

func mismatch(p *regexp.Regexp) func(string) bool {
	return func(s string) bool { return !p.MatchString(s) }
}

var usernameRules = []rule{
	{empty, "Username cannot be empty"},
	{shorterThan(3), "Username must be at least 3 characters"},
	{longerThan(100), "Username cannot exceed 100 characters"},
	{mismatch(usernamePattern), "Username can only contain letters, numbers, underscores, hyphens, and dots"},
}

var emailRules = []rule{
	{empty, "Email cannot be empty"},
	{longerThan(200), "Email cannot exceed 200 characters"},
	{mismatch(emailPattern), "Invalid email format"},
}

var passwordRules = []rule{
	{empty, "Password cannot be empty"},
	{shorterThan(8), "Password must be at least 8 characters"},
	{longerThan(128), "Password cannot exceed 128 characters"},
	{func(s string) bool { return !letterPattern.MatchString(s) || !digitPattern.MatchString(s) },
		"Password must contain at least one letter and one number"},
}

// check returns the first broken rule as a domain error with code
func check(code, value string, rules []rule) error {
	for _, r := range rules {
		if r.broken(value) {
			return shared.NewDomainError(code, r.message)
		}
	}
	return nil
}

func normalizeUsername(username string) string { return strings.ToLower(strings.TrimSpace(username)) }
func normalizeEmail(email string) string       { return strings.ToLower(strings.TrimSpace(email)) }

// User is an ERP login account. Role ids live in user_roles and are loaded by the repository.
type User struct {
	shared.BaseAggregateRoot
	Username          string
	Email             string
	PasswordHash      string
	FirstName         string
	LastName          string
	Status            UserStatus
	RoleIDs           []uuid.UUID
	LastLoginAt       *time.Time
	LastLoginIP       string
	FailedAttempts    int
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// NewUser creates an active account. Username and email are stored lowercased.
func NewUser(username, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if err := check("INVALID_USERNAME", strings.TrimSpace(username), usernameRules); err != nil {
		return nil, err
	}
	if err := check("INVALID_EMAIL", email, emailRules); err != nil {
		return nil, err
	}

	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          normalizeUsername(username),
		Email:             email,
		Status:            UserStatusActive,
		RoleIDs:           []uuid.UUID{},
	}
	if err := u.storePassword(password); err != nil {
		return nil, err
	}
	u.AddDomainEvent(NewUserCreatedEvent(u))
	return u, nil
}

// UpdateProfile replaces the names; an empty email keeps the current one
func (u *User) UpdateProfile(firstName, lastName, email string) error {
	firstName, lastName = strings.TrimSpace(firstName), strings.TrimSpace(lastName)
	if len(firstName) > 100 || len(lastName) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Names cannot exceed 100 characters")
	}
	if email != "" {
		email = normalizeEmail(email)
		if err := check("INVALID_EMAIL", email, emailRules); err != nil {
			return err
		}
		u.Email = email
	}
	u.FirstName, u.LastName = firstName, lastName
	u.IncrementVersion()
	return nil
}

// FullName joins first and last name, falling back to the username
func (u *User) FullName() string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Username
}

// ChangePassword requires the current password
func (u *User) ChangePassword(current, next string) error {
	if !u.VerifyPassword(current) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(next)
}

// SetPassword is the administrative reset; the old password is not checked
func (u *User) SetPassword(password string) error {
	if err := u.storePassword(password); err != nil {
		return err
	}
	u.IncrementVersion()
	u.AddDomainEvent(NewUserPasswordChangedEvent(u))
	return nil
}

func (u *User) storePassword(password string) error {
	if err := check("INVALID_PASSWORD", password, passwordRules); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	now := time.Now().UTC()
	u.PasswordHash = string(hash)
	u.PasswordChangedAt = &now
	return nil
}

// VerifyPassword compares password with the stored bcrypt hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// AssignRole adds one role; assigning a role twice is an error
func (u *User) AssignRole(roleID uuid.UUID) error {
	if roleID == uuid.Nil {
		return shared.NewDomainError("INVALID_ROLE_ID", "Role ID cannot be empty")
	}
	if u.HasRole(roleID) {
		return shared.NewDomainError("ROLE_ALREADY_ASSIGNED", "User already has this role")
	}
	u.replaceRoles(append(u.RoleIDs, roleID))
	return nil
}

// SetRoles replaces the role set, dropping duplicates
func (u *User) SetRoles(roleIDs []uuid.UUID) error {
	ids := make([]uuid.UUID, 0, len(roleIDs))
	for _, id := range roleIDs {
		if id == uuid.Nil {
			return shared.NewDomainError("INVALID_ROLE_ID", "Role ID cannot be empty")
		}
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	u.replaceRoles(ids)
	return nil
}

func (u *User) replaceRoles(ids []uuid.UUID) {
	u.RoleIDs = ids
	u.IncrementVersion()
	u.AddDomainEvent(NewUserRolesChangedEvent(u))
}

// HasRole reports whether roleID is assigned
func (u *User) HasRole(roleID uuid.UUID) bool {
	return slices.Contains(u.RoleIDs, roleID)
}

// Activate reopens the account whatever its state
func (u *User) Activate() {
	u.Status = UserStatusActive
	u.clearLock()
	u.IncrementVersion()
}

// Deactivate closes the account; tokens are revoked by the caller
func (u *User) Deactivate() error {
	if u.Status == UserStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "User is already inactive")
	}
	u.Status = UserStatusInactive
	u.IncrementVersion()
	return nil
}

// Lock locks the account; a zero duration locks until Unlock
func (u *User) Lock(duration time.Duration) error {
	if u.Status == UserStatusInactive {
		return shared.NewDomainError("USER_INACTIVE", "Cannot lock an inactive user")
	}
	u.Status = UserStatusLocked
	if duration > 0 {
		until := time.Now().UTC().Add(duration)
		u.LockedUntil = &until
	}
	u.IncrementVersion()
	return nil
}

// Unlock lifts a lock and resets the failure counter
func (u *User) Unlock() error {
	if u.Status != UserStatusLocked {
		return shared.NewDomainError("NOT_LOCKED", "User is not locked")
	}
	u.Status = UserStatusActive
	u.clearLock()
	u.IncrementVersion()
	return nil
}

func (u *User) clearLock() {
	u.FailedAttempts = 0
	u.LockedUntil = nil
}

// RecordLoginSuccess stamps the login and ends an expired lock
func (u *User) RecordLoginSuccess(ip string) {
	now := time.Now().UTC()
	u.LastLoginAt, u.LastLoginIP = &now, ip
	u.FailedAttempts = 0
	if u.Status == UserStatusLocked {
		u.Status = UserStatusActive
		u.LockedUntil = nil
	}
	u.IncrementVersion()
}

// RecordLoginFailure counts a failed attempt and reports whether it locked the account.
// maxAttempts <= 0 disables locking.
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	u.IncrementVersion()
	if maxAttempts <= 0 || u.FailedAttempts < maxAttempts {
		return false
	}
	_ = u.Lock(lockDuration)
	return true
}

func (u *User) IsActive() bool { return u.Status == UserStatusActive }

// IsLocked is true while a lock is in force; an expired timed lock no longer counts
func (u *User) IsLocked() bool {
	if u.Status != UserStatusLocked {
		return false
	}
	return u.LockedUntil == nil || time.Now().Before(*u.LockedUntil)
}

// CanLogin is false for inactive accounts and accounts under a lock
func (u *User) CanLogin() bool {
	return u.Status != UserStatusInactive && !u.IsLocked()
}
