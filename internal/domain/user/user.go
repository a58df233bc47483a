package user

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/boostline-inc/boostline/internal/shared/biztime"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the minimal account record the billing engine needs: identity,
// verification state and the gateway references hung off it. The
// stripeCustomerID column is unique in storage; it is the idempotency
// anchor for remote customer creation.
type User struct {
	userID               uint
	email                string
	username             string
	passwordHash         string
	role                 Role
	emailVerified        bool
	stripeCustomerID     *string
	stripeSubscriptionID *string
	createdAt            time.Time
	updatedAt            time.Time
}

func NewUser(email, username, password string) (*User, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := biztime.NowUTC()
	return &User{
		email:        email,
		username:     username,
		passwordHash: string(hash),
		role:         RoleUser,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(userID uint, email, username, passwordHash string, role Role,
	emailVerified bool, stripeCustomerID, stripeSubscriptionID *string,
	createdAt, updatedAt time.Time) (*User, error) {

	if userID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}

	return &User{
		userID:               userID,
		email:                email,
		username:             username,
		passwordHash:         passwordHash,
		role:                 role,
		emailVerified:        emailVerified,
		stripeCustomerID:     stripeCustomerID,
		stripeSubscriptionID: stripeSubscriptionID,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}, nil
}

func (u *User) ID() uint                      { return u.userID }
func (u *User) Email() string                 { return u.email }
func (u *User) Username() string              { return u.username }
func (u *User) PasswordHash() string          { return u.passwordHash }
func (u *User) Role() Role                    { return u.role }
func (u *User) IsEmailVerified() bool         { return u.emailVerified }
func (u *User) StripeCustomerID() *string     { return u.stripeCustomerID }
func (u *User) StripeSubscriptionID() *string { return u.stripeSubscriptionID }
func (u *User) CreatedAt() time.Time          { return u.createdAt }
func (u *User) UpdatedAt() time.Time          { return u.updatedAt }

func (u *User) SetID(userID uint) error {
	if u.userID != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if userID == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.userID = userID
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// There are no bypasses: every caller goes through bcrypt.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

func (u *User) MarkEmailVerified() {
	if u.emailVerified {
		return
	}
	u.emailVerified = true
	u.touch()
}

func (u *User) SetStripeSubscriptionID(subID string) {
	if subID == "" {
		u.stripeSubscriptionID = nil
	} else {
		u.stripeSubscriptionID = &subID
	}
	u.touch()
}

// PromoteToAdmin grants the admin role. Only the create-admin CLI
// command calls this; there is no HTTP path to it.
func (u *User) PromoteToAdmin() {
	if u.role == RoleAdmin {
		return
	}
	u.role = RoleAdmin
	u.touch()
}

func (u *User) IsAdmin() bool {
	return u.role == RoleAdmin
}

func (u *User) touch() {
	u.updatedAt = biztime.NowUTC()
}
