package model

import "time"

// Role classifies what an account is allowed to do. Only CLIENT accounts own
// a shopping cart.
type Role string

const (
	RoleClient    Role = "CLIENT"
	RoleAdmin     Role = "ADMIN"
	RoleOrganizer Role = "ORGANIZER"
)

// AccountState is the lifecycle state of an account. DELETED is terminal;
// deletion is soft and the row is never removed.
type AccountState string

const (
	AccountInactive AccountState = "INACTIVE"
	AccountActive   AccountState = "ACTIVE"
	AccountDeleted  AccountState = "DELETED"
)

// VerificationCode is a short-lived random code proving control of an email
// address. It is issued fresh on every use and cleared once consumed.
type VerificationCode struct {
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the code is older than the validity window.
func (v VerificationCode) Expired(now time.Time, window time.Duration) bool {
	return now.Sub(v.CreatedAt) > window
}

// Profile holds the personal data attached to an account.
type Profile struct {
	LegalID string   `json:"legal_id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Phones  []string `json:"phones"`
}

// Account is the aggregate root for a user. The cart is embedded so account
// and cart are always persisted with a single-row write.
type Account struct {
	ID               string            `json:"id"`
	Email            string            `json:"email"`
	PasswordHash     string            `json:"-"`
	Role             Role              `json:"role"`
	State            AccountState      `json:"state"`
	RegisteredAt     time.Time         `json:"registered_at"`
	RegistrationCode *VerificationCode `json:"-"`
	RecoveryCode     *VerificationCode `json:"-"`
	Profile          Profile           `json:"profile"`
	Cart             Cart              `json:"cart"`
}

// RegisterAccountRequest is the DTO for POST /api/auth/register.
type RegisterAccountRequest struct {
	Email    string   `json:"email" validate:"required,email,max=255"`
	LegalID  string   `json:"legal_id" validate:"required,notblank,max=64"`
	Password string   `json:"password" validate:"required,min=8,max=72"`
	Name     string   `json:"name" validate:"required,notblank,max=255"`
	Address  string   `json:"address" validate:"max=255"`
	Phones   []string `json:"phones" validate:"required,min=1,dive,notblank"`
}

// ActivateAccountRequest is the DTO for POST /api/auth/activate.
type ActivateAccountRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,notblank"`
}

// LoginRequest is the DTO for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RecoveryRequest is the DTO for POST /api/auth/recovery.
type RecoveryRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ChangePasswordRequest is the DTO for POST /api/auth/password.
type ChangePasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,notblank"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// UpdateAccountRequest is the DTO for PUT /api/accounts/:id. The profile is
// replaced as a whole; partial updates are not supported.
type UpdateAccountRequest struct {
	Email   string   `json:"email" validate:"required,email,max=255"`
	LegalID string   `json:"legal_id" validate:"required,notblank,max=64"`
	Name    string   `json:"name" validate:"required,notblank,max=255"`
	Address string   `json:"address" validate:"max=255"`
	Phones  []string `json:"phones" validate:"required,min=1,dive,notblank"`
}

// AccountInfoResponse is the profile view returned to the account owner.
type AccountInfoResponse struct {
	ID      string   `json:"id"`
	Email   string   `json:"email"`
	LegalID string   `json:"legal_id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Phones  []string `json:"phones"`
}

// AccountSummary is the admin listing view, without sensitive data.
type AccountSummary struct {
	ID     string   `json:"id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Phones []string `json:"phones"`
}

// TokenResponse carries the signed token issued on login.
type TokenResponse struct {
	Token string `json:"token"`
}
