package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/unievents/unievents/internal/code"
	"github.com/unievents/unievents/internal/model"
)

// AccountRepositoryInterface defines the account data access the lifecycle
// needs. Lookups return nil, nil when no account matches. The uniqueness
// checks only consider non-deleted accounts.
type AccountRepositoryInterface interface {
	Insert(ctx context.Context, account *model.Account) error
	GetByID(ctx context.Context, id string) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	EmailExists(ctx context.Context, email, exceptID string) (bool, error)
	LegalIDExists(ctx context.Context, legalID, exceptID string) (bool, error)
	Update(ctx context.Context, account *model.Account) error
	UpdateCart(ctx context.Context, accountID string, cart model.Cart) error
	List(ctx context.Context) ([]model.AccountSummary, error)
}

// PasswordHasher is the opaque hashing collaborator. The engine never decides
// the algorithm.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs a claims set. The engine never touches signing keys.
type TokenIssuer interface {
	Issue(subject string, claims map[string]any) (string, error)
}

// Notifier delivers mail. Failures are logged by the caller, never treated as
// fatal: the account record must outlive a flaky mail relay.
type Notifier interface {
	Send(recipient, subject, body string) error
}

// CouponCreator is the slice of the coupon ledger the account lifecycle needs
// to issue welcome coupons.
type CouponCreator interface {
	Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error)
}

const (
	welcomeCouponName     = "Welcome Coupon"
	welcomeCouponDiscount = 15.0
	welcomeCouponYears    = 2
)

// AccountService drives the account state machine: registration, activation,
// password recovery, authentication, profile management and soft deletion.
type AccountService struct {
	accounts AccountRepositoryInterface
	coupons  CouponCreator
	hasher   PasswordHasher
	tokens   TokenIssuer
	notifier Notifier
	codes    code.Generator
	codeTTL  time.Duration
}

// NewAccountService creates an AccountService. codeTTL is the validity window
// of verification codes.
func NewAccountService(
	accounts AccountRepositoryInterface,
	coupons CouponCreator,
	hasher PasswordHasher,
	tokens TokenIssuer,
	notifier Notifier,
	codes code.Generator,
	codeTTL time.Duration,
) *AccountService {
	return &AccountService{
		accounts: accounts,
		coupons:  coupons,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
		codes:    codes,
		codeTTL:  codeTTL,
	}
}

// notify sends mail fire-and-forget: a delivery failure is recorded, never
// propagated to the caller.
func (s *AccountService) notify(recipient, subject, body string) {
	if err := s.notifier.Send(recipient, subject, body); err != nil {
		log.Warn().Err(err).Str("recipient", recipient).Msg("failed to send email")
	}
}

// Register creates an INACTIVE account with a fresh registration code and
// mails the code. Returns ErrEmailExists or ErrLegalIDExists when either is
// already registered to a non-deleted account.
func (s *AccountService) Register(ctx context.Context, req *model.RegisterAccountRequest) (string, error) {
	if req == nil {
		return "", ErrInvalidRequest
	}

	exists, err := s.accounts.EmailExists(ctx, req.Email, "")
	if err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return "", ErrEmailExists
	}
	exists, err = s.accounts.LegalIDExists(ctx, req.LegalID, "")
	if err != nil {
		return "", fmt.Errorf("check legal id: %w", err)
	}
	if exists {
		return "", ErrLegalIDExists
	}

	registrationCode, err := s.codes.VerificationCode()
	if err != nil {
		return "", fmt.Errorf("generate registration code: %w", err)
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	account := &model.Account{
		Email:            req.Email,
		PasswordHash:     hash,
		Role:             model.RoleClient,
		State:            model.AccountInactive,
		RegisteredAt:     now,
		RegistrationCode: &model.VerificationCode{Code: registrationCode, CreatedAt: now},
		Profile: model.Profile{
			LegalID: req.LegalID,
			Name:    req.Name,
			Address: req.Address,
			Phones:  req.Phones,
		},
		Cart: model.Cart{CreatedAt: now, Lines: []model.CartLine{}},
	}
	if err := s.accounts.Insert(ctx, account); err != nil {
		return "", err
	}

	s.notify(account.Email,
		"Your activation code is: "+registrationCode,
		"Enter the code to activate your account")
	return account.ID, nil
}

// Activate moves an INACTIVE account to ACTIVE when the submitted code
// matches and is within the validity window. An expired code is regenerated
// and re-sent, and the call fails with ErrCodeExpired. On success a welcome
// coupon is issued with this account as its only beneficiary.
func (s *AccountService) Activate(ctx context.Context, req *model.ActivateAccountRequest) error {
	if req == nil {
		return ErrInvalidRequest
	}
	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return ErrAccountNotFound
	}
	if account.State == model.AccountDeleted {
		return ErrAccountDeleted
	}
	if account.RegistrationCode == nil || req.Code != account.RegistrationCode.Code {
		return ErrCodeMismatch
	}

	if account.RegistrationCode.Expired(time.Now(), s.codeTTL) {
		fresh, err := s.codes.VerificationCode()
		if err != nil {
			return fmt.Errorf("regenerate registration code: %w", err)
		}
		account.RegistrationCode = &model.VerificationCode{Code: fresh, CreatedAt: time.Now()}
		if err := s.accounts.Update(ctx, account); err != nil {
			return fmt.Errorf("store regenerated code: %w", err)
		}
		s.notify(account.Email,
			"Your activation code is: "+fresh,
			"Enter the code to activate your account")
		return ErrCodeExpired
	}

	discount := welcomeCouponDiscount
	coupon, err := s.coupons.Create(ctx, &model.CreateCouponRequest{
		Name:            welcomeCouponName,
		DiscountPercent: &discount,
		ExpiresAt:       time.Now().AddDate(welcomeCouponYears, 0, 0),
		Variant:         model.CouponIndividual,
		Beneficiaries:   []string{account.ID},
	})
	if err != nil {
		return fmt.Errorf("create welcome coupon: %w", err)
	}
	s.notify(account.Email,
		"Welcome! Enjoy 15% off your next order",
		"This is your coupon code: "+coupon.Code)

	account.State = model.AccountActive
	account.RegistrationCode = nil
	if err := s.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("activate account: %w", err)
	}
	return nil
}

// RequestPasswordRecovery issues a fresh recovery code for an active account
// and mails it.
func (s *AccountService) RequestPasswordRecovery(ctx context.Context, req *model.RecoveryRequest) error {
	if req == nil {
		return ErrInvalidRequest
	}
	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return ErrAccountNotFound
	}
	if account.State == model.AccountDeleted {
		return ErrAccountDeleted
	}
	if account.State == model.AccountInactive {
		return ErrAccountInactive
	}

	recoveryCode, err := s.codes.VerificationCode()
	if err != nil {
		return fmt.Errorf("generate recovery code: %w", err)
	}
	account.RecoveryCode = &model.VerificationCode{Code: recoveryCode, CreatedAt: time.Now()}
	if err := s.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("store recovery code: %w", err)
	}
	s.notify(account.Email,
		"Password recovery code",
		"Enter only the code: "+recoveryCode)
	return nil
}

// ChangePassword replaces the password hash when the pending recovery code
// matches and is within the validity window, then clears the code. Unlike
// activation, an expired recovery code is not regenerated; the user must
// request recovery again.
func (s *AccountService) ChangePassword(ctx context.Context, req *model.ChangePasswordRequest) error {
	if req == nil {
		return ErrInvalidRequest
	}
	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return ErrAccountNotFound
	}
	if account.State == model.AccountDeleted {
		return ErrAccountDeleted
	}
	if account.State == model.AccountInactive {
		return ErrAccountInactive
	}
	if account.RecoveryCode == nil {
		return ErrNoActiveRecovery
	}
	if req.Code != account.RecoveryCode.Code {
		return ErrCodeMismatch
	}
	if account.RecoveryCode.Expired(time.Now(), s.codeTTL) {
		return ErrCodeExpired
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	account.PasswordHash = hash
	account.RecoveryCode = nil
	if err := s.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("store new password: %w", err)
	}
	return nil
}

// Authenticate verifies credentials and returns a signed token carrying the
// account's role, name and id.
func (s *AccountService) Authenticate(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	if account.State == model.AccountDeleted {
		return nil, ErrAccountDeleted
	}
	if account.State == model.AccountInactive {
		return nil, ErrAccountInactive
	}
	if !s.hasher.Verify(req.Password, account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.Email, map[string]any{
		"role": string(account.Role),
		"name": account.Profile.Name,
		"id":   account.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &model.TokenResponse{Token: token}, nil
}

// Get returns the account with the given id.
func (s *AccountService) Get(ctx context.Context, id string) (*model.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// GetInfo returns the profile view of a non-deleted account.
func (s *AccountService) GetInfo(ctx context.Context, id string) (*model.AccountInfoResponse, error) {
	account, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.State == model.AccountDeleted {
		return nil, ErrAccountDeleted
	}
	return &model.AccountInfoResponse{
		ID:      account.ID,
		Email:   account.Email,
		LegalID: account.Profile.LegalID,
		Name:    account.Profile.Name,
		Address: account.Profile.Address,
		Phones:  account.Profile.Phones,
	}, nil
}

// List returns a summary of every non-deleted account.
func (s *AccountService) List(ctx context.Context) ([]model.AccountSummary, error) {
	summaries, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return summaries, nil
}

// Update replaces the email and profile of an active account. Email and
// legal id must not collide with any other non-deleted account.
func (s *AccountService) Update(ctx context.Context, id string, req *model.UpdateAccountRequest) error {
	if req == nil {
		return ErrInvalidRequest
	}
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return ErrAccountNotFound
	}
	if account.State == model.AccountDeleted {
		return ErrAccountDeleted
	}
	if account.State == model.AccountInactive {
		return ErrAccountInactive
	}

	exists, err := s.accounts.EmailExists(ctx, req.Email, id)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return ErrEmailExists
	}
	exists, err = s.accounts.LegalIDExists(ctx, req.LegalID, id)
	if err != nil {
		return fmt.Errorf("check legal id: %w", err)
	}
	if exists {
		return ErrLegalIDExists
	}

	account.Email = req.Email
	account.Profile = model.Profile{
		LegalID: req.LegalID,
		Name:    req.Name,
		Address: req.Address,
		Phones:  req.Phones,
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// Delete soft-deletes an active account. DELETED is terminal, so deleting
// twice fails with ErrAccountDeleted.
func (s *AccountService) Delete(ctx context.Context, id string) error {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return ErrAccountNotFound
	}
	if account.State == model.AccountDeleted {
		return ErrAccountDeleted
	}
	if account.State == model.AccountInactive {
		return ErrAccountInactive
	}

	account.State = model.AccountDeleted
	if err := s.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
