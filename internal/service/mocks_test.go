package service

import (
	"context"

	"github.com/unievents/unievents/internal/model"
)

// mockAccountRepository is a mock implementation of AccountRepositoryInterface.
type mockAccountRepository struct {
	insertFn        func(ctx context.Context, account *model.Account) error
	getByIDFn       func(ctx context.Context, id string) (*model.Account, error)
	getByEmailFn    func(ctx context.Context, email string) (*model.Account, error)
	emailExistsFn   func(ctx context.Context, email, exceptID string) (bool, error)
	legalIDExistsFn func(ctx context.Context, legalID, exceptID string) (bool, error)
	updateFn        func(ctx context.Context, account *model.Account) error
	updateCartFn    func(ctx context.Context, accountID string, cart model.Cart) error
	listFn          func(ctx context.Context) ([]model.AccountSummary, error)
}

func (m *mockAccountRepository) Insert(ctx context.Context, account *model.Account) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, account)
	}
	return nil
}

func (m *mockAccountRepository) GetByID(ctx context.Context, id string) (*model.Account, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockAccountRepository) EmailExists(ctx context.Context, email, exceptID string) (bool, error) {
	if m.emailExistsFn != nil {
		return m.emailExistsFn(ctx, email, exceptID)
	}
	return false, nil
}

func (m *mockAccountRepository) LegalIDExists(ctx context.Context, legalID, exceptID string) (bool, error) {
	if m.legalIDExistsFn != nil {
		return m.legalIDExistsFn(ctx, legalID, exceptID)
	}
	return false, nil
}

func (m *mockAccountRepository) Update(ctx context.Context, account *model.Account) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, account)
	}
	return nil
}

func (m *mockAccountRepository) UpdateCart(ctx context.Context, accountID string, cart model.Cart) error {
	if m.updateCartFn != nil {
		return m.updateCartFn(ctx, accountID, cart)
	}
	return nil
}

func (m *mockAccountRepository) List(ctx context.Context) ([]model.AccountSummary, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.AccountSummary{}, nil
}

// mockEventRepository is a mock implementation of EventRepositoryInterface.
type mockEventRepository struct {
	insertFn      func(ctx context.Context, event *model.Event) error
	getByIDFn     func(ctx context.Context, id string) (*model.Event, error)
	nameExistsFn  func(ctx context.Context, name string) (bool, error)
	listFn        func(ctx context.Context, filter model.EventFilter) ([]model.Event, error)
	sellTicketsFn func(ctx context.Context, eventID, localityName string, quantity int) (bool, error)
}

func (m *mockEventRepository) Insert(ctx context.Context, event *model.Event) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockEventRepository) NameExists(ctx context.Context, name string) (bool, error) {
	if m.nameExistsFn != nil {
		return m.nameExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockEventRepository) List(ctx context.Context, filter model.EventFilter) ([]model.Event, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return []model.Event{}, nil
}

func (m *mockEventRepository) SellTickets(ctx context.Context, eventID, localityName string, quantity int) (bool, error) {
	if m.sellTicketsFn != nil {
		return m.sellTicketsFn(ctx, eventID, localityName, quantity)
	}
	return true, nil
}

// mockCouponRepository is a mock implementation of CouponRepositoryInterface.
type mockCouponRepository struct {
	insertFn             func(ctx context.Context, coupon *model.Coupon) error
	getByIDFn            func(ctx context.Context, id string) (*model.Coupon, error)
	getByCodeFn          func(ctx context.Context, couponCode string) (*model.Coupon, error)
	updateFn             func(ctx context.Context, coupon *model.Coupon) error
	redeemUniqueFn       func(ctx context.Context, couponCode, accountID string) (bool, error)
	consumeBeneficiaryFn func(ctx context.Context, couponCode, accountID string) (bool, error)
	revokeFn             func(ctx context.Context, id string) (bool, error)
	listAvailableFn      func(ctx context.Context) ([]model.Coupon, error)
	listAvailableForFn   func(ctx context.Context, accountID string) ([]model.Coupon, error)
}

func (m *mockCouponRepository) Insert(ctx context.Context, coupon *model.Coupon) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, coupon)
	}
	return nil
}

func (m *mockCouponRepository) GetByID(ctx context.Context, id string) (*model.Coupon, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockCouponRepository) GetByCode(ctx context.Context, couponCode string) (*model.Coupon, error) {
	if m.getByCodeFn != nil {
		return m.getByCodeFn(ctx, couponCode)
	}
	return nil, nil
}

func (m *mockCouponRepository) Update(ctx context.Context, coupon *model.Coupon) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, coupon)
	}
	return nil
}

func (m *mockCouponRepository) RedeemUnique(ctx context.Context, couponCode, accountID string) (bool, error) {
	if m.redeemUniqueFn != nil {
		return m.redeemUniqueFn(ctx, couponCode, accountID)
	}
	return true, nil
}

func (m *mockCouponRepository) ConsumeBeneficiary(ctx context.Context, couponCode, accountID string) (bool, error) {
	if m.consumeBeneficiaryFn != nil {
		return m.consumeBeneficiaryFn(ctx, couponCode, accountID)
	}
	return true, nil
}

func (m *mockCouponRepository) Revoke(ctx context.Context, id string) (bool, error) {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, id)
	}
	return true, nil
}

func (m *mockCouponRepository) ListAvailable(ctx context.Context) ([]model.Coupon, error) {
	if m.listAvailableFn != nil {
		return m.listAvailableFn(ctx)
	}
	return []model.Coupon{}, nil
}

func (m *mockCouponRepository) ListAvailableFor(ctx context.Context, accountID string) ([]model.Coupon, error) {
	if m.listAvailableForFn != nil {
		return m.listAvailableForFn(ctx, accountID)
	}
	return []model.Coupon{}, nil
}

// mockCodeGenerator is a deterministic code.Generator.
type mockCodeGenerator struct {
	verificationCodeFn func() (string, error)
	couponCodeFn       func() string
}

func (m *mockCodeGenerator) VerificationCode() (string, error) {
	if m.verificationCodeFn != nil {
		return m.verificationCodeFn()
	}
	return "CODE123456", nil
}

func (m *mockCodeGenerator) CouponCode() string {
	if m.couponCodeFn != nil {
		return m.couponCodeFn()
	}
	return "COUPON-generated"
}

// mockHasher is a reversible stand-in for the password hasher.
type mockHasher struct {
	hashFn   func(plaintext string) (string, error)
	verifyFn func(plaintext, hash string) bool
}

func (m *mockHasher) Hash(plaintext string) (string, error) {
	if m.hashFn != nil {
		return m.hashFn(plaintext)
	}
	return "hashed:" + plaintext, nil
}

func (m *mockHasher) Verify(plaintext, hash string) bool {
	if m.verifyFn != nil {
		return m.verifyFn(plaintext, hash)
	}
	return "hashed:"+plaintext == hash
}

// mockTokenIssuer is a mock implementation of TokenIssuer.
type mockTokenIssuer struct {
	issueFn func(subject string, claims map[string]any) (string, error)
}

func (m *mockTokenIssuer) Issue(subject string, claims map[string]any) (string, error) {
	if m.issueFn != nil {
		return m.issueFn(subject, claims)
	}
	return "token", nil
}

// mockNotifier records sent mail instead of delivering it.
type mockNotifier struct {
	sendFn func(recipient, subject, body string) error
	sent   []sentMail
}

type sentMail struct {
	recipient string
	subject   string
	body      string
}

func (m *mockNotifier) Send(recipient, subject, body string) error {
	m.sent = append(m.sent, sentMail{recipient: recipient, subject: subject, body: body})
	if m.sendFn != nil {
		return m.sendFn(recipient, subject, body)
	}
	return nil
}

// mockCouponCreator is a mock implementation of CouponCreator.
type mockCouponCreator struct {
	createFn func(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error)
}

func (m *mockCouponCreator) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return &model.Coupon{ID: "coupon-id", Code: "COUPON-generated"}, nil
}

func floatPtr(f float64) *float64 {
	return &f
}
