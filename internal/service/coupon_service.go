package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/unievents/unievents/internal/code"
	"github.com/unievents/unievents/internal/model"
)

// CouponRepositoryInterface defines the coupon data access the ledger needs.
// RedeemUnique and ConsumeBeneficiary must be conditional single-row writes:
// they report false when the compare-and-set precondition no longer holds.
type CouponRepositoryInterface interface {
	Insert(ctx context.Context, coupon *model.Coupon) error
	GetByID(ctx context.Context, id string) (*model.Coupon, error)
	GetByCode(ctx context.Context, couponCode string) (*model.Coupon, error)
	Update(ctx context.Context, coupon *model.Coupon) error
	RedeemUnique(ctx context.Context, couponCode, accountID string) (bool, error)
	ConsumeBeneficiary(ctx context.Context, couponCode, accountID string) (bool, error)
	Revoke(ctx context.Context, id string) (bool, error)
	ListAvailable(ctx context.Context) ([]model.Coupon, error)
	ListAvailableFor(ctx context.Context, accountID string) ([]model.Coupon, error)
}

// CouponService owns coupon lifecycle and redemption rules.
type CouponService struct {
	coupons CouponRepositoryInterface
	codes   code.Generator
}

// NewCouponService creates a CouponService.
func NewCouponService(coupons CouponRepositoryInterface, codes code.Generator) *CouponService {
	return &CouponService{coupons: coupons, codes: codes}
}

// Create stores a new coupon. The caller-provided code is kept verbatim for
// the UNIQUE variant; INDIVIDUAL coupons always get a generated code.
// Returns ErrExpiredDate when the expiry is not in the future and
// ErrCouponCodeExists when the submitted code is already taken, whatever the
// variant.
func (s *CouponService) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error) {
	if req == nil || req.DiscountPercent == nil {
		return nil, ErrInvalidRequest
	}
	if !req.ExpiresAt.After(time.Now()) {
		return nil, ErrExpiredDate
	}

	if req.Code != "" {
		existing, err := s.coupons.GetByCode(ctx, req.Code)
		if err != nil {
			return nil, fmt.Errorf("check coupon code: %w", err)
		}
		if existing != nil {
			return nil, ErrCouponCodeExists
		}
	}

	couponCode := req.Code
	if req.Variant != model.CouponUnique {
		couponCode = s.codes.CouponCode()
	}

	// Beneficiaries are never nil: the caller's list for INDIVIDUAL, empty
	// for UNIQUE.
	beneficiaries := []string{}
	if req.Variant == model.CouponIndividual && req.Beneficiaries != nil {
		beneficiaries = req.Beneficiaries
	}

	coupon := &model.Coupon{
		Code:            couponCode,
		Name:            req.Name,
		DiscountPercent: *req.DiscountPercent,
		State:           model.CouponAvailable,
		ExpiresAt:       req.ExpiresAt,
		Variant:         req.Variant,
		Beneficiaries:   beneficiaries,
	}
	if err := s.coupons.Insert(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// IsRedeemable reports whether a coupon exists, is AVAILABLE and has not
// expired.
func (s *CouponService) IsRedeemable(ctx context.Context, couponCode string) (bool, error) {
	coupon, err := s.coupons.GetByCode(ctx, couponCode)
	if err != nil {
		return false, fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil {
		return false, nil
	}
	return redeemable(coupon), nil
}

func redeemable(coupon *model.Coupon) bool {
	return coupon.State == model.CouponAvailable && coupon.ExpiresAt.After(time.Now())
}

// Redeem applies a coupon for an account.
//
// UNIQUE: the account is recorded as the beneficiary and the coupon becomes
// UNAVAILABLE, as one conditional write so two concurrent redemptions cannot
// both succeed. INDIVIDUAL: the account must be a listed beneficiary; its
// entry is consumed and the coupon stays AVAILABLE for the remaining ones.
func (s *CouponService) Redeem(ctx context.Context, req *model.RedeemCouponRequest) error {
	if req == nil {
		return ErrInvalidRequest
	}
	coupon, err := s.coupons.GetByCode(ctx, req.Code)
	if err != nil {
		return fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil {
		return ErrCouponNotFound
	}
	if !redeemable(coupon) {
		return ErrCouponNotRedeemable
	}

	switch coupon.Variant {
	case model.CouponUnique:
		applied, err := s.coupons.RedeemUnique(ctx, coupon.Code, req.AccountID)
		if err != nil {
			return fmt.Errorf("redeem coupon: %w", err)
		}
		if !applied {
			// Lost the race against a concurrent redemption.
			return ErrCouponNotRedeemable
		}
		return nil
	case model.CouponIndividual:
		if !slices.Contains(coupon.Beneficiaries, req.AccountID) {
			return ErrNotBeneficiary
		}
		applied, err := s.coupons.ConsumeBeneficiary(ctx, coupon.Code, req.AccountID)
		if err != nil {
			return fmt.Errorf("consume beneficiary: %w", err)
		}
		if !applied {
			return ErrCouponNotRedeemable
		}
		return nil
	default:
		return ErrInvalidCouponVariant
	}
}

// Update replaces the mutable fields of a coupon. The expiry must still be in
// the future.
func (s *CouponService) Update(ctx context.Context, id string, req *model.UpdateCouponRequest) error {
	if req == nil || req.DiscountPercent == nil {
		return ErrInvalidRequest
	}
	coupon, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil {
		return ErrCouponNotFound
	}
	if !req.ExpiresAt.After(time.Now()) {
		return ErrExpiredDate
	}

	coupon.Name = req.Name
	coupon.DiscountPercent = *req.DiscountPercent
	coupon.State = req.State
	coupon.ExpiresAt = req.ExpiresAt
	coupon.Beneficiaries = req.Beneficiaries
	if coupon.Beneficiaries == nil {
		coupon.Beneficiaries = []string{}
	}
	return s.coupons.Update(ctx, coupon)
}

// Revoke retires a coupon: state goes to UNAVAILABLE and stays there.
func (s *CouponService) Revoke(ctx context.Context, id string) error {
	revoked, err := s.coupons.Revoke(ctx, id)
	if err != nil {
		return fmt.Errorf("revoke coupon: %w", err)
	}
	if !revoked {
		return ErrCouponNotFound
	}
	return nil
}

// ListAvailable returns every coupon that is AVAILABLE and unexpired.
func (s *CouponService) ListAvailable(ctx context.Context) ([]model.CouponItem, error) {
	coupons, err := s.coupons.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	return couponItems(coupons), nil
}

// ListAvailableFor returns the available coupons the account can actually
// redeem: every UNIQUE coupon plus the INDIVIDUAL ones it is listed on.
func (s *CouponService) ListAvailableFor(ctx context.Context, accountID string) ([]model.CouponItem, error) {
	coupons, err := s.coupons.ListAvailableFor(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list coupons for account: %w", err)
	}
	return couponItems(coupons), nil
}

func couponItems(coupons []model.Coupon) []model.CouponItem {
	items := make([]model.CouponItem, 0, len(coupons))
	for _, c := range coupons {
		items = append(items, model.CouponItem{
			ID:              c.ID,
			Code:            c.Code,
			Name:            c.Name,
			DiscountPercent: c.DiscountPercent,
			ExpiresAt:       c.ExpiresAt,
			Variant:         c.Variant,
		})
	}
	return items
}
