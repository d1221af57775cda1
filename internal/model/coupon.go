package model

import "time"

// CouponVariant selects the redemption semantics of a coupon.
//
// UNIQUE: a single human-entered code, redeemable once globally by any account.
// INDIVIDUAL: a system-generated code redeemable once per listed beneficiary.
type CouponVariant string

const (
	CouponUnique     CouponVariant = "UNIQUE"
	CouponIndividual CouponVariant = "INDIVIDUAL"
)

// CouponState is the availability state of a coupon. UNAVAILABLE is terminal.
type CouponState string

const (
	CouponAvailable   CouponState = "AVAILABLE"
	CouponUnavailable CouponState = "UNAVAILABLE"
)

// Coupon is a discount voucher. Beneficiaries is never nil: it holds the
// accounts still entitled to redeem an INDIVIDUAL coupon, and records the
// redeemer of a UNIQUE one.
type Coupon struct {
	ID              string        `json:"id"`
	Code            string        `json:"code"`
	Name            string        `json:"name"`
	DiscountPercent float64       `json:"discount_percent"`
	State           CouponState   `json:"state"`
	ExpiresAt       time.Time     `json:"expires_at"`
	Variant         CouponVariant `json:"variant"`
	Beneficiaries   []string      `json:"beneficiaries"`
}

// CreateCouponRequest is the DTO for POST /api/coupons. Code is required for
// the UNIQUE variant; INDIVIDUAL coupons get a generated code.
type CreateCouponRequest struct {
	Code            string        `json:"code" validate:"required_if=Variant UNIQUE,omitempty,notblank,max=64"`
	Name            string        `json:"name" validate:"required,notblank,max=255"`
	DiscountPercent *float64      `json:"discount_percent" validate:"required,gt=0,lte=100"`
	ExpiresAt       time.Time     `json:"expires_at" validate:"required"`
	Variant         CouponVariant `json:"variant" validate:"required,oneof=UNIQUE INDIVIDUAL"`
	Beneficiaries   []string      `json:"beneficiaries" validate:"dive,notblank"`
}

// UpdateCouponRequest is the DTO for PUT /api/coupons/:id.
type UpdateCouponRequest struct {
	Name            string      `json:"name" validate:"required,notblank,max=255"`
	DiscountPercent *float64    `json:"discount_percent" validate:"required,gt=0,lte=100"`
	State           CouponState `json:"state" validate:"required,oneof=AVAILABLE UNAVAILABLE"`
	ExpiresAt       time.Time   `json:"expires_at" validate:"required,future"`
	Beneficiaries   []string    `json:"beneficiaries" validate:"dive,notblank"`
}

// RedeemCouponRequest is the DTO for POST /api/coupons/redeem.
type RedeemCouponRequest struct {
	Code      string `json:"code" validate:"required,notblank,max=64"`
	AccountID string `json:"account_id" validate:"required,notblank"`
}

// CouponItem is the listing view of a redeemable coupon.
type CouponItem struct {
	ID              string        `json:"id"`
	Code            string        `json:"code"`
	Name            string        `json:"name"`
	DiscountPercent float64       `json:"discount_percent"`
	ExpiresAt       time.Time     `json:"expires_at"`
	Variant         CouponVariant `json:"variant"`
}
