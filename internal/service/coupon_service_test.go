package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unievents/unievents/internal/model"
)

func TestCouponService_Create_UniqueKeepsCode(t *testing.T) {
	var captured *model.Coupon
	repo := &mockCouponRepository{
		insertFn: func(ctx context.Context, coupon *model.Coupon) error {
			captured = coupon
			return nil
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})
	coupon, err := svc.Create(context.Background(), &model.CreateCouponRequest{
		Code:            "SUMMER25",
		Name:            "Summer Promo",
		DiscountPercent: floatPtr(25),
		ExpiresAt:       time.Now().Add(24 * time.Hour),
		Variant:         model.CouponUnique,
	})

	require.NoError(t, err)
	assert.Equal(t, "SUMMER25", coupon.Code, "UNIQUE coupons keep the caller's code verbatim")
	assert.Equal(t, model.CouponAvailable, captured.State)
	assert.NotNil(t, captured.Beneficiaries, "beneficiaries should be empty slice, not nil")
	assert.Len(t, captured.Beneficiaries, 0)
}

func TestCouponService_Create_IndividualGeneratesCode(t *testing.T) {
	var captured *model.Coupon
	repo := &mockCouponRepository{
		insertFn: func(ctx context.Context, coupon *model.Coupon) error {
			captured = coupon
			return nil
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})
	coupon, err := svc.Create(context.Background(), &model.CreateCouponRequest{
		Code:            "IGNORED",
		Name:            "Welcome Coupon",
		DiscountPercent: floatPtr(15),
		ExpiresAt:       time.Now().AddDate(2, 0, 0),
		Variant:         model.CouponIndividual,
		Beneficiaries:   []string{"acc-1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "COUPON-generated", coupon.Code, "INDIVIDUAL coupons always get a generated code")
	assert.Equal(t, []string{"acc-1"}, captured.Beneficiaries)
}

func TestCouponService_Create_ExpiredDate(t *testing.T) {
	svc := NewCouponService(&mockCouponRepository{}, &mockCodeGenerator{})
	_, err := svc.Create(context.Background(), &model.CreateCouponRequest{
		Code:            "SUMMER25",
		Name:            "Summer Promo",
		DiscountPercent: floatPtr(25),
		ExpiresAt:       time.Now().Add(-time.Hour),
		Variant:         model.CouponUnique,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExpiredDate))
}

func TestCouponService_Create_DuplicateUniqueCode(t *testing.T) {
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, couponCode string) (*model.Coupon, error) {
			return &model.Coupon{Code: couponCode}, nil
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})
	_, err := svc.Create(context.Background(), &model.CreateCouponRequest{
		Code:            "SUMMER25",
		Name:            "Summer Promo",
		DiscountPercent: floatPtr(25),
		ExpiresAt:       time.Now().Add(24 * time.Hour),
		Variant:         model.CouponUnique,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCouponCodeExists))
}

func TestCouponService_Create_DuplicateIndividualCode(t *testing.T) {
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, couponCode string) (*model.Coupon, error) {
			return &model.Coupon{Code: couponCode}, nil
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})
	_, err := svc.Create(context.Background(), &model.CreateCouponRequest{
		Code:            "TAKEN",
		Name:            "Welcome Coupon",
		DiscountPercent: floatPtr(15),
		ExpiresAt:       time.Now().AddDate(2, 0, 0),
		Variant:         model.CouponIndividual,
		Beneficiaries:   []string{"acc-1"},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCouponCodeExists), "the duplicate check applies to every variant")
}

func TestCouponService_Create_EmptyCodeSkipsLookup(t *testing.T) {
	lookedUp := false
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, couponCode string) (*model.Coupon, error) {
			lookedUp = true
			return &model.Coupon{Code: couponCode}, nil
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})
	coupon, err := svc.Create(context.Background(), &model.CreateCouponRequest{
		Name:            "Welcome Coupon",
		DiscountPercent: floatPtr(15),
		ExpiresAt:       time.Now().AddDate(2, 0, 0),
		Variant:         model.CouponIndividual,
		Beneficiaries:   []string{"acc-1"},
	})

	require.NoError(t, err)
	assert.False(t, lookedUp, "a generated-code coupon has no submitted code to collide")
	assert.Equal(t, "COUPON-generated", coupon.Code)
}

func TestCouponService_Create_NilRequest(t *testing.T) {
	svc := NewCouponService(&mockCouponRepository{}, &mockCodeGenerator{})
	_, err := svc.Create(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestCouponService_Redeem_UniqueSuccess(t *testing.T) {
	var redeemedCode, redeemedAccount string
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, couponCode string) (*model.Coupon, error) {
			return &model.Coupon{
				Code:          couponCode,
				State:         model.CouponAvailable,
				ExpiresAt:     time.Now().Add(time.Hour),
				Variant:       model.CouponUnique,
				Beneficiaries: []string{},
			}, nil
		},
		redeemUniqueFn: func(ctx context.Context, couponCode, accountID string) (bool, error) {
			redeemedCode = couponCode
			redeemedAccount = accountID
			return true, nil
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})
	err := svc.Redeem(context.Background(), &model.RedeemCouponRequest{Code: "SUMMER25", AccountID: "acc-1"})

	require.NoError(t, err)
	assert.Equal(t, "SUMMER25", redeemedCode)
	assert.Equal(t, "acc-1", redeemedAccount)
}

func TestCouponService_Redeem_UniqueLostRace(t *testing.T) {
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, couponCode string) (*model.Coupon, error) {
			return &model.Coupon{
				Code:          couponCode,
				State:         model.CouponAvailable,
				ExpiresAt:     time.Now().Add(time.Hour),
				Variant:       model.CouponUnique,
				Beneficiaries: []string{},
			}, nil
		},
		redeemUniqueFn: func(ctx context.Context, couponCode, accountID string) (bool, error) {
			return false, nil // another redemption won the conditional write
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})
	err := svc.Redeem(context.Background(), &model.RedeemCouponRequest{Code: "SUMMER25", AccountID: "acc-2"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCouponNotRedeemable), "second redemption of a UNIQUE coupon must fail")
}

func TestCouponService_Redeem_IndividualSuccess(t *testing.T) {
	var consumedAccount string
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, couponCode string) (*model.Coupon, error) {
			return &model.Coupon{
				Code:          couponCode,
				State:         model.CouponAvailable,
				ExpiresAt:     time.Now().Add(time.Hour),
				Variant:       model.CouponIndividual,
				Beneficiaries: []string{"acc-1", "acc-2"},
			}, nil
		},
		consumeBeneficiaryFn: func(ctx context.Context, couponCode, accountID string) (bool, error) {
			consumedAccount = accountID
			return true, nil
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})
	err := svc.Redeem(context.Background(), &model.RedeemCouponRequest{Code: "COUPON-abc", AccountID: "acc-2"})

	require.NoError(t, err)
	assert.Equal(t, "acc-2", consumedAccount)
}

func TestCouponService_Redeem_IndividualNotBeneficiary(t *testing.T) {
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, couponCode string) (*model.Coupon, error) {
			return &model.Coupon{
				Code:          couponCode,
				State:         model.CouponAvailable,
				ExpiresAt:     time.Now().Add(time.Hour),
				Variant:       model.CouponIndividual,
				Beneficiaries: []string{"acc-1"},
			}, nil
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})
	err := svc.Redeem(context.Background(), &model.RedeemCouponRequest{Code: "COUPON-abc", AccountID: "acc-9"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotBeneficiary))
}

func TestCouponService_Redeem_IndividualAlreadyConsumed(t *testing.T) {
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, couponCode string) (*model.Coupon, error) {
			return &model.Coupon{
				Code:          couponCode,
				State:         model.CouponAvailable,
				ExpiresAt:     time.Now().Add(time.Hour),
				Variant:       model.CouponIndividual,
				Beneficiaries: []string{"acc-1"},
			}, nil
		},
		consumeBeneficiaryFn: func(ctx context.Context, couponCode, accountID string) (bool, error) {
			return false, nil // entry consumed concurrently
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})
	err := svc.Redeem(context.Background(), &model.RedeemCouponRequest{Code: "COUPON-abc", AccountID: "acc-1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCouponNotRedeemable))
}

func TestCouponService_Redeem_NotFound(t *testing.T) {
	svc := NewCouponService(&mockCouponRepository{}, &mockCodeGenerator{})
	err := svc.Redeem(context.Background(), &model.RedeemCouponRequest{Code: "GHOST", AccountID: "acc-1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCouponNotFound))
}

func TestCouponService_Redeem_Expired(t *testing.T) {
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, couponCode string) (*model.Coupon, error) {
			return &model.Coupon{
				Code:          couponCode,
				State:         model.CouponAvailable,
				ExpiresAt:     time.Now().Add(-time.Hour),
				Variant:       model.CouponUnique,
				Beneficiaries: []string{},
			}, nil
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})
	err := svc.Redeem(context.Background(), &model.RedeemCouponRequest{Code: "SUMMER25", AccountID: "acc-1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCouponNotRedeemable))
}

func TestCouponService_Redeem_Unavailable(t *testing.T) {
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, couponCode string) (*model.Coupon, error) {
			return &model.Coupon{
				Code:          couponCode,
				State:         model.CouponUnavailable,
				ExpiresAt:     time.Now().Add(time.Hour),
				Variant:       model.CouponUnique,
				Beneficiaries: []string{},
			}, nil
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})
	err := svc.Redeem(context.Background(), &model.RedeemCouponRequest{Code: "SUMMER25", AccountID: "acc-1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCouponNotRedeemable))
}

func TestCouponService_Redeem_UnknownVariant(t *testing.T) {
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, couponCode string) (*model.Coupon, error) {
			return &model.Coupon{
				Code:          couponCode,
				State:         model.CouponAvailable,
				ExpiresAt:     time.Now().Add(time.Hour),
				Variant:       model.CouponVariant("LEGACY"),
				Beneficiaries: []string{},
			}, nil
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})
	err := svc.Redeem(context.Background(), &model.RedeemCouponRequest{Code: "SUMMER25", AccountID: "acc-1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCouponVariant))
}

func TestCouponService_IsRedeemable(t *testing.T) {
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, couponCode string) (*model.Coupon, error) {
			if couponCode == "LIVE" {
				return &model.Coupon{
					Code:      couponCode,
					State:     model.CouponAvailable,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil
			}
			return nil, nil
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})

	ok, err := svc.IsRedeemable(context.Background(), "LIVE")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsRedeemable(context.Background(), "GHOST")
	require.NoError(t, err)
	assert.False(t, ok, "a missing coupon is simply not redeemable")
}

func TestCouponService_Update_ExpiredDate(t *testing.T) {
	repo := &mockCouponRepository{
		getByIDFn: func(ctx context.Context, id string) (*model.Coupon, error) {
			return &model.Coupon{ID: id}, nil
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})
	err := svc.Update(context.Background(), "coupon-1", &model.UpdateCouponRequest{
		Name:            "Promo",
		DiscountPercent: floatPtr(10),
		State:           model.CouponAvailable,
		ExpiresAt:       time.Now().Add(-time.Minute),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExpiredDate))
}

func TestCouponService_Revoke_NotFound(t *testing.T) {
	repo := &mockCouponRepository{
		revokeFn: func(ctx context.Context, id string) (bool, error) {
			return false, nil
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})
	err := svc.Revoke(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCouponNotFound))
}

func TestCouponService_ListAvailableFor(t *testing.T) {
	repo := &mockCouponRepository{
		listAvailableForFn: func(ctx context.Context, accountID string) ([]model.Coupon, error) {
			return []model.Coupon{
				{ID: "c1", Code: "SUMMER25", Name: "Summer", DiscountPercent: 25, Variant: model.CouponUnique},
				{ID: "c2", Code: "COUPON-abc", Name: "Welcome Coupon", DiscountPercent: 15, Variant: model.CouponIndividual},
			}, nil
		},
	}

	svc := NewCouponService(repo, &mockCodeGenerator{})
	items, err := svc.ListAvailableFor(context.Background(), "acc-1")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "SUMMER25", items[0].Code)
	assert.Equal(t, model.CouponIndividual, items[1].Variant)
}
