package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unievents/unievents/internal/model"
	"github.com/unievents/unievents/internal/service"
)

// CouponRepository provides data access for coupons using pgx. Redemption
// writes are conditional on the coupon still being AVAILABLE, which gives the
// ledger the compare-and-set semantics it requires from its store.
type CouponRepository struct {
	pool PoolInterface
}

// NewCouponRepository creates a CouponRepository with the given pool.
func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// NewCouponRepositoryWithPool creates a CouponRepository with a custom pool
// interface. Primarily used for testing.
func NewCouponRepositoryWithPool(pool PoolInterface) *CouponRepository {
	return &CouponRepository{pool: pool}
}

const couponColumns = `id, code, name, discount_percent, state, expires_at, variant, beneficiaries`

func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var coupon model.Coupon
	err := row.Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.Name,
		&coupon.DiscountPercent,
		&coupon.State,
		&coupon.ExpiresAt,
		&coupon.Variant,
		&coupon.Beneficiaries,
	)
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// Insert stores a new coupon and fills in its generated id. A duplicate code
// maps to service.ErrCouponCodeExists.
func (r *CouponRepository) Insert(ctx context.Context, coupon *model.Coupon) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO coupons (code, name, discount_percent, state, expires_at, variant, beneficiaries)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		coupon.Code, coupon.Name, coupon.DiscountPercent, coupon.State,
		coupon.ExpiresAt, coupon.Variant, coupon.Beneficiaries,
	).Scan(&coupon.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return service.ErrCouponCodeExists
		}
		return fmt.Errorf("insert coupon: %w", err)
	}
	return nil
}

// GetByID retrieves a coupon by id. Returns nil, nil when not found.
func (r *CouponRepository) GetByID(ctx context.Context, id string) (*model.Coupon, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id)
	coupon, err := scanCoupon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon by id: %w", err)
	}
	return coupon, nil
}

// GetByCode retrieves a coupon by code. Returns nil, nil when not found.
func (r *CouponRepository) GetByCode(ctx context.Context, couponCode string) (*model.Coupon, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE code = $1`, couponCode)
	coupon, err := scanCoupon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon by code: %w", err)
	}
	return coupon, nil
}

// Update replaces the mutable fields of a coupon.
func (r *CouponRepository) Update(ctx context.Context, coupon *model.Coupon) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE coupons SET name = $2, discount_percent = $3, state = $4,
			expires_at = $5, beneficiaries = $6
		 WHERE id = $1`,
		coupon.ID, coupon.Name, coupon.DiscountPercent, coupon.State,
		coupon.ExpiresAt, coupon.Beneficiaries)
	if err != nil {
		return fmt.Errorf("update coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrCouponNotFound
	}
	return nil
}

// RedeemUnique records the redeemer and retires the coupon in one write,
// conditional on the coupon still being AVAILABLE. Two concurrent calls
// cannot both report true.
func (r *CouponRepository) RedeemUnique(ctx context.Context, couponCode, accountID string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE coupons
		 SET state = 'UNAVAILABLE', beneficiaries = array_append(beneficiaries, $2)
		 WHERE code = $1 AND state = 'AVAILABLE'`,
		couponCode, accountID)
	if err != nil {
		return false, fmt.Errorf("redeem unique coupon: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ConsumeBeneficiary removes the account from the beneficiary list,
// conditional on the coupon being AVAILABLE and the account still listed.
func (r *CouponRepository) ConsumeBeneficiary(ctx context.Context, couponCode, accountID string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE coupons
		 SET beneficiaries = array_remove(beneficiaries, $2)
		 WHERE code = $1 AND state = 'AVAILABLE' AND $2 = ANY(beneficiaries)`,
		couponCode, accountID)
	if err != nil {
		return false, fmt.Errorf("consume beneficiary: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Revoke retires a coupon. Reports false when no coupon matches.
func (r *CouponRepository) Revoke(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE coupons SET state = 'UNAVAILABLE' WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("revoke coupon: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListAvailable returns every AVAILABLE, unexpired coupon.
func (r *CouponRepository) ListAvailable(ctx context.Context) ([]model.Coupon, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+couponColumns+` FROM coupons
		 WHERE state = 'AVAILABLE' AND expires_at > now()
		 ORDER BY expires_at`)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	return collectCoupons(rows)
}

// ListAvailableFor returns the AVAILABLE, unexpired coupons the account can
// redeem: every UNIQUE coupon plus the INDIVIDUAL ones listing it.
func (r *CouponRepository) ListAvailableFor(ctx context.Context, accountID string) ([]model.Coupon, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+couponColumns+` FROM coupons
		 WHERE state = 'AVAILABLE' AND expires_at > now()
		   AND (variant = 'UNIQUE' OR (variant = 'INDIVIDUAL' AND $1 = ANY(beneficiaries)))
		 ORDER BY expires_at`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list coupons for account: %w", err)
	}
	return collectCoupons(rows)
}

func collectCoupons(rows pgx.Rows) ([]model.Coupon, error) {
	defer rows.Close()
	coupons := []model.Coupon{}
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		coupons = append(coupons, *coupon)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("collect coupons: %w", err)
	}
	return coupons, nil
}
