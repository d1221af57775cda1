package service

import "errors"

// Caller-facing error taxonomy. Every public service operation either returns
// a success value or exactly one of these (possibly wrapped infrastructure
// errors aside); none of them is process-fatal.
var (
	// ErrInvalidRequest is returned when request data is nil or incomplete.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmailExists is returned when the email is already registered to a
	// non-deleted account.
	ErrEmailExists = errors.New("email already registered")

	// ErrLegalIDExists is returned when the legal id is already registered to
	// a non-deleted account.
	ErrLegalIDExists = errors.New("legal id already registered")

	// ErrAccountDeleted is returned for any operation on a deleted account.
	ErrAccountDeleted = errors.New("account has been deleted")

	// ErrAccountInactive is returned when an operation requires an activated
	// account.
	ErrAccountInactive = errors.New("account has not been activated")

	// ErrCodeMismatch is returned when a submitted verification code does not
	// match the stored one.
	ErrCodeMismatch = errors.New("verification code is incorrect")

	// ErrCodeExpired is returned when a verification code is older than its
	// validity window.
	ErrCodeExpired = errors.New("verification code has expired")

	// ErrNoActiveRecovery is returned when a password change is attempted
	// without a pending recovery code.
	ErrNoActiveRecovery = errors.New("no active recovery code")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoCart is returned when a non-client account touches cart operations.
	ErrNoCart = errors.New("account has no cart")

	// ErrCartLineNotFound is returned when the referenced line is not in the
	// cart.
	ErrCartLineNotFound = errors.New("item is not in the cart")

	// ErrEventNotFound is returned when no event matches the lookup.
	ErrEventNotFound = errors.New("event not found")

	// ErrEventNameExists is returned when an event name is already taken.
	ErrEventNameExists = errors.New("event name already exists")

	// ErrLocalityNotFound is returned when the event has no locality with the
	// given name.
	ErrLocalityNotFound = errors.New("locality not found")

	// ErrInsufficientCapacity is returned when a locality has fewer tickets
	// available than requested.
	ErrInsufficientCapacity = errors.New("not enough tickets available")

	// ErrCouponNotFound is returned when no coupon matches the lookup.
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrCouponCodeExists is returned when a coupon code is already taken.
	ErrCouponCodeExists = errors.New("coupon code already exists")

	// ErrExpiredDate is returned when a coupon expiry date is not in the
	// future.
	ErrExpiredDate = errors.New("expiry date cannot be in the past")

	// ErrCouponNotRedeemable is returned when a coupon is unavailable or past
	// its expiry.
	ErrCouponNotRedeemable = errors.New("coupon is no longer redeemable")

	// ErrNotBeneficiary is returned when an account redeems an INDIVIDUAL
	// coupon it is not listed on.
	ErrNotBeneficiary = errors.New("account is not a beneficiary of this coupon")

	// ErrInvalidCouponVariant is returned when a stored coupon carries an
	// unknown variant. Malformed records must not silently redeem.
	ErrInvalidCouponVariant = errors.New("coupon variant is not valid")
)
