package domain

import "errors"

var (
	// ErrValidation marks request errors detected before any write.
	ErrValidation = errors.New("validation failed")
	// ErrPrecondition marks conflicts with current store state detected before commit.
	ErrPrecondition = errors.New("precondition failed")
)

var (
	ErrEmptyCart          = validation("cart is empty")
	ErrInvalidCart        = validation("cart is invalid")
	ErrNoPaymentMethod    = validation("no payment method selected")
	ErrSplitMismatch      = validation("split payment does not sum to total")
	ErrReserveWithPoints  = validation("reserve payment is incompatible with points redemption")
	ErrReserveWithSplit   = validation("reserve payment cannot be split")
	ErrReserveWithChange  = validation("reserve payment cannot record change due")
	ErrChangeBelowTotal   = validation("cash received is below payable total")
	ErrMethodNotAllowed   = validation("payment method is not allowed on this channel")
	ErrAddressIncomplete  = validation("delivery address is incomplete")
	ErrInsufficientPoints = validation("insufficient loyalty points")
	ErrCustomerRequired   = validation("customer phone is required")
	ErrDateClosed         = validation("store is closed on this date")
	ErrOutsideHours       = validation("time is outside opening hours")
	ErrDateInPast         = validation("scheduled date is in the past")

	ErrRegisterClosed      = precondition("register closed")
	ErrRegisterAlreadyOpen = precondition("register already open")
	ErrCouponRejected      = precondition("coupon rejected")
	ErrIllegalTransition   = precondition("illegal order status transition")
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrCouponLimitReached = errors.New("coupon usage limit reached")
	ErrNoAvailability     = errors.New("no availability in range")
	ErrAlreadyRecorded    = errors.New("already recorded")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func validation(msg string) error {
	return &kindError{kind: ErrValidation, msg: msg}
}

func precondition(msg string) error {
	return &kindError{kind: ErrPrecondition, msg: msg}
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPrecondition)
}
