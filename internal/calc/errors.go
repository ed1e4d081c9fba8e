package calc

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientInput is returned when the inputs a calculation needs are
	// missing or non-positive. The form keeps its Calculate button disabled in
	// the same situation.
	ErrInsufficientInput = errors.New("insufficient input")

	ErrUnknownBusinessType = errors.New("unknown business type")
	ErrUnknownEmirate      = errors.New("unknown emirate")
	ErrUnknownAddOn        = errors.New("unknown add-on")
	ErrUnknownTimeUnit     = errors.New("unknown time unit")
	ErrUnknownVATMode      = errors.New("unknown vat mode")
	ErrInvalidHorizon      = errors.New("projection horizon out of range")
	ErrTooManyEmployees    = errors.New("employee count out of range")
)

// ItemError reports which cash-flow row failed validation.
type ItemError struct {
	Index int
	Field string
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %s: %v", e.Index, e.Field, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

var (
	errNonPositiveAmount = errors.New("amount must be greater than zero")
	errUnknownType       = errors.New("unknown type")
	errUnknownFrequency  = errors.New("unknown frequency")
)
