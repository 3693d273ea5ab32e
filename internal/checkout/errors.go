package checkout

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to check out")
	ErrInvalidPayment     = errors.New("unknown payment method")
	ErrIncompleteAddress  = errors.New("shipping address is missing required fields")
	ErrSubmissionInFlight = errors.New("a checkout for this buyer is already in flight")
)
