package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart indicates checkout was attempted with no resolvable cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidTotal indicates the server-side computed total was zero or negative.
	ErrInvalidTotal = errors.New("invalid total")

	// ErrGateway indicates the payment gateway rejected or failed the request.
	// It is retryable by the caller; checkout does not retry on its own.
	ErrGateway = errors.New("payment gateway error")

	// ErrInvalidSignature indicates a payment callback failed HMAC verification.
	// Callers must not mutate any order or cart state on this error.
	ErrInvalidSignature = errors.New("invalid payment signature")

	// ErrStoreInconsistency indicates a broken invariant in the order store,
	// e.g. a status update that matched no order. Surfaced as a server fault.
	ErrStoreInconsistency = errors.New("order store inconsistency")
)
