package constant

import "errors"

// Sentinel errors for the dialogue core. Callers branch with errors.Is and
// must never surface these raw to the end user; the orchestrator maps each
// one to a catalog message before formatting.
var (
	// ErrMalformedModelOutput marks a classifier/extractor response that
	// failed schema validation.
	ErrMalformedModelOutput = errors.New("malformed model output")

	// ErrOrderNotFound marks a lookup/cancel miss for an (email, order_id) pair.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderNotCancellable marks a cancel attempt on a non-pending order.
	ErrOrderNotCancellable = errors.New("order not cancellable")

	// ErrTransient marks a storage/completion/embedding connectivity fault.
	// Logged, never retried automatically.
	ErrTransient = errors.New("transient infrastructure fault")

	// ErrValidation marks a malformed slot value (email/order id shape).
	// Treated as "slot not yet provided", not as a hard failure.
	ErrValidation = errors.New("validation failed")
)
