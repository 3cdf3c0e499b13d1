package orders

import "solestride/domain"

// Forward progression of an order. Cancellation branches off any
// pre-delivered state. Forward jumps are permitted (pending can go
// straight to shipped); backward moves never are.
var statusRank = map[string]int{
	domain.StatusPending:    0,
	domain.StatusProcessing: 1,
	domain.StatusShipped:    2,
	domain.StatusDelivered:  3,
	domain.StatusReceived:   4,
}

func IsValidStatus(status string) bool {
	if status == domain.StatusCancelled {
		return true
	}
	_, ok := statusRank[status]
	return ok
}

// IsTerminal reports whether the standard status-update operation may no
// longer touch the order. Received is reached only through the
// purchaser's confirm-receipt operation.
func IsTerminal(status string) bool {
	switch status {
	case domain.StatusDelivered, domain.StatusReceived, domain.StatusCancelled:
		return true
	}
	return false
}

// ValidateTransition enforces the state machine for the standard status
// update. It returns a ValidationError so callers surface it as a client
// error without touching stored state.
func ValidateTransition(from, to string) error {
	if !IsValidStatus(to) {
		return domain.NewValidationError("invalid order status %q", to)
	}

	if IsTerminal(from) {
		return domain.NewValidationError("order is already %s and can no longer change status", from)
	}

	switch to {
	case domain.StatusCancelled:
		// from is pending, processing or shipped here
		return nil
	case domain.StatusReceived:
		return domain.NewValidationError("received is confirmed by the purchaser, not set directly")
	default:
		if statusRank[to] <= statusRank[from] {
			return domain.NewValidationError("cannot move order from %s back to %s", from, to)
		}
		return nil
	}
}
