package booking

import "fmt"

// PaymentStatus tracks payment state independently of the booking lifecycle.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// validPaymentTransitions allows a retry after failure and a refund after payment.
var validPaymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:  {PaymentPaid, PaymentFailed},
	PaymentFailed:   {PaymentPaid},
	PaymentPaid:     {PaymentRefunded},
	PaymentRefunded: {},
}

// IsValid returns true if the status is a recognized payment status.
func (s PaymentStatus) IsValid() bool {
	_, exists := validPaymentTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition to the target is allowed.
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	allowed, exists := validPaymentTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// String returns the string representation of the status.
func (s PaymentStatus) String() string {
	return string(s)
}

// ParsePaymentStatus converts a string to a PaymentStatus, returning an error if invalid.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid payment status: %s", s)
	}
	return status, nil
}
