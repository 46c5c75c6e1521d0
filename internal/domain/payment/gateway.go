package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Gateway abstracts the external payment processor. Implementations charge
// and refund settled amounts; the service layer owns the surrounding state
// transitions.
type Gateway interface {
	// Charge attempts to capture the payment amount and returns the
	// processor's transaction reference on success.
	Charge(ctx context.Context, p *Payment) (string, error)

	// Refund returns a completed payment's amount to the payer.
	Refund(ctx context.Context, p *Payment) error
}

// StubGateway approves every charge and refund. It stands in for a real
// processor in development and test environments.
type StubGateway struct{}

// NewStubGateway creates a new StubGateway.
func NewStubGateway() *StubGateway {
	return &StubGateway{}
}

// Charge approves the payment and mints a synthetic transaction reference.
func (g *StubGateway) Charge(_ context.Context, _ *Payment) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate transaction ID: %w", err)
	}
	return "TXN-" + hex.EncodeToString(buf), nil
}

// Refund always succeeds.
func (g *StubGateway) Refund(_ context.Context, _ *Payment) error {
	return nil
}
