package payment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/service-booking/internal/pkg/domain"
)

func newTestPayment(t *testing.T) *Payment {
	t.Helper()
	p, err := NewPayment(uuid.New(), uuid.New(), 30000, "USD", MethodCard)
	require.NoError(t, err)
	return p
}

func TestNewPayment_Validation(t *testing.T) {
	_, err := NewPayment(uuid.Nil, uuid.New(), 30000, "USD", MethodCard)
	assert.True(t, domain.IsKind(err, domain.KindInvalidRequest))

	_, err = NewPayment(uuid.New(), uuid.New(), 0, "USD", MethodCard)
	assert.True(t, domain.IsKind(err, domain.KindInvalidRequest))

	_, err = NewPayment(uuid.New(), uuid.New(), 30000, "USD", Method("crypto"))
	assert.True(t, domain.IsKind(err, domain.KindInvalidRequest))
}

func TestPayment_Lifecycle(t *testing.T) {
	p := newTestPayment(t)
	assert.Equal(t, StatusPending, p.Status())

	require.NoError(t, p.MarkCompleted("TXN-abc123"))
	assert.Equal(t, StatusCompleted, p.Status())
	assert.Equal(t, "TXN-abc123", p.TransactionID())

	// Completed payments cannot fail.
	err := p.MarkFailed("late decline")
	assert.True(t, domain.IsKind(err, domain.KindInvalidState))

	require.NoError(t, p.MarkRefunded())
	assert.Equal(t, StatusRefunded, p.Status())

	// Refunded is terminal.
	err = p.MarkCompleted("TXN-again")
	assert.True(t, domain.IsKind(err, domain.KindInvalidState))
}

func TestPayment_FailedIsTerminal(t *testing.T) {
	p := newTestPayment(t)
	require.NoError(t, p.MarkFailed("card declined"))
	assert.Equal(t, "card declined", p.FailureReason())

	err := p.MarkRefunded()
	assert.True(t, domain.IsKind(err, domain.KindInvalidState))
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("")
	require.NoError(t, err)
	assert.Equal(t, MethodCard, m)

	m, err = ParseMethod("bank_transfer")
	require.NoError(t, err)
	assert.Equal(t, MethodBankTransfer, m)

	_, err = ParseMethod("crypto")
	assert.True(t, domain.IsKind(err, domain.KindInvalidRequest))
}

func TestStubGateway_Charge(t *testing.T) {
	g := NewStubGateway()
	p := newTestPayment(t)

	txn, err := g.Charge(context.Background(), p)
	require.NoError(t, err)
	assert.Contains(t, txn, "TXN-")
}
