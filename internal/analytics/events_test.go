package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	ev := NewEnvelope(EventPaymentSubmitted, "shayna-storefront", PaymentSubmittedPayload{
		BookingTrxID: "TRX1",
		Succeeded:    true,
	})

	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, EventPaymentSubmitted, ev.EventType)
	assert.Equal(t, 1, ev.EventVersion)
	assert.Equal(t, "shayna-storefront", ev.Producer)

	var p PaymentSubmittedPayload
	require.NoError(t, json.Unmarshal(ev.Payload, &p))
	assert.Equal(t, "TRX1", p.BookingTrxID)
	assert.True(t, p.Succeeded)
}

func TestNilProducerIsNoOp(t *testing.T) {
	var p *Producer
	// a disabled activity stream must never panic or block the flows
	p.Emit(EventCheckoutStarted, "svc", "checkout", CheckoutStartedPayload{})
	p.Close()
	p.WaitClosed()
}
