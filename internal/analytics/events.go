package analytics

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventCheckoutStarted  = "CheckoutStarted"
	EventPaymentSubmitted = "PaymentSubmitted"
	EventBookingLookedUp  = "BookingLookedUp"
)

type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

func NewEnvelope(eventType, producer string, payload any) Envelope {
	return Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     producer,
		Payload:      MustMarshal(payload),
	}
}

type LineQty struct {
	CosmeticID int `json:"cosmetic_id"`
	Quantity   int `json:"quantity"`
}

type CheckoutStartedPayload struct {
	Items         []LineQty `json:"items"`
	TotalQuantity int       `json:"total_quantity"`
	Subtotal      int       `json:"subtotal"`
	Total         int       `json:"total"`
}

type PaymentSubmittedPayload struct {
	BookingTrxID string `json:"booking_trx_id,omitempty"`
	Succeeded    bool   `json:"succeeded"`
}

type BookingLookedUpPayload struct {
	BookingTrxID string `json:"booking_trx_id"`
	Found        bool   `json:"found"`
}

func MustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
