package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Query identifies one order for a status lookup.
type Query struct {
	BookingTrxID string `json:"booking_trx_id"`
	Email        string `json:"email"`
}

// Validate checks the pair before any network call is made.
func (q Query) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(q.BookingTrxID) == "" {
		errs = append(errs, FieldError{Field: "booking_trx_id", Message: "transaction id is required"})
	}
	if !validEmail(q.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "email is invalid"})
	}
	return errs
}

// LookupResult is carried to the results view in memory. Not-found is a
// normal terminal outcome, not an error.
type LookupResult struct {
	Found bool
	Query Query
	Order json.RawMessage
}

// CheckBooking issues one point-in-time status query. A 200 with a body
// counts as found; a 404 or any failure counts as not-found.
func (c *Client) CheckBooking(ctx context.Context, q Query) (*LookupResult, error) {
	payload, err := json.Marshal(map[string]string{
		"email":          q.Email,
		"booking_trx_id": q.BookingTrxID,
	})
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/check-booking", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &LookupResult{Found: false, Query: q}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &LookupResult{Found: false, Query: q}, nil
	}

	var body struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || len(body.Data) == 0 {
		return &LookupResult{Found: false, Query: q}, nil
	}
	return &LookupResult{Found: true, Query: q, Order: body.Data}, nil
}
