package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/akhdanfarrosrenoldi/shaynacosmeticfrontend/internal/cart"
)

var (
	ErrValidationFailed = errors.New("booking: validation failed")
	ErrSubmitFailed     = errors.New("booking: submission failed")
	ErrSubmitInFlight   = errors.New("booking: submission already in progress or finished")
)

// Client talks to the booking endpoints of the storefront API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTP: &http.Client{}}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body *bytes.Buffer) (*http.Request, error) {
	var r *bytes.Buffer
	if body == nil {
		r = &bytes.Buffer{}
	} else {
		r = body
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	return req, nil
}

// ProofFile is the uploaded proof of payment, kept in memory for the
// lifetime of one submission flow so a failed submit does not force the
// user to re-pick the file.
type ProofFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ProofFromFile reads a proof of payment from disk and sniffs its type.
func ProofFromFile(path string) (*ProofFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &ProofFile{
		Name:        filepath.Base(path),
		ContentType: http.DetectContentType(b),
		Data:        b,
	}, nil
}

// SubmitResult is the (trx id, email) pair handed off to the confirmation view.
type SubmitResult struct {
	BookingTrxID string
	Email        string
}

// NavigationTarget is the confirmation route for a successful submission.
func (r SubmitResult) NavigationTarget() string {
	return fmt.Sprintf("/booking-finished?trx_id=%s&email=%s", r.BookingTrxID, r.Email)
}

// Flow drives one payment submission: idle -> validating -> submitting ->
// succeeded | failed. On success it clears both client stores; on failure it
// keeps the proof in memory and waits for the user to resubmit.
type Flow struct {
	API    *Client
	Cart   *cart.Store
	Drafts *DraftStore

	state       State
	proof       *ProofFile
	fieldErrors []FieldError
	result      *SubmitResult
}

func NewFlow(api *Client, cartStore *cart.Store, draftStore *DraftStore) *Flow {
	return &Flow{API: api, Cart: cartStore, Drafts: draftStore, state: StateIdle}
}

func (f *Flow) State() State              { return f.state }
func (f *Flow) FieldErrors() []FieldError { return f.fieldErrors }
func (f *Flow) Proof() *ProofFile         { return f.proof }
func (f *Flow) Result() *SubmitResult     { return f.result }

func (f *Flow) SetProof(p *ProofFile) { f.proof = p }

// Submit runs the whole flow for the given cart lines. No automatic retry:
// any failure leaves the flow in StateFailed and returns control to the user.
func (f *Flow) Submit(ctx context.Context, items []cart.Item) (*SubmitResult, error) {
	if !CanTransition(f.state, StateValidating) {
		return nil, ErrSubmitInFlight
	}
	f.state = StateValidating

	draft, err := f.Drafts.Load(ctx)
	if err != nil {
		f.state = StateIdle
		return nil, err
	}
	if errs := validateSubmission(f.proof, draft); len(errs) > 0 {
		f.fieldErrors = errs
		f.state = StateIdle
		return nil, fmt.Errorf("%w: %s: %s", ErrValidationFailed, errs[0].Field, errs[0].Message)
	}

	f.state = StateSubmitting
	res, err := f.API.createTransaction(ctx, f.proof, draft, items)
	if err != nil {
		// field errors are discarded on a failed submit, matching the
		// storefront's observed behavior; the proof stays picked
		f.fieldErrors = nil
		f.state = StateFailed
		return nil, err
	}

	if err := f.Cart.Clear(ctx); err != nil {
		f.fieldErrors = nil
		f.state = StateFailed
		return nil, err
	}
	if err := f.Drafts.Clear(ctx); err != nil {
		f.fieldErrors = nil
		f.state = StateFailed
		return nil, err
	}

	f.proof = nil
	f.fieldErrors = nil
	f.result = res
	f.state = StateSucceeded
	return res, nil
}

type transactionResp struct {
	Data struct {
		BookingTrxID string `json:"booking_trx_id"`
		Email        string `json:"email"`
	} `json:"data"`
}

// createTransaction multipart-encodes the submission and posts it.
func (c *Client) createTransaction(ctx context.Context, proof *ProofFile, draft *Draft, items []cart.Item) (*SubmitResult, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="proof"; filename=%q`, proof.Name))
	h.Set("Content-Type", proof.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(proof.Data); err != nil {
		return nil, err
	}

	if draft != nil {
		fields := map[string]string{
			"name":      draft.Name,
			"email":     draft.Email,
			"phone":     draft.Phone,
			"address":   draft.Address,
			"city":      draft.City,
			"post_code": draft.PostCode,
		}
		for k, v := range fields {
			if err := w.WriteField(k, v); err != nil {
				return nil, err
			}
		}
	}

	for i, it := range items {
		if err := w.WriteField(fmt.Sprintf("cosmetic_ids[%d][id]", i), strconv.Itoa(it.CosmeticID)); err != nil {
			return nil, err
		}
		if err := w.WriteField(fmt.Sprintf("cosmetic_ids[%d][quantity]", i), strconv.Itoa(it.Quantity)); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/booking-transaction", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrSubmitFailed, resp.StatusCode)
	}

	var tr transactionResp
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSubmitFailed, err)
	}
	if tr.Data.BookingTrxID == "" {
		return nil, fmt.Errorf("%w: response missing booking_trx_id", ErrSubmitFailed)
	}
	return &SubmitResult{BookingTrxID: tr.Data.BookingTrxID, Email: tr.Data.Email}, nil
}
