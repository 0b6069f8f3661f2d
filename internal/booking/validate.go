package booking

import (
	"net/mail"
	"regexp"
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// digits with an optional leading +, 8..15 long, the way the backend accepts them
var phoneRe = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// validateSubmission applies the pre-flight schema check: proof is required
// and must be an image; contact fields are only checked when a draft exists.
// One error per field, first failing rule wins.
func validateSubmission(proof *ProofFile, draft *Draft) []FieldError {
	var errs []FieldError

	switch {
	case proof == nil || len(proof.Data) == 0:
		errs = append(errs, FieldError{Field: "proof", Message: "proof of payment is required"})
	case !strings.HasPrefix(proof.ContentType, "image/"):
		errs = append(errs, FieldError{Field: "proof", Message: "proof of payment must be an image"})
	}

	if draft == nil {
		return errs
	}
	if strings.TrimSpace(draft.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if !validEmail(draft.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "email is invalid"})
	}
	if !phoneRe.MatchString(strings.TrimSpace(draft.Phone)) {
		errs = append(errs, FieldError{Field: "phone", Message: "phone is invalid"})
	}
	if strings.TrimSpace(draft.Address) == "" {
		errs = append(errs, FieldError{Field: "address", Message: "address is required"})
	}
	if strings.TrimSpace(draft.City) == "" {
		errs = append(errs, FieldError{Field: "city", Message: "city is required"})
	}
	if strings.TrimSpace(draft.PostCode) == "" {
		errs = append(errs, FieldError{Field: "post_code", Message: "post code is required"})
	}
	return errs
}

func validEmail(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := mail.ParseAddress(s)
	return err == nil
}
