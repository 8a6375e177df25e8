// Package req provides helpers for parsing HTTP request bodies: HTML
// form submissions for the page handlers and JSON for the API-style
// endpoints. Size limits and error mapping are applied in one place.
package req

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"roomhub/internal/pkg/errs"
)

const (
	// MaxFormSize caps the size (1 MB) of a URL-encoded form body.
	MaxFormSize int64 = 1 << 20

	// MaxJSONSize caps the size (64 KB) of a JSON request body.
	MaxJSONSize int64 = 64 << 10
)

// ParseForm parses a URL-encoded form body with a size limit applied.
func ParseForm(w http.ResponseWriter, r *http.Request) *errs.CustomError {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormSize)

	if err := r.ParseForm(); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}

		return errs.NewError(errs.ErrFormParseFailed)
	}

	return nil
}

// Field returns the named form value with surrounding whitespace removed.
func Field(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostFormValue(name))
}

// BindJSON decodes the JSON request body into dst, rejecting unknown
// fields and trailing content.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(nil, r.Body, MaxJSONSize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	return nil
}
