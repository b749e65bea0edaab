/*
Package req provides helper functions for HTTP request parsing and data binding.

It encapsulates strict JSON body decoding with integrated error handling, so
handlers receive either a fully-bound struct or a catalogued error.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"placerank/internal/pkg/errs"
)

// MaxBodyBytes is the largest request body the API accepts (1 MB). Payloads on
// this API are small JSON documents; photos go directly to object storage.
const MaxBodyBytes int64 = 1 << 20

// BindJSON binds the JSON request body to dst. Unknown fields and trailing
// content are rejected so malformed clients fail loudly.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
