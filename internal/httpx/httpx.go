// Package httpx holds the JSON response helpers shared by the module handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
)

var validate = validator.New()

// Respond writes body as JSON with the given status.
func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Error writes {"error": err} with a status derived from the error kind.
func Error(w http.ResponseWriter, err error) {
	ErrorWith(w, err, nil)
}

// ErrorWith is Error plus a data payload, used when part of the work was committed.
func ErrorWith(w http.ResponseWriter, err error, data interface{}) {
	body := map[string]interface{}{"error": err.Error()}
	if fields := ValidationFields(err); fields != nil {
		body["fields"] = fields
	}
	if data != nil {
		body["data"] = data
	}
	Respond(w, StatusFor(err), body)
}

// Message writes {"message": msg} plus an optional data payload.
func Message(w http.ResponseWriter, status int, msg string, data interface{}) {
	body := map[string]interface{}{"message": msg}
	if data != nil {
		body["data"] = data
	}
	Respond(w, status, body)
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	var ve validator.ValidationErrors
	switch {
	case errors.As(err, &ve), errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict), IsDuplicateKey(err):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// IsDuplicateKey returns true when the error is a PostgreSQL unique constraint violation (code 23505).
func IsDuplicateKey(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Decode reads a JSON body into dst and runs struct validation on it.
func Decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Invalid("invalid request body: " + err.Error())
	}
	return Validate(dst)
}

// Validate runs the validator tags on v.
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return ve
		}
		return err
	}
	return nil
}

// ValidationFields flattens validator errors into field -> tag.
func ValidationFields(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
