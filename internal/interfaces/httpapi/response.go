package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/toto-league/internal/domain/entity"
	"github.com/riskibarqy/toto-league/internal/usecase"
)

const (
	apiVersion  = "2.0"
	errorDomain = "toto-league"

	internalErrorMessage = "internal server error"
	// recomputeRetryAfter is advertised while a ranking recompute holds the lock.
	recomputeRetryAfter = 5
)

type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain   string `json:"domain"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

// errorMappings is checked in order; the first matching entry wins.
var errorMappings = []struct {
	target error
	mapped mappedError
}{
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrUnauthorized, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{usecase.ErrRecomputeInProgress, mappedError{http.StatusConflict, "recomputeInProgress", "ABORTED"}},
	{usecase.ErrConflict, mappedError{http.StatusConflict, "conflict", "ALREADY_EXISTS"}},
	{entity.ErrDuplicate, mappedError{http.StatusConflict, "duplicate", "ALREADY_EXISTS"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

var internalError = mappedError{http.StatusInternalServerError, "internalError", "INTERNAL"}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, envelope{APIVersion: apiVersion, Data: data})
}

// writeError renders err in the error envelope. Unmapped errors are reported
// as a generic internal error.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	message := err.Error()
	if mapped == internalError {
		message = internalErrorMessage
	}
	if errors.Is(err, usecase.ErrRecomputeInProgress) {
		w.Header().Set("Retry-After", strconv.Itoa(recomputeRetryAfter))
	}

	body := &errorBody{
		Code:    mapped.HTTPStatus,
		Message: message,
		Status:  mapped.Status,
		Errors:  fieldErrors(err),
	}
	if len(body.Errors) == 0 {
		body.Errors = []errorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}}
	}
	writeJSON(ctx, w, mapped.HTTPStatus, envelope{APIVersion: apiVersion, Error: body})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New(internalErrorMessage))
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.mapped
		}
	}
	return internalError
}

// fieldErrors expands validator failures into one item per request field.
func fieldErrors(err error) []errorItem {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]errorItem, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, errorItem{
			Domain:   errorDomain,
			Reason:   "invalidField",
			Message:  fe.Field() + " failed " + fe.Tag(),
			Location: fe.Field(),
		})
	}
	return out
}
