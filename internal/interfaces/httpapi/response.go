package httpapi

import (
	"context"
	"net/http"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "footy-career"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(ctx, err)
	markSpanFailed(ctx, err, mapped.HTTPStatus, mapped.Reason)
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

func mapError(_ context.Context, err error) mappedError {
	// A corrupt save may also carry the validation error that rejected it.
	switch {
	case crerr.Is(err, career.ErrCorruptSave):
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "corruptSave",
			Status:     "DATA_LOSS",
		}
	case crerr.Is(err, usecase.ErrInvalidInput), crerr.Is(err, career.ErrConfiguration):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case crerr.Is(err, usecase.ErrNotFound), crerr.Is(err, career.ErrNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case crerr.Is(err, usecase.ErrConflict):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "conflict",
			Status:     "ABORTED",
		}
	case crerr.Is(err, career.ErrInsufficientResource):
		return mappedError{
			HTTPStatus: http.StatusPaymentRequired,
			Reason:     "insufficientResource",
			Status:     "RESOURCE_EXHAUSTED",
		}
	case crerr.Is(err, career.ErrCapReached):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     "capReached",
			Status:     "ALREADY_EXISTS",
		}
	case crerr.Is(err, career.ErrValidation):
		return mappedError{
			HTTPStatus: http.StatusUnprocessableEntity,
			Reason:     "rejectedIntent",
			Status:     "FAILED_PRECONDITION",
		}
	case crerr.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}
