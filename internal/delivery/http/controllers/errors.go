package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "tablereservation/internal/delivery/http/helpers"
	"tablereservation/internal/domain"
)

// writeDomainError maps a service error to a stable HTTP status and writes the
// JSON error envelope. Unknown errors and storage failures become 500 and are
// logged; everything else is a client-visible outcome and is not logged.
func writeDomainError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrStoreNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrReservationNotFound),
		errors.Is(err, domain.ErrNoReservationsForStore):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, err.Error())

	case errors.Is(err, domain.ErrAccessDenied),
		errors.Is(err, domain.ErrNotPartner):
		h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, err.Error())

	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicatePhone),
		errors.Is(err, domain.ErrDuplicateNickname),
		errors.Is(err, domain.ErrDuplicateStore):
		h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, err.Error())

	case errors.Is(err, domain.ErrInvalidPassword):
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid credentials")

	case errors.Is(err, domain.ErrStoreClosed),
		errors.Is(err, domain.ErrDuringRecess),
		errors.Is(err, domain.ErrSlotTaken),
		errors.Is(err, domain.ErrAlreadyProcessed),
		errors.Is(err, domain.ErrAlreadyCancelled),
		errors.Is(err, domain.ErrAlreadyVisited),
		errors.Is(err, domain.ErrUnapproved),
		errors.Is(err, domain.ErrDeclined),
		errors.Is(err, domain.ErrTooEarly),
		errors.Is(err, domain.ErrCodeMismatch),
		errors.Is(err, domain.ErrMaxStoresExceeded),
		errors.Is(err, domain.ErrInvalidInput):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())

	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "internal error")
	}
}
