package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "tablereservation/internal/delivery/http/helpers"
	"tablereservation/internal/delivery/http/middleware"
	"tablereservation/internal/domain"
)

const dateLayout = "2006-01-02"

// ReserveRequest is the request body for POST /reservations
type ReserveRequest struct {
	StoreID   string `json:"store_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time"` // HH:MM
	PartySize int    `json:"party_size"`
	Memo      string `json:"memo"`
}

// Validate implements Validator.
func (r ReserveRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.StoreID) == "" {
		errs = append(errs, "store_id is required")
	}
	if _, err := time.Parse(dateLayout, r.Date); err != nil {
		errs = append(errs, "date must be YYYY-MM-DD")
	}
	if _, err := domain.ParseClockTime(r.Time); err != nil {
		errs = append(errs, "time must be HH:MM")
	}
	if r.PartySize < 1 {
		errs = append(errs, "party_size must be at least 1")
	}
	return errs
}

// ReserveResponse is the response body for POST /reservations. The
// verification code is returned only here, at creation time.
type ReserveResponse struct {
	Reservation *domain.Reservation `json:"reservation"`
	Code        string              `json:"code"`
}

// ConfirmVisitRequest is the request body for PUT /reservations/{id}/kiosk/visit
type ConfirmVisitRequest struct {
	Code string `json:"code"`
}

// Validate implements Validator.
func (r ConfirmVisitRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Code) == "" {
		errs = append(errs, "code is required")
	}
	return errs
}

// DecisionRequest is the request body for PUT /reservations/{id}/decision
type DecisionRequest struct {
	Decision string `json:"decision"` // "APPROVED" or "REJECTED"
}

// Validate implements Validator.
func (r DecisionRequest) Validate() []string {
	d := strings.ToUpper(strings.TrimSpace(r.Decision))
	if d != string(domain.ApprovalApproved) && d != string(domain.ApprovalRejected) {
		return []string{"decision must be \"APPROVED\" or \"REJECTED\""}
	}
	return nil
}

type ReservationController struct {
	Logger  *slog.Logger
	Service domain.ReservationService
}

func NewReservationController(logger *slog.Logger, svc domain.ReservationService) *ReservationController {
	return &ReservationController{
		Logger:  logger,
		Service: svc,
	}
}

// Reserve godoc
// @Summary Book a table
// @Description Book a (store, date, time) slot for the authenticated customer. The store must be open and the time must fall outside its recess window. Returns the reservation plus its kiosk verification code; the code is only ever returned here.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ReserveRequest true "Booking data"
// @Success 201 {object} helpers.APIResponse "data contains reservation and code"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (closed store, recess window, slot taken)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reservations [post]
func (c *ReservationController) Reserve(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "authentication required")
		return
	}
	var req ReserveRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	date, _ := time.Parse(dateLayout, req.Date)
	reservation, err := c.Service.Reserve(r.Context(), domain.ReservationRequest{
		StoreID:    req.StoreID,
		CustomerID: memberID,
		Date:       date,
		Time:       req.Time,
		PartySize:  req.PartySize,
		Memo:       req.Memo,
	})
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}

	h.WriteJSONSuccess(w, http.StatusCreated, ReserveResponse{Reservation: reservation, Code: reservation.Code})
}

// Cancel godoc
// @Summary Cancel a reservation
// @Description Cancel the reservation. Only the customer who booked it may cancel, and only while the visit is still pending.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (already visited or cancelled)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reservations/{id}/cancel [put]
func (c *ReservationController) Cancel(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "authentication required")
		return
	}
	id := r.PathValue("id")
	if err := c.Service.Cancel(r.Context(), id, memberID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": string(domain.VisitCancelled)})
}

// ConfirmVisit godoc
// @Summary Confirm arrival at the kiosk
// @Description Confirm the visit with the reservation's verification code. The reservation must be approved, still pending a visit, and the confirmation must not be earlier than ten minutes before the reserved time. This endpoint is unauthenticated; the code is the credential.
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param body body ConfirmVisitRequest true "Verification code"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unapproved, rejected, too early, code mismatch, terminal state)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reservations/{id}/kiosk/visit [put]
func (c *ReservationController) ConfirmVisit(w http.ResponseWriter, r *http.Request) {
	var req ConfirmVisitRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	id := r.PathValue("id")
	if err := c.Service.ConfirmVisit(r.Context(), id, strings.TrimSpace(req.Code)); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": string(domain.VisitVisited)})
}

// Decide godoc
// @Summary Approve or reject a reservation
// @Description Decide a pending reservation. Only the owner of the reservation's store may decide, and the decision is final.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param body body DecisionRequest true "APPROVED or REJECTED"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (already decided)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reservations/{id}/decision [put]
func (c *ReservationController) Decide(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "authentication required")
		return
	}
	var req DecisionRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	id := r.PathValue("id")
	decision := domain.ApprovalStatus(strings.ToUpper(strings.TrimSpace(req.Decision)))
	if err := c.Service.ApproveOrReject(r.Context(), id, memberID, decision); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": string(decision)})
}

// MarkNoShow godoc
// @Summary Mark a reservation as a no-show
// @Description Mark the reservation CANCELLED_NO_SHOW. Only the owner of the reservation's store may do this, and only while the visit is still pending.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (already visited or cancelled)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reservations/{id}/no-show [put]
func (c *ReservationController) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "authentication required")
		return
	}
	id := r.PathValue("id")
	if err := c.Service.MarkNoShow(r.Context(), id, memberID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": string(domain.VisitCancelledNoShow)})
}

// ListByStore godoc
// @Summary List reservations for a store
// @Description List all reservations of the store ordered by date and time. A store with no reservations yields 404, matching the booking engine's contract.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Store ID"
// @Success 200 {object} helpers.APIResponse "data contains the reservations"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /stores/{id}/reservations [get]
func (c *ReservationController) ListByStore(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("id")
	reservations, err := c.Service.ListByStore(r.Context(), storeID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, reservations)
}
