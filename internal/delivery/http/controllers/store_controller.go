package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "tablereservation/internal/delivery/http/helpers"
	"tablereservation/internal/delivery/http/middleware"
	"tablereservation/internal/domain"
)

// RegisterStoreRequest is the request body for POST /stores
type RegisterStoreRequest struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Description   string  `json:"description"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	BusinessHours string  `json:"business_hours"`
	RecessWindow  string  `json:"recess_window"` // optional, "HH:MM - HH:MM"
}

// Validate implements Validator.
func (s RegisterStoreRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(s.Address) == "" {
		errs = append(errs, "address is required")
	}
	if s.Lat < -90 || s.Lat > 90 {
		errs = append(errs, "lat must be between -90 and 90")
	}
	if s.Lon < -180 || s.Lon > 180 {
		errs = append(errs, "lon must be between -180 and 180")
	}
	if rw := strings.TrimSpace(s.RecessWindow); rw != "" {
		if _, err := domain.ParseTimeWindow(rw); err != nil {
			errs = append(errs, "recess_window must be \"HH:MM - HH:MM\"")
		}
	}
	return errs
}

type StoreController struct {
	Logger  *slog.Logger
	Service domain.StoreService
}

func NewStoreController(logger *slog.Logger, svc domain.StoreService) *StoreController {
	return &StoreController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a store
// @Description Register a new store for the authenticated owner. Requires the OWNER role; an owner may have at most two open stores and may not register two stores at the same address and coordinates.
// @Tags stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RegisterStoreRequest true "Store data"
// @Success 201 {object} helpers.APIResponse "data contains the created store"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (open store limit reached)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not an owner)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate address and coordinates)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /stores [post]
func (c *StoreController) Register(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "authentication required")
		return
	}
	var req RegisterStoreRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	store, err := c.Service.Register(r.Context(), memberID, strings.TrimSpace(req.Name), strings.TrimSpace(req.Address), req.Description, req.Lat, req.Lon, req.BusinessHours, strings.TrimSpace(req.RecessWindow))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}

	h.WriteJSONSuccess(w, http.StatusCreated, store)
}

// GetByID godoc
// @Summary Get a store
// @Tags stores
// @Produce json
// @Param id path string true "Store ID"
// @Success 200 {object} helpers.APIResponse "data contains the store"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /stores/{id} [get]
func (c *StoreController) GetByID(w http.ResponseWriter, r *http.Request) {
	store, err := c.Service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, store)
}

// List godoc
// @Summary List stores
// @Description List all registered stores. With a name query parameter, list only stores whose name contains it (case-insensitive).
// @Tags stores
// @Produce json
// @Param name query string false "Name fragment to search for"
// @Success 200 {object} helpers.APIResponse "data contains the stores"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /stores [get]
func (c *StoreController) List(w http.ResponseWriter, r *http.Request) {
	var (
		stores []*domain.Store
		err    error
	)
	if name := strings.TrimSpace(r.URL.Query().Get("name")); name != "" {
		stores, err = c.Service.SearchByName(r.Context(), name)
	} else {
		stores, err = c.Service.List(r.Context())
	}
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, stores)
}
