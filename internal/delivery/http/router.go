package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"tablereservation/internal/delivery/http/controllers"
	"tablereservation/internal/delivery/http/middleware"
	"tablereservation/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// The kiosk visit confirmation is intentionally unauthenticated; the
// reservation code is the credential there.
func NewRouter(
	memberController *controllers.MemberController,
	storeController *controllers.StoreController,
	reservationController *controllers.ReservationController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Members
	mux.HandleFunc("POST /members/signup", memberController.SignUp)
	mux.HandleFunc("POST /members/login", memberController.Login)

	// Stores
	mux.HandleFunc("POST /stores", auth(storeController.Register))
	mux.HandleFunc("GET /stores", storeController.List)
	mux.HandleFunc("GET /stores/{id}", storeController.GetByID)
	mux.HandleFunc("GET /stores/{id}/reservations", auth(reservationController.ListByStore))

	// Reservations
	mux.HandleFunc("POST /reservations", auth(reservationController.Reserve))
	mux.HandleFunc("PUT /reservations/{id}/cancel", auth(reservationController.Cancel))
	mux.HandleFunc("PUT /reservations/{id}/decision", auth(reservationController.Decide))
	mux.HandleFunc("PUT /reservations/{id}/no-show", auth(reservationController.MarkNoShow))
	mux.HandleFunc("PUT /reservations/{id}/kiosk/visit", reservationController.ConfirmVisit)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
