package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires all HTTP routes. Register and login are public; every
// other route runs behind the auth middleware.
func NewRouter(
	auth *AuthMiddleware,
	authHandler *AuthHandler,
	vehicleHandler *VehicleHandler,
	bookingHandler *BookingHandler,
	imageHandler *ImageHandler,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/images", imageHandler.Download).Methods(http.MethodGet)

	protected := r.NewRoute().Subrouter()
	protected.Use(auth.Handler)

	protected.HandleFunc("/profile", authHandler.Profile).Methods(http.MethodGet)
	protected.HandleFunc("/users/{username}/role", authHandler.SetRole).Methods(http.MethodPut)

	protected.HandleFunc("/vehicles", vehicleHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/vehicles", vehicleHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/vehicles/{id}", vehicleHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/vehicles/{id}", vehicleHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/vehicles/{id}", vehicleHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/bookings", bookingHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", bookingHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}", bookingHandler.UpdateStatus).Methods(http.MethodPut)

	protected.HandleFunc("/images", imageHandler.Upload).Methods(http.MethodPut)

	return r
}
