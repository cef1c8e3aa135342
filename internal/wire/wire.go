// internal/wire/wire.go
package wire

import (
	"net/http"
	"time"

	"rental-booking/internal/adaptor"
	"rental-booking/internal/catalog"
	"rental-booking/internal/client"
	"rental-booking/internal/data/store"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/middleware"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(draftStore store.DraftStore, config *utils.Config, logger *zap.Logger) *App {
	timeout := time.Duration(config.Booking.TimeoutSeconds) * time.Second

	cat := catalog.NewHTTPCatalog(config.Booking.BaseURL, timeout, logger)
	bookingAPI := client.NewHTTPBookingAPI(config.Booking.BaseURL, timeout, logger)
	paymentAPI := client.NewHTTPPaymentAPI(config.Booking.BaseURL, timeout, logger)

	service := usecase.NewService(draftStore, cat, bookingAPI, paymentAPI, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireDraft(r, handler, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
