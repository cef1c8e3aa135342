package wire

import (
	"rental-booking/internal/adaptor"
	"rental-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireDraft(r chi.Router, handler *adaptor.Handler, log *zap.Logger) {
	// Every wizard route runs under the draft-session cookie.
	r.Group(func(r chi.Router) {
		r.Use(middleware.DraftSession(log))

		// POST /api/draft/vehicle - select the vehicle the draft is priced against
		r.Post("/api/draft/vehicle", handler.Draft.SelectVehicle)

		// GET /api/draft - current draft with derived pricing
		r.Get("/api/draft", handler.Draft.GetDraft)

		// PUT /api/draft/step{1..4} - update one wizard section
		r.Put("/api/draft/step1", handler.Draft.UpdateStepOne)
		r.Put("/api/draft/step2", handler.Draft.UpdateStepTwo)
		r.Put("/api/draft/step3", handler.Draft.UpdateStepThree)
		r.Put("/api/draft/step4", handler.Draft.UpdateStepFour)

		// POST /api/draft/advance|back - wizard transitions
		r.Post("/api/draft/advance", handler.Draft.Advance)
		r.Post("/api/draft/back", handler.Draft.Back)

		// DELETE /api/draft - "clear search"
		r.Delete("/api/draft", handler.Draft.ClearDraft)
	})

	// GET /api/addons - catalog proxy (public)
	r.Get("/api/addons", handler.Catalog.ListAddons)
}
