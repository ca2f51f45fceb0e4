package wire

import (
	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireWizard(r chi.Router, wizardHandler *adaptor.WizardHandler) {
	r.Route("/api/wizard/sessions", func(r chi.Router) {
		// POST /api/wizard/sessions - start a session, optionally seeded
		r.Post("/", wizardHandler.CreateSession)

		r.Route("/{id}", func(r chi.Router) {
			// GET /api/wizard/sessions/{id} - current step + draft
			r.Get("/", wizardHandler.GetState)

			// PATCH /api/wizard/sessions/{id}/draft - merge a field patch
			r.Patch("/draft", wizardHandler.UpdateDraft)

			// PUT /api/wizard/sessions/{id}/stored-draft - park a raw payload
			r.Put("/stored-draft", wizardHandler.StoreDraft)

			// POST /api/wizard/sessions/{id}/hydrate - consume the parked payload
			r.Post("/hydrate", wizardHandler.Hydrate)

			// Navigation
			r.Post("/next", wizardHandler.Next)
			r.Post("/back", wizardHandler.Back)
			r.Post("/goto", wizardHandler.GoTo)
			r.Post("/reset", wizardHandler.Reset)

			// POST /api/wizard/sessions/{id}/quote - resolve distance + price
			r.Post("/quote", wizardHandler.Quote)
		})
	})
}
