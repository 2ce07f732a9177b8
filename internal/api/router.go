package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/weeks/internal/planner"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// backupDir is where POST /backup writes; empty means beside the database.
func NewRouter(svc *planner.Service, set SettingsStore, authEnabled bool, token string, sseHandler http.Handler, backupDir string) chi.Router {
	h := NewHandler(svc, set, backupDir)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/today", h.Today)
	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)
	r.Get("/calendars/{variant}", h.CalendarInfo)

	// Weeks, addressed by any absolute day inside them.
	r.Get("/weeks/current", h.CurrentWeek)
	r.Get("/weeks/{day}", h.GetWeek)
	r.Post("/weeks/{day}/items", h.AddWeekItem)
	r.Post("/weeks/{day}/reorder", h.ReorderWeek)

	// Years of the main calendar.
	r.Get("/years/current", h.CurrentYear)
	r.Get("/years/{year}", h.GetYear)
	r.Post("/years/{year}/items", h.AddObjective)
	r.Post("/years/{year}/reorder", h.ReorderYear)

	r.Route("/items/{id}", func(r chi.Router) {
		r.Get("/", h.GetItem)
		r.Delete("/", h.DeleteItem)
		r.Put("/text", h.UpdateText)
		r.Post("/toggle", h.ToggleItem)
		r.Post("/move", h.MoveItem)
		r.Post("/after", h.InsertAfter)
		r.Post("/shift", h.ShiftItem)
		r.Put("/period", h.SetPeriod)
	})

	r.Post("/backup", h.Backup)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
