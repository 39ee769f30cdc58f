/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:     Unique ID per request for tracing
  2. RequestLogger: One logrus line per request
  3. Recoverer:     Panic recovery (500 instead of crash)
  4. CORS:          Cross-origin requests for the frontend
  5. RequireActor:  Actor from gateway headers (all /api routes)

ROUTE GROUPS:
  /healthz              Liveness + database check (no actor)
  /api/entries/*        Entry lifecycle
  /api/hours/*          Hour shorthand helper
  /api/leave-days/*     Leave day calendar
  /api/settings         Edit window policy (read)
  /api/admin/*          Admin operations

SECURITY NOTE:
  Authentication happens in the upstream gateway, which sets X-Actor-ID and
  X-Actor-Role. This server must not be exposed without it.

SEE ALSO:
  - handlers.go: Handler implementations
  - middleware.go: Actor and logging middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/worklog"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(h.Log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", HeaderActorID, HeaderActorRole},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.Health)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(RequireActor)

		// Entry routes
		r.Route("/entries", func(r chi.Router) {
			r.Get("/", h.ListEntries)
			r.Post("/", h.CreateEntry)
			r.Post("/validate-date", h.ValidateDate)
			r.Get("/{id}", h.GetEntry)
			r.Put("/{id}", h.UpdateEntry)
			r.Delete("/{id}", h.DeleteEntry)
			r.Get("/{id}/permissions", h.GetEntryPermissions)
		})

		r.Post("/hours/normalize", h.NormalizeHours)

		// Leave day routes
		r.Route("/leave-days", func(r chi.Router) {
			r.Get("/", h.ListLeaveDays)
			r.With(RequireRole(worklog.RoleAdmin)).Post("/", h.CreateLeaveDay)
			r.With(RequireRole(worklog.RoleAdmin)).Delete("/{id}", h.DeleteLeaveDay)
		})

		r.Get("/settings", h.GetSettings)

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.With(RequireRole(worklog.RoleAdmin, worklog.RoleInspection)).Get("/audit", h.ListAudit)

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(worklog.RoleAdmin))
				r.Put("/settings", h.UpdateSettings)
				r.Get("/capacity-audits", h.ListCapacityAudits)
				r.Post("/capacity-audits/run", h.RunCapacityAudit)
			})
		})
	})

	return r
}
