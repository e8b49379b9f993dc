package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
)

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Attendees   *AttendeeHandler
	Reports     *ReportHandler
	Admins      *AdminHandler
	Tokens      TokenParser
	CORSOrigins []string
	Gatherer    prometheus.Gatherer
	Logger      *slog.Logger
}

// NewRouter builds the chi router with the global middleware stack.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(cfg.Logger))
	r.Use(CORS(cfg.CORSOrigins))

	r.Get("/health", HealthCheck)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/admin/login", cfg.Admins.Login)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin(cfg.Tokens, cfg.Logger))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", cfg.Attendees.List)
				r.Post("/", cfg.Attendees.Create)
				r.Get("/search", cfg.Attendees.Search)
				r.Get("/role/{role}", cfg.Attendees.ListByRole)
				r.Get("/location/{location}", cfg.Attendees.ListByLocation)
				r.Delete("/batch", cfg.Attendees.DeleteMany)
				r.Get("/{id}", cfg.Attendees.Get)
				r.Put("/{id}", cfg.Attendees.Update)
				r.Delete("/{id}", cfg.Attendees.Delete)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/all", cfg.Reports.All)
				r.Get("/role/{role}", cfg.Reports.ForRole)
				r.Get("/guests", cfg.Reports.Role(model.RoleGuest))
				r.Get("/novices", cfg.Reports.Role(model.RoleNovice))
				r.Get("/fighters", cfg.Reports.Role(model.RoleFighter))
				r.Get("/veterans", cfg.Reports.Role(model.RoleVeteran))
			})
		})
	})

	return r
}
