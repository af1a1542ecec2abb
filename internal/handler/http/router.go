package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/wilma-platform/wilma-backend-go/internal/handler/http/middleware"
	"github.com/wilma-platform/wilma-backend-go/internal/pkg/jwt"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, positionHandler PositionHandler) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired())

			r.Get("/positions/{id}", positionHandler.GetPosition)

			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", positionHandler.ListJobs)
				r.Post("/", positionHandler.CreateJob)
				r.Put("/", positionHandler.UpdateJob)
				r.Put("/{id}", positionHandler.UpdateJob)
			})

			r.Route("/placements", func(r chi.Router) {
				r.Get("/", positionHandler.ListPlacements)
				r.Post("/", positionHandler.CreatePlacement)
				r.Put("/", positionHandler.UpdatePlacement)
				r.Put("/{id}", positionHandler.UpdatePlacement)
			})

			r.Route("/expressions-of-interest", func(r chi.Router) {
				r.Get("/", positionHandler.ListExpressionsOfInterest)
				r.Post("/", positionHandler.CreateExpressionOfInterest)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", positionHandler.GetExpressionOfInterest)
					r.Put("/", positionHandler.UpdateExpressionOfInterest)
					r.Delete("/", positionHandler.DeleteExpressionOfInterest)
				})
			})

			r.Route("/applications", func(r chi.Router) {
				r.Post("/", positionHandler.SubmitApplication)
				r.Put("/", positionHandler.UpdateApplications)
				r.Get("/unviewed", positionHandler.ListUnviewedApplications)
			})

			r.Get("/documents/filter", positionHandler.FilterDocuments)
		})
	})

	return r
}
