package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/jmarken/shiftpulse/docs"
	"github.com/jmarken/shiftpulse/internal/api/handler"
	"github.com/jmarken/shiftpulse/internal/api/middleware"
)

type Router struct {
	userHandler   *handler.UserHandler
	dayLogHandler *handler.DayLogHandler
	vitalsHandler *handler.VitalsHandler
}

func NewRouter(userHandler *handler.UserHandler, dayLogHandler *handler.DayLogHandler, vitalsHandler *handler.VitalsHandler) *Router {
	return &Router{
		userHandler:   userHandler,
		dayLogHandler: dayLogHandler,
		vitalsHandler: vitalsHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Users
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)
			r.Get("/{userId}", rt.userHandler.GetByID)

			// Cycle tracking settings
			r.Route("/{userId}/settings/cycle", func(r chi.Router) {
				r.Get("/", rt.userHandler.GetCycleSettings)
				r.Put("/", rt.userHandler.UpdateCycleSettings)
			})

			// Day logs (one row per user per calendar day)
			r.Route("/{userId}/day-logs", func(r chi.Router) {
				r.Get("/", rt.dayLogHandler.List)
				r.Put("/{date}", rt.dayLogHandler.Upsert)
				r.Delete("/{date}", rt.dayLogHandler.Delete)
			})

			// Vitals
			r.Route("/{userId}/vitals", func(r chi.Router) {
				r.Get("/", rt.vitalsHandler.GetRange)
				r.Get("/today", rt.vitalsHandler.GetToday)
				r.Get("/summary", rt.vitalsHandler.GetSummary)
				r.Get("/advice", rt.vitalsHandler.GetAdvice)
				r.Post("/advice/feedback", rt.vitalsHandler.PostFeedback)
			})
		})
	})

	return r
}
