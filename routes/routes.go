package routes

import (
	"net/http"
	"time"

	"github.com/Dosada05/doubles-cup/handlers"
	"github.com/Dosada05/doubles-cup/middleware"
	"github.com/Dosada05/doubles-cup/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Tournament *handlers.TournamentHandler
	Schedule   *handlers.ScheduleHandler
	Match      *handlers.MatchHandler
	Standings  *handlers.StandingsHandler
	WebSocket  *handlers.WebSocketHandler
}

func SetupRoutes(router chi.Router, jwtSecret string, allowedOrigins []string, h Handlers) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)
	organizerOnly := middleware.Authorize(models.RoleOrganizer, models.RoleAdmin)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.ListHandler)
		r.With(authenticate, organizerOnly).Post("/", h.Tournament.CreateHandler)

		r.Route("/{tournamentID}", func(r chi.Router) {
			// Публичные маршруты для просмотра турнира
			r.Get("/", h.Tournament.GetByIDHandler)
			r.Get("/players", h.Tournament.ListPlayersHandler)
			r.Get("/courts", h.Tournament.ListCourtsHandler)
			r.Get("/matches", h.Match.ListHandler)
			r.Get("/standings", h.Standings.StandingsHandler)
			r.Get("/specials", h.Standings.SpecialsHandler)
			r.Get("/report", h.Standings.ReportHandler)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/readiness", h.Schedule.ReadinessHandler)

				r.Group(func(r chi.Router) {
					r.Use(organizerOnly)
					r.Patch("/status", h.Tournament.UpdateStatusHandler)
					r.Post("/players", h.Tournament.AddPlayerHandler)
					r.Post("/courts", h.Tournament.AddCourtHandler)
					r.With(chiMiddleware.Timeout(30*time.Second)).Post("/schedule", h.Schedule.GenerateHandler)
					r.With(chiMiddleware.Timeout(30*time.Second)).Post("/round3", h.Schedule.GenerateRound3Handler)
					r.Post("/report/archive", h.Standings.ArchiveHandler)
				})
			})
		})
	})

	router.With(authenticate, organizerOnly).Put("/matches/{matchID}/result", h.Match.RecordResultHandler)

	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)
}
