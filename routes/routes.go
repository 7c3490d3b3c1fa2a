package routes

import (
	"github.com/Dosada05/card-tournaments/handlers"
	"github.com/Dosada05/card-tournaments/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	cardHandler *handlers.CardHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	registrationHandler *handlers.RegistrationHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/cards", func(r chi.Router) {
		r.Get("/", cardHandler.ListHandler)
		r.Get("/{cardID}", cardHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(middleware.Authorize(middleware.RoleAdmin))

			r.Post("/", cardHandler.CreateHandler)
			r.Put("/{cardID}", cardHandler.UpdateHandler)
			r.Delete("/{cardID}", cardHandler.DeleteHandler)
			r.Post("/{cardID}/banner", cardHandler.UploadBannerHandler)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		// Публичные маршруты для просмотра турниров и сеток.
		r.Get("/", tournamentHandler.ListHandler)
		r.Get("/brackets/{matchID}", matchHandler.GetByIDHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
		r.Get("/{tournamentID}/brackets", tournamentHandler.GetBracketsHandler)
		r.Get("/{tournamentID}/players", registrationHandler.ListPlayersHandler)
		r.Get("/{tournamentID}/results", tournamentHandler.ListResultsHandler)

		// Любой аутентифицированный пользователь может зарегистрироваться.
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Post("/{tournamentID}/register", registrationHandler.RegisterHandler)
		})

		// Управление турнирами и матчами доступно только администраторам.
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(middleware.Authorize(middleware.RoleAdmin))

			r.Post("/", tournamentHandler.CreateHandler)
			r.Put("/{tournamentID}", tournamentHandler.UpdateHandler)
			r.Patch("/{tournamentID}/status", tournamentHandler.UpdateStatusHandler)
			r.Delete("/{tournamentID}", tournamentHandler.DeleteHandler)
			r.Post("/{tournamentID}/start", tournamentHandler.StartHandler)
			r.Post("/{tournamentID}/generate-brackets", tournamentHandler.GenerateBracketsHandler)
			r.Patch("/brackets/{matchID}", matchHandler.UpdateHandler)
		})
	})

	router.Route("/registrations", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Delete("/{registrationID}", registrationHandler.CancelHandler)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
