package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/card-tournaments/brackets"
	"github.com/Dosada05/card-tournaments/config"
	"github.com/Dosada05/card-tournaments/db"
	"github.com/Dosada05/card-tournaments/handlers"
	"github.com/Dosada05/card-tournaments/middleware"
	"github.com/Dosada05/card-tournaments/repositories"
	api "github.com/Dosada05/card-tournaments/routes"
	"github.com/Dosada05/card-tournaments/services"
	"github.com/Dosada05/card-tournaments/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const reconcilerInterval = 30 * time.Second // How often the completion sweep runs

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if cfg.RunMigrations {
		if err := db.RunMigrations(dbConn, cfg.MigrationsDir); err != nil {
			logger.Error("failed to run migrations", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	// Инициализация загрузчика файлов (Cloudflare R2)
	cloudflareUploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	// Инициализация WebSocket Hub
	wsHub := brackets.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	cardRepo := repositories.NewPostgresCardRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	registrationRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	resultRepo := repositories.NewPostgresResultRepository(dbConn)
	logger.Info("repositories initialized")

	// Инициализация сервисов
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	cardService := services.NewCardService(cardRepo, cloudflareUploader)
	tournamentService := services.NewTournamentService(tournamentRepo, matchRepo, resultRepo, logger)
	registrationService := services.NewRegistrationService(registrationRepo, tournamentRepo, userRepo)
	bracketService := services.NewBracketService(tournamentRepo, registrationRepo, matchRepo, wsHub, rnd, logger)
	matchService := services.NewMatchService(matchRepo, wsHub, logger)
	logger.Info("services initialized")

	// Фоновая сверка: завершённые финалы закрывают турнир и пишут итоги.
	go func() {
		ticker := time.NewTicker(reconcilerInterval)
		defer ticker.Stop()
		logger.Info("tournament completion reconciler started", slog.Duration("interval", reconcilerInterval))

		if err := tournamentService.CompleteFinishedTournaments(context.Background()); err != nil {
			logger.Error("reconciler: initial run failed", slog.Any("error", err))
		}

		for range ticker.C {
			if err := tournamentService.CompleteFinishedTournaments(context.Background()); err != nil {
				logger.Error("reconciler: periodic run failed", slog.Any("error", err))
			}
		}
	}()

	// Инициализация обработчиков HTTP
	auth := middleware.NewAuthenticator(cfg.JWTSecretKey)
	cardHandler := handlers.NewCardHandler(cardService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService, bracketService)
	matchHandler := handlers.NewMatchHandler(matchService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		auth,
		cardHandler,
		tournamentHandler,
		matchHandler,
		registrationHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("forced server close failed", slog.Any("error", closeErr))
			}
		}
	}

	logger.Info("server stopped")
}
