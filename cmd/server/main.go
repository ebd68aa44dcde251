package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Adam-Mik/Projekt-zespolowy/internal/auth"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/handler"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/service"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/storage/sqlite"
	"github.com/Adam-Mik/Projekt-zespolowy/pkg/logging"
)

const tokenDuration = 24 * time.Hour

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/expenses.db")
	port := getEnv("PORT", "8000")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(jwtSecret, tokenDuration)

	authHandler := handler.NewAuthHandler(service.NewAuthService(authenticator, jwtManager))
	groupHandler := handler.NewGroupHandler(service.NewGroupService(store))
	expenseHandler := handler.NewExpenseHandler(service.NewExpenseService(store))

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(authHandler, groupHandler, expenseHandler, jwtManager)

	addr := fmt.Sprintf(":%s", port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
