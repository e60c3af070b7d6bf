package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"reviewsBack/internal/config"
	"reviewsBack/internal/handlers"
	"reviewsBack/internal/repositories"
	"reviewsBack/internal/services"
	"reviewsBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB
	rdb      *redis.Client

	serviceName     string
	rateLimitWindow time.Duration
	rateLimitMax    int

	tokens        *utils.Manager
	userRepo      *repositories.UserRepository
	reviewHandler *handlers.ReviewHandler
	reviewsRepo   *repositories.ReviewRepository
}

func initializeApp(cfg config.Config, db *sql.DB, rdb *redis.Client, errorLog, infoLog *log.Logger) (*application, error) {
	tokens, err := utils.NewManager(cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	// Repositories
	reviewsRepo := repositories.ReviewRepository{DB: db}
	userRepo := repositories.UserRepository{DB: db}

	// Services
	reviewService := &services.ReviewService{ReviewsRepo: &reviewsRepo}

	// Handlers
	reviewHandler := &handlers.ReviewHandler{Service: reviewService}

	return &application{
		errorLog:        errorLog,
		infoLog:         infoLog,
		db:              db,
		rdb:             rdb,
		serviceName:     cfg.Server.Name,
		rateLimitWindow: time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
		rateLimitMax:    cfg.RateLimit.MaxRequests,
		tokens:          tokens,
		userRepo:        &userRepo,
		reviewHandler:   reviewHandler,
		reviewsRepo:     &reviewsRepo,
	}, nil
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	log.Println("Successfully connected to database")
	return db, nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
