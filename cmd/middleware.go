package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"reviewsBack/internal/handlers"
	"reviewsBack/internal/models"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}

func makeResponseJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)
		app.infoLog.Printf("%s - %s %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI(), requestID)
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.errorLog.Printf("panic: %v", err)
				handlers.WriteError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// rateLimit enforces a fixed request budget per client address per window,
// counted in redis. Without redis (not configured or unreachable) requests
// are admitted; the budget is protection, not a correctness requirement.
func (app *application) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.rdb == nil {
			next.ServeHTTP(w, r)
			return
		}

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		key := fmt.Sprintf("ratelimit:%s", ip)

		count, err := app.rdb.Incr(r.Context(), key).Result()
		if err != nil {
			app.errorLog.Printf("rate limit counter unavailable: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			app.rdb.Expire(r.Context(), key, app.rateLimitWindow)
		}
		if count > int64(app.rateLimitMax) {
			handlers.WriteError(w, http.StatusTooManyRequests, "Too many requests from this IP, please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth verifies the bearer token and puts user_id into the request
// context. The three failure kinds (missing credential, invalid token,
// expired token) all answer 401 but keep distinct messages and log lines.
func (app *application) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			handlers.WriteError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		accessToken := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if accessToken == "" {
			handlers.WriteError(w, http.StatusUnauthorized, "Token is required")
			return
		}

		claims, err := app.tokens.Parse(accessToken)
		if err != nil {
			if errors.Is(err, models.ErrTokenExpired) {
				handlers.WriteError(w, http.StatusUnauthorized, "Token has expired")
			} else {
				handlers.WriteError(w, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		// Best-effort check that the user behind the token is still active.
		// A failed lookup (no users table, store down) must not fail the
		// request: trust the verified claim and log the degradation.
		if app.userRepo != nil {
			status, err := app.userRepo.CheckUserActive(r.Context(), claims.UserID)
			switch {
			case err != nil:
				app.errorLog.Printf("Warning: could not verify user %d in database: %v", claims.UserID, err)
			case status == models.UserStatusInactive:
				handlers.WriteError(w, http.StatusUnauthorized, "User not found or inactive")
				return
			}
		}

		ctx := context.WithValue(r.Context(), "user_id", claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
