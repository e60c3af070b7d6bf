package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON, app.rateLimit)
	authMiddleware := standardMiddleware.Append(app.requireAuth)

	mux := pat.New()

	mux.Get("/health", standardMiddleware.ThenFunc(app.healthCheck))

	// Reviews. /my and /stats are registered before /:id so pat matches the
	// literal paths first.
	mux.Post("/api/reviews", authMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Get("/api/reviews/my", authMiddleware.ThenFunc(app.reviewHandler.GetMyReviews))
	mux.Get("/api/reviews/stats", authMiddleware.ThenFunc(app.reviewHandler.GetReviewStats))
	mux.Get("/api/reviews/:id", authMiddleware.ThenFunc(app.reviewHandler.GetReviewByID))

	return mux
}
