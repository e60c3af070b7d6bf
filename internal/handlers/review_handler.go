package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"reviewsBack/internal/models"
	"reviewsBack/internal/services"
	"reviewsBack/internal/validation"
)

type ReviewHandler struct {
	Service *services.ReviewService
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}

	// UseNumber keeps rating as json.Number so the validator can tell an
	// integer from 3.5 or "five".
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	var body map[string]interface{}
	if err := decoder.Decode(&body); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input, err := validation.ValidateCreateReview(body)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			writeValidationError(w, vErr.Errors)
			return
		}
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review := models.Review{UserID: userID, Rating: input.Rating, Comment: input.Comment}
	created, err := h.Service.CreateReview(r.Context(), review)
	if err != nil {
		if errors.Is(err, models.ErrAlreadyReviewed) {
			WriteError(w, http.StatusConflict, "You have already submitted a review")
			return
		}
		log.Printf("CreateReview error: %v", err)
		WriteError(w, http.StatusInternalServerError, "Failed to create review")
		return
	}

	WriteSuccess(w, http.StatusCreated, "Спасибо за отзыв!", map[string]interface{}{
		"review": created,
	})
}

func (h *ReviewHandler) GetMyReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	reviews, pagination, err := h.Service.GetMyReviews(r.Context(), userID, page, limit)
	if err != nil {
		log.Printf("GetMyReviews error: %v", err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	WriteSuccess(w, http.StatusOK, "", map[string]interface{}{
		"reviews":    reviews,
		"pagination": pagination,
	})
}

func (h *ReviewHandler) GetReviewStats(w http.ResponseWriter, r *http.Request) {
	stats, distribution, err := h.Service.GetReviewStats(r.Context())
	if err != nil {
		log.Printf("GetReviewStats error: %v", err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch review statistics")
		return
	}

	WriteSuccess(w, http.StatusOK, "", map[string]interface{}{
		"statistics":         stats,
		"ratingDistribution": distribution,
	})
}

func (h *ReviewHandler) GetReviewByID(w http.ResponseWriter, r *http.Request) {
	reviewIDStr := r.URL.Query().Get(":id")
	reviewID, err := strconv.Atoi(reviewIDStr)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid review ID")
		return
	}

	review, err := h.Service.GetReviewByID(r.Context(), reviewID)
	if err != nil {
		if errors.Is(err, models.ErrReviewNotFound) {
			WriteError(w, http.StatusNotFound, "Review not found")
			return
		}
		log.Printf("GetReviewByID error: %v", err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch review")
		return
	}

	WriteSuccess(w, http.StatusOK, "", map[string]interface{}{
		"review": review,
	})
}
