package services

import (
	"context"

	"reviewsBack/internal/models"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ReviewStore is the persistence surface the service needs. The concrete
// implementation is repositories.ReviewRepository; tests inject a stub.
type ReviewStore interface {
	CreateReview(ctx context.Context, rev models.Review) (models.Review, error)
	GetReviewByID(ctx context.Context, id int) (models.Review, error)
	GetReviewsByUserID(ctx context.Context, userID, page, limit int) ([]models.Review, error)
	GetReviewStats(ctx context.Context) (models.ReviewStats, error)
	GetRatingDistribution(ctx context.Context) ([]models.RatingCount, error)
}

type ReviewService struct {
	ReviewsRepo ReviewStore
}

func (s *ReviewService) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	return s.ReviewsRepo.CreateReview(ctx, review)
}

func (s *ReviewService) GetReviewByID(ctx context.Context, id int) (models.Review, error) {
	return s.ReviewsRepo.GetReviewByID(ctx, id)
}

// GetMyReviews returns a page of the user's reviews, newest first. Page and
// limit are clamped here so a hostile limit cannot pull the whole table.
func (s *ReviewService) GetMyReviews(ctx context.Context, userID, page, limit int) ([]models.Review, models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	reviews, err := s.ReviewsRepo.GetReviewsByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	pagination := models.Pagination{Page: page, Limit: limit, Total: len(reviews)}
	return reviews, pagination, nil
}

func (s *ReviewService) GetReviewStats(ctx context.Context) (models.ReviewStats, []models.RatingCount, error) {
	stats, err := s.ReviewsRepo.GetReviewStats(ctx)
	if err != nil {
		return models.ReviewStats{}, nil, err
	}
	distribution, err := s.ReviewsRepo.GetRatingDistribution(ctx)
	if err != nil {
		return models.ReviewStats{}, nil, err
	}
	return stats, distribution, nil
}
