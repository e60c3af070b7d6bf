package repositories

import (
	"context"
	"database/sql"
	"errors"

	"reviewsBack/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

func (r *ReviewRepository) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	query := `
		INSERT INTO reviews (user_id, rating, comment)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, rating, comment, created_at, updated_at
	`
	var created models.Review
	err := r.DB.QueryRowContext(ctx, query, rev.UserID, rev.Rating, rev.Comment).Scan(
		&created.ID, &created.UserID, &created.Rating, &created.Comment,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Review{}, models.ErrAlreadyReviewed
		}
		return models.Review{}, err
	}
	return created, nil
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id int) (models.Review, error) {
	query := `
		SELECT id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE id = $1
	`
	var rev models.Review
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rev.ID, &rev.UserID, &rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Review{}, models.ErrReviewNotFound
		}
		return models.Review{}, err
	}
	return rev, nil
}

func (r *ReviewRepository) GetReviewsByUserID(ctx context.Context, userID, page, limit int) ([]models.Review, error) {
	offset := (page - 1) * limit
	query := `
		SELECT id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		err := rows.Scan(&rev.ID, &rev.UserID, &rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) GetReviewStats(ctx context.Context) (models.ReviewStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(AVG(rating), 0),
			COUNT(CASE WHEN comment IS NOT NULL AND comment != '' THEN 1 END)
		FROM reviews
	`
	var stats models.ReviewStats
	var avg float64
	err := r.DB.QueryRowContext(ctx, query).Scan(&stats.TotalReviews, &avg, &stats.ReviewsWithComments)
	if err != nil {
		return models.ReviewStats{}, err
	}
	stats.AverageRating = models.Fixed2(avg)
	return stats, nil
}

// GetRatingDistribution returns a count per rating in ascending rating order.
// Ratings that never occur are absent, not zero.
func (r *ReviewRepository) GetRatingDistribution(ctx context.Context) ([]models.RatingCount, error) {
	query := `
		SELECT rating, COUNT(*)
		FROM reviews
		GROUP BY rating
		ORDER BY rating
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	distribution := []models.RatingCount{}
	for rows.Next() {
		var rc models.RatingCount
		if err := rows.Scan(&rc.Rating, &rc.Count); err != nil {
			return nil, err
		}
		distribution = append(distribution, rc)
	}
	return distribution, rows.Err()
}
