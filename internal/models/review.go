package models

import (
	"strconv"
	"time"
)

type Review struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasComment reports whether the review carries a non-empty comment.
// NULL and "" are both treated as "no comment" in the statistics.
func (r Review) HasComment() bool {
	return r.Comment != nil && *r.Comment != ""
}

// Fixed2 marshals as a number with exactly two decimal places (4.4 -> 4.40).
type Fixed2 float64

func (f Fixed2) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(f), 'f', 2, 64)), nil
}

type ReviewStats struct {
	TotalReviews        int    `json:"totalReviews"`
	AverageRating       Fixed2 `json:"averageRating"`
	ReviewsWithComments int    `json:"reviewsWithComments"`
}

type RatingCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}
