// Package validation checks incoming review payloads against the fixed rules
// for the create-review endpoint. It is pure: no I/O, no storage access.
package validation

import (
	"encoding/json"
	"unicode/utf8"

	"reviewsBack/internal/models"
)

const maxCommentLength = 1000

// CreateReviewInput is a normalized, validated create-review payload.
// Comment is nil when the field was absent; an empty string is a valid,
// present-but-empty comment.
type CreateReviewInput struct {
	Rating  int
	Comment *string
}

// ValidateCreateReview validates a decoded request body. Every rule is
// evaluated independently so the caller gets all violations at once, and
// unknown fields are dropped silently. Numeric values must arrive as
// json.Number (decode the body with UseNumber), otherwise an integer rating
// cannot be told apart from 3.5.
func ValidateCreateReview(data map[string]interface{}) (CreateReviewInput, error) {
	var input CreateReviewInput
	var fieldErrors []models.FieldError

	rating, present := data["rating"]
	switch {
	case !present:
		fieldErrors = append(fieldErrors, models.FieldError{Field: "rating", Message: "Rating is required"})
	default:
		num, ok := rating.(json.Number)
		if !ok {
			fieldErrors = append(fieldErrors, models.FieldError{Field: "rating", Message: "Rating must be a number"})
			break
		}
		value, err := num.Int64()
		if err != nil {
			fieldErrors = append(fieldErrors, models.FieldError{Field: "rating", Message: "Rating must be an integer"})
			break
		}
		switch {
		case value < 1:
			fieldErrors = append(fieldErrors, models.FieldError{Field: "rating", Message: "Rating must be at least 1 star"})
		case value > 5:
			fieldErrors = append(fieldErrors, models.FieldError{Field: "rating", Message: "Rating cannot exceed 5 stars"})
		default:
			input.Rating = int(value)
		}
	}

	if comment, present := data["comment"]; present {
		text, ok := comment.(string)
		switch {
		case !ok:
			fieldErrors = append(fieldErrors, models.FieldError{Field: "comment", Message: "Comment must be a string"})
		case utf8.RuneCountInString(text) > maxCommentLength:
			fieldErrors = append(fieldErrors, models.FieldError{Field: "comment", Message: "Comment cannot exceed 1000 characters"})
		default:
			input.Comment = &text
		}
	}

	if len(fieldErrors) > 0 {
		return CreateReviewInput{}, &models.ValidationError{Errors: fieldErrors}
	}
	return input, nil
}
