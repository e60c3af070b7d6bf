package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reviewsBack/internal/models"
	"reviewsBack/internal/services"
)

// stubReviewStore implements services.ReviewStore in memory.
type stubReviewStore struct {
	reviews   []models.Review
	createErr error
	statsErr  error
	nextID    int
}

func (s *stubReviewStore) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	if s.createErr != nil {
		return models.Review{}, s.createErr
	}
	for _, existing := range s.reviews {
		if existing.UserID == rev.UserID {
			return models.Review{}, models.ErrAlreadyReviewed
		}
	}
	s.nextID++
	rev.ID = s.nextID
	rev.CreatedAt = time.Now()
	rev.UpdatedAt = rev.CreatedAt
	s.reviews = append(s.reviews, rev)
	return rev, nil
}

func (s *stubReviewStore) GetReviewByID(ctx context.Context, id int) (models.Review, error) {
	for _, rev := range s.reviews {
		if rev.ID == id {
			return rev, nil
		}
	}
	return models.Review{}, models.ErrReviewNotFound
}

func (s *stubReviewStore) GetReviewsByUserID(ctx context.Context, userID, page, limit int) ([]models.Review, error) {
	matched := []models.Review{}
	for i := len(s.reviews) - 1; i >= 0; i-- {
		if s.reviews[i].UserID == userID {
			matched = append(matched, s.reviews[i])
		}
	}
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return []models.Review{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *stubReviewStore) GetReviewStats(ctx context.Context) (models.ReviewStats, error) {
	if s.statsErr != nil {
		return models.ReviewStats{}, s.statsErr
	}
	stats := models.ReviewStats{TotalReviews: len(s.reviews)}
	sum := 0
	for _, rev := range s.reviews {
		sum += rev.Rating
		if rev.HasComment() {
			stats.ReviewsWithComments++
		}
	}
	if len(s.reviews) > 0 {
		stats.AverageRating = models.Fixed2(float64(sum) / float64(len(s.reviews)))
	}
	return stats, nil
}

func (s *stubReviewStore) GetRatingDistribution(ctx context.Context) ([]models.RatingCount, error) {
	counts := map[int]int{}
	for _, rev := range s.reviews {
		counts[rev.Rating]++
	}
	distribution := []models.RatingCount{}
	for rating := 1; rating <= 5; rating++ {
		if counts[rating] > 0 {
			distribution = append(distribution, models.RatingCount{Rating: rating, Count: counts[rating]})
		}
	}
	return distribution, nil
}

func newHandler(store *stubReviewStore) *ReviewHandler {
	return &ReviewHandler{Service: &services.ReviewService{ReviewsRepo: store}}
}

func authedRequest(method, target, body string, userID int) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(context.WithValue(req.Context(), "user_id", userID))
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON %q: %v", rr.Body.String(), err)
	}
	return resp
}

func TestCreateReview(t *testing.T) {
	t.Run("valid submission returns 201 and echoes input", func(t *testing.T) {
		h := newHandler(&stubReviewStore{})
		rr := httptest.NewRecorder()
		h.CreateReview(rr, authedRequest(http.MethodPost, "/api/reviews", `{"rating":5,"comment":"ok"}`, 1))

		if rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
		}
		resp := decodeEnvelope(t, rr)
		if resp["success"] != true {
			t.Fatal("expected success true")
		}
		review := resp["data"].(map[string]interface{})["review"].(map[string]interface{})
		if review["rating"].(float64) != 5 {
			t.Fatalf("expected rating 5, got %v", review["rating"])
		}
		if review["comment"].(string) != "ok" {
			t.Fatalf("expected comment ok, got %v", review["comment"])
		}
		if review["userId"].(float64) != 1 {
			t.Fatalf("expected userId 1, got %v", review["userId"])
		}
	})

	t.Run("invalid ratings return 400 with a rating field error", func(t *testing.T) {
		for _, body := range []string{
			`{"rating":0}`, `{"rating":6}`, `{"rating":3.5}`, `{"rating":"five"}`, `{}`,
		} {
			h := newHandler(&stubReviewStore{})
			rr := httptest.NewRecorder()
			h.CreateReview(rr, authedRequest(http.MethodPost, "/api/reviews", body, 1))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("body %s: expected 400, got %d", body, rr.Code)
			}
			resp := decodeEnvelope(t, rr)
			if resp["success"] != false {
				t.Fatalf("body %s: expected success false", body)
			}
			fieldErrors := resp["errors"].([]interface{})
			first := fieldErrors[0].(map[string]interface{})
			if first["field"] != "rating" {
				t.Fatalf("body %s: expected rating error, got %v", body, first)
			}
		}
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		h := newHandler(&stubReviewStore{})
		rr := httptest.NewRecorder()
		h.CreateReview(rr, authedRequest(http.MethodPost, "/api/reviews", `{"rating":`, 1))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("second review from the same user returns 409", func(t *testing.T) {
		store := &stubReviewStore{}
		h := newHandler(store)

		rr := httptest.NewRecorder()
		h.CreateReview(rr, authedRequest(http.MethodPost, "/api/reviews", `{"rating":4}`, 1))
		if rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rr.Code)
		}

		rr = httptest.NewRecorder()
		h.CreateReview(rr, authedRequest(http.MethodPost, "/api/reviews", `{"rating":2}`, 1))
		if rr.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rr.Code)
		}
		resp := decodeEnvelope(t, rr)
		if resp["message"] != "You have already submitted a review" {
			t.Fatalf("unexpected message: %v", resp["message"])
		}
	})

	t.Run("store failure returns a generic 500", func(t *testing.T) {
		h := newHandler(&stubReviewStore{createErr: errors.New("connection refused")})
		rr := httptest.NewRecorder()
		h.CreateReview(rr, authedRequest(http.MethodPost, "/api/reviews", `{"rating":4}`, 1))

		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rr.Code)
		}
		if strings.Contains(rr.Body.String(), "connection refused") {
			t.Fatal("store error detail leaked to the client")
		}
	})

	t.Run("missing identity returns 401", func(t *testing.T) {
		h := newHandler(&stubReviewStore{})
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(`{"rating":4}`))
		h.CreateReview(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})
}

func TestGetMyReviews(t *testing.T) {
	store := &stubReviewStore{}
	for i, rating := range []int{5, 4, 3} {
		store.reviews = append(store.reviews, models.Review{ID: i + 1, UserID: 1, Rating: rating})
		store.nextID = i + 1
	}
	store.reviews = append(store.reviews, models.Review{ID: 4, UserID: 2, Rating: 1})
	h := newHandler(store)

	t.Run("returns at most limit rows newest first", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.GetMyReviews(rr, authedRequest(http.MethodGet, "/api/reviews/my?page=1&limit=2", "", 1))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		resp := decodeEnvelope(t, rr)
		data := resp["data"].(map[string]interface{})
		reviews := data["reviews"].([]interface{})
		if len(reviews) != 2 {
			t.Fatalf("expected 2 reviews, got %d", len(reviews))
		}
		first := reviews[0].(map[string]interface{})
		if first["id"].(float64) != 3 {
			t.Fatalf("expected newest review first, got id %v", first["id"])
		}
		pagination := data["pagination"].(map[string]interface{})
		if pagination["page"].(float64) != 1 || pagination["limit"].(float64) != 2 {
			t.Fatalf("unexpected pagination: %v", pagination)
		}
	})

	t.Run("defaults applied when parameters are absent", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.GetMyReviews(rr, authedRequest(http.MethodGet, "/api/reviews/my", "", 1))

		resp := decodeEnvelope(t, rr)
		pagination := resp["data"].(map[string]interface{})["pagination"].(map[string]interface{})
		if pagination["page"].(float64) != 1 || pagination["limit"].(float64) != 10 {
			t.Fatalf("expected defaults page=1 limit=10, got %v", pagination)
		}
	})

	t.Run("oversized limit is clamped", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.GetMyReviews(rr, authedRequest(http.MethodGet, "/api/reviews/my?limit=5000", "", 1))

		resp := decodeEnvelope(t, rr)
		pagination := resp["data"].(map[string]interface{})["pagination"].(map[string]interface{})
		if pagination["limit"].(float64) != 100 {
			t.Fatalf("expected limit clamped to 100, got %v", pagination["limit"])
		}
	})
}

func TestGetReviewStats(t *testing.T) {
	store := &stubReviewStore{}
	comments := []string{"great", "", "solid", "", "love it"}
	for i, rating := range []int{5, 4, 5, 3, 5} {
		comment := comments[i]
		store.reviews = append(store.reviews, models.Review{
			ID: i + 1, UserID: i + 1, Rating: rating, Comment: &comment,
		})
	}
	h := newHandler(store)

	rr := httptest.NewRecorder()
	h.GetReviewStats(rr, authedRequest(http.MethodGet, "/api/reviews/stats", "", 1))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"averageRating":4.40`) {
		t.Fatalf("expected averageRating serialized as 4.40, got %s", rr.Body.String())
	}

	resp := decodeEnvelope(t, rr)
	data := resp["data"].(map[string]interface{})
	stats := data["statistics"].(map[string]interface{})
	if stats["totalReviews"].(float64) != 5 {
		t.Fatalf("expected 5 total reviews, got %v", stats["totalReviews"])
	}
	if stats["reviewsWithComments"].(float64) != 3 {
		t.Fatalf("expected 3 reviews with comments, got %v", stats["reviewsWithComments"])
	}

	distribution := data["ratingDistribution"].([]interface{})
	want := []struct{ rating, count float64 }{{3, 1}, {4, 1}, {5, 3}}
	if len(distribution) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(distribution))
	}
	for i, item := range distribution {
		bucket := item.(map[string]interface{})
		if bucket["rating"].(float64) != want[i].rating || bucket["count"].(float64) != want[i].count {
			t.Fatalf("bucket %d: expected %+v, got %v", i, want[i], bucket)
		}
	}
}

func TestGetReviewByID(t *testing.T) {
	store := &stubReviewStore{}
	comment := "ok"
	store.reviews = append(store.reviews, models.Review{ID: 1, UserID: 1, Rating: 5, Comment: &comment})
	h := newHandler(store)

	t.Run("found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.GetReviewByID(rr, authedRequest(http.MethodGet, "/api/reviews/1?:id=1", "", 1))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		resp := decodeEnvelope(t, rr)
		review := resp["data"].(map[string]interface{})["review"].(map[string]interface{})
		if review["id"].(float64) != 1 {
			t.Fatalf("expected review id 1, got %v", review["id"])
		}
	})

	t.Run("not found stays not found", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			rr := httptest.NewRecorder()
			h.GetReviewByID(rr, authedRequest(http.MethodGet, "/api/reviews/999?:id=999", "", 1))
			if rr.Code != http.StatusNotFound {
				t.Fatalf("expected 404, got %d", rr.Code)
			}
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.GetReviewByID(rr, authedRequest(http.MethodGet, "/api/reviews/abc?:id=abc", "", 1))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})
}
