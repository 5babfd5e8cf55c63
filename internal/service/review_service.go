package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/metrics"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/ports"
)

var (
	ErrReviewAlreadyExists = errors.New("you have already reviewed this hotel")
	ErrReviewNotFound      = errors.New("review not found or you do not have permission to delete it")
)

const (
	minReviewRating  = 1
	maxReviewRating  = 5
	maxReviewComment = 5000
)

type ReviewInput struct {
	HotelID int64
	Rating  int
	Comment string
}

type ReviewService struct {
	reviews ports.ReviewRepository
	hotels  ports.HotelRepository
}

func NewReviewService(reviews ports.ReviewRepository, hotels ports.HotelRepository) *ReviewService {
	return &ReviewService{reviews: reviews, hotels: hotels}
}

// Create stores one review per (user, hotel). A duplicate caught by the
// pre-check or by the unique constraint yields ErrReviewAlreadyExists.
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, in ReviewInput) (*domain.Review, error) {
	in.Comment = strings.TrimSpace(in.Comment)
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}
	if in.Comment == "" {
		return nil, newValidationError("comment", "comment is required")
	}
	if len([]rune(in.Comment)) > maxReviewComment {
		return nil, newValidationError("comment", "comment is too long")
	}

	if _, err := s.hotels.FindByID(ctx, in.HotelID); err != nil {
		if isNotFound(err) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}

	exists, err := s.reviews.ExistsByUserAndHotel(ctx, userID, in.HotelID)
	if err != nil {
		return nil, err
	}
	if exists {
		metrics.ObserveConflict("review", "precheck")
		return nil, ErrReviewAlreadyExists
	}

	stored, err := s.reviews.Create(ctx, &domain.Review{
		HotelID: in.HotelID,
		UserID:  userID,
		Rating:  in.Rating,
		Comment: in.Comment,
	})
	if err != nil {
		if isUniqueViolation(err) {
			metrics.ObserveConflict("review", "constraint")
			return nil, ErrReviewAlreadyExists
		}
		return nil, err
	}
	return stored, nil
}

func (s *ReviewService) ListMine(ctx context.Context, userID uuid.UUID) ([]domain.Review, error) {
	reviews, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

// Delete removes the caller's own review. Someone else's review is reported
// exactly like a missing one.
func (s *ReviewService) Delete(ctx context.Context, userID uuid.UUID, reviewID int64) error {
	if err := s.reviews.DeleteOwned(ctx, reviewID, userID); err != nil {
		if isNotFound(err) {
			return ErrReviewNotFound
		}
		return err
	}
	return nil
}

// List is the moderation listing, optionally narrowed to one hotel.
func (s *ReviewService) List(ctx context.Context, hotelID *int64, limit, offset int) ([]domain.Review, error) {
	limit, offset = normalizePagination(limit, offset)
	reviews, err := s.reviews.List(ctx, hotelID, limit, offset)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

func validateRating(rating int) error {
	if rating < minReviewRating || rating > maxReviewRating {
		return newValidationError("rating", "rating must be between 1 and 5")
	}
	return nil
}

func normalizePagination(limit, offset int) (int, int) {
	const (
		defaultLimit = 20
		maxLimit     = 100
	)

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// normalizeOpenPagination keeps a zero limit, meaning every row, and caps
// any positive limit.
func normalizeOpenPagination(limit, offset int) (int, int) {
	if limit < 0 {
		limit = 0
	}
	if limit > maxHotelPageSize {
		limit = maxHotelPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
