package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
)

type ReviewRepository interface {
	ExistsByUserAndHotel(ctx context.Context, userID uuid.UUID, hotelID int64) (bool, error)
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	ListByHotel(ctx context.Context, hotelID int64) ([]domain.Review, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Review, error)
	List(ctx context.Context, hotelID *int64, limit, offset int) ([]domain.Review, error)
	// DeleteOwned removes the review only when it belongs to userID and
	// returns sql.ErrNoRows otherwise.
	DeleteOwned(ctx context.Context, id int64, userID uuid.UUID) error
}
