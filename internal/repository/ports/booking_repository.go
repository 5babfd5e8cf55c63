package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	FindOwned(ctx context.Context, id int64, userID uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, hotelID *int64, limit, offset int) ([]domain.Booking, error)
}
