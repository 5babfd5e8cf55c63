package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
)

type FavoriteRepository interface {
	Exists(ctx context.Context, userID uuid.UUID, hotelID int64) (bool, error)
	Add(ctx context.Context, userID uuid.UUID, hotelID int64) (*domain.Favorite, error)
	RemoveOwned(ctx context.Context, id int64, userID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.FavoriteListItem, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
