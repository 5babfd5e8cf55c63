package ports

import (
	"context"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
)

type HotelRepository interface {
	Search(ctx context.Context, filter domain.HotelListFilter) ([]domain.Hotel, error)
	Count(ctx context.Context, filter domain.HotelListFilter) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Hotel, error)
	Random(ctx context.Context, limit int) ([]domain.Hotel, error)
	Create(ctx context.Context, input domain.HotelInput) (*domain.Hotel, error)
	Update(ctx context.Context, id int64, input domain.HotelInput) (*domain.Hotel, error)
	Delete(ctx context.Context, id int64) error
}

type HotelImageRepository interface {
	Create(ctx context.Context, hotelID int64, objectKey, url string) (*domain.HotelImage, error)
	ListByHotel(ctx context.Context, hotelID int64) ([]domain.HotelImage, error)
	// MainImages returns the first-created image URL of each hotel that has one.
	MainImages(ctx context.Context, hotelIDs []int64) (map[int64]string, error)
	Find(ctx context.Context, hotelID, imageID int64) (*domain.HotelImage, error)
	Delete(ctx context.Context, imageID int64) error
}
