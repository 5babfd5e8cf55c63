package ports

import (
	"context"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
)

type LocationRepository interface {
	ListCountries(ctx context.Context) ([]domain.Country, error)
	FindCountry(ctx context.Context, id int64) (*domain.Country, error)
	CreateCountry(ctx context.Context, name string) (*domain.Country, error)
	RenameCountry(ctx context.Context, id int64, name string) (*domain.Country, error)
	DeleteCountry(ctx context.Context, id int64) error

	// ListCities returns every city, or only the cities of countryID when set.
	ListCities(ctx context.Context, countryID *int64) ([]domain.City, error)
	FindCity(ctx context.Context, id int64) (*domain.City, error)
	CreateCity(ctx context.Context, countryID int64, name string) (*domain.City, error)
	RenameCity(ctx context.Context, id int64, name string) (*domain.City, error)
	DeleteCity(ctx context.Context, id int64) error
}
