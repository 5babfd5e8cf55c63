package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Favorite struct {
	ID        int64     `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	HotelID   int64     `db:"hotel_id" json:"hotel"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type FavoriteListItem struct {
	ID            int64           `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	HotelID       int64           `db:"hotel_id"`
	CreatedAt     time.Time       `db:"created_at"`
	HotelName     string          `db:"hotel_name"`
	Stars         int             `db:"stars"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	CityName      *string         `db:"city_name"`
	CountryName   string          `db:"country_name"`
	MainImage     *string         `db:"main_image"`
}
