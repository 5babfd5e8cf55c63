package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Hotel struct {
	ID            int64           `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	Description   string          `db:"description" json:"description"`
	Address       string          `db:"address" json:"address"`
	CountryID     int64           `db:"country_id" json:"country"`
	CountryName   string          `db:"country_name" json:"country_name"`
	CityID        *int64          `db:"city_id" json:"city"`
	CityName      *string         `db:"city_name" json:"city_name"`
	Stars         int             `db:"stars" json:"stars"`
	PricePerNight decimal.Decimal `db:"price_per_night" json:"price_per_night"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`

	// Aggregates computed by the store for every read.
	AverageRating float64 `db:"average_rating" json:"average_rating"`
	ReviewCount   int64   `db:"review_count" json:"review_count"`

	MainImage *string      `db:"-" json:"main_image"`
	Images    []HotelImage `db:"-" json:"images,omitempty"`
}

type HotelImage struct {
	ID        int64     `db:"id" json:"id"`
	HotelID   int64     `db:"hotel_id" json:"hotel"`
	ObjectKey string    `db:"object_key" json:"-"`
	URL       string    `db:"image_url" json:"image"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type HotelSort string

const (
	HotelSortDefault    HotelSort = ""
	HotelSortPriceAsc   HotelSort = "price_asc"
	HotelSortPriceDesc  HotelSort = "price_desc"
	HotelSortStarsAsc   HotelSort = "stars_asc"
	HotelSortStarsDesc  HotelSort = "stars_desc"
	HotelSortRatingDesc HotelSort = "rating_desc"
)

// ParseHotelSort maps a sort_by value. Empty input yields the default order.
func ParseHotelSort(raw string) (HotelSort, bool) {
	switch s := HotelSort(raw); s {
	case HotelSortDefault, HotelSortPriceAsc, HotelSortPriceDesc, HotelSortStarsAsc, HotelSortStarsDesc, HotelSortRatingDesc:
		return s, true
	}
	return HotelSortDefault, false
}

// HotelListFilter is the query accepted by the hotel search. Nil or empty
// fields do not constrain the result. Limit 0 returns every match.
type HotelListFilter struct {
	CountryID   *int64
	CountryName string
	CityID      *int64
	CityName    string
	Stars       *int
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Search      string
	Sort        HotelSort
	Limit       int
	Offset      int
}

// HotelInput is the administrative create/update payload.
type HotelInput struct {
	Name          string
	Description   string
	Address       string
	CountryID     int64
	CityID        *int64
	Stars         int
	PricePerNight decimal.Decimal
}
