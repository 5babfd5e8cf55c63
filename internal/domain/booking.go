package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Booking struct {
	ID         int64           `db:"id" json:"id"`
	HotelID    int64           `db:"hotel_id" json:"hotel"`
	UserID     uuid.UUID       `db:"user_id" json:"user_id"`
	CheckIn    time.Time       `db:"check_in" json:"check_in"`
	CheckOut   time.Time       `db:"check_out" json:"check_out"`
	Guests     int             `db:"guests" json:"guests"`
	TotalPrice decimal.Decimal `db:"total_price" json:"total_price"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`

	HotelName string `db:"hotel_name" json:"hotel_name"`
}
