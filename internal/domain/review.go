package domain

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        int64     `db:"id" json:"id"`
	HotelID   int64     `db:"hotel_id" json:"hotel"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	Username  string `db:"username" json:"user"`
	HotelName string `db:"hotel_name" json:"hotel_name"`
}
