package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/ports"
)

const bookingSelect = `
		SELECT
			b.id,
			b.hotel_id,
			b.user_id,
			b.check_in,
			b.check_out,
			b.guests,
			b.total_price,
			b.created_at,
			h.name AS hotel_name
		FROM booking b
		JOIN hotel h ON h.id = b.hotel_id`

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepo(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	const query = `
		INSERT INTO booking (hotel_id, user_id, check_in, check_out, guests, total_price)
		VALUES ($1, $2, $3::date, $4::date, $5, $6)
		RETURNING id
	`
	var id int64
	err := r.db.GetContext(ctx, &id, query,
		booking.HotelID,
		booking.UserID,
		booking.CheckIn.Format("2006-01-02"),
		booking.CheckOut.Format("2006-01-02"),
		booking.Guests,
		booking.TotalPrice,
	)
	if err != nil {
		return nil, err
	}
	return r.FindOwned(ctx, id, booking.UserID)
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	query := bookingSelect + ` WHERE b.user_id = $1 ORDER BY b.created_at DESC, b.id DESC`
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) FindOwned(ctx context.Context, id int64, userID uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking
	if err := r.db.GetContext(ctx, &booking, bookingSelect+` WHERE b.id = $1 AND b.user_id = $2`, id, userID); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) List(ctx context.Context, hotelID *int64, limit, offset int) ([]domain.Booking, error) {
	query := bookingSelect
	var args []any
	if hotelID != nil {
		args = append(args, *hotelID)
		query += ` WHERE b.hotel_id = $1`
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY b.id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	bookings := make([]domain.Booking, 0)
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}
	return bookings, nil
}

var _ ports.BookingRepository = (*BookingRepository)(nil)
