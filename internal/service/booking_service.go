package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/metrics"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/ports"
)

var ErrBookingNotFound = errors.New("booking not found")

const (
	minGuests = 1
	maxGuests = 10
)

// maxBookingTotal is the largest value booking.total_price (NUMERIC(10,2)) holds.
var maxBookingTotal = decimal.RequireFromString("99999999.99")

type BookingInput struct {
	HotelID  int64
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

type BookingService struct {
	bookings ports.BookingRepository
	hotels   ports.HotelRepository
	location *time.Location
	now      func() time.Time
}

// NewBookingService evaluates "today" in loc; nil means UTC.
func NewBookingService(bookings ports.BookingRepository, hotels ports.HotelRepository, loc *time.Location) *BookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingService{bookings: bookings, hotels: hotels, location: loc, now: time.Now}
}

func (s *BookingService) today() time.Time {
	return DateOnly(s.now().In(s.location))
}

// Create validates the stay, prices it from the hotel's current nightly rate
// and stores it for userID.
func (s *BookingService) Create(ctx context.Context, userID uuid.UUID, in BookingInput) (*domain.Booking, error) {
	if in.Guests < minGuests || in.Guests > maxGuests {
		return nil, newValidationError("guests", "guests must be between 1 and 10")
	}
	checkIn, checkOut := DateOnly(in.CheckIn), DateOnly(in.CheckOut)
	if err := ValidateStay(checkIn, checkOut, s.today()); err != nil {
		return nil, err
	}

	hotel, err := s.hotels.FindByID(ctx, in.HotelID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}

	booking := &domain.Booking{
		HotelID:  hotel.ID,
		UserID:   userID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   in.Guests,
	}
	if booking.TotalPrice.IsZero() {
		booking.TotalPrice = CalculateTotalPrice(hotel.PricePerNight, checkIn, checkOut)
	}
	if booking.TotalPrice.GreaterThan(maxBookingTotal) {
		return nil, newValidationError("check_out", "booking total exceeds the maximum of "+maxBookingTotal.StringFixed(2)+", shorten the stay")
	}

	stored, err := s.bookings.Create(ctx, booking)
	if err != nil {
		return nil, err
	}
	metrics.ObserveBooking()
	return stored, nil
}

func (s *BookingService) ListMine(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}

func (s *BookingService) GetMine(ctx context.Context, userID uuid.UUID, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookings.FindOwned(ctx, bookingID, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) List(ctx context.Context, hotelID *int64, limit, offset int) ([]domain.Booking, error) {
	limit, offset = normalizePagination(limit, offset)
	bookings, err := s.bookings.List(ctx, hotelID, limit, offset)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}
