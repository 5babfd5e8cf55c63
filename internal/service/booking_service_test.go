package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
)

type fakeBookingRepo struct {
	bookings []domain.Booking
	created  []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.created = append(f.created, booking)
	if f.err != nil {
		return nil, f.err
	}
	stored := *booking
	stored.ID = int64(len(f.bookings) + 1)
	f.bookings = append(f.bookings, stored)
	return &stored, nil
}

func (f *fakeBookingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindOwned(ctx context.Context, id int64, userID uuid.UUID) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id && b.UserID == userID {
			clone := b
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeBookingRepo) List(ctx context.Context, hotelID *int64, limit, offset int) ([]domain.Booking, error) {
	return f.bookings, nil
}

func newBookingFixture(today time.Time) (*BookingService, *fakeBookingRepo) {
	hotels := newFakeHotelRepo(domain.Hotel{ID: 1, Name: "Harbour View", PricePerNight: decimal.RequireFromString("150.00")})
	bookings := &fakeBookingRepo{}
	svc := NewBookingService(bookings, hotels, time.UTC)
	svc.now = func() time.Time { return today }
	return svc, bookings
}

func TestCreateBookingComputesTotal(t *testing.T) {
	today := time.Date(2030, 5, 1, 18, 30, 0, 0, time.UTC)
	svc, repo := newBookingFixture(today)
	userID := uuid.New()

	booking, err := svc.Create(context.Background(), userID, BookingInput{
		HotelID:  1,
		CheckIn:  date(2030, 5, 1),
		CheckOut: date(2030, 5, 4),
		Guests:   2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !booking.TotalPrice.Equal(decimal.RequireFromString("450.00")) {
		t.Fatalf("expected total 450.00, got %s", booking.TotalPrice)
	}
	if booking.UserID != userID || booking.HotelID != 1 {
		t.Fatalf("unexpected booking %+v", booking)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one stored booking, got %d", len(repo.created))
	}
}

func TestCreateBookingRejections(t *testing.T) {
	today := time.Date(2030, 5, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		in      BookingInput
		field   string
		wantErr error
	}{
		{name: "no guests", in: BookingInput{HotelID: 1, CheckIn: date(2030, 5, 11), CheckOut: date(2030, 5, 12), Guests: 0}, field: "guests"},
		{name: "too many guests", in: BookingInput{HotelID: 1, CheckIn: date(2030, 5, 11), CheckOut: date(2030, 5, 12), Guests: 11}, field: "guests"},
		{name: "checkout before checkin", in: BookingInput{HotelID: 1, CheckIn: date(2030, 5, 12), CheckOut: date(2030, 5, 11), Guests: 1}, field: "check_out"},
		{name: "past dates", in: BookingInput{HotelID: 1, CheckIn: date(2030, 5, 9), CheckOut: date(2030, 5, 11), Guests: 1}, field: "check_in"},
		{name: "unknown hotel", in: BookingInput{HotelID: 42, CheckIn: date(2030, 5, 11), CheckOut: date(2030, 5, 12), Guests: 1}, wantErr: ErrHotelNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo := newBookingFixture(today)
			_, err := svc.Create(context.Background(), uuid.New(), tc.in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
			} else {
				assertFieldError(t, err, tc.field)
			}
			if len(repo.created) != 0 {
				t.Fatal("expected no booking to be stored")
			}
		})
	}
}

func TestBookingTodayUsesConfiguredLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	hotels := newFakeHotelRepo(domain.Hotel{ID: 1, PricePerNight: decimal.NewFromInt(100)})
	svc := NewBookingService(&fakeBookingRepo{}, hotels, tokyo)
	// 2030-05-10 20:00 UTC is already 2030-05-11 in Tokyo.
	svc.now = func() time.Time { return time.Date(2030, 5, 10, 20, 0, 0, 0, time.UTC) }

	_, err := svc.Create(context.Background(), uuid.New(), BookingInput{HotelID: 1, CheckIn: date(2030, 5, 10), CheckOut: date(2030, 5, 12), Guests: 1})
	assertFieldError(t, err, "check_in")
}

func TestGetMineHidesOtherUsersBookings(t *testing.T) {
	svc, _ := newBookingFixture(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	owner, stranger := uuid.New(), uuid.New()

	booking, err := svc.Create(context.Background(), owner, BookingInput{HotelID: 1, CheckIn: date(2030, 2, 1), CheckOut: date(2030, 2, 2), Guests: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetMine(context.Background(), owner, booking.ID); err != nil {
		t.Fatalf("owner should see booking: %v", err)
	}
	if _, err := svc.GetMine(context.Background(), stranger, booking.ID); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}

	mine, err := svc.ListMine(context.Background(), stranger)
	if err != nil || len(mine) != 0 {
		t.Fatalf("expected empty list for stranger, got %v (%v)", mine, err)
	}
}

func TestCreateBookingRejectsTotalAboveStoreLimit(t *testing.T) {
	today := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
	hotels := newFakeHotelRepo(
		domain.Hotel{ID: 1, Name: "Penthouse", PricePerNight: decimal.RequireFromString("50000000.00")},
		domain.Hotel{ID: 2, Name: "Suite", PricePerNight: decimal.RequireFromString("33333333.33")},
	)
	repo := &fakeBookingRepo{}
	svc := NewBookingService(repo, hotels, time.UTC)
	svc.now = func() time.Time { return today }

	_, err := svc.Create(context.Background(), uuid.New(), BookingInput{
		HotelID: 1, CheckIn: date(2030, 5, 1), CheckOut: date(2030, 5, 3), Guests: 1,
	})
	assertFieldError(t, err, "check_out")
	if len(repo.created) != 0 {
		t.Fatal("oversized booking must not reach the store")
	}

	booking, err := svc.Create(context.Background(), uuid.New(), BookingInput{
		HotelID: 2, CheckIn: date(2030, 5, 1), CheckOut: date(2030, 5, 4), Guests: 1,
	})
	if err != nil {
		t.Fatalf("expected total at the limit to be accepted, got %v", err)
	}
	if booking.TotalPrice.StringFixed(2) != "99999999.99" {
		t.Fatalf("unexpected total %s", booking.TotalPrice)
	}
}
