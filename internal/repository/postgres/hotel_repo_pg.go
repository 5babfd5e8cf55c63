package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/ports"
)

type HotelRepository struct {
	db *sqlx.DB
}

func NewHotelRepo(db *sqlx.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

func (r *HotelRepository) Search(ctx context.Context, filter domain.HotelListFilter) ([]domain.Hotel, error) {
	query, args := buildHotelSearchQuery(filter)
	return r.selectHotels(ctx, query, args...)
}

func (r *HotelRepository) Count(ctx context.Context, filter domain.HotelListFilter) (int64, error) {
	query, args := buildHotelCountQuery(filter)
	var total int64
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *HotelRepository) FindByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	query := hotelSelect + `
		WHERE h.id = $1
		` + hotelGroupBy

	var hotel domain.Hotel
	if err := r.db.GetContext(ctx, &hotel, query, id); err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *HotelRepository) Random(ctx context.Context, limit int) ([]domain.Hotel, error) {
	query := hotelSelect + `
		` + hotelGroupBy + `
		ORDER BY RANDOM()
		LIMIT $1`
	return r.selectHotels(ctx, query, limit)
}

func (r *HotelRepository) Create(ctx context.Context, in domain.HotelInput) (*domain.Hotel, error) {
	const query = `
		INSERT INTO hotel (name, description, address, country_id, city_id, stars, price_per_night)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, in.Name, in.Description, in.Address, in.CountryID, in.CityID, in.Stars, in.PricePerNight); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *HotelRepository) Update(ctx context.Context, id int64, in domain.HotelInput) (*domain.Hotel, error) {
	const query = `
		UPDATE hotel
		SET name = $2,
			description = $3,
			address = $4,
			country_id = $5,
			city_id = $6,
			stars = $7,
			price_per_night = $8
		WHERE id = $1
	`
	if err := execAffectingOne(ctx, r.db, query, id, in.Name, in.Description, in.Address, in.CountryID, in.CityID, in.Stars, in.PricePerNight); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *HotelRepository) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM hotel WHERE id = $1`, id)
}

func (r *HotelRepository) selectHotels(ctx context.Context, query string, args ...any) ([]domain.Hotel, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hotels := make([]domain.Hotel, 0)
	for rows.Next() {
		var hotel domain.Hotel
		if err := rows.StructScan(&hotel); err != nil {
			return nil, err
		}
		hotels = append(hotels, hotel)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return hotels, nil
}

var _ ports.HotelRepository = (*HotelRepository)(nil)
