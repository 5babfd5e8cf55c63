package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/ports"
)

type HotelImageRepository struct {
	db *sqlx.DB
}

func NewHotelImageRepo(db *sqlx.DB) *HotelImageRepository {
	return &HotelImageRepository{db: db}
}

func (r *HotelImageRepository) Create(ctx context.Context, hotelID int64, objectKey, url string) (*domain.HotelImage, error) {
	const query = `
		INSERT INTO hotel_image (hotel_id, object_key, image_url)
		VALUES ($1, $2, $3)
		RETURNING id, hotel_id, object_key, image_url, created_at
	`
	var image domain.HotelImage
	if err := r.db.GetContext(ctx, &image, query, hotelID, objectKey, url); err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *HotelImageRepository) ListByHotel(ctx context.Context, hotelID int64) ([]domain.HotelImage, error) {
	const query = `
		SELECT id, hotel_id, object_key, image_url, created_at
		FROM hotel_image
		WHERE hotel_id = $1
		ORDER BY id ASC
	`
	images := make([]domain.HotelImage, 0)
	if err := r.db.SelectContext(ctx, &images, query, hotelID); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *HotelImageRepository) MainImages(ctx context.Context, hotelIDs []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(hotelIDs))
	if len(hotelIDs) == 0 {
		return out, nil
	}

	const query = `
		SELECT DISTINCT ON (hotel_id) hotel_id, image_url
		FROM hotel_image
		WHERE hotel_id = ANY($1)
		ORDER BY hotel_id, id ASC
	`
	rows, err := r.db.QueryxContext(ctx, query, pq.Array(hotelIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			hotelID int64
			url     string
		)
		if err := rows.Scan(&hotelID, &url); err != nil {
			return nil, err
		}
		out[hotelID] = url
	}
	return out, rows.Err()
}

func (r *HotelImageRepository) Find(ctx context.Context, hotelID, imageID int64) (*domain.HotelImage, error) {
	const query = `
		SELECT id, hotel_id, object_key, image_url, created_at
		FROM hotel_image
		WHERE id = $1 AND hotel_id = $2
	`
	var image domain.HotelImage
	if err := r.db.GetContext(ctx, &image, query, imageID, hotelID); err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *HotelImageRepository) Delete(ctx context.Context, imageID int64) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM hotel_image WHERE id = $1`, imageID)
}

var _ ports.HotelImageRepository = (*HotelImageRepository)(nil)
