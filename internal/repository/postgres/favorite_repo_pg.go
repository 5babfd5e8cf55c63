package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/ports"
)

type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID uuid.UUID, hotelID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM favorite WHERE user_id = $1 AND hotel_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, hotelID); err != nil {
		return false, err
	}
	return exists, nil
}

// Add returns sql.ErrNoRows when the pair already exists.
func (r *FavoriteRepository) Add(ctx context.Context, userID uuid.UUID, hotelID int64) (*domain.Favorite, error) {
	const query = `
		INSERT INTO favorite (user_id, hotel_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, hotel_id) DO NOTHING
		RETURNING id, user_id, hotel_id, created_at
	`

	var favorite domain.Favorite
	if err := r.db.GetContext(ctx, &favorite, query, userID, hotelID); err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *FavoriteRepository) RemoveOwned(ctx context.Context, id int64, userID uuid.UUID) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM favorite WHERE id = $1 AND user_id = $2`, id, userID)
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.FavoriteListItem, error) {
	const query = `
		SELECT
			f.id,
			f.user_id,
			f.hotel_id,
			f.created_at,
			h.name AS hotel_name,
			h.stars,
			h.price_per_night,
			ci.name AS city_name,
			co.name AS country_name,
			(
				SELECT hi.image_url
				FROM hotel_image hi
				WHERE hi.hotel_id = h.id
				ORDER BY hi.id ASC
				LIMIT 1
			) AS main_image
		FROM favorite f
		JOIN hotel h ON h.id = f.hotel_id
		JOIN country co ON co.id = h.country_id
		LEFT JOIN city ci ON ci.id = h.city_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT $2 OFFSET $3
	`

	var pageLimit any
	if limit > 0 {
		pageLimit = limit
	}
	rows, err := r.db.QueryxContext(ctx, query, userID, pageLimit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.FavoriteListItem, 0)
	for rows.Next() {
		var item domain.FavoriteListItem
		if err := rows.StructScan(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *FavoriteRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM favorite
		WHERE user_id = $1
	`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, err
	}
	return count, nil
}

var _ ports.FavoriteRepository = (*FavoriteRepository)(nil)
