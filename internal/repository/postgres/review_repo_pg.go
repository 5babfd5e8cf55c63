package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/ports"
)

const reviewSelect = `
		SELECT
			r.id,
			r.hotel_id,
			r.user_id,
			r.rating,
			r.comment,
			r.created_at,
			u.username,
			h.name AS hotel_name
		FROM review r
		JOIN user_account u ON u.id = r.user_id
		JOIN hotel h ON h.id = r.hotel_id`

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepo(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) ExistsByUserAndHotel(ctx context.Context, userID uuid.UUID, hotelID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM review WHERE user_id = $1 AND hotel_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, hotelID); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts without ON CONFLICT so a concurrent duplicate surfaces as a
// review_hotel_user_key unique violation.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	const query = `
		INSERT INTO review (hotel_id, user_id, rating, comment)
		VALUES (:hotel_id, :user_id, :rating, :comment)
		RETURNING id
	`
	rows, err := r.db.NamedQueryContext(ctx, query, review)
	if err != nil {
		return nil, err
	}
	var id int64
	if rows.Next() {
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	var stored domain.Review
	if err := r.db.GetContext(ctx, &stored, reviewSelect+` WHERE r.id = $1`, id); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *ReviewRepository) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Review, error) {
	reviews := make([]domain.Review, 0)
	query := reviewSelect + ` WHERE r.hotel_id = $1 ORDER BY r.created_at DESC, r.id DESC`
	if err := r.db.SelectContext(ctx, &reviews, query, hotelID); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Review, error) {
	reviews := make([]domain.Review, 0)
	query := reviewSelect + ` WHERE r.user_id = $1 ORDER BY r.created_at DESC, r.id DESC`
	if err := r.db.SelectContext(ctx, &reviews, query, userID); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) List(ctx context.Context, hotelID *int64, limit, offset int) ([]domain.Review, error) {
	var (
		clauses []string
		args    []any
	)
	if hotelID != nil {
		args = append(args, *hotelID)
		clauses = append(clauses, fmt.Sprintf("r.hotel_id = $%d", len(args)))
	}
	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}
	args = append(args, limit, offset)
	query := fmt.Sprintf("%s%s ORDER BY r.id DESC LIMIT $%d OFFSET $%d", reviewSelect, where, len(args)-1, len(args))

	reviews := make([]domain.Review, 0)
	if err := r.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) DeleteOwned(ctx context.Context, id int64, userID uuid.UUID) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM review WHERE id = $1 AND user_id = $2`, id, userID)
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)
