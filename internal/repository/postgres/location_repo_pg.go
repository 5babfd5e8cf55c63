package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/ports"
)

type LocationRepository struct {
	db *sqlx.DB
}

func NewLocationRepo(db *sqlx.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) ListCountries(ctx context.Context) ([]domain.Country, error) {
	countries := make([]domain.Country, 0)
	if err := r.db.SelectContext(ctx, &countries, `SELECT id, name FROM country ORDER BY name, id`); err != nil {
		return nil, err
	}
	return countries, nil
}

func (r *LocationRepository) FindCountry(ctx context.Context, id int64) (*domain.Country, error) {
	var country domain.Country
	if err := r.db.GetContext(ctx, &country, `SELECT id, name FROM country WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *LocationRepository) CreateCountry(ctx context.Context, name string) (*domain.Country, error) {
	var country domain.Country
	if err := r.db.GetContext(ctx, &country, `INSERT INTO country (name) VALUES ($1) RETURNING id, name`, name); err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *LocationRepository) RenameCountry(ctx context.Context, id int64, name string) (*domain.Country, error) {
	var country domain.Country
	if err := r.db.GetContext(ctx, &country, `UPDATE country SET name = $2 WHERE id = $1 RETURNING id, name`, id, name); err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *LocationRepository) DeleteCountry(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM country WHERE id = $1`, id)
}

const cityColumns = `ci.id, ci.name, ci.country_id, co.name AS country_name`

func (r *LocationRepository) ListCities(ctx context.Context, countryID *int64) ([]domain.City, error) {
	query := `SELECT ` + cityColumns + ` FROM city ci JOIN country co ON co.id = ci.country_id`
	var args []any
	if countryID != nil {
		query += ` WHERE ci.country_id = $1`
		args = append(args, *countryID)
	}
	query += ` ORDER BY ci.name, ci.id`

	cities := make([]domain.City, 0)
	if err := r.db.SelectContext(ctx, &cities, query, args...); err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *LocationRepository) FindCity(ctx context.Context, id int64) (*domain.City, error) {
	const query = `SELECT ` + cityColumns + ` FROM city ci JOIN country co ON co.id = ci.country_id WHERE ci.id = $1`
	var city domain.City
	if err := r.db.GetContext(ctx, &city, query, id); err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *LocationRepository) CreateCity(ctx context.Context, countryID int64, name string) (*domain.City, error) {
	const query = `
		WITH inserted AS (
			INSERT INTO city (name, country_id) VALUES ($1, $2)
			RETURNING id, name, country_id
		)
		SELECT ci.id, ci.name, ci.country_id, co.name AS country_name
		FROM inserted ci
		JOIN country co ON co.id = ci.country_id
	`
	var city domain.City
	if err := r.db.GetContext(ctx, &city, query, name, countryID); err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *LocationRepository) RenameCity(ctx context.Context, id int64, name string) (*domain.City, error) {
	const query = `
		WITH updated AS (
			UPDATE city SET name = $2 WHERE id = $1
			RETURNING id, name, country_id
		)
		SELECT ci.id, ci.name, ci.country_id, co.name AS country_name
		FROM updated ci
		JOIN country co ON co.id = ci.country_id
	`
	var city domain.City
	if err := r.db.GetContext(ctx, &city, query, id, name); err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *LocationRepository) DeleteCity(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM city WHERE id = $1`, id)
}

// execAffectingOne runs a write and reports sql.ErrNoRows when nothing matched.
func execAffectingOne(ctx context.Context, db *sqlx.DB, query string, args ...any) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ ports.LocationRepository = (*LocationRepository)(nil)
