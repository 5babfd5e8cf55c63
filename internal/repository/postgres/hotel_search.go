package postgres

import (
	"fmt"
	"strings"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
)

const hotelSelect = `
		SELECT
			h.id,
			h.name,
			h.description,
			h.address,
			h.country_id,
			co.name AS country_name,
			h.city_id,
			ci.name AS city_name,
			h.stars,
			h.price_per_night,
			h.created_at,
			COALESCE(ROUND(AVG(r.rating)::numeric, 1), 0)::float8 AS average_rating,
			COUNT(r.id) AS review_count
		FROM hotel h
		JOIN country co ON co.id = h.country_id
		LEFT JOIN city ci ON ci.id = h.city_id
		LEFT JOIN review r ON r.hotel_id = h.id`

const hotelGroupBy = `GROUP BY h.id, co.name, ci.name`

// hotelSearchWhere turns the filter into a conjunction of predicates. The text
// search is one predicate OR-ing name, description and city name.
func hotelSearchWhere(filter domain.HotelListFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	next := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CountryID != nil {
		clauses = append(clauses, "h.country_id = "+next(*filter.CountryID))
	}
	if name := strings.TrimSpace(filter.CountryName); name != "" {
		clauses = append(clauses, "LOWER(co.name) = LOWER("+next(name)+")")
	}
	if filter.CityID != nil {
		clauses = append(clauses, "h.city_id = "+next(*filter.CityID))
	}
	if name := strings.TrimSpace(filter.CityName); name != "" {
		clauses = append(clauses, "LOWER(ci.name) = LOWER("+next(name)+")")
	}
	if filter.Stars != nil {
		clauses = append(clauses, "h.stars = "+next(*filter.Stars))
	}
	if filter.MinPrice != nil {
		clauses = append(clauses, "h.price_per_night >= "+next(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		clauses = append(clauses, "h.price_per_night <= "+next(*filter.MaxPrice))
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		p := next("%" + escapeLike(term) + "%")
		clauses = append(clauses, fmt.Sprintf("(h.name ILIKE %[1]s OR h.description ILIKE %[1]s OR ci.name ILIKE %[1]s)", p))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// hotelOrderBy always ends in h.id so repeated queries page identically.
func hotelOrderBy(sort domain.HotelSort) string {
	switch sort {
	case domain.HotelSortPriceAsc:
		return "ORDER BY h.price_per_night ASC, h.id ASC"
	case domain.HotelSortPriceDesc:
		return "ORDER BY h.price_per_night DESC, h.id ASC"
	case domain.HotelSortStarsAsc:
		return "ORDER BY h.stars ASC, h.id ASC"
	case domain.HotelSortStarsDesc:
		return "ORDER BY h.stars DESC, h.id ASC"
	case domain.HotelSortRatingDesc:
		return "ORDER BY AVG(r.rating) DESC NULLS LAST, h.name ASC, h.id ASC"
	default:
		return "ORDER BY h.id ASC"
	}
}

func buildHotelSearchQuery(filter domain.HotelListFilter) (string, []any) {
	where, args := hotelSearchWhere(filter)

	var b strings.Builder
	b.WriteString(hotelSelect)
	if where != "" {
		b.WriteString("\n\t\t")
		b.WriteString(where)
	}
	b.WriteString("\n\t\t")
	b.WriteString(hotelGroupBy)
	b.WriteString("\n\t\t")
	b.WriteString(hotelOrderBy(filter.Sort))

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&b, "\n\t\tLIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}
	return b.String(), args
}

func buildHotelCountQuery(filter domain.HotelListFilter) (string, []any) {
	where, args := hotelSearchWhere(filter)
	query := `
		SELECT COUNT(*)
		FROM hotel h
		JOIN country co ON co.id = h.country_id
		LEFT JOIN city ci ON ci.id = h.city_id`
	if where != "" {
		query += "\n\t\t" + where
	}
	return query, args
}

func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
