package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/service"
)

func newQueryContext(rawQuery string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/hotels?"+rawQuery, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestParseHotelListFilter(t *testing.T) {
	c := newQueryContext("country=3&city=Paris&stars=4&min_price=50&max_price=200.5&search=%20sea%20&sort_by=price_desc&limit=10&offset=20")

	filter, err := parseHotelListFilter(c)
	if err != nil {
		t.Fatalf("parseHotelListFilter returned error: %v", err)
	}
	if filter.CountryID == nil || *filter.CountryID != 3 {
		t.Fatalf("expected country id 3, got %v", filter.CountryID)
	}
	if filter.CityID != nil || filter.CityName != "Paris" {
		t.Fatalf("expected city name Paris, got id=%v name=%q", filter.CityID, filter.CityName)
	}
	if filter.Stars == nil || *filter.Stars != 4 {
		t.Fatalf("expected stars 4, got %v", filter.Stars)
	}
	if filter.MinPrice == nil || filter.MinPrice.String() != "50" {
		t.Fatalf("expected min price 50, got %v", filter.MinPrice)
	}
	if filter.MaxPrice == nil || filter.MaxPrice.String() != "200.5" {
		t.Fatalf("expected max price 200.5, got %v", filter.MaxPrice)
	}
	if filter.Search != "sea" {
		t.Fatalf("expected trimmed search, got %q", filter.Search)
	}
	if filter.Sort != domain.HotelSortPriceDesc {
		t.Fatalf("expected price_desc, got %q", filter.Sort)
	}
	if filter.Limit != 10 || filter.Offset != 20 {
		t.Fatalf("expected limit 10 offset 20, got %d/%d", filter.Limit, filter.Offset)
	}
}

func TestParseHotelListFilterIDParams(t *testing.T) {
	c := newQueryContext("country_id=7&country=Spain&city_id=9")

	filter, err := parseHotelListFilter(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.CountryID == nil || *filter.CountryID != 7 || filter.CountryName != "" {
		t.Fatalf("expected country_id to win, got id=%v name=%q", filter.CountryID, filter.CountryName)
	}
	if filter.CityID == nil || *filter.CityID != 9 {
		t.Fatalf("expected city id 9, got %v", filter.CityID)
	}
}

func TestParseHotelListFilterUnknownSortFallsBack(t *testing.T) {
	filter, err := parseHotelListFilter(newQueryContext("sort_by=cheapest"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.Sort != domain.HotelSortDefault {
		t.Fatalf("expected default sort, got %q", filter.Sort)
	}
	if filter.Limit != 0 {
		t.Fatalf("expected unlimited result, got limit %d", filter.Limit)
	}
}

func TestParseHotelListFilterRejects(t *testing.T) {
	cases := map[string]string{
		"min_price=300&max_price=100": "min_price",
		"min_price=abc":               "min_price",
		"max_price=-1":                "max_price",
		"stars=6":                     "stars",
		"stars=two":                   "stars",
		"country_id=x":                "country_id",
	}
	for query, field := range cases {
		_, err := parseHotelListFilter(newQueryContext(query))
		var vErr *service.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("%s: expected validation error, got %v", query, err)
		}
		if vErr.Field != field {
			t.Fatalf("%s: expected field %s, got %s", query, field, vErr.Field)
		}
	}
}
