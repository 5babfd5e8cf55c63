package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/service"
)

type LocationHandler struct {
	locations *service.LocationService
}

func RegisterLocations(e *echo.Echo, locations *service.LocationService) {
	h := &LocationHandler{locations: locations}
	e.GET("/api/countries", h.listCountries)
	e.GET("/api/cities", h.listCities)
}

func (h *LocationHandler) listCountries(c echo.Context) error {
	countries, err := h.locations.ListCountries(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, countries)
}

// listCities accepts ?country=<id> (or country_id) to narrow the list.
func (h *LocationHandler) listCities(c echo.Context) error {
	param := "country"
	if c.QueryParam(param) == "" {
		param = "country_id"
	}
	countryID, err := optionalInt64Query(c, param)
	if err != nil {
		return respondError(c, &service.ValidationError{Field: param, Message: "country must be a numeric id"})
	}
	cities, err := h.locations.ListCities(c.Request().Context(), countryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cities)
}
