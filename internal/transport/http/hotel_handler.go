package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/service"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/util"
)

type HotelHandler struct {
	hotels *service.HotelService
}

func RegisterHotels(e *echo.Echo, hotels *service.HotelService) {
	h := &HotelHandler{hotels: hotels}
	e.GET("/api/hotels", h.list)
	e.GET("/api/hotels/:id", h.get)
}

func (h *HotelHandler) list(c echo.Context) error {
	filter, err := parseHotelListFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.hotels.Search(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, HotelListResponse{
		Count:   result.Total,
		Limit:   result.Limit,
		Offset:  result.Offset,
		Results: toHotelListItems(result.Items),
	})
}

func (h *HotelHandler) get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, util.Error(service.ErrHotelNotFound.Error()))
	}
	detail, err := h.hotels.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toHotelDetail(detail))
}

// parseHotelListFilter reads the hotel query string. country and city take a
// numeric id or an exact name; country_id and city_id take ids only.
// An unknown sort_by falls back to the default order.
func parseHotelListFilter(c echo.Context) (domain.HotelListFilter, error) {
	var filter domain.HotelListFilter

	countryID, countryName, err := idOrName(c, "country")
	if err != nil {
		return filter, err
	}
	filter.CountryID, filter.CountryName = countryID, countryName

	cityID, cityName, err := idOrName(c, "city")
	if err != nil {
		return filter, err
	}
	filter.CityID, filter.CityName = cityID, cityName

	if raw := strings.TrimSpace(c.QueryParam("stars")); raw != "" {
		stars, err := strconv.Atoi(raw)
		if err != nil || stars < 1 || stars > 5 {
			return filter, &service.ValidationError{Field: "stars", Message: "stars must be between 1 and 5"}
		}
		filter.Stars = &stars
	}

	if filter.MinPrice, err = decimalQuery(c, "min_price"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = decimalQuery(c, "max_price"); err != nil {
		return filter, err
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return filter, &service.ValidationError{Field: "min_price", Message: "min_price must not exceed max_price"}
	}

	filter.Search = strings.TrimSpace(c.QueryParam("search"))
	filter.Sort, _ = domain.ParseHotelSort(strings.TrimSpace(c.QueryParam("sort_by")))
	filter.Limit, filter.Offset = parsePagination(c, 0, 0)
	return filter, nil
}

func idOrName(c echo.Context, name string) (*int64, string, error) {
	if raw := strings.TrimSpace(c.QueryParam(name + "_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, "", &service.ValidationError{Field: name + "_id", Message: name + "_id must be a numeric id"}
		}
		return &id, "", nil
	}
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, "", nil
	}
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return &id, "", nil
	}
	return nil, raw, nil
}

func decimalQuery(c echo.Context, name string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil || v.IsNegative() {
		return nil, &service.ValidationError{Field: name, Message: name + " must be a non-negative number"}
	}
	return &v, nil
}
