package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/service"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/util"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrInvalidToken, http.StatusUnauthorized},
	{service.ErrSessionInactive, http.StatusUnauthorized},
	{service.ErrInvalidGoogleToken, http.StatusUnauthorized},
	{service.ErrGoogleDisabled, http.StatusNotFound},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrHotelNotFound, http.StatusNotFound},
	{service.ErrHotelImageNotFound, http.StatusNotFound},
	{service.ErrCountryNotFound, http.StatusNotFound},
	{service.ErrCityNotFound, http.StatusNotFound},
	{service.ErrReviewNotFound, http.StatusNotFound},
	{service.ErrBookingNotFound, http.StatusNotFound},
	{service.ErrFavoriteNotFound, http.StatusNotFound},
	{service.ErrReviewAlreadyExists, http.StatusConflict},
	{service.ErrFavoriteAlreadyExists, http.StatusConflict},
}

// respondError writes the JSON error body for err. Unclassified errors are
// logged and reported as a generic 500.
func respondError(c echo.Context, err error) error {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return c.JSON(http.StatusBadRequest, util.FieldError(vErr.Field, vErr.Message))
	}
	for _, m := range errorStatuses {
		if errors.Is(err, m.err) {
			return c.JSON(m.status, util.Error(m.err.Error()))
		}
	}
	requestLogger(c).Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return c.JSON(http.StatusInternalServerError, util.Error("internal server error"))
}
