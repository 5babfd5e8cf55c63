package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/service"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/util"
)

type BookingHandler struct {
	bookings *service.BookingService
}

type createBookingRequest struct {
	Hotel    int64  `json:"hotel" validate:"required,gt=0"`
	CheckIn  string `json:"check_in" validate:"required"`
	CheckOut string `json:"check_out" validate:"required"`
	Guests   int    `json:"guests" validate:"required,min=1,max=10"`
}

func RegisterBookings(e *echo.Echo, auth *service.AuthService, bookings *service.BookingService) {
	h := &BookingHandler{bookings: bookings}
	g := e.Group("/api", RequireAuth(auth))
	g.POST("/bookings", h.create)
	g.GET("/my-bookings", h.listMine)
	g.GET("/my-bookings/:id", h.getMine)
}

func (h *BookingHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	var req createBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	checkIn, err := parseDate("check_in", req.CheckIn)
	if err != nil {
		return respondError(c, err)
	}
	checkOut, err := parseDate("check_out", req.CheckOut)
	if err != nil {
		return respondError(c, err)
	}
	booking, err := h.bookings.Create(c.Request().Context(), user.ID, service.BookingInput{
		HotelID:  req.Hotel,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   req.Guests,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingResponse(*booking))
}

func (h *BookingHandler) listMine(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	bookings, err := h.bookings.ListMine(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *BookingHandler) getMine(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, util.Error(service.ErrBookingNotFound.Error()))
	}
	booking, err := h.bookings.GetMine(c.Request().Context(), user.ID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(*booking))
}

// parseDate accepts YYYY-MM-DD and returns midnight UTC of that day.
func parseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, &service.ValidationError{Field: field, Message: "date has wrong format, use YYYY-MM-DD"}
	}
	return t, nil
}
