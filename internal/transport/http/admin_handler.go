package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/media"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/service"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/util"
)

// AdminHandler exposes catalogue maintenance and moderation listings.
type AdminHandler struct {
	locations *service.LocationService
	hotels    *service.HotelService
	reviews   *service.ReviewService
	bookings  *service.BookingService
}

type AdminServices struct {
	Auth      *service.AuthService
	Locations *service.LocationService
	Hotels    *service.HotelService
	Reviews   *service.ReviewService
	Bookings  *service.BookingService
}

type nameRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type cityRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Country int64  `json:"country" validate:"required,gt=0"`
}

type hotelRequest struct {
	Name          string          `json:"name" validate:"required,max=200"`
	Description   string          `json:"description" validate:"required"`
	Address       string          `json:"address" validate:"required,max=255"`
	Country       int64           `json:"country" validate:"required,gt=0"`
	City          *int64          `json:"city"`
	Stars         int             `json:"stars" validate:"required,min=1,max=5"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
}

func (r hotelRequest) input() domain.HotelInput {
	return domain.HotelInput{
		Name:          r.Name,
		Description:   r.Description,
		Address:       r.Address,
		CountryID:     r.Country,
		CityID:        r.City,
		Stars:         r.Stars,
		PricePerNight: r.PricePerNight,
	}
}

func RegisterAdmin(e *echo.Echo, svc AdminServices) {
	h := &AdminHandler{
		locations: svc.Locations,
		hotels:    svc.Hotels,
		reviews:   svc.Reviews,
		bookings:  svc.Bookings,
	}
	g := e.Group("/api/admin", RequireAuth(svc.Auth), RequireAdmin(svc.Auth))

	g.POST("/countries", h.createCountry)
	g.PUT("/countries/:id", h.renameCountry)
	g.DELETE("/countries/:id", h.deleteCountry)

	g.POST("/cities", h.createCity)
	g.PUT("/cities/:id", h.renameCity)
	g.DELETE("/cities/:id", h.deleteCity)

	g.POST("/hotels", h.createHotel)
	g.PUT("/hotels/:id", h.updateHotel)
	g.DELETE("/hotels/:id", h.deleteHotel)
	g.POST("/hotels/:id/images", h.uploadHotelImage)
	g.DELETE("/hotels/:id/images/:imageID", h.deleteHotelImage)

	g.GET("/reviews", h.listReviews)
	g.GET("/bookings", h.listBookings)
}

func (h *AdminHandler) createCountry(c echo.Context) error {
	var req nameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	country, err := h.locations.CreateCountry(c.Request().Context(), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, country)
}

func (h *AdminHandler) renameCountry(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, util.Error(service.ErrCountryNotFound.Error()))
	}
	var req nameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	country, err := h.locations.RenameCountry(c.Request().Context(), id, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, country)
}

func (h *AdminHandler) deleteCountry(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, util.Error(service.ErrCountryNotFound.Error()))
	}
	if err := h.locations.DeleteCountry(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) createCity(c echo.Context) error {
	var req cityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	city, err := h.locations.CreateCity(c.Request().Context(), req.Country, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, city)
}

func (h *AdminHandler) renameCity(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, util.Error(service.ErrCityNotFound.Error()))
	}
	var req nameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	city, err := h.locations.RenameCity(c.Request().Context(), id, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, city)
}

func (h *AdminHandler) deleteCity(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, util.Error(service.ErrCityNotFound.Error()))
	}
	if err := h.locations.DeleteCity(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) createHotel(c echo.Context) error {
	var req hotelRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	hotel, err := h.hotels.Create(c.Request().Context(), req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toHotelListItem(*hotel))
}

func (h *AdminHandler) updateHotel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, util.Error(service.ErrHotelNotFound.Error()))
	}
	var req hotelRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	hotel, err := h.hotels.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toHotelListItem(*hotel))
}

func (h *AdminHandler) deleteHotel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, util.Error(service.ErrHotelNotFound.Error()))
	}
	if err := h.hotels.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) uploadHotelImage(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, util.Error(service.ErrHotelNotFound.Error()))
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.FieldError("image", "image file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.FieldError("image", "unable to read uploaded file"))
	}
	defer file.Close()

	image, err := h.hotels.AddImage(c.Request().Context(), id, media.Upload{
		Reader:      file,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, HotelImageResponse{ID: image.ID, Image: image.URL})
}

func (h *AdminHandler) deleteHotelImage(c echo.Context) error {
	hotelID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, util.Error(service.ErrHotelNotFound.Error()))
	}
	imageID, ok := pathID(c, "imageID")
	if !ok {
		return c.JSON(http.StatusNotFound, util.Error(service.ErrHotelImageNotFound.Error()))
	}
	if err := h.hotels.DeleteImage(c.Request().Context(), hotelID, imageID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) listReviews(c echo.Context) error {
	hotelID, err := optionalInt64Query(c, "hotel")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.FieldError("hotel", "hotel must be a numeric id"))
	}
	limit, offset := parsePagination(c, 20, 0)
	reviews, err := h.reviews.List(c.Request().Context(), hotelID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toReviewResponses(reviews))
}

func (h *AdminHandler) listBookings(c echo.Context) error {
	hotelID, err := optionalInt64Query(c, "hotel")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.FieldError("hotel", "hotel must be a numeric id"))
	}
	limit, offset := parsePagination(c, 20, 0)
	bookings, err := h.bookings.List(c.Request().Context(), hotelID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}
