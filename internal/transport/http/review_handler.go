package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/service"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/util"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

type createReviewRequest struct {
	Hotel   int64  `json:"hotel" validate:"required,gt=0"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

func RegisterReviews(e *echo.Echo, auth *service.AuthService, reviews *service.ReviewService) {
	h := &ReviewHandler{reviews: reviews}
	g := e.Group("/api", RequireAuth(auth))
	g.POST("/reviews", h.create)
	g.GET("/my-reviews", h.listMine)
	g.DELETE("/reviews/delete/:id", h.delete)
}

func (h *ReviewHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	var req createReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	review, err := h.reviews.Create(c.Request().Context(), user.ID, service.ReviewInput{
		HotelID: req.Hotel,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return respondError(c, err)
	}
	if review.Username == "" {
		review.Username = user.Username
	}
	return c.JSON(http.StatusCreated, toReviewResponse(*review))
}

func (h *ReviewHandler) listMine(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	reviews, err := h.reviews.ListMine(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toReviewResponses(reviews))
}

// delete only removes reviews written by the caller; anything else is a 404.
func (h *ReviewHandler) delete(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, util.Error(service.ErrReviewNotFound.Error()))
	}
	if err := h.reviews.Delete(c.Request().Context(), user.ID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "review deleted successfully"})
}
