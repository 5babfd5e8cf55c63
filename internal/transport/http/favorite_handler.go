package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/service"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/util"
)

type FavoriteHandler struct {
	favorites *service.FavoriteService
}

type addFavoriteRequest struct {
	Hotel int64 `json:"hotel" validate:"required,gt=0"`
}

type FavoriteListResponse struct {
	Count   int64              `json:"count"`
	Limit   int                `json:"limit"`
	Offset  int                `json:"offset"`
	Results []FavoriteResponse `json:"results"`
}

func RegisterFavorites(e *echo.Echo, auth *service.AuthService, favorites *service.FavoriteService) {
	h := &FavoriteHandler{favorites: favorites}
	g := e.Group("/api/favorites", RequireAuth(auth))
	g.GET("", h.list)
	g.POST("/add", h.add)
	g.DELETE("/remove/:id", h.remove)
}

func (h *FavoriteHandler) list(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	limit, offset := parsePagination(c, 0, 0)
	result, err := h.favorites.List(c.Request().Context(), user.ID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]FavoriteResponse, 0, len(result.Items))
	for _, f := range result.Items {
		items = append(items, toFavoriteResponse(f))
	}
	return c.JSON(http.StatusOK, FavoriteListResponse{
		Count:   result.Total,
		Limit:   result.Limit,
		Offset:  result.Offset,
		Results: items,
	})
}

func (h *FavoriteHandler) add(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	var req addFavoriteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	fav, err := h.favorites.Add(c.Request().Context(), user.ID, req.Hotel)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, fav)
}

func (h *FavoriteHandler) remove(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, util.Error(service.ErrFavoriteNotFound.Error()))
	}
	if err := h.favorites.Remove(c.Request().Context(), user.ID, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
