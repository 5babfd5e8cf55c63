package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/service"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/util"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "hotel", "search", "login", "register", "profile"}

// pageRenderer holds one template set per page, each sharing the layout.
type pageRenderer struct {
	pages map[string]*template.Template
}

func newPageRenderer() (*pageRenderer, error) {
	funcs := template.FuncMap{
		"price": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"rating": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	}
	r := &pageRenderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *pageRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

type PageHandler struct {
	hotels    *service.HotelService
	locations *service.LocationService
}

type searchPage struct {
	Title     string
	Hotels    []domain.Hotel
	Total     int64
	Countries []domain.Country
	Query     map[string]string
	Error     string
}

// RegisterPages installs the template renderer and the server-rendered routes.
func RegisterPages(e *echo.Echo, hotels *service.HotelService, locations *service.LocationService) error {
	renderer, err := newPageRenderer()
	if err != nil {
		return err
	}
	e.Renderer = renderer
	h := &PageHandler{hotels: hotels, locations: locations}

	e.GET("/", h.home)
	e.GET("/hotel/:id", h.hotel)
	e.GET("/search", h.search)
	e.GET("/login", h.static("login", "Login"))
	e.GET("/register", h.static("register", "Register"))
	e.GET("/profile", h.static("profile", "My profile"))
	return nil
}

func (h *PageHandler) home(c echo.Context) error {
	hotels, err := h.hotels.Featured(c.Request().Context(), 0)
	if err != nil {
		requestLogger(c).Error().Err(err).Msg("load featured hotels")
		hotels = []domain.Hotel{}
	}
	return c.Render(http.StatusOK, "home", echo.Map{"Title": "Find your hotel", "Hotels": hotels})
}

func (h *PageHandler) hotel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusNotFound, util.Error(service.ErrHotelNotFound.Error()))
	}
	detail, err := h.hotels.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Render(http.StatusOK, "hotel", echo.Map{
		"Title":   detail.Hotel.Name,
		"Hotel":   detail.Hotel,
		"Reviews": detail.Reviews,
		"Ratings": []int{5, 4, 3, 2, 1},
	})
}

func (h *PageHandler) search(c echo.Context) error {
	ctx := c.Request().Context()
	page := searchPage{Title: "Search hotels", Query: map[string]string{}}
	for _, key := range []string{"search", "country", "city", "stars", "min_price", "max_price", "sort_by"} {
		page.Query[key] = c.QueryParam(key)
	}
	if countries, err := h.locations.ListCountries(ctx); err == nil {
		page.Countries = countries
	}

	filter, err := parseHotelListFilter(c)
	if err != nil {
		page.Error = err.Error()
		return c.Render(http.StatusBadRequest, "search", page)
	}
	result, err := h.hotels.Search(ctx, filter)
	if err != nil {
		return respondError(c, err)
	}
	page.Hotels = result.Items
	page.Total = result.Total
	return c.Render(http.StatusOK, "search", page)
}

func (h *PageHandler) static(name, title string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, name, echo.Map{"Title": title})
	}
}
