package http

import (
	"time"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/service"
)

type HotelListItem struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	CountryName   string  `json:"country_name"`
	CityName      *string `json:"city_name"`
	Stars         int     `json:"stars"`
	PricePerNight string  `json:"price_per_night" example:"150.00"`
	MainImage     *string `json:"main_image"`
	AverageRating float64 `json:"average_rating" example:"4.5"`
	ReviewCount   int64   `json:"review_count"`
}

type HotelListResponse struct {
	Count   int64           `json:"count"`
	Limit   int             `json:"limit,omitempty"`
	Offset  int             `json:"offset,omitempty"`
	Results []HotelListItem `json:"results"`
}

type HotelImageResponse struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

type ReviewResponse struct {
	ID        int64     `json:"id"`
	Hotel     int64     `json:"hotel"`
	HotelName string    `json:"hotel_name,omitempty"`
	User      string    `json:"user"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type HotelDetailResponse struct {
	ID            int64                `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Address       string               `json:"address"`
	Country       int64                `json:"country"`
	CountryName   string               `json:"country_name"`
	City          *int64               `json:"city"`
	CityName      *string              `json:"city_name"`
	Stars         int                  `json:"stars"`
	PricePerNight string               `json:"price_per_night"`
	CreatedAt     time.Time            `json:"created_at"`
	MainImage     *string              `json:"main_image"`
	Images        []HotelImageResponse `json:"images"`
	Reviews       []ReviewResponse     `json:"reviews"`
	AverageRating float64              `json:"average_rating"`
	ReviewCount   int64                `json:"review_count"`
}

type BookingResponse struct {
	ID         int64     `json:"id"`
	Hotel      int64     `json:"hotel"`
	HotelName  string    `json:"hotel_name"`
	CheckIn    string    `json:"check_in" example:"2030-05-01"`
	CheckOut   string    `json:"check_out" example:"2030-05-04"`
	Nights     int       `json:"nights"`
	Guests     int       `json:"guests"`
	TotalPrice string    `json:"total_price" example:"450.00"`
	CreatedAt  time.Time `json:"created_at"`
}

type FavoriteResponse struct {
	ID           int64     `json:"id"`
	Hotel        int64     `json:"hotel"`
	HotelName    string    `json:"hotel_name"`
	HotelPrice   string    `json:"hotel_price"`
	HotelStars   int       `json:"hotel_stars"`
	HotelCity    *string   `json:"hotel_city"`
	HotelCountry string    `json:"hotel_country"`
	HotelImage   *string   `json:"hotel_image"`
	CreatedAt    time.Time `json:"created_at"`
}

const dateLayout = "2006-01-02"

func toHotelListItem(h domain.Hotel) HotelListItem {
	return HotelListItem{
		ID:            h.ID,
		Name:          h.Name,
		CountryName:   h.CountryName,
		CityName:      h.CityName,
		Stars:         h.Stars,
		PricePerNight: h.PricePerNight.StringFixed(2),
		MainImage:     h.MainImage,
		AverageRating: h.AverageRating,
		ReviewCount:   h.ReviewCount,
	}
}

func toHotelListItems(hotels []domain.Hotel) []HotelListItem {
	items := make([]HotelListItem, 0, len(hotels))
	for _, h := range hotels {
		items = append(items, toHotelListItem(h))
	}
	return items
}

func toReviewResponse(r domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		Hotel:     r.HotelID,
		HotelName: r.HotelName,
		User:      r.Username,
		UserID:    r.UserID.String(),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func toReviewResponses(reviews []domain.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}
	return out
}

func toHotelDetail(d *service.HotelDetail) HotelDetailResponse {
	h := d.Hotel
	images := make([]HotelImageResponse, 0, len(h.Images))
	for _, img := range h.Images {
		images = append(images, HotelImageResponse{ID: img.ID, Image: img.URL})
	}
	return HotelDetailResponse{
		ID:            h.ID,
		Name:          h.Name,
		Description:   h.Description,
		Address:       h.Address,
		Country:       h.CountryID,
		CountryName:   h.CountryName,
		City:          h.CityID,
		CityName:      h.CityName,
		Stars:         h.Stars,
		PricePerNight: h.PricePerNight.StringFixed(2),
		CreatedAt:     h.CreatedAt,
		MainImage:     h.MainImage,
		Images:        images,
		Reviews:       toReviewResponses(d.Reviews),
		AverageRating: h.AverageRating,
		ReviewCount:   h.ReviewCount,
	}
}

func toBookingResponse(b domain.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		Hotel:      b.HotelID,
		HotelName:  b.HotelName,
		CheckIn:    b.CheckIn.Format(dateLayout),
		CheckOut:   b.CheckOut.Format(dateLayout),
		Nights:     service.Nights(b.CheckIn, b.CheckOut),
		Guests:     b.Guests,
		TotalPrice: b.TotalPrice.StringFixed(2),
		CreatedAt:  b.CreatedAt,
	}
}

func toBookingResponses(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}

func toFavoriteResponse(f domain.FavoriteListItem) FavoriteResponse {
	return FavoriteResponse{
		ID:           f.ID,
		Hotel:        f.HotelID,
		HotelName:    f.HotelName,
		HotelPrice:   f.PricePerNight.StringFixed(2),
		HotelStars:   f.Stars,
		HotelCity:    f.CityName,
		HotelCountry: f.CountryName,
		HotelImage:   f.MainImage,
		CreatedAt:    f.CreatedAt,
	}
}
