package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/media"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/ports"
)

var (
	ErrHotelNotFound      = errors.New("hotel not found")
	ErrHotelImageNotFound = errors.New("hotel image not found")
)

const (
	maxHotelPageSize      = 100
	defaultFeaturedHotels = 6
	defaultMaxHotelImage  = int64(5 * 1024 * 1024)
)

var minPricePerNight = decimal.RequireFromString("0.01")

type HotelServiceConfig struct {
	Bucket            string
	PublicBaseURL     string
	MaxImageBytes     int64
	ImageMaxDimension int
	ImageProcessor    media.Processor
}

type HotelService struct {
	hotels    ports.HotelRepository
	images    ports.HotelImageRepository
	reviews   ports.ReviewRepository
	locations ports.LocationRepository
	storage   ports.ObjectStorage

	bucket            string
	publicBase        string
	maxImageBytes     int64
	imageMaxDimension int
	imageProcessor    media.Processor
}

type HotelSearchResult struct {
	Items  []domain.Hotel
	Total  int64
	Limit  int
	Offset int
}

type HotelDetail struct {
	Hotel   *domain.Hotel
	Reviews []domain.Review
}

func NewHotelService(
	hotels ports.HotelRepository,
	images ports.HotelImageRepository,
	reviews ports.ReviewRepository,
	locations ports.LocationRepository,
	storage ports.ObjectStorage,
	cfg HotelServiceConfig,
) *HotelService {
	maxBytes := cfg.MaxImageBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxHotelImage
	}
	maxDimension := cfg.ImageMaxDimension
	if maxDimension <= 0 {
		maxDimension = media.DefaultMaxDimension
	}
	return &HotelService{
		hotels:            hotels,
		images:            images,
		reviews:           reviews,
		locations:         locations,
		storage:           storage,
		bucket:            strings.TrimSpace(cfg.Bucket),
		publicBase:        strings.TrimRight(cfg.PublicBaseURL, "/"),
		maxImageBytes:     maxBytes,
		imageMaxDimension: maxDimension,
		imageProcessor:    cfg.ImageProcessor,
	}
}

// Search runs the filter pipeline. A zero limit returns every match.
func (s *HotelService) Search(ctx context.Context, filter domain.HotelListFilter) (*HotelSearchResult, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.CountryName = strings.TrimSpace(filter.CountryName)
	filter.CityName = strings.TrimSpace(filter.CityName)
	if filter.Limit < 0 {
		filter.Limit = 0
	}
	if filter.Limit > maxHotelPageSize {
		filter.Limit = maxHotelPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	var (
		items []domain.Hotel
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.hotels.Search(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.hotels.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.attachMainImages(ctx, items); err != nil {
		return nil, err
	}
	return &HotelSearchResult{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// Get returns the hotel with its images and reviews, newest review first.
func (s *HotelService) Get(ctx context.Context, id int64) (*HotelDetail, error) {
	hotel, err := s.hotels.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}

	var (
		images  []domain.HotelImage
		reviews []domain.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		images, err = s.images.ListByHotel(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = s.reviews.ListByHotel(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if images == nil {
		images = []domain.HotelImage{}
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	hotel.Images = images
	if len(images) > 0 {
		main := images[0].URL
		hotel.MainImage = &main
	}
	return &HotelDetail{Hotel: hotel, Reviews: reviews}, nil
}

func (s *HotelService) Featured(ctx context.Context, n int) ([]domain.Hotel, error) {
	if n <= 0 {
		n = defaultFeaturedHotels
	}
	hotels, err := s.hotels.Random(ctx, n)
	if err != nil {
		return nil, err
	}
	if err := s.attachMainImages(ctx, hotels); err != nil {
		return nil, err
	}
	return hotels, nil
}

func (s *HotelService) attachMainImages(ctx context.Context, hotels []domain.Hotel) error {
	if len(hotels) == 0 {
		return nil
	}
	ids := make([]int64, len(hotels))
	for i := range hotels {
		ids[i] = hotels[i].ID
	}
	mains, err := s.images.MainImages(ctx, ids)
	if err != nil {
		return err
	}
	for i := range hotels {
		if url, ok := mains[hotels[i].ID]; ok {
			u := url
			hotels[i].MainImage = &u
		}
	}
	return nil
}

func (s *HotelService) Create(ctx context.Context, in domain.HotelInput) (*domain.Hotel, error) {
	in, err := s.validateHotelInput(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.hotels.Create(ctx, in)
}

func (s *HotelService) Update(ctx context.Context, id int64, in domain.HotelInput) (*domain.Hotel, error) {
	in, err := s.validateHotelInput(ctx, in)
	if err != nil {
		return nil, err
	}
	hotel, err := s.hotels.Update(ctx, id, in)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return hotel, nil
}

// Delete removes the hotel, cascading to its images, reviews, bookings and
// favorites, then drops the stored image objects.
func (s *HotelService) Delete(ctx context.Context, id int64) error {
	images, err := s.images.ListByHotel(ctx, id)
	if err != nil {
		return err
	}
	if err := s.hotels.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrHotelNotFound
		}
		return err
	}
	var errs []error
	for _, img := range images {
		if err := s.storage.Remove(ctx, s.bucket, img.ObjectKey); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("hotel deleted, image cleanup failed: %w", errors.Join(errs...))
	}
	return nil
}

func (s *HotelService) AddImage(ctx context.Context, hotelID int64, upload media.Upload) (*domain.HotelImage, error) {
	if _, err := s.hotels.FindByID(ctx, hotelID); err != nil {
		if isNotFound(err) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}

	prepared, err := prepareImageForUpload(ctx, s.imageProcessor, upload, s.maxImageBytes, s.imageMaxDimension)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("hotels/%d/%s%s", hotelID, uuid.NewString(), media.ExtensionFor(prepared.contentType))
	url, err := s.storage.Upload(ctx, s.bucket, objectKey, prepared.contentType, prepared.reader, prepared.size)
	if err != nil {
		return nil, fmt.Errorf("upload hotel image: %w", err)
	}
	if s.publicBase != "" {
		url = s.publicBase + "/" + s.bucket + "/" + objectKey
	}

	image, err := s.images.Create(ctx, hotelID, objectKey, url)
	if err != nil {
		_ = s.storage.Remove(ctx, s.bucket, objectKey)
		return nil, err
	}
	return image, nil
}

func (s *HotelService) DeleteImage(ctx context.Context, hotelID, imageID int64) error {
	image, err := s.images.Find(ctx, hotelID, imageID)
	if err != nil {
		if isNotFound(err) {
			return ErrHotelImageNotFound
		}
		return err
	}
	if err := s.storage.Remove(ctx, s.bucket, image.ObjectKey); err != nil {
		return fmt.Errorf("remove hotel image object: %w", err)
	}
	if err := s.images.Delete(ctx, image.ID); err != nil {
		if isNotFound(err) {
			return ErrHotelImageNotFound
		}
		return err
	}
	return nil
}

func (s *HotelService) validateHotelInput(ctx context.Context, in domain.HotelInput) (domain.HotelInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Address = strings.TrimSpace(in.Address)

	switch {
	case in.Name == "":
		return in, newValidationError("name", "name is required")
	case len([]rune(in.Name)) > 200:
		return in, newValidationError("name", "name must be at most 200 characters")
	case in.Description == "":
		return in, newValidationError("description", "description is required")
	case in.Address == "":
		return in, newValidationError("address", "address is required")
	case len([]rune(in.Address)) > 255:
		return in, newValidationError("address", "address must be at most 255 characters")
	case in.Stars < 1 || in.Stars > 5:
		return in, newValidationError("stars", "stars must be between 1 and 5")
	case in.PricePerNight.LessThan(minPricePerNight):
		return in, newValidationError("price_per_night", "price per night must be at least 0.01")
	}
	in.PricePerNight = in.PricePerNight.Round(2)

	if _, err := s.locations.FindCountry(ctx, in.CountryID); err != nil {
		if isNotFound(err) {
			return in, newValidationError("country", "country not found")
		}
		return in, err
	}
	if in.CityID != nil {
		city, err := s.locations.FindCity(ctx, *in.CityID)
		if err != nil {
			if isNotFound(err) {
				return in, newValidationError("city", "city not found")
			}
			return in, err
		}
		if city.CountryID != in.CountryID {
			return in, newValidationError("city", "city does not belong to the selected country")
		}
	}
	return in, nil
}
