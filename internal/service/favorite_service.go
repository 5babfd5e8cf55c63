package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/metrics"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/ports"
)

var (
	ErrFavoriteAlreadyExists = errors.New("hotel already in favorites")
	ErrFavoriteNotFound      = errors.New("favorite not found")
)

type FavoriteService struct {
	favorites ports.FavoriteRepository
	hotels    ports.HotelRepository
}

type FavoriteListResult struct {
	Items  []domain.FavoriteListItem
	Total  int64
	Limit  int
	Offset int
}

func NewFavoriteService(favoriteRepo ports.FavoriteRepository, hotelRepo ports.HotelRepository) *FavoriteService {
	return &FavoriteService{
		favorites: favoriteRepo,
		hotels:    hotelRepo,
	}
}

func (s *FavoriteService) Add(ctx context.Context, userID uuid.UUID, hotelID int64) (*domain.Favorite, error) {
	if _, err := s.hotels.FindByID(ctx, hotelID); err != nil {
		if isNotFound(err) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}

	exists, err := s.favorites.Exists(ctx, userID, hotelID)
	if err != nil {
		return nil, err
	}
	if exists {
		metrics.ObserveConflict("favorite", "precheck")
		return nil, ErrFavoriteAlreadyExists
	}

	favorite, err := s.favorites.Add(ctx, userID, hotelID)
	if err != nil {
		switch {
		case isNotFound(err), isUniqueViolation(err):
			metrics.ObserveConflict("favorite", "constraint")
			return nil, ErrFavoriteAlreadyExists
		default:
			return nil, err
		}
	}
	return favorite, nil
}

// Remove deletes one of the caller's favorites by its id.
func (s *FavoriteService) Remove(ctx context.Context, userID uuid.UUID, favoriteID int64) error {
	if err := s.favorites.RemoveOwned(ctx, favoriteID, userID); err != nil {
		if isNotFound(err) {
			return ErrFavoriteNotFound
		}
		return err
	}
	return nil
}

func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID, limit, offset int) (*FavoriteListResult, error) {
	nLimit, nOffset := normalizeOpenPagination(limit, offset)

	items, err := s.favorites.ListByUser(ctx, userID, nLimit, nOffset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.FavoriteListItem{}
	}

	total, err := s.favorites.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &FavoriteListResult{
		Items:  items,
		Total:  total,
		Limit:  nLimit,
		Offset: nOffset,
	}, nil
}
