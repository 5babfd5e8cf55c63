package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/ports"
)

var (
	ErrCountryNotFound = errors.New("country not found")
	ErrCityNotFound    = errors.New("city not found")
)

const (
	cacheKeyCountries = "locations:countries"
	cacheKeyAllCities = "locations:cities:all"
	cacheKeyCities    = "locations:cities:"

	maxLocationNameLength = 100
)

// LocationService serves countries and cities. Reads go through the cache when
// one is configured; cache failures fall back to the store.
type LocationService struct {
	locations ports.LocationRepository
	cache     ports.Cache
	ttl       time.Duration
}

func NewLocationService(locations ports.LocationRepository, cache ports.Cache, ttl time.Duration) *LocationService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &LocationService{locations: locations, cache: cache, ttl: ttl}
}

func (s *LocationService) ListCountries(ctx context.Context) ([]domain.Country, error) {
	var countries []domain.Country
	if s.cached(ctx, cacheKeyCountries, &countries) {
		return countries, nil
	}
	countries, err := s.locations.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, cacheKeyCountries, countries)
	return countries, nil
}

func (s *LocationService) ListCities(ctx context.Context, countryID *int64) ([]domain.City, error) {
	key := cacheKeyAllCities
	if countryID != nil {
		key = cacheKeyCities + strconv.FormatInt(*countryID, 10)
	}
	var cities []domain.City
	if s.cached(ctx, key, &cities) {
		return cities, nil
	}
	cities, err := s.locations.ListCities(ctx, countryID)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, cities)
	return cities, nil
}

func (s *LocationService) CreateCountry(ctx context.Context, name string) (*domain.Country, error) {
	name, err := normalizeLocationName(name)
	if err != nil {
		return nil, err
	}
	country, err := s.locations.CreateCountry(ctx, name)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyCountries)
	return country, nil
}

func (s *LocationService) RenameCountry(ctx context.Context, id int64, name string) (*domain.Country, error) {
	name, err := normalizeLocationName(name)
	if err != nil {
		return nil, err
	}
	country, err := s.locations.RenameCountry(ctx, id, name)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCountryNotFound
		}
		return nil, err
	}
	s.invalidate(ctx, cacheKeyCountries, cacheKeyAllCities, cacheKeyCities+strconv.FormatInt(id, 10))
	return country, nil
}

// DeleteCountry removes the country together with its cities and hotels.
func (s *LocationService) DeleteCountry(ctx context.Context, id int64) error {
	if err := s.locations.DeleteCountry(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrCountryNotFound
		}
		return err
	}
	s.invalidate(ctx, cacheKeyCountries, cacheKeyAllCities, cacheKeyCities+strconv.FormatInt(id, 10))
	return nil
}

func (s *LocationService) CreateCity(ctx context.Context, countryID int64, name string) (*domain.City, error) {
	name, err := normalizeLocationName(name)
	if err != nil {
		return nil, err
	}
	if _, err := s.locations.FindCountry(ctx, countryID); err != nil {
		if isNotFound(err) {
			return nil, ErrCountryNotFound
		}
		return nil, err
	}
	city, err := s.locations.CreateCity(ctx, countryID, name)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyAllCities, cacheKeyCities+strconv.FormatInt(countryID, 10))
	return city, nil
}

func (s *LocationService) RenameCity(ctx context.Context, id int64, name string) (*domain.City, error) {
	name, err := normalizeLocationName(name)
	if err != nil {
		return nil, err
	}
	city, err := s.locations.RenameCity(ctx, id, name)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCityNotFound
		}
		return nil, err
	}
	s.invalidate(ctx, cacheKeyAllCities, cacheKeyCities+strconv.FormatInt(city.CountryID, 10))
	return city, nil
}

func (s *LocationService) DeleteCity(ctx context.Context, id int64) error {
	city, err := s.locations.FindCity(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrCityNotFound
		}
		return err
	}
	if err := s.locations.DeleteCity(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrCityNotFound
		}
		return err
	}
	s.invalidate(ctx, cacheKeyAllCities, cacheKeyCities+strconv.FormatInt(city.CountryID, 10))
	return nil
}

func (s *LocationService) cached(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dst)
	return err == nil && ok
}

func (s *LocationService) store(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, key, value, s.ttl)
}

func (s *LocationService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, keys...)
}

func normalizeLocationName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", newValidationError("name", "name is required")
	}
	if len([]rune(name)) > maxLocationNameLength {
		return "", newValidationError("name", "name must be at most 100 characters")
	}
	return name, nil
}
