//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
)

func setupDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("hotels"),
		tcpostgres.WithUsername("hotels"),
		tcpostgres.WithPassword("hotels"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	applied, err := Migrate(ctx, db)
	require.NoError(t, err)
	require.NotEmpty(t, applied)

	again, err := Migrate(ctx, db)
	require.NoError(t, err)
	require.Empty(t, again, "second run must be a no-op")
	return db
}

type catalogue struct {
	france, spain domain.Country
	paris, nice   domain.City
	ritz, budget  *domain.Hotel
	beach         *domain.Hotel
	alice, bob    *domain.User
}

func seedCatalogue(t *testing.T, db *sqlx.DB) catalogue {
	t.Helper()
	ctx := context.Background()
	locations := NewLocationRepo(db)
	hotels := NewHotelRepo(db)
	users := NewUserRepo(db)

	var c catalogue
	france, err := locations.CreateCountry(ctx, "France")
	require.NoError(t, err)
	spain, err := locations.CreateCountry(ctx, "Spain")
	require.NoError(t, err)
	paris, err := locations.CreateCity(ctx, france.ID, "Paris")
	require.NoError(t, err)
	nice, err := locations.CreateCity(ctx, france.ID, "Nice")
	require.NoError(t, err)
	c.france, c.spain, c.paris, c.nice = *france, *spain, *paris, *nice

	c.ritz, err = hotels.Create(ctx, domain.HotelInput{
		Name: "Ritz", Description: "Palace on the square", Address: "15 Place Vendome",
		CountryID: france.ID, CityID: &paris.ID, Stars: 5, PricePerNight: decimal.RequireFromString("900.00"),
	})
	require.NoError(t, err)
	c.budget, err = hotels.Create(ctx, domain.HotelInput{
		Name: "Budget Inn", Description: "Simple rooms with a spa corner", Address: "1 Rue Simple",
		CountryID: france.ID, CityID: &nice.ID, Stars: 2, PricePerNight: decimal.RequireFromString("60.50"),
	})
	require.NoError(t, err)
	c.beach, err = hotels.Create(ctx, domain.HotelInput{
		Name: "Beach House", Description: "Sea view", Address: "Playa 3",
		CountryID: spain.ID, Stars: 4, PricePerNight: decimal.RequireFromString("150.00"),
	})
	require.NoError(t, err)

	c.alice, err = users.Create(ctx, domain.NewUser{Username: "alice", Email: "alice@example.com", PasswordHash: []byte("h"), PasswordSalt: []byte("s")})
	require.NoError(t, err)
	c.bob, err = users.Create(ctx, domain.NewUser{Username: "bob", Email: "bob@example.com", PasswordHash: []byte("h"), PasswordSalt: []byte("s")})
	require.NoError(t, err)
	return c
}

func hotelNames(hotels []domain.Hotel) []string {
	names := make([]string, len(hotels))
	for i, h := range hotels {
		names[i] = h.Name
	}
	return names
}

func TestIntegrationHotelSearch(t *testing.T) {
	db := setupDB(t)
	c := seedCatalogue(t, db)
	ctx := context.Background()
	hotels := NewHotelRepo(db)
	reviews := NewReviewRepo(db)

	_, err := reviews.Create(ctx, &domain.Review{HotelID: c.budget.ID, UserID: c.alice.ID, Rating: 5, Comment: "great"})
	require.NoError(t, err)
	_, err = reviews.Create(ctx, &domain.Review{HotelID: c.budget.ID, UserID: c.bob.ID, Rating: 4, Comment: "good"})
	require.NoError(t, err)
	_, err = reviews.Create(ctx, &domain.Review{HotelID: c.ritz.ID, UserID: c.bob.ID, Rating: 3, Comment: "pricey"})
	require.NoError(t, err)

	min := decimal.NewFromInt(100)
	stars := 5
	cases := []struct {
		name   string
		filter domain.HotelListFilter
		want   []string
	}{
		{"all in id order", domain.HotelListFilter{}, []string{"Ritz", "Budget Inn", "Beach House"}},
		{"country id", domain.HotelListFilter{CountryID: &c.france.ID}, []string{"Ritz", "Budget Inn"}},
		{"country name", domain.HotelListFilter{CountryName: "spain"}, []string{"Beach House"}},
		{"city id", domain.HotelListFilter{CityID: &c.nice.ID}, []string{"Budget Inn"}},
		{"stars", domain.HotelListFilter{Stars: &stars}, []string{"Ritz"}},
		{"min price", domain.HotelListFilter{MinPrice: &min, Sort: domain.HotelSortPriceAsc}, []string{"Beach House", "Ritz"}},
		{"search description", domain.HotelListFilter{Search: "SPA"}, []string{"Budget Inn"}},
		{"search city name", domain.HotelListFilter{Search: "pari"}, []string{"Ritz"}},
		{"price desc", domain.HotelListFilter{Sort: domain.HotelSortPriceDesc}, []string{"Ritz", "Beach House", "Budget Inn"}},
		{"stars asc", domain.HotelListFilter{Sort: domain.HotelSortStarsAsc}, []string{"Budget Inn", "Beach House", "Ritz"}},
		{"rating desc", domain.HotelListFilter{Sort: domain.HotelSortRatingDesc}, []string{"Budget Inn", "Ritz", "Beach House"}},
		{"paged", domain.HotelListFilter{Limit: 1, Offset: 1}, []string{"Budget Inn"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := hotels.Search(ctx, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, hotelNames(got))
		})
	}

	total, err := hotels.Count(ctx, domain.HotelListFilter{CountryID: &c.france.ID, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	budget, err := hotels.FindByID(ctx, c.budget.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, budget.AverageRating)
	assert.Equal(t, int64(2), budget.ReviewCount)
	assert.Equal(t, "60.50", budget.PricePerNight.StringFixed(2))
}

func TestIntegrationUniquenessBackstops(t *testing.T) {
	db := setupDB(t)
	c := seedCatalogue(t, db)
	ctx := context.Background()

	reviews := NewReviewRepo(db)
	_, err := reviews.Create(ctx, &domain.Review{HotelID: c.ritz.ID, UserID: c.alice.ID, Rating: 4, Comment: "nice"})
	require.NoError(t, err)
	_, err = reviews.Create(ctx, &domain.Review{HotelID: c.ritz.ID, UserID: c.alice.ID, Rating: 1, Comment: "again"})
	assertUniqueViolation(t, err, "review_hotel_user_key")

	favorites := NewFavoriteRepo(db)
	_, err = favorites.Add(ctx, c.alice.ID, c.ritz.ID)
	require.NoError(t, err)
	exists, err := favorites.Exists(ctx, c.alice.ID, c.ritz.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	_, err = favorites.Add(ctx, c.alice.ID, c.ritz.ID)
	require.Error(t, err)

	users := NewUserRepo(db)
	_, err = users.Create(ctx, domain.NewUser{Username: "alice", Email: "other@example.com"})
	assertUniqueViolation(t, err, "user_account_username_key")
	_, err = users.Create(ctx, domain.NewUser{Username: "carol", Email: "alice@example.com"})
	assertUniqueViolation(t, err, "user_account_email_key")
}

func assertUniqueViolation(t *testing.T, err error, constraint string) {
	t.Helper()
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr), "expected postgres error, got %v", err)
	assert.Equal(t, "23505", pgErr.Code)
	assert.Equal(t, constraint, pgErr.ConstraintName)
}

func TestIntegrationOwnershipAndCascade(t *testing.T) {
	db := setupDB(t)
	c := seedCatalogue(t, db)
	ctx := context.Background()

	reviews := NewReviewRepo(db)
	review, err := reviews.Create(ctx, &domain.Review{HotelID: c.ritz.ID, UserID: c.alice.ID, Rating: 4, Comment: "nice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", review.Username)
	assert.ErrorIs(t, reviews.DeleteOwned(ctx, review.ID, c.bob.ID), sql.ErrNoRows)

	bookings := NewBookingRepo(db)
	booking, err := bookings.Create(ctx, &domain.Booking{
		HotelID:    c.ritz.ID,
		UserID:     c.alice.ID,
		CheckIn:    time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2030, 5, 4, 0, 0, 0, 0, time.UTC),
		Guests:     2,
		TotalPrice: decimal.RequireFromString("2700.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ritz", booking.HotelName)
	assert.Equal(t, "2030-05-01", booking.CheckIn.Format("2006-01-02"))
	_, err = bookings.FindOwned(ctx, booking.ID, c.bob.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, NewUserRepo(db).Delete(ctx, c.alice.ID))
	mine, err := bookings.ListByUser(ctx, c.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	require.NoError(t, NewLocationRepo(db).DeleteCountry(ctx, c.france.ID))
	_, err = NewHotelRepo(db).FindByID(ctx, c.ritz.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestIntegrationFixturesRoundTrip(t *testing.T) {
	db := setupDB(t)
	seedCatalogue(t, db)
	ctx := context.Background()
	store := NewFixtureStore(db)

	rows, err := store.Dump(ctx, "hotel")
	require.NoError(t, err)

	n, err := store.Load(ctx, "hotel", rows)
	require.NoError(t, err)
	assert.Zero(t, n, "existing ids must be skipped")

	_, err = db.ExecContext(ctx, `DELETE FROM hotel`)
	require.NoError(t, err)
	n, err = store.Load(ctx, "hotel", rows)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	created, err := NewHotelRepo(db).Create(ctx, domain.HotelInput{
		Name: "New", Description: "d", Address: "a", CountryID: 1, Stars: 3, PricePerNight: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Greater(t, created.ID, int64(3), "sequence must move past loaded ids")
}

func TestIntegrationPriceAndCityScenario(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	locations := NewLocationRepo(db)
	hotels := NewHotelRepo(db)

	italy, err := locations.CreateCountry(ctx, "Italy")
	require.NoError(t, err)
	france, err := locations.CreateCountry(ctx, "France")
	require.NoError(t, err)
	rome, err := locations.CreateCity(ctx, italy.ID, "Rome")
	require.NoError(t, err)
	paris, err := locations.CreateCity(ctx, france.ID, "Paris")
	require.NoError(t, err)

	_, err = hotels.Create(ctx, domain.HotelInput{Name: "A", Description: "d", Address: "a", CountryID: italy.ID, CityID: &rome.ID, Stars: 4, PricePerNight: decimal.NewFromInt(150)})
	require.NoError(t, err)
	_, err = hotels.Create(ctx, domain.HotelInput{Name: "B", Description: "d", Address: "b", CountryID: france.ID, CityID: &paris.ID, Stars: 5, PricePerNight: decimal.NewFromInt(90)})
	require.NoError(t, err)

	min := decimal.NewFromInt(100)
	max := decimal.NewFromInt(200)
	for name, tc := range map[string]struct {
		filter domain.HotelListFilter
		want   []string
	}{
		"min price":   {domain.HotelListFilter{MinPrice: &min}, []string{"A"}},
		"price range": {domain.HotelListFilter{MinPrice: &min, MaxPrice: &max}, []string{"A"}},
		"city search": {domain.HotelListFilter{Search: "Rome"}, []string{"A"}},
		"price asc":   {domain.HotelListFilter{Sort: domain.HotelSortPriceAsc}, []string{"B", "A"}},
	} {
		got, err := hotels.Search(ctx, tc.filter)
		require.NoError(t, err, name)
		assert.Equal(t, tc.want, hotelNames(got), name)
	}
}

func TestIntegrationPriceBoundsAndTieBreaks(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	locations := NewLocationRepo(db)
	hotels := NewHotelRepo(db)
	reviews := NewReviewRepo(db)
	users := NewUserRepo(db)

	italy, err := locations.CreateCountry(ctx, "Italy")
	require.NoError(t, err)

	create := func(name, price string, stars int) *domain.Hotel {
		t.Helper()
		h, err := hotels.Create(ctx, domain.HotelInput{
			Name: name, Description: "d", Address: "a", CountryID: italy.ID,
			Stars: stars, PricePerNight: decimal.RequireFromString(price),
		})
		require.NoError(t, err)
		return h
	}
	// Insertion order fixes ids; names deliberately sort against them.
	zeta := create("Zeta", "100.00", 3)
	alpha := create("Alpha", "200.00", 3)
	mid := create("Mid", "150.00", 4)
	create("Cheap", "99.99", 2)
	dear := create("Dear", "200.01", 5)
	create("Yankee", "150.00", 4)

	u1, err := users.Create(ctx, domain.NewUser{Username: "u1", Email: "u1@example.com", PasswordHash: []byte("h"), PasswordSalt: []byte("s")})
	require.NoError(t, err)
	u2, err := users.Create(ctx, domain.NewUser{Username: "u2", Email: "u2@example.com", PasswordHash: []byte("h"), PasswordSalt: []byte("s")})
	require.NoError(t, err)
	for _, r := range []domain.Review{
		{HotelID: zeta.ID, UserID: u1.ID, Rating: 4, Comment: "ok"},
		{HotelID: zeta.ID, UserID: u2.ID, Rating: 4, Comment: "ok"},
		{HotelID: alpha.ID, UserID: u1.ID, Rating: 5, Comment: "great"},
		{HotelID: alpha.ID, UserID: u2.ID, Rating: 3, Comment: "fine"},
		{HotelID: mid.ID, UserID: u1.ID, Rating: 5, Comment: "great"},
		{HotelID: dear.ID, UserID: u1.ID, Rating: 2, Comment: "meh"},
	} {
		_, err := reviews.Create(ctx, &r)
		require.NoError(t, err)
	}

	lo := decimal.NewFromInt(100)
	hi := decimal.NewFromInt(200)
	cases := []struct {
		name   string
		filter domain.HotelListFilter
		want   []string
	}{
		{"bounds inclusive", domain.HotelListFilter{MinPrice: &lo, MaxPrice: &hi}, []string{"Zeta", "Alpha", "Mid", "Yankee"}},
		{"min equals max", domain.HotelListFilter{MinPrice: &lo, MaxPrice: &lo}, []string{"Zeta"}},
		{"max only", domain.HotelListFilter{MaxPrice: &hi, Sort: domain.HotelSortPriceDesc}, []string{"Alpha", "Mid", "Yankee", "Zeta", "Cheap"}},
		{"price asc ties by id", domain.HotelListFilter{Sort: domain.HotelSortPriceAsc}, []string{"Cheap", "Zeta", "Mid", "Yankee", "Alpha", "Dear"}},
		{"price desc ties by id", domain.HotelListFilter{Sort: domain.HotelSortPriceDesc}, []string{"Dear", "Alpha", "Mid", "Yankee", "Zeta", "Cheap"}},
		{"stars asc ties by id", domain.HotelListFilter{Sort: domain.HotelSortStarsAsc}, []string{"Cheap", "Zeta", "Alpha", "Mid", "Yankee", "Dear"}},
		{"stars desc ties by id", domain.HotelListFilter{Sort: domain.HotelSortStarsDesc}, []string{"Dear", "Mid", "Yankee", "Zeta", "Alpha", "Cheap"}},
		{"rating desc ties by name", domain.HotelListFilter{Sort: domain.HotelSortRatingDesc}, []string{"Mid", "Alpha", "Zeta", "Dear", "Cheap", "Yankee"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := hotels.Search(ctx, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, hotelNames(got))
		})
	}
}
