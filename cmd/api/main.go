package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/config"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/logging"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/media"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/metrics"
	minioRepo "github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/minio"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/postgres"
	redisRepo "github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/redis"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/service"
	httpx "github.com/njprem/Hotel_booking_APP_BackEnd/internal/transport/http"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/util"
)

func main() {
	cfg := config.Load()

	logger, closeLogs, err := newLogger(cfg)
	if err != nil {
		fallback := logging.NewLogger(cfg.AppEnv)
		fallback.Fatal().Err(err).Msg("logstash writer")
	}
	defer closeLogs()

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// newLogger builds the process logger, mirroring to Logstash when configured.
// The returned func flushes and closes the mirror.
func newLogger(cfg config.Config) (zerolog.Logger, func(), error) {
	if cfg.LogstashTCPAddr == "" {
		return logging.NewLogger(cfg.AppEnv), func() {}, nil
	}
	lw, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	var extra []io.Writer
	extra = append(extra, lw)
	return logging.NewLogger(cfg.AppEnv, extra...), func() { _ = lw.Close() }, nil
}

func run(cfg config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := postgres.Migrate(ctx, db)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		logger.Info().Strs("migrations", applied).Msg("schema migrated")
	}

	minioClient, err := minioRepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		return err
	}
	storage := minioRepo.NewStorage(minioClient)
	if err := storage.EnsureBucket(ctx, cfg.MinIOBucketHotels); err != nil {
		return err
	}

	var cache ports.Cache
	if cfg.RedisAddr != "" {
		rc := redisRepo.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, reference data cache disabled")
		} else {
			cache = rc
		}
	}

	userRepo := postgres.NewUserRepo(db)
	roleRepo := postgres.NewRoleRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	locationRepo := postgres.NewLocationRepo(db)
	hotelRepo := postgres.NewHotelRepo(db)
	imageRepo := postgres.NewHotelImageRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)
	bookingRepo := postgres.NewBookingRepo(db)
	favoriteRepo := postgres.NewFavoriteRepo(db)

	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authSvc := service.NewAuthService(userRepo, roleRepo, sessionRepo, jwtManager, cfg.GoogleAudience)
	locationSvc := service.NewLocationService(locationRepo, cache, cfg.CacheTTL)
	hotelSvc := service.NewHotelService(hotelRepo, imageRepo, reviewRepo, locationRepo, storage, service.HotelServiceConfig{
		Bucket:            cfg.MinIOBucketHotels,
		PublicBaseURL:     cfg.MinIOPublicURL,
		MaxImageBytes:     cfg.HotelImageMaxBytes,
		ImageMaxDimension: cfg.HotelImageMaxDimension,
		ImageProcessor:    media.NewDecodeProcessor(cfg.HotelImageMaxDimension),
	})
	reviewSvc := service.NewReviewService(reviewRepo, hotelRepo)
	bookingSvc := service.NewBookingService(bookingRepo, hotelRepo, cfg.BookingLocation)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, hotelRepo)

	e := httpx.NewRouter(httpx.RouterConfig{
		AllowOrigins:   cfg.AllowOrigins,
		Logger:         logger,
		MetricsEnabled: cfg.MetricsEnabled,
	})
	httpx.RegisterHealth(e, db)
	if cfg.MetricsEnabled {
		httpx.RegisterMetrics(e, metrics.MetricsHandler(metrics.InitRegistry()))
	}
	httpx.RegisterSwagger(e, cfg.SwaggerPath)
	httpx.RegisterAuth(e, authSvc, httpx.AuthRateLimit{PerSecond: cfg.AuthRateLimit, Burst: cfg.AuthRateBurst})
	httpx.RegisterLocations(e, locationSvc)
	httpx.RegisterHotels(e, hotelSvc)
	httpx.RegisterReviews(e, authSvc, reviewSvc)
	httpx.RegisterBookings(e, authSvc, bookingSvc)
	httpx.RegisterFavorites(e, authSvc, favoriteSvc)
	httpx.RegisterAdmin(e, httpx.AdminServices{
		Auth:      authSvc,
		Locations: locationSvc,
		Hotels:    hotelSvc,
		Reviews:   reviewSvc,
		Bookings:  bookingSvc,
	})
	if err := httpx.RegisterPages(e, hotelSvc, locationSvc); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info().Msg("shutting down")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

