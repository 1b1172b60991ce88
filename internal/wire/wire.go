package wire

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"time"

	"meeting-scheduler/internal/adaptor"
	"meeting-scheduler/internal/data/repository"
	"meeting-scheduler/internal/notification"
	"meeting-scheduler/internal/scheduling"
	"meeting-scheduler/internal/usecase"
	"meeting-scheduler/pkg/database"
	"meeting-scheduler/pkg/middleware"
	"meeting-scheduler/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App menyimpan router dan komponen yang perlu di-shutdown
type App struct {
	Router     *chi.Mux
	Dispatcher *notification.Dispatcher
	redis      *redis.Client
}

// Shutdown drains queued emails and closes the Redis client.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Dispatcher.Shutdown(ctx)
	if a.redis != nil {
		if cerr := a.redis.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, db database.PgxIface, config *utils.Config, logger *zap.Logger) (*App, error) {
	settings, err := schedulingSettings(config.Scheduling, logger)
	if err != nil {
		return nil, err
	}

	proxies, err := middleware.ParseTrustedProxies(config.RateLimit.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}

	// Email dikirim di background setelah commit
	sender := notification.NewSMTPSender(
		config.Email.Host,
		config.Email.Port,
		config.Email.User,
		config.Email.Password,
		config.Email.From,
	)
	renderer := notification.NewRenderer(settings.Location(), config.Email.MeetingLink)
	dispatcher := notification.NewDispatcher(
		renderer,
		sender,
		sender.From(),
		config.Notify.Workers,
		config.Notify.QueueSize,
		logger,
	)
	dispatcher.Start()

	tx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return database.RunInTx(ctx, db, fn)
	}

	service := usecase.NewService(repo, tx, dispatcher, settings, config, logger)
	handler := adaptor.NewHandler(service, logger)

	limiter, rdb := rateLimiter(config, logger)

	app := &App{
		Router:     setupRouter(handler, repo, limiter, proxies, config, logger),
		Dispatcher: dispatcher,
		redis:      rdb,
	}
	return app, nil
}

func schedulingSettings(cfg utils.SchedulingConfig, logger *zap.Logger) (scheduling.Settings, error) {
	policy, err := scheduling.ParseOverlapPolicy(cfg.OverlapPolicy)
	if err != nil {
		return scheduling.Settings{}, fmt.Errorf("SLOT_OVERLAP_POLICY: %w", err)
	}

	loc, ok := scheduling.ResolveLocation(cfg.DefaultTimezone, time.UTC)
	if !ok && cfg.DefaultTimezone != "" {
		logger.Warn("Unknown DEFAULT_TIMEZONE, using UTC", zap.String("timezone", cfg.DefaultTimezone))
	}

	logger.Info("Slot resolver configured",
		zap.String("default_timezone", loc.String()),
		zap.String("overlap_policy", string(policy)))

	return scheduling.Settings{
		DefaultLocation: loc,
		Now:             time.Now,
		Policy:          policy,
	}, nil
}

// rateLimiter pakai Redis kalau REDIS_ADDR di-set, selain itu in-memory
func rateLimiter(config *utils.Config, logger *zap.Logger) (middleware.Limiter, *redis.Client) {
	if config.Redis.Addr == "" {
		logger.Info("REDIS_ADDR not set, using in-memory rate limiter")
		return middleware.NewMemoryLimiter(config.RateLimit.Window), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	logger.Info("Using Redis rate limiter", zap.String("addr", config.Redis.Addr))
	return middleware.NewRedisLimiter(rdb, config.RateLimit.Window), rdb
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	limiter middleware.Limiter,
	proxies []netip.Prefix,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.RealIP(proxies))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))

	auth := middleware.AuthSession(config.JWT.Secret, repo.Session, logger)
	public := middleware.RateLimit(limiter, config.RateLimit.Limit, "public", logger)

	// Apply routes
	wireAuth(r, handler.Auth, auth, public)
	wireUser(r, handler.User, auth)
	wireMeetingPage(r, handler.MeetingPage, auth, public)
	wireAvailability(r, handler.Availability, auth)
	wireBooking(r, handler.Booking, handler.Slot, auth, public)
	wireCustomer(r, handler.Customer, auth)
	wireAnalytics(r, handler.Analytics, auth)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
