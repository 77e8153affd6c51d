package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	httpapi "foodhub/cart-svc/internal/api/http"
	"foodhub/cart-svc/internal/pricing"
	"foodhub/cart-svc/internal/service"
	"foodhub/cart-svc/internal/storage"
	"foodhub/config"
)

func main() {
	logger := config.NewLogger(config.Log{Level: "info"})

	if err := run(logger); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func run(logger *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger = config.NewLogger(cfg.Log)
	log := logger.WithField("service", "cart-svc")

	log.Info("starting cart service")
	defer log.Info("shutdown complete")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	repo := storage.NewRepository(store)
	if cfg.Store.Seed {
		seeded, err := storage.SeedOffers(ctx, repo, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("seeding offers: %w", err)
		}
		log.WithField("count", seeded).Info("offers seeded")
	}

	var cache service.RestaurantCache = storage.NewMemoryRestaurantCache(cfg.Redis.RestaurantTTL)
	if cfg.Redis.Enabled {
		client := config.MustInitRedis(cfg.Redis, log)
		defer client.Close()
		cache = storage.NewRedisRestaurantCache(client, cfg.Redis.RestaurantTTL, log)
	}

	offers := service.NewOfferService(repo)

	var publisher service.EventPublisher
	if cfg.Kafka.Enabled {
		writer := config.NewKafkaWriter(cfg.Kafka)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)

		reader := config.NewKafkaReader(cfg.Kafka)
		defer reader.Close()
		go service.NewRedemptionConsumer(reader, offers, log).Start(ctx)
	} else {
		publisher = service.DirectPublisher{Consumer: service.NewRedemptionConsumer(nil, offers, log)}
	}

	fee, taxRate, err := cfg.Pricing.Amounts()
	if err != nil {
		return err
	}
	rules := pricing.Rules{TaxRate: taxRate, DeliveryFee: fee}

	limiter := httpapi.NewLimiter(cfg.RateLimit.Burst, cfg.RateLimit.Interval, cfg.RateLimit.Expiry)
	go limiter.Run(ctx)

	handler := buildHandler(repo, cache, offers, publisher, rules, cfg.QR.BaseURL, log)
	handler.Limiter = limiter

	lw := logger.Writer()
	defer lw.Close()

	api := http.Server{
		Handler:      httpapi.NewRouter(handler, log),
		Addr:         cfg.Web.Address,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     stdlog.New(lw, "", 0),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Infof("starting api router at %s", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(shutdownCtx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}

func buildHandler(
	repo *storage.Repository,
	cache service.RestaurantCache,
	offers *service.OfferService,
	publisher service.EventPublisher,
	rules pricing.Rules,
	qrBaseURL string,
	log logrus.FieldLogger,
) *httpapi.Handler {
	restaurants := service.NewRestaurantService(repo, cache, log)
	resolver := service.NewMenuResolver(repo, restaurants)
	carts := service.NewCartService(repo, resolver, publisher, rules, log)
	coupons := service.NewCouponService(repo)

	return &httpapi.Handler{
		Carts:       carts,
		Coupons:     coupons,
		Offers:      offers,
		Restaurants: restaurants,
		Menu:        service.NewMenuService(repo, resolver),
		Orders: service.NewOrderService(repo, repo, carts, coupons,
			service.DefaultQRGenerator{BaseURL: qrBaseURL}, publisher, rules, log),
		Log: log,
	}
}

func openStore(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (storage.DocumentStore, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db := config.MustInitPostgres(cfg.DB, log)
		store := storage.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return store, func() { db.Close() }, nil

	case config.DriverMongo:
		client := config.MustInitMongo(cfg.Mongo, log)
		store := storage.NewMongoStore(client.Database(cfg.Mongo.Database))
		return store, func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		log.Warn("using in-memory store, data is lost on restart")
		return storage.NewMemoryStore(), func() {}, nil
	}
}
