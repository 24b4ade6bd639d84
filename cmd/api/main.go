package main

import (
	"time"

	"mounti/internal/auth"
	"mounti/internal/bookings"
	"mounti/internal/events"
	"mounti/internal/notifications"
	"mounti/internal/store"
	"mounti/internal/trips"
	"mounti/pkg/app"
	"mounti/pkg/config"
)

const sessionCleanupInterval = 5 * time.Minute

func main() {
	cfg := config.Load("api")
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	userRepo := store.NewMongoUserRepository(cfg)
	tripRepo := store.NewMongoTripRepository(cfg)
	bookingRepo := store.NewMongoBookingRepository(cfg)
	notificationRepo := store.NewMongoNotificationRepository(cfg)

	var sessionStore auth.SessionStore
	if cfg.Client.Redis != nil {
		sessionStore = auth.NewRedisSessionStore(cfg.Client.Redis)
		cfg.Log.Info("Using Redis session store")
	} else {
		sessionStore = auth.NewMemorySessionStore(sessionCleanupInterval)
		cfg.Log.Info("Using in-memory session store")
	}

	identityClient := auth.NewIdentityClient(cfg.IdentityServiceURL, cfg.IdentityTimeout, cfg.Log)
	authService := auth.NewService(userRepo, sessionStore, identityClient, cfg.SessionTTL, cfg.Log)

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaBookingTopic, cfg.Log)

	tripService := trips.NewService(tripRepo, trips.NewValidator(), cfg.Log)
	bookingService := bookings.NewService(
		bookingRepo,
		tripRepo,
		notificationRepo,
		bookings.NewValidator(),
		publisher,
		cfg.StrictCapacity,
		cfg.Log,
	)
	notificationService := notifications.NewService(notificationRepo, cfg.Log)

	application := app.NewApplication()
	application.SetApp(cfg,
		auth.NewHandler(authService, cfg.Log),
		trips.NewHandler(tripService, authService, cfg.Log),
		bookings.NewHandler(bookingService, authService, cfg.Log),
		notifications.NewHandler(notificationService, authService, cfg.Log),
	)
	application.OnShutdown(sessionStore.Stop)
	application.OnShutdown(publisher.Close)

	application.Run()
}
