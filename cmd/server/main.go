package main // Entry point package

import (
	"context" // Context for the background jobs
	"log"     // Logging library
	"time"    // Durations for lock wait and job interval

	"github.com/joho/godotenv"    // Loads .env files in local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/argodnc/office-rental/internal/config"     // Internal config loader
	"github.com/argodnc/office-rental/internal/database"   // MySQL connection pool
	"github.com/argodnc/office-rental/internal/handler"    // HTTP handlers
	"github.com/argodnc/office-rental/internal/jobs"       // Scheduled reservation-start notifications
	"github.com/argodnc/office-rental/internal/lock"       // Per-office booking lock
	"github.com/argodnc/office-rental/internal/notify"     // AMQP notification publisher
	"github.com/argodnc/office-rental/internal/queue"      // Notification queue consumers
	"github.com/argodnc/office-rental/internal/repository" // Data access layer
	"github.com/argodnc/office-rental/internal/router"     // Route registration
	"github.com/argodnc/office-rental/internal/service"    // Booking engine
	"github.com/argodnc/office-rental/internal/utils"      // Tokens, hashing, secrets
)

func main() {
	// Load a .env file when present; real deployments set the environment
	// directly and the file is simply absent.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg) // Open the MySQL pool
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the per-office booking lock; without it concurrent
	// bookings across instances cannot be serialized, so failing to
	// connect is fatal.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis: connection required for the booking lock")
	}
	officeLock := lock.NewOfficeLock(rdb, time.Duration(cfg.LockWaitSeconds)*time.Second)

	// Repositories share the single pool.
	users := repository.NewUserRepo(db)
	offices := repository.NewOfficeRepo(db)
	reservations := repository.NewReservationRepo(db)

	sealer, err := utils.NewSecretBox(cfg.WifiSecretKey) // Seals wifi passwords at rest
	if err != nil {
		log.Fatalf("wifi secret key: %v", err)
	}

	notifier := notify.NewAMQPNotifier(cfg.RabbitURL) // Fire-and-forget events over RabbitMQ

	svc := service.NewReservationService(
		offices,
		reservations,
		users,
		officeLock,
		notifier,
		sealer,
		utils.RandomWifiPassword,
		service.UTCClock{},
	)

	// Consume the notification queues in-process. In larger deployments
	// this runs as its own binary; the queues decouple the two either way.
	queue.StartNotificationConsumers()

	// Daily job that notifies visitors and hosts about reservations
	// starting today.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dueJob := jobs.NewDueReservationJob(reservations, notifier, service.UTCClock{})
	go dueJob.Start(ctx, 24*time.Hour)

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterPublic(e, handler.NewOfficeHandler(offices))
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret)
	router.RegisterReservations(e,
		handler.NewReservationHandler(svc, reservations, sealer),
		handler.NewHostReservationHandler(reservations),
		cfg.JWTSecret,
	)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
