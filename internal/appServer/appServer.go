package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medreminder/config"
	"medreminder/internal/database"
	repository "medreminder/internal/database/postgres"
	"medreminder/internal/service"
	"medreminder/internal/transport"
	"medreminder/internal/worker"

	"medreminder/pkg/postgres"
	"medreminder/pkg/push"
	"medreminder/pkg/redis"
	"medreminder/pkg/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// The engine runs against a single fixed zone for its whole lifetime.
	loc, err := time.LoadLocation(cfg.Reminder.Timezone)
	if err != nil {
		logrus.Fatalf("Failed to load timezone %q: %v", cfg.Reminder.Timezone, err)
	}

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	scheduleRepo := repository.NewScheduleRepository(db)
	userRepo := repository.NewUserRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize dispatch gate. Redis gives cross-instance exactly-once;
	// without it the in-memory gate covers a single process plus a cleanup
	// worker to expire yesterday's claims.
	var gate database.DispatchGate
	if cfg.Redis.URL != "" {
		redisClient := redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()

		gate = database.NewRedisDispatchGate(redisClient)
		logrus.Info("Redis dispatch gate initialized")
	} else {
		logrus.Warn("Redis not configured, falling back to in-memory dispatch gate")
		memGate := database.NewMemoryDispatchGate()
		gate = memGate

		cleanupWorker := worker.NewClaimCleanupWorker(memGate, cfg.Worker.CleanupInterval)
		go cleanupWorker.Start(ctx)
	}

	// Initialize push sender
	var sender service.Sender
	if cfg.Push.Enabled && cfg.Push.ServerKey != "" {
		sender = push.NewClient(cfg.Push.Endpoint, cfg.Push.ServerKey, cfg.Push.Timeout)
		logrus.Info("Push client initialized")
	} else {
		logrus.Warn("Push server key not provided, notifications disabled")
	}

	// Initialize services
	scheduleService := service.NewScheduleService(scheduleRepo, userRepo)
	userService := service.NewUserService(userRepo)
	reminderService := service.NewReminderService(
		scheduleRepo,
		userRepo,
		gate,
		sender,
		loc,
		cfg.Reminder.MatchWindow,
		cfg.Reminder.DailyClaimTTL,
		cfg.Reminder.WorkerPoolSize,
	)

	// Initialize and start reminder scheduler
	reminderScheduler := scheduler.NewScheduler(reminderService, cfg.Reminder.TickInterval)
	go reminderScheduler.Start(ctx)

	// Initialize handlers
	scheduleHandler := transport.NewScheduleHandler(scheduleService)
	userHandler := transport.NewUserHandler(userService)

	// Setup HTTP server
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(scheduleHandler, userHandler)); err != nil {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
