package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"github.com/meditrack/meditrack/internal/availability"
	"github.com/meditrack/meditrack/internal/config"
	dbpkg "github.com/meditrack/meditrack/internal/db"
	"github.com/meditrack/meditrack/internal/handlers"
	"github.com/meditrack/meditrack/internal/infra/repository"
	"github.com/meditrack/meditrack/internal/logging"
	"github.com/meditrack/meditrack/internal/middleware"
	"github.com/meditrack/meditrack/internal/notify"
	"github.com/meditrack/meditrack/internal/payment"
	"github.com/meditrack/meditrack/internal/recommend"
	"github.com/meditrack/meditrack/internal/routes"
	usecase "github.com/meditrack/meditrack/internal/usecase/appointment"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Env)
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)
	repo := repository.NewAppointmentGormRepository(db)

	policy, err := availability.NewPolicy(cfg.WorkingHours)
	if err != nil {
		log.Fatalf("invalid working hours config: %v", err)
	}

	// -------- Notifications --------
	dispatcher := notify.NewDispatcher(logger)
	dispatcher.Register(notify.NewDoctorObserver(repo, logger))
	dispatcher.Register(notify.NewPatientObserver(repo, logger))
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		dispatcher.Register(notify.NewRedisObserver(rdb))
	}
	defer dispatcher.Close()

	// -------- Payment settlement --------
	settler := payment.NewRegistry(logger)
	settler.Register("upi", payment.NewUPIStrategy(logger))
	if cfg.StripeKey != "" {
		stripe.Key = cfg.StripeKey
		settler.Register("card", payment.NewCardStrategy(cfg.StripePaymentMethod, logger))
	} else {
		// no gateway configured: cards settle like upi, accepted on handoff
		settler.Register("card", payment.NewUPIStrategy(logger))
	}

	// -------- Recommendation --------
	var recommender recommend.Recommender
	if cfg.GeminiAPIKey != "" {
		recommender, err = recommend.NewGeminiRecommender(
			context.Background(),
			cfg.GeminiAPIKey,
			cfg.GeminiModel,
			repo,
			logger,
		)
		if err != nil {
			log.Fatalf("failed to create recommender: %v", err)
		}
	} else {
		recommender = recommend.NewStaticRecommender(repo)
	}

	// -------- Use cases --------
	locks := usecase.NewLockTable()
	appointmentHandler := handlers.NewAppointmentHandler(
		usecase.NewBookAppointment(repo, locks, dispatcher, logger),
		usecase.NewConfirmAppointment(repo, settler, locks, dispatcher, logger),
		usecase.NewCompleteConsultation(repo, locks, dispatcher, logger),
		usecase.NewCancelAppointment(repo, locks, dispatcher, logger),
		usecase.NewGetAppointment(repo),
		usecase.NewListSlots(repo, policy),
		repo,
	)
	doctorHandler := handlers.NewDoctorHandler(repo, recommender)
	patientHandler := handlers.NewPatientHandler(repo)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, appointmentHandler, doctorHandler, patientHandler)

	logger.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
