package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/hackdesk/hackdesk/config"
	"github.com/hackdesk/hackdesk/database"
	"github.com/hackdesk/hackdesk/internal/auth"
	adminctrl "github.com/hackdesk/hackdesk/internal/controller/admin"
	userctrl "github.com/hackdesk/hackdesk/internal/controller/user"
	"github.com/hackdesk/hackdesk/internal/logger"
	"github.com/hackdesk/hackdesk/internal/metrics"
	"github.com/hackdesk/hackdesk/internal/model"
	"github.com/hackdesk/hackdesk/internal/repository"
	"github.com/hackdesk/hackdesk/internal/service"
)

// @title Hackdesk Event Management API
// @version 1.0
// @description Hackathon and event management: registration, screening tests, project submission, qualification and awards.
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			auth.NewMiddleware,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewEventRepository,
			repository.NewRegistrationRepository,
			repository.NewScreeningTestRepository,
			repository.NewTestAttemptRepository,
			repository.NewWorkflowTrackingRepository,
			repository.NewPaymentOrderRepository,
			repository.NewProfileRepository,
		),

		fx.Provide(
			service.NewMidtransGateway,
			service.NewTrackingService,
			service.NewEventService,
			service.NewRegistrationService,
			service.NewScreeningService,
			service.NewAttemptService,
			service.NewWorkflowService,
			service.NewAwardService,
		),

		fx.Provide(
			adminctrl.NewEventController,
			adminctrl.NewScreeningController,
			adminctrl.NewWorkflowController,
			adminctrl.NewAwardController,
			userctrl.NewEventController,
			userctrl.NewRegistrationController,
			userctrl.NewScreeningController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	logger.SetLevel(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", metrics.Handler())

	return r
}

// RegisterRoutesAndStartServer mounts the API groups and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authMW *auth.Middleware,
	adminEventCtrl *adminctrl.EventController,
	adminScreeningCtrl *adminctrl.ScreeningController,
	adminWorkflowCtrl *adminctrl.WorkflowController,
	adminAwardCtrl *adminctrl.AwardController,
	eventCtrl *userctrl.EventController,
	registrationCtrl *userctrl.RegistrationController,
	screeningCtrl *userctrl.ScreeningController,
) {
	// Public routes: event discovery, winner listings, and the gateway
	// callback, which is authenticated by the gateway, not by users.
	publicAPI := router.Group("/api/v1")
	{
		publicAPI.GET("/events", eventCtrl.ListEvents)
		publicAPI.GET("/events/:event_id", eventCtrl.GetEvent)
		publicAPI.GET("/events/:event_id/winners", eventCtrl.ListWinners)
		publicAPI.POST("/payments/notification", registrationCtrl.PaymentNotification)
	}

	participantAPI := router.Group("/api/v1", authMW.RequireAuth())
	{
		participantAPI.POST("/events/:event_id/register", registrationCtrl.Register)
		participantAPI.POST("/events/:event_id/payment", registrationCtrl.InitiatePayment)
		participantAPI.GET("/my/registrations", registrationCtrl.MyRegistrations)
		participantAPI.GET("/events/:event_id/my-registration", registrationCtrl.MyRegistration)

		participantAPI.GET("/events/:event_id/screening-test", screeningCtrl.GetAssignedTest)
		participantAPI.POST("/tests/:test_id/attempts/start", screeningCtrl.StartAttempt)
		participantAPI.POST("/tests/:test_id/attempts/submit", screeningCtrl.SubmitAttempt)
		participantAPI.POST("/events/:event_id/presentation", screeningCtrl.SubmitPresentation)
	}

	adminAPI := router.Group("/api/v1/admin", authMW.RequireAuth(), authMW.RequireAdmin())
	{
		adminAPI.POST("/events", adminEventCtrl.CreateEvent)
		adminAPI.PUT("/events/:event_id", adminEventCtrl.UpdateEvent)
		adminAPI.POST("/events/:event_id/publish", adminEventCtrl.PublishEvent)
		adminAPI.GET("/events/:event_id/registrations", adminEventCtrl.ListRegistrations)

		adminAPI.POST("/events/:event_id/screening-test", adminScreeningCtrl.DefineTest)
		adminAPI.POST("/events/:event_id/screening-test/send", adminScreeningCtrl.SendTest)
		adminAPI.POST("/events/:event_id/screening-test/send-external", adminScreeningCtrl.SendExternalTest)
		adminAPI.POST("/registrations/skip-screening", adminScreeningCtrl.SkipScreening)

		adminAPI.POST("/registrations/attendance", adminWorkflowCtrl.MarkAttendance)
		adminAPI.POST("/registrations/:registration_id/review", adminWorkflowCtrl.ReviewPresentation)
		adminAPI.POST("/registrations/:registration_id/qualification", adminWorkflowCtrl.DecideQualification)
		adminAPI.PUT("/registrations/:registration_id/notes", adminWorkflowCtrl.UpdateNotes)

		adminAPI.POST("/registrations/:registration_id/award", adminAwardCtrl.AssignAward)
		adminAPI.DELETE("/registrations/:registration_id/award", adminAwardCtrl.RemoveAward)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Hackdesk API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Event{},
		&model.Registration{},
		&model.ScreeningTest{},
		&model.TestAttempt{},
		&model.WorkflowTracking{},
		&model.PaymentOrder{},
		&model.Profile{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	if err := database.EnsureIndexes(db); err != nil {
		log.Error().Err(err).Msg("Index creation failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
