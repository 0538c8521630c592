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
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/config"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/database"
	_ "github.com/xQUANTUMTECH/ai-simulation2-sub000/docs" // Swagger docs - auto-generated
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/controller"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/logger"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/model"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/repository"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Adaptive Assessment API
// @version 1.0
// @description API for AI-generated quizzes, submission grading, topic mastery tracking and review recommendations.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewQuizRepository,
			repository.NewAttemptRepository,
			repository.NewAttemptResultRepository,
			repository.NewMasteryRepository,
			repository.NewRecommendationRepository,
			repository.NewContentSourceRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewGeminiCompletionService,
			service.NewContentExtractorService,
			service.NewQuizGeneratorService,
			service.NewAnswerEvaluationService,
			service.NewReviewRecommendationService,
			service.NewMasteryTrackerService,
			service.NewSubmissionGraderService,
		),

		// API Controllers Layer
		fx.Provide(
			controller.NewController,
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

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	// Route Gin's access log through the global zerolog instance.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	ctrl *controller.Controller,
) {
	ctrl.RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Assessment API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
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
		&model.ContentSource{},
		&model.Quiz{},
		&model.Question{},
		&model.Attempt{},
		&model.Answer{},
		&model.AttemptResult{},
		&model.QuestionResult{},
		&model.MasteryRecord{},
		&model.ReviewRecommendation{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
