package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/dto"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/model"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/repository"
	"github.com/xQUANTUMTECH/ai-simulation2-sub000/internal/service"
	"gorm.io/gorm"
)

type Controller struct {
	generatorSvc service.QuizGeneratorService
	graderSvc    service.SubmissionGraderService
	masterySvc   service.MasteryTrackerService
	recSvc       service.ReviewRecommendationService
	contentRepo  repository.ContentSourceRepository
}

func NewController(
	generatorSvc service.QuizGeneratorService,
	graderSvc service.SubmissionGraderService,
	masterySvc service.MasteryTrackerService,
	recSvc service.ReviewRecommendationService,
	contentRepo repository.ContentSourceRepository,
) *Controller {
	return &Controller{
		generatorSvc: generatorSvc,
		graderSvc:    graderSvc,
		masterySvc:   masterySvc,
		recSvc:       recSvc,
		contentRepo:  contentRepo,
	}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	apiV1 := router.Group("/api/v1")
	{
		contents := apiV1.Group("/contents")
		contents.POST("", ctrl.CreateContentSourceHandler)

		quizzes := apiV1.Group("/quizzes")
		quizzes.POST("/generate", ctrl.GenerateQuizHandler)
		quizzes.GET("", ctrl.ListQuizzesHandler)
		quizzes.GET("/:quiz_id", ctrl.GetQuizHandler)
		quizzes.POST("/:quiz_id/attempts", ctrl.SubmitAttemptHandler)

		attempts := apiV1.Group("/attempts")
		attempts.GET("/:attempt_id", ctrl.GetAttemptResultHandler)

		users := apiV1.Group("/users")
		users.GET("/:user_id/attempts", ctrl.GetUserAttemptsHandler)
		users.GET("/:user_id/mastery", ctrl.GetUserMasteryHandler)
		users.GET("/:user_id/recommendations", ctrl.GetRecommendationsHandler)

		recommendations := apiV1.Group("/recommendations")
		recommendations.PATCH("/:recommendation_id", ctrl.UpdateRecommendationStatusHandler)
	}
}

// CreateContentSourceHandler godoc
// @Summary Register a content source
// @Description Store a document body, video transcript or course body for quiz generation
// @Tags contents
// @Accept json
// @Produce json
// @Param content body dto.CreateContentSourceRequest true "Content source data"
// @Success 201 {object} model.ContentSource
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contents [post]
func (ctrl *Controller) CreateContentSourceHandler(c *gin.Context) {
	var req dto.CreateContentSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind CreateContentSourceRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	source := model.ContentSource{
		ID:         uuid.NewString(),
		SourceType: req.SourceType,
		Title:      req.Title,
		Body:       req.Body,
	}
	if err := ctrl.contentRepo.Create(&source); err != nil {
		log.Error().Err(err).Msg("Failed to create content source")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create content source: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, source)
}

// GenerateQuizHandler godoc
// @Summary Generate a quiz from a content source
// @Description Extracts the source text and builds a quiz via AI generation. Malformed AI output yields the fallback quiz, never an error.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation request"
// @Success 201 {object} dto.QuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Content source not found"
// @Failure 422 {object} dto.ErrorResponse "Content source is empty"
// @Failure 502 {object} dto.ErrorResponse "Completion capability unreachable"
// @Router /quizzes/generate [post]
func (ctrl *Controller) GenerateQuizHandler(c *gin.Context) {
	var req dto.GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind GenerateQuizRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := ctrl.generatorSvc.Generate(c.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("source_id", req.SourceID).Msg("Failed to generate quiz")
		switch {
		case errors.Is(err, service.ErrContentUnavailable):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, service.ErrEmptyContent):
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, service.ErrCompletionUnavailable):
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to generate quiz: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

// ListQuizzesHandler godoc
// @Summary List all quizzes
// @Tags quizzes
// @Produce json
// @Success 200 {array} dto.QuizSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes [get]
func (ctrl *Controller) ListQuizzesHandler(c *gin.Context) {
	quizzes, err := ctrl.generatorSvc.ListQuizzes()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list quizzes")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve quizzes"})
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// GetQuizHandler godoc
// @Summary Get a quiz by ID with its questions
// @Tags quizzes
// @Produce json
// @Param quiz_id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{quiz_id} [get]
func (ctrl *Controller) GetQuizHandler(c *gin.Context) {
	quiz, err := ctrl.generatorSvc.GetQuiz(c.Param("quiz_id"))
	if err != nil {
		log.Error().Err(err).Str("quiz_id", c.Param("quiz_id")).Msg("Failed to get quiz")
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Quiz not found"})
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// SubmitAttemptHandler godoc
// @Summary Submit answers for a quiz
// @Description Grades every answer (objective inline, open via AI evaluation), persists the result and updates topic mastery.
// @Tags attempts
// @Accept json
// @Produce json
// @Param quiz_id path string true "Quiz ID"
// @Param submission body dto.SubmitAttemptRequest true "User ID and answers"
// @Success 201 {object} dto.AttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /quizzes/{quiz_id}/attempts [post]
func (ctrl *Controller) SubmitAttemptHandler(c *gin.Context) {
	var req dto.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SubmitAttemptRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := ctrl.graderSvc.SubmitAttempt(c.Request.Context(), c.Param("quiz_id"), req)
	if err != nil {
		log.Error().Err(err).Str("quiz_id", c.Param("quiz_id")).Msg("Failed to submit attempt")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to submit attempt: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetAttemptResultHandler godoc
// @Summary Get the graded result of an attempt
// @Tags attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt result not found"
// @Router /attempts/{attempt_id} [get]
func (ctrl *Controller) GetAttemptResultHandler(c *gin.Context) {
	result, err := ctrl.graderSvc.GetAttemptResult(c.Param("attempt_id"))
	if err != nil {
		log.Error().Err(err).Str("attempt_id", c.Param("attempt_id")).Msg("Failed to get attempt result")
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Attempt result not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetUserAttemptsHandler godoc
// @Summary Get a user's attempt history
// @Tags users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{user_id}/attempts [get]
func (ctrl *Controller) GetUserAttemptsHandler(c *gin.Context) {
	attempts, err := ctrl.graderSvc.GetUserAttempts(c.Param("user_id"))
	if err != nil {
		log.Error().Err(err).Str("user_id", c.Param("user_id")).Msg("Failed to get user attempts")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve attempts"})
		return
	}
	c.JSON(http.StatusOK, attempts)
}

// GetUserMasteryHandler godoc
// @Summary Get a user's per-topic mastery records
// @Tags users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {array} dto.MasteryRecordDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{user_id}/mastery [get]
func (ctrl *Controller) GetUserMasteryHandler(c *gin.Context) {
	records, err := ctrl.masterySvc.GetUserMastery(c.Param("user_id"))
	if err != nil {
		log.Error().Err(err).Str("user_id", c.Param("user_id")).Msg("Failed to get user mastery")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve mastery records"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetRecommendationsHandler godoc
// @Summary Get a user's pending review recommendations
// @Description Pending recommendations in stable order by priority.
// @Tags recommendations
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {array} dto.RecommendationDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{user_id}/recommendations [get]
func (ctrl *Controller) GetRecommendationsHandler(c *gin.Context) {
	recs, err := ctrl.recSvc.GetPending(c.Param("user_id"))
	if err != nil {
		log.Error().Err(err).Str("user_id", c.Param("user_id")).Msg("Failed to get recommendations")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve recommendations"})
		return
	}
	c.JSON(http.StatusOK, recs)
}

// UpdateRecommendationStatusHandler godoc
// @Summary Move a recommendation to a terminal state
// @Description Transitions pending -> completed (with optional effectiveness) or pending -> skipped. Terminal states reject further updates.
// @Tags recommendations
// @Accept json
// @Produce json
// @Param recommendation_id path string true "Recommendation ID"
// @Param update body dto.UpdateRecommendationStatusRequest true "New status"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Recommendation not found"
// @Failure 409 {object} dto.ErrorResponse "Recommendation already terminal"
// @Router /recommendations/{recommendation_id} [patch]
func (ctrl *Controller) UpdateRecommendationStatusHandler(c *gin.Context) {
	var req dto.UpdateRecommendationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("recommendation_id")
	if err := ctrl.recSvc.UpdateStatus(id, req.Status, req.Effectiveness); err != nil {
		log.Error().Err(err).Str("recommendation_id", id).Msg("Failed to update recommendation status")
		switch {
		case errors.Is(err, service.ErrRecommendationFinal):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update recommendation: " + err.Error()})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
