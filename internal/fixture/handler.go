package fixture

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tsma-calendar-client/internal/dto"
	"github.com/noah-isme/tsma-calendar-client/internal/middleware"
	"github.com/noah-isme/tsma-calendar-client/internal/models"
	appErrors "github.com/noah-isme/tsma-calendar-client/pkg/errors"
	"github.com/noah-isme/tsma-calendar-client/pkg/response"
)

// Handler serves the calendar HTTP contract from a Store.
type Handler struct {
	store     *Store
	tokens    *TokenIssuer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewHandler constructs a Handler.
func NewHandler(store *Store, tokens *TokenIssuer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, tokens: tokens, validator: validator.New(), logger: logger}
}

// Login authenticates form credentials and issues a bearer token.
// @Summary Exchange credentials for a bearer token
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Account email"
// @Param password formData string true "Account password"
// @Success 200 {object} dto.LoginResponseDTO
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	req := models.LoginRequest{Email: c.PostForm("email"), Password: c.PostForm("password")}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	user, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		h.logger.Info("fixture login rejected", zap.String("email", req.Email))
		response.Error(c, err)
		return
	}

	token, _, err := h.tokens.Issue(user)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue token"))
		return
	}

	response.JSON(c, http.StatusOK, dto.LoginResponseDTO{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		UserUUID:  user.ID,
		Secret:    token,
		UserName:  user.UserName,
	})
}

// Today returns the current day of the requested cohort.
// @Summary Get today's calendar entry
// @Tags Calendar
// @Produce json
// @Param cohort query string true "Cohort identifier"
// @Success 200 {object} dto.CalendarEntryResponseDTO
// @Security BearerAuth
// @Router /calendar/today [get]
func (h *Handler) Today(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}
	entry, err := h.store.Today(claims.UserID, c.Query("cohort"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry)
}

// Calendar returns every day of the requested cohort.
// @Summary List calendar entries
// @Tags Calendar
// @Produce json
// @Param cohort query string true "Cohort identifier"
// @Success 200 {array} dto.CalendarEntryResponseDTO
// @Security BearerAuth
// @Router /calendar/all [get]
func (h *Handler) Calendar(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}
	entries, err := h.store.Calendar(claims.UserID, c.Query("cohort"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// Assignments lists the cohort's assignments.
// @Summary List assignments
// @Tags Assignments
// @Produce json
// @Param cohort query string true "Cohort identifier"
// @Param includeProgress query bool false "Attach caller progress"
// @Param includeFAQs query bool false "Attach FAQs"
// @Success 200 {array} dto.AssignmentResponseDTO
// @Security BearerAuth
// @Router /assignment/all [get]
func (h *Handler) Assignments(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}
	list, err := h.store.Assignments(claims.UserID, c.Query("cohort"), queryBool(c, "includeProgress"), queryBool(c, "includeFAQs"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Assignment returns one assignment.
// @Summary Get assignment
// @Tags Assignments
// @Produce json
// @Param id path string true "Assignment ID"
// @Param includeProgress query bool false "Attach caller progress"
// @Param includeFAQs query bool false "Attach FAQs"
// @Success 200 {object} dto.AssignmentResponseDTO
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /assignment/{id} [get]
func (h *Handler) Assignment(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}
	assignment, err := h.store.Assignment(claims.UserID, c.Param("id"), queryBool(c, "includeProgress"), queryBool(c, "includeFAQs"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignment)
}

// SubmitProgress records assignment progress for the caller.
// @Summary Set assignment progress
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body dto.ProgressRequestDTO true "Progress payload"
// @Success 200 {object} dto.AssignmentResponseDTO
// @Security BearerAuth
// @Router /assignment/progress [post]
func (h *Handler) SubmitProgress(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}
	var req dto.ProgressRequestDTO
	if !h.bind(c, &req, "invalid progress payload") {
		return
	}
	assignment, err := h.store.SetProgress(claims.UserID, req.AssignmentID, models.ProgressState(req.Progress))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignment)
}

// DeleteProgress resets assignment progress for the caller.
// @Summary Clear assignment progress
// @Tags Assignments
// @Accept json
// @Param payload body dto.DeleteProgressRequestDTO true "Assignment reference"
// @Success 204
// @Security BearerAuth
// @Router /assignment/progress [delete]
func (h *Handler) DeleteProgress(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}
	var req dto.DeleteProgressRequestDTO
	if !h.bind(c, &req, "invalid progress payload") {
		return
	}
	if err := h.store.ClearProgress(claims.UserID, req.AssignmentID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SubmitFAQ adds a question to an assignment.
// @Summary Ask an assignment question
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body dto.FAQRequestDTO true "FAQ payload"
// @Success 201 {object} dto.FAQResponseDTO
// @Security BearerAuth
// @Router /faq [post]
func (h *Handler) SubmitFAQ(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}
	var req dto.FAQRequestDTO
	if !h.bind(c, &req, "invalid faq payload") {
		return
	}
	faq, err := h.store.AddFAQ(claims.Email, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, faq)
}

// LessonOutline returns one lesson.
// @Summary Get lesson outline
// @Tags Lessons
// @Produce json
// @Param lessonID path string true "Lesson ID"
// @Success 200 {object} dto.LessonOutlineResponseDTO
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /lesson/{lessonID} [get]
func (h *Handler) LessonOutline(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}
	outline, err := h.store.LessonOutline(claims.UserID, c.Param("lessonID"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outline)
}

// SubmitFeedback stores lesson feedback.
// @Summary Send lesson feedback
// @Tags Lessons
// @Accept json
// @Param payload body dto.LessonFeedbackRequestDTO true "Feedback payload"
// @Success 204
// @Security BearerAuth
// @Router /lesson/feedback [post]
func (h *Handler) SubmitFeedback(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}
	var req dto.LessonFeedbackRequestDTO
	if !h.bind(c, &req, "invalid feedback payload") {
		return
	}
	if err := h.store.AddFeedback(claims.UserID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) claims(c *gin.Context) (*models.TokenClaims, bool) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return claims, true
}

func (h *Handler) bind(c *gin.Context, out interface{}, message string) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	if err := h.validator.Struct(out); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	return true
}

func queryBool(c *gin.Context, key string) bool {
	value, err := strconv.ParseBool(c.Query(key))
	return err == nil && value
}
