package api

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/symptom-diary/backend/internal/pipeline"
	"github.com/pageza/symptom-diary/backend/internal/service"
)

// SessionKey is the cookie session field holding the dashboard session id.
const SessionKey = "dashboard_session"

// DashboardHandler serves the dashboard views
type DashboardHandler struct {
	dashboard     service.IDashboardService
	exports       service.IExportService
	searchLimiter gin.HandlerFunc
	logger        *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler. searchLimiter may be nil.
func NewDashboardHandler(dashboard service.IDashboardService, exports service.IExportService, searchLimiter gin.HandlerFunc, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{
		dashboard:     dashboard,
		exports:       exports,
		searchLimiter: searchLimiter,
		logger:        logger,
	}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	{
		search := []gin.HandlerFunc{h.Search}
		if h.searchLimiter != nil {
			search = append([]gin.HandlerFunc{h.searchLimiter}, search...)
		}
		dashboard.POST("/search", search...)
		dashboard.GET("/range", h.Range)
		dashboard.GET("/statistics", h.Statistics)
		dashboard.GET("/diary", h.Diary)
		dashboard.GET("/foods/top", h.TopFoods)
		dashboard.GET("/foods/before-symptoms", h.FoodsBeforeSymptoms)
		dashboard.GET("/meals/typical", h.TypicalMeals)
		dashboard.GET("/foods/combinations", h.Combinations)
		dashboard.GET("/foods/suspects", h.Suspects)
		dashboard.POST("/export", h.Export)
	}
}

// Search looks up an account and opens a dashboard session on it
func (h *DashboardHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: service.MessageInvalidInput})
		return
	}

	result, err := h.dashboard.Search(c.Request.Context(), req.AccountID.String())
	if err != nil {
		h.respondError(c, err)
		return
	}

	if result.SessionID != "" {
		session := sessions.Default(c)
		session.Set(SessionKey, result.SessionID)
		if err := session.Save(); err != nil {
			h.respondError(c, err)
			return
		}
	}

	status := http.StatusOK
	if result.Status == service.AccountNotFound {
		status = http.StatusNotFound
	}
	c.JSON(status, result)
}

// Range resolves the selected timespan
func (h *DashboardHandler) Range(c *gin.Context) {
	id, filter, ok := h.request(c)
	if !ok {
		return
	}
	h.respond(c)(h.dashboard.Range(c.Request.Context(), id, filter))
}

// Statistics returns the usage statistics
func (h *DashboardHandler) Statistics(c *gin.Context) {
	id, filter, ok := h.request(c)
	if !ok {
		return
	}
	h.respond(c)(h.dashboard.Statistics(c.Request.Context(), id, filter))
}

// Diary returns the diary table and timeline
func (h *DashboardHandler) Diary(c *gin.Context) {
	id, filter, ok := h.request(c)
	if !ok {
		return
	}
	h.respond(c)(h.dashboard.Diary(c.Request.Context(), id, filter))
}

// TopFoods returns the most eaten foods
func (h *DashboardHandler) TopFoods(c *gin.Context) {
	id, filter, ok := h.request(c)
	if !ok {
		return
	}
	h.respond(c)(h.dashboard.TopFoods(c.Request.Context(), id, filter))
}

// FoodsBeforeSymptoms returns the foods eaten before symptoms
func (h *DashboardHandler) FoodsBeforeSymptoms(c *gin.Context) {
	id, filter, ok := h.request(c)
	if !ok {
		return
	}
	h.respond(c)(h.dashboard.FoodsBeforeSymptoms(c.Request.Context(), id, filter))
}

// TypicalMeals returns the usual meal compositions
func (h *DashboardHandler) TypicalMeals(c *gin.Context) {
	id, filter, ok := h.request(c)
	if !ok {
		return
	}
	h.respond(c)(h.dashboard.TypicalMeals(c.Request.Context(), id, filter))
}

// Combinations returns the foods most often eaten together
func (h *DashboardHandler) Combinations(c *gin.Context) {
	id, filter, ok := h.request(c)
	if !ok {
		return
	}
	h.respond(c)(h.dashboard.Combinations(c.Request.Context(), id, filter))
}

// Suspects returns the probably bad foods
func (h *DashboardHandler) Suspects(c *gin.Context) {
	id, _, ok := h.request(c)
	if !ok {
		return
	}
	h.respond(c)(h.dashboard.Suspects(c.Request.Context(), id))
}

// Export writes the current view to object storage
func (h *DashboardHandler) Export(c *gin.Context) {
	id, filter, ok := h.request(c)
	if !ok {
		return
	}
	result, err := h.exports.Export(c.Request.Context(), id, filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// request resolves the session id and parses the filter query.
func (h *DashboardHandler) request(c *gin.Context) (string, service.ViewFilter, bool) {
	var q FilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return "", service.ViewFilter{}, false
	}

	id := q.SessionID
	if id == "" {
		if v, ok := sessions.Default(c).Get(SessionKey).(string); ok {
			id = v
		}
	}
	if id == "" {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: service.ErrSessionNotFound.Error()})
		return "", service.ViewFilter{}, false
	}

	filter, err := parseFilter(q)
	if err != nil {
		h.respondError(c, err)
		return "", service.ViewFilter{}, false
	}
	return id, filter, true
}

func parseFilter(q FilterQuery) (service.ViewFilter, error) {
	var f service.ViewFilter
	var err error
	if f.Range, err = pipeline.ParseDateRange(q.Start, q.End); err != nil {
		return f, err
	}
	if f.Timespan, err = pipeline.ParseTimespan(q.Timespan); err != nil {
		return f, err
	}
	if f.Selectors.Meal, err = pipeline.ParseMealSelector(q.Meal); err != nil {
		return f, err
	}
	if f.Selectors.Symptom, err = pipeline.ParseSymptomSelector(q.Symptom); err != nil {
		return f, err
	}
	f.Selectors.MinGrade = q.MinGrade
	f.CombinationSize = q.Size
	return f, f.Selectors.Validate()
}

// respond returns a function writing a view or its error.
func (h *DashboardHandler) respond(c *gin.Context) func(any, error) {
	return func(v any, err error) {
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func (h *DashboardHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAccountInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: service.MessageInvalidInput})
	case service.IsClientError(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrExportDisabled):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("dashboard request failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
