package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/symptom-diary/backend/internal/mocks"
	"github.com/pageza/symptom-diary/backend/internal/service"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dashboard := new(mocks.MockDashboardService)
	dashboard.On("Search", mock.Anything, "1").Return(&service.SearchResult{Status: service.AccountReady, SessionID: "s"}, nil)

	r := SetupRouter(Dependencies{
		Dashboard:     dashboard,
		Exports:       new(mocks.MockExportService),
		SessionSecret: "secret",
		SessionTTL:    time.Hour,
		CORSOrigins:   []string{"http://localhost:5173"},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/search", strings.NewReader(`{"account_id":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "dashboard=")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "Max-Age=3600")
}
