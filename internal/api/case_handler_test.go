package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"casetrack-backend-go/internal/api"
	"casetrack-backend-go/internal/core"
	"casetrack-backend-go/internal/models"
)

func setupCaseRouter(svc *fakeCaseService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(testAuth("uid-1", ""))

	handler := api.NewCaseHandler(svc, zap.NewNop())
	router.POST("/api/cases", handler.CreateCase)
	router.GET("/api/cases", handler.ListCases)
	router.GET("/api/cases/:caseId", handler.GetCase)
	router.DELETE("/api/cases/:caseId", handler.DeleteCase)
	return router
}

func TestCaseHandler_CreateCase(t *testing.T) {
	t.Run("created case is returned with 201", func(t *testing.T) {
		svc := &fakeCaseService{kase: &models.Case{ID: "case-1", Title: "Smith v. Jones", Status: models.CaseOpen}}
		router := setupCaseRouter(svc)

		req := httptest.NewRequest("POST", "/api/cases", strings.NewReader(`{"title":"Smith v. Jones"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("missing title is a bad request", func(t *testing.T) {
		router := setupCaseRouter(&fakeCaseService{})
		req := httptest.NewRequest("POST", "/api/cases", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("case limit maps to 402", func(t *testing.T) {
		router := setupCaseRouter(&fakeCaseService{err: core.ErrCaseLimitReached})
		req := httptest.NewRequest("POST", "/api/cases", strings.NewReader(`{"title":"Overflow"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusPaymentRequired, rr.Code)
	})

	t.Run("inactive subscription maps to 402", func(t *testing.T) {
		router := setupCaseRouter(&fakeCaseService{err: core.ErrSubscriptionInactive})
		req := httptest.NewRequest("POST", "/api/cases", strings.NewReader(`{"title":"Blocked"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusPaymentRequired, rr.Code)
	})
}

func TestCaseHandler_ListCases(t *testing.T) {
	svc := &fakeCaseService{cases: []*models.Case{{ID: "case-1", Title: "Smith v. Jones"}}}
	router := setupCaseRouter(svc)

	req := httptest.NewRequest("GET", "/api/cases?status=open&clientId=client-1&q=smith", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, core.CaseFilter{Status: "open", ClientID: "client-1", Query: "smith"}, svc.lastFilter)

	var cases []*models.Case
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cases))
	assert.Len(t, cases, 1)
}

func TestCaseHandler_ErrorMapping(t *testing.T) {
	t.Run("forbidden maps to 403", func(t *testing.T) {
		router := setupCaseRouter(&fakeCaseService{err: core.ErrForbiddenAccess})
		req := httptest.NewRequest("GET", "/api/cases/case-1", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		router := setupCaseRouter(&fakeCaseService{err: core.ErrCaseNotFound})
		req := httptest.NewRequest("GET", "/api/cases/ghost", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("delete returns 204 on success", func(t *testing.T) {
		router := setupCaseRouter(&fakeCaseService{})
		req := httptest.NewRequest("DELETE", "/api/cases/case-1", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func TestErrorResponseShape(t *testing.T) {
	router := setupCaseRouter(&fakeCaseService{err: core.ErrCaseNotFound})
	req := httptest.NewRequest("GET", "/api/cases/ghost", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, core.ErrCaseNotFound.Error(), resp.Error)
}
