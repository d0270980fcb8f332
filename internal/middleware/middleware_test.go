package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/easyledger/internal/middleware"
	"github.com/SscSPs/easyledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.Default()))
	r.GET("/whoami", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userID": userID, "role": middleware.GetUserRoleFromContext(c)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid, _, err := utils.GenerateJWT("user-1", "a@b.no", "USER", testSecret, time.Hour, "test")
	require.NoError(t, err)
	expired, _, err := utils.GenerateJWT("user-1", "a@b.no", "USER", testSecret, -time.Hour, "test")
	require.NoError(t, err)
	foreign, _, err := utils.GenerateJWT("user-1", "a@b.no", "USER", "other", time.Hour, "test")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: `{"role":"USER","userID":"user-1"}`},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Authorization header required"}`},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Authorization header format must be Bearer {token}"}`},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Token has expired"}`},
		{name: "foreign signature", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Invalid token"}`},
	}

	router := newAuthRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestStructuredLoggingMiddleware_PropagatesRequestID(t *testing.T) {
	router := newAuthRouter()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestRateLimit_NilLimiterPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RateLimit(nil))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestEventNameForRoute(t *testing.T) {
	assert.Equal(t, "invoice_sent", middleware.EventNameForRoute(http.MethodPost, "/api/v1/invoices/:invoiceID/send"))
	assert.Equal(t, "api_v1_customers", middleware.EventNameForRoute(http.MethodGet, "/api/v1/customers"))
	assert.Equal(t, "api_v1_customers_customerID", middleware.EventNameForRoute(http.MethodGet, "/api/v1/customers/:customerID"))
	assert.Equal(t, "", middleware.EventNameForRoute(http.MethodGet, ""))
}
