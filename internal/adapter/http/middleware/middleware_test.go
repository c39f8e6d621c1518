package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestIdentity_MissingHeader(t *testing.T) {
	router := gin.New()
	router.GET("/test", Identity(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "AUTH_001", resp["error_code"])
}

func TestIdentity_MalformedUserID(t *testing.T) {
	router := gin.New()
	router.GET("/test", Identity(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderUserID, "not-a-uuid")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestIdentity_Success(t *testing.T) {
	userID := uuid.New()

	var capturedID uuid.UUID
	var capturedEmail string
	router := gin.New()
	router.GET("/test", Identity(), func(c *gin.Context) {
		id, _ := c.Get(CtxUserID)
		capturedID = id.(uuid.UUID)
		email, _ := c.Get(CtxUserEmail)
		capturedEmail = email.(string)
		c.JSON(200, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderUserID, userID.String())
	req.Header.Set(HeaderUserEmail, "Buyer@Example.COM")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, capturedID)
	assert.Equal(t, "buyer@example.com", capturedEmail)
}

func TestRecovery_PanicRecovered(t *testing.T) {
	log := zerolog.Nop()

	router := gin.New()
	router.Use(Recovery(log))
	router.GET("/panic", func(c *gin.Context) {
		panic("something went wrong")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SYS_001", resp["error_code"])
}

func TestMaxBodySize_OversizedBody(t *testing.T) {
	router := gin.New()
	router.Use(MaxBodySize(16))
	router.POST("/test", func(c *gin.Context) {
		var payload map[string]any
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"ok": true})
	})

	body := bytes.NewBufferString(`{"item_name":"` + strings.Repeat("x", 100) + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/test", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(zerolog.Nop()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
