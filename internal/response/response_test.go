package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/t", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	r.ServeHTTP(w, req)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccessEnvelope(t *testing.T) {
	w, body := performRequest(t, func(c *gin.Context) {
		Success(c, http.StatusCreated, gin.H{"ok": true})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, body.Error)
	assert.NotEmpty(t, body.Metadata.RequestID)
	assert.NotEmpty(t, body.Metadata.Timestamp)
	assert.Equal(t, body.Metadata.RequestID, w.Header().Get("X-Request-ID"))
}

func TestFailEnvelope(t *testing.T) {
	w, body := performRequest(t, func(c *gin.Context) {
		Fail(c, http.StatusConflict, ErrAlreadyEnrolled)
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrAlreadyEnrolled, body.Error.Code)
	assert.Equal(t, GetMessage(ErrAlreadyEnrolled), body.Error.Message)
	assert.Nil(t, body.Data)
}

func TestFailWithFields(t *testing.T) {
	_, body := performRequest(t, func(c *gin.Context) {
		FailWithFields(c, http.StatusBadRequest, ErrValidation, map[string]string{
			"titulo": "campo obrigatório",
		})
	})

	require.NotNil(t, body.Error)
	assert.Equal(t, "campo obrigatório", body.Error.Fields["titulo"])
}

func TestRequestIDPropagation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/t", func(c *gin.Context) { Success(c, http.StatusOK, nil) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set("X-Request-ID", "req-abc-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-abc-123", w.Header().Get("X-Request-ID"))
}

func TestGetMessageUnknownCode(t *testing.T) {
	assert.Equal(t, "Ocorreu um erro inesperado.", GetMessage(ErrCode("NOPE")))
}
