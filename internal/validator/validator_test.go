package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Title string  `json:"titulo" binding:"required,max=200"`
	Price float64 `json:"preco" binding:"omitempty,min=0"`
}

func bindBody(t *testing.T, body string) map[string]string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Setup()

	var fields map[string]string
	r := gin.New()
	r.POST("/t", func(c *gin.Context) {
		var p samplePayload
		fields = Bind(c, &p)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/t", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return fields
}

func TestBindValidPayload(t *testing.T) {
	fields := bindBody(t, `{"titulo":"Curso de Go","preco":10}`)
	assert.Nil(t, fields)
}

func TestBindMissingRequiredField(t *testing.T) {
	fields := bindBody(t, `{"preco":10}`)
	require.NotNil(t, fields)
	// The error is keyed by the JSON tag name, not the Go field name.
	assert.Contains(t, fields, "titulo")
}

func TestBindMalformedJSON(t *testing.T) {
	fields := bindBody(t, `{"titulo":`)
	require.NotNil(t, fields)
	assert.Contains(t, fields, "detail")
}
