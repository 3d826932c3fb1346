package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"nymble-website/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCSRFEngine(exempt ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CSRFMiddleware(false, exempt...))
	handler := func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(string(domain.KeyCSRFToken)))
	}
	r.GET("/", handler)
	r.POST("/", handler)
	r.POST("/hook", handler)
	return r
}

func TestCSRFMiddleware(t *testing.T) {
	r := newCSRFEngine("/hook")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == CSRFTokenCookieName {
			token = c.Value
		}
	}
	require.Len(t, token, CSRFTokenLength*2)
	assert.Equal(t, token, w.Body.String())

	post := func(setup func(*http.Request)) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: CSRFTokenCookieName, Value: token})
		setup(req)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	tests := []struct {
		name  string
		setup func(*http.Request)
		want  int
	}{
		{"missing token", func(*http.Request) {}, http.StatusForbidden},
		{"wrong header", func(req *http.Request) { req.Header.Set(CSRFTokenHeaderName, "nope") }, http.StatusForbidden},
		{"matching header", func(req *http.Request) { req.Header.Set(CSRFTokenHeaderName, token) }, http.StatusOK},
		{"matching form field", func(req *http.Request) {
			body := url.Values{CSRFTokenFormField: {token}}.Encode()
			req.Body = io.NopCloser(strings.NewReader(body))
			req.ContentLength = int64(len(body))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, post(tt.setup))
		})
	}

	t.Run("exempt path", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/hook", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
