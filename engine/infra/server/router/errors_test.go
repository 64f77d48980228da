package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondServerError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Should hide the cause behind a generic message", func(t *testing.T) {
		r := gin.New()
		r.GET("/boom", func(c *gin.Context) {
			RespondServerError(c, errors.New("pq: password authentication failed"))
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"Server Error"}`, w.Body.String())
	})

	t.Run("Should answer for errors left unhandled on the context", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/err", func(c *gin.Context) { _ = c.Error(errors.New("lost")) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", http.NoBody))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"Server Error"}`, w.Body.String())
	})

	t.Run("Should answer the generic body when a handler panics", func(t *testing.T) {
		r := gin.New()
		r.Use(Recovery())
		r.GET("/panic", func(*gin.Context) { panic("nil map write") })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", http.NoBody))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"Server Error"}`, w.Body.String())
	})
}
