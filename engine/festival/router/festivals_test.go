package fstrouter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/artofest/artofest/engine/festival"
	"github.com/artofest/artofest/engine/infra/server/appstate"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) List(ctx context.Context, filter festival.Filter) ([]festival.Row, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]festival.Row)
	return rows, args.Error(1)
}

type countingObserver struct {
	observed []int
}

func (o *countingObserver) ObserveFestivalsReturned(n int) { o.observed = append(o.observed, n) }

func setupRouter(t *testing.T, repo festival.Repository, obs appstate.ListingObserver) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	state, err := appstate.NewState(appstate.NewBaseDeps(repo, nil), obs)
	require.NoError(t, err)
	r := gin.New()
	r.Use(appstate.StateMiddleware(state))
	Register(r.Group("/api"))
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	return w
}

func strPtr(s string) *string { return &s }

func TestListFestivals(t *testing.T) {
	t.Run("Should bind query parameters into the filter", func(t *testing.T) {
		repo := &mockRepository{}
		obs := &countingObserver{}
		repo.On("List", mock.Anything, festival.Filter{
			Country: "France",
			Genre:   "jazz",
			ArtForm: "music",
			Search:  "vienne",
		}).Return([]festival.Row{{ID: 1, Name: "Jazz à Vienne", City: strPtr("Vienne")}}, nil)
		r := setupRouter(t, repo, obs)

		w := get(r, "/api/festivals?country=France&genre=jazz&art_form=music&search=vienne")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":1,"name":"Jazz à Vienne","country":null,"city":"Vienne","time":null,
			"website":null,"art_form_id":null,"art_form":null}]`, w.Body.String())
		assert.Equal(t, []int{1}, obs.observed)
		repo.AssertExpectations(t)
	})

	t.Run("Should return an empty array, never null", func(t *testing.T) {
		repo := &mockRepository{}
		repo.On("List", mock.Anything, festival.Filter{}).Return(nil, nil)
		r := setupRouter(t, repo, nil)

		w := get(r, "/api/festivals?country=%20%20")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("Should answer a flat 500 when the repository fails", func(t *testing.T) {
		repo := &mockRepository{}
		repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New(`relation "festivals" does not exist`))
		r := setupRouter(t, repo, nil)

		w := get(r, "/api/festivals?genre=rock")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"Server Error"}`, w.Body.String())
		assert.NotContains(t, w.Body.String(), "relation")
	})

	t.Run("Should answer a flat 500 without app state", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		Register(r.Group("/api"))
		w := get(r, "/api/festivals")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"Server Error"}`, w.Body.String())
	})
}
