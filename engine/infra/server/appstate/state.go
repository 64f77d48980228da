package appstate

import (
	"context"
	"fmt"

	"github.com/artofest/artofest/engine/festival"
	"github.com/gin-gonic/gin"
)

type contextKey string

const stateKey contextKey = "app_state"

// HealthChecker reports whether the backing store answers.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ListingObserver records listing sizes. Implemented by the monitoring service.
type ListingObserver interface {
	ObserveFestivalsReturned(n int)
}

type BaseDeps struct {
	Festivals festival.Repository
	Health    HealthChecker
}

func NewBaseDeps(festivals festival.Repository, health HealthChecker) BaseDeps {
	return BaseDeps{Festivals: festivals, Health: health}
}

// State is shared by every request handler.
type State struct {
	BaseDeps
	Listings ListingObserver
}

func NewState(deps BaseDeps, listings ListingObserver) (*State, error) {
	if deps.Festivals == nil {
		return nil, fmt.Errorf("festival repository is required")
	}
	if listings == nil {
		listings = noopObserver{}
	}
	return &State{BaseDeps: deps, Listings: listings}, nil
}

func WithState(ctx context.Context, state *State) context.Context {
	return context.WithValue(ctx, stateKey, state)
}

func GetState(ctx context.Context) (*State, error) {
	state, ok := ctx.Value(stateKey).(*State)
	if !ok {
		return nil, fmt.Errorf("app state not found in context")
	}
	return state, nil
}

func StateMiddleware(state *State) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := WithState(c.Request.Context(), state)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

type noopObserver struct{}

func (noopObserver) ObserveFestivalsReturned(int) {}
