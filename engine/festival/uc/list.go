package uc

import (
	"context"
	"fmt"

	"github.com/artofest/artofest/engine/festival"
)

type ListFestivals struct {
	repo   festival.Repository
	filter festival.Filter
}

func NewListFestivals(repo festival.Repository, filter festival.Filter) *ListFestivals {
	return &ListFestivals{
		repo:   repo,
		filter: filter,
	}
}

// Execute runs the listing. The result is never nil.
func (uc *ListFestivals) Execute(ctx context.Context) ([]festival.Row, error) {
	rows, err := uc.repo.List(ctx, uc.filter.Trimmed())
	if err != nil {
		return nil, fmt.Errorf("listing festivals: %w", err)
	}
	if rows == nil {
		rows = []festival.Row{}
	}
	return rows, nil
}
