package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-risk-dashboard/components/dashboard"
)

type pageService interface {
	Render(ctx context.Context, state dashboard.ViewState) (dashboard.Page, error)
}

// PersonaViewQuery resolves the dashboard page for a view state.
type PersonaViewQuery struct {
	service pageService
}

// NewPersonaViewQuery builds the query.
func NewPersonaViewQuery(service pageService) *PersonaViewQuery {
	return &PersonaViewQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewState, dashboard.Page] = (*PersonaViewQuery)(nil)

// Query renders the persona dashboard.
func (q *PersonaViewQuery) Query(ctx context.Context, state dashboard.ViewState) (dashboard.Page, error) {
	return q.service.Render(ctx, state)
}
