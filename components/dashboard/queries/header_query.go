package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-risk-dashboard/components/dashboard"
)

// PersonaHeaderQuery returns the shell header for a view state without
// fetching any widget data.
type PersonaHeaderQuery struct {
	service *dashboard.Service
}

// NewPersonaHeaderQuery builds the query.
func NewPersonaHeaderQuery(service *dashboard.Service) *PersonaHeaderQuery {
	return &PersonaHeaderQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewState, dashboard.Header] = (*PersonaHeaderQuery)(nil)

// Query normalizes the state and builds the header.
func (q *PersonaHeaderQuery) Query(_ context.Context, state dashboard.ViewState) (dashboard.Header, error) {
	state, err := q.service.Normalize(state)
	if err != nil {
		return dashboard.Header{}, err
	}
	return q.service.Shell().Header(state), nil
}
