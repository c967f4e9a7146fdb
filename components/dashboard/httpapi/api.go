package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-risk-dashboard/components/dashboard"
	"github.com/goliatone/go-risk-dashboard/components/dashboard/commands"
)

// UploadAccepter validates a guidelines upload and returns the view state to
// redirect to.
type UploadAccepter interface {
	Accept(ctx context.Context, msg commands.UploadGuidelinesInput) (dashboard.ViewState, error)
}

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	View     gocommand.Querier[dashboard.ViewState, dashboard.Page]
	Upload   UploadAccepter
	BasePath string
}

// HandleView writes the persona page for the request query as JSON.
func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request) {
	state, err := dashboard.ParseViewState(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page, err := h.View.Query(r.Context(), state)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// HandleUpload accepts a multipart guidelines upload and redirects to the
// compliance dashboard with the filename echoed.
func (h *Handlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	filename, err := dashboard.ExtractUploadFilename(r.Body, r.Header.Get("Content-Type"))
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	state, err := h.Upload.Accept(r.Context(), commands.UploadGuidelinesInput{Filename: filename})
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}
	location := state.Href(h.BasePath)
	w.Header().Set("Location", location)
	writeJSON(w, http.StatusSeeOther, map[string]any{
		"filename": state.Guidelines,
		"redirect": location,
	})
}

// StatusFor maps dashboard errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrInvalidViewState), errors.Is(err, dashboard.ErrInvalidUpload):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
