package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-risk-dashboard/components/dashboard"
	"github.com/goliatone/go-risk-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-risk-dashboard/components/dashboard/queries"
)

type stubQuerier[T any, R any] struct {
	last   T
	calls  int
	result R
	err    error
}

func (s *stubQuerier[T, R]) Query(_ context.Context, msg T) (R, error) {
	s.last = msg
	s.calls++
	return s.result, s.err
}

func newHandlers(t *testing.T) *Handlers {
	t.Helper()
	svc, err := dashboard.NewService(dashboard.Options{
		Providers: dashboard.NewRegistry(dashboard.WithChartCache(nil)),
		BasePath:  "/risk",
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return &Handlers{
		View:     queries.NewPersonaViewQuery(svc),
		Upload:   commands.NewUploadGuidelinesCommand(svc, nil),
		BasePath: "/risk",
	}
}

func uploadRequest(t *testing.T, field, filename string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	_, _ = part.Write([]byte("%PDF-1.4"))
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/risk/guidelines", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleViewPassesParsedState(t *testing.T) {
	view := &stubQuerier[dashboard.ViewState, dashboard.Page]{result: dashboard.Page{RenderID: "r1"}}
	api := &Handlers{View: view}
	req := httptest.NewRequest(http.MethodGet, "/risk/_view?persona=portfolio-manager&market_drop=25", nil)
	rec := httptest.NewRecorder()
	api.HandleView(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if view.last.Persona != dashboard.PersonaPortfolioManager || view.last.MarketDrop != 25 {
		t.Fatalf("unexpected state %+v", view.last)
	}
	var page dashboard.Page
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.RenderID != "r1" {
		t.Fatalf("expected render id r1, got %q", page.RenderID)
	}
}

func TestHandleViewRendersDashboard(t *testing.T) {
	api := newHandlers(t)
	req := httptest.NewRequest(http.MethodGet, "/risk/_view?persona=engineering-lead", nil)
	rec := httptest.NewRecorder()
	api.HandleView(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var page dashboard.Page
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.State.Persona != dashboard.PersonaEngineeringLead || len(page.Widgets) == 0 {
		t.Fatalf("unexpected page %+v", page.State)
	}
}

func TestHandleViewRejectsBadControls(t *testing.T) {
	api := newHandlers(t)
	for _, query := range []string{"market_drop=abc", "persona=portfolio-manager&market_drop=17", "range=decade"} {
		req := httptest.NewRequest(http.MethodGet, "/risk/_view?"+query, nil)
		rec := httptest.NewRecorder()
		api.HandleView(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", query, rec.Code)
		}
	}
}

func TestHandleUploadRedirects(t *testing.T) {
	api := newHandlers(t)
	rec := httptest.NewRecorder()
	api.HandleUpload(rec, uploadRequest(t, dashboard.ParamGuidelines, "policy.pdf"))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	want := "/risk?guidelines=policy.pdf&persona=compliance-analyst"
	if got := rec.Header().Get("Location"); got != want {
		t.Fatalf("expected location %q, got %q", want, got)
	}
}

func TestHandleUploadRejects(t *testing.T) {
	api := newHandlers(t)
	cases := map[string]*http.Request{
		"extension": uploadRequest(t, dashboard.ParamGuidelines, "payload.exe"),
		"field":     uploadRequest(t, "other", "policy.pdf"),
		"json":      httptest.NewRequest(http.MethodPost, "/risk/guidelines", bytes.NewBufferString("{}")),
	}
	for name, req := range cases {
		rec := httptest.NewRecorder()
		api.HandleUpload(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, rec.Code)
		}
	}
}

func TestStatusFor(t *testing.T) {
	if StatusFor(dashboard.ErrInvalidViewState) != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid view state")
	}
	if StatusFor(context.Canceled) != http.StatusInternalServerError {
		t.Fatalf("expected 500 for other errors")
	}
}
