package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/baxromumarov/geode/internal/geode"
)

const (
	msgInvalidURL = "Please enter a valid URL"
	msgRunFailed  = "Something went wrong while running Geode."
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Runner is satisfied by APIClient.
type Runner interface {
	RunGeode(ctx context.Context, url string) (*geode.Response, error)
}

// PageState is everything the page template renders.
type PageState struct {
	URL     string
	Loading bool
	Result  *geode.Response
	Error   string
}

// Handler serves the Geode page and submits URLs through its Runner.
type Handler struct {
	runner Runner
}

func NewHandler(runner Runner) *Handler {
	return &Handler{runner: runner}
}

// Submit validates the input and runs one analysis. Blank input never reaches
// the runner.
func (h *Handler) Submit(ctx context.Context, input string) (state PageState) {
	state.URL = input
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		state.Error = msgInvalidURL
		return state
	}

	state.Loading = true
	state.Error = ""
	defer func() {
		state.Loading = false
	}()

	result, err := h.runner.RunGeode(ctx, trimmed)
	if err != nil {
		slog.Error("geode run failed", "url", trimmed, "error", err)
		state.Error = msgRunFailed
		state.Result = nil
		return state
	}
	state.Result = result
	return state
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.render(w, PageState{})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			h.render(w, PageState{Error: msgInvalidURL})
			return
		}
		h.render(w, h.Submit(r.Context(), r.PostFormValue("url")))
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *Handler) render(w http.ResponseWriter, state PageState) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, state); err != nil {
		slog.Error("failed to render page", "error", err)
	}
}
