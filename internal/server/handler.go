package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/mergington/activities/internal/activities"
	"github.com/mergington/activities/internal/storage"
)

// Messages returned verbatim by the HTTP contract.
const (
	detailActivityNotFound  = "Activity not found"
	detailAlreadyRegistered = "Student already signed up for this activity"
	detailNotRegistered     = "Student is not signed up for this activity"
	detailEmailRequired     = "Email is required"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type handler struct {
	registry storage.Registry
	tracer   trace.Tracer
}

// NewHandler assembles the route handlers over the given registry. When
// staticDir is non-empty the front-end is served from disk instead of
// the embedded assets.
func NewHandler(registry storage.Registry, staticDir string) (http.Handler, error) {
	if registry == nil {
		return nil, errors.New("registry is required")
	}

	staticHandler, err := staticFileHandler(staticDir)
	if err != nil {
		return nil, fmt.Errorf("resolve static assets: %w", err)
	}

	h := &handler{
		registry: registry,
		tracer:   otel.Tracer("github.com/mergington/activities/internal/server"),
	}

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))
	mux.HandleFunc("/activities", h.handleActivities)
	mux.HandleFunc("/activities/", h.handleActivityPath)
	mux.HandleFunc("/", h.handleRoot)

	return h.traced(mux), nil
}

// traced wraps next so every request runs under a span from the global
// tracer provider. With no provider registered this is a no-op.
func (h *handler) traced(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := h.tracer.Start(r.Context(), r.Method+" "+r.URL.Path)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// handleRoot redirects browsers to the front-end entry document.
func (h *handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
}

// handleActivities serves the full catalog keyed by activity name.
func (h *handler) handleActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	catalog, err := h.registry.List(r.Context())
	if err != nil {
		h.writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

// handleActivityPath dispatches /activities/{name}/signup and
// /activities/{name}/unregister. The mux hands us the URL-decoded path,
// so percent-encoded activity names round-trip as-is; no trimming or
// case-folding is applied to the name.
func (h *handler) handleActivityPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/activities/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		http.NotFound(w, r)
		return
	}
	activityName, action := parts[0], parts[1]

	switch action {
	case "signup":
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleSignup(w, r, activityName)
	case "unregister":
		if r.Method != http.MethodDelete {
			w.Header().Set("Allow", http.MethodDelete)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.handleUnregister(w, r, activityName)
	default:
		http.NotFound(w, r)
	}
}

func (h *handler) handleSignup(w http.ResponseWriter, r *http.Request, activityName string) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSONError(w, http.StatusBadRequest, detailEmailRequired)
		return
	}

	if err := h.registry.Signup(r.Context(), activityName, email); err != nil {
		h.writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, activityName),
	})
}

func (h *handler) handleUnregister(w http.ResponseWriter, r *http.Request, activityName string) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSONError(w, http.StatusBadRequest, detailEmailRequired)
		return
	}

	if err := h.registry.Unregister(r.Context(), activityName, email); err != nil {
		h.writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Unregistered %s from %s", email, activityName),
	})
}

// writeRegistryError translates registry failures into the documented
// status codes and messages. Unexpected errors stay opaque to callers.
func (h *handler) writeRegistryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, activities.ErrActivityNotFound):
		writeJSONError(w, http.StatusNotFound, detailActivityNotFound)
	case errors.Is(err, activities.ErrAlreadyRegistered):
		writeJSONError(w, http.StatusBadRequest, detailAlreadyRegistered)
	case errors.Is(err, activities.ErrNotRegistered):
		writeJSONError(w, http.StatusBadRequest, detailNotRegistered)
	default:
		log.Printf("registry error: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeJSONError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}
