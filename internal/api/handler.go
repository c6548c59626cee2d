package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Resolver is the lookup surface the HTTP handlers need.
type Resolver interface {
	RunDefault(terms []string, def any) ([]any, error)
}

// StoreInfo exposes metadata about the configuration source.
type StoreInfo interface {
	SearchPaths() []string
	Source() string
}

// Handler wires the lookup module and store metadata into HTTP handlers.
type Handler struct {
	resolver Resolver
	info     StoreInfo

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(resolver Resolver, info StoreInfo, opts ...HandlerOption) *Handler {
	h := &Handler{
		resolver: resolver,
		info:     info,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleLookup resolves one dotted key per request. A miss is not an error:
// the response carries the default (or null) in its single-element result
// list, never a 404.
func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.URL.Query().Get("key"))
	if key == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "key query parameter is required")
		return
	}

	var def any
	if r.URL.Query().Has("default") {
		def = r.URL.Query().Get("default")
	}

	results, err := h.resolver.RunDefault([]string{key}, def)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := lookupResponse{
		Key:     key,
		Results: results,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSearchPaths(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := searchPathsResponse{
		Paths:      h.info.SearchPaths(),
		LoadedFrom: h.info.Source(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type lookupResponse struct {
	Key     string `json:"key"`
	Results []any  `json:"results"`
}

type searchPathsResponse struct {
	Paths      []string `json:"paths"`
	LoadedFrom string   `json:"loadedFrom,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
