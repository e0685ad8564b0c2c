package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ramkansal/reelfang/pkg/plugin"
	"github.com/sirupsen/logrus"
)

// Resolver is the part of the resolver the HTTP layer needs.
type Resolver interface {
	Resolve(ctx context.Context, addr string) (*plugin.Result, error)
}

// ResolveHandler serves the resolve endpoint.
type ResolveHandler struct {
	resolver Resolver
	log      logrus.FieldLogger
}

// NewResolveHandler creates a new resolve handler.
func NewResolveHandler(r Resolver, log logrus.FieldLogger) *ResolveHandler {
	return &ResolveHandler{resolver: r, log: log}
}

type resolveRequest struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Get handles GET /api/v1/resolve?url=...
func (h *ResolveHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, r.URL.Query().Get("url"))
}

// Post handles POST /api/v1/resolve with a {"url": ...} body.
func (h *ResolveHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	h.resolve(w, r, req.URL)
}

func (h *ResolveHandler) resolve(w http.ResponseWriter, r *http.Request, addr string) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url is required"})
		return
	}

	res, err := h.resolver.Resolve(r.Context(), addr)
	if err == nil {
		writeJSON(w, http.StatusOK, res)
		return
	}

	var rerr *plugin.ResolutionError
	switch {
	case errors.As(err, &rerr):
		writeJSON(w, http.StatusUnprocessableEntity, rerr)
	case errors.Is(r.Context().Err(), context.DeadlineExceeded):
		// middleware.Timeout writes the 504 once the handler returns.
		h.log.WithField("address", addr).Warn("resolve timed out")
	case errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: "request timed out"})
	default:
		// Client went away; nobody reads this.
		h.log.WithError(err).WithField("address", addr).Debug("resolve aborted")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "request aborted"})
	}
}

// Health handles GET /health.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
