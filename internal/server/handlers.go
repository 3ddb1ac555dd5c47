package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/arborgraph/arbor/pkg/buildinfo"
	"github.com/arborgraph/arbor/pkg/errors"
	"github.com/arborgraph/arbor/pkg/family"
	"github.com/arborgraph/arbor/pkg/graph"
	"github.com/arborgraph/arbor/pkg/pipeline"
)

// layoutResponse is the API envelope around a computed layout.
type layoutResponse struct {
	LayoutID    string       `json:"layout_id"`
	MembersHash string       `json:"members_hash,omitempty"`
	Layout      graph.Layout `json:"layout"`
	CacheHit    bool         `json:"cache_hit"`
}

// postLayoutRequest is the inline-members request body.
type postLayoutRequest struct {
	Members       []family.Member `json:"members"`
	ViewportWidth float64         `json:"viewport_width,omitempty"`
	Density       string          `json:"density,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleGetLayout handles GET /api/v1/layout.
//
// Query parameters: viewport (float), density (comfortable|compact),
// refresh (bool, bypasses the member cache).
func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	if s.src == nil {
		s.respondError(w, http.StatusNotFound, "no member source configured")
		return
	}

	opts, ok := s.layoutOptions(w, r)
	if !ok {
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), s.src, opts)
	if err != nil {
		s.respondPipelineError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, layoutResponse{
		LayoutID:    result.LayoutID,
		MembersHash: result.MembersHash,
		Layout:      result.Layout,
		CacheHit:    result.CacheInfo.LayoutHit,
	})
}

// handlePostLayout handles POST /api/v1/layout with an inline member list.
func (s *Server) handlePostLayout(w http.ResponseWriter, r *http.Request) {
	var req postLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	opts := pipeline.Options{
		ViewportWidth: req.ViewportWidth,
		Density:       req.Density,
	}
	l, err := s.runner.ComputeLayout(r.Context(), req.Members, opts)
	if err != nil {
		s.respondPipelineError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, layoutResponse{Layout: l})
}

// handleGetMembers handles GET /api/v1/members.
func (s *Server) handleGetMembers(w http.ResponseWriter, r *http.Request) {
	if s.src == nil {
		s.respondError(w, http.StatusNotFound, "no member source configured")
		return
	}

	opts := pipeline.Options{Refresh: r.URL.Query().Get("refresh") == "true"}
	members, err := s.runner.Fetch(r.Context(), s.src, opts)
	if err != nil {
		s.respondPipelineError(w, err)
		return
	}
	if members == nil {
		members = []family.Member{}
	}

	s.respondJSON(w, http.StatusOK, members)
}

// layoutOptions parses layout query parameters. Reports false after
// writing an error response when a parameter is malformed.
func (s *Server) layoutOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options

	if v := r.URL.Query().Get("viewport"); v != "" {
		width, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid viewport: "+v)
			return opts, false
		}
		opts.ViewportWidth = width
	}
	opts.Density = r.URL.Query().Get("density")
	opts.Refresh = r.URL.Query().Get("refresh") == "true"

	if err := pipeline.ValidateDensity(opts.Density); err != nil {
		s.respondError(w, http.StatusBadRequest, errors.UserMessage(err))
		return opts, false
	}

	return opts, true
}

// respondPipelineError maps structured pipeline errors to HTTP statuses.
func (s *Server) respondPipelineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidDensity, errors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeNetwork, errors.ErrCodeSource:
		status = http.StatusBadGateway
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	s.logger.Error("request failed", "error", err)
	s.respondError(w, status, errors.UserMessage(err))
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
