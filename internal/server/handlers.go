package server

import (
	"net/http"
	"strconv"

	"github.com/matzehuels/kle/pkg/buildinfo"
	"github.com/matzehuels/kle/pkg/errors"
	kleio "github.com/matzehuels/kle/pkg/io"
	"github.com/matzehuels/kle/pkg/observability"
	"github.com/matzehuels/kle/pkg/pipeline"
)

// CacheHeader reports whether a decode was served from the cache.
const CacheHeader = "X-Cache"

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type validateResponse struct {
	Valid bool `json:"valid"`
	Keys  int  `json:"keys"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	raw, err := kleio.ReadDocument(r.Body, s.cfg.MaxBodyBytes)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data, result, err := s.runner.Export(r.Context(), raw, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	cacheStatus := "miss"
	if result.CacheHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", kleio.ContentType(opts.Format))
	w.Header().Set(CacheHeader, cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	raw, err := kleio.ReadDocument(r.Body, s.cfg.MaxBodyBytes)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	result, err := s.runner.Decode(r.Context(), raw, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{Valid: true, Keys: result.Stats.KeyCount})
}

// requestOptions builds pipeline options from query parameters over the
// server defaults.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Format:      s.cfg.Format,
		EditorCarry: s.cfg.EditorCarry,
		MaxBytes:    s.cfg.MaxBodyBytes,
		Logger:      s.logger,
	}
	if f := q.Get("format"); f != "" {
		opts.Format = f
	}
	if v := q.Get("editor_carry"); v != "" {
		carry, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "editor_carry must be a boolean, got %q", v)
		}
		opts.EditorCarry = carry
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// fail reports err to the HTTP hooks and writes it as a JSON APIError.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
	apiErr := toAPIError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
	} else {
		s.logger.Debug("request rejected", "code", apiErr.Code, "error", err)
	}
	writeJSON(w, apiErr.Status, apiErr)
}
