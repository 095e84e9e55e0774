// Package server exposes collected buoy data over a small JSON API.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/swellwatch/buoy/pkg/errors"
	"github.com/swellwatch/buoy/pkg/ndbc"
)

// Client is the subset of the NDBC client the server needs.
type Client interface {
	StationIDs(ctx context.Context, refresh bool) ([]int, error)
	Station(ctx context.Context, id int, refresh bool) (*ndbc.Station, error)
	Report(ctx context.Context, id int, refresh bool) (*ndbc.Report, error)
	Search(ctx context.Context, latitude, longitude string, distance int, refresh bool) ([]int, error)
}

// Server handles HTTP requests for buoy data.
type Server struct {
	client Client
	logger *log.Logger
}

// New creates a Server backed by the given client.
func New(client Client, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{client: client, logger: logger}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/stations", s.handleStations)
	r.Get("/stations/{id}", s.handleStation)
	r.Get("/stations/{id}/report", s.handleReport)
	r.Get("/search", s.handleSearch)

	return r
}

// ListenAndServe runs the server until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	ids, err := s.client.StationIDs(r.Context(), refreshParam(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stations": ids})
}

func (s *Server) handleStation(w http.ResponseWriter, r *http.Request) {
	id, err := errors.ValidateStationID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	st, err := s.client.Station(r.Context(), id, refreshParam(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	id, err := errors.ValidateStationID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	report, err := s.client.Report(r.Context(), id, refreshParam(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, lon := q.Get("lat"), q.Get("lon")
	if err := errors.ValidateCoordinate(lat, "NS"); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := errors.ValidateCoordinate(lon, "EW"); err != nil {
		s.writeError(w, r, err)
		return
	}

	dist := ndbc.DefaultSearchDistance
	if raw := q.Get("dist"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput,
				"invalid search distance: %s", raw))
			return
		}
		dist = v
	}
	if err := errors.ValidateSearchDistance(dist); err != nil {
		s.writeError(w, r, err)
		return
	}

	ids, err := s.client.Search(r.Context(), lat, lon, dist, refreshParam(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stations": ids})
}

// logRequests logs each request with its duration and status.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeError maps domain errors to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case ndbc.IsNotFound(err):
		status = http.StatusNotFound
	case isInvalid(err):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

func isInvalid(err error) bool {
	for _, code := range []errors.Code{
		errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidStation,
		errors.ErrCodeInvalidCoords,
	} {
		if errors.Is(err, code) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func refreshParam(r *http.Request) bool {
	return r.URL.Query().Get("refresh") == "true"
}
