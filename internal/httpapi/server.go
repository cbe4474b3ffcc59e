// Package httpapi is the HTTP boundary layer: it decodes and validates
// wire-level packing requests, converts them to pack domain types, runs the
// engine, and writes the wire-level response. The core engine package never
// imports this one.
package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/stacktics/underbed/internal/config"
	"github.com/stacktics/underbed/pack"
	"github.com/stacktics/underbed/pack/render"
)

// appVersion is reported by the root banner endpoint.
const appVersion = "1.0.0"

// cachedPlan is a completed optimize run kept in memory so /optimize/render.svg
// can redraw it without the client resubmitting the request.
type cachedPlan struct {
	container pack.Container
	boxes     map[string]pack.Box
	result    pack.Result
}

// Server holds the HTTP boundary's dependencies: the request validator,
// server-side packing defaults, the allowed CORS origins, a logger, and an
// in-memory cache of recent plans keyed by request ID.
type Server struct {
	validate    *validator.Validate
	defaults    pack.Settings
	corsOrigins []string
	logger      *logrus.Logger

	mu    sync.RWMutex
	plans map[string]cachedPlan
}

// NewServer builds a Server from the loaded configuration.
func NewServer(cfg config.Config, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	return &Server{
		validate:    validator.New(),
		defaults:    cfg.PackSettings(),
		corsOrigins: cfg.CORSOrigins,
		logger:      logger,
		plans:       make(map[string]cachedPlan),
	}
}

// Routes returns the fully wired HTTP handler: gorilla/mux routing wrapped
// in the logging and CORS middleware (SPEC_FULL.md §4.1).
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/optimize", s.handleOptimize).Methods(http.MethodPost)
	router.HandleFunc("/optimize/render.svg", s.handleRenderSVG).Methods(http.MethodGet)

	return s.loggingMiddleware(s.corsMiddleware(router))
}

// loggingMiddleware records method, path, remote addr, status, and elapsed
// time via logrus, mirroring the teacher's "[HTTP] %s %s from %s" pattern.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.WithFields(logrus.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"remote":  r.RemoteAddr,
			"status":  rec.status,
			"elapsed": time.Since(start),
		}).Info("http request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// corsMiddleware allows the configured origins, credentials on, the GET,
// POST and OPTIONS methods and all headers, mirroring the Python prototype's
// CORSMiddleware allow-list.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := s.allowedOrigin(r.Header.Get("Origin"))
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "*")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) allowedOrigin(requestOrigin string) string {
	for _, allowed := range s.corsOrigins {
		if allowed == "*" {
			if requestOrigin == "" {
				return "*"
			}
			return requestOrigin
		}
		if allowed == requestOrigin {
			return requestOrigin
		}
	}
	return ""
}

// handleRoot serves the informational banner carried over from the original
// prototype's main.py (SPEC_FULL.md §5).
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "StackTics",
		"version": appVersion,
		"docs":    "/optimize",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "app": "StackTics"})
}

// handleOptimize implements POST /optimize (SPEC_FULL.md §4.1).
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "decode_error", err.Error(), nil)
		return
	}

	if err := s.validate.Struct(req); err != nil {
		validationErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error(), nil)
			return
		}
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request failed validation", translateValidationErrors(validationErrs))
		return
	}

	container := toDomainContainer(req.Bed)
	boxes := toDomainBoxes(req.Boxes)
	settings := toDomainSettings(req.Settings, s.defaults)

	if err := pack.Validate(container, boxes, settings); err != nil {
		writeError(w, http.StatusBadRequest, "domain_error", err.Error(), nil)
		return
	}

	result := pack.Optimize(container, boxes, settings)

	requestID := uuid.NewString()
	boxesByID := make(map[string]pack.Box, len(boxes))
	for _, b := range boxes {
		boxesByID[b.ID] = b
	}
	s.mu.Lock()
	s.plans[requestID] = cachedPlan{container: container, boxes: boxesByID, result: result}
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"placed":     result.Metrics.PlacedBoxes,
		"total":      result.Metrics.TotalBoxes,
	}).Debug("optimize completed")

	writeJSON(w, http.StatusOK, fromDomainResult(requestID, result))
}

// handleRenderSVG implements GET /optimize/render.svg?request=<id>
// (SPEC_FULL.md §4.1): re-renders a cached plan as an SVG diagram.
func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	requestID := r.URL.Query().Get("request")
	if requestID == "" {
		writeError(w, http.StatusBadRequest, "missing_parameter", "request query parameter is required", nil)
		return
	}

	s.mu.RLock()
	plan, ok := s.plans[requestID]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "no cached plan for that request id", nil)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	if err := render.WriteSVG(w, render.Plan{Container: plan.container, Boxes: plan.boxes, Result: plan.result}); err != nil {
		s.logger.WithError(err).Error("failed to render plan svg")
	}
}

// translateValidationErrors converts go-playground/validator field errors
// into the shared {field, message, type} shape.
func translateValidationErrors(errs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, FieldError{
			Field:   fe.Namespace(),
			Message: fe.Error(),
			Type:    fe.Tag(),
		})
	}
	return out
}
