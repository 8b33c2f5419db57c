package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/abdullah/dombili/pkg/dom"
	"github.com/abdullah/dombili/pkg/htmlnode"
)

// Server serves the document inspection API.
type Server struct {
	config   *Config
	logger   *slog.Logger
	metrics  *metrics
	tracer   trace.Tracer
	upgrader websocket.Upgrader
}

// New builds a Server. A nil config means DefaultConfig.
func New(config *Config) (*Server, error) {
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Server{
		config:  config,
		logger:  slog.Default().With("component", "server"),
		metrics: newMetrics(config.MetricsNamespace, config.Registry),
		tracer:  otel.Tracer(config.TracerName),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
	}, nil
}

// SetLogger replaces the server's logger.
func (s *Server) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", s.metricsHandler())
	r.Post("/v1/query", s.handleQuery)
	r.Post("/v1/mutate", s.handleMutate)
	r.Get("/v1/session", s.handleSession)

	return r
}

func (s *Server) metricsHandler() http.Handler {
	if g, ok := s.config.Registry.(prometheus.Gatherer); ok {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.config.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type queryRequest struct {
	HTML     string `json:"html"`
	Selector string `json:"selector"`
}

type matchResult struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

type queryResponse struct {
	Count   int           `json:"count"`
	Matches []matchResult `json:"matches"`
}

type mutateRequest struct {
	HTML string      `json:"html"`
	Ops  []mutationOp `json:"ops"`
}

type mutateResponse struct {
	HTML    string `json:"html"`
	Applied int    `json:"applied"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req queryRequest
	if !s.decode(w, r, &req) {
		s.metrics.queriesTotal.WithLabelValues("bad_request").Inc()
		return
	}
	if req.Selector == "" {
		s.metrics.queriesTotal.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, "selector is required")
		return
	}

	_, span := s.tracer.Start(r.Context(), "dombili.query",
		trace.WithAttributes(attribute.String("selector", req.Selector)))
	defer span.End()

	host, err := htmlnode.ParseString(req.HTML)
	if err != nil {
		span.SetStatus(codes.Error, "parse failed")
		s.metrics.queriesTotal.WithLabelValues("parse_error").Inc()
		writeError(w, http.StatusUnprocessableEntity, "parse: "+err.Error())
		return
	}

	doc := dom.New(host)
	matches := doc.SelectAll(req.Selector)
	span.SetAttributes(attribute.Int("matches", len(matches)))

	resp := queryResponse{Count: len(matches), Matches: make([]matchResult, 0, len(matches))}
	for _, n := range matches {
		resp.Matches = append(resp.Matches, matchResult{
			HTML: htmlnode.OuterHTML(n),
			Text: htmlnode.Text(n),
		})
	}

	s.metrics.queriesTotal.WithLabelValues("ok").Inc()
	s.metrics.queryDuration.Observe(time.Since(start).Seconds())
	s.metrics.queryMatches.Observe(float64(len(matches)))
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMutate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req mutateRequest
	if !s.decode(w, r, &req) {
		s.metrics.mutationsTotal.WithLabelValues("bad_request").Inc()
		return
	}
	if len(req.Ops) == 0 {
		s.metrics.mutationsTotal.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, "ops is required")
		return
	}

	_, span := s.tracer.Start(r.Context(), "dombili.mutate",
		trace.WithAttributes(attribute.Int("ops", len(req.Ops))))
	defer span.End()

	host, err := htmlnode.ParseString(req.HTML)
	if err != nil {
		span.SetStatus(codes.Error, "parse failed")
		s.metrics.mutationsTotal.WithLabelValues("parse_error").Inc()
		writeError(w, http.StatusUnprocessableEntity, "parse: "+err.Error())
		return
	}

	doc := dom.New(host)
	applied, err := applyOps(doc, req.Ops)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.metrics.mutationsTotal.WithLabelValues("bad_op").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(attribute.Int("applied", applied))

	s.metrics.mutationsTotal.WithLabelValues("ok").Inc()
	s.metrics.mutateDuration.Observe(time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, mutateResponse{
		HTML:    htmlnode.OuterHTML(doc.Root()),
		Applied: applied,
	})
}

// decode reads a JSON body with the configured size cap. It writes the
// error response itself and reports success.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
