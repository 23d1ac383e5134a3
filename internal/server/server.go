package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// ageResponse is the JSON body of a successful /api/age call.
type ageResponse struct {
	engine.AgeDifference
	Birth        engine.CalendarDate `json:"birth"`
	NextBirthday engine.Anniversary  `json:"next_birthday"`
}

// AgeServer exposes the calculator over HTTP.
type AgeServer struct {
	cfg      config.ServerConfig
	calc     *engine.Calculator
	registry *prometheus.Registry
	metrics  *Metrics
	limiter  *ipLimiter
	router   chi.Router

	// addr holds the bound address once Start is listening.
	addr atomic.Pointer[string]
}

// NewAgeServer builds the router. A zero RateLimit disables rate limiting.
func NewAgeServer(cfg config.ServerConfig, calc *engine.Calculator) *AgeServer {
	registry := prometheus.NewRegistry()
	s := &AgeServer{
		cfg:      cfg,
		calc:     calc,
		registry: registry,
		metrics:  NewMetrics(registry),
	}
	if cfg.RateLimit > 0 {
		s.limiter = newIPLimiter(cfg.RateLimit, cfg.RateBurst, config.RateLimiterTTL)
	}
	s.router = s.routes()
	return s
}

func (s *AgeServer) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID, logRequests, recoverPanic)
	r.MethodNotAllowed(methodNotAllowed)

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(s.limiter.middleware)
		}
		getOrHead(r, config.RouteAge, s.handleAge)
		getOrHead(r, config.RouteCalendar, s.handleCalendar)
	})

	getOrHead(r, config.RouteHealth, handleHealth)
	getOrHead(r, config.RouteMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}).ServeHTTP)
	return r
}

func getOrHead(r chi.Router, pattern string, h http.HandlerFunc) {
	r.Get(pattern, h)
	r.Head(pattern, h)
}

// Handler returns the root handler, for tests and embedding.
func (s *AgeServer) Handler() http.Handler {
	return s.router
}

// Addr returns the address the server is bound to, empty before Start listens.
func (s *AgeServer) Addr() string {
	if a := s.addr.Load(); a != nil {
		return *a
	}
	return ""
}

// Start binds the listener and serves until ctx is cancelled.
func (s *AgeServer) Start(ctx context.Context) error {
	if s.cfg.Listen == "" {
		return errors.New(config.ErrListenRequired)
	}

	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
	bound := ln.Addr().String()
	s.addr.Store(&bound)

	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyListen, bound,
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

func tripleFromQuery(r *http.Request) engine.DateTriple {
	q := r.URL.Query()
	return engine.DateTriple{
		Day:   q.Get(config.QueryDay),
		Month: q.Get(config.QueryMonth),
		Year:  q.Get(config.QueryYear),
	}
}

func (s *AgeServer) handleAge(w http.ResponseWriter, r *http.Request) {
	defer s.metrics.ObserveLatency(config.RouteAge, time.Now())

	res, err := s.calc.Evaluate(tripleFromQuery(r))
	s.metrics.RecordOutcome(err)
	if err != nil {
		writeEvaluationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ageResponse{
		AgeDifference: res.Age,
		Birth:         res.Birth,
		NextBirthday:  res.Next,
	})
}

// handleCalendar serves the anniversary calendar with ETag revalidation.
func (s *AgeServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	defer s.metrics.ObserveLatency(config.RouteCalendar, time.Now())

	today := s.calc.Today()
	birth, err := engine.Validate(tripleFromQuery(r), today)
	s.metrics.RecordOutcome(err)
	if err != nil {
		writeEvaluationError(w, err)
		return
	}

	data, err := engine.BirthdayCalendar(r.URL.Query().Get(config.QueryName), birth, today)
	if err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}

	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, etag)

	if etagMatches(r.Header.Get(config.HeaderIfNoneMatch), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := w.Write(data); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(config.HeaderContentType, config.MimeTextPlain)
	_, _ = w.Write([]byte(config.HTTPMsgHealthy))
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(config.HeaderAllow, config.AllowedMethods)
	http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
}

// etagMatches applies the weak comparison of RFC 9110 to an If-None-Match
// value: a list of tags, optionally W/ prefixed, or "*".
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == config.ETagAny {
			return true
		}
		if strings.TrimPrefix(candidate, config.ETagWeakPrefix) == etag {
			return true
		}
	}
	return false
}

// writeEvaluationError answers 422 with the accumulated field errors, or 500
// for anything that is not a validation failure.
func writeEvaluationError(w http.ResponseWriter, err error) {
	var verrs engine.ValidationErrors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusUnprocessableEntity, verrs)
		return
	}
	slog.Error(config.ErrAppFailed,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyError, err,
	)
	http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
