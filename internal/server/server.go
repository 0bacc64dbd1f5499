package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tournevent/dhlbridge/internal/telemetry"
	"github.com/tournevent/dhlbridge/pkg/carrier"
)

const defaultCarrier = "dhl"

// Server is the HTTP server for the rate bridge.
type Server struct {
	port     int
	registry *carrier.Registry
	creds    carrier.Credentials
	logger   *otelzap.Logger
	metrics  *telemetry.Metrics
}

// Config holds server configuration.
type Config struct {
	Port        int
	Credentials carrier.Credentials
}

// New creates a new server instance.
func New(cfg Config, registry *carrier.Registry, logger *otelzap.Logger) *Server {
	return &Server{
		port:     cfg.Port,
		registry: registry,
		creds:    cfg.Credentials,
		logger:   logger,
		metrics:  telemetry.NewMetrics(),
	}
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/rates", s.handleRates)
	return mux
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// ============================================================================
// Rates endpoint
// ============================================================================

type locationPayload struct {
	CountryCode string `json:"country_code"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	Suburb      string `json:"suburb,omitempty"`
}

type packagePayload struct {
	Kilograms float64 `json:"kilograms"`
}

type ratesRequest struct {
	Carrier     string          `json:"carrier,omitempty"`
	Origin      locationPayload `json:"origin"`
	Destination locationPayload `json:"destination"`
	Package     packagePayload  `json:"package"`
}

type estimatePayload struct {
	Carrier     string          `json:"carrier"`
	ServiceName string          `json:"service_name"`
	ServiceCode string          `json:"service_code"`
	Currency    string          `json:"currency"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type ratesResponse struct {
	QuoteID   string            `json:"quote_id"`
	Estimates []estimatePayload `json:"estimates"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(errorResponse{Error: "method not allowed, use POST"})
		return
	}

	var req ratesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	name := req.Carrier
	if name == "" {
		name = defaultCarrier
	}

	start := time.Now()
	estimates, err := s.getRates(r.Context(), name, &req)
	duration := time.Since(start).Seconds()

	if err != nil {
		s.metrics.RecordRequest("get_rates", name, "error", duration)
		s.writeError(w, name, err)
		return
	}

	s.metrics.RecordRequest("get_rates", name, "ok", duration)
	s.metrics.RecordEstimates(name, len(estimates))

	payload := ratesResponse{
		QuoteID:   uuid.New().String(),
		Estimates: make([]estimatePayload, 0, len(estimates)),
	}
	for _, e := range estimates {
		payload.Estimates = append(payload.Estimates, estimatePayload{
			Carrier:     e.Carrier,
			ServiceName: e.ServiceName,
			ServiceCode: e.ServiceCode,
			Currency:    e.Currency,
			TotalPrice:  e.TotalPrice,
		})
	}

	json.NewEncoder(w).Encode(payload)
}

func (s *Server) getRates(ctx context.Context, name string, req *ratesRequest) ([]carrier.RateEstimate, error) {
	c, err := s.registry.Get(name)
	if err != nil {
		return nil, err
	}

	return c.GetRates(ctx, &carrier.RateRequest{
		Origin: carrier.Location{
			CountryCode: req.Origin.CountryCode,
			PostalCode:  req.Origin.PostalCode,
			City:        req.Origin.City,
			Suburb:      req.Origin.Suburb,
		},
		Destination: carrier.Location{
			CountryCode: req.Destination.CountryCode,
			PostalCode:  req.Destination.PostalCode,
			City:        req.Destination.City,
			Suburb:      req.Destination.Suburb,
		},
		Package:     carrier.Package{Kilograms: req.Package.Kilograms},
		Credentials: s.creds,
	})
}

func (s *Server) writeError(w http.ResponseWriter, name string, err error) {
	s.logger.Error("Rate request failed", zap.String("carrier", name), zap.Error(err))

	if errors.Is(err, carrier.ErrCarrierNotFound) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
		return
	}

	resp := errorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var ce *carrier.Error
	if errors.As(err, &ce) {
		resp.Kind = string(ce.Kind)
		resp.Code = ce.Code
		s.metrics.RecordError(ce.Carrier, string(ce.Kind))

		switch ce.Kind {
		case carrier.KindValidation:
			status = http.StatusUnprocessableEntity
		case carrier.KindTransport, carrier.KindCarrier, carrier.KindNoQuotes:
			status = http.StatusBadGateway
		}
	}

	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
