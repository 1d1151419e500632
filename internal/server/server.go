// Package server exposes the calculators over a JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/homecalc/internal/calculator"
	"github.com/iwvelando/homecalc/internal/config"
	"github.com/iwvelando/homecalc/pkg/constants"
	"github.com/iwvelando/homecalc/pkg/finance"
	"github.com/iwvelando/homecalc/pkg/mortgage"
	"github.com/iwvelando/homecalc/pkg/output"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	metrics       *Metrics
}

// NewHandler constructs the HTTP handler that serves the calculator API and
// the metrics collected in registry. A nil registry gets a private one.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, registry *prometheus.Registry) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		metrics:       NewMetrics(registry),
	}

	mux := http.NewServeMux()

	// Full report from an uploaded YAML configuration
	mux.Handle("/api/report", h.instrument("report", h.handleReport))

	// Single scenario from a JSON profile and price
	mux.Handle("/api/scenario", h.instrument("scenario", h.handleScenario))

	// Affordability bands from a JSON profile
	mux.Handle("/api/affordability", h.instrument("affordability", h.handleAffordability))

	mux.Handle("/api/version", h.instrument("version", h.handleVersion))

	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return mux
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (h *handler) instrument(endpoint string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		h.metrics.observeRequest(endpoint, strconv.Itoa(rec.status), time.Since(start).Seconds())
	})
}

type reportResponse struct {
	calculator.Report
	CSV      string `json:"csv"`
	Duration string `json:"duration"`
}

type scenarioRequest struct {
	Price              float64  `json:"price"`
	IncomeMultiple     float64  `json:"incomeMultiple"`
	DownPayment        *float64 `json:"downPayment"`
	MinimumDownPayment bool     `json:"minimumDownPayment"`
}

type affordabilityRequest struct {
	TargetTDS *float64 `json:"targetTds"`
}

type affordabilityResponse struct {
	Bands []mortgage.BandResult `json:"bands"`
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	report, err := calculator.GetReport(h.logger, *cfg)
	if err != nil {
		h.respondError(w, statusFor(err), fmt.Sprintf("failed to compute report: %v", err), op)
		return
	}
	for _, scenario := range report.Scenarios {
		h.metrics.observeScenario(scenario.Result.Qualifies)
	}
	h.observeBands(report.Bands)

	elapsed := time.Since(start)
	h.logger.Info("report computed",
		zap.String("op", op),
		zap.Int("scenarios", len(report.Scenarios)),
		zap.Int("bands", len(report.Bands)),
		zap.Int("comparisons", len(report.Comparisons)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, reportResponse{
		Report:   report,
		CSV:      output.CsvString(report),
		Duration: elapsed.String(),
	})
}

func (h *handler) handleScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenario"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	body, cfg, ok := h.readConfigBody(w, r, op)
	if !ok {
		return
	}
	var req scenarioRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode scenario: %v", err), op)
		return
	}

	calc, ok := h.calculatorFor(w, cfg, op)
	if !ok {
		return
	}
	result, err := calculator.EvaluateScenario(calc, cfg.FinancialProfile(), config.Scenario{
		Name:               "request",
		Active:             true,
		Price:              req.Price,
		IncomeMultiple:     req.IncomeMultiple,
		DownPayment:        req.DownPayment,
		MinimumDownPayment: req.MinimumDownPayment,
	})
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}
	h.metrics.observeScenario(result.Qualifies)

	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleAffordability(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAffordability"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	body, cfg, ok := h.readConfigBody(w, r, op)
	if !ok {
		return
	}
	var req affordabilityRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	bands := cfg.Bands()
	if req.TargetTDS != nil {
		bands = []mortgage.Band{{Name: fmt.Sprintf("%.2f%% TDS", *req.TargetTDS), TargetTDS: *req.TargetTDS}}
	}

	calc, ok := h.calculatorFor(w, cfg, op)
	if !ok {
		return
	}
	results, err := calc.Bands(cfg.FinancialProfile(), bands)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}
	h.observeBands(results)

	h.writeJSON(w, http.StatusOK, affordabilityResponse{Bands: results})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// readConfigBody reads a JSON request body and loads it as a configuration,
// so that omitted policy values take their defaults.
func (h *handler) readConfigBody(w http.ResponseWriter, r *http.Request, op string) ([]byte, *config.Configuration, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUploadSize))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, nil, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return nil, nil, false
	}
	if !json.Valid(body) {
		h.respondError(w, http.StatusBadRequest, "request body must be a JSON object", op)
		return nil, nil, false
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(body))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return nil, nil, false
	}
	return body, cfg, true
}

func (h *handler) calculatorFor(w http.ResponseWriter, cfg *config.Configuration, op string) (*mortgage.Calculator, bool) {
	policy, err := cfg.MortgagePolicy()
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return nil, false
	}
	calc, err := mortgage.NewCalculator(policy)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return nil, false
	}
	return calc, true
}

func (h *handler) observeBands(bands []mortgage.BandResult) {
	for _, band := range bands {
		if !band.Affordability.Feasible {
			h.metrics.observeInfeasible(band.Band.Name)
		}
	}
}

// statusFor maps calculation errors to a response status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, mortgage.ErrInvalidInput),
		errors.Is(err, mortgage.ErrDivisionByZero),
		errors.Is(err, finance.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before any header goes out, so an encoding
// failure still reaches the client as a 500.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.Int("status", status),
			zap.Error(err),
		)
		buf.Reset()
		status = http.StatusInternalServerError
		buf.WriteString(`{"error":"failed to encode response"}` + "\n")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
