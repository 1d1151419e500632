package server

import (
	"bytes"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/homecalc/pkg/constants"
	"github.com/iwvelando/homecalc/pkg/mortgage"
	"github.com/iwvelando/homecalc/pkg/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const profileJSON = `"profile": {"annualIncome": 105000, "downPayment": 80000, "interestRate": 4.99,
  "amortizationYears": 30, "housing": {"propertyTax": 350, "utilities": 400}, "debts": {"carLoan": 500}}`

func newTestHandler(t *testing.T, maxUploadSize int64) (http.Handler, *prometheus.Registry) {
	t.Helper()
	registry := prometheus.NewRegistry()
	return NewHandler(zap.NewNop(), maxUploadSize, "test", registry), registry
}

func TestHandleReportSuccess(t *testing.T) {
	handler, _ := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	data, err := os.ReadFile(filepath.Join("..", "..", constants.ExampleConfigFile))
	require.NoError(t, err)

	rr := performUpload(t, handler, string(data), "config.yaml")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp reportResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.NotEmpty(t, resp.Scenarios)
	condo := testutil.FindScenario(resp.Report, "downtown condo")
	require.NotNil(t, condo)
	assert.InDelta(t, 525000, condo.Result.PurchasePrice, 1e-6)
	assert.Greater(t, condo.Result.MonthlyPayment, 0.0)

	assert.Nil(t, testutil.FindScenario(resp.Report, "lakefront dream"), "inactive scenario should be skipped")
	assert.NotNil(t, testutil.FindBand(resp.Report, "balanced budget"))
	assert.NotNil(t, resp.Rental)
	assert.NotNil(t, resp.Commission)
	assert.NotNil(t, resp.Savings)
	assert.Contains(t, resp.CSV, `"scenario","price"`)
	assert.NotEmpty(t, resp.Duration)
}

func TestHandleReportMethodNotAllowed(t *testing.T) {
	handler, _ := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}

func TestHandleReportUploadTooLarge(t *testing.T) {
	handler, _ := newTestHandler(t, 64)

	rr := performUpload(t, handler, strings.Repeat("a", 128), "config.yaml")

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", rr.Code)
	}
	if msg := decodeError(t, rr); !strings.Contains(msg, "upload exceeds limit") {
		t.Fatalf("expected upload limit error message, got %q", msg)
	}
}

func TestHandleReportMissingFile(t *testing.T) {
	handler, _ := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/report", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	if msg := decodeError(t, rr); msg != "missing configuration file" {
		t.Fatalf("expected missing file error, got %q", msg)
	}
}

func TestHandleReportInvalidYAML(t *testing.T) {
	handler, _ := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	rr := performUpload(t, handler, "profile: [", "config.yaml")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	if msg := decodeError(t, rr); !strings.Contains(msg, "error reading config data") {
		t.Fatalf("expected parse error message, got %q", msg)
	}
}

func TestHandleReportInvalidInput(t *testing.T) {
	handler, _ := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	configYAML := `
profile:
  annualIncome: 90000
  downPayment: 50000
  interestRate: 5
  amortizationYears: 0
scenarios:
  - name: sample
    active: true
    price: 400000
`
	rr := performUpload(t, handler, configYAML, "config.yaml")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
	}
	if msg := decodeError(t, rr); !strings.Contains(msg, "scenario sample") {
		t.Fatalf("expected scenario name in error, got %q", msg)
	}
}

func TestHandleScenario(t *testing.T) {
	handler, registry := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	rr := performJSON(t, handler, "/api/scenario", `{`+profileJSON+`, "price": 525000}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var result mortgage.ScenarioResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.InDelta(t, 445000, result.LoanAmount, 1e-6)
	assert.InDelta(t, 2386.14, result.MonthlyPayment, 0.01)
	assert.InDelta(t, 12460, result.InsurancePremium, 1e-6)
	assert.Equal(t, constants.DefaultStressFloorRate, result.QualifyingRate)
	assert.False(t, result.Qualifies)

	assert.Equal(t, 1.0, counterValue(t, registry, "homecalc_scenarios_evaluated_total", map[string]string{"qualifies": "false"}))
	assert.Equal(t, 1.0, counterValue(t, registry, "homecalc_http_requests_total", map[string]string{"endpoint": "scenario", "code": "200"}))
}

func TestHandleScenarioOverrides(t *testing.T) {
	handler, _ := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	body := `{"policy": {"stressFloorRate": 6.99}, ` + profileJSON + `, "price": 700000, "minimumDownPayment": true}`
	rr := performJSON(t, handler, "/api/scenario", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var result mortgage.ScenarioResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.InDelta(t, 45000, result.DownPayment, 1e-6)
	assert.Equal(t, 6.99, result.QualifyingRate)
}

func TestHandleScenarioErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		status   int
		fragment string
	}{
		{"Not JSON", `price: 5`, http.StatusBadRequest, "JSON object"},
		{"No price", `{` + profileJSON + `}`, http.StatusBadRequest, "needs a price"},
		{"Negative price", `{` + profileJSON + `, "price": -1}`, http.StatusBadRequest, "invalid input"},
		{"Zero income", `{"profile": {"amortizationYears": 25}, "price": 400000}`, http.StatusBadRequest, "division by zero"},
		{"Bad policy", `{"policy": {"closingCostRate": 5}, ` + profileJSON + `, "price": 400000}`, http.StatusBadRequest, "closing cost rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)
			rr := performJSON(t, handler, "/api/scenario", tt.body)
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
			if msg := decodeError(t, rr); !strings.Contains(msg, tt.fragment) {
				t.Fatalf("expected error containing %q, got %q", tt.fragment, msg)
			}
		})
	}
}

func TestHandleAffordability(t *testing.T) {
	handler, _ := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	rr := performJSON(t, handler, "/api/affordability", `{`+profileJSON+`}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp affordabilityResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Bands, 3)
	for _, band := range resp.Bands {
		assert.True(t, band.Affordability.Feasible, band.Band.Name)
		require.NotNil(t, band.Scenario)
		assert.InDelta(t, band.Band.TargetTDS, band.Scenario.QualifyingTDS, 1e-6)
	}
	assert.Greater(t, resp.Bands[0].Affordability.Price, resp.Bands[2].Affordability.Price)

	rr = performJSON(t, handler, "/api/affordability", `{`+profileJSON+`, "targetTds": 40}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Bands, 1)
	assert.Equal(t, 40.0, resp.Bands[0].Affordability.TargetRatio)
}

func TestHandleAffordabilityInfeasible(t *testing.T) {
	handler, registry := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	body := `{"profile": {"annualIncome": 60000, "interestRate": 5, "amortizationYears": 25, "debts": {"carLoan": 3000}}, "targetTds": 32}`
	rr := performJSON(t, handler, "/api/affordability", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp affordabilityResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Bands, 1)
	assert.False(t, resp.Bands[0].Affordability.Feasible)
	assert.Nil(t, resp.Bands[0].Scenario)

	assert.Equal(t, 1.0, counterValue(t, registry, "homecalc_affordability_infeasible_total", map[string]string{"band": "32.00% TDS"}))
}

func TestHandleAffordabilityLongAmortization(t *testing.T) {
	handler, _ := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	body := `{"profile": {"annualIncome": 105000, "downPayment": 80000, "interestRate": 100,
  "amortizationYears": 800, "housing": {"propertyTax": 350, "utilities": 400}, "debts": {"carLoan": 500}}, "targetTds": 44}`
	rr := performJSON(t, handler, "/api/affordability", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp affordabilityResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Bands, 1)
	assert.True(t, resp.Bands[0].Affordability.Feasible)
	assert.InDelta(t, 2600*12+80000, resp.Bands[0].Affordability.Price, 0.01)
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	h := &handler{logger: zap.NewNop()}

	rr := httptest.NewRecorder()
	h.writeJSON(rr, http.StatusOK, map[string]float64{"price": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "failed to encode response", decodeError(t, rr))
}

func TestHandleVersion(t *testing.T) {
	handler, _ := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "test", resp["version"])

	defaultHandler := NewHandler(nil, 0, "  ", nil)
	rr = httptest.NewRecorder()
	defaultHandler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "dev", resp["version"])
}

func TestMetricsEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t, constants.DefaultMaxUploadSizeBytes)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/version", nil))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `homecalc_http_requests_total{code="200",endpoint="version"} 1`)
	assert.Contains(t, rr.Body.String(), "homecalc_http_request_duration_seconds")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(mortgage.ErrInvalidInput))
	assert.Equal(t, http.StatusBadRequest, statusFor(mortgage.ErrDivisionByZero))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}

func counterValue(t *testing.T, registry *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			matched := 0
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] == pair.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp["error"]
}

func performUpload(t *testing.T, handler http.Handler, content, filename string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/report", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr
}

func performJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr
}
