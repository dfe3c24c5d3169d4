package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cloud-ru/mcp-emi-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/trace/noop"
)

const loanBody = `{
	"principal": 100000,
	"annual_rate_percent": 14,
	"tenure_months": 24,
	"tax_rate_percent": 18,
	"transaction_date": "2024-01-05",
	"first_due_date": "2024-02-20"
}`

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	return newServer(t, io.Discard).Handler()
}

func newServer(t *testing.T, logOutput io.Writer) *Server {
	t.Helper()
	cfg := &config.Config{
		Port:             8000,
		MaxPrincipal:     1e9,
		MaxMonths:        600,
		MaxRate:          200,
		MaxTaxRate:       100,
		MaxProcessingFee: 1e8,
		StatementDay:     20,
		GraceDays:        20,
	}
	logger := slog.New(slog.NewTextHandler(logOutput, nil))
	s := New(cfg, logger, noop.NewTracerProvider().Tracer("test"))
	s.now = func() time.Time { return time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC) }
	return s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListTools(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/tools", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Tools []string `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Contains(t, got.Tools, "amortization_schedule")
	assert.Contains(t, got.Tools, "billing_cycle")
}

func TestCallTool(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		check      func(*testing.T, map[string]interface{})
	}{
		{
			name:       "amortization schedule",
			path:       "/tools/amortization_schedule",
			body:       loanBody,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, got map[string]interface{}) {
				summary := got["summary"].(map[string]interface{})
				assert.Equal(t, 45.0, summary["first_cycle_days"])
				assert.Len(t, got["schedule"], 24)
			},
		},
		{
			name:       "billing cycle",
			path:       "/tools/billing_cycle",
			body:       `{"transaction_date": "2024-01-05"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, got map[string]interface{}) {
				assert.Equal(t, "2024-01-20", got["billing_date"])
				assert.Equal(t, "2024-02-09", got["due_date"])
			},
		},
		{
			name:       "validation error names the field",
			path:       "/tools/amortization_schedule",
			body:       `{"principal": -1, "annual_rate_percent": 14, "tenure_months": 12}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, got map[string]interface{}) {
				assert.Equal(t, "principal", got["field"])
			},
		},
		{
			name:       "invalid date",
			path:       "/tools/billing_cycle",
			body:       `{"transaction_date": "2024-13-01"}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, got map[string]interface{}) {
				assert.Equal(t, "transaction_date", got["field"])
			},
		},
		{
			name:       "malformed json",
			path:       "/tools/amortization_schedule",
			body:       `{invalid-json}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown tool",
			path:       "/tools/deposit",
			body:       `{}`,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.check == nil {
				return
			}
			var got map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			tt.check(t, got)
		})
	}
}

func TestCallToolUnencodableResult(t *testing.T) {
	var logs bytes.Buffer
	s := newServer(t, &logs)
	s.tools["broken"] = func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return map[string]float64{"standard_emi": math.NaN()}, nil
	}

	w := do(t, s.Handler(), http.MethodPost, "/tools/broken", `{}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var got errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotEmpty(t, got.Error)
	assert.Contains(t, logs.String(), "failed to encode response")
}

func TestCallToolTinyRate(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodPost, "/tools/amortization_schedule",
		`{"principal": 100000, "annual_rate_percent": 1e-14, "tenure_months": 24}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got struct {
		Summary struct {
			StandardEMI float64 `json:"standard_emi"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.InDelta(t, 100000.0/24, got.Summary.StandardEMI, 1e-6)
}

func TestCallToolMethodNotAllowed(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodGet, "/tools/amortization_schedule", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestExportWorkbook(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodPost, "/export/xlsx", loanBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Amortization_Schedule.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Summary", "Amortization Schedule"}, f.GetSheetList())
}

func TestExportReport(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodPost, "/export/pdf", loanBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
}

func TestExportRejectsInvalidInput(t *testing.T) {
	w := do(t, newTestServer(t), http.MethodPost, "/export/pdf", `{"principal": 1000, "annual_rate_percent": 12}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "tenure_months")
}
