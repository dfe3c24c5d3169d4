package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cloud-ru/mcp-emi-go/internal/calculations"
	"github.com/cloud-ru/mcp-emi-go/internal/config"
	"github.com/cloud-ru/mcp-emi-go/internal/export"
	"github.com/cloud-ru/mcp-emi-go/internal/metrics"
	"github.com/cloud-ru/mcp-emi-go/internal/tools"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

const maxBodyBytes = 1 << 20

const (
	workbookFilename = "Amortization_Schedule.xlsx"
	reportFilename   = "Amortization_Schedule.pdf"
	workbookMIME     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Server отдает инструменты расчета по HTTP
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	tools  map[string]tools.ToolHandler
	now    func() time.Time
}

// New создает сервер с зарегистрированными инструментами
func New(cfg *config.Config, logger *slog.Logger, tracer trace.Tracer) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		tools:  tools.Registry(cfg, tracer),
		now:    time.Now,
	}
}

// Handler возвращает корневой обработчик с трассировкой запросов
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.healthz)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /tools", s.listTools)
	mux.HandleFunc("POST /tools/{name}", s.callTool)
	mux.HandleFunc("POST /export/xlsx", s.exportWorkbook)
	mux.HandleFunc("POST /export/pdf", s.exportReport)

	return otelhttp.NewHandler(mux, "mcp-emi-server")
}

// HTTPServer собирает http.Server с таймаутами
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"tools": tools.Names(s.tools)})
}

func (s *Server) callTool(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	handler, ok := s.tools[name]
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown tool %q", name)})
		return
	}

	params, err := readParams(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := handler(r.Context(), params)
	if err != nil {
		s.writeToolError(w, name, err)
		return
	}

	s.logger.Debug("tool call completed", slog.String("tool", name))
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) exportWorkbook(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "xlsx", workbookMIME, workbookFilename,
		func(out io.Writer, in calculations.LoanInput, result *calculations.CalculationResult) error {
			return export.WriteWorkbook(out, in, result)
		})
}

func (s *Server) exportReport(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "pdf", "application/pdf", reportFilename,
		func(out io.Writer, in calculations.LoanInput, result *calculations.CalculationResult) error {
			return export.WriteReport(out, in, result, s.now())
		})
}

type exportFunc func(io.Writer, calculations.LoanInput, *calculations.CalculationResult) error

// export рассчитывает график и отдает его файлом. Файл собирается в буфер,
// чтобы при ошибке записи клиент получил код 500, а не обрезанный файл.
func (s *Server) export(w http.ResponseWriter, r *http.Request, format, contentType, filename string, write exportFunc) {
	params, err := readParams(r)
	if err != nil {
		metrics.ExportsGenerated.WithLabelValues(format, "validation_error").Inc()
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	in, err := tools.LoanInputFromParams(s.cfg, params)
	if err != nil {
		metrics.ExportsGenerated.WithLabelValues(format, "validation_error").Inc()
		s.writeToolError(w, "export_"+format, err)
		return
	}

	result, err := calculations.AmortizationSchedule(in)
	if err != nil {
		metrics.ExportsGenerated.WithLabelValues(format, "validation_error").Inc()
		s.writeToolError(w, "export_"+format, err)
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, in, result); err != nil {
		metrics.ExportsGenerated.WithLabelValues(format, "error").Inc()
		s.logger.Error("export failed", slog.String("format", format), slog.String("error", err.Error()))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "не удалось сформировать файл"})
		return
	}

	metrics.ExportsGenerated.WithLabelValues(format, "success").Inc()
	s.logger.Info("export generated",
		slog.String("format", format),
		slog.Int("tenure_months", in.TenureMonths),
		slog.Int("bytes", buf.Len()),
	)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) writeToolError(w http.ResponseWriter, tool string, err error) {
	var fieldErr *calculations.FieldError
	switch {
	case errors.As(err, &fieldErr):
		s.logger.Warn("invalid tool params",
			slog.String("tool", tool),
			slog.String("field", fieldErr.Field),
			slog.String("error", err.Error()),
		)
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: fieldErr.Field})
	case errors.Is(err, calculations.ErrInvalidInput), errors.Is(err, calculations.ErrInvalidDate):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("tool call failed", slog.String("tool", tool), slog.String("error", err.Error()))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func readParams(r *http.Request) (map[string]interface{}, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("could not read body: %w", err)
	}
	params := map[string]interface{}{}
	if len(bytes.TrimSpace(body)) == 0 {
		return params, nil
	}
	if err := json.Unmarshal(body, &params); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return params, nil
}

// writeJSON кодирует ответ до записи заголовка: ошибка кодирования
// (например, NaN в результате) превращается в 500, а не в пустой 200.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode response", slog.Int("status", status), slog.String("error", err.Error()))
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: "не удалось сформировать ответ"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
