package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/iwvelando/cashflow-forecast/internal/forecast"
	"github.com/iwvelando/cashflow-forecast/internal/session"
	"github.com/iwvelando/cashflow-forecast/pkg/constants"
	"github.com/iwvelando/cashflow-forecast/pkg/format"
	"github.com/iwvelando/cashflow-forecast/pkg/output"
	"github.com/iwvelando/cashflow-forecast/pkg/projection"
	"github.com/iwvelando/cashflow-forecast/pkg/schedule"
	"github.com/iwvelando/cashflow-forecast/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	book          *session.Book
	maxUploadSize int64
	version       string
}

func newHandler(logger *zap.Logger, book *session.Book, maxUploadSize int64, version string) *handler {
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	return &handler{
		logger:        logger,
		book:          book,
		maxUploadSize: maxUploadSize,
		version:       normalizeVersion(version),
	}
}

type eventsResponse struct {
	Counts  map[schedule.Category]int         `json:"counts"`
	Entries map[schedule.Category][]entryView `json:"entries"`
}

type entryView struct {
	session.Entry
	Title      string          `json:"title"`
	Operations int             `json:"operations"`
	Fields     schedule.Fields `json:"fields"`
}

// projectionRequest omits initial or options to use the form defaults.
type projectionRequest struct {
	Initial *schedule.Fields   `json:"initial"`
	Options *projectionOptions `json:"options"`
}

type projectionOptions struct {
	Horizon              int      `json:"horizon"`
	WithRegulation       *bool    `json:"withRegulation"`
	FixedPeriodicPayment *float64 `json:"fixedPeriodicPayment"`
	StartDate            string   `json:"startDate"`
	CurrencyPrefix       string   `json:"currencyPrefix"`
	ThousandsSeparator   string   `json:"thousandsSeparator"`
}

type projectionResponse struct {
	Columns       []string                  `json:"columns"`
	Rows          []projectionRow           `json:"rows"`
	Summary       projection.Summary        `json:"summary"`
	Discrepancies []projection.Discrepancy  `json:"discrepancies,omitempty"`
	Notes         []string                  `json:"notes,omitempty"`
	Reinvestments map[schedule.Category]int `json:"reinvestments"`
	CSV           string                    `json:"csv"`
	Duration      string                    `json:"duration"`
}

type projectionRow struct {
	Label string `json:"label"`
	projection.Row
	Formatted []string `json:"formatted"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	snap := h.book.Snapshot()
	resp := eventsResponse{
		Counts:  make(map[schedule.Category]int),
		Entries: make(map[schedule.Category][]entryView),
	}
	for _, c := range schedule.Categories() {
		views := make([]entryView, 0, len(snap.Entries[c]))
		for _, entry := range snap.Entries[c] {
			views = append(views, entryView{
				Entry:      entry,
				Title:      c.Title(),
				Operations: entry.Event.Operations(),
				Fields:     entry.Event.Fields(),
			})
		}
		resp.Entries[c] = views
		resp.Counts[c] = len(views)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAddEvent"

	category, ok := h.categoryParam(w, r, op)
	if !ok {
		return
	}

	var fields schedule.Fields
	if !h.decodeJSON(w, r, &fields, op) {
		return
	}
	if err := validation.ValidateFields(string(category), fields, true); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	entry, err := h.book.Add(category, schedule.New(fields))
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusCreated, entryView{
		Entry:      entry,
		Title:      category.Title(),
		Operations: entry.Event.Operations(),
		Fields:     entry.Event.Fields(),
	})
}

func (h *handler) handleClearCategory(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleClearCategory"

	category, ok := h.categoryParam(w, r, op)
	if !ok {
		return
	}
	if err := h.book.Clear(category); err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleClearAll(w http.ResponseWriter, r *http.Request) {
	h.book.ClearAll()
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleExportEvents(w http.ResponseWriter, r *http.Request) {
	data, err := h.book.Snapshot().YAML()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error(), "server.handleExportEvents")
		return
	}
	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="reinvestments.yaml"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write YAML response",
			zap.String("op", "server.handleExportEvents"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjection"
	start := time.Now()

	result, f, ok := h.project(w, r, op)
	if !ok {
		return
	}

	csvData, err := output.CsvString(result.Timeline, result.Labels, nil)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	rows := make([]projectionRow, 0, result.Timeline.Len())
	for t, row := range result.Timeline.Rows() {
		rows = append(rows, projectionRow{
			Label:     result.Labels[t],
			Row:       row,
			Formatted: output.FormatRow(row, f),
		})
	}

	h.writeJSON(w, http.StatusOK, projectionResponse{
		Columns:       projection.Columns,
		Rows:          rows,
		Summary:       result.Summary,
		Discrepancies: result.Discrepancies,
		Notes:         result.Notes,
		Reinvestments: h.book.Counts(),
		CSV:           csvData,
		Duration:      time.Since(start).String(),
	})
}

func (h *handler) handleProjectionCSV(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjectionCSV"

	result, _, ok := h.project(w, r, op)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", constants.CSVFileName))
	w.WriteHeader(http.StatusOK)
	if err := output.CsvFormat(w, result.Timeline, result.Labels, nil); err != nil {
		h.logger.Error("failed to write CSV response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

// project decodes a projection request and runs it against a snapshot of the
// book. It writes the error response itself and reports ok=false on failure.
func (h *handler) project(w http.ResponseWriter, r *http.Request, op string) (forecast.Forecast, format.Formatter, bool) {
	var req projectionRequest
	if !h.decodeJSON(w, r, &req, op) {
		return forecast.Forecast{}, format.Formatter{}, false
	}

	initial := schedule.DefaultFields()
	if req.Initial != nil {
		initial = *req.Initial
	}
	initial.StartPeriod = 0
	if err := validation.ValidateFields("initial", initial, false); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return forecast.Forecast{}, format.Formatter{}, false
	}

	opts := projection.DefaultOptions()
	reqOpts := projectionOptions{}
	if req.Options != nil {
		reqOpts = *req.Options
		var err error
		if opts, err = reqOpts.engineOptions(); err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return forecast.Forecast{}, format.Formatter{}, false
		}
	}

	result, err := forecast.Run(h.logger, forecast.Request{
		Options:       opts,
		StartDate:     reqOpts.StartDate,
		Initial:       schedule.New(initial),
		Reinvestments: h.book.Snapshot().Events(),
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("projection failed: %v", err), op)
		return forecast.Forecast{}, format.Formatter{}, false
	}

	return result, format.New(reqOpts.CurrencyPrefix, reqOpts.ThousandsSeparator), true
}

func (o projectionOptions) engineOptions() (projection.Options, error) {
	if o.Horizon < 0 || o.Horizon > constants.MaxHorizon {
		return projection.Options{}, fmt.Errorf("horizon must not exceed %d periods, got %d: %w",
			constants.MaxHorizon, o.Horizon, validation.ErrOutOfRange)
	}
	if o.FixedPeriodicPayment != nil && *o.FixedPeriodicPayment < 0 {
		return projection.Options{}, fmt.Errorf("fixedPeriodicPayment %.2f: %w", *o.FixedPeriodicPayment, validation.ErrNegativeValue)
	}
	withRegulation := true
	if o.WithRegulation != nil {
		withRegulation = *o.WithRegulation
	}
	return projection.Options{
		Horizon:              o.Horizon,
		WithRegulation:       withRegulation,
		FixedPeriodicPayment: o.FixedPeriodicPayment,
	}, nil
}

func (h *handler) categoryParam(w http.ResponseWriter, r *http.Request, op string) (schedule.Category, bool) {
	raw := chi.URLParam(r, "category")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	category, err := schedule.ParseCategory(raw)
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error(), op)
		return "", false
	}
	return category, true
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxUploadSize), op)
			return false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), op)
		return false
	}
	return true
}

func statusFor(err error) int {
	if errors.Is(err, session.ErrUnknownCategory) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
