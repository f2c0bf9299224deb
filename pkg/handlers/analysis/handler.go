package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/echolon-ai/echolon/pkg/adapters"
	"github.com/echolon-ai/echolon/pkg/models/api"
	"github.com/echolon-ai/echolon/pkg/models/domain"
	storemodels "github.com/echolon-ai/echolon/pkg/models/store"
	"github.com/echolon-ai/echolon/pkg/services/benchmark"
	"github.com/echolon-ai/echolon/pkg/services/engine"
	"github.com/echolon-ai/echolon/pkg/services/session"
	"github.com/echolon-ai/echolon/pkg/store/csvsource"
	"github.com/echolon-ai/echolon/pkg/store/duckdb/history"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler exposes the metrics engine over HTTP. History is optional;
// when nil, snapshots and notes live only in the session.
type Handler struct {
	analyzer   *engine.Analyzer
	session    *session.Session
	benchmarks benchmark.Registry
	history    history.Store
}

func NewHandler(
	analyzer *engine.Analyzer,
	sess *session.Session,
	benchmarks benchmark.Registry,
	hist history.Store,
) *Handler {
	return &Handler{
		analyzer:   analyzer,
		session:    sess,
		benchmarks: benchmarks,
		history:    hist,
	}
}

// Analyze ingests a CSV body and returns the full analysis report.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	table, err := csvsource.Read(r.Body)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			http.Error(w, "uploaded CSV has no usable rows or columns", http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("failed to parse CSV: %v", err), http.StatusBadRequest)
		return
	}

	report, err := h.analyzer.Analyze(ctx, table, h.session.Goals())
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			http.Error(w, "uploaded CSV has no usable rows or columns", http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Msg("analysis failed")
		http.Error(w, "analysis failed", http.StatusInternalServerError)
		return
	}

	h.session.SetLastReport(report)
	h.persistSnapshot(r, report)

	writeJSON(w, logger, adapters.MapDomainReportToAPI(report))
}

func (h *Handler) persistSnapshot(r *http.Request, report *domain.AnalysisReport) {
	if h.history == nil {
		return
	}
	logger := zerolog.Ctx(r.Context())

	encoded, err := json.Marshal(adapters.MapDomainReportToAPI(report))
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode snapshot")
		return
	}
	snapshot := storemodels.AnalysisSnapshot{
		ID:          fmt.Sprintf("snap-%d", report.GeneratedAt.UnixNano()),
		Industry:    report.Industry,
		GeneratedAt: report.GeneratedAt,
		Report:      string(encoded),
	}
	if err := h.history.AddSnapshot(r.Context(), snapshot); err != nil {
		// History is a convenience; analysis still succeeds.
		logger.Error().Err(err).Msg("failed to persist snapshot")
	}
}

// Simulate runs a what-if projection against the supplied baseline or,
// when omitted, the latest analyzed snapshot.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.ScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid scenario request: %v", err), http.StatusBadRequest)
		return
	}

	baseline := make(map[domain.MetricKind]float64)
	baselinePeriod := time.Time{}

	if len(req.Baseline) > 0 {
		for name, value := range req.Baseline {
			kind := domain.MetricKind(name)
			if !kind.Valid() {
				http.Error(w, fmt.Sprintf("unknown metric %q in baseline", name), http.StatusBadRequest)
				return
			}
			baseline[kind] = value
		}
	} else {
		last := h.session.LastReport()
		if last == nil || last.Metrics == nil {
			http.Error(w, "no baseline available; upload data first or provide one", http.StatusBadRequest)
			return
		}
		baseline = last.Metrics.LatestSnapshot()
		baselinePeriod = last.Metrics.LatestPeriod()
	}

	result := h.analyzer.SimulateSnapshot(baseline, baselinePeriod, domain.ScenarioDriverSet{
		AdSpendPctChange: req.Drivers.AdSpendPctChange,
		PricePctChange:   req.Drivers.PricePctChange,
		ChurnPctChange:   req.Drivers.ChurnPctChange,
	})

	writeJSON(w, logger, adapters.MapDomainScenarioToAPI(result))
}

// GetBenchmarks lists the reference entries for an industry.
func (h *Handler) GetBenchmarks(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	industry := r.URL.Query().Get("industry")
	if industry == "" {
		industry = h.analyzer.Industry()
	}

	entries, err := h.benchmarks.Entries(industry)
	if err != nil {
		http.Error(w, fmt.Sprintf("unknown industry %q", industry), http.StatusNotFound)
		return
	}

	var response []api.BenchmarkEntry
	for _, e := range entries {
		response = append(response, api.BenchmarkEntry{
			Metric:          string(e.Metric),
			IndustryAverage: e.IndustryAverage,
			Unit:            e.Unit,
		})
	}
	writeJSON(w, logger, response)
}

// ListGoals returns the session's active goals.
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	response := []api.Goal{}
	for _, g := range h.session.Goals() {
		response = append(response, api.Goal{
			Metric:       string(g.Metric),
			TargetValue:  g.TargetValue,
			TargetPeriod: g.TargetPeriod,
		})
	}
	writeJSON(w, logger, response)
}

// SetGoal creates or edits the goal for one metric.
func (h *Handler) SetGoal(w http.ResponseWriter, r *http.Request) {
	var req api.Goal
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid goal: %v", err), http.StatusBadRequest)
		return
	}

	kind := domain.MetricKind(req.Metric)
	if !kind.Valid() {
		http.Error(w, fmt.Sprintf("unknown metric %q", req.Metric), http.StatusBadRequest)
		return
	}

	h.session.SetGoal(domain.Goal{
		Metric:       kind,
		TargetValue:  req.TargetValue,
		TargetPeriod: req.TargetPeriod,
	})

	w.WriteHeader(http.StatusNoContent)
}

// RemoveGoal discards the goal for the metric in the URL.
func (h *Handler) RemoveGoal(w http.ResponseWriter, r *http.Request) {
	kind := domain.MetricKind(chi.URLParam(r, "metric"))
	if !kind.Valid() {
		http.Error(w, fmt.Sprintf("unknown metric %q", kind), http.StatusBadRequest)
		return
	}
	h.session.RemoveGoal(kind)
	w.WriteHeader(http.StatusNoContent)
}

// ListNotes returns the session notes.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	response := []api.Note{}
	for _, n := range h.session.Notes() {
		response = append(response, api.Note{Text: n.Text, CreatedAt: n.CreatedAt})
	}
	writeJSON(w, logger, response)
}

// AddNote appends a note to the session and, when available, the
// history store.
func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.Note
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid note: %v", err), http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		http.Error(w, "note text is required", http.StatusBadRequest)
		return
	}

	note := h.session.AddNote(req.Text)

	if h.history != nil {
		err := h.history.AddNote(ctx, storemodels.Note{
			ID:        fmt.Sprintf("note-%d", note.CreatedAt.UnixNano()),
			Text:      note.Text,
			CreatedAt: note.CreatedAt,
		})
		if err != nil {
			logger.Error().Err(err).Msg("failed to persist note")
		}
	}

	writeJSON(w, logger, api.Note{Text: note.Text, CreatedAt: note.CreatedAt})
}

// History lists persisted snapshot headers, most recent first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	if h.history == nil {
		writeJSON(w, logger, []api.HistoryEntry{})
		return
	}

	snapshots, err := h.history.ListSnapshots(ctx, 50)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list snapshots")
		http.Error(w, "failed to list history", http.StatusInternalServerError)
		return
	}

	response := []api.HistoryEntry{}
	for _, s := range snapshots {
		response = append(response, api.HistoryEntry{
			ID:          s.ID,
			Industry:    s.Industry,
			GeneratedAt: s.GeneratedAt,
		})
	}
	writeJSON(w, logger, response)
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
