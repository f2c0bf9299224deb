package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	handlers "github.com/echolon-ai/echolon/pkg/handlers/analysis"
	"github.com/echolon-ai/echolon/pkg/models/api"
	storemodels "github.com/echolon-ai/echolon/pkg/models/store"
	"github.com/echolon-ai/echolon/pkg/services/benchmark"
	"github.com/echolon-ai/echolon/pkg/services/engine"
	"github.com/echolon-ai/echolon/pkg/services/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockHistory struct {
	mock.Mock
}

func (m *mockHistory) AddSnapshot(ctx context.Context, snapshot storemodels.AnalysisSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *mockHistory) ListSnapshots(ctx context.Context, limit int) ([]storemodels.AnalysisSnapshot, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]storemodels.AnalysisSnapshot), args.Error(1)
}

func (m *mockHistory) GetSnapshot(ctx context.Context, id string) (*storemodels.AnalysisSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storemodels.AnalysisSnapshot), args.Error(1)
}

func (m *mockHistory) AddNote(ctx context.Context, note storemodels.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *mockHistory) ListNotes(ctx context.Context) ([]storemodels.Note, error) {
	args := m.Called(ctx)
	return args.Get(0).([]storemodels.Note), args.Error(1)
}

const uploadCSV = `Date,Revenue,Orders,Churn Rate
2024-01-01,"$95,000.00",1100,4%
2024-02-01,"$85,000.00",1000,5%
`

func newTestServer(t *testing.T, hist *mockHistory) *httptest.Server {
	t.Helper()

	logger := zerolog.New(zerolog.NewTestWriter(t))
	analyzer := engine.NewAnalyzer(engine.DefaultConfig(), nil, nil)

	var handler *handlers.Handler
	if hist != nil {
		handler = handlers.NewHandler(analyzer, session.New(), benchmark.NewStaticRegistry(), hist)
	} else {
		handler = handlers.NewHandler(analyzer, session.New(), benchmark.NewStaticRegistry(), nil)
	}

	router := ConfigureRouter(Config{
		Dependencies: Dependencies{
			Analysis: handler,
			Logger:   logger,
		},
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestWebAPI_AnalyzeEndpoint(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := http.Post(server.URL+"/api/v1/analysis", "text/csv", strings.NewReader(uploadCSV))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report api.AnalysisReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))

	assert.Equal(t, "general", report.Industry)
	assert.Len(t, report.Profiles, 4)
	require.NotNil(t, report.Metrics)
	assert.True(t, report.Metrics.HasTimeDimension)
	assert.NotEmpty(t, report.Benchmark.Rows)
}

func TestWebAPI_AnalyzeEmptyBody(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := http.Post(server.URL+"/api/v1/analysis", "text/csv", strings.NewReader(""))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "no usable rows")
}

func TestWebAPI_ScenarioAfterAnalysis(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := http.Post(server.URL+"/api/v1/analysis", "text/csv", strings.NewReader(uploadCSV))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payload, _ := json.Marshal(api.ScenarioRequest{
		Drivers: api.ScenarioDrivers{AdSpendPctChange: 0.10},
	})
	resp, err = http.Post(server.URL+"/api/v1/scenario", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result api.ScenarioResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))

	// Latest revenue 85000: 85000 * (1 + 0.3*0.10) = 87550
	assert.InDelta(t, 87550, result.ProjectedRevenue, 1e-6)
	assert.False(t, result.Clamped)
}

func TestWebAPI_ScenarioWithoutBaseline(t *testing.T) {
	server := newTestServer(t, nil)

	payload, _ := json.Marshal(api.ScenarioRequest{})
	resp, err := http.Post(server.URL+"/api/v1/scenario", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebAPI_ScenarioExplicitBaseline(t *testing.T) {
	server := newTestServer(t, nil)

	payload, _ := json.Marshal(api.ScenarioRequest{
		Drivers:  api.ScenarioDrivers{AdSpendPctChange: 0.10},
		Baseline: map[string]float64{"revenue": 100000},
	})
	resp, err := http.Post(server.URL+"/api/v1/scenario", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result api.ScenarioResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.InDelta(t, 103000, result.ProjectedRevenue, 1e-6)
}

func TestWebAPI_GoalsLifecycle(t *testing.T) {
	server := newTestServer(t, nil)

	payload, _ := json.Marshal(api.Goal{Metric: "revenue", TargetValue: 120000})
	resp, err := http.Post(server.URL+"/api/v1/goals", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/v1/goals")
	require.NoError(t, err)
	defer resp.Body.Close()

	var goals []api.Goal
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&goals))
	require.Len(t, goals, 1)
	assert.Equal(t, "revenue", goals[0].Metric)

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/api/v1/goals/revenue", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestWebAPI_GoalUnknownMetric(t *testing.T) {
	server := newTestServer(t, nil)

	payload, _ := json.Marshal(api.Goal{Metric: "widgets", TargetValue: 10})
	resp, err := http.Post(server.URL+"/api/v1/goals", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebAPI_Benchmarks(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/api/v1/benchmarks")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []api.BenchmarkEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	assert.Len(t, entries, 6)

	resp, err = http.Get(server.URL + "/api/v1/benchmarks?industry=mining")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebAPI_NotesAndHistoryPersistence(t *testing.T) {
	hist := new(mockHistory)
	hist.On("AddSnapshot", mock.Anything, mock.Anything).Return(nil)
	hist.On("AddNote", mock.Anything, mock.MatchedBy(func(n storemodels.Note) bool {
		return n.Text == "review churn"
	})).Return(nil)
	hist.On("ListSnapshots", mock.Anything, 50).
		Return([]storemodels.AnalysisSnapshot{{ID: "snap-1", Industry: "general"}}, nil)

	server := newTestServer(t, hist)

	resp, err := http.Post(server.URL+"/api/v1/analysis", "text/csv", strings.NewReader(uploadCSV))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payload, _ := json.Marshal(api.Note{Text: "review churn"})
	resp, err = http.Post(server.URL+"/api/v1/notes", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/v1/history")
	require.NoError(t, err)
	defer resp.Body.Close()

	var entries []api.HistoryEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "snap-1", entries[0].ID)

	hist.AssertExpectations(t)
}
