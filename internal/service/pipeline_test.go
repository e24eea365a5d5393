package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Swapnil565/FloatChat/internal/model"
)

type fakeGenerator struct {
	sql string
	err error
}

func (g *fakeGenerator) Generate(ctx context.Context, userText string) (string, error) {
	return g.sql, g.err
}

type fakeStore struct {
	measurements []model.Measurement
	fetchErr     error
	similar      []string
	logged       chan model.QueryLog
}

func (s *fakeStore) FetchMeasurements(ctx context.Context, sqlQuery string) ([]model.Measurement, error) {
	return s.measurements, s.fetchErr
}

func (s *fakeStore) LogQuery(ctx context.Context, entry model.QueryLog) error {
	if s.logged != nil {
		s.logged <- entry
	}
	return nil
}

func (s *fakeStore) SimilarQueries(ctx context.Context, embedding []float32, limit int) ([]string, error) {
	return s.similar, nil
}

type fakeRenderer struct {
	panicOn model.ChartType
}

func (r *fakeRenderer) Render(chartType model.ChartType, measurements []model.Measurement, summary model.DataSummary) model.ChartResult {
	if chartType == r.panicOn {
		panic("renderer exploded")
	}
	return model.ChartResult{
		ChartType:    chartType,
		Description:  "test chart",
		ArtifactPath: fmt.Sprintf("plots/%s.json", chartType),
	}
}

type fakeNarrator struct {
	followUps []string
}

func (n *fakeNarrator) Narrate(ctx context.Context, userQuery string, intent model.QueryIntent, summary model.DataSummary) string {
	return "narrated answer"
}

func (n *fakeNarrator) FollowUps(ctx context.Context, userQuery string, intent model.QueryIntent, summary model.DataSummary) []string {
	return n.followUps
}

type fakeEmbedder struct {
	err error
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func testMeasurements(n int) []model.Measurement {
	sal := 35.0
	out := make([]model.Measurement, n)
	for i := range out {
		out[i] = model.Measurement{
			FloatID:      5905529,
			Latitude:     19.0 + float64(i)*0.01,
			Longitude:    72.8,
			PressureDbar: float64(i) * 10,
			Temperature:  28 - float64(i)*0.1,
			Salinity:     &sal,
			Timestamp:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}

func newTestPipeline(store *fakeStore, renderer *fakeRenderer, embedder Embedder) *Pipeline {
	return NewPipeline(
		NewPlotClassifier(0.3),
		&fakeGenerator{sql: "SELECT * FROM argo_floats LIMIT 10;"},
		store,
		renderer,
		&fakeNarrator{},
		embedder,
	)
}

func TestProcessQuery_Success(t *testing.T) {
	store := &fakeStore{measurements: testMeasurements(50)}
	p := newTestPipeline(store, &fakeRenderer{}, nil)

	resp := p.ProcessQuery(context.Background(), "temperature profile near mumbai")

	require.NotNil(t, resp)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "narrated answer", resp.ChatResponse)
	assert.Equal(t, "SELECT * FROM argo_floats LIMIT 10;", resp.SQLQuery)
	require.NotNil(t, resp.DataSummary)
	assert.Equal(t, 50, resp.DataSummary.RecordCount)
	require.NotNil(t, resp.QueryIntent)
	assert.Equal(t, "Mumbai", resp.QueryIntent.Location)

	require.Equal(t, len(resp.ChosenCharts), len(resp.Charts))
	for i, chart := range resp.Charts {
		assert.Equal(t, resp.ChosenCharts[i], chart.ChartType)
		assert.Empty(t, chart.Error)
		assert.NotEmpty(t, chart.ArtifactPath)
	}
}

func TestProcessQuery_AttachesFollowUps(t *testing.T) {
	store := &fakeStore{measurements: testMeasurements(5)}
	p := NewPipeline(
		NewPlotClassifier(0.3),
		&fakeGenerator{sql: "SELECT 1;"},
		store,
		&fakeRenderer{},
		&fakeNarrator{followUps: []string{"What about salinity?"}},
		nil,
	)

	resp := p.ProcessQuery(context.Background(), "surface temperature")

	assert.True(t, resp.Success)
	assert.Equal(t, []string{"What about salinity?"}, resp.Suggestions)
}

func TestProcessQuery_GeneratorFailureUsesFallbackQuery(t *testing.T) {
	store := &fakeStore{measurements: testMeasurements(5)}
	p := NewPipeline(
		NewPlotClassifier(0.3),
		&fakeGenerator{err: errors.New("llm down")},
		store,
		&fakeRenderer{},
		&fakeNarrator{},
		nil,
	)

	resp := p.ProcessQuery(context.Background(), "show me ocean data")

	assert.True(t, resp.Success)
	assert.Equal(t, FallbackQuery, resp.SQLQuery)
}

func TestProcessQuery_FetchFailure(t *testing.T) {
	store := &fakeStore{fetchErr: errors.New("connection refused")}
	p := newTestPipeline(store, &fakeRenderer{}, nil)

	resp := p.ProcessQuery(context.Background(), "temperature near chennai")

	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
	assert.Equal(t, errorSuggestions, resp.Suggestions)
	assert.Empty(t, resp.Charts)
}

func TestProcessQuery_NoData(t *testing.T) {
	store := &fakeStore{}
	p := newTestPipeline(store, &fakeRenderer{}, nil)

	resp := p.ProcessQuery(context.Background(), "temperature on the moon")

	assert.False(t, resp.Success)
	assert.Empty(t, resp.Charts)
	assert.Equal(t, noDataSuggestions, resp.Suggestions)
	assert.NotEmpty(t, resp.ChatResponse)
	require.NotNil(t, resp.QueryIntent)
}

func TestProcessQuery_NoDataWithSimilarQueries(t *testing.T) {
	similar := []string{"temperature near mumbai", "arabian sea salinity"}
	store := &fakeStore{similar: similar}
	p := newTestPipeline(store, &fakeRenderer{}, &fakeEmbedder{})

	resp := p.ProcessQuery(context.Background(), "temperature on the moon")

	assert.False(t, resp.Success)
	assert.Equal(t, similar, resp.Suggestions)
}

func TestProcessQuery_EmbedderFailureKeepsStaticSuggestions(t *testing.T) {
	store := &fakeStore{similar: []string{"should not appear"}}
	p := newTestPipeline(store, &fakeRenderer{}, &fakeEmbedder{err: errors.New("no embeddings")})

	resp := p.ProcessQuery(context.Background(), "nothing matches this")

	assert.Equal(t, noDataSuggestions, resp.Suggestions)
}

func TestProcessQuery_RenderPanicIsolatedToOneChart(t *testing.T) {
	store := &fakeStore{measurements: testMeasurements(20)}
	p := newTestPipeline(store, &fakeRenderer{panicOn: model.ChartProfile}, nil)

	resp := p.ProcessQuery(context.Background(), "temperature profile near mumbai")

	assert.True(t, resp.Success)

	failed := 0
	for _, chart := range resp.Charts {
		if chart.ChartType == model.ChartProfile {
			assert.NotEmpty(t, chart.Error)
			failed++
		} else {
			assert.Empty(t, chart.Error)
		}
	}
	assert.Equal(t, 1, failed)
}

func TestProcessQuery_NeverPanics(t *testing.T) {
	store := &fakeStore{measurements: testMeasurements(3)}
	p := newTestPipeline(store, &fakeRenderer{}, nil)

	for _, query := range []string{
		"",
		"   ",
		"'; DROP TABLE argo_floats; --",
		"日本語のクエリ",
		"a very long query " + string(make([]byte, 10000)),
	} {
		resp := p.ProcessQuery(context.Background(), query)
		require.NotNil(t, resp, "query %q", query)
	}
}

func TestProcessQuery_LogsAsynchronously(t *testing.T) {
	store := &fakeStore{
		measurements: testMeasurements(10),
		logged:       make(chan model.QueryLog, 1),
	}
	p := newTestPipeline(store, &fakeRenderer{}, nil)

	resp := p.ProcessQuery(context.Background(), "salinity profile")

	select {
	case entry := <-store.logged:
		assert.Equal(t, resp.SessionID, entry.SessionID)
		assert.Equal(t, "salinity profile", entry.Query)
		assert.Equal(t, 10, entry.RecordCount)
		assert.NotEmpty(t, entry.ChosenCharts)
	case <-time.After(2 * time.Second):
		t.Fatal("query was never logged")
	}
}
