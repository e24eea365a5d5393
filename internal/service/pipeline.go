package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Swapnil565/FloatChat/internal/model"
)

// QueryGenerator produces SQL for a natural-language query
type QueryGenerator interface {
	Generate(ctx context.Context, userText string) (string, error)
}

// MeasurementStore is the retrieval and query-log surface of the repository
type MeasurementStore interface {
	FetchMeasurements(ctx context.Context, sqlQuery string) ([]model.Measurement, error)
	LogQuery(ctx context.Context, entry model.QueryLog) error
	SimilarQueries(ctx context.Context, embedding []float32, limit int) ([]string, error)
}

// Renderer produces one chart artifact for a chart type
type Renderer interface {
	Render(chartType model.ChartType, measurements []model.Measurement, summary model.DataSummary) model.ChartResult
}

// NarrationService writes the chat answer for a query and its data, and
// optionally proposes follow-up questions.
type NarrationService interface {
	Narrate(ctx context.Context, userQuery string, intent model.QueryIntent, summary model.DataSummary) string
	FollowUps(ctx context.Context, userQuery string, intent model.QueryIntent, summary model.DataSummary) []string
}

// Embedder maps text to a vector for similar-query lookup. Optional: a nil
// Embedder disables the vector features without affecting the pipeline.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// llmEmbedder adapts LLMClient's batch embeddings API to single texts
type llmEmbedder struct {
	llm *LLMClient
}

func NewLLMEmbedder(llm *LLMClient) Embedder {
	return &llmEmbedder{llm: llm}
}

func (e *llmEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.llm.CreateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

var noDataSuggestions = []string{
	"Show available data regions",
	"Temperature data near major cities",
	"Recent ocean measurements",
}

var errorSuggestions = []string{
	"Use simpler query terms",
	"Try location-based queries",
	"Ask for specific plot types",
}

// Pipeline runs a user query end to end: classify the plots it calls for,
// generate and execute SQL, summarize the data, render each chosen chart,
// and narrate the answer. Every stage is guarded so a failure in one
// degrades the response instead of aborting it.
type Pipeline struct {
	classifier *PlotClassifier
	generator  QueryGenerator
	store      MeasurementStore
	renderer   Renderer
	narrator   NarrationService
	embedder   Embedder
}

func NewPipeline(classifier *PlotClassifier, generator QueryGenerator, store MeasurementStore, renderer Renderer, narrator NarrationService, embedder Embedder) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		generator:  generator,
		store:      store,
		renderer:   renderer,
		narrator:   narrator,
		embedder:   embedder,
	}
}

// ProcessQuery never returns an error or panics: any failure is folded into
// the response envelope so the HTTP layer always has something to send.
func (p *Pipeline) ProcessQuery(ctx context.Context, userQuery string) (resp *model.PipelineResponse) {
	start := time.Now()
	sessionID := uuid.NewString()[:8]

	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Pipeline panic for session %s: %v", sessionID, r)
			resp = p.errorResponse(sessionID, userQuery, "internal processing error", start)
		}
	}()

	logrus.Infof("Processing query [%s]: %s", sessionID, truncateQuery(userQuery))

	// Stage 1: decide which charts the question calls for
	chosenCharts, scores := p.classifier.Classify(userQuery)

	// Stage 2: natural language to SQL
	sqlQuery, err := p.generator.Generate(ctx, userQuery)
	if err != nil {
		logrus.Warnf("SQL generation unavailable, using fallback query: %v", err)
		sqlQuery = FallbackQuery
	}

	// Stage 3: retrieval
	measurements, err := p.store.FetchMeasurements(ctx, sqlQuery)
	if err != nil {
		logrus.Errorf("Data retrieval failed for session %s: %v", sessionID, err)
		return p.errorResponse(sessionID, userQuery, "data retrieval failed", start)
	}

	intent := ExtractIntent(userQuery, sqlQuery)

	if len(measurements) == 0 {
		return p.noDataResponse(ctx, sessionID, userQuery, sqlQuery, intent, start)
	}

	summary := Summarize(measurements)

	// Stage 4: render each chosen chart; one bad chart never sinks the rest
	charts := make([]model.ChartResult, 0, len(chosenCharts))
	for _, chartType := range chosenCharts {
		charts = append(charts, p.renderChart(chartType, measurements, summary))
	}

	// Stage 5: narration
	answer := p.narrator.Narrate(ctx, userQuery, intent, summary)
	followUps := p.narrator.FollowUps(ctx, userQuery, intent, summary)

	elapsed := time.Since(start).Seconds()
	p.logQuery(userQuery, sqlQuery, intent, chosenCharts, len(measurements), elapsed, sessionID)

	return &model.PipelineResponse{
		Success:           true,
		SessionID:         sessionID,
		UserQuery:         userQuery,
		ChatResponse:      answer,
		Charts:            charts,
		ChartScores:       scores,
		ChosenCharts:      chosenCharts,
		DataSummary:       &summary,
		QueryIntent:       &intent,
		SQLQuery:          sqlQuery,
		Suggestions:       followUps,
		ProcessingSeconds: elapsed,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}
}

// renderChart isolates renderer panics to the single chart they occur in
func (p *Pipeline) renderChart(chartType model.ChartType, measurements []model.Measurement, summary model.DataSummary) (result model.ChartResult) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Rendering %s panicked: %v", chartType, r)
			result = model.ChartResult{ChartType: chartType, Error: "chart rendering failed"}
		}
	}()
	return p.renderer.Render(chartType, measurements, summary)
}

func (p *Pipeline) noDataResponse(ctx context.Context, sessionID, userQuery, sqlQuery string, intent model.QueryIntent, start time.Time) *model.PipelineResponse {
	suggestions := p.suggestAlternatives(ctx, userQuery)
	return &model.PipelineResponse{
		Success:           false,
		SessionID:         sessionID,
		UserQuery:         userQuery,
		ChatResponse:      "No measurements matched your query. Try one of the suggestions below.",
		QueryIntent:       &intent,
		SQLQuery:          sqlQuery,
		Suggestions:       suggestions,
		ProcessingSeconds: time.Since(start).Seconds(),
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}
}

// suggestAlternatives upgrades the static suggestions with past queries that
// actually returned data, found by embedding similarity when available.
func (p *Pipeline) suggestAlternatives(ctx context.Context, userQuery string) []string {
	if p.embedder == nil {
		return noDataSuggestions
	}
	embedding, err := p.embedder.Embed(ctx, userQuery)
	if err != nil {
		logrus.Debugf("Embedding for suggestions failed: %v", err)
		return noDataSuggestions
	}
	similar, err := p.store.SimilarQueries(ctx, embedding, 3)
	if err != nil || len(similar) == 0 {
		return noDataSuggestions
	}
	return similar
}

func (p *Pipeline) errorResponse(sessionID, userQuery, message string, start time.Time) *model.PipelineResponse {
	return &model.PipelineResponse{
		Success:           false,
		SessionID:         sessionID,
		UserQuery:         userQuery,
		ChatResponse:      "Something went wrong while processing your query. Please try again.",
		Error:             message,
		Suggestions:       errorSuggestions,
		ProcessingSeconds: time.Since(start).Seconds(),
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}
}

// logQuery records the interaction asynchronously; logging never blocks or
// fails the response.
func (p *Pipeline) logQuery(userQuery, sqlQuery string, intent model.QueryIntent, chosen []model.ChartType, records int, seconds float64, sessionID string) {
	entry := model.QueryLog{
		SessionID:         sessionID,
		Query:             userQuery,
		SQLQuery:          sqlQuery,
		Intent:            intent,
		ChosenCharts:      chosen,
		RecordCount:       records,
		ProcessingSeconds: seconds,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if p.embedder != nil {
			if embedding, err := p.embedder.Embed(ctx, userQuery); err == nil {
				entry.Embedding = embedding
			}
		}
		if err := p.store.LogQuery(ctx, entry); err != nil {
			logrus.Warnf("Query log insert failed: %v", err)
		}
	}()
}

func truncateQuery(q string) string {
	if len(q) > 120 {
		return q[:120] + "..."
	}
	return q
}
