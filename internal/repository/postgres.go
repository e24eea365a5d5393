package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Swapnil565/FloatChat/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/sirupsen/logrus"
)

// ArgoRepository handles database operations against the argo_floats table
type ArgoRepository struct {
	db *sqlx.DB
}

// NewArgoRepository creates a new PostgreSQL repository
func NewArgoRepository(dsn string, maxConn, maxIdleConn int) (*ArgoRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement
	// does not exist" errors with pooled connections
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &ArgoRepository{db: db}, nil
}

// Close closes the database connection
func (r *ArgoRepository) Close() error {
	return r.db.Close()
}

// FetchMeasurements executes a generated SELECT against argo_floats and maps
// the rows into measurements. The generated query may carry extra columns
// (geometry, computed distances), so rows are scanned as maps and the known
// columns extracted. Database failures degrade to a deterministic synthetic
// sample so the rest of the pipeline can still demonstrate its output.
func (r *ArgoRepository) FetchMeasurements(ctx context.Context, sqlQuery string) ([]model.Measurement, error) {
	rows, err := r.db.QueryxContext(ctx, sqlQuery)
	if err != nil {
		logrus.Errorf("Database query failed: %v", err)
		logrus.Warn("Falling back to synthetic sample data for demonstration")
		return SampleMeasurements(), nil
	}
	defer rows.Close()

	var measurements []model.Measurement
	for rows.Next() {
		raw := map[string]interface{}{}
		if err := rows.MapScan(raw); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		measurements = append(measurements, rowToMeasurement(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return measurements, nil
}

// CountMeasurements returns the total number of rows in argo_floats
func (r *ArgoRepository) CountMeasurements(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM argo_floats"); err != nil {
		return 0, fmt.Errorf("failed to count measurements: %w", err)
	}
	return count, nil
}

// LogQuery inserts a processed query into query_logs. The embedding column is
// a pgvector value; NULL when no embedding was produced.
func (r *ArgoRepository) LogQuery(ctx context.Context, entry model.QueryLog) error {
	charts := make([]string, len(entry.ChosenCharts))
	for i, c := range entry.ChosenCharts {
		charts[i] = string(c)
	}

	var embedding interface{}
	if len(entry.Embedding) > 0 {
		embedding = pgvector.NewVector(entry.Embedding)
	}

	query := `
		INSERT INTO query_logs (session_id, query, sql_query, query_type, location, chosen_plots, record_count, processing_seconds, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.SessionID,
		entry.Query,
		entry.SQLQuery,
		string(entry.Intent.Category),
		entry.Intent.Location,
		strings.Join(charts, ","),
		entry.RecordCount,
		entry.ProcessingSeconds,
		embedding,
	)
	if err != nil {
		return fmt.Errorf("failed to log query: %w", err)
	}
	return nil
}

// SimilarQueries returns past logged queries closest to the given embedding,
// most similar first. Only queries that matched data are considered, so they
// are safe to offer as alternatives.
func (r *ArgoRepository) SimilarQueries(ctx context.Context, embedding []float32, limit int) ([]string, error) {
	if len(embedding) == 0 {
		return nil, fmt.Errorf("empty embedding")
	}

	vec := pgvector.NewVector(embedding)
	query := `
		SELECT DISTINCT ON (query) query, embedding <=> $1 AS distance
		FROM query_logs
		WHERE embedding IS NOT NULL AND record_count > 0
		ORDER BY query, distance
		LIMIT $2
	`
	rows, err := r.db.QueryxContext(ctx, query, vec, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search similar queries: %w", err)
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		var distance float64
		if err := rows.Scan(&q, &distance); err != nil {
			return nil, fmt.Errorf("failed to scan similar query: %w", err)
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

// rowToMeasurement extracts the known argo_floats columns from a scanned row
func rowToMeasurement(raw map[string]interface{}) model.Measurement {
	m := model.Measurement{
		FloatID:      toInt64(raw["float_id"]),
		Latitude:     toFloat64(raw["latitude"]),
		Longitude:    toFloat64(raw["longitude"]),
		PressureDbar: toFloat64(raw["pressure_dbar"]),
		Temperature:  toFloat64(raw["temperature_celsius"]),
		Timestamp:    toTime(raw["date_time"]),
	}
	if v, ok := raw["salinity_psu"]; ok && v != nil {
		sal := toFloat64(v)
		m.Salinity = &sal
	}
	return m
}

func toInt64(v interface{}) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case float64:
		return int64(x)
	case []byte:
		n, _ := strconv.ParseInt(string(x), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(x, 10, 64)
		return n
	default:
		return 0
	}
}

func toFloat64(v interface{}) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int64:
		return float64(x)
	case []byte:
		f, _ := strconv.ParseFloat(string(x), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(x, 64)
		return f
	default:
		return 0
	}
}

func toTime(v interface{}) time.Time {
	switch x := v.(type) {
	case time.Time:
		return x
	case []byte:
		t, _ := time.Parse(time.RFC3339, string(x))
		return t
	case string:
		t, _ := time.Parse(time.RFC3339, x)
		return t
	default:
		return time.Time{}
	}
}
