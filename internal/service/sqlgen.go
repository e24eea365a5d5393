package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// FallbackQuery is the safe default used when SQL generation is unavailable
// or produces something we refuse to run.
const FallbackQuery = "SELECT * FROM argo_floats ORDER BY date_time DESC LIMIT 1000;"

// databaseSchema is the schema description handed to the LLM for grounding
const databaseSchema = `
DATABASE SCHEMA:

Table: argo_floats
Columns:
- float_id (INTEGER): Unique identifier for each Argo float
- latitude (FLOAT): Latitude coordinate (-90 to 90)
- longitude (FLOAT): Longitude coordinate (-180 to 180)
- pressure_dbar (FLOAT): Water pressure in decibars (depth indicator)
- temperature_celsius (FLOAT): Water temperature in Celsius
- salinity_psu (FLOAT): Salinity in Practical Salinity Units
- date_time (TIMESTAMP): Date and time of measurement
- geometry (GEOMETRY): PostGIS geometry point (latitude, longitude)

SPATIAL FUNCTIONS AVAILABLE:
- ST_DWithin(geometry, ST_Point(lon, lat), distance_km * 1000): Find points within distance
- ST_Distance(geometry, ST_Point(lon, lat)): Calculate distance in meters
- ST_Point(longitude, latitude): Create a point geometry

COMMON LOCATIONS (for reference):
- Mumbai: (19.07, 72.88)
- Chennai: (13.08, 80.27)
- Kolkata: (22.57, 88.36)
- Arabian Sea: (15-25N, 60-75E)
- Bay of Bengal: (5-22N, 80-100E)
- Indian Ocean: (0-30S, 60-100E)
`

const sqlSystemPromptTemplate = `You are an expert SQL query generator for oceanographic data.

%s

INSTRUCTIONS:
1. Convert the user's natural language query into a PostgreSQL SQL query
2. Use appropriate WHERE clauses for filtering
3. Include spatial queries when locations are mentioned
4. Limit results to reasonable numbers (max 5000 rows for performance)
5. Order results logically (by date_time, pressure_dbar, etc.)
6. Return ONLY the SQL query, no explanations

QUERY PATTERNS:
- Temperature/Salinity near location: Use ST_DWithin with ~100km radius
- Profile data: ORDER BY pressure_dbar ASC
- Time series: ORDER BY date_time ASC
- Surface data: WHERE pressure_dbar < 50
- Deep data: WHERE pressure_dbar > 1000

EXAMPLE QUERIES:
User: "Temperature data near Mumbai"
SQL: SELECT * FROM argo_floats WHERE ST_DWithin(geometry, ST_SetSRID(ST_Point(72.88, 19.07), 4326), 100000) ORDER BY date_time DESC LIMIT 1000;

User: "Temperature profile for float 5905529"
SQL: SELECT * FROM argo_floats WHERE float_id = '5905529' ORDER BY pressure_dbar ASC;

User: "Surface temperature in Arabian Sea"
SQL: SELECT * FROM argo_floats WHERE pressure_dbar < 50 AND latitude BETWEEN 15 AND 25 AND longitude BETWEEN 60 AND 75 ORDER BY date_time DESC LIMIT 2000;`

var (
	sqlFenceRe   = regexp.MustCompile("```(?:sql)?\n?")
	stPointRe    = regexp.MustCompile(`ST_Point\(([^)]+)\)`)
	dangerousSQL = []string{"DROP", "DELETE", "UPDATE", "INSERT", "CREATE", "ALTER", "TRUNCATE"}
)

// SQLGenerator converts natural language into a PostgreSQL query using the
// LLM, with cleanup and a read-only guard applied to the output
type SQLGenerator struct {
	llm *LLMClient
}

// NewSQLGenerator creates a new SQL generator
func NewSQLGenerator(llm *LLMClient) *SQLGenerator {
	return &SQLGenerator{llm: llm}
}

// Generate produces a SQL query for the user's text. Returns an error when
// the LLM is unavailable; callers substitute FallbackQuery.
func (g *SQLGenerator) Generate(ctx context.Context, userText string) (string, error) {
	if !g.llm.IsEnabled() {
		return "", fmt.Errorf("LLM API is not enabled")
	}

	systemPrompt := fmt.Sprintf(sqlSystemPromptTemplate, databaseSchema)
	raw, err := g.llm.Complete(ctx, systemPrompt, userText, 0.1)
	if err != nil {
		return "", fmt.Errorf("SQL generation failed: %w", err)
	}

	sqlQuery := CleanSQL(raw)
	logrus.Debugf("Generated SQL: %s", sqlQuery)
	return sqlQuery, nil
}

// CleanSQL normalizes LLM SQL output: strips markdown fences, rewrites bare
// ST_Point calls to carry SRID 4326 (the geometry column's coordinate
// system), ensures a trailing semicolon, and replaces anything that is not a
// plain read with the safe fallback query.
func CleanSQL(raw string) string {
	sqlQuery := sqlFenceRe.ReplaceAllString(raw, "")
	sqlQuery = strings.TrimSpace(sqlQuery)

	// The geometry column carries SRID 4326; bare ST_Point calls fail with a
	// coordinate system mismatch, so wrap them. Skip queries where the LLM
	// already emitted ST_SetSRID.
	if !strings.Contains(sqlQuery, "ST_SetSRID") {
		sqlQuery = stPointRe.ReplaceAllString(sqlQuery, "ST_SetSRID(ST_Point($1), 4326)")
	}

	if !strings.HasSuffix(sqlQuery, ";") {
		sqlQuery += ";"
	}

	upper := strings.ToUpper(sqlQuery)
	for _, keyword := range dangerousSQL {
		if strings.Contains(upper, keyword) {
			logrus.Warnf("Generated SQL contained %s, replacing with fallback query", keyword)
			return FallbackQuery
		}
	}

	return sqlQuery
}
