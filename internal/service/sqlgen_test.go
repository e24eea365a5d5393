package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanSQL_StripsMarkdownFences(t *testing.T) {
	raw := "```sql\nSELECT * FROM argo_floats LIMIT 10;\n```"
	assert.Equal(t, "SELECT * FROM argo_floats LIMIT 10;", CleanSQL(raw))
}

func TestCleanSQL_AppendsSemicolon(t *testing.T) {
	assert.Equal(t, "SELECT * FROM argo_floats LIMIT 10;",
		CleanSQL("SELECT * FROM argo_floats LIMIT 10"))
}

func TestCleanSQL_WrapsBareSTPoint(t *testing.T) {
	raw := "SELECT * FROM argo_floats WHERE ST_DWithin(geometry, ST_Point(72.88, 19.07), 100000)"
	cleaned := CleanSQL(raw)

	assert.Contains(t, cleaned, "ST_SetSRID(ST_Point(72.88, 19.07), 4326)")
	assert.True(t, strings.HasSuffix(cleaned, ";"))
}

func TestCleanSQL_LeavesExistingSRIDAlone(t *testing.T) {
	raw := "SELECT * FROM argo_floats WHERE ST_DWithin(geometry, ST_SetSRID(ST_Point(72.88, 19.07), 4326), 100000);"
	cleaned := CleanSQL(raw)

	assert.Equal(t, 1, strings.Count(cleaned, "ST_SetSRID"))
}

func TestCleanSQL_RejectsWrites(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"drop", "DROP TABLE argo_floats;"},
		{"delete", "DELETE FROM argo_floats;"},
		{"update", "UPDATE argo_floats SET temperature_celsius = 0;"},
		{"insert", "INSERT INTO argo_floats VALUES (1);"},
		{"create", "CREATE TABLE evil (id int);"},
		{"alter", "ALTER TABLE argo_floats DROP COLUMN salinity_psu;"},
		{"truncate", "TRUNCATE argo_floats;"},
		{"lowercase write", "delete from argo_floats;"},
		{"write hidden in select", "SELECT 1; DROP TABLE argo_floats;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, FallbackQuery, CleanSQL(tt.raw))
		})
	}
}

func TestCleanSQL_KeepsPlainSelect(t *testing.T) {
	raw := "SELECT float_id, temperature_celsius FROM argo_floats WHERE pressure_dbar < 50 ORDER BY date_time DESC LIMIT 2000;"
	assert.Equal(t, raw, CleanSQL(raw))
}

func TestGenerate_ErrorsWhenLLMDisabled(t *testing.T) {
	gen := NewSQLGenerator(NewLLMClient(nil))

	_, err := gen.Generate(context.Background(), "temperature near mumbai")
	assert.Error(t, err)
}
