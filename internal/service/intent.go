package service

import (
	"strings"

	"github.com/Swapnil565/FloatChat/internal/model"
)

// gazetteerEntry maps trigger keywords (including historical and alternate
// names) to a canonical place name
type gazetteerEntry struct {
	Name     string
	Keywords []string
}

// Cities are checked before ocean regions; the first match wins.
var cityGazetteer = []gazetteerEntry{
	{Name: "Mumbai", Keywords: []string{"mumbai", "bombay"}},
	{Name: "Chennai", Keywords: []string{"chennai", "madras"}},
	{Name: "Kolkata", Keywords: []string{"kolkata", "calcutta"}},
	{Name: "Delhi", Keywords: []string{"delhi", "new delhi"}},
	{Name: "Bangalore", Keywords: []string{"bangalore", "bengaluru"}},
	{Name: "Goa", Keywords: []string{"goa"}},
	{Name: "Kerala", Keywords: []string{"kerala", "kochi", "cochin"}},
	{Name: "Gujarat", Keywords: []string{"gujarat", "ahmedabad"}},
}

var regionGazetteer = []gazetteerEntry{
	{Name: "Arabian Sea", Keywords: []string{"arabian sea", "arabian"}},
	{Name: "Bay Of Bengal", Keywords: []string{"bay of bengal", "bengal bay"}},
	{Name: "Indian Ocean", Keywords: []string{"indian ocean"}},
}

// ExtractIntent derives a QueryIntent from the user's text and the generated
// SQL. The category comes from the shape of the SQL; parameters, location and
// depth band come from the user's wording. Pure text analysis: it cannot fail
// and always returns a fully valid intent.
func ExtractIntent(userText, generatedSQL string) model.QueryIntent {
	sqlLower := strings.ToLower(generatedSQL)
	userLower := strings.ToLower(userText)

	intent := model.QueryIntent{
		Category:   extractCategory(sqlLower),
		Parameters: extractParameters(userLower),
		Location:   extractLocation(userLower),
		DepthBand:  extractDepthBand(userLower),
	}
	intent.Spatial = intent.Category == model.CategorySpatial

	return intent
}

func extractCategory(sqlLower string) model.QueryCategory {
	switch {
	case ordersAscendingBy(sqlLower, "pressure_dbar"):
		return model.CategoryProfile
	case strings.Contains(sqlLower, "order by date_time"):
		return model.CategoryTimeSeries
	case strings.Contains(sqlLower, "st_dwithin") || strings.Contains(sqlLower, "st_distance"):
		return model.CategorySpatial
	case strings.Contains(sqlLower, "float_id"):
		return model.CategoryFloatSpecific
	default:
		return model.CategoryGeneral
	}
}

// ordersAscendingBy reports whether the query orders by the column without an
// explicit DESC (PostgreSQL defaults to ascending)
func ordersAscendingBy(sqlLower, column string) bool {
	idx := strings.Index(sqlLower, "order by "+column)
	if idx < 0 {
		return false
	}
	rest := strings.TrimSpace(sqlLower[idx+len("order by "+column):])
	return !strings.HasPrefix(rest, "desc")
}

func extractParameters(userLower string) []string {
	var params []string
	if strings.Contains(userLower, "temperature") {
		params = append(params, model.ParamTemperature)
	}
	if strings.Contains(userLower, "salinity") {
		params = append(params, model.ParamSalinity)
	}
	if strings.Contains(userLower, "pressure") || strings.Contains(userLower, "depth") {
		params = append(params, model.ParamPressure)
	}

	// Temperature is the most common ask; default to it
	if len(params) == 0 {
		params = []string{model.ParamTemperature}
	}
	return params
}

func extractLocation(userLower string) string {
	for _, gazetteer := range [][]gazetteerEntry{cityGazetteer, regionGazetteer} {
		for _, entry := range gazetteer {
			for _, keyword := range entry.Keywords {
				if strings.Contains(userLower, keyword) {
					return entry.Name
				}
			}
		}
	}
	return ""
}

func extractDepthBand(userLower string) string {
	switch {
	case strings.Contains(userLower, "surface"):
		return model.DepthSurface
	case strings.Contains(userLower, "deep"):
		return model.DepthDeep
	case strings.Contains(userLower, "profile"):
		return model.DepthProfile
	default:
		return ""
	}
}
