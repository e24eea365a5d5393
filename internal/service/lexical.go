package service

import (
	"math"
	"strings"
	"unicode"

	"github.com/Swapnil565/FloatChat/internal/model"
)

// seedCorpus holds ocean-domain phrases the lexical scorer is trained on.
// Labels are derived from seedLabelTerms below, so a phrase can (and often
// does) carry several chart types at once.
var seedCorpus = []string{
	// Profile queries
	"show temperature profile", "depth vs temperature", "vertical profile",
	"how does temperature change with depth", "temperature at different depths",
	"salinity profile", "ocean profile", "vertical ocean structure",

	// Time series queries
	"temperature over time", "changes over time", "temporal trends",
	"time series", "temperature trends", "seasonal patterns",
	"how temperature changed", "temperature history",

	// T-S diagram queries
	"temperature vs salinity", "t-s diagram", "water mass analysis",
	"temperature salinity relationship", "ocean water properties",
	"water mass characteristics",

	// Map queries
	"map view", "geographic distribution", "spatial temperature",
	"temperature map", "salinity map", "ocean map", "regional view",
	"where is the warmest", "geographic patterns", "location based",

	// 3D scatter queries
	"3d view", "three dimensional", "3d scatter", "interactive view",
	"explore data", "comprehensive view", "ocean visualization",
	"show everything", "complete picture", "multidimensional",

	// Cross section queries
	"cross section", "transect", "section view", "cut through ocean",
}

// seedLabelTerms assigns multi-label targets to seed phrases
var seedLabelTerms = map[model.ChartType][]string{
	model.ChartProfile:      {"profile", "depth", "vertical", "deep"},
	model.ChartTimeSeries:   {"time", "temporal", "trend", "season", "history", "over"},
	model.ChartTSDiagram:    {"salinity", "t-s", "relationship", "vs", "mass"},
	model.ChartMap:          {"map", "geographic", "spatial", "location", "region", "where"},
	model.Chart3DScatter:    {"3d", "scatter", "interactive", "explore", "comprehensive", "everything"},
	model.ChartCrossSection: {"section", "transect", "cut"},
}

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "in": true, "on": true,
	"at": true, "to": true, "is": true, "are": true, "with": true,
	"for": true, "and": true, "or": true, "how": true, "does": true,
	"do": true, "me": true, "my": true, "it": true, "this": true,
	"that": true, "through": true,
}

// lexicalModel is a TF-IDF bag-of-terms scorer: each chart type gets a
// unit-length centroid of its positive seed phrases, and a prompt is scored
// by cosine similarity against each centroid. Fit once at construction,
// read-only afterwards, safe for concurrent use.
type lexicalModel struct {
	idf       map[string]float64
	centroids map[model.ChartType]map[string]float64
}

// newLexicalModel fits the scorer on the seed corpus
func newLexicalModel() *lexicalModel {
	docs := make([][]string, len(seedCorpus))
	df := map[string]int{}
	for i, phrase := range seedCorpus {
		docs[i] = tokenize(phrase)
		seen := map[string]bool{}
		for _, tok := range docs[i] {
			if !seen[tok] {
				df[tok]++
				seen[tok] = true
			}
		}
	}

	n := float64(len(seedCorpus))
	idf := make(map[string]float64, len(df))
	for tok, count := range df {
		idf[tok] = math.Log((n+1)/(float64(count)+1)) + 1
	}

	m := &lexicalModel{
		idf:       idf,
		centroids: make(map[model.ChartType]map[string]float64, len(model.AllChartTypes)),
	}

	for _, chartType := range model.AllChartTypes {
		centroid := map[string]float64{}
		positives := 0
		for i, phrase := range seedCorpus {
			if !phraseHasLabel(phrase, chartType) {
				continue
			}
			positives++
			for tok, w := range m.vectorize(docs[i]) {
				centroid[tok] += w
			}
		}
		if positives > 0 {
			for tok := range centroid {
				centroid[tok] /= float64(positives)
			}
		}
		normalize(centroid)
		m.centroids[chartType] = centroid
	}

	return m
}

// Score returns a cosine similarity in [0,1] per chart type for the prompt
func (m *lexicalModel) Score(prompt string) model.ChartScores {
	scores := model.NewChartScores()
	vec := m.vectorize(tokenize(prompt))
	if len(vec) == 0 {
		return scores
	}
	normalize(vec)

	for chartType, centroid := range m.centroids {
		dot := 0.0
		for tok, w := range vec {
			dot += w * centroid[tok]
		}
		scores[chartType] = dot
	}
	return scores
}

// vectorize builds a TF-IDF vector for a token sequence. Tokens outside the
// seed vocabulary carry no signal and are dropped.
func (m *lexicalModel) vectorize(tokens []string) map[string]float64 {
	counts := map[string]float64{}
	total := 0.0
	for _, tok := range tokens {
		if _, known := m.idf[tok]; !known {
			continue
		}
		counts[tok]++
		total++
	}
	if total == 0 {
		return counts
	}

	for tok := range counts {
		counts[tok] = counts[tok] / total * m.idf[tok]
	}
	return counts
}

func phraseHasLabel(phrase string, chartType model.ChartType) bool {
	lower := strings.ToLower(phrase)
	for _, term := range seedLabelTerms[chartType] {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if !stopwords[f] {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func normalize(vec map[string]float64) {
	sum := 0.0
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for k := range vec {
		vec[k] /= norm
	}
}
