package service

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Swapnil565/FloatChat/internal/model"
)

// keywordRule raises the primary chart type to a fixed score when any of its
// trigger terms appears in the prompt, and raises the complementary types
// listed in Secondary. Rules never lower a score, so multiple matching rules
// compose safely regardless of evaluation order.
type keywordRule struct {
	Triggers  []string
	Primary   model.ChartType
	Boost     float64
	Secondary map[model.ChartType]float64
}

var keywordRules = []keywordRule{
	{
		Triggers: []string{"profile", "depth", "vertical"},
		Primary:  model.ChartProfile, Boost: 0.9,
		Secondary: map[model.ChartType]float64{
			model.ChartTSDiagram: 0.7,
			model.Chart3DScatter: 0.6,
		},
	},
	{
		Triggers: []string{"time", "temporal", "over time", "series", "trend", "evolution"},
		Primary:  model.ChartTimeSeries, Boost: 0.9,
		Secondary: map[model.ChartType]float64{
			model.ChartMap:     0.6,
			model.ChartProfile: 0.5,
		},
	},
	{
		Triggers: []string{"map", "geographic", "spatial", "location", "region", "area",
			"mumbai", "chennai", "goa", "kerala"},
		Primary: model.ChartMap, Boost: 0.9,
		Secondary: map[model.ChartType]float64{
			model.Chart3DScatter: 0.8,
			model.ChartProfile:   0.6,
		},
	},
	{
		Triggers: []string{"salinity", "water mass", "t-s", "ts diagram"},
		Primary:  model.ChartTSDiagram, Boost: 0.9,
		Secondary: map[model.ChartType]float64{
			model.ChartProfile:   0.8,
			model.Chart3DScatter: 0.6,
		},
	},
	{
		Triggers: []string{"3d", "three", "dimensional", "scatter", "visualization", "interactive"},
		Primary:  model.Chart3DScatter, Boost: 0.9,
		Secondary: map[model.ChartType]float64{
			model.ChartMap:     0.7,
			model.ChartProfile: 0.6,
		},
	},
	{
		Triggers: []string{"cross section", "cross-section", "transect"},
		Primary:  model.ChartCrossSection, Boost: 0.9,
		Secondary: map[model.ChartType]float64{
			model.ChartProfile: 0.6,
		},
	},
	{
		// Generic ocean vocabulary keeps vague-but-on-topic prompts above
		// the comprehensive-default floor.
		Triggers: []string{"ocean", "water", "analysis", "data", "show me", "analyze"},
		Primary:  model.Chart3DScatter, Boost: 0.7,
		Secondary: map[model.ChartType]float64{
			model.ChartProfile: 0.6,
			model.ChartMap:     0.6,
		},
	},
}

// lexicalWeight discounts the similarity scorer so explicit keyword matches
// always win over fuzzy matches.
const lexicalWeight = 0.8

// PlotClassifier decides which chart types a user prompt calls for. Keyword
// rules are authoritative; a TF-IDF similarity model fills in when the prompt
// uses vocabulary the rules miss. Stateless after construction.
type PlotClassifier struct {
	lexical   *lexicalModel
	threshold float64
}

func NewPlotClassifier(threshold float64) *PlotClassifier {
	if threshold <= 0 {
		threshold = 0.3
	}
	return &PlotClassifier{
		lexical:   newLexicalModel(),
		threshold: threshold,
	}
}

// Classify scores the prompt against every chart type and selects between one
// and four charts. It never fails: any internal panic degrades to the
// comprehensive default selection.
func (c *PlotClassifier) Classify(prompt string) (selection []model.ChartType, scores model.ChartScores) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Plot classification failed, using defaults: %v", r)
			selection, scores = defaultClassification()
		}
	}()

	scores = c.score(prompt)
	selection = c.selectCharts(scores)
	return selection, scores
}

func (c *PlotClassifier) score(prompt string) model.ChartScores {
	lower := strings.ToLower(prompt)

	rule := model.NewChartScores()
	for _, kr := range keywordRules {
		if !anyTrigger(lower, kr.Triggers) {
			continue
		}
		rule.Raise(kr.Primary, kr.Boost)
		for chartType, boost := range kr.Secondary {
			rule.Raise(chartType, boost)
		}
	}

	lexical := c.lexical.Score(lower)

	blended := model.NewChartScores()
	for _, chartType := range model.AllChartTypes {
		blended[chartType] = rule[chartType]
		blended.Raise(chartType, lexicalWeight*lexical[chartType])
	}

	// Nothing matched with confidence: discard the noise and fall back to a
	// comprehensive set.
	if blended.Max() < 0.4 {
		blended = model.NewChartScores()
		blended[model.Chart3DScatter] = 0.8
		blended[model.ChartProfile] = 0.7
		blended[model.ChartMap] = 0.6
	}

	return blended
}

// selectCharts picks every chart type at or above the threshold, pads the
// selection to at least two complementary charts when possible, and caps it
// at four. The result is ordered by descending score.
func (c *PlotClassifier) selectCharts(scores model.ChartScores) []model.ChartType {
	ranked := rankCharts(scores)

	var chosen []model.ChartType
	for _, chartType := range ranked {
		if scores[chartType] >= c.threshold {
			chosen = append(chosen, chartType)
		}
	}

	// A single chart rarely tells the full story; add the next best
	// candidate as long as it shows some signal.
	if len(chosen) == 1 {
		for _, chartType := range ranked {
			if chartType == chosen[0] {
				continue
			}
			if scores[chartType] > 0.2 {
				chosen = append(chosen, chartType)
				break
			}
		}
	}

	if len(chosen) == 0 {
		chosen = []model.ChartType{model.Chart3DScatter, model.ChartProfile}
	}
	if len(chosen) > 4 {
		chosen = chosen[:4]
	}
	return chosen
}

// rankCharts orders chart types by descending score, breaking ties by the
// canonical chart-type order so results are deterministic.
func rankCharts(scores model.ChartScores) []model.ChartType {
	ranked := make([]model.ChartType, len(model.AllChartTypes))
	copy(ranked, model.AllChartTypes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return ranked
}

// defaultClassification is the safety net when scoring itself blows up
func defaultClassification() ([]model.ChartType, model.ChartScores) {
	scores := model.NewChartScores()
	scores[model.Chart3DScatter] = 0.8
	scores[model.ChartProfile] = 0.7
	scores[model.ChartMap] = 0.6
	scores[model.ChartTSDiagram] = 0.4
	scores[model.ChartTimeSeries] = 0.3
	selection := []model.ChartType{model.Chart3DScatter, model.ChartProfile, model.ChartMap}
	return selection, scores
}

func anyTrigger(lower string, triggers []string) bool {
	for _, t := range triggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}
