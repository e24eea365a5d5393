package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Swapnil565/FloatChat/internal/model"
)

func TestNarrate_TemplateFallbackWhenDisabled(t *testing.T) {
	n := NewNarrator(NewLLMClient(nil))
	summary := Summarize(testMeasurements(30))

	tests := []struct {
		name     string
		intent   model.QueryIntent
		contains string
	}{
		{
			name:     "profile queries describe the vertical structure",
			intent:   model.QueryIntent{Category: model.CategoryProfile},
			contains: "dbar",
		},
		{
			name:     "located queries name the place",
			intent:   model.QueryIntent{Category: model.CategoryGeneral, Location: "Mumbai"},
			contains: "Mumbai",
		},
		{
			name:     "generic queries report the overall ranges",
			intent:   model.QueryIntent{Category: model.CategoryGeneral},
			contains: "measurements",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer := n.Narrate(context.Background(), "some question", tt.intent, summary)
			assert.NotEmpty(t, answer)
			assert.Contains(t, answer, tt.contains)
		})
	}
}

func TestFollowUps_NilWhenDisabled(t *testing.T) {
	n := NewNarrator(NewLLMClient(nil))
	summary := Summarize(nil)

	followUps := n.FollowUps(context.Background(), "q", model.QueryIntent{}, summary)
	assert.Nil(t, followUps)
}

func TestNarrate_TemplateIncludesRecordCount(t *testing.T) {
	n := NewNarrator(nil)
	summary := Summarize(testMeasurements(42))

	answer := n.Narrate(context.Background(), "q", model.QueryIntent{Category: model.CategoryGeneral}, summary)
	assert.True(t, strings.Contains(answer, "42"), "answer should mention the record count: %s", answer)
}
