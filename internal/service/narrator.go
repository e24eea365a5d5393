package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Swapnil565/FloatChat/internal/model"
	"github.com/Swapnil565/FloatChat/internal/utils"
)

const narratorSystemPrompt = `You are an expert oceanographic data analyst. You explain Argo float observations to a general audience.

Guidelines:
- Ground every statement in the data ranges you are given, never invent values.
- Mention the geographic area and depth coverage when they are relevant to the question.
- Keep the tone factual and helpful, 2-4 sentences.
- Note interesting oceanographic features (thermocline, mixed layer, water masses) when the ranges support them.`

// Narrator turns a query plus its data summary into a short natural-language
// answer. When the LLM is unavailable or errors out, it falls back to a
// deterministic template so the chat response is never empty.
type Narrator struct {
	llm *LLMClient
}

func NewNarrator(llm *LLMClient) *Narrator {
	return &Narrator{llm: llm}
}

func (n *Narrator) Narrate(ctx context.Context, userQuery string, intent model.QueryIntent, summary model.DataSummary) string {
	if n.llm.IsEnabled() {
		answer, err := n.llm.Complete(ctx, narratorSystemPrompt, n.dataContext(userQuery, intent, summary), 0.7)
		if err == nil && strings.TrimSpace(answer) != "" {
			return strings.TrimSpace(answer)
		}
		if err != nil {
			logrus.Warnf("Narration LLM call failed, using template: %v", err)
		}
	}
	return templateNarration(intent, summary)
}

const followUpSystemPrompt = `You suggest follow-up questions about Argo float ocean data.
Given the user's question and the data that answered it, return ONLY a JSON array of exactly 3 short follow-up questions the user could ask next. No prose, no markdown, just the array.`

// FollowUps asks the LLM for follow-up question suggestions. Best effort:
// any failure, including unparseable output, yields nil.
func (n *Narrator) FollowUps(ctx context.Context, userQuery string, intent model.QueryIntent, summary model.DataSummary) []string {
	if !n.llm.IsEnabled() {
		return nil
	}

	raw, err := n.llm.Complete(ctx, followUpSystemPrompt, n.dataContext(userQuery, intent, summary), 0.8)
	if err != nil {
		logrus.Debugf("Follow-up generation failed: %v", err)
		return nil
	}

	var followUps []string
	if err := utils.ParseLLMJSON(raw, &followUps); err != nil {
		logrus.Debugf("Follow-up output was not a JSON array: %v", err)
		return nil
	}
	if len(followUps) > 3 {
		followUps = followUps[:3]
	}
	return followUps
}

func (n *Narrator) dataContext(userQuery string, intent model.QueryIntent, summary model.DataSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User question: %s\n\n", userQuery)
	fmt.Fprintf(&b, "Retrieved Argo float data:\n")
	fmt.Fprintf(&b, "- Records: %d\n", summary.RecordCount)
	fmt.Fprintf(&b, "- Date range: %s to %s\n", summary.DateRange.Earliest, summary.DateRange.Latest)
	fmt.Fprintf(&b, "- Area: %.2f°N to %.2f°N, %.2f°E to %.2f°E\n",
		summary.GeographicBounds.South, summary.GeographicBounds.North,
		summary.GeographicBounds.West, summary.GeographicBounds.East)
	fmt.Fprintf(&b, "- Depth: %.0f to %.0f dbar\n", summary.DepthRange.Surface, summary.DepthRange.Bottom)
	fmt.Fprintf(&b, "- Temperature: %.1f to %.1f °C (mean %.1f)\n",
		summary.TemperatureRange.Min, summary.TemperatureRange.Max, summary.TemperatureRange.Mean)
	fmt.Fprintf(&b, "- Salinity: %.1f to %.1f PSU (mean %.1f)\n",
		summary.SalinityRange.Min, summary.SalinityRange.Max, summary.SalinityRange.Mean)
	if intent.Location != "" {
		fmt.Fprintf(&b, "- Query location: %s\n", intent.Location)
	}
	fmt.Fprintf(&b, "\nAnswer the user's question using only this data.")
	return b.String()
}

// templateNarration covers the common query shapes without any LLM
func templateNarration(intent model.QueryIntent, summary model.DataSummary) string {
	switch {
	case intent.Category == model.CategoryProfile:
		return fmt.Sprintf(
			"The vertical profile covers %.0f to %.0f dbar with temperatures from %.1f°C at depth to %.1f°C near the surface. "+
				"This range of %d measurements shows the typical warm surface layer cooling through the thermocline.",
			summary.DepthRange.Surface, summary.DepthRange.Bottom,
			summary.TemperatureRange.Min, summary.TemperatureRange.Max,
			summary.RecordCount)
	case intent.Location != "":
		return fmt.Sprintf(
			"Found %d Argo measurements near %s between %s and %s. "+
				"Temperatures range from %.1f to %.1f°C with salinity between %.1f and %.1f PSU.",
			summary.RecordCount, intent.Location,
			summary.DateRange.Earliest, summary.DateRange.Latest,
			summary.TemperatureRange.Min, summary.TemperatureRange.Max,
			summary.SalinityRange.Min, summary.SalinityRange.Max)
	default:
		return fmt.Sprintf(
			"Retrieved %d Argo float measurements spanning %s to %s across %.1f°-%.1f°N. "+
				"Temperature ranges %.1f-%.1f°C (mean %.1f°C) over depths of %.0f-%.0f dbar.",
			summary.RecordCount, summary.DateRange.Earliest, summary.DateRange.Latest,
			summary.GeographicBounds.South, summary.GeographicBounds.North,
			summary.TemperatureRange.Min, summary.TemperatureRange.Max,
			summary.TemperatureRange.Mean,
			summary.DepthRange.Surface, summary.DepthRange.Bottom)
	}
}
