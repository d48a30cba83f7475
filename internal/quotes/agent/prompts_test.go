package agent

import (
	"strings"
	"testing"
)

func TestBuildAnalysisPromptsSubstitutesQuoteFields(t *testing.T) {
	size := 350.0
	in := PromptInput{
		Quote: QuoteContext{
			ProjectTitle:     "Warehouse refit",
			BuildingType:     "industrial",
			BuildingSize:     &size,
			NumberOfRooms:    6,
			WifiRequirements: true,
		},
		DayRate: 300,
	}

	system, user := BuildAnalysisPrompts(in)

	if !strings.Contains(system, "structured cabling contractor") {
		t.Fatalf("unexpected system prompt: %q", system)
	}
	if !strings.Contains(user, "Project Title: Warehouse refit") {
		t.Fatal("expected project title substituted")
	}
	if !strings.Contains(user, "Building Size: 350 sqm") {
		t.Fatal("expected building size substituted")
	}
	if !strings.Contains(user, "WiFi installation needed: true") {
		t.Fatal("expected wifi flag substituted")
	}
	if strings.Contains(user, "{") && strings.Contains(user, "{project_title}") {
		t.Fatal("expected no unresolved placeholders")
	}
	if !strings.Contains(user, "£300 per pair of engineers per day") {
		t.Fatal("expected day rate guidance appended")
	}
}

func TestBuildAnalysisPromptsDefaultsMissingCounts(t *testing.T) {
	_, user := BuildAnalysisPrompts(PromptInput{})

	if !strings.Contains(user, "Number of Floors: 1") {
		t.Fatal("expected floors defaulted to 1")
	}
	if !strings.Contains(user, "Number of Rooms/Areas: 1") {
		t.Fatal("expected rooms defaulted to 1")
	}
	if !strings.Contains(user, "Building Size: 0 sqm") {
		t.Fatal("expected missing size rendered as 0")
	}
}

func TestBuildAnalysisPromptsQuestionsOnlyGuide(t *testing.T) {
	system, _ := BuildAnalysisPrompts(PromptInput{QuestionsOnly: true})

	if !strings.Contains(system, "single key 'clarifications'") {
		t.Fatalf("expected questions-only guide, got %q", system)
	}
}

func TestBuildAnalysisPromptsAppendsClarificationAnswers(t *testing.T) {
	in := PromptInput{
		ClarificationAnswers: []ClarificationAnswer{
			{Question: "Ceiling type?", Answer: "Suspended grid"},
			{Question: "Existing containment?"},
		},
	}

	_, user := BuildAnalysisPrompts(in)

	if !strings.Contains(user, "1. Question: Ceiling type?\n   Answer: Suspended grid") {
		t.Fatal("expected answered clarification rendered")
	}
	if !strings.Contains(user, "2. Question: Existing containment?\n   Answer: Not provided") {
		t.Fatal("expected unanswered clarification marked as not provided")
	}
}

func TestBuildAnalysisPromptsAppendsConsistencyContext(t *testing.T) {
	in := PromptInput{ConsistencyContext: "**Historical Pricing Reference:**\n- Similar quotes averaged £4,200"}

	_, user := BuildAnalysisPrompts(in)

	if !strings.Contains(user, "Historical Pricing Reference") {
		t.Fatal("expected consistency context appended")
	}
}
