package service

import (
	"testing"

	"cablecrm_backend/internal/quotes/agent"
)

func TestAnalysisColumnsAlwaysCarryFullShape(t *testing.T) {
	// Parser output always carries non-nil collections.
	result := agent.AnalysisResult{
		Analysis:        "Minimal install.",
		Products:        []agent.Product{},
		Alternatives:    []map[string]any{},
		LabourBreakdown: []agent.LabourLine{},
		EstimatedTime:   12.6,
	}

	cols, err := analysisColumns(result, "raw text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cols.AIAnalysis == nil || *cols.AIAnalysis != "Minimal install." {
		t.Fatalf("unexpected analysis column: %v", cols.AIAnalysis)
	}
	// Empty collections still serialize, so readers never see NULL.
	if cols.RecommendedProducts == nil || *cols.RecommendedProducts != "[]" {
		t.Fatalf("expected empty products array, got %v", cols.RecommendedProducts)
	}
	if cols.LabourBreakdown == nil || *cols.LabourBreakdown != "[]" {
		t.Fatalf("expected empty labour array, got %v", cols.LabourBreakdown)
	}
	if cols.EstimatedTime == nil || *cols.EstimatedTime != 12 {
		t.Fatalf("expected estimated time truncated to 12, got %v", cols.EstimatedTime)
	}
	if cols.AIRawResponse == nil || *cols.AIRawResponse != "raw text" {
		t.Fatalf("expected raw response stored verbatim, got %v", cols.AIRawResponse)
	}
	// No clarifications: the log column stays untouched.
	if cols.ClarificationsLog != nil {
		t.Fatalf("expected nil clarifications log, got %q", *cols.ClarificationsLog)
	}
}

func TestAnalysisColumnsStoreClarifications(t *testing.T) {
	result := agent.AnalysisResult{
		Clarifications: []string{"What containment type?"},
	}

	cols, err := analysisColumns(result, "raw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cols.ClarificationsLog == nil || *cols.ClarificationsLog != `["What containment type?"]` {
		t.Fatalf("unexpected clarifications log: %v", cols.ClarificationsLog)
	}
}
