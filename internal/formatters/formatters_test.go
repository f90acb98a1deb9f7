package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"skillfit/internal/types"
)

func sampleJob() types.ParsedJobDescription {
	return types.ParsedJobDescription{
		Title:          "Senior Backend Engineer",
		Company:        "Acme",
		SeniorityLevel: "senior",
		RequiredSkills: []types.ExtractedSkill{
			{Name: "Go", Category: "language", Priority: "P1"},
			{Name: "PostgreSQL", Category: "database", Priority: "P1"},
		},
		PreferredSkills: []types.ExtractedSkill{
			{Name: "Kubernetes", Category: "tool", Priority: "P2"},
		},
	}
}

func sampleCoverage() types.CoverageMap {
	return types.CoverageMap{
		OverallScore:      72,
		RequiredCoverage:  types.CoverageCounts{Full: 1, Partial: 1},
		PreferredCoverage: types.CoverageCounts{Gap: 1},
		Items: []types.CoverageItem{
			{Requirement: "Go", Status: types.StatusFull, Priority: "P1", Category: "skill", Evidence: []string{"Skill listed: Go (advanced)"}},
			{Requirement: "Kubernetes", Status: types.StatusGap, Priority: "P2", Category: "skill"},
		},
	}
}

func TestRegistryDispatch(t *testing.T) {
	registry := NewFormatterRegistry()

	tests := []struct {
		name   string
		data   any
		format string
		want   string
	}{
		{"job text", sampleJob(), "text", "=== PARSED JOB DESCRIPTION ==="},
		{"job markdown", sampleJob(), "markdown", "# Senior Backend Engineer"},
		{"coverage text", sampleCoverage(), "text", "Overall Score: 72/100"},
		{"coverage markdown", sampleCoverage(), "markdown", "| Required | 1 | 1 | 0 |"},
		{"gap analysis text", types.GapAnalysis{TotalGaps: 2, CriticalGaps: 1}, "text", "Critical Gaps: 1"},
		{"gap analysis markdown", types.GapAnalysis{TotalGaps: 2}, "markdown", "**Total Gaps:** 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := registry.Format(tt.data, tt.format)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestJSONFallbackForUnknownType(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(map[string]string{"key": "value"}, "json")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["key"] != "value" {
		t.Errorf("round trip lost data: %v", decoded)
	}
}

func TestNoTextFormatterForUnknownType(t *testing.T) {
	registry := NewFormatterRegistry()

	_, err := registry.Format(struct{}{}, "text")
	if err == nil {
		t.Error("expected an error for a type without a text formatter")
	}
}

func TestJobFormatterEmptySkillSections(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(types.ParsedJobDescription{}, "text")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.Count(out, "None detected.") != 2 {
		t.Errorf("expected both skill sections to report none detected:\n%s", out)
	}
}
