package jdparser

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	apperrors "skillfit/internal/errors"
	"skillfit/internal/taxonomy"
	"skillfit/internal/types"
)

func newTestParser(extractor Extractor) *Parser {
	return New(taxonomy.Default(), extractor, apperrors.NewLogger(slog.LevelError))
}

func TestDetectSeniority(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.SeniorityLevel
	}{
		{"entry level phrase", "This is an entry-level position for new grads", types.SeniorityEntry},
		{"junior", "Junior Developer wanted", types.SeniorityEntry},
		{"mid by years", "3+ years of backend experience", types.SeniorityMid},
		{"senior title", "Senior Software Engineer", types.SenioritySenior},
		{"senior beats lead keywords", "Senior engineer to lead initiatives", types.SenioritySenior},
		{"lead", "Staff Engineer, 10+ years", types.SeniorityLead},
		{"executive", "VP of Engineering", types.SeniorityExecutive},
		{"no signal", "We build software", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectSeniority(tt.text); got != tt.want {
				t.Errorf("DetectSeniority() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRuleBased(t *testing.T) {
	p := newTestParser(nil)

	text := "Looking for a Senior Backend Engineer, 5+ years required, must have Python and AWS, nice to have Docker"
	parsed := p.ParseRuleBased(text)

	if parsed.SeniorityLevel != types.SenioritySenior {
		t.Errorf("SeniorityLevel = %q, want %q", parsed.SeniorityLevel, types.SenioritySenior)
	}

	requiredNames := skillNames(parsed.RequiredSkills)
	if len(requiredNames) != 2 || requiredNames[0] != "Python" || requiredNames[1] != "AWS" {
		t.Errorf("RequiredSkills = %v, want [Python AWS]", requiredNames)
	}
	for _, skill := range parsed.RequiredSkills {
		if skill.Priority != types.PriorityP1 {
			t.Errorf("required skill %s priority = %s, want P1", skill.Name, skill.Priority)
		}
	}

	preferredNames := skillNames(parsed.PreferredSkills)
	if len(preferredNames) != 1 || preferredNames[0] != "Docker" {
		t.Errorf("PreferredSkills = %v, want [Docker]", preferredNames)
	}

	if parsed.Requirements == nil || len(parsed.Requirements) != 0 {
		t.Errorf("Requirements = %v, want empty slice", parsed.Requirements)
	}
}

func TestParseRuleBasedEmptyInput(t *testing.T) {
	p := newTestParser(nil)
	parsed := p.ParseRuleBased("")

	if len(parsed.RequiredSkills) != 0 || len(parsed.PreferredSkills) != 0 {
		t.Errorf("expected no skills, got required=%v preferred=%v",
			parsed.RequiredSkills, parsed.PreferredSkills)
	}
	if parsed.Responsibilities == nil || parsed.Requirements == nil {
		t.Error("expected empty slices, got nil")
	}
	if parsed.SeniorityLevel != "" {
		t.Errorf("SeniorityLevel = %q, want empty", parsed.SeniorityLevel)
	}
}

func TestParseRuleBasedResponsibilities(t *testing.T) {
	p := newTestParser(nil)

	text := `Responsibilities:
- Build APIs
- Review code
1. Mentor juniors
* Ship features`
	parsed := p.ParseRuleBased(text)

	want := []string{"Build APIs", "Review code", "Mentor juniors", "Ship features"}
	if len(parsed.Responsibilities) != len(want) {
		t.Fatalf("Responsibilities = %v, want %v", parsed.Responsibilities, want)
	}
	for i, r := range want {
		if parsed.Responsibilities[i] != r {
			t.Errorf("Responsibilities[%d] = %q, want %q", i, parsed.Responsibilities[i], r)
		}
	}
}

func TestParseRuleBasedDeduplicatesSkills(t *testing.T) {
	p := newTestParser(nil)
	parsed := p.ParseRuleBased("Python everywhere. Python services. More Python.")

	total := len(parsed.RequiredSkills) + len(parsed.PreferredSkills)
	if total != 1 {
		t.Errorf("expected 1 skill after dedupe, got %d", total)
	}
}

type stubExtractor struct {
	extraction types.JobExtraction
	err        error
}

func (s *stubExtractor) ExtractJobPosting(ctx context.Context, rawText string) (types.JobExtraction, error) {
	return s.extraction, s.err
}

func TestParseAssisted(t *testing.T) {
	extractor := &stubExtractor{
		extraction: types.JobExtraction{
			Title:          "Platform Engineer",
			Company:        "Acme",
			SeniorityLevel: "senior",
			RequiredSkills: []types.ExtractionSkill{
				{Name: "Golang", Category: "technical"},
				{Name: "K8s", Category: "tool"},
			},
			PreferredSkills: []types.ExtractionSkill{
				{Name: "Terraform", Category: "technical"},
				{Name: "AWS", Category: "technical"},
				{Name: "Redis", Category: "technical"},
				{Name: "Kafka", Category: "technical"},
			},
			Requirements: []types.ExtractedRequirement{
				{Text: "5+ years of infrastructure work", Type: "experience", YearsRequired: 5, IsRequired: true},
			},
		},
	}
	p := newTestParser(extractor)

	parsed := p.Parse(context.Background(), "raw posting", true)

	if parsed.Title != "Platform Engineer" || parsed.SeniorityLevel != types.SenioritySenior {
		t.Errorf("header = %q/%q, want Platform Engineer/senior", parsed.Title, parsed.SeniorityLevel)
	}

	// alias canonicalization via the taxonomy
	required := skillNames(parsed.RequiredSkills)
	if required[0] != "Go" || required[1] != "Kubernetes" {
		t.Errorf("RequiredSkills = %v, want [Go Kubernetes]", required)
	}
	for _, skill := range parsed.RequiredSkills {
		if skill.Priority != types.PriorityP1 {
			t.Errorf("required skill %s priority = %s, want P1", skill.Name, skill.Priority)
		}
	}

	// first three preferred are P2, the rest P3
	wantPriorities := []types.SkillPriority{types.PriorityP2, types.PriorityP2, types.PriorityP2, types.PriorityP3}
	if len(parsed.PreferredSkills) != len(wantPriorities) {
		t.Fatalf("PreferredSkills = %v, want 4 entries", parsed.PreferredSkills)
	}
	for i, skill := range parsed.PreferredSkills {
		if skill.Priority != wantPriorities[i] {
			t.Errorf("preferred skill %s priority = %s, want %s", skill.Name, skill.Priority, wantPriorities[i])
		}
	}

	if len(parsed.Requirements) != 1 || parsed.Requirements[0].YearsRequired != 5 {
		t.Errorf("Requirements = %v, want one 5-year experience entry", parsed.Requirements)
	}
}

func TestParseAssistedFallsBackOnError(t *testing.T) {
	extractor := &stubExtractor{err: errors.New("model unavailable")}
	p := newTestParser(extractor)

	text := "Senior role, must have Python"
	parsed := p.Parse(context.Background(), text, true)

	if parsed.SeniorityLevel != types.SenioritySenior {
		t.Errorf("fallback SeniorityLevel = %q, want senior", parsed.SeniorityLevel)
	}
	if names := skillNames(parsed.RequiredSkills); len(names) != 1 || names[0] != "Python" {
		t.Errorf("fallback RequiredSkills = %v, want [Python]", names)
	}
}

func TestParseAssistedInvalidSeniority(t *testing.T) {
	extractor := &stubExtractor{
		extraction: types.JobExtraction{SeniorityLevel: "rockstar"},
	}
	p := newTestParser(extractor)

	parsed := p.Parse(context.Background(), "raw", true)
	if parsed.SeniorityLevel != "" {
		t.Errorf("SeniorityLevel = %q, want empty for unknown value", parsed.SeniorityLevel)
	}
}

func skillNames(skills []types.ExtractedSkill) []string {
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	return names
}
