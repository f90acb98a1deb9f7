package gaps

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	apperrors "skillfit/internal/errors"
	"skillfit/internal/types"
)

func newTestGenerator(drafter Drafter) *Generator {
	g := NewGenerator(drafter, apperrors.NewLogger(slog.LevelError))
	ms := int64(1700000000000)
	g.nowMs = func() int64 { ms++; return ms }
	return g
}

func coverageWith(items ...types.CoverageItem) types.CoverageMap {
	return types.CoverageMap{Items: items}
}

func gapItem(skill string, priority types.SkillPriority) types.CoverageItem {
	return types.CoverageItem{
		Requirement: skill,
		Category:    "skill",
		Priority:    priority,
		Status:      types.StatusGap,
		Evidence:    []string{},
	}
}

func TestGenerateRuleBasedQuestionSet(t *testing.T) {
	g := newTestGenerator(nil)
	coverage := coverageWith(
		gapItem("Kubernetes", types.PriorityP1),
		gapItem("GraphQL", types.PriorityP2),
		types.CoverageItem{
			Requirement: "Terraform",
			Category:    "skill",
			Priority:    types.PriorityP2,
			Status:      types.StatusPartial,
			Evidence:    []string{"Related: Dev at Acme"},
		},
	)

	analysis := g.GenerateRuleBased(coverage)

	// P1 gap: experience + project + training; P2 gap: experience +
	// project; partial with related evidence: transferable
	byType := make(map[types.GapQuestionType]int)
	for _, q := range analysis.Questions {
		byType[q.QuestionType]++
	}
	if byType[types.QuestionExperience] != 2 {
		t.Errorf("experience questions = %d, want 2", byType[types.QuestionExperience])
	}
	if byType[types.QuestionProject] != 2 {
		t.Errorf("project questions = %d, want 2", byType[types.QuestionProject])
	}
	if byType[types.QuestionTraining] != 1 {
		t.Errorf("training questions = %d, want 1", byType[types.QuestionTraining])
	}
	if byType[types.QuestionTransferable] != 1 {
		t.Errorf("transferable questions = %d, want 1", byType[types.QuestionTransferable])
	}

	if analysis.TotalGaps != 2 || analysis.CriticalGaps != 1 || analysis.AddressableGaps != 3 {
		t.Errorf("counts = %d/%d/%d, want 2/1/3",
			analysis.TotalGaps, analysis.CriticalGaps, analysis.AddressableGaps)
	}
}

func TestGenerateRuleBasedSortsByPriority(t *testing.T) {
	g := newTestGenerator(nil)
	coverage := coverageWith(
		gapItem("GraphQL", types.PriorityP3),
		gapItem("Kubernetes", types.PriorityP1),
		gapItem("Redis", types.PriorityP2),
	)

	analysis := g.GenerateRuleBased(coverage)

	lastRank := -1
	for _, q := range analysis.Questions {
		rank := q.Priority.Rank()
		if rank < lastRank {
			t.Fatalf("questions not sorted by priority: %v", analysis.Questions)
		}
		lastRank = rank
	}

	// stable within the same priority: Kubernetes questions keep their
	// template order
	var p1Types []types.GapQuestionType
	for _, q := range analysis.Questions {
		if q.Priority == types.PriorityP1 {
			p1Types = append(p1Types, q.QuestionType)
		}
	}
	want := []types.GapQuestionType{types.QuestionExperience, types.QuestionProject, types.QuestionTraining}
	for i, typ := range want {
		if p1Types[i] != typ {
			t.Errorf("P1 question %d type = %s, want %s", i, p1Types[i], typ)
		}
	}
}

func TestQuestionIDsUniqueWithinCall(t *testing.T) {
	g := newTestGenerator(nil)
	// C++ and C# reduce to the same slug, so uniqueness must not
	// depend on the skill name alone
	coverage := coverageWith(
		gapItem("Kubernetes", types.PriorityP1),
		gapItem("Kubernetes Operators", types.PriorityP1),
		gapItem("C++", types.PriorityP1),
		gapItem("C#", types.PriorityP1),
	)

	analysis := g.GenerateRuleBased(coverage)
	seen := make(map[string]struct{})
	for _, q := range analysis.Questions {
		if _, dup := seen[q.ID]; dup {
			t.Errorf("duplicate question id %s", q.ID)
		}
		seen[q.ID] = struct{}{}
		if !strings.HasPrefix(q.ID, "gap-") {
			t.Errorf("id %s missing gap- prefix", q.ID)
		}
	}
}

func TestPartialWithoutRelatedEvidenceGetsNoQuestion(t *testing.T) {
	g := newTestGenerator(nil)
	coverage := coverageWith(types.CoverageItem{
		Requirement: "Python",
		Category:    "skill",
		Priority:    types.PriorityP1,
		Status:      types.StatusPartial,
		Evidence:    []string{},
	})

	analysis := g.GenerateRuleBased(coverage)
	if len(analysis.Questions) != 0 {
		t.Errorf("questions = %v, want none for partial without related evidence", analysis.Questions)
	}
	if analysis.AddressableGaps != 0 {
		t.Errorf("addressableGaps = %d, want 0", analysis.AddressableGaps)
	}
}

type stubDrafter struct {
	drafts map[string]types.GapQuestionDraft
	err    error
	calls  []string
}

func (s *stubDrafter) DraftGapQuestion(ctx context.Context, input types.GapQuestionInput) (types.GapQuestionDraft, error) {
	s.calls = append(s.calls, input.SkillName)
	if s.err != nil {
		return types.GapQuestionDraft{}, s.err
	}
	return s.drafts[input.SkillName], nil
}

func TestGenerateAssistedCapsModelCalls(t *testing.T) {
	drafter := &stubDrafter{drafts: map[string]types.GapQuestionDraft{}}
	g := newTestGenerator(drafter)

	var items []types.CoverageItem
	for _, skill := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		items = append(items, gapItem(skill, types.PriorityP1))
	}
	analysis := g.Generate(context.Background(), coverageWith(items...), types.CareerData{}, true)

	if len(drafter.calls) != 5 {
		t.Errorf("drafter calls = %d, want 5", len(drafter.calls))
	}
	// uncapped P1 gaps still get the full rule-based question set
	var fSkillQuestions int
	for _, q := range analysis.Questions {
		if q.SkillName == "F" {
			fSkillQuestions++
		}
	}
	if fSkillQuestions != 3 {
		t.Errorf("rule-based questions for uncapped gap = %d, want 3", fSkillQuestions)
	}
}

func TestGenerateAssistedExcludesCoveredSkillsFromRulePass(t *testing.T) {
	drafter := &stubDrafter{drafts: map[string]types.GapQuestionDraft{
		"Kubernetes": {Question: "Tell me about clusters", Context: "ctx", SuggestedAnswerFormat: "fmt"},
	}}
	g := newTestGenerator(drafter)

	analysis := g.Generate(context.Background(),
		coverageWith(gapItem("Kubernetes", types.PriorityP1)), types.CareerData{}, true)

	if len(analysis.Questions) != 1 {
		t.Fatalf("questions = %d, want 1 (no rule-based duplicates)", len(analysis.Questions))
	}
	q := analysis.Questions[0]
	if q.Question != "Tell me about clusters" || q.SkillName != "Kubernetes" {
		t.Errorf("unexpected assisted question %+v", q)
	}
}

func TestGenerateAssistedFallsBackPerItem(t *testing.T) {
	drafter := &stubDrafter{err: errors.New("model unavailable")}
	g := newTestGenerator(drafter)

	analysis := g.Generate(context.Background(),
		coverageWith(gapItem("Kubernetes", types.PriorityP1)), types.CareerData{}, true)

	if len(analysis.Questions) != 1 {
		t.Fatalf("questions = %d, want 1 template fallback", len(analysis.Questions))
	}
	q := analysis.Questions[0]
	if !strings.Contains(q.Question, "Kubernetes") || q.QuestionType != types.QuestionExperience {
		t.Errorf("fallback question = %+v", q)
	}
	if !strings.Contains(q.ID, "-fallback-") {
		t.Errorf("fallback id = %s", q.ID)
	}
}

func TestProfileContext(t *testing.T) {
	g := newTestGenerator(nil)
	career := types.CareerData{
		Work: []types.WorkExperience{
			{Company: "Acme", Position: "Staff Engineer", StartDate: "2019-01", EndDate: "2023-01"},
			{Company: "Initech", Position: "Engineer", StartDate: "2016-01", EndDate: "2019-01"},
		},
		Skills: []types.Skill{
			{Name: "Go"}, {Name: "Python"},
		},
		Projects: []types.Project{
			{Name: "alpha"}, {Name: "beta"}, {Name: "gamma"}, {Name: "delta"},
		},
	}

	input := g.profileContext(career)
	if input.CurrentRole != "Staff Engineer at Acme" {
		t.Errorf("CurrentRole = %q", input.CurrentRole)
	}
	if input.YearsExperience != 7 {
		t.Errorf("YearsExperience = %d, want 7", input.YearsExperience)
	}
	if len(input.Projects) != 3 {
		t.Errorf("Projects = %v, want 3 entries", input.Projects)
	}
}
