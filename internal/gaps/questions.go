// Package gaps generates targeted follow-up questions for coverage
// gaps and folds the user's answers back into career data. Question
// generation has an assisted path with a per-question rule-based
// fallback, so one failed model call never discards the batch.
package gaps

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"skillfit/internal/errors"
	"skillfit/internal/types"
)

// Drafter is the assisted-generation dependency: it writes one
// contextual question for a single skill gap.
type Drafter interface {
	DraftGapQuestion(ctx context.Context, input types.GapQuestionInput) (types.GapQuestionDraft, error)
}

// Generator produces gap analyses from coverage maps
type Generator struct {
	drafter Drafter
	logger  *errors.Logger
	nowMs   func() int64
	seq     uint64
}

// NewGenerator creates a Generator. drafter may be nil, in which case
// Generate always uses rule-based templates.
func NewGenerator(drafter Drafter, logger *errors.Logger) *Generator {
	return &Generator{
		drafter: drafter,
		logger:  logger,
		nowMs:   func() int64 { return time.Now().UnixMilli() },
	}
}

// assistedGapLimit bounds model calls per generation request
const assistedGapLimit = 5

const experienceTemplate = "Have you worked with %s in any professional capacity, even if it wasn't a primary responsibility?"

// Generate builds a GapAnalysis for the coverage map. When assisted is
// set and a drafter is available, up to five P1 gaps get model-written
// questions; everything else uses the rule-based templates.
func (g *Generator) Generate(ctx context.Context, coverage types.CoverageMap, career types.CareerData, assisted bool) types.GapAnalysis {
	if assisted && g.drafter != nil {
		return g.generateAssisted(ctx, coverage, career)
	}
	return g.GenerateRuleBased(coverage)
}

// GenerateRuleBased emits template questions: every GAP gets an
// experience question, skill-category gaps a project question, P1 gaps
// a training question, and PARTIAL items with related evidence a
// transferable question. The result is sorted by priority, stable
// within equal priorities.
func (g *Generator) GenerateRuleBased(coverage types.CoverageMap) types.GapAnalysis {
	questions := []types.GapQuestion{}

	for _, item := range coverage.Items {
		if item.Status != types.StatusGap {
			continue
		}
		questions = append(questions, g.ruleBasedQuestions(item)...)
	}

	for _, item := range coverage.Items {
		if item.Status != types.StatusPartial || !hasRelatedEvidence(item) {
			continue
		}
		questions = append(questions, types.GapQuestion{
			ID:                    g.questionID(item.Requirement, "transferable"),
			SkillName:             item.Requirement,
			Question:              fmt.Sprintf("You have experience with related technologies. Have you worked directly with %s?", item.Requirement),
			Context:               fmt.Sprintf("We found related experience: %s", strings.Join(item.Evidence, ", ")),
			QuestionType:          types.QuestionTransferable,
			SuggestedAnswerFormat: "Describe any direct experience, even brief.",
			Priority:              item.Priority,
		})
	}

	sortByPriority(questions)
	return g.analysis(coverage, questions)
}

// ruleBasedQuestions expands one GAP item into its template questions
func (g *Generator) ruleBasedQuestions(item types.CoverageItem) []types.GapQuestion {
	tier := "preferred"
	if item.Priority == types.PriorityP1 {
		tier = "required"
	}

	questions := []types.GapQuestion{{
		ID:                    g.questionID(item.Requirement, "experience"),
		SkillName:             item.Requirement,
		Question:              fmt.Sprintf(experienceTemplate, item.Requirement),
		Context:               fmt.Sprintf("This %s skill has no matching evidence in your profile.", tier),
		QuestionType:          types.QuestionExperience,
		SuggestedAnswerFormat: "Describe when and how you used this skill professionally.",
		Priority:              item.Priority,
	}}

	if item.Category == "skill" {
		questions = append(questions, types.GapQuestion{
			ID:                    g.questionID(item.Requirement, "project"),
			SkillName:             item.Requirement,
			Question:              fmt.Sprintf("Have you built any personal or side projects using %s?", item.Requirement),
			Context:               "Personal or academic projects can demonstrate practical knowledge.",
			QuestionType:          types.QuestionProject,
			SuggestedAnswerFormat: "Describe the project, your role, and how you used this skill.",
			Priority:              item.Priority,
		})
	}

	if item.Priority == types.PriorityP1 {
		questions = append(questions, types.GapQuestion{
			ID:                    g.questionID(item.Requirement, "training"),
			SkillName:             item.Requirement,
			Question:              fmt.Sprintf("Have you completed any courses, certifications, or training programs for %s?", item.Requirement),
			Context:               "Formal training or certifications can help address this critical skill gap.",
			QuestionType:          types.QuestionTraining,
			SuggestedAnswerFormat: "Include course name, provider, and completion date if applicable.",
			Priority:              item.Priority,
		})
	}

	return questions
}

// generateAssisted asks the drafter for one contextual question per P1
// gap, up to the limit. A failed draft substitutes the template
// question for that skill only. Remaining gaps and partials come from
// the rule-based pass, excluding skills already covered by a draft.
func (g *Generator) generateAssisted(ctx context.Context, coverage types.CoverageMap, career types.CareerData) types.GapAnalysis {
	questions := []types.GapQuestion{}
	covered := make(map[string]struct{})

	input := g.profileContext(career)
	for _, item := range coverage.Items {
		if item.Status != types.StatusGap || item.Priority != types.PriorityP1 {
			continue
		}
		if len(covered) == assistedGapLimit {
			break
		}
		covered[item.Requirement] = struct{}{}

		input.SkillName = item.Requirement
		input.Priority = string(item.Priority)
		draft, err := g.drafter.DraftGapQuestion(ctx, input)
		if err != nil {
			g.logger.Warn("assisted gap question failed, using template",
				"skill", item.Requirement, "error", err.Error())
			questions = append(questions, types.GapQuestion{
				ID:                    g.questionID(item.Requirement, "fallback"),
				SkillName:             item.Requirement,
				Question:              fmt.Sprintf(experienceTemplate, item.Requirement),
				Context:               "This required skill has no matching evidence in your profile.",
				QuestionType:          types.QuestionExperience,
				SuggestedAnswerFormat: "Describe when and how you used this skill professionally.",
				Priority:              item.Priority,
			})
			continue
		}
		questions = append(questions, types.GapQuestion{
			ID:                    g.questionID(item.Requirement, "llm"),
			SkillName:             item.Requirement,
			Question:              draft.Question,
			Context:               draft.Context,
			QuestionType:          types.QuestionExperience,
			SuggestedAnswerFormat: draft.SuggestedAnswerFormat,
			Priority:              item.Priority,
		})
	}

	for _, q := range g.GenerateRuleBased(coverage).Questions {
		if q.Priority == types.PriorityP1 {
			if _, ok := covered[q.SkillName]; ok {
				continue
			}
		}
		questions = append(questions, q)
	}

	sortByPriority(questions)
	return g.analysis(coverage, questions)
}

// profileContext summarizes the profile for the drafter: most recent
// role, rough total years, top ten skills and up to three projects
func (g *Generator) profileContext(career types.CareerData) types.GapQuestionInput {
	input := types.GapQuestionInput{CurrentRole: "Not specified"}

	if len(career.Work) > 0 {
		w := career.Work[0]
		input.CurrentRole = fmt.Sprintf("%s at %s", w.Position, w.Company)
	}
	for _, w := range career.Work {
		start, ok := parseYear(w.StartDate)
		if !ok {
			continue
		}
		end := time.Now().Year()
		if y, ok := parseYear(w.EndDate); ok {
			end = y
		}
		input.YearsExperience += end - start
	}
	for i, s := range career.Skills {
		if i == 10 {
			break
		}
		input.Skills = append(input.Skills, s.Name)
	}
	for i, p := range career.Projects {
		if i == 3 {
			break
		}
		input.Projects = append(input.Projects, p.Name)
	}

	return input
}

func (g *Generator) analysis(coverage types.CoverageMap, questions []types.GapQuestion) types.GapAnalysis {
	analysis := types.GapAnalysis{Questions: questions}
	for _, item := range coverage.Items {
		switch item.Status {
		case types.StatusGap:
			analysis.TotalGaps++
			analysis.AddressableGaps++
			if item.Priority == types.PriorityP1 {
				analysis.CriticalGaps++
			}
		case types.StatusPartial:
			if hasRelatedEvidence(item) {
				analysis.AddressableGaps++
			}
		}
	}
	return analysis
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// questionID builds ids of the shape gap-<skill-slug>-<type>-<millis>-<seq>.
// The sequence suffix keeps ids distinct when two skills share a slug,
// as "C++" and "C#" do.
func (g *Generator) questionID(skillName, questionType string) string {
	slug := strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(skillName), "-"), "-")
	if slug == "" {
		slug = "skill"
	}
	return fmt.Sprintf("gap-%s-%s-%d-%d", slug, questionType, g.nowMs(), atomic.AddUint64(&g.seq, 1))
}

func hasRelatedEvidence(item types.CoverageItem) bool {
	for _, ev := range item.Evidence {
		if strings.HasPrefix(ev, "Related:") {
			return true
		}
	}
	return false
}

func sortByPriority(questions []types.GapQuestion) {
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Priority.Rank() < questions[j].Priority.Rank()
	})
}

func parseYear(value string) (int, bool) {
	t, ok := parseYearMonthLoose(value)
	if !ok {
		return 0, false
	}
	return t.Year(), true
}

func parseYearMonthLoose(value string) (time.Time, bool) {
	for _, layout := range []string{"2006-01", "2006-01-02", "2006"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
