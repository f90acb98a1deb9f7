// Package matching computes coverage maps: per-requirement FULL,
// PARTIAL or GAP status with human-readable evidence, plus a weighted
// overall score. The engine is a pure function of its inputs and the
// taxonomy it was built with, so identical calls return identical maps.
package matching

import (
	"fmt"
	"math"
	"strings"
	"time"

	"skillfit/internal/jdparser"
	"skillfit/internal/taxonomy"
	"skillfit/internal/types"
)

// Engine evaluates career data against parsed job descriptions
type Engine struct {
	taxonomy *taxonomy.Taxonomy
	now      func() time.Time
}

// NewEngine creates a coverage engine over the given taxonomy
func NewEngine(tax *taxonomy.Taxonomy) *Engine {
	return &Engine{taxonomy: tax, now: time.Now}
}

// GenerateCoverageMap evaluates every required skill, preferred skill
// and experience requirement of the job against the career data.
// Items are emitted in a fixed order: required skills, preferred
// skills, then experience requirements, each in input order.
func (e *Engine) GenerateCoverageMap(career types.CareerData, job types.ParsedJobDescription) types.CoverageMap {
	userSkills := e.extractUserSkills(career)
	userYears := e.calculateYearsExperience(career)

	items := make([]types.CoverageItem, 0, len(job.RequiredSkills)+len(job.PreferredSkills)+len(job.Requirements))
	for _, skill := range job.RequiredSkills {
		items = append(items, e.evaluateSkill(skill, career, userSkills))
	}
	for _, skill := range job.PreferredSkills {
		items = append(items, e.evaluateSkill(skill, career, userSkills))
	}
	for _, req := range job.Requirements {
		if req.Type != "experience" || req.YearsRequired <= 0 {
			continue
		}
		items = append(items, evaluateExperience(req, userYears))
	}

	var required, preferred types.CoverageCounts
	var requiredTotal, preferredTotal int
	for _, item := range items {
		counts, total := &preferred, &preferredTotal
		if item.Priority == types.PriorityP1 {
			counts, total = &required, &requiredTotal
		}
		*total++
		switch item.Status {
		case types.StatusFull:
			counts.Full++
		case types.StatusPartial:
			counts.Partial++
		default:
			counts.Gap++
		}
	}

	// an empty required partition scores 0 through the max(1, n)
	// denominator; an empty preferred partition instead cedes its
	// weight so a fully covered required-only job scores 100
	requiredScore := (float64(required.Full) + 0.5*float64(required.Partial)) / float64(max(1, requiredTotal))
	preferredScore := (float64(preferred.Full) + 0.5*float64(preferred.Partial)) / float64(max(1, preferredTotal))
	weighted := requiredScore*0.7 + preferredScore*0.3
	if preferredTotal == 0 {
		weighted = requiredScore
	}
	overall := int(math.Round(weighted * 100))

	return types.CoverageMap{
		Items:             items,
		OverallScore:      overall,
		RequiredCoverage:  required,
		PreferredCoverage: preferred,
	}
}

// evaluateSkill decides FULL/PARTIAL/GAP for one extracted skill. FULL
// needs direct evidence or the canonical name in the candidate's skill
// set; related evidence or a related skill downgrades to PARTIAL.
func (e *Engine) evaluateSkill(skill types.ExtractedSkill, career types.CareerData, userSkills map[string]struct{}) types.CoverageItem {
	evidence := e.findEvidence(skill.Name, career)
	_, hasSkill := userSkills[e.taxonomy.NormalizeSkillName(skill.Name)]

	hasDirect := false
	hasRelatedEvidence := false
	for _, ev := range evidence {
		if strings.HasPrefix(ev, "Related") {
			hasRelatedEvidence = true
		} else {
			hasDirect = true
		}
	}

	hasRelatedSkill := false
	for _, related := range e.taxonomy.GetRelatedSkills(skill.Name) {
		if _, ok := userSkills[e.taxonomy.NormalizeSkillName(related)]; ok {
			hasRelatedSkill = true
			break
		}
	}

	status := types.StatusGap
	switch {
	case hasDirect || hasSkill:
		status = types.StatusFull
	case hasRelatedSkill || hasRelatedEvidence:
		status = types.StatusPartial
	}

	return types.CoverageItem{
		Requirement: skill.Name,
		Category:    "skill",
		Priority:    skill.Priority,
		Status:      status,
		Evidence:    evidence,
	}
}

func evaluateExperience(req types.ExtractedRequirement, userYears int) types.CoverageItem {
	status := types.StatusGap
	switch {
	case userYears >= req.YearsRequired:
		status = types.StatusFull
	case float64(userYears) >= float64(req.YearsRequired)*0.7:
		status = types.StatusPartial
	}

	priority := types.PriorityP2
	if req.IsRequired {
		priority = types.PriorityP1
	}

	return types.CoverageItem{
		Requirement: fmt.Sprintf("%d+ years experience", req.YearsRequired),
		Category:    "experience",
		Priority:    priority,
		Status:      status,
		Evidence:    []string{fmt.Sprintf("%d years of professional experience", userYears)},
	}
}

// extractUserSkills builds the candidate's canonical skill set from
// direct skills, work skillsUsed/toolsUsed, highlight text, and
// project technologies/keywords
func (e *Engine) extractUserSkills(career types.CareerData) map[string]struct{} {
	skills := make(map[string]struct{})
	add := func(name string) {
		skills[e.taxonomy.NormalizeSkillName(name)] = struct{}{}
	}

	for _, s := range career.Skills {
		add(s.Name)
	}
	for _, w := range career.Work {
		for _, s := range w.SkillsUsed {
			add(s)
		}
		for _, t := range w.ToolsUsed {
			add(t)
		}
		for _, h := range w.Highlights {
			for _, s := range jdparser.ExtractSkillsFromText(e.taxonomy, h) {
				skills[s] = struct{}{}
			}
		}
	}
	for _, p := range career.Projects {
		for _, t := range p.Technologies {
			add(t)
		}
		for _, k := range p.Keywords {
			add(k)
		}
	}

	return skills
}

// findEvidence collects provenance strings for a skill: work entries
// first in list order, then projects, then certifications. A work
// entry contributes related evidence only when it has no direct match.
func (e *Engine) findEvidence(skillName string, career types.CareerData) []string {
	evidence := []string{}
	canonical := strings.ToLower(e.taxonomy.NormalizeSkillName(skillName))

	related := e.taxonomy.GetRelatedSkills(skillName)
	relatedLower := make([]string, len(related))
	for i, r := range related {
		relatedLower[i] = strings.ToLower(r)
	}

	for _, w := range career.Work {
		hasSkill := containsCanonical(e.taxonomy, w.SkillsUsed, canonical) ||
			containsCanonical(e.taxonomy, w.ToolsUsed, canonical) ||
			anyContainsSubstring(w.Highlights, canonical)

		hasRelated := false
		if !hasSkill && len(relatedLower) > 0 {
			for _, r := range relatedLower {
				if containsCanonical(e.taxonomy, w.SkillsUsed, r) || anyContainsSubstring(w.Highlights, r) {
					hasRelated = true
					break
				}
			}
		}

		if hasSkill {
			evidence = append(evidence, fmt.Sprintf("%s at %s", w.Position, w.Company))
		} else if hasRelated {
			evidence = append(evidence, fmt.Sprintf("Related: %s at %s", w.Position, w.Company))
		}
	}

	for _, p := range career.Projects {
		if containsCanonical(e.taxonomy, p.Technologies, canonical) ||
			containsCanonical(e.taxonomy, p.Keywords, canonical) ||
			strings.Contains(strings.ToLower(p.Description), canonical) {
			evidence = append(evidence, fmt.Sprintf("Project: %s", p.Name))
		}
	}

	for _, c := range career.Certifications {
		if strings.Contains(strings.ToLower(c.Name), canonical) ||
			containsCanonical(e.taxonomy, c.SkillsValidated, canonical) {
			evidence = append(evidence, fmt.Sprintf("Certification: %s", c.Name))
		}
	}

	return evidence
}

// calculateYearsExperience sums employment months across all work
// entries and rounds to whole years. Overlapping periods add; entries
// with missing or unparsable start dates contribute nothing.
func (e *Engine) calculateYearsExperience(career types.CareerData) int {
	totalMonths := 0
	for _, w := range career.Work {
		start, ok := parseYearMonth(w.StartDate)
		if !ok {
			continue
		}
		end := e.now()
		if w.EndDate != "" {
			if parsed, ok := parseYearMonth(w.EndDate); ok {
				end = parsed
			}
		}
		months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
		totalMonths += max(0, months)
	}
	return int(math.Round(float64(totalMonths) / 12))
}

func parseYearMonth(value string) (time.Time, bool) {
	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func containsCanonical(tax *taxonomy.Taxonomy, names []string, canonicalLower string) bool {
	for _, name := range names {
		if strings.ToLower(tax.NormalizeSkillName(name)) == canonicalLower {
			return true
		}
	}
	return false
}

func anyContainsSubstring(texts []string, needle string) bool {
	for _, text := range texts {
		if strings.Contains(strings.ToLower(text), needle) {
			return true
		}
	}
	return false
}
