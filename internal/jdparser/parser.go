// Package jdparser turns raw job posting text into a structured
// ParsedJobDescription. The assisted path delegates extraction to a
// model provider and validates the result; the rule-based path runs
// entirely on pattern matching and never fails, so it doubles as the
// fallback when the provider errors out.
package jdparser

import (
	"context"
	"strings"

	"skillfit/internal/errors"
	"skillfit/internal/taxonomy"
	"skillfit/internal/types"
)

// Extractor is the assisted-extraction dependency. Implementations
// return the raw model output without priority assignment.
type Extractor interface {
	ExtractJobPosting(ctx context.Context, rawText string) (types.JobExtraction, error)
}

// Parser converts job posting text into structured form
type Parser struct {
	taxonomy  *taxonomy.Taxonomy
	extractor Extractor
	logger    *errors.Logger
}

// New creates a Parser. extractor may be nil, in which case Parse
// always uses the rule-based path.
func New(tax *taxonomy.Taxonomy, extractor Extractor, logger *errors.Logger) *Parser {
	return &Parser{
		taxonomy:  tax,
		extractor: extractor,
		logger:    logger,
	}
}

// Parse produces a ParsedJobDescription from raw posting text. When
// assisted extraction is requested and available it is tried first;
// any provider or validation failure falls back to the rule-based
// parser, so Parse itself never returns an error.
func (p *Parser) Parse(ctx context.Context, rawText string, assisted bool) types.ParsedJobDescription {
	if assisted && p.extractor != nil {
		parsed, err := p.parseAssisted(ctx, rawText)
		if err == nil {
			return parsed
		}
		p.logger.Warn("assisted job parsing failed, using rule-based fallback",
			"error", err.Error())
	}
	return p.ParseRuleBased(rawText)
}

// parseAssisted runs the model extraction and converts its raw output
// into a ParsedJobDescription: required skills become P1, the first
// three preferred skills P2 and the rest P3. Skill names are
// canonicalized against the taxonomy.
func (p *Parser) parseAssisted(ctx context.Context, rawText string) (types.ParsedJobDescription, error) {
	extraction, err := p.extractor.ExtractJobPosting(ctx, rawText)
	if err != nil {
		return types.ParsedJobDescription{}, err
	}

	parsed := types.ParsedJobDescription{
		Title:            strings.TrimSpace(extraction.Title),
		Company:          strings.TrimSpace(extraction.Company),
		Location:         strings.TrimSpace(extraction.Location),
		SeniorityLevel:   validateSeniority(extraction.SeniorityLevel),
		RequiredSkills:   []types.ExtractedSkill{},
		PreferredSkills:  []types.ExtractedSkill{},
		Responsibilities: extraction.Responsibilities,
		Requirements:     extraction.Requirements,
		Benefits:         extraction.Benefits,
	}
	if parsed.Responsibilities == nil {
		parsed.Responsibilities = []string{}
	}
	if parsed.Requirements == nil {
		parsed.Requirements = []types.ExtractedRequirement{}
	}

	for _, skill := range extraction.RequiredSkills {
		name := strings.TrimSpace(skill.Name)
		if name == "" {
			continue
		}
		parsed.RequiredSkills = append(parsed.RequiredSkills, types.ExtractedSkill{
			Name:     p.taxonomy.NormalizeSkillName(name),
			Priority: types.PriorityP1,
			Category: validateCategory(skill.Category),
		})
	}
	for i, skill := range extraction.PreferredSkills {
		name := strings.TrimSpace(skill.Name)
		if name == "" {
			continue
		}
		priority := types.PriorityP3
		if i < 3 {
			priority = types.PriorityP2
		}
		parsed.PreferredSkills = append(parsed.PreferredSkills, types.ExtractedSkill{
			Name:     p.taxonomy.NormalizeSkillName(name),
			Priority: priority,
			Category: validateCategory(skill.Category),
		})
	}

	return parsed, nil
}

// ParseRuleBased parses posting text with pattern matching only. It is
// deterministic and never fails; unscannable fields are left empty.
func (p *Parser) ParseRuleBased(rawText string) types.ParsedJobDescription {
	parsed := types.ParsedJobDescription{
		SeniorityLevel:   DetectSeniority(rawText),
		RequiredSkills:   []types.ExtractedSkill{},
		PreferredSkills:  []types.ExtractedSkill{},
		Responsibilities: extractResponsibilities(rawText),
		Requirements:     []types.ExtractedRequirement{},
	}
	if parsed.Responsibilities == nil {
		parsed.Responsibilities = []string{}
	}

	for _, name := range ScanSkills(rawText) {
		skill := types.ExtractedSkill{
			Name:     p.taxonomy.NormalizeSkillName(name),
			Category: "technical",
		}
		if isRequiredInContext(rawText, name) {
			skill.Priority = types.PriorityP1
			parsed.RequiredSkills = append(parsed.RequiredSkills, skill)
		} else {
			skill.Priority = types.PriorityP2
			parsed.PreferredSkills = append(parsed.PreferredSkills, skill)
		}
	}

	return parsed
}

func validateSeniority(level string) types.SeniorityLevel {
	switch types.SeniorityLevel(strings.ToLower(strings.TrimSpace(level))) {
	case types.SeniorityEntry:
		return types.SeniorityEntry
	case types.SeniorityMid:
		return types.SeniorityMid
	case types.SenioritySenior:
		return types.SenioritySenior
	case types.SeniorityLead:
		return types.SeniorityLead
	case types.SeniorityExecutive:
		return types.SeniorityExecutive
	}
	return ""
}

func validateCategory(category string) string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "technical", "soft", "tool", "domain", "certification":
		return strings.ToLower(strings.TrimSpace(category))
	}
	return "technical"
}
