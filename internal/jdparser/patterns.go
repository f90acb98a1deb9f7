package jdparser

import (
	"regexp"
	"strings"

	"skillfit/internal/taxonomy"
	"skillfit/internal/types"
)

// seniorityGroup pairs a seniority level with its detection patterns.
// Groups are checked in slice order and the first match wins, so the
// broad "senior" patterns are not shadowed by "lead" substrings.
type seniorityGroup struct {
	level    types.SeniorityLevel
	patterns []*regexp.Regexp
}

var seniorityGroups = []seniorityGroup{
	{types.SeniorityEntry, compileAll(
		`(?i)entry[- ]?level`,
		`(?i)junior`,
		`(?i)associate`,
		`(?i)\b0-2\s*years?\b`,
		`(?i)\b1-2\s*years?\b`,
		`(?i)new\s+grad`,
	)},
	{types.SeniorityMid, compileAll(
		`(?i)mid[- ]?level`,
		`(?i)\b2-4\s*years?\b`,
		`(?i)\b3-5\s*years?\b`,
		`(?i)\b2\+\s*years?\b`,
		`(?i)\b3\+\s*years?\b`,
	)},
	{types.SenioritySenior, compileAll(
		`(?i)senior`,
		`(?i)sr\.`,
		`(?i)\b5\+\s*years?\b`,
		`(?i)\b5-7\s*years?\b`,
		`(?i)\b6\+\s*years?\b`,
		`(?i)\b7\+\s*years?\b`,
		`(?i)extensive\s+experience`,
	)},
	{types.SeniorityLead, compileAll(
		`(?i)\blead\b`,
		`(?i)principal`,
		`(?i)staff`,
		`(?i)\b8\+\s*years?\b`,
		`(?i)\b10\+\s*years?\b`,
	)},
	{types.SeniorityExecutive, compileAll(
		`(?i)director`,
		`(?i)\bvp\b`,
		`(?i)vice\s+president`,
		`(?i)head\s+of`,
		`(?i)\b15\+\s*years?\b`,
		`(?i)c-level`,
		`(?i)chief`,
	)},
}

// requiredPatterns classify a requirement clause as must-have
var requiredPatterns = compileAll(
	`(?i)must\s+have`,
	`(?i)required`,
	`(?i)mandatory`,
	`(?i)essential`,
	`(?i)minimum`,
	`(?i)at\s+least`,
)

// techSkillPatterns is the fixed scan set for technology names. The
// coverage matching engine reuses it to mine skills out of work
// highlight text, so both sides see the same vocabulary.
var techSkillPatterns = compileAll(
	`(?i)\b(JavaScript|TypeScript|Python|Java|C\+\+|C#|Go|Rust|Ruby|PHP|Swift|Kotlin)\b`,
	`(?i)\b(React|Angular|Vue|Next\.?js|Node\.?js|Express|Django|Flask|Spring|Rails)\b`,
	`(?i)\b(AWS|Azure|GCP|Google Cloud|Kubernetes|Docker|Terraform)\b`,
	`(?i)\b(PostgreSQL|MySQL|MongoDB|Redis|Elasticsearch|DynamoDB)\b`,
	`(?i)\b(Git|CI/CD|Jenkins|GitHub Actions|CircleCI)\b`,
	`(?i)\b(REST|GraphQL|gRPC|Microservices)\b`,
	`(?i)\b(Agile|Scrum|Kanban|JIRA)\b`,
)

var (
	bulletLine  = regexp.MustCompile(`^[-*•]\s|^\d+\.\s`)
	bulletStrip = regexp.MustCompile(`^[-*•\d.]+\s*`)
)

func compileAll(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(expr)
	}
	return compiled
}

// DetectSeniority matches text against the ordered seniority groups and
// returns the first matching level, or empty when none match
func DetectSeniority(text string) types.SeniorityLevel {
	for _, group := range seniorityGroups {
		for _, p := range group.patterns {
			if p.MatchString(text) {
				return group.level
			}
		}
	}
	return ""
}

// ScanSkills finds technology names in text, deduplicated by exact
// matched substring in discovery order
func ScanSkills(text string) []string {
	var found []string
	seen := make(map[string]struct{})
	for _, p := range techSkillPatterns {
		for _, match := range p.FindAllString(text, -1) {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			found = append(found, match)
		}
	}
	return found
}

// ExtractSkillsFromText scans free text for technology names and returns
// them canonicalized against the taxonomy
func ExtractSkillsFromText(tax *taxonomy.Taxonomy, text string) []string {
	raw := ScanSkills(text)
	skills := make([]string, 0, len(raw))
	for _, name := range raw {
		skills = append(skills, tax.NormalizeSkillName(name))
	}
	return skills
}

// clauseBoundaries splits requirement prose into the clauses used for
// required-vs-preferred classification. Commas count as boundaries so
// "must have X, nice to have Y" does not mark Y as required.
var clauseBoundaries = regexp.MustCompile(`[.,;\n]`)

// clausesContaining returns the clauses of text that mention the skill
// as a whole word, case-insensitively
func clausesContaining(text, skill string) []string {
	word := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`)
	var clauses []string
	for _, clause := range clauseBoundaries.Split(text, -1) {
		if word.MatchString(clause) {
			clauses = append(clauses, clause)
		}
	}
	return clauses
}

// isRequiredInContext reports whether any clause mentioning the skill
// also matches a required-phrase pattern
func isRequiredInContext(text, skill string) bool {
	for _, clause := range clausesContaining(text, skill) {
		for _, p := range requiredPatterns {
			if p.MatchString(clause) {
				return true
			}
		}
	}
	return false
}

// extractResponsibilities collects bulleted or numbered lines, stripped
// of their markers, capped at ten in original order
func extractResponsibilities(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !bulletLine.MatchString(line) {
			continue
		}
		out = append(out, bulletStrip.ReplaceAllString(line, ""))
		if len(out) == 10 {
			break
		}
	}
	return out
}
