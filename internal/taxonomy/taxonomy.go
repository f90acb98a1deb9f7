// Package taxonomy canonicalizes free-text skill names against a static
// skill table and exposes relatedness between skills. The table is built
// once and read-only afterwards, so lookups are safe for concurrent use.
package taxonomy

import "strings"

// SkillCategory classifies a taxonomy entry
type SkillCategory string

const (
	CategoryTechnical     SkillCategory = "technical"
	CategorySoft          SkillCategory = "soft"
	CategoryTool          SkillCategory = "tool"
	CategoryDomain        SkillCategory = "domain"
	CategoryCertification SkillCategory = "certification"
)

// SkillDefinition is one canonical skill entry
type SkillDefinition struct {
	Name          string
	Category      SkillCategory
	Aliases       []string
	RelatedSkills []string
}

// Taxonomy provides O(1) canonical-name and alias lookups over a fixed
// skill table
type Taxonomy struct {
	byName  map[string]*SkillDefinition
	byAlias map[string]*SkillDefinition
	defs    []SkillDefinition
}

// New builds a taxonomy from a skill table. Canonical names win over
// aliases when both map the same lowercase key.
func New(defs []SkillDefinition) *Taxonomy {
	t := &Taxonomy{
		byName:  make(map[string]*SkillDefinition, len(defs)),
		byAlias: make(map[string]*SkillDefinition),
		defs:    defs,
	}
	for i := range t.defs {
		def := &t.defs[i]
		t.byName[strings.ToLower(def.Name)] = def
		for _, alias := range def.Aliases {
			t.byAlias[strings.ToLower(alias)] = def
		}
	}
	return t
}

// Default returns a taxonomy over the built-in skill table
func Default() *Taxonomy {
	return New(builtinSkills)
}

// FindSkill looks up a skill by canonical name first, then by alias.
// Matching is case-insensitive and ignores surrounding whitespace.
func (t *Taxonomy) FindSkill(name string) (SkillDefinition, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if def, ok := t.byName[key]; ok {
		return *def, true
	}
	if def, ok := t.byAlias[key]; ok {
		return *def, true
	}
	return SkillDefinition{}, false
}

// NormalizeSkillName maps a free-text name to its canonical form. Unknown
// skills pass through trimmed but otherwise unchanged, so the caller
// degrades to exact-string matching.
func (t *Taxonomy) NormalizeSkillName(name string) string {
	if def, ok := t.FindSkill(name); ok {
		return def.Name
	}
	return strings.TrimSpace(name)
}

// GetRelatedSkills returns the canonical related-skill list for a name,
// or nil when the skill is unknown
func (t *Taxonomy) GetRelatedSkills(name string) []string {
	if def, ok := t.FindSkill(name); ok {
		return def.RelatedSkills
	}
	return nil
}

// Len reports the number of canonical entries in the table
func (t *Taxonomy) Len() int {
	return len(t.defs)
}
