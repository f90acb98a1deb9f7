package gaps

import (
	"strconv"
	"strings"

	"skillfit/internal/types"
)

// questionTypeTokens are the type segments a well-formed question id
// may carry; anything else fails id parsing
var questionTypeTokens = map[string]struct{}{
	"experience":   {},
	"project":      {},
	"training":     {},
	"transferable": {},
	"llm":          {},
	"fallback":     {},
}

// ApplyResponses folds answered gap questions into the career data and
// returns the updated copy. Only responses with hasExperience and a
// non-blank answer are applied. Skills are appended, never overwritten,
// so applying the same response twice is a no-op. Responses whose skill
// cannot be determined are skipped, never fatal.
func ApplyResponses(career types.CareerData, responses []types.GapQuestionResponse) types.CareerData {
	updated := career
	updated.Skills = make([]types.Skill, len(career.Skills))
	copy(updated.Skills, career.Skills)

	for _, response := range responses {
		if !response.HasExperience || strings.TrimSpace(response.Answer) == "" {
			continue
		}

		skillName := response.SkillName
		if skillName == "" {
			skillName = skillNameFromID(response.QuestionID)
		}
		if skillName == "" {
			continue
		}

		if hasSkill(updated.Skills, skillName) {
			continue
		}

		level := "intermediate"
		if response.YearsOfExperience >= 3 {
			level = "advanced"
		}
		updated.Skills = append(updated.Skills, types.Skill{
			Name:     skillName,
			Level:    level,
			Keywords: []string{},
		})
	}

	return updated
}

// skillNameFromID recovers the skill from a gap-<slug>-<type>-<millis>
// id: the last segment must be numeric, the second-to-last a known
// question type, and the slug in between becomes a space-separated
// name. Returns empty on any mismatch.
func skillNameFromID(id string) string {
	parts := strings.Split(id, "-")
	if len(parts) < 4 || parts[0] != "gap" {
		return ""
	}
	if _, err := strconv.ParseInt(parts[len(parts)-1], 10, 64); err != nil {
		return ""
	}
	if _, ok := questionTypeTokens[parts[len(parts)-2]]; !ok {
		return ""
	}
	slug := parts[1 : len(parts)-2]
	for _, segment := range slug {
		if segment == "" {
			return ""
		}
	}
	return strings.Join(slug, " ")
}

func hasSkill(skills []types.Skill, name string) bool {
	for _, s := range skills {
		if strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}
