package gaps

import (
	"testing"

	"skillfit/internal/types"
)

func TestApplyResponsesAddsSkill(t *testing.T) {
	career := types.CareerData{Skills: []types.Skill{{Name: "Python"}}}
	responses := []types.GapQuestionResponse{{
		QuestionID:        "gap-kubernetes-experience-1700000000000",
		Answer:            "Ran clusters at my last job",
		HasExperience:     true,
		YearsOfExperience: 4,
	}}

	updated := ApplyResponses(career, responses)

	if len(updated.Skills) != 2 {
		t.Fatalf("skills = %v, want 2 entries", updated.Skills)
	}
	added := updated.Skills[1]
	if added.Name != "kubernetes" || added.Level != "advanced" {
		t.Errorf("added skill = %+v, want kubernetes/advanced", added)
	}
	// input untouched
	if len(career.Skills) != 1 {
		t.Errorf("input career data was mutated: %v", career.Skills)
	}
}

func TestApplyResponsesPrefersExplicitSkillName(t *testing.T) {
	responses := []types.GapQuestionResponse{{
		QuestionID:    "gap-github-actions-experience-1700000000000",
		SkillName:     "GitHub Actions",
		Answer:        "Built CI pipelines",
		HasExperience: true,
	}}

	updated := ApplyResponses(types.CareerData{}, responses)
	if len(updated.Skills) != 1 || updated.Skills[0].Name != "GitHub Actions" {
		t.Errorf("skills = %v, want [GitHub Actions]", updated.Skills)
	}
	if updated.Skills[0].Level != "intermediate" {
		t.Errorf("level = %s, want intermediate without years", updated.Skills[0].Level)
	}
}

func TestApplyResponsesIgnoresNoExperience(t *testing.T) {
	career := types.CareerData{Skills: []types.Skill{{Name: "Python"}}}
	responses := []types.GapQuestionResponse{{
		QuestionID:    "gap-kubernetes-experience-1700000000000",
		Answer:        "I read a blog post about it once",
		HasExperience: false,
	}}

	updated := ApplyResponses(career, responses)
	if len(updated.Skills) != 1 {
		t.Errorf("skills = %v, want unchanged", updated.Skills)
	}
}

func TestApplyResponsesIsIdempotent(t *testing.T) {
	response := types.GapQuestionResponse{
		QuestionID:    "gap-kubernetes-experience-1700000000000",
		Answer:        "Ran clusters",
		HasExperience: true,
	}

	once := ApplyResponses(types.CareerData{}, []types.GapQuestionResponse{response})
	twice := ApplyResponses(once, []types.GapQuestionResponse{response})

	if len(twice.Skills) != len(once.Skills) {
		t.Errorf("second application changed skills: %v vs %v", once.Skills, twice.Skills)
	}
}

func TestApplyResponsesSkipsBlankAnswers(t *testing.T) {
	responses := []types.GapQuestionResponse{{
		QuestionID:    "gap-kubernetes-experience-1700000000000",
		Answer:        "   ",
		HasExperience: true,
	}}

	updated := ApplyResponses(types.CareerData{}, responses)
	if len(updated.Skills) != 0 {
		t.Errorf("skills = %v, want none for blank answer", updated.Skills)
	}
}

func TestSkillNameFromID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"single word", "gap-kubernetes-experience-1700000000000", "kubernetes"},
		{"multi word slug", "gap-github-actions-project-1700000000000", "github actions"},
		{"llm question", "gap-docker-llm-1700000000000", "docker"},
		{"wrong prefix", "question-kubernetes-experience-1700000000000", ""},
		{"unknown type token", "gap-kubernetes-banana-1700000000000", ""},
		{"non numeric suffix", "gap-kubernetes-experience-now", ""},
		{"too short", "gap-x-1", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := skillNameFromID(tt.id); got != tt.want {
				t.Errorf("skillNameFromID(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}
