package matching

import (
	"reflect"
	"strings"
	"testing"

	"skillfit/internal/taxonomy"
	"skillfit/internal/types"
)

func newTestEngine() *Engine {
	return NewEngine(taxonomy.Default())
}

func jobWithSkills(required, preferred []string) types.ParsedJobDescription {
	job := types.ParsedJobDescription{
		RequiredSkills:  []types.ExtractedSkill{},
		PreferredSkills: []types.ExtractedSkill{},
	}
	for _, name := range required {
		job.RequiredSkills = append(job.RequiredSkills, types.ExtractedSkill{
			Name: name, Priority: types.PriorityP1, Category: "technical",
		})
	}
	for _, name := range preferred {
		job.PreferredSkills = append(job.PreferredSkills, types.ExtractedSkill{
			Name: name, Priority: types.PriorityP2, Category: "technical",
		})
	}
	return job
}

func TestDirectSkillMatchScoresFull(t *testing.T) {
	engine := newTestEngine()
	career := types.CareerData{
		Skills: []types.Skill{{Name: "React"}},
	}
	job := jobWithSkills([]string{"React"}, nil)

	coverage := engine.GenerateCoverageMap(career, job)

	if len(coverage.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(coverage.Items))
	}
	if coverage.Items[0].Status != types.StatusFull {
		t.Errorf("status = %s, want FULL", coverage.Items[0].Status)
	}
	if coverage.RequiredCoverage.Full != 1 {
		t.Errorf("requiredCoverage.full = %d, want 1", coverage.RequiredCoverage.Full)
	}
	if coverage.OverallScore != 100 {
		t.Errorf("overallScore = %d, want 100", coverage.OverallScore)
	}
}

func TestRequiredOnlyJobCarriesFullWeight(t *testing.T) {
	engine := newTestEngine()
	career := types.CareerData{
		Skills: []types.Skill{{Name: "Python"}},
	}

	// Without preferred skills the required score is the whole score
	requiredOnly := jobWithSkills([]string{"Python", "Kubernetes"}, nil)
	coverage := engine.GenerateCoverageMap(career, requiredOnly)
	if coverage.OverallScore != 50 {
		t.Errorf("overallScore = %d, want 50 for 1 of 2 required covered", coverage.OverallScore)
	}

	// An uncovered preferred partition restores the 70/30 weighting
	withPreferred := jobWithSkills([]string{"Python", "Kubernetes"}, []string{"Figma"})
	coverage = engine.GenerateCoverageMap(career, withPreferred)
	if coverage.OverallScore != 35 {
		t.Errorf("overallScore = %d, want 35 with a preferred gap in play", coverage.OverallScore)
	}
}

func TestEmptyProfileScoresZero(t *testing.T) {
	engine := newTestEngine()
	career := types.CareerData{}
	job := jobWithSkills([]string{"Kubernetes"}, []string{"Figma"})

	coverage := engine.GenerateCoverageMap(career, job)

	for _, item := range coverage.Items {
		if item.Status != types.StatusGap {
			t.Errorf("item %s status = %s, want GAP", item.Requirement, item.Status)
		}
	}
	if coverage.OverallScore != 0 {
		t.Errorf("overallScore = %d, want 0", coverage.OverallScore)
	}
}

func TestRelatedSkillScoresPartial(t *testing.T) {
	engine := newTestEngine()
	career := types.CareerData{
		Work: []types.WorkExperience{
			{Company: "Acme", Position: "Dev", SkillsUsed: []string{"Docker"}},
		},
	}
	// Kubernetes lists Docker as a related skill in the taxonomy
	job := jobWithSkills([]string{"Kubernetes"}, nil)

	coverage := engine.GenerateCoverageMap(career, job)

	item := coverage.Items[0]
	if item.Status != types.StatusPartial {
		t.Errorf("status = %s, want PARTIAL", item.Status)
	}
	found := false
	for _, ev := range item.Evidence {
		if strings.HasPrefix(ev, "Related:") {
			found = true
		}
	}
	if !found {
		t.Errorf("evidence %v has no Related: entry", item.Evidence)
	}
}

func TestAliasMatchesThroughTaxonomy(t *testing.T) {
	engine := newTestEngine()
	career := types.CareerData{
		Skills: []types.Skill{{Name: "Golang"}},
		Work: []types.WorkExperience{
			{Company: "Acme", Position: "Backend Dev", SkillsUsed: []string{"Golang"}},
		},
	}
	job := jobWithSkills([]string{"Go"}, nil)

	coverage := engine.GenerateCoverageMap(career, job)
	if coverage.Items[0].Status != types.StatusFull {
		t.Errorf("status = %s, want FULL via alias canonicalization", coverage.Items[0].Status)
	}
}

func TestHighlightSubstringEvidence(t *testing.T) {
	engine := newTestEngine()
	career := types.CareerData{
		Work: []types.WorkExperience{
			{
				Company:    "Acme",
				Position:   "Platform Engineer",
				Highlights: []string{"Migrated services to Kubernetes clusters"},
			},
		},
	}
	job := jobWithSkills([]string{"Kubernetes"}, nil)

	coverage := engine.GenerateCoverageMap(career, job)
	item := coverage.Items[0]
	if item.Status != types.StatusFull {
		t.Errorf("status = %s, want FULL", item.Status)
	}
	if len(item.Evidence) != 1 || item.Evidence[0] != "Platform Engineer at Acme" {
		t.Errorf("evidence = %v, want [Platform Engineer at Acme]", item.Evidence)
	}
}

func TestProjectAndCertificationEvidence(t *testing.T) {
	engine := newTestEngine()
	career := types.CareerData{
		Projects: []types.Project{
			{Name: "Cluster Tool", Technologies: []string{"Kubernetes"}},
		},
		Certifications: []types.Certification{
			{Name: "CKA: Certified Kubernetes Administrator"},
		},
	}
	job := jobWithSkills([]string{"Kubernetes"}, nil)

	coverage := engine.GenerateCoverageMap(career, job)
	item := coverage.Items[0]
	want := []string{"Project: Cluster Tool", "Certification: CKA: Certified Kubernetes Administrator"}
	if !reflect.DeepEqual(item.Evidence, want) {
		t.Errorf("evidence = %v, want %v", item.Evidence, want)
	}
	if item.Status != types.StatusFull {
		t.Errorf("status = %s, want FULL", item.Status)
	}
}

func TestExperienceRequirements(t *testing.T) {
	tests := []struct {
		name       string
		careerFrom string
		careerTo   string
		years      int
		isRequired bool
		wantStatus types.CoverageStatus
		wantPrio   types.SkillPriority
	}{
		{"meets requirement", "2015-01", "2021-01", 5, true, types.StatusFull, types.PriorityP1},
		{"seventy percent is partial", "2017-03", "2021-01", 5, true, types.StatusPartial, types.PriorityP1},
		{"far short is gap", "2020-01", "2021-01", 5, false, types.StatusGap, types.PriorityP2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine()
			career := types.CareerData{
				Work: []types.WorkExperience{
					{Company: "Acme", Position: "Dev", StartDate: tt.careerFrom, EndDate: tt.careerTo},
				},
			}
			job := types.ParsedJobDescription{
				Requirements: []types.ExtractedRequirement{
					{Text: "years", Type: "experience", YearsRequired: tt.years, IsRequired: tt.isRequired},
				},
			}

			coverage := engine.GenerateCoverageMap(career, job)
			if len(coverage.Items) != 1 {
				t.Fatalf("expected 1 item, got %d", len(coverage.Items))
			}
			item := coverage.Items[0]
			if item.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", item.Status, tt.wantStatus)
			}
			if item.Priority != tt.wantPrio {
				t.Errorf("priority = %s, want %s", item.Priority, tt.wantPrio)
			}
			if item.Category != "experience" {
				t.Errorf("category = %s, want experience", item.Category)
			}
		})
	}
}

func TestUnparsableDatesContributeNothing(t *testing.T) {
	engine := newTestEngine()
	career := types.CareerData{
		Work: []types.WorkExperience{
			{Company: "Acme", Position: "Dev", StartDate: "long ago", EndDate: "recently"},
		},
	}
	job := types.ParsedJobDescription{
		Requirements: []types.ExtractedRequirement{
			{Text: "years", Type: "experience", YearsRequired: 1, IsRequired: true},
		},
	}

	coverage := engine.GenerateCoverageMap(career, job)
	if coverage.Items[0].Status != types.StatusGap {
		t.Errorf("status = %s, want GAP for zero computed years", coverage.Items[0].Status)
	}
}

func TestDeterminism(t *testing.T) {
	engine := newTestEngine()
	career := types.CareerData{
		Skills: []types.Skill{{Name: "Python"}, {Name: "Docker"}},
		Work: []types.WorkExperience{
			{Company: "Acme", Position: "Dev", StartDate: "2018-06", EndDate: "2022-06",
				SkillsUsed: []string{"Python"}, Highlights: []string{"Shipped Terraform modules"}},
		},
		Projects: []types.Project{{Name: "infra", Technologies: []string{"AWS"}}},
	}
	job := jobWithSkills([]string{"Python", "Kubernetes", "AWS"}, []string{"Terraform", "Figma"})

	first := engine.GenerateCoverageMap(career, job)
	second := engine.GenerateCoverageMap(career, job)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different coverage maps")
	}
}

func TestScoreBoundsAndPartitionCompleteness(t *testing.T) {
	engine := newTestEngine()
	careers := []types.CareerData{
		{},
		{Skills: []types.Skill{{Name: "Python"}, {Name: "AWS"}, {Name: "Docker"}}},
		{Work: []types.WorkExperience{{Company: "A", Position: "B", SkillsUsed: []string{"React", "Node.js"}}}},
	}
	jobs := []types.ParsedJobDescription{
		jobWithSkills(nil, nil),
		jobWithSkills([]string{"Python"}, nil),
		jobWithSkills([]string{"Python", "AWS", "React"}, []string{"Docker", "GraphQL"}),
	}

	for _, career := range careers {
		for _, job := range jobs {
			coverage := engine.GenerateCoverageMap(career, job)
			if coverage.OverallScore < 0 || coverage.OverallScore > 100 {
				t.Errorf("overallScore = %d, out of [0,100]", coverage.OverallScore)
			}

			requiredItems, preferredItems := 0, 0
			for _, item := range coverage.Items {
				if item.Priority == types.PriorityP1 {
					requiredItems++
				} else {
					preferredItems++
				}
			}
			req := coverage.RequiredCoverage
			if req.Full+req.Partial+req.Gap != requiredItems {
				t.Errorf("required counts %+v do not sum to %d items", req, requiredItems)
			}
			pref := coverage.PreferredCoverage
			if pref.Full+pref.Partial+pref.Gap != preferredItems {
				t.Errorf("preferred counts %+v do not sum to %d items", pref, preferredItems)
			}
		}
	}
}

func TestGapClosureIsMonotonic(t *testing.T) {
	engine := newTestEngine()
	career := types.CareerData{Skills: []types.Skill{{Name: "Python"}}}
	job := jobWithSkills([]string{"Python", "Kubernetes"}, nil)

	before := engine.GenerateCoverageMap(career, job)

	career.Skills = append(career.Skills, types.Skill{Name: "Kubernetes"})
	after := engine.GenerateCoverageMap(career, job)

	var item types.CoverageItem
	for _, i := range after.Items {
		if i.Requirement == "Kubernetes" {
			item = i
		}
	}
	if item.Status == types.StatusGap {
		t.Error("adding the skill by name left the item at GAP")
	}
	if after.OverallScore < before.OverallScore {
		t.Errorf("score decreased from %d to %d after gap closure", before.OverallScore, after.OverallScore)
	}
}

func TestEmptyJobScoresZeroWithoutPanic(t *testing.T) {
	engine := newTestEngine()
	coverage := engine.GenerateCoverageMap(types.CareerData{}, types.ParsedJobDescription{})
	if coverage.OverallScore != 0 {
		t.Errorf("overallScore = %d, want 0 for empty job", coverage.OverallScore)
	}
	if len(coverage.Items) != 0 {
		t.Errorf("items = %v, want empty", coverage.Items)
	}
}
