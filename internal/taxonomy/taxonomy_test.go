package taxonomy

import "testing"

func TestFindSkill(t *testing.T) {
	tax := Default()

	tests := []struct {
		name     string
		query    string
		found    bool
		expected string
	}{
		{name: "canonical name", query: "Kubernetes", found: true, expected: "Kubernetes"},
		{name: "canonical name lowercase", query: "kubernetes", found: true, expected: "Kubernetes"},
		{name: "alias", query: "K8s", found: true, expected: "Kubernetes"},
		{name: "alias mixed case", query: "golang", found: true, expected: "Go"},
		{name: "surrounding whitespace", query: "  Postgres  ", found: true, expected: "PostgreSQL"},
		{name: "unknown skill", query: "COBOL", found: false},
		{name: "empty string", query: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, ok := tax.FindSkill(tt.query)
			if ok != tt.found {
				t.Fatalf("FindSkill(%q) found = %v, want %v", tt.query, ok, tt.found)
			}
			if ok && def.Name != tt.expected {
				t.Errorf("FindSkill(%q) = %q, want %q", tt.query, def.Name, tt.expected)
			}
		})
	}
}

func TestNormalizeSkillName(t *testing.T) {
	tax := Default()

	tests := []struct {
		query    string
		expected string
	}{
		{"js", "JavaScript"},
		{"React.js", "React"},
		{"AMAZON WEB SERVICES", "AWS"},
		{"COBOL", "COBOL"},              // unknown passes through
		{"  FORTRAN 77 ", "FORTRAN 77"}, // unknown is trimmed only
	}

	for _, tt := range tests {
		if got := tax.NormalizeSkillName(tt.query); got != tt.expected {
			t.Errorf("NormalizeSkillName(%q) = %q, want %q", tt.query, got, tt.expected)
		}
	}
}

func TestGetRelatedSkills(t *testing.T) {
	tax := Default()

	related := tax.GetRelatedSkills("K8s")
	if len(related) == 0 {
		t.Fatal("expected related skills for Kubernetes alias")
	}
	hasDocker := false
	for _, r := range related {
		if r == "Docker" {
			hasDocker = true
		}
	}
	if !hasDocker {
		t.Errorf("expected Docker among Kubernetes related skills, got %v", related)
	}

	if got := tax.GetRelatedSkills("COBOL"); len(got) != 0 {
		t.Errorf("expected no related skills for unknown name, got %v", got)
	}
}

func TestNormalizeIsPure(t *testing.T) {
	tax := Default()

	// Same input must always produce the same output: coverage scoring
	// depends on canonicalization being deterministic.
	for range 3 {
		if got := tax.NormalizeSkillName("k8s"); got != "Kubernetes" {
			t.Fatalf("NormalizeSkillName(k8s) = %q, want Kubernetes", got)
		}
	}
}
