package types

// Basics holds the candidate's identity and contact information
type Basics struct {
	Name    string `json:"name,omitempty"`
	Label   string `json:"label,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	URL     string `json:"url,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// WorkExperience is one employment entry. Dates are "YYYY-MM" strings;
// an empty EndDate means the role is ongoing.
type WorkExperience struct {
	Company    string   `json:"company"`
	Position   string   `json:"position"`
	URL        string   `json:"url,omitempty"`
	StartDate  string   `json:"startDate,omitempty"`
	EndDate    string   `json:"endDate,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
	SkillsUsed []string `json:"skillsUsed,omitempty"`
	ToolsUsed  []string `json:"toolsUsed,omitempty"`
}

// Education is one education entry
type Education struct {
	Institution string `json:"institution"`
	Area        string `json:"area,omitempty"`
	StudyType   string `json:"studyType,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Score       string `json:"score,omitempty"`
}

// Project is a personal, freelance, open source, or academic project
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Highlights   []string `json:"highlights,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Skill is a declared skill on the candidate's profile
type Skill struct {
	Name     string   `json:"name"`
	Level    string   `json:"level,omitempty"`
	Category string   `json:"category,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Certification is a completed certification, optionally tied to
// the skills it validates
type Certification struct {
	Name            string   `json:"name"`
	Issuer          string   `json:"issuer,omitempty"`
	Date            string   `json:"date,omitempty"`
	SkillsValidated []string `json:"skillsValidated,omitempty"`
}

// CareerData is the candidate's full structured profile. It is owned by
// the user and mutated only by profile edits and gap response processing.
type CareerData struct {
	Basics         Basics           `json:"basics"`
	Work           []WorkExperience `json:"work,omitempty"`
	Education      []Education      `json:"education,omitempty"`
	Projects       []Project        `json:"projects,omitempty"`
	Skills         []Skill          `json:"skills,omitempty"`
	Certifications []Certification  `json:"certifications,omitempty"`
}
