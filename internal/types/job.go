package types

// SeniorityLevel is the seniority tier detected in a job posting
type SeniorityLevel string

const (
	SeniorityEntry     SeniorityLevel = "entry"
	SeniorityMid       SeniorityLevel = "mid"
	SenioritySenior    SeniorityLevel = "senior"
	SeniorityLead      SeniorityLevel = "lead"
	SeniorityExecutive SeniorityLevel = "executive"
)

// SkillPriority ranks a requirement from must-have (P1) down to
// lowest-priority preferred (P4)
type SkillPriority string

const (
	PriorityP1 SkillPriority = "P1"
	PriorityP2 SkillPriority = "P2"
	PriorityP3 SkillPriority = "P3"
	PriorityP4 SkillPriority = "P4"
)

// Rank returns the sort weight of a priority, P1 lowest
func (p SkillPriority) Rank() int {
	switch p {
	case PriorityP1:
		return 0
	case PriorityP2:
		return 1
	case PriorityP3:
		return 2
	default:
		return 3
	}
}

// ExtractedSkill is one skill pulled out of a job posting
type ExtractedSkill struct {
	Name     string        `json:"name"`
	Priority SkillPriority `json:"priority"`
	Category string        `json:"category"` // technical|soft|tool|domain|certification
	Context  string        `json:"context,omitempty"`
}

// ExtractedRequirement is a free-text requirement sentence with its
// classification and, when stated, the years of experience demanded
type ExtractedRequirement struct {
	Text          string `json:"text"`
	Type          string `json:"type"` // experience|education|certification|other
	YearsRequired int    `json:"yearsRequired,omitempty"`
	IsRequired    bool   `json:"isRequired"`
}

// ParsedJobDescription is the structured form of a job posting. It is
// produced once by the parser, persisted verbatim, and reconstructed on
// every coverage or gap request without re-parsing.
type ParsedJobDescription struct {
	Title            string                 `json:"title,omitempty"`
	Company          string                 `json:"company,omitempty"`
	Location         string                 `json:"location,omitempty"`
	SeniorityLevel   SeniorityLevel         `json:"seniorityLevel,omitempty"`
	RequiredSkills   []ExtractedSkill       `json:"requiredSkills"`
	PreferredSkills  []ExtractedSkill       `json:"preferredSkills"`
	Responsibilities []string               `json:"responsibilities"`
	Requirements     []ExtractedRequirement `json:"requirements"`
	Benefits         []string               `json:"benefits,omitempty"`
}

// ExtractionSkill is a skill name plus category as returned by the
// assisted extraction, before priorities are assigned
type ExtractionSkill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// JobExtraction is the raw model output of assisted job-posting
// extraction. The parser validates it and assigns skill priorities.
type JobExtraction struct {
	Title            string                 `json:"title"`
	Company          string                 `json:"company"`
	Location         string                 `json:"location"`
	SeniorityLevel   string                 `json:"seniorityLevel"`
	RequiredSkills   []ExtractionSkill      `json:"requiredSkills"`
	PreferredSkills  []ExtractionSkill      `json:"preferredSkills"`
	Responsibilities []string               `json:"responsibilities"`
	Requirements     []ExtractedRequirement `json:"requirements"`
	Benefits         []string               `json:"benefits"`
}

// GapQuestionDraft is the model-written portion of an assisted gap
// question; the generator fills in identity and priority fields.
type GapQuestionDraft struct {
	Question              string `json:"question"`
	Context               string `json:"context"`
	SuggestedAnswerFormat string `json:"suggestedAnswerFormat"`
}

// GapQuestionInput carries the profile snapshot handed to the model
// when drafting a single gap question
type GapQuestionInput struct {
	SkillName       string   `json:"skillName"`
	Priority        string   `json:"priority"`
	CurrentRole     string   `json:"currentRole,omitempty"`
	YearsExperience int      `json:"yearsExperience"`
	Skills          []string `json:"skills,omitempty"`
	Projects        []string `json:"projects,omitempty"`
}
