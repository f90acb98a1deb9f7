package types

// CoverageStatus classifies how well one requirement is covered
type CoverageStatus string

const (
	StatusFull    CoverageStatus = "FULL"
	StatusPartial CoverageStatus = "PARTIAL"
	StatusGap     CoverageStatus = "GAP"
)

// CoverageItem is the evaluation of a single job requirement against the
// candidate's profile. Derived data: recomputed on every scoring call,
// never the source of truth.
type CoverageItem struct {
	Requirement string         `json:"requirement"`
	Category    string         `json:"category"` // skill|experience|education|other
	Priority    SkillPriority  `json:"priority"`
	Status      CoverageStatus `json:"status"`
	Evidence    []string       `json:"evidence"`
}

// CoverageCounts tallies statuses within one priority partition
type CoverageCounts struct {
	Full    int `json:"full"`
	Partial int `json:"partial"`
	Gap     int `json:"gap"`
}

// CoverageMap is the full per-requirement assessment for one
// (candidate, job) pair plus the aggregate score.
type CoverageMap struct {
	Items             []CoverageItem `json:"items"`
	OverallScore      int            `json:"overallScore"`
	RequiredCoverage  CoverageCounts `json:"requiredCoverage"`
	PreferredCoverage CoverageCounts `json:"preferredCoverage"`
}

// GapQuestionType identifies which angle a gap question probes
type GapQuestionType string

const (
	QuestionExperience   GapQuestionType = "experience"
	QuestionProject      GapQuestionType = "project"
	QuestionTraining     GapQuestionType = "training"
	QuestionTransferable GapQuestionType = "transferable"
)

// GapQuestion is a targeted question aimed at uncovering unrecorded
// evidence for a GAP or PARTIAL requirement. Ephemeral: regenerated per
// request, never persisted.
type GapQuestion struct {
	ID                    string          `json:"id"`
	SkillName             string          `json:"skillName"`
	Question              string          `json:"question"`
	Context               string          `json:"context"`
	QuestionType          GapQuestionType `json:"questionType"`
	SuggestedAnswerFormat string          `json:"suggestedAnswerFormat,omitempty"`
	Priority              SkillPriority   `json:"priority"`
}

// GapQuestionResponse is a user's answer to a gap question. SkillName is
// optional; when absent the skill is recovered from the question id.
type GapQuestionResponse struct {
	QuestionID        string `json:"questionId"`
	SkillName         string `json:"skillName,omitempty"`
	Answer            string `json:"answer"`
	HasExperience     bool   `json:"hasExperience"`
	YearsOfExperience int    `json:"yearsOfExperience,omitempty"`
	Context           string `json:"context,omitempty"`
}

// GapAnalysis is the ranked question list plus gap counts for one
// coverage map
type GapAnalysis struct {
	Questions       []GapQuestion `json:"questions"`
	TotalGaps       int           `json:"totalGaps"`
	CriticalGaps    int           `json:"criticalGaps"`
	AddressableGaps int           `json:"addressableGaps"`
}
