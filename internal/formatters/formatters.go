package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"skillfit/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ParsedJobDescription", &JobTextFormatter{})
	registry.RegisterFormatter("markdown", "ParsedJobDescription", &JobMarkdownFormatter{})
	registry.RegisterFormatter("text", "CoverageMap", &CoverageTextFormatter{})
	registry.RegisterFormatter("markdown", "CoverageMap", &CoverageMarkdownFormatter{})
	registry.RegisterFormatter("text", "GapAnalysis", &GapAnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "GapAnalysis", &GapAnalysisMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ParsedJobDescription:
		return "ParsedJobDescription"
	case types.CoverageMap:
		return "CoverageMap"
	case types.GapAnalysis:
		return "GapAnalysis"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func writeSkillList(output *strings.Builder, skills []types.ExtractedSkill) {
	for _, skill := range skills {
		output.WriteString(fmt.Sprintf("- [%s] %s (%s)\n", skill.Priority, skill.Name, skill.Category))
	}
}

// JobTextFormatter handles text formatting for parsed job descriptions
type JobTextFormatter struct{}

func (jtf *JobTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ParsedJobDescription)
	if !ok {
		return "", fmt.Errorf("expected ParsedJobDescription, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== PARSED JOB DESCRIPTION ===\n\n")
	if result.Title != "" {
		output.WriteString(fmt.Sprintf("Title: %s\n", result.Title))
	}
	if result.Company != "" {
		output.WriteString(fmt.Sprintf("Company: %s\n", result.Company))
	}
	if result.Location != "" {
		output.WriteString(fmt.Sprintf("Location: %s\n", result.Location))
	}
	if result.SeniorityLevel != "" {
		output.WriteString(fmt.Sprintf("Seniority: %s\n", result.SeniorityLevel))
	}
	output.WriteString("\n")

	output.WriteString("=== REQUIRED SKILLS ===\n")
	if len(result.RequiredSkills) > 0 {
		writeSkillList(&output, result.RequiredSkills)
	} else {
		output.WriteString("None detected.\n")
	}
	output.WriteString("\n")

	output.WriteString("=== PREFERRED SKILLS ===\n")
	if len(result.PreferredSkills) > 0 {
		writeSkillList(&output, result.PreferredSkills)
	} else {
		output.WriteString("None detected.\n")
	}
	output.WriteString("\n")

	if len(result.Requirements) > 0 {
		output.WriteString("=== REQUIREMENTS ===\n")
		for _, req := range result.Requirements {
			marker := "preferred"
			if req.IsRequired {
				marker = "required"
			}
			output.WriteString(fmt.Sprintf("- %s (%s, %s)\n", req.Text, req.Type, marker))
		}
		output.WriteString("\n")
	}

	if len(result.Responsibilities) > 0 {
		output.WriteString("=== RESPONSIBILITIES ===\n")
		for _, resp := range result.Responsibilities {
			output.WriteString(fmt.Sprintf("- %s\n", resp))
		}
	}

	return output.String(), nil
}

func (jtf *JobTextFormatter) SupportedType() string {
	return "ParsedJobDescription"
}

// JobMarkdownFormatter handles markdown formatting for parsed job descriptions
type JobMarkdownFormatter struct{}

func (jmf *JobMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ParsedJobDescription)
	if !ok {
		return "", fmt.Errorf("expected ParsedJobDescription, got %T", data)
	}

	var output strings.Builder

	title := result.Title
	if title == "" {
		title = "Parsed Job Description"
	}
	output.WriteString(fmt.Sprintf("# %s\n\n", title))
	if result.Company != "" {
		output.WriteString(fmt.Sprintf("**Company:** %s\n\n", result.Company))
	}
	if result.Location != "" {
		output.WriteString(fmt.Sprintf("**Location:** %s\n\n", result.Location))
	}
	if result.SeniorityLevel != "" {
		output.WriteString(fmt.Sprintf("**Seniority:** %s\n\n", result.SeniorityLevel))
	}

	output.WriteString("## Required Skills\n\n")
	if len(result.RequiredSkills) > 0 {
		writeSkillList(&output, result.RequiredSkills)
	} else {
		output.WriteString("None detected.\n")
	}
	output.WriteString("\n")

	output.WriteString("## Preferred Skills\n\n")
	if len(result.PreferredSkills) > 0 {
		writeSkillList(&output, result.PreferredSkills)
	} else {
		output.WriteString("None detected.\n")
	}
	output.WriteString("\n")

	if len(result.Requirements) > 0 {
		output.WriteString("## Requirements\n\n")
		for _, req := range result.Requirements {
			marker := "preferred"
			if req.IsRequired {
				marker = "required"
			}
			output.WriteString(fmt.Sprintf("- %s *(%s, %s)*\n", req.Text, req.Type, marker))
		}
		output.WriteString("\n")
	}

	if len(result.Responsibilities) > 0 {
		output.WriteString("## Responsibilities\n\n")
		for _, resp := range result.Responsibilities {
			output.WriteString(fmt.Sprintf("- %s\n", resp))
		}
	}

	return output.String(), nil
}

func (jmf *JobMarkdownFormatter) SupportedType() string {
	return "ParsedJobDescription"
}

// CoverageTextFormatter handles text formatting for coverage maps
type CoverageTextFormatter struct{}

func (ctf *CoverageTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CoverageMap)
	if !ok {
		return "", fmt.Errorf("expected CoverageMap, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== COVERAGE REPORT ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %d/100\n\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("Required:  %d full, %d partial, %d gap\n",
		result.RequiredCoverage.Full, result.RequiredCoverage.Partial, result.RequiredCoverage.Gap))
	output.WriteString(fmt.Sprintf("Preferred: %d full, %d partial, %d gap\n\n",
		result.PreferredCoverage.Full, result.PreferredCoverage.Partial, result.PreferredCoverage.Gap))

	output.WriteString("=== REQUIREMENTS ===\n\n")
	for _, item := range result.Items {
		output.WriteString(fmt.Sprintf("[%s] %s (%s, %s)\n", item.Status, item.Requirement, item.Priority, item.Category))
		for _, ev := range item.Evidence {
			output.WriteString(fmt.Sprintf("    %s\n", ev))
		}
	}

	return output.String(), nil
}

func (ctf *CoverageTextFormatter) SupportedType() string {
	return "CoverageMap"
}

// CoverageMarkdownFormatter handles markdown formatting for coverage maps
type CoverageMarkdownFormatter struct{}

func (cmf *CoverageMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CoverageMap)
	if !ok {
		return "", fmt.Errorf("expected CoverageMap, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Coverage Report\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %d/100\n\n", result.OverallScore))

	output.WriteString("| Partition | Full | Partial | Gap |\n")
	output.WriteString("|-----------|------|---------|-----|\n")
	output.WriteString(fmt.Sprintf("| Required | %d | %d | %d |\n",
		result.RequiredCoverage.Full, result.RequiredCoverage.Partial, result.RequiredCoverage.Gap))
	output.WriteString(fmt.Sprintf("| Preferred | %d | %d | %d |\n\n",
		result.PreferredCoverage.Full, result.PreferredCoverage.Partial, result.PreferredCoverage.Gap))

	output.WriteString("## Requirements\n\n")
	for _, item := range result.Items {
		output.WriteString(fmt.Sprintf("### %s\n\n", item.Requirement))
		output.WriteString(fmt.Sprintf("**Status:** %s | **Priority:** %s | **Category:** %s\n\n",
			item.Status, item.Priority, item.Category))
		if len(item.Evidence) > 0 {
			output.WriteString("Evidence:\n")
			for _, ev := range item.Evidence {
				output.WriteString(fmt.Sprintf("- %s\n", ev))
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (cmf *CoverageMarkdownFormatter) SupportedType() string {
	return "CoverageMap"
}

// GapAnalysisTextFormatter handles text formatting for gap analyses
type GapAnalysisTextFormatter struct{}

func (gtf *GapAnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.GapAnalysis)
	if !ok {
		return "", fmt.Errorf("expected GapAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== GAP ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Total Gaps: %d\n", result.TotalGaps))
	output.WriteString(fmt.Sprintf("Critical Gaps: %d\n", result.CriticalGaps))
	output.WriteString(fmt.Sprintf("Addressable Gaps: %d\n\n", result.AddressableGaps))

	if len(result.Questions) == 0 {
		output.WriteString("No gap questions generated.\n")
		return output.String(), nil
	}

	output.WriteString("=== QUESTIONS ===\n\n")
	for i, q := range result.Questions {
		output.WriteString(fmt.Sprintf("%d. [%s/%s] %s\n", i+1, q.Priority, q.QuestionType, q.SkillName))
		output.WriteString(fmt.Sprintf("   Q: %s\n", q.Question))
		if q.Context != "" {
			output.WriteString(fmt.Sprintf("   Context: %s\n", q.Context))
		}
		if q.SuggestedAnswerFormat != "" {
			output.WriteString(fmt.Sprintf("   Answer format: %s\n", q.SuggestedAnswerFormat))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (gtf *GapAnalysisTextFormatter) SupportedType() string {
	return "GapAnalysis"
}

// GapAnalysisMarkdownFormatter handles markdown formatting for gap analyses
type GapAnalysisMarkdownFormatter struct{}

func (gmf *GapAnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.GapAnalysis)
	if !ok {
		return "", fmt.Errorf("expected GapAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Gap Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Total Gaps:** %d | **Critical:** %d | **Addressable:** %d\n\n",
		result.TotalGaps, result.CriticalGaps, result.AddressableGaps))

	if len(result.Questions) == 0 {
		output.WriteString("No gap questions generated.\n")
		return output.String(), nil
	}

	output.WriteString("## Questions\n\n")
	for i, q := range result.Questions {
		output.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, q.SkillName))
		output.WriteString(fmt.Sprintf("**Priority:** %s | **Type:** %s\n\n", q.Priority, q.QuestionType))
		output.WriteString(q.Question)
		output.WriteString("\n\n")
		if q.Context != "" {
			output.WriteString(fmt.Sprintf("*%s*\n\n", q.Context))
		}
		if q.SuggestedAnswerFormat != "" {
			output.WriteString(fmt.Sprintf("**Suggested answer format:** %s\n\n", q.SuggestedAnswerFormat))
		}
	}

	return output.String(), nil
}

func (gmf *GapAnalysisMarkdownFormatter) SupportedType() string {
	return "GapAnalysis"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
