package services

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

const DefaultPromptVersion = "ats_v1"

type ExperienceLevel string

const (
	ExperienceFresher  ExperienceLevel = "Fresher"
	ExperienceTwoYears ExperienceLevel = "2 Years of Experience"
	ExperienceSenior   ExperienceLevel = "More than 2 Years of Experience"
)

// NormalizeExperienceLevel maps free-form input onto one of the three labels.
// Unrecognized values fall through to ExperienceSenior.
func NormalizeExperienceLevel(raw string) ExperienceLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "fresher":
		return ExperienceFresher
	case "2 years":
		return ExperienceTwoYears
	default:
		return ExperienceSenior
	}
}

// BuildCombinedInput joins the three labeled segments in fixed order.
func BuildCombinedInput(resumeText, jobDescription string, level ExperienceLevel) string {
	return fmt.Sprintf("Resume: %s\n\nJob Description: %s\n\nExperience Level: %s\n",
		resumeText, jobDescription, level)
}

type promptData struct {
	CombinedInput string
}

type PromptBuilder struct {
	version string
	tmpl    *template.Template
}

// NewPromptBuilder loads a built-in template by version.
func NewPromptBuilder(version string) (*PromptBuilder, error) {
	if version == "" {
		version = DefaultPromptVersion
	}

	raw, err := promptFS.ReadFile("prompts/" + version + ".tmpl")
	if err != nil {
		return nil, fmt.Errorf("unknown prompt version %q (available: %s)", version, strings.Join(PromptVersions(), ", "))
	}

	return newPromptBuilder(version, string(raw))
}

// NewPromptBuilderFromFile loads a template from disk; the file name
// without extension becomes the version.
func NewPromptBuilderFromFile(path string) (*PromptBuilder, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt template: %w", err)
	}

	version := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return newPromptBuilder(version, string(raw))
}

func newPromptBuilder(version, text string) (*PromptBuilder, error) {
	tmpl, err := template.New(version).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template %q: %w", version, err)
	}

	return &PromptBuilder{version: version, tmpl: tmpl}, nil
}

func (pb *PromptBuilder) Version() string {
	return pb.version
}

// BuildATSPrompt renders the analysis prompt around the Combined Input.
func (pb *PromptBuilder) BuildATSPrompt(combinedInput string) (string, error) {
	var buf bytes.Buffer
	if err := pb.tmpl.Execute(&buf, promptData{CombinedInput: combinedInput}); err != nil {
		return "", fmt.Errorf("render prompt %q: %w", pb.version, err)
	}
	return buf.String(), nil
}

// PromptVersions lists the built-in template versions.
func PromptVersions() []string {
	entries, err := promptFS.ReadDir("prompts")
	if err != nil {
		return nil
	}

	var versions []string
	for _, entry := range entries {
		versions = append(versions, strings.TrimSuffix(entry.Name(), ".tmpl"))
	}
	sort.Strings(versions)
	return versions
}
