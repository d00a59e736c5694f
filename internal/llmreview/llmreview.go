// Package llmreview defines the data shape an LLM-backed second-opinion
// reviewer would produce for a single entity, plus a deterministic
// prompt builder. It deliberately does not wire any LLM client: the
// two-temperature review-and-validate pass that would consume these
// types is explicitly out of this core's scope. Everything here is
// plumbing for a caller that does hold such a client.
package llmreview

import (
	"strings"
	"text/template"

	"github.com/entitytriage/triage/internal/model"
)

// LlmVerdict is the reviewer's overall disposition on an entity.
type LlmVerdict string

const (
	VerdictApprove        LlmVerdict = "approve"
	VerdictComment         LlmVerdict = "comment"
	VerdictRequestChanges  LlmVerdict = "request_changes"
)

// LlmIssue is a single problem the reviewer flagged.
type LlmIssue struct {
	Severity    string `json:"severity"` // "error" | "warning" | "info"
	Description string `json:"description"`
}

// EntityLlmReview is one entity's LLM-generated review.
type EntityLlmReview struct {
	EntityName string     `json:"entity_name"`
	FilePath   string     `json:"file_path"`
	Verdict    LlmVerdict `json:"verdict"`
	Issues     []LlmIssue `json:"issues"`
	Summary    string     `json:"summary"`
	TokensUsed uint64     `json:"tokens_used"`
}

// SystemPrompt instructs a model to review a single entity and respond
// with structured JSON matching EntityLlmReview's shape.
const SystemPrompt = `You are a code reviewer. Review the entity for bugs, security issues, and correctness problems. Respond with JSON only, no explanation outside the JSON. Format:
{"verdict": "approve" | "comment" | "request_changes", "issues": [{"severity": "error" | "warning" | "info", "description": "..."}], "summary": "one sentence"}`

var promptTemplate = template.Must(template.New("prompt").Parse(
	`Entity: {{.EntityName}} ({{.EntityType}})
File: {{.FilePath}}
Change: {{.ChangeType}}
Classification: {{.Classification}}
Risk: {{.RiskLevel}} (score {{printf "%.2f" .RiskScore}})
Blast radius: {{.BlastRadius}}, Dependents: {{.DependentCount}}
{{- if .IsPublicAPI}}
Public API: yes
{{- end}}
{{- if .DependentNames}}

Dependents:
{{- range .DependentNames}}
  {{.Name}} ({{.File}})
{{- end}}
{{- end}}
{{- if .BeforeContent}}

BEFORE:
` + "```" + `
{{.BeforeContent}}
` + "```" + `
{{- end}}
{{- if .AfterContent}}

AFTER:
` + "```" + `
{{.AfterContent}}
` + "```" + `
{{- end}}`))

// promptView flattens EntityReview's pointer fields into plain strings,
// since text/template prints a *string as its address rather than its
// contents.
type promptView struct {
	model.EntityReview
	BeforeContent string
	AfterContent  string
}

// BuildPrompt renders the user-message prompt for a single entity
// review, mirroring the original's build_prompt field order exactly so
// a real LLM client could drop one in without reshaping the review.
func BuildPrompt(entity model.EntityReview) (string, error) {
	view := promptView{EntityReview: entity}
	if entity.BeforeContent != nil {
		view.BeforeContent = *entity.BeforeContent
	}
	if entity.AfterContent != nil {
		view.AfterContent = *entity.AfterContent
	}

	var b strings.Builder
	if err := promptTemplate.Execute(&b, view); err != nil {
		return "", err
	}
	return b.String(), nil
}
