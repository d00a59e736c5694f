package model

// ChangeClassification is the ConGra taxonomy: the power set of
// {Text, Syntax, Functional} minus the empty set.
type ChangeClassification string

const (
	ClassText                 ChangeClassification = "text"
	ClassSyntax               ChangeClassification = "syntax"
	ClassFunctional           ChangeClassification = "functional"
	ClassTextSyntax           ChangeClassification = "text+syntax"
	ClassTextFunctional       ChangeClassification = "text+functional"
	ClassSyntaxFunctional     ChangeClassification = "syntax+functional"
	ClassTextSyntaxFunctional ChangeClassification = "text+syntax+functional"
)

// RiskLevel is the discrete risk bucket derived from RiskScore.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ReviewVerdict is the quick signal returned by SuggestVerdict.
type ReviewVerdict string

const (
	VerdictLikelyApprovable    ReviewVerdict = "likely_approvable"
	VerdictStandardReview      ReviewVerdict = "standard_review"
	VerdictRequiresReview      ReviewVerdict = "requires_review"
	VerdictRequiresCareful     ReviewVerdict = "requires_careful_review"
)

// NamedRef is a (name, file) pair used by downstream LLM prompts to
// describe a dependent or dependency without shipping its full entity id.
type NamedRef struct {
	Name string `json:"name"`
	File string `json:"file"`
}

// EntityReview is the composed result for a single changed entity.
type EntityReview struct {
	EntityID   string                `json:"entity_id"`
	EntityName string                `json:"entity_name"`
	EntityType EntityKind            `json:"entity_type"`
	FilePath   string                `json:"file_path"`
	ChangeType ChangeType            `json:"change_type"`

	Classification ChangeClassification `json:"classification"`
	RiskScore      float64              `json:"risk_score"`
	RiskLevel      RiskLevel            `json:"risk_level"`

	BlastRadius    int  `json:"blast_radius"`
	DependentCount int  `json:"dependent_count"`
	DependencyCount int `json:"dependency_count"`
	IsPublicAPI    bool `json:"is_public_api"`

	// StructuralChange mirrors SemanticChange.StructuralChange.
	StructuralChange *bool `json:"structural_change"`

	GroupID   int    `json:"group_id"`
	StartLine uint32 `json:"start_line"`
	EndLine   uint32 `json:"end_line"`

	BeforeContent *string `json:"before_content,omitempty"`
	AfterContent  *string `json:"after_content,omitempty"`

	DependentNames  []NamedRef `json:"dependent_names,omitempty"`
	DependencyNames []NamedRef `json:"dependency_names,omitempty"`
}

// ChangeGroup is a logical cluster of related changes produced by the untangler.
type ChangeGroup struct {
	ID        int      `json:"id"`
	Label     string   `json:"label"`
	EntityIDs []string `json:"entity_ids"`
}

// RiskBreakdown counts reviews by risk level.
type RiskBreakdown struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// ClassificationBreakdown counts reviews by ConGra bucket, collapsing all
// mixed-dimension classifications into Mixed.
type ClassificationBreakdown struct {
	Text       int `json:"text"`
	Syntax     int `json:"syntax"`
	Functional int `json:"functional"`
	Mixed      int `json:"mixed"`
}

// ChangeTypeBreakdown counts reviews by change type.
type ChangeTypeBreakdown struct {
	Added    int `json:"added"`
	Modified int `json:"modified"`
	Deleted  int `json:"deleted"`
	Moved    int `json:"moved"`
	Renamed  int `json:"renamed"`
}

// ReviewStats summarizes a ReviewResult.
type ReviewStats struct {
	TotalEntities    int                      `json:"total_entities"`
	ByRisk           RiskBreakdown            `json:"by_risk"`
	ByClassification ClassificationBreakdown  `json:"by_classification"`
	ByChangeType     ChangeTypeBreakdown      `json:"by_change_type"`
}

// Timing holds millisecond counters per analysis phase, plus a couple of
// counts gathered along the way that are cheap to expose.
type Timing struct {
	DiffMs           int64 `json:"diff_ms"`
	ListFilesMs      int64 `json:"list_files_ms"`
	FileCount        int   `json:"file_count"`
	GraphBuildMs     int64 `json:"graph_build_ms"`
	GraphEntityCount int   `json:"graph_entity_count"`
	ScoringMs        int64 `json:"scoring_ms"`
	TotalMs          int64 `json:"total_ms"`
}

// ReviewResult is the complete output of one analysis.
type ReviewResult struct {
	EntityReviews []EntityReview `json:"entity_reviews"`
	Groups        []ChangeGroup  `json:"groups"`
	Stats         ReviewStats    `json:"stats"`
	Timing        Timing         `json:"timing"`

	// Changes carries the underlying semantic changes for callers that
	// want raw data (e.g. formatters); excluded from JSON on purpose,
	// mirroring the source system's #[serde(skip)].
	Changes []SemanticChange `json:"-"`
}

// Empty returns a well-formed, empty ReviewResult (used for empty diffs).
func Empty() ReviewResult {
	return ReviewResult{
		EntityReviews: []EntityReview{},
		Groups:        []ChangeGroup{},
		Stats:         ReviewStats{},
	}
}
