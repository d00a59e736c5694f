package model

// ChangeType classifies how an entity's existence changed between two snapshots.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeDeleted  ChangeType = "deleted"
	ChangeModified ChangeType = "modified"
	ChangeMoved    ChangeType = "moved"
	ChangeRenamed  ChangeType = "renamed"
)

// SemanticChange is the differ's output: one entity that appeared,
// disappeared, or changed between a before/after snapshot pair.
type SemanticChange struct {
	EntityID   string
	ChangeType ChangeType
	EntityType EntityKind
	EntityName string
	FilePath   string

	// OldFilePath is set for Renamed and Moved changes.
	OldFilePath string

	BeforeContent *string
	AfterContent  *string

	// StructuralChange is true iff structural_hash differs between
	// before/after, false if it's identical (cosmetic-only), and nil
	// when it can't be determined (one side absent: Added/Deleted).
	StructuralChange *bool

	StartLine uint32
	EndLine   uint32
}
