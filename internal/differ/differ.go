// Package differ maps a set of (before, after) file pairs to entity
// level semantic changes: Added, Deleted, Modified, Moved and Renamed.
package differ

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/entitytriage/triage/internal/extract"
	"github.com/entitytriage/triage/internal/model"
	"github.com/entitytriage/triage/internal/parser"
	"github.com/entitytriage/triage/internal/source"
)

// FileStatus is the differ's view of how a file pair came to exist.
type FileStatus string

const (
	StatusAdded    FileStatus = "added"
	StatusModified FileStatus = "modified"
	StatusRemoved  FileStatus = "removed"
	StatusRenamed  FileStatus = "renamed"
	StatusCopied   FileStatus = "copied"
)

// FilePair is one entry of the differ's input.
type FilePair struct {
	Path    string
	OldPath string // set when Status == StatusRenamed
	Status  FileStatus
	Before  []byte // nil if the path did not exist before
	After   []byte // nil if the path does not exist after
}

func (p FilePair) beforePath() string {
	if p.Status == StatusRenamed && p.OldPath != "" {
		return p.OldPath
	}
	return p.Path
}

// Diff computes the semantic changes across every file pair. Entity
// pairing happens at the level of the whole changeset, not per file,
// because a Moved entity surfaces across two otherwise-unrelated file
// pairs. Parse failures on either side of a pair degrade that side to
// an empty entity set rather than aborting the whole diff.
func Diff(pairs []FilePair) []model.SemanticChange {
	before := make(map[string]model.Entity)
	after := make(map[string]model.Entity)
	renamedTo := make(map[string]string) // old file path -> new file path

	for _, pair := range pairs {
		for id, e := range entitiesFor(pair.beforePath(), pair.Before) {
			before[id] = e
		}
		for id, e := range entitiesFor(pair.Path, pair.After) {
			after[id] = e
		}
		if pair.Status == StatusRenamed && pair.OldPath != "" {
			renamedTo[pair.OldPath] = pair.Path
		}
	}

	var changes []model.SemanticChange
	matched := make(map[string]bool, len(before))

	for id, a := range after {
		b, existsBefore := before[id]
		if !existsBefore {
			continue
		}
		matched[id] = true

		if a.StructuralHash == b.StructuralHash && a.BodyText == b.BodyText {
			continue
		}

		changes = append(changes, model.SemanticChange{
			EntityID:         id,
			ChangeType:       model.ChangeModified,
			EntityType:       a.Kind,
			EntityName:       a.Name,
			FilePath:         a.FilePath,
			BeforeContent:    strPtr(b.BodyText),
			AfterContent:     strPtr(a.BodyText),
			StructuralChange: boolPtr(a.StructuralHash != b.StructuralHash),
			StartLine:        a.StartLine,
			EndLine:          a.EndLine,
		})
	}

	var added, deleted []model.Entity
	for id, a := range after {
		if !matched[id] {
			added = append(added, a)
		}
	}
	for id, b := range before {
		if !matched[id] {
			deleted = append(deleted, b)
		}
	}

	relocated, remAdded, remDeleted := pairByHash(added, deleted, renamedTo)
	changes = append(changes, relocated...)

	for _, a := range remAdded {
		changes = append(changes, model.SemanticChange{
			EntityID:     a.ID,
			ChangeType:   model.ChangeAdded,
			EntityType:   a.Kind,
			EntityName:   a.Name,
			FilePath:     a.FilePath,
			AfterContent: strPtr(a.BodyText),
			StartLine:    a.StartLine,
			EndLine:      a.EndLine,
		})
	}
	for _, b := range remDeleted {
		changes = append(changes, model.SemanticChange{
			EntityID:      b.ID,
			ChangeType:    model.ChangeDeleted,
			EntityType:    b.Kind,
			EntityName:    b.Name,
			FilePath:      b.FilePath,
			BeforeContent: strPtr(b.BodyText),
			StartLine:     b.StartLine,
			EndLine:       b.EndLine,
		})
	}

	return changes
}

func entitiesFor(path string, content []byte) map[string]model.Entity {
	out := make(map[string]model.Entity)
	if content == nil {
		return out
	}

	lang, ok := source.LanguageFor(path)
	if !ok {
		return out
	}

	entities, err := extract.FromSource(path, parser.Language(lang), content)
	if err != nil {
		logrus.WithField("file", path).WithError(err).Warn("pairing input unreadable, degrading this side to an empty entity set")
		return out
	}

	for _, e := range entities {
		out[e.ID] = e
	}
	return out
}

// pairByHash matches Added/Deleted candidates that share an identical
// structural_hash. A match whose deleted side's file is the declared
// rename-source of the added side's file emits Renamed; any other
// cross-file match emits Moved. Ties among same-hash candidates prefer
// the one with matching name+kind, then the smallest line-range delta.
func pairByHash(added, deleted []model.Entity, renamedTo map[string]string) (matched []model.SemanticChange, remAdded, remDeleted []model.Entity) {
	byHash := make(map[string][]model.Entity)
	for _, d := range deleted {
		byHash[d.StructuralHash] = append(byHash[d.StructuralHash], d)
	}

	usedDeleted := make(map[string]bool)
	for _, a := range added {
		best := pickBestCandidate(a, byHash[a.StructuralHash], usedDeleted)
		if best == nil {
			remAdded = append(remAdded, a)
			continue
		}

		usedDeleted[best.ID] = true

		changeType := model.ChangeMoved
		if renamedTo[best.FilePath] == a.FilePath {
			changeType = model.ChangeRenamed
		}

		matched = append(matched, model.SemanticChange{
			EntityID:         a.ID,
			ChangeType:       changeType,
			EntityType:       a.Kind,
			EntityName:       a.Name,
			FilePath:         a.FilePath,
			OldFilePath:      best.FilePath,
			BeforeContent:    strPtr(best.BodyText),
			AfterContent:     strPtr(a.BodyText),
			StructuralChange: boolPtr(false),
			StartLine:        a.StartLine,
			EndLine:          a.EndLine,
		})
	}

	for _, d := range deleted {
		if !usedDeleted[d.ID] {
			remDeleted = append(remDeleted, d)
		}
	}

	sort.Slice(remAdded, func(i, j int) bool { return remAdded[i].ID < remAdded[j].ID })
	sort.Slice(remDeleted, func(i, j int) bool { return remDeleted[i].ID < remDeleted[j].ID })

	return matched, remAdded, remDeleted
}

func pickBestCandidate(a model.Entity, candidates []model.Entity, used map[string]bool) *model.Entity {
	var best *model.Entity
	bestScore := -1
	var bestDelta int64

	for i := range candidates {
		c := candidates[i]
		if used[c.ID] {
			continue
		}

		score := 0
		if c.Name == a.Name && c.Kind == a.Kind {
			score = 1
		}
		delta := lineDelta(a, c)

		if best == nil || score > bestScore || (score == bestScore && delta < bestDelta) {
			cc := c
			best = &cc
			bestScore = score
			bestDelta = delta
		}
	}

	return best
}

func lineDelta(a, b model.Entity) int64 {
	d := int64(a.StartLine) - int64(b.StartLine)
	if d < 0 {
		d = -d
	}
	return d
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
