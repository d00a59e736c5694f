// Package triage orchestrates a complete review: resolve a scope into
// file pairs, diff them into semantic changes, build the dependency
// graph, classify and score each change, untangle related changes into
// groups, and compose the final ReviewResult. Nothing here persists
// between calls — every Analyze/AnalyzeRemote call is self-contained.
package triage

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/entitytriage/triage/internal/classify"
	"github.com/entitytriage/triage/internal/differ"
	"github.com/entitytriage/triage/internal/exclude"
	"github.com/entitytriage/triage/internal/gitscope"
	"github.com/entitytriage/triage/internal/graph"
	"github.com/entitytriage/triage/internal/model"
	"github.com/entitytriage/triage/internal/noise"
	"github.com/entitytriage/triage/internal/risk"
	"github.com/entitytriage/triage/internal/untangle"
)

// ImpactCap bounds the dependent-count BFS; 0 uses graph.DefaultImpactCap.
type Options struct {
	ImpactCap int
}

// Analyze resolves scope against a local git checkout at repoRoot and
// runs the full pipeline over the result.
func Analyze(ctx context.Context, repoRoot string, scope gitscope.Scope, opts Options) (model.ReviewResult, error) {
	resolver := gitscope.NewResolver(repoRoot)

	pairs, err := resolver.FilePairs(scope)
	if err != nil {
		return model.ReviewResult{}, gitError(err)
	}
	pairs = filterNoise(pairs)

	_, afterRev := resolver.Resolve(scope)

	t1 := time.Now()
	allPaths, err := resolver.LsFiles(afterRev)
	if err != nil {
		return model.ReviewResult{}, gitError(err)
	}
	allPaths = filterAutoExcludes(repoRoot, allPaths)
	listFilesMs := time.Since(t1).Milliseconds()

	t2 := time.Now()
	read := func(path string) ([]byte, error) { return resolver.ReadFile(afterRev, path) }
	g, err := graph.Build(ctx, allPaths, read)
	if err != nil {
		return model.ReviewResult{}, err
	}
	graphBuildMs := time.Since(t2).Milliseconds()

	return run(pairs, g, opts, timingSeed{
		listFilesMs:  listFilesMs,
		graphBuildMs: graphBuildMs,
		fileCount:    len(allPaths),
	})
}

// AnalyzeRemote runs the pipeline over file pairs gathered from a
// remote source (e.g. a pull request's changed files), with no git
// checkout available. The dependency graph is built from the pairs'
// own after-content only, so blast radius only sees entities touched
// by the change itself.
func AnalyzeRemote(ctx context.Context, pairs []differ.FilePair, opts Options) (model.ReviewResult, error) {
	pairs = filterNoise(pairs)

	t1 := time.Now()
	files := make(map[string][]byte, len(pairs))
	var paths []string
	for _, p := range pairs {
		if p.After != nil {
			files[p.Path] = p.After
			paths = append(paths, p.Path)
		}
	}
	read := func(path string) ([]byte, error) { return files[path], nil }
	g, err := graph.Build(ctx, paths, read)
	if err != nil {
		return model.ReviewResult{}, err
	}
	graphBuildMs := time.Since(t1).Milliseconds()

	return run(pairs, g, opts, timingSeed{graphBuildMs: graphBuildMs, fileCount: len(paths)})
}

type timingSeed struct {
	listFilesMs  int64
	graphBuildMs int64
	fileCount    int
}

// filterAutoExcludes drops paths under an auto-detected dependency
// directory (vendor, node_modules, target, a Python venv) before they
// ever reach the graph builder, on top of the fixed noise-file patterns
// applied to changed paths.
func filterAutoExcludes(repoRoot string, paths []string) []string {
	result := exclude.DetectAutoExcludes(repoRoot)
	if len(result.Directories) == 0 {
		return paths
	}

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		excluded := false
		for _, dir := range result.Directories {
			if p == dir || strings.HasPrefix(p, dir+"/") {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, p)
		}
	}
	return out
}

func filterNoise(pairs []differ.FilePair) []differ.FilePair {
	var out []differ.FilePair
	for _, p := range pairs {
		if noise.IsNoise(p.Path) {
			logrus.WithField("path", p.Path).Debug("dropping noise file from review")
			continue
		}
		out = append(out, p)
	}
	return out
}

func run(pairs []differ.FilePair, g *graph.Graph, opts Options, seed timingSeed) (model.ReviewResult, error) {
	start := time.Now()

	td0 := time.Now()
	changes := differ.Diff(pairs)
	diffMs := time.Since(td0).Milliseconds()

	if len(changes) == 0 {
		result := model.Empty()
		result.Timing = model.Timing{
			DiffMs:           diffMs,
			ListFilesMs:      seed.listFilesMs,
			FileCount:        seed.fileCount,
			GraphBuildMs:     seed.graphBuildMs,
			GraphEntityCount: g.NodeCount(),
			TotalMs:          time.Since(start).Milliseconds(),
		}
		return result, nil
	}

	ts0 := time.Now()
	total := g.NodeCount()
	impactCap := opts.ImpactCap

	reviews := make([]model.EntityReview, 0, len(changes))
	for _, c := range changes {
		cls := classify.Change(&c)

		isPublicAPI := false
		if c.AfterContent != nil {
			isPublicAPI = risk.IsPublicAPI(c.AfterContent, c.EntityType, c.EntityName)
		} else if c.BeforeContent != nil {
			isPublicAPI = risk.IsPublicAPI(c.BeforeContent, c.EntityType, c.EntityName)
		}

		blastRadius := g.ImpactCount(c.EntityID, impactCap)
		dependentCount := len(g.Dependents(c.EntityID))
		dependencyCount := len(g.Dependencies(c.EntityID))

		score := risk.Score(cls, c.ChangeType, isPublicAPI, c.StructuralChange, blastRadius, dependentCount, total)
		level := risk.Level(score)

		reviews = append(reviews, model.EntityReview{
			EntityID:         c.EntityID,
			EntityName:       c.EntityName,
			EntityType:       c.EntityType,
			FilePath:         c.FilePath,
			ChangeType:       c.ChangeType,
			Classification:   cls,
			RiskScore:        score,
			RiskLevel:        level,
			BlastRadius:      blastRadius,
			DependentCount:   dependentCount,
			DependencyCount:  dependencyCount,
			IsPublicAPI:      isPublicAPI,
			StructuralChange: c.StructuralChange,
			StartLine:        c.StartLine,
			EndLine:          c.EndLine,
			BeforeContent:    c.BeforeContent,
			AfterContent:     c.AfterContent,
			DependentNames:   namedRefs(g, g.Dependents(c.EntityID)),
			DependencyNames:  namedRefs(g, g.Dependencies(c.EntityID)),
		})
	}
	scoringMs := time.Since(ts0).Milliseconds()

	edges := changeEdges(changes, g)
	groups := untangle.Group(reviews, edges)
	assignGroups(reviews, groups)

	result := model.ReviewResult{
		EntityReviews: reviews,
		Groups:        groups,
		Stats:         computeStats(reviews),
		Changes:       changes,
		Timing: model.Timing{
			DiffMs:           diffMs,
			ListFilesMs:      seed.listFilesMs,
			FileCount:        seed.fileCount,
			GraphBuildMs:     seed.graphBuildMs,
			GraphEntityCount: total,
			ScoringMs:        scoringMs,
			TotalMs:          time.Since(start).Milliseconds(),
		},
	}
	return result, nil
}

// changeEdges restricts the graph's edges to pairs where both
// endpoints were changed in this review, which is what the untangler
// clusters on.
func changeEdges(changes []model.SemanticChange, g *graph.Graph) []untangle.Edge {
	changedIDs := make(map[string]struct{}, len(changes))
	for _, c := range changes {
		changedIDs[c.EntityID] = struct{}{}
	}

	var edges []untangle.Edge
	for id := range changedIDs {
		for _, dep := range g.Dependencies(id) {
			if _, ok := changedIDs[dep]; ok {
				edges = append(edges, untangle.Edge{From: id, To: dep})
			}
		}
	}
	return edges
}

func assignGroups(reviews []model.EntityReview, groups []model.ChangeGroup) {
	groupOf := make(map[string]int, len(reviews))
	for _, grp := range groups {
		for _, id := range grp.EntityIDs {
			groupOf[id] = grp.ID
		}
	}
	for i := range reviews {
		reviews[i].GroupID = groupOf[reviews[i].EntityID]
	}
}

func namedRefs(g *graph.Graph, ids []string) []model.NamedRef {
	if len(ids) == 0 {
		return nil
	}
	refs := make([]model.NamedRef, 0, len(ids))
	for _, id := range ids {
		if e, ok := g.Entity(id); ok {
			refs = append(refs, model.NamedRef{Name: e.Name, File: e.FilePath})
		}
	}
	return refs
}

// computeStats tallies a ReviewResult's review set into ReviewStats.
func computeStats(reviews []model.EntityReview) model.ReviewStats {
	stats := model.ReviewStats{TotalEntities: len(reviews)}

	for _, r := range reviews {
		switch r.RiskLevel {
		case model.RiskCritical:
			stats.ByRisk.Critical++
		case model.RiskHigh:
			stats.ByRisk.High++
		case model.RiskMedium:
			stats.ByRisk.Medium++
		default:
			stats.ByRisk.Low++
		}

		switch r.Classification {
		case model.ClassText:
			stats.ByClassification.Text++
		case model.ClassSyntax:
			stats.ByClassification.Syntax++
		case model.ClassFunctional:
			stats.ByClassification.Functional++
		default:
			stats.ByClassification.Mixed++
		}

		switch r.ChangeType {
		case model.ChangeAdded:
			stats.ByChangeType.Added++
		case model.ChangeModified:
			stats.ByChangeType.Modified++
		case model.ChangeDeleted:
			stats.ByChangeType.Deleted++
		case model.ChangeMoved:
			stats.ByChangeType.Moved++
		case model.ChangeRenamed:
			stats.ByChangeType.Renamed++
		}
	}

	return stats
}
