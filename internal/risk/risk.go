// Package risk scores a single entity review on a 0..1 scale and buckets
// the score into a discrete risk level.
package risk

import (
	"math"
	"strings"

	"github.com/entitytriage/triage/internal/model"
)

var classificationWeight = map[model.ChangeClassification]float64{
	model.ClassText:                 0.00,
	model.ClassSyntax:               0.08,
	model.ClassFunctional:           0.22,
	model.ClassTextSyntax:           0.10,
	model.ClassTextFunctional:       0.22,
	model.ClassSyntaxFunctional:     0.25,
	model.ClassTextSyntaxFunctional: 0.28,
}

var changeTypeWeight = map[model.ChangeType]float64{
	model.ChangeDeleted:  0.12,
	model.ChangeModified: 0.08,
	model.ChangeRenamed:  0.04,
	model.ChangeMoved:    0.00,
	model.ChangeAdded:    0.02,
}

const (
	publicAPIBoost  = 0.12
	blastRadiusCoef = 0.30
	dependentCoef   = 0.15

	levelCritical = 0.7
	levelHigh     = 0.5
	levelMedium   = 0.3
)

// Score computes the additive, clamped, discounted risk score for one
// entity review. totalEntities is the graph's total node count, used to
// normalize blastRadius into a ratio.
func Score(cls model.ChangeClassification, ct model.ChangeType, isPublicAPI bool, structuralChange *bool, blastRadius, dependentCount, totalEntities int) float64 {
	score := classificationWeight[cls] + changeTypeWeight[ct]

	if isPublicAPI {
		score += publicAPIBoost
	}

	if blastRadius > 0 && totalEntities > 0 {
		score += math.Sqrt(float64(blastRadius)/float64(totalEntities)) * blastRadiusCoef
	}

	if dependentCount > 0 {
		score += math.Log(1+float64(dependentCount)) * dependentCoef
	}

	if structuralChange != nil && !*structuralChange {
		score *= 0.2
	}

	return math.Min(score, 1.0)
}

// Level buckets a risk score into a discrete level using the fixed
// thresholds 0.7/0.5/0.3.
func Level(score float64) model.RiskLevel {
	switch {
	case score >= levelCritical:
		return model.RiskCritical
	case score >= levelHigh:
		return model.RiskHigh
	case score >= levelMedium:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// publicPrefixes are first-line markers that unambiguously denote a
// public-API declaration regardless of entity kind.
var publicPrefixes = []string{
	"pub ",
	"pub(crate)",
	"export ",
	"module.exports",
}

// IsPublicAPI implements the spec's public-API detection: an explicit
// visibility marker on the first line of afterContent takes precedence;
// failing that, function/method/struct/interface entities whose name
// starts with an uppercase letter are public by Go/Java convention.
func IsPublicAPI(afterContent *string, kind model.EntityKind, name string) bool {
	if afterContent != nil {
		firstLine := *afterContent
		if idx := strings.IndexByte(firstLine, '\n'); idx >= 0 {
			firstLine = firstLine[:idx]
		}
		firstLine = strings.TrimSpace(firstLine)
		for _, p := range publicPrefixes {
			if strings.HasPrefix(firstLine, p) {
				return true
			}
		}
	}

	switch kind {
	case model.KindFunction, model.KindMethod, model.KindStruct, model.KindInterface:
		return name != "" && name[0] >= 'A' && name[0] <= 'Z'
	default:
		return false
	}
}

// SuggestVerdict inspects every entity review in a result and returns a
// single quick-signal verdict: RequiresCarefulReview if any review is
// Critical, else RequiresReview if any is High, else LikelyApprovable if
// the result is non-empty and every review is cosmetic-only
// (structural_change == false), else StandardReview.
func SuggestVerdict(reviews []model.EntityReview) model.ReviewVerdict {
	if len(reviews) == 0 {
		return model.VerdictStandardReview
	}

	allCosmetic := true
	hasCritical := false
	hasHigh := false

	for _, r := range reviews {
		switch r.RiskLevel {
		case model.RiskCritical:
			hasCritical = true
		case model.RiskHigh:
			hasHigh = true
		}
		if r.StructuralChange == nil || *r.StructuralChange {
			allCosmetic = false
		}
	}

	switch {
	case hasCritical:
		return model.VerdictRequiresCareful
	case hasHigh:
		return model.VerdictRequiresReview
	case allCosmetic:
		return model.VerdictLikelyApprovable
	default:
		return model.VerdictStandardReview
	}
}
