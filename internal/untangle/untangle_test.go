package untangle

import (
	"testing"

	"github.com/entitytriage/triage/internal/model"
)

func makeReview(id, name, file string) model.EntityReview {
	return model.EntityReview{
		EntityID:   id,
		EntityName: name,
		EntityType: model.KindFunction,
		FilePath:   file,
		ChangeType: model.ChangeModified,
	}
}

func TestIndependentEntitiesSeparateGroups(t *testing.T) {
	reviews := []model.EntityReview{
		makeReview("a", "foo", "src/a.rs"),
		makeReview("b", "bar", "src/b.rs"),
	}
	groups := Group(reviews, nil)
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
}

func TestConnectedEntitiesOneGroup(t *testing.T) {
	reviews := []model.EntityReview{
		makeReview("a", "foo", "src/a.rs"),
		makeReview("b", "bar", "src/a.rs"),
		makeReview("c", "baz", "src/a.rs"),
	}
	edges := []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}}
	groups := Group(reviews, edges)
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	if len(groups[0].EntityIDs) != 3 {
		t.Errorf("len(group.EntityIDs) = %d, want 3", len(groups[0].EntityIDs))
	}
}

func TestSingleMemberGroupLabelIsEntityName(t *testing.T) {
	reviews := []model.EntityReview{makeReview("a", "foo", "src/a.rs")}
	groups := Group(reviews, nil)
	if groups[0].Label != "foo" {
		t.Errorf("Label = %q, want %q", groups[0].Label, "foo")
	}
}

func TestMultiMemberGroupLabelIsCommonPrefix(t *testing.T) {
	reviews := []model.EntityReview{
		makeReview("a", "foo", "src/pkg/a.rs"),
		makeReview("b", "bar", "src/pkg/b.rs"),
	}
	edges := []Edge{{From: "a", To: "b"}}
	groups := Group(reviews, edges)
	if groups[0].Label != "src/pkg/" {
		t.Errorf("Label = %q, want %q", groups[0].Label, "src/pkg/")
	}
}

func TestMultiMemberGroupNoPrefixFallsBackToCount(t *testing.T) {
	reviews := []model.EntityReview{
		makeReview("a", "foo", "alpha.rs"),
		makeReview("b", "bar", "beta.rs"),
	}
	edges := []Edge{{From: "a", To: "b"}}
	groups := Group(reviews, edges)
	if groups[0].Label != "2 entities" {
		t.Errorf("Label = %q, want %q", groups[0].Label, "2 entities")
	}
}

func TestGroupsSortedBySizeDescendingAndRenumbered(t *testing.T) {
	reviews := []model.EntityReview{
		makeReview("a", "foo", "src/a.rs"),
		makeReview("b", "bar", "src/b.rs"),
		makeReview("c", "baz", "src/c.rs"),
		makeReview("d", "qux", "src/d.rs"),
	}
	edges := []Edge{{From: "b", To: "c"}, {From: "c", To: "d"}}
	groups := Group(reviews, edges)
	if len(groups) != 2 {
		t.Fatalf("len(groups) = %d, want 2", len(groups))
	}
	if len(groups[0].EntityIDs) != 3 {
		t.Errorf("groups[0] size = %d, want 3 (largest first)", len(groups[0].EntityIDs))
	}
	if groups[0].ID != 0 || groups[1].ID != 1 {
		t.Errorf("group ids = %d,%d, want 0,1", groups[0].ID, groups[1].ID)
	}
}

func TestEmptyReviewsProducesEmptyGroups(t *testing.T) {
	groups := Group(nil, nil)
	if len(groups) != 0 {
		t.Errorf("len(groups) = %d, want 0", len(groups))
	}
}
