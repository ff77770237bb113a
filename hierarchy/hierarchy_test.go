package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiocean/confluence-doc-extractor/models"
)

func stub(id, parentID, title string, position int) models.PageStub {
	return models.PageStub{
		ID:       id,
		ParentID: parentID,
		Title:    title,
		Type:     "page",
		Status:   "current",
		Position: position,
	}
}

func TestBuildGroupsByParent(t *testing.T) {
	stubs := []models.PageStub{
		stub("1", "", "Home", 0),
		stub("2", "1", "Guides", 1),
		stub("3", "1", "Reference", 2),
		stub("4", "2", "Install", 0),
	}

	roots := Build(stubs)
	require.Len(t, roots, 1)
	assert.Equal(t, "1", roots[0].Stub.ID)

	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "2", roots[0].Children[0].Stub.ID)
	assert.Equal(t, "3", roots[0].Children[1].Stub.ID)

	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "4", roots[0].Children[0].Children[0].Stub.ID)
}

func TestBuildPreservesNodeCount(t *testing.T) {
	stubs := []models.PageStub{
		stub("1", "", "A", 0),
		stub("2", "1", "B", 0),
		stub("3", "2", "C", 0),
		stub("4", "", "D", 0),
		stub("5", "4", "E", 0),
	}

	roots := Build(stubs)
	assert.Equal(t, len(stubs), Count(roots))
}

func TestBuildBreaksParentCycles(t *testing.T) {
	// Parent ids all resolve within the set, but 1 and 2 point at each
	// other; every page must still appear in the forest exactly once.
	stubs := []models.PageStub{
		stub("1", "2", "A", 0),
		stub("2", "1", "B", 0),
		stub("3", "1", "C", 0),
	}

	roots := Build(stubs)
	assert.Equal(t, len(stubs), Count(roots))
	require.Len(t, roots, 1)
	assert.Equal(t, "1", roots[0].Stub.ID)

	out := Render(roots)
	for _, id := range []string{"1", "2", "3"} {
		assert.Contains(t, out, "(ID: "+id+",")
	}
}

func TestBuildSelfParentBecomesRoot(t *testing.T) {
	stubs := []models.PageStub{
		stub("1", "1", "Loop", 0),
		stub("2", "1", "Child", 0),
	}

	roots := Build(stubs)
	assert.Equal(t, len(stubs), Count(roots))
	require.Len(t, roots, 1)
	assert.Equal(t, "1", roots[0].Stub.ID)
}

func TestBuildUnresolvedParentBecomesRoot(t *testing.T) {
	stubs := []models.PageStub{
		stub("1", "", "Home", 0),
		stub("2", "gone", "Orphan", 0),
	}

	roots := Build(stubs)
	require.Len(t, roots, 2)
	assert.Equal(t, len(stubs), Count(roots))
}

func TestBuildSiblingOrdering(t *testing.T) {
	stubs := []models.PageStub{
		stub("1", "", "Zeta", models.PositionUnknown),
		stub("2", "", "Alpha", models.PositionUnknown),
		stub("3", "", "Last", 9),
		stub("4", "", "First", 2),
	}

	roots := Build(stubs)
	require.Len(t, roots, 4)

	var order []string
	for _, root := range roots {
		order = append(order, root.Stub.Title)
	}
	// Positioned pages first in position order, un-positioned after, by title.
	assert.Equal(t, []string{"First", "Last", "Alpha", "Zeta"}, order)
}

func TestRender(t *testing.T) {
	stubs := []models.PageStub{
		stub("1", "", "Home", 0),
		stub("2", "1", "Guides", 1),
	}
	stubs[0].Author = "Jane Doe"
	stubs[0].Modified = "2024-05-01T10:00:00.000Z"

	out := Render(Build(stubs))
	assert.Contains(t, out, "# Page Hierarchy")
	assert.Contains(t, out, "- **Home** (ID: 1, Position: 0, Last modified: 2024-05-01T10:00:00.000Z, Author: Jane Doe)")
	assert.Contains(t, out, "\n  - **Guides** (ID: 2, Position: 1,")
}

func TestRenderUnknownPosition(t *testing.T) {
	out := Render(Build([]models.PageStub{stub("1", "", "Home", models.PositionUnknown)}))
	assert.Contains(t, out, "Position: unknown")
}
