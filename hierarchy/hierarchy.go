package hierarchy

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/aiocean/confluence-doc-extractor/models"
)

// Build assembles the space's page stubs into a forest. A stub whose
// parent id is empty or absent from the set becomes a root. Siblings are
// ordered by position, pages without a position last, ties broken by title.
// Parent chains that loop back on themselves are broken by promoting one
// member per cycle to a root, so the forest always contains every stub.
func Build(stubs []models.PageStub) []*models.HierarchyNode {
	nodes := make(map[string]*models.HierarchyNode, len(stubs))
	for _, stub := range stubs {
		nodes[stub.ID] = &models.HierarchyNode{Stub: stub}
	}

	var roots []*models.HierarchyNode
	for _, stub := range stubs {
		node := nodes[stub.ID]
		parent, ok := nodes[stub.ParentID]
		if stub.ParentID == "" || !ok || parent == node {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	reached := make(map[*models.HierarchyNode]bool, len(nodes))
	for _, root := range roots {
		mark(root, reached)
	}
	for _, stub := range stubs {
		node := nodes[stub.ID]
		if reached[node] {
			continue
		}
		log.Printf("Page %s (%s) is part of a parent cycle, listing it as a root", stub.ID, stub.Title)
		detach(nodes[stub.ParentID], node)
		roots = append(roots, node)
		mark(node, reached)
	}

	sortNodes(roots)
	for _, node := range nodes {
		sortNodes(node.Children)
	}
	return roots
}

func mark(node *models.HierarchyNode, reached map[*models.HierarchyNode]bool) {
	if reached[node] {
		return
	}
	reached[node] = true
	for _, child := range node.Children {
		mark(child, reached)
	}
}

func detach(parent, child *models.HierarchyNode) {
	for i, c := range parent.Children {
		if c == child {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return
		}
	}
}

func sortNodes(nodes []*models.HierarchyNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i].Stub, nodes[j].Stub
		ap, bp := a.Position, b.Position
		if ap == models.PositionUnknown {
			ap = int(^uint(0) >> 1)
		}
		if bp == models.PositionUnknown {
			bp = int(^uint(0) >> 1)
		}
		if ap != bp {
			return ap < bp
		}
		return a.Title < b.Title
	})
}

// Render produces the human-readable hierarchy overview as a nested
// Markdown list. It is written to disk for navigation and never parsed back.
func Render(roots []*models.HierarchyNode) string {
	var b strings.Builder
	b.WriteString("# Page Hierarchy\n\n")
	for _, root := range roots {
		renderNode(&b, root, 0)
	}
	return b.String()
}

func renderNode(b *strings.Builder, node *models.HierarchyNode, depth int) {
	stub := node.Stub
	pos := "unknown"
	if stub.Position != models.PositionUnknown {
		pos = strconv.Itoa(stub.Position)
	}
	fmt.Fprintf(b, "%s- **%s** (ID: %s, Position: %s, Last modified: %s, Author: %s)\n",
		strings.Repeat("  ", depth), stub.Title, stub.ID, pos, stub.Modified, stub.Author)
	for _, child := range node.Children {
		renderNode(b, child, depth+1)
	}
}

// Count reports the total number of nodes in the forest.
func Count(roots []*models.HierarchyNode) int {
	total := 0
	for _, root := range roots {
		total += 1 + Count(root.Children)
	}
	return total
}
