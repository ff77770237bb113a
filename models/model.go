package models

// PositionUnknown marks pages for which the server reported no position.
// Confluence only returns a position for manually ordered pages.
const PositionUnknown = -1

// PageStub is the minimal page identity obtained from a space listing,
// before the full body is fetched.
type PageStub struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Position int    `json:"position"`
	ParentID string `json:"parent_id,omitempty"`
	Author   string `json:"author,omitempty"`
	Modified string `json:"last_modified,omitempty"`
}

// PageContent is a single page with its rendered HTML body and ancestry.
type PageContent struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	Position  int        `json:"position"`
	BodyHTML  string     `json:"body_html"`
	Ancestors []PageStub `json:"ancestors,omitempty"`
}

// HierarchyNode is one page in the reconstructed space tree.
type HierarchyNode struct {
	Stub     PageStub         `json:"stub"`
	Children []*HierarchyNode `json:"children,omitempty"`
}
