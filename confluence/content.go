package confluence

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/aiocean/confluence-doc-extractor/models"
)

// DefaultPageLimit is the listing batch size used when callers pass 0.
const DefaultPageLimit = 25

// Wire types for the /rest/api/content endpoints. Only the fields the
// exporter reads are declared.
type contentItem struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Status    string        `json:"status"`
	Title     string        `json:"title"`
	Position  *int          `json:"position"`
	Ancestors []contentItem `json:"ancestors"`
	Version   *version      `json:"version"`
	Body      *body         `json:"body"`
}

type version struct {
	When string `json:"when"`
	By   *struct {
		DisplayName string `json:"displayName"`
		Username    string `json:"username"`
		UserKey     string `json:"userKey"`
	} `json:"by"`
}

type body struct {
	View *struct {
		Value string `json:"value"`
	} `json:"view"`
}

type listResponse struct {
	Results []contentItem `json:"results"`
	Start   int           `json:"start"`
	Limit   int           `json:"limit"`
	Size    int           `json:"size"`
}

// ListPages collects every page stub belonging to spaceKey, fetching in
// batches of limit until the server returns a short batch. If a batch
// request fails, the stubs already collected are returned together with
// the error; the listing is not rolled back.
func (c *Client) ListPages(ctx context.Context, spaceKey string, limit int) ([]models.PageStub, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	var stubs []models.PageStub
	start := 0
	for {
		query := url.Values{
			"spaceKey": {spaceKey},
			"limit":    {strconv.Itoa(limit)},
			"start":    {strconv.Itoa(start)},
			"expand":   {"ancestors,version"},
		}
		raw, err := c.get(ctx, "/rest/api/content", query)
		if err != nil {
			return stubs, fmt.Errorf("failed to list pages in space %q: %w", spaceKey, err)
		}

		var page listResponse
		if err := json.Unmarshal(raw, &page); err != nil {
			return stubs, fmt.Errorf("failed to decode page listing for space %q: %w", spaceKey, err)
		}

		for _, item := range page.Results {
			stubs = append(stubs, item.toStub())
		}

		size := page.Size
		if size == 0 {
			size = len(page.Results)
		}
		log.Printf("Fetched %d pages (start=%d) - total so far: %d", len(page.Results), start, len(stubs))
		if size < limit {
			break
		}
		start += size
		if c.BatchPause != nil {
			c.BatchPause()
		}
	}

	log.Printf("Total pages found in space %q: %d", spaceKey, len(stubs))
	return stubs, nil
}

// FetchContent retrieves the rendered body and ancestry of a single page.
func (c *Client) FetchContent(ctx context.Context, pageID string) (models.PageContent, error) {
	query := url.Values{"expand": {"body.view,ancestors"}}
	raw, err := c.get(ctx, "/rest/api/content/"+pageID, query)
	if err != nil {
		return models.PageContent{}, fmt.Errorf("failed to fetch content for page %q: %w", pageID, err)
	}

	var item contentItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return models.PageContent{}, fmt.Errorf("failed to decode content for page %q: %w", pageID, err)
	}

	content := models.PageContent{
		ID:       item.ID,
		Title:    item.Title,
		Type:     item.Type,
		Status:   item.Status,
		Position: position(item.Position),
	}
	for _, ancestor := range item.Ancestors {
		content.Ancestors = append(content.Ancestors, ancestor.toStub())
	}
	if item.Body != nil && item.Body.View != nil {
		content.BodyHTML = item.Body.View.Value
	}
	return content, nil
}

func (item contentItem) toStub() models.PageStub {
	stub := models.PageStub{
		ID:       item.ID,
		Title:    item.Title,
		Type:     item.Type,
		Status:   item.Status,
		Position: position(item.Position),
	}
	// The immediate parent is the last entry of the ancestor chain.
	if n := len(item.Ancestors); n > 0 {
		stub.ParentID = item.Ancestors[n-1].ID
	}
	if item.Version != nil {
		stub.Modified = item.Version.When
		if by := item.Version.By; by != nil {
			switch {
			case by.DisplayName != "":
				stub.Author = by.DisplayName
			case by.Username != "":
				stub.Author = by.Username
			default:
				stub.Author = by.UserKey
			}
		}
	}
	return stub
}

func position(p *int) int {
	if p == nil {
		return models.PositionUnknown
	}
	return *p
}
