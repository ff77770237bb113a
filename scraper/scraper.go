// Package scraper drives the export pipeline: list the pages of a space,
// write the hierarchy overview, then fetch, convert, and save each page
// sequentially. A failing page is logged and skipped; only a failing space
// listing with nothing collected stops a run.
package scraper

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/aiocean/confluence-doc-extractor/confluence"
	"github.com/aiocean/confluence-doc-extractor/convert"
	"github.com/aiocean/confluence-doc-extractor/export"
	"github.com/aiocean/confluence-doc-extractor/hierarchy"
	"github.com/aiocean/confluence-doc-extractor/models"
	"github.com/aiocean/confluence-doc-extractor/pace"
)

type Options struct {
	// PageLimit is the listing batch size; 0 means confluence.DefaultPageLimit.
	PageLimit int
	// DelayMin and DelayMax bound the pause between page fetches.
	DelayMin time.Duration
	DelayMax time.Duration
}

type Scraper struct {
	client *confluence.Client
	conv   *convert.Converter
	writer *export.Writer
	pacer  *pace.Pacer
	opts   Options
}

func New(client *confluence.Client, conv *convert.Converter, writer *export.Writer, pacer *pace.Pacer, opts Options) *Scraper {
	return &Scraper{
		client: client,
		conv:   conv,
		writer: writer,
		pacer:  pacer,
		opts:   opts,
	}
}

// ScrapeSpace exports every page of the space plus the hierarchy overview.
func (s *Scraper) ScrapeSpace(ctx context.Context, spaceKey string) error {
	log.Printf("Starting to scrape space: %s", spaceKey)

	stubs, err := s.listPages(ctx, spaceKey)
	if err != nil {
		return err
	}
	if err := s.writeHierarchy(spaceKey, stubs); err != nil {
		return err
	}

	s.pacer.Shuffle(stubs)
	s.processPages(ctx, stubs)
	return nil
}

// UpdateHierarchy refreshes only the hierarchy overview file.
func (s *Scraper) UpdateHierarchy(ctx context.Context, spaceKey string) error {
	stubs, err := s.listPages(ctx, spaceKey)
	if err != nil {
		return err
	}
	return s.writeHierarchy(spaceKey, stubs)
}

// ScrapeMissing exports only pages that have no file in the output
// directory yet, refreshing the hierarchy overview along the way.
func (s *Scraper) ScrapeMissing(ctx context.Context, spaceKey string) error {
	log.Printf("Starting to scrape missing pages in space: %s", spaceKey)

	stubs, err := s.listPages(ctx, spaceKey)
	if err != nil {
		return err
	}
	if err := s.writeHierarchy(spaceKey, stubs); err != nil {
		return err
	}

	existing, err := s.writer.ExistingPageIDs()
	if err != nil {
		return err
	}
	var missing []models.PageStub
	for _, stub := range stubs {
		if !existing[stub.ID] {
			missing = append(missing, stub)
		}
	}
	log.Printf("%d pages are missing and will be scraped", len(missing))

	s.pacer.Shuffle(missing)
	s.processPages(ctx, missing)
	return nil
}

func (s *Scraper) listPages(ctx context.Context, spaceKey string) ([]models.PageStub, error) {
	stubs, err := s.client.ListPages(ctx, spaceKey, s.opts.PageLimit)
	if err != nil {
		if len(stubs) == 0 {
			return nil, err
		}
		// Pagination state is unreliable after a failed batch, but the
		// stubs already collected are still worth exporting.
		log.Printf("Listing stopped early, continuing with %d pages: %v", len(stubs), err)
	}
	if len(stubs) == 0 {
		return nil, fmt.Errorf("no pages found in space %q", spaceKey)
	}
	return stubs, nil
}

func (s *Scraper) writeHierarchy(spaceKey string, stubs []models.PageStub) error {
	roots := hierarchy.Build(stubs)
	path, err := s.writer.WriteHierarchy(spaceKey, hierarchy.Render(roots))
	if err != nil {
		return err
	}
	log.Printf("Saved page hierarchy (%d pages): %s", hierarchy.Count(roots), path)
	return nil
}

func (s *Scraper) processPages(ctx context.Context, stubs []models.PageStub) {
	skipped := 0
	for i, stub := range stubs {
		log.Printf("Processing page %d/%d: %s (ID: %s)", i+1, len(stubs), stub.Title, stub.ID)
		if err := s.exportPage(ctx, stub.ID); err != nil {
			log.Printf("Skipping page %s: %v", stub.ID, err)
			skipped++
			continue
		}
		if i < len(stubs)-1 {
			s.pacer.Delay(s.opts.DelayMin, s.opts.DelayMax)
		}
	}
	log.Printf("Scraping completed: %d pages saved, %d skipped", len(stubs)-skipped, skipped)
}

func (s *Scraper) exportPage(ctx context.Context, pageID string) error {
	page, err := s.client.FetchContent(ctx, pageID)
	if err != nil {
		return err
	}
	markdown, err := s.conv.Convert(page.BodyHTML)
	if err != nil {
		return err
	}
	path, err := s.writer.WritePage(page, markdown)
	if err != nil {
		return err
	}
	log.Printf("Saved page: %s", filepath.Base(path))
	return nil
}
