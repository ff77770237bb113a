package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/aiocean/confluence-doc-extractor/models"
)

// Writer persists exported pages under Dir. Files are overwritten without
// warning; the derived names are keyed by page id so reruns land on the
// same paths.
type Writer struct {
	Dir string
}

type frontMatter struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	Type   string `yaml:"type"`
	Status string `yaml:"status"`
	// Position holds an int for ordered pages and the literal "unknown"
	// otherwise, so known positions serialize as bare numbers.
	Position any `yaml:"position"`
}

// WritePage stores the converted page as <id>_<sanitizedTitle>.md with a
// YAML front matter block, returning the written path.
func (w *Writer) WritePage(page models.PageContent, markdown string) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir %q: %w", w.Dir, err)
	}

	meta := frontMatter{
		ID:       page.ID,
		Title:    page.Title,
		Type:     page.Type,
		Status:   page.Status,
		Position: "unknown",
	}
	if page.Position != models.PositionUnknown {
		meta.Position = page.Position
	}
	block, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("failed to marshal front matter for page %q: %w", page.ID, err)
	}

	path := filepath.Join(w.Dir, PageFilename(page.ID, page.Title))
	content := "---\n" + string(block) + "---\n\n" + markdown + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write page file %q: %w", path, err)
	}
	return path, nil
}

// WriteHierarchy stores the rendered overview as <SPACEKEY>_hierarchy.md.
func (w *Writer) WriteHierarchy(spaceKey, rendered string) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir %q: %w", w.Dir, err)
	}
	path := filepath.Join(w.Dir, spaceKey+"_hierarchy.md")
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("failed to write hierarchy file %q: %w", path, err)
	}
	return path, nil
}

// ExistingPageIDs scans Dir for already exported pages and returns their
// ids, read from each file's front matter with the filename prefix as a
// fallback. A missing directory is an empty set, not an error.
func (w *Writer) ExistingPageIDs() (map[string]bool, error) {
	ids := make(map[string]bool)

	entries, err := os.ReadDir(w.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return ids, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read output dir %q: %w", w.Dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		if id := pageIDOf(filepath.Join(w.Dir, name), name); id != "" {
			ids[id] = true
		}
	}
	return ids, nil
}

func pageIDOf(path, name string) string {
	if f, err := os.Open(path); err == nil {
		var meta struct {
			ID string `yaml:"id"`
		}
		_, parseErr := frontmatter.Parse(f, &meta)
		f.Close()
		if parseErr == nil && meta.ID != "" {
			return meta.ID
		}
	}

	// Fallback for files written before front matter carried the id.
	prefix, _, ok := strings.Cut(name, "_")
	if ok && prefix != "" && isDigits(prefix) {
		return prefix
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// PageFilename derives the stable, filesystem-safe name for a page. The id
// prefix keeps names unique even when two titles sanitize identically.
func PageFilename(id, title string) string {
	return id + "_" + sanitizeTitle(title) + ".md"
}

func sanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	safe := strings.TrimRight(b.String(), " ")
	return strings.ReplaceAll(safe, " ", "_")
}
