package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aiocean/confluence-doc-extractor/confluence"
	"github.com/aiocean/confluence-doc-extractor/convert"
	"github.com/aiocean/confluence-doc-extractor/export"
	"github.com/aiocean/confluence-doc-extractor/pace"
	"github.com/aiocean/confluence-doc-extractor/scraper"
)

const (
	defaultBaseURL = "https://confluence.example.com"
	outputDir      = "scraped_content"
)

func main() {
	fmt.Println("Confluence Space Scraper")
	fmt.Println(strings.Repeat("=", 30))

	in := bufio.NewReader(os.Stdin)
	baseURL := prompt(in, fmt.Sprintf("Confluence base URL [%s]", defaultBaseURL))
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	cookie := prompt(in, "Please enter your Confluence session cookie (JSESSIONID)")
	if cookie == "" {
		log.Fatal("session cookie is required")
	}
	spaceKey := prompt(in, "Please enter the Confluence space key (e.g., ARR)")
	if spaceKey == "" {
		log.Fatal("space key is required")
	}
	mode := strings.ToUpper(prompt(in, "Choose mode - (S)crape all pages, (U)pdate hierarchy, (F)etch missing pages [S]"))
	if mode == "" {
		mode = "S"
	}

	client, err := confluence.NewClient(confluence.Config{BaseURL: baseURL, Cookie: cookie})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	ctx := context.Background()
	if err := client.CheckAuth(ctx); err != nil {
		log.Fatalf("Authentication check failed, is the session cookie still valid? %v", err)
	}
	log.Println("Session cookie set successfully")

	pacer := pace.New(time.Now().UnixNano())
	client.BatchPause = func() {
		pacer.Delay(500*time.Millisecond, 1500*time.Millisecond)
	}

	s := scraper.New(
		client,
		convert.NewConverter(),
		&export.Writer{Dir: outputDir},
		pacer,
		scraper.Options{DelayMin: time.Second, DelayMax: 5 * time.Second},
	)

	switch mode {
	case "S":
		err = s.ScrapeSpace(ctx, spaceKey)
	case "U":
		err = s.UpdateHierarchy(ctx, spaceKey)
	case "F":
		err = s.ScrapeMissing(ctx, spaceKey)
	default:
		log.Fatalf("Invalid mode %q", mode)
	}
	if err != nil {
		log.Fatalf("Operation failed: %v", err)
	}

	fmt.Printf("\nOperation completed! Check the %q directory for results.\n", outputDir)
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
