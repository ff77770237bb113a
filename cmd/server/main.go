// Extract service: exposes the fetch-and-convert pipeline over HTTP for
// callers that want single pages or the hierarchy without running a full
// export. The Confluence instance and session cookie come from the
// environment.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/aiocean/confluence-doc-extractor/confluence"
	"github.com/aiocean/confluence-doc-extractor/convert"
	"github.com/aiocean/confluence-doc-extractor/hierarchy"
)

type pageResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Markdown string `json:"markdown"`
}

func main() {
	baseURL := os.Getenv("CONFLUENCE_URL")
	cookie := os.Getenv("CONFLUENCE_COOKIE")
	if baseURL == "" || cookie == "" {
		log.Fatal("CONFLUENCE_URL and CONFLUENCE_COOKIE must be set")
	}

	client, err := confluence.NewClient(confluence.Config{BaseURL: baseURL, Cookie: cookie})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	conv := convert.NewConverter()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Get("/pages/:id", func(c *fiber.Ctx) error {
		reqID := uuid.NewString()
		pageID := c.Params("id")

		page, err := client.FetchContent(c.UserContext(), pageID)
		if err != nil {
			log.Printf("[%s] fetch page %s: %v", reqID, pageID, err)
			return c.Status(statusFor(err)).JSON(fiber.Map{"error": "failed to fetch page"})
		}

		markdown, err := conv.Convert(page.BodyHTML)
		if err != nil {
			log.Printf("[%s] convert page %s: %v", reqID, pageID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to convert page"})
		}

		return c.JSON(pageResponse{
			ID:       page.ID,
			Title:    page.Title,
			Type:     page.Type,
			Status:   page.Status,
			Markdown: markdown,
		})
	})

	app.Get("/spaces/:key/hierarchy", func(c *fiber.Ctx) error {
		reqID := uuid.NewString()
		spaceKey := c.Params("key")

		stubs, err := client.ListPages(c.UserContext(), spaceKey, 0)
		if err != nil {
			log.Printf("[%s] list space %s: %v", reqID, spaceKey, err)
			return c.Status(statusFor(err)).JSON(fiber.Map{"error": "failed to list space"})
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(hierarchy.Render(hierarchy.Build(stubs)))
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, confluence.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, confluence.ErrAuth):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusBadGateway
	}
}
