// Package fetch retrieves the raw text of the Q&A source document. Each
// source type has its own fetcher; everything downstream of here consumes a
// plain string.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/dodey917/Iknowall1bot/internal/config"
)

// maxDocumentSize caps how much of a response body is read. Q&A documents
// are small; anything larger is a misconfigured URL.
const maxDocumentSize = 4 << 20

// Fetcher returns the current raw text of the source document.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// New selects a fetcher for the configured source type.
func New(src config.Source) (Fetcher, error) {
	switch src.Type {
	case "doc":
		return &DocFetcher{url: src.URL, client: &http.Client{Timeout: 30 * time.Second}}, nil
	case "feed":
		return &FeedFetcher{url: src.URL, parser: gofeed.NewParser()}, nil
	case "file":
		return &FileFetcher{path: src.URL}, nil
	default:
		return nil, fmt.Errorf("unknown source type %q (valid: doc, feed, file)", src.Type)
	}
}

// DocFetcher fetches a plain-text document over HTTP, e.g. a published
// Google Doc export link.
type DocFetcher struct {
	url    string
	client *http.Client
}

func (f *DocFetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", f.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %s", f.url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.url, err)
	}
	return string(body), nil
}

// FeedFetcher treats the document as an RSS/Atom feed: each entry's content
// holds Q&A text, concatenated in feed order.
type FeedFetcher struct {
	url    string
	parser *gofeed.Parser
}

func (f *FeedFetcher) Fetch(ctx context.Context) (string, error) {
	feed, err := f.parser.ParseURLWithContext(f.url, ctx)
	if err != nil {
		return "", fmt.Errorf("fetching feed %s: %w", f.url, err)
	}

	var blocks []string
	for _, item := range feed.Items {
		body := item.Content
		if body == "" {
			body = item.Description
		}
		if text := htmlToText(body); text != "" {
			blocks = append(blocks, text)
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}

// FileFetcher reads the document from a local path, used for development
// and air-gapped deployments.
type FileFetcher struct {
	path string
}

func (f *FileFetcher) Fetch(ctx context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.path, err)
	}
	return string(data), nil
}

// blockTags are HTML tags that end a line of text.
var blockTags = []string{"<br>", "<br/>", "<br />", "</p>", "</div>", "</li>", "</h1>", "</h2>", "</h3>"}

// htmlToText strips tags from feed item HTML while keeping line structure,
// which the Q&A parser depends on. Block-level tag boundaries become
// newlines; runs of spaces collapse.
func htmlToText(s string) string {
	var replaced strings.Builder
	for i := 0; i < len(s); {
		matched := false
		for _, tag := range blockTags {
			if i+len(tag) <= len(s) && strings.EqualFold(s[i:i+len(tag)], tag) {
				replaced.WriteByte('\n')
				i += len(tag)
				matched = true
				break
			}
		}
		if !matched {
			replaced.WriteByte(s[i])
			i++
		}
	}

	var lines []string
	for _, line := range strings.Split(replaced.String(), "\n") {
		line = strings.Join(strings.Fields(stripTags(line)), " ")
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
