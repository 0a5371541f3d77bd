package readeck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ExportBookmark fetches a bookmark's article in the requested format. The
// format is validated locally; an unknown format fails before any request
// is sent. Markdown exports are returned as text, EPUB exports as raw
// bytes, and the two are never interchangeable.
func (c *Client) ExportBookmark(ctx context.Context, id string, format ExportFormat) (*BookmarkExport, error) {
	if !format.Valid() {
		return nil, newValidationError(fmt.Sprintf("invalid format %q, allowed formats: md, epub", format))
	}

	endpoint := fmt.Sprintf("/bookmarks/%s/article.%s", url.PathEscape(id), format)
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", format.accept())

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newParseError(resp.StatusCode, "failed to read export body", err)
	}

	export := &BookmarkExport{Format: format}
	switch format {
	case FormatMarkdown:
		export.Text = string(data)
	case FormatEPUB:
		export.Data = data
	}
	return export, nil
}

// ExportBookmarkParsed fetches the markdown export and splits its YAML
// frontmatter from the article body. Exports without frontmatter are not an
// error: metadata is nil and the content is returned unchanged.
func (c *Client) ExportBookmarkParsed(ctx context.Context, id string) (*MarkdownExportResult, error) {
	export, err := c.ExportBookmark(ctx, id, FormatMarkdown)
	if err != nil {
		return nil, err
	}

	metadata, content := parseMarkdownFrontmatter(export.Text)
	return &MarkdownExportResult{
		Metadata:   metadata,
		Content:    content,
		RawContent: export.Text,
	}, nil
}

// parseMarkdownFrontmatter splits a leading frontmatter block, delimited by
// "---" lines, from the article body. Content with no opening delimiter, an
// unterminated block, or YAML that fails to parse degrades to nil metadata
// with the content returned unchanged; no partial parse is surfaced.
func parseMarkdownFrontmatter(content string) (*MarkdownMetadata, string) {
	lines := strings.SplitAfter(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != frontmatterDelimiter {
		return nil, content
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") == frontmatterDelimiter {
			closing = i
			break
		}
	}
	if closing < 0 {
		return nil, content
	}

	block := strings.Join(lines[1:closing], "")
	body := strings.Join(lines[closing+1:], "")

	var metadata MarkdownMetadata
	if err := yaml.Unmarshal([]byte(block), &metadata); err != nil {
		return nil, content
	}

	return &metadata, strings.TrimLeft(body, "\n")
}
