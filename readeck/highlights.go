package readeck

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// GetHighlights fetches one page of the user's annotations. Pagination
// state comes from the Total-Count, Current-Page and Total-Pages response
// headers; page navigation URLs come from the Link header.
func (c *Client) GetHighlights(ctx context.Context, params *HighlightListParams) (*HighlightListResponse, error) {
	query := url.Values{}
	if params != nil {
		if params.Limit > 0 {
			query.Set("limit", strconv.Itoa(params.Limit))
		}
		if params.Offset > 0 {
			query.Set("offset", strconv.Itoa(params.Offset))
		}
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/bookmarks/annotations", query, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var items []Highlight
	if err := decodeJSON(resp, &items); err != nil {
		return nil, err
	}

	return &HighlightListResponse{
		Items:      items,
		TotalCount: headerInt(resp.Header, "Total-Count", len(items)),
		Page:       headerInt(resp.Header, "Current-Page", 1),
		TotalPages: headerInt(resp.Header, "Total-Pages", 1),
		Links:      parseLinkHeader(resp.Header.Get("Link")),
	}, nil
}

func headerInt(h http.Header, key string, fallback int) int {
	v, err := strconv.Atoi(h.Get(key))
	if err != nil {
		return fallback
	}
	return v
}

// parseLinkHeader extracts rel → URL pairs from an RFC 5988 Link header.
// Returns nil when the header is absent.
func parseLinkHeader(value string) map[string]string {
	if value == "" {
		return nil
	}

	links := make(map[string]string)
	for _, part := range strings.Split(value, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}

		target := strings.TrimSpace(segments[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		target = strings.Trim(target, "<>")

		var rel string
		for _, attr := range segments[1:] {
			attr = strings.TrimSpace(attr)
			if v, ok := strings.CutPrefix(attr, `rel="`); ok {
				rel = strings.TrimSuffix(v, `"`)
				break
			}
		}
		if rel != "" && target != "" {
			links[rel] = target
		}
	}
	return links
}
