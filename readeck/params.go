package readeck

import (
	"net/url"
	"strconv"
	"time"
)

// BookmarkListParams are the optional filter and pagination parameters for
// listing bookmarks. Zero values are omitted from the query string, so the
// server never receives an empty-string filter. Tri-state flags use *bool:
// nil means "don't filter".
type BookmarkListParams struct {
	Limit  int
	Offset int
	Sort   []string

	Search string
	Title  string
	Author string
	Site   string
	Type   []string
	Labels string

	IsLoaded   *bool
	HasErrors  *bool
	HasLabels  *bool
	IsMarked   *bool
	IsArchived *bool

	RangeStart   string
	RangeEnd     string
	ReadStatus   []string
	UpdatedSince time.Time

	ID         string
	Collection string
}

// Values serializes the set fields as query parameters. A nil receiver
// yields an empty query.
func (p *BookmarkListParams) Values() url.Values {
	q := url.Values{}
	if p == nil {
		return q
	}

	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	for _, s := range p.Sort {
		q.Add("sort", s)
	}

	setNonEmpty(q, "search", p.Search)
	setNonEmpty(q, "title", p.Title)
	setNonEmpty(q, "author", p.Author)
	setNonEmpty(q, "site", p.Site)
	for _, t := range p.Type {
		q.Add("type", t)
	}
	setNonEmpty(q, "labels", p.Labels)

	setBool(q, "is_loaded", p.IsLoaded)
	setBool(q, "has_errors", p.HasErrors)
	setBool(q, "has_labels", p.HasLabels)
	setBool(q, "is_marked", p.IsMarked)
	setBool(q, "is_archived", p.IsArchived)

	setNonEmpty(q, "range_start", p.RangeStart)
	setNonEmpty(q, "range_end", p.RangeEnd)
	for _, s := range p.ReadStatus {
		q.Add("read_status", s)
	}
	if !p.UpdatedSince.IsZero() {
		q.Set("updated_since", p.UpdatedSince.Format(time.RFC3339))
	}

	setNonEmpty(q, "id", p.ID)
	setNonEmpty(q, "collection", p.Collection)

	return q
}

func setNonEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setBool(q url.Values, key string, value *bool) {
	if value != nil {
		q.Set(key, strconv.FormatBool(*value))
	}
}

// Bool is a helper for the tri-state filter fields.
func Bool(v bool) *bool { return &v }

// String is a helper for optional string fields in update requests.
func String(v string) *string { return &v }
