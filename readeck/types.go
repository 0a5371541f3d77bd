package readeck

import (
	"strings"
	"time"
)

// Provider describes the authentication provider that issued the current
// session token.
type Provider struct {
	Application string   `json:"application"`
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	Roles       []string `json:"roles"`
}

// EmailSettings holds the user's outgoing email configuration.
type EmailSettings struct {
	ReplyTo string `json:"reply_to"`
	EpubTo  string `json:"epub_to"`
}

// ReaderSettings holds the user's reader display preferences.
type ReaderSettings struct {
	Font        string `json:"font"`
	FontSize    int    `json:"font_size"`
	LineHeight  int    `json:"line_height"`
	Width       int    `json:"width"`
	Justify     int    `json:"justify"`
	Hyphenation int    `json:"hyphenation"`
}

// UserSettings holds the user's preferences.
type UserSettings struct {
	DebugInfo      bool           `json:"debug_info"`
	Lang           string         `json:"lang"`
	AddonReminder  bool           `json:"addon_reminder"`
	EmailSettings  EmailSettings  `json:"email_settings"`
	ReaderSettings ReaderSettings `json:"reader_settings"`
}

// User describes the authenticated account.
type User struct {
	Created  time.Time    `json:"created"`
	Updated  time.Time    `json:"updated"`
	Email    string       `json:"email"`
	Username string       `json:"username"`
	Settings UserSettings `json:"settings"`
}

// UserProfile is the response of the profile endpoint.
type UserProfile struct {
	Provider Provider `json:"provider"`
	User     User     `json:"user"`
}

// HasPermission reports whether the current session grants the named
// permission.
func (p *UserProfile) HasPermission(name string) bool {
	for _, perm := range p.Provider.Permissions {
		if perm == name {
			return true
		}
	}
	return false
}

// BookmarkLink is a link found inside a bookmarked page.
type BookmarkLink struct {
	ContentType string `json:"content_type"`
	Domain      string `json:"domain"`
	IsPage      bool   `json:"is_page"`
	Title       string `json:"title"`
	URL         string `json:"url"`
}

// BookmarkResource points at a stored asset of a bookmark.
type BookmarkResource struct {
	Src    string `json:"src"`
	Height int    `json:"height,omitempty"`
	Width  int    `json:"width,omitempty"`
}

// BookmarkResources groups the assets the server extracted for a bookmark.
type BookmarkResources struct {
	Article   *BookmarkResource `json:"article,omitempty"`
	Icon      *BookmarkResource `json:"icon,omitempty"`
	Image     *BookmarkResource `json:"image,omitempty"`
	Log       *BookmarkResource `json:"log,omitempty"`
	Props     *BookmarkResource `json:"props,omitempty"`
	Thumbnail *BookmarkResource `json:"thumbnail,omitempty"`
}

// Bookmark is a single saved page, in both the list and detail shapes.
type Bookmark struct {
	ID            string   `json:"id"`
	Href          string   `json:"href"`
	URL           string   `json:"url"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Site          string   `json:"site"`
	SiteName      string   `json:"site_name"`
	Authors       []string `json:"authors"`
	Type          string   `json:"type"`
	DocumentType  string   `json:"document_type"`
	Lang          string   `json:"lang"`
	TextDirection string   `json:"text_direction"`

	Loaded     bool `json:"loaded"`
	HasArticle bool `json:"has_article"`
	IsArchived bool `json:"is_archived"`
	IsDeleted  bool `json:"is_deleted"`
	IsMarked   bool `json:"is_marked"`

	WordCount    int     `json:"word_count"`
	ReadingTime  int     `json:"reading_time"`
	ReadProgress float64 `json:"read_progress"`
	State        int     `json:"state"`

	Labels []string `json:"labels"`

	Created   time.Time  `json:"created"`
	Updated   time.Time  `json:"updated"`
	Published *time.Time `json:"published,omitempty"`

	Resources  *BookmarkResources `json:"resources,omitempty"`
	Links      []BookmarkLink     `json:"links,omitempty"`
	ReadAnchor string             `json:"read_anchor,omitempty"`
}

// HasLabel reports whether the bookmark carries the given label,
// case-insensitively.
func (b *Bookmark) HasLabel(label string) bool {
	for _, l := range b.Labels {
		if strings.EqualFold(l, label) {
			return true
		}
	}
	return false
}

// BookmarkCreateRequest is the payload for creating a bookmark. Title and
// Labels are omitted from the request body when unset; the server treats
// both as independently optional.
type BookmarkCreateRequest struct {
	URL    string   `json:"url"`
	Title  string   `json:"title,omitempty"`
	Labels []string `json:"labels,omitempty"`
}

// BookmarkCreateResponse is the body the server returns on creation.
type BookmarkCreateResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// BookmarkCreateResult combines the creation response body with the values
// extracted from the response headers. The server processes new bookmarks
// asynchronously, so the Bookmark-Id and Location headers are the only
// handle on the created resource.
type BookmarkCreateResult struct {
	Response   BookmarkCreateResponse
	BookmarkID string
	Location   string
}

// BookmarkUpdateRequest is the payload for a partial bookmark update. Nil
// fields are left untouched by the server.
type BookmarkUpdateRequest struct {
	Title        *string  `json:"title,omitempty"`
	IsMarked     *bool    `json:"is_marked,omitempty"`
	IsArchived   *bool    `json:"is_archived,omitempty"`
	IsDeleted    *bool    `json:"is_deleted,omitempty"`
	Labels       []string `json:"labels,omitempty"`
	AddLabels    []string `json:"add_labels,omitempty"`
	RemoveLabels []string `json:"remove_labels,omitempty"`
}

// ExportFormat selects the article export representation.
type ExportFormat string

// Supported export formats.
const (
	FormatMarkdown ExportFormat = "md"
	FormatEPUB     ExportFormat = "epub"
)

// Valid reports whether the format is one the API supports.
func (f ExportFormat) Valid() bool {
	return f == FormatMarkdown || f == FormatEPUB
}

// accept returns the Accept header value for the format.
func (f ExportFormat) accept() string {
	if f == FormatEPUB {
		return "application/epub+zip"
	}
	return "text/markdown"
}

// BookmarkExport is the transient payload of one export call. Markdown
// exports populate Text, EPUB exports populate Data; the two are never
// interchangeable.
type BookmarkExport struct {
	Format ExportFormat
	Text   string
	Data   []byte
}

// MarkdownMetadata is the YAML frontmatter the server prepends to markdown
// exports.
type MarkdownMetadata struct {
	Title     string   `yaml:"title"`
	Saved     string   `yaml:"saved"`
	Published string   `yaml:"published"`
	Website   string   `yaml:"website"`
	Source    string   `yaml:"source"`
	Authors   []string `yaml:"authors"`
	Labels    []string `yaml:"labels"`
}

// MarkdownExportResult is a markdown export with its frontmatter split off.
// Metadata is nil when the export carries no complete frontmatter block, in
// which case Content equals RawContent.
type MarkdownExportResult struct {
	Metadata   *MarkdownMetadata
	Content    string
	RawContent string
}

// Highlight is a text annotation on a bookmark.
type Highlight struct {
	ID               string    `json:"id"`
	Href             string    `json:"href"`
	BookmarkID       string    `json:"bookmark_id"`
	BookmarkHref     string    `json:"bookmark_href"`
	BookmarkTitle    string    `json:"bookmark_title"`
	BookmarkURL      string    `json:"bookmark_url"`
	BookmarkSiteName string    `json:"bookmark_site_name"`
	Text             string    `json:"text"`
	Created          time.Time `json:"created"`
	Updated          time.Time `json:"updated"`
}

// HighlightListParams are the pagination parameters for listing highlights.
// Zero values are omitted from the request.
type HighlightListParams struct {
	Limit  int
	Offset int
}

// HighlightListResponse is a page of highlights together with the
// pagination state the server reports in response headers.
type HighlightListResponse struct {
	Items      []Highlight
	TotalCount int
	Page       int
	TotalPages int
	// Links maps RFC 5988 relation names ("first", "last", "next", "prev")
	// to page URLs.
	Links map[string]string
}

// HasMorePages reports whether pages remain after the current one.
func (r *HighlightListResponse) HasMorePages() bool {
	return r.Page < r.TotalPages
}
