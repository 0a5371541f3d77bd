package readeck

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token-12345"

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, testToken)
	require.NoError(t, err)
	return client
}

func profileFixture() map[string]any {
	return map[string]any{
		"provider": map[string]any{
			"application": "readeck",
			"id":          "tok_12345",
			"name":        "Local Provider",
			"permissions": []string{"read", "write"},
			"roles":       []string{"user"},
		},
		"user": map[string]any{
			"created":  "2024-01-01T10:00:00Z",
			"updated":  "2024-12-01T15:30:00Z",
			"email":    "test@example.com",
			"username": "testuser",
			"settings": map[string]any{
				"debug_info": false,
				"lang":       "en-US",
				"reader_settings": map[string]any{
					"font":        "Arial",
					"font_size":   16,
					"line_height": 24,
				},
			},
		},
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		token   string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: "https://readeck.example.com",
			token:   testToken,
		},
		{
			name:    "missing URL",
			baseURL: "",
			token:   testToken,
			wantErr: true,
			errMsg:  "base URL is required",
		},
		{
			name:    "missing token",
			baseURL: "https://readeck.example.com",
			token:   "",
			wantErr: true,
			errMsg:  "API token is required",
		},
		{
			name:    "malformed URL",
			baseURL: "://readeck.example.com",
			token:   testToken,
			wantErr: true,
			errMsg:  "malformed base URL",
		},
		{
			name:    "unsupported scheme",
			baseURL: "ftp://readeck.example.com",
			token:   testToken,
			wantErr: true,
			errMsg:  "malformed base URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, tt.token)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.baseURL, client.BaseURL())
		})
	}
}

func TestNewClientStripsTrailingSlash(t *testing.T) {
	client, err := NewClient("https://readeck.example.com/", testToken)
	require.NoError(t, err)
	assert.Equal(t, "https://readeck.example.com", client.BaseURL())
}

func TestClientOptions(t *testing.T) {
	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("https://readeck.example.com", testToken, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("https://readeck.example.com", testToken, WithHTTPClient(custom))
		require.NoError(t, err)
		assert.Equal(t, custom, client.httpClient)
	})

	t.Run("with user agent", func(t *testing.T) {
		client, err := NewClient("https://readeck.example.com", testToken, WithUserAgent("custom-agent/1.0"))
		require.NoError(t, err)
		assert.Equal(t, "custom-agent/1.0", client.userAgent)
	})
}

func TestGetUserProfile(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/profile", r.URL.Path)
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		json.NewEncoder(w).Encode(profileFixture())
	}))

	profile, err := client.GetUserProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "testuser", profile.User.Username)
	assert.Equal(t, "test@example.com", profile.User.Email)
	assert.Equal(t, "Local Provider", profile.Provider.Name)
	assert.Equal(t, "Arial", profile.User.Settings.ReaderSettings.Font)
	assert.Equal(t, 16, profile.User.Settings.ReaderSettings.FontSize)
	assert.Equal(t, 24, profile.User.Settings.ReaderSettings.LineHeight)
	assert.True(t, profile.HasPermission("read"))
	assert.False(t, profile.HasPermission("admin"))
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), profile.User.Created)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		kind   error
	}{
		{http.StatusUnauthorized, ErrAuth},
		{http.StatusForbidden, ErrAuth},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadRequest, ErrValidation},
		{http.StatusUnprocessableEntity, ErrValidation},
		{http.StatusInternalServerError, ErrServer},
		{http.StatusBadGateway, ErrServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := client.GetBookmark(context.Background(), "abc123")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			// Exactly one kind per failure.
			for _, other := range []error{ErrAuth, ErrNotFound, ErrValidation, ErrServer, ErrParse} {
				if other == tt.kind {
					continue
				}
				assert.NotErrorIs(t, err, other)
			}
		})
	}

	t.Run("unclassified status", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		_, err := client.GetBookmark(context.Background(), "abc123")
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusTeapot, apiErr.StatusCode)
		for _, kind := range []error{ErrAuth, ErrNotFound, ErrValidation, ErrServer, ErrParse} {
			assert.NotErrorIs(t, err, kind)
		}
	})
}

func TestAuthErrorOnEveryMethod(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	ctx := context.Background()

	calls := map[string]func() error{
		"profile": func() error {
			_, err := client.GetUserProfile(ctx)
			return err
		},
		"list": func() error {
			_, err := client.ListBookmarks(ctx, nil)
			return err
		},
		"create": func() error {
			_, err := client.CreateBookmark(ctx, BookmarkCreateRequest{URL: "https://example.com"})
			return err
		},
		"get": func() error {
			_, err := client.GetBookmark(ctx, "abc123")
			return err
		},
		"export": func() error {
			_, err := client.ExportBookmark(ctx, "abc123", FormatMarkdown)
			return err
		},
		"highlights": func() error {
			_, err := client.GetHighlights(ctx, nil)
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, call(), ErrAuth)
		})
	}
}

func TestListBookmarks(t *testing.T) {
	t.Run("nil params sends no query", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/bookmarks", r.URL.Path)
			assert.Empty(t, r.URL.RawQuery)
			json.NewEncoder(w).Encode([]map[string]any{})
		}))

		bookmarks, err := client.ListBookmarks(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, bookmarks)
	})

	t.Run("params are serialized", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "10", q.Get("limit"))
			assert.Equal(t, "20", q.Get("offset"))
			assert.Equal(t, "golang", q.Get("search"))
			assert.Equal(t, "reading", q.Get("labels"))
			assert.Equal(t, []string{"-created", "title"}, q["sort"])
			assert.Equal(t, "true", q.Get("is_archived"))
			assert.False(t, q.Has("title"))
			assert.False(t, q.Has("site"))
			json.NewEncoder(w).Encode([]map[string]any{})
		}))

		_, err := client.ListBookmarks(context.Background(), &BookmarkListParams{
			Limit:      10,
			Offset:     20,
			Search:     "golang",
			Labels:     "reading",
			Sort:       []string{"-created", "title"},
			IsArchived: Bool(true),
		})
		require.NoError(t, err)
	})

	t.Run("server order preserved", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": "c", "title": "third", "created": "2025-01-03T00:00:00Z", "updated": "2025-01-03T00:00:00Z"},
				{"id": "a", "title": "first", "created": "2025-01-01T00:00:00Z", "updated": "2025-01-01T00:00:00Z"},
				{"id": "b", "title": "second", "created": "2025-01-02T00:00:00Z", "updated": "2025-01-02T00:00:00Z"},
			})
		}))

		bookmarks, err := client.ListBookmarks(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, bookmarks, 3)
		assert.Equal(t, "c", bookmarks[0].ID)
		assert.Equal(t, "a", bookmarks[1].ID)
		assert.Equal(t, "b", bookmarks[2].ID)
	})
}

func TestGetBookmark(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookmarks/SRvBnHrQhKpk96x2EyJjps", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"id":       "SRvBnHrQhKpk96x2EyJjps",
			"href":     "https://example.com/article",
			"url":      "https://example.com/article",
			"title":    "Test Article",
			"type":     "article",
			"labels":   []string{"tech", "golang"},
			"created":  "2025-01-01T00:00:00Z",
			"updated":  "2025-01-01T00:00:00Z",
			"loaded":   true,
			"is_marked": true,
		})
	}))

	bookmark, err := client.GetBookmark(context.Background(), "SRvBnHrQhKpk96x2EyJjps")
	require.NoError(t, err)
	assert.Equal(t, "Test Article", bookmark.Title)
	assert.True(t, bookmark.IsMarked)
	assert.True(t, bookmark.HasLabel("GoLang"))
	assert.False(t, bookmark.HasLabel("python"))
}

func TestCreateBookmark(t *testing.T) {
	t.Run("minimal request sends only url", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/bookmarks", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]any{"url": "https://example.com"}, body)

			w.Header().Set("Bookmark-Id", "abc123")
			w.Header().Set("Location", "https://readeck.example.com/api/bookmarks/abc123")
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]any{"message": "Link submitted", "status": 0})
		}))

		result, err := client.CreateBookmark(context.Background(), BookmarkCreateRequest{URL: "https://example.com"})
		require.NoError(t, err)
		assert.Equal(t, "abc123", result.BookmarkID)
		assert.Equal(t, "https://readeck.example.com/api/bookmarks/abc123", result.Location)
		assert.Equal(t, "Link submitted", result.Response.Message)
		assert.Equal(t, 0, result.Response.Status)
	})

	t.Run("full request includes title and labels", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "https://example.com", body["url"])
			assert.Equal(t, "Example", body["title"])
			assert.Equal(t, []any{"tech", "golang"}, body["labels"])

			w.Header().Set("Bookmark-Id", "abc123")
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]any{"message": "Link submitted", "status": 0})
		}))

		_, err := client.CreateBookmark(context.Background(), BookmarkCreateRequest{
			URL:    "https://example.com",
			Title:  "Example",
			Labels: []string{"tech", "golang"},
		})
		require.NoError(t, err)
	})

	t.Run("missing Bookmark-Id header fails", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]any{"message": "Link submitted", "status": 0})
		}))

		_, err := client.CreateBookmark(context.Background(), BookmarkCreateRequest{URL: "https://example.com"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParse)
		assert.Contains(t, err.Error(), "Bookmark-Id")
	})

	t.Run("validation failure", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]any{"message": "invalid URL"})
		}))

		_, err := client.CreateBookmark(context.Background(), BookmarkCreateRequest{URL: "not a url"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("empty URL fails locally", func(t *testing.T) {
		requested := false
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requested = true
		}))

		_, err := client.CreateBookmark(context.Background(), BookmarkCreateRequest{})
		assert.ErrorIs(t, err, ErrValidation)
		assert.False(t, requested)
	})
}

func TestUpdateBookmark(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/bookmarks/abc123", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"is_archived": true}, body)

		json.NewEncoder(w).Encode(map[string]any{"updated": "2025-01-01T00:00:00Z"})
	}))

	err := client.UpdateBookmark(context.Background(), "abc123", BookmarkUpdateRequest{
		IsArchived: Bool(true),
	})
	require.NoError(t, err)
}

func TestDeleteBookmark(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/bookmarks/abc123", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.DeleteBookmark(context.Background(), "abc123"))
}

func TestTestConnection(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(profileFixture())
		}))
		assert.NoError(t, client.TestConnection(context.Background()))
	})

	t.Run("bad token", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		assert.ErrorIs(t, client.TestConnection(context.Background()), ErrAuth)
	})
}

func TestCloseIsIdempotent(t *testing.T) {
	client, err := NewClient("https://readeck.example.com", testToken)
	require.NoError(t, err)

	client.Close()
	client.Close()
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetUserProfile(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnparseableSuccessBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))

	_, err := client.GetUserProfile(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.True(t, errors.Is(err, ErrParse))
}
