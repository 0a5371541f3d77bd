// Package readeck provides a client for the Readeck bookmarking API.
//
// Readeck is a self-hosted read-it-later service. This package implements a
// typed client over its HTTP API: profile retrieval, bookmark listing,
// creation, updates, article export (Markdown and EPUB) and annotation
// listing.
//
// # Usage
//
// Create a client with the instance URL and an API bearer token:
//
//	client, err := readeck.NewClient(
//		"https://readeck.example.com",
//		"your-api-token",
//		readeck.WithTimeout(15*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	ctx := context.Background()
//	bookmarks, err := client.ListBookmarks(ctx, &readeck.BookmarkListParams{
//		Limit:  50,
//		Labels: "golang",
//	})
//
// # Error handling
//
// Every failed call returns exactly one classified error. Errors wrap a
// sentinel kind so callers can match with errors.Is:
//
//	_, err := client.GetBookmark(ctx, id)
//	switch {
//	case errors.Is(err, readeck.ErrNotFound):
//		// bookmark was deleted
//	case errors.Is(err, readeck.ErrAuth):
//		// token expired or revoked
//	case errors.Is(err, readeck.ErrServer):
//		// instance is unhealthy, back off
//	}
//
// An *APIError also carries the HTTP status and the server-provided message
// plus classification helpers (IsAuth, IsNotFound, IsValidation, IsServer).
//
// The client performs no retries and no logging by default; callers own
// retry policy and can inject a zerolog logger with WithLogger for request
// tracing. A Client is safe for concurrent use: configuration is immutable
// after construction and all calls share one underlying http.Client.
package readeck
