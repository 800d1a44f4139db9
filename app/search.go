package app

import "context"

// SearchService finds users in the platform directory.
type SearchService interface {
	// SearchUsers returns profiles matching the query by username or
	// display name. An empty query returns the backend's default set.
	SearchUsers(ctx context.Context, query string) ([]Profile, error)
}
