package app

import (
	"context"

	"terminalcanvas/domain"
)

// ArtworkService mutates artwork posts on the backend. All operations are
// keyed by the server-side content ref, never by an artwork's LocalID.
type ArtworkService interface {
	// Like marks the post as liked by the signed-in user.
	Like(ctx context.Context, ref string) error

	// Unlike removes the signed-in user's like.
	Unlike(ctx context.Context, ref string) error

	// SetVisibility changes who can see the post.
	SetVisibility(ctx context.Context, ref string, v domain.Visibility) error

	// AddComment attaches a preset comment and returns the canonical
	// record created by the server.
	AddComment(ctx context.Context, ref string, text string) (domain.Comment, error)

	// Comments returns the post's comment list, oldest first.
	Comments(ctx context.Context, ref string) ([]domain.Comment, error)

	// PresetComments returns the catalog of comments the backend accepts.
	PresetComments(ctx context.Context) ([]string, error)

	// Upload sends a drawing for AI transformation and returns the
	// created post.
	Upload(ctx context.Context, ownerID int, filePath string, mode domain.TransformMode) (domain.Artwork, error)

	// Delete removes one of the user's own posts.
	Delete(ctx context.Context, ref string) error
}
