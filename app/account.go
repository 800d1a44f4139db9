package app

import (
	"context"

	"terminalcanvas/domain"
)

// Identity is the signed-in user. The zero value means signed out.
type Identity struct {
	UserID      int
	Username    string
	DisplayName string
}

// SignedIn reports whether the identity belongs to a real session.
func (i Identity) SignedIn() bool {
	return i.UserID != 0
}

// Profile is a user's public directory entry.
type Profile struct {
	ID          int
	Username    string
	DisplayName string
	Bio         string
	Interests   []string
	AvatarName  string
}

// FollowStats are the follower/following counts for one user.
type FollowStats struct {
	Followers int
	Following int
}

// AccountService provides user profiles and follow relations.
type AccountService interface {
	// ProfileWithArtworks returns a user's profile and gallery posts.
	// viewerID is used to derive per-post liked state; zero means anonymous.
	ProfileWithArtworks(ctx context.Context, userID, viewerID int) (Profile, []domain.Artwork, error)

	// FollowStats returns follower/following counts for a user.
	FollowStats(ctx context.Context, userID int) (FollowStats, error)

	// IsFollowing reports whether userID follows targetID.
	IsFollowing(ctx context.Context, userID, targetID int) (bool, error)

	// Follow makes currentID follow targetID.
	Follow(ctx context.Context, currentID, targetID int) error

	// Unfollow removes currentID's follow of targetID.
	Unfollow(ctx context.Context, currentID, targetID int) error
}
