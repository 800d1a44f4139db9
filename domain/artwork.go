package domain

import "time"

// Visibility controls who can see an artwork post.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Toggle returns the opposite visibility.
func (v Visibility) Toggle() Visibility {
	if v == VisibilityPrivate {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

// TransformMode selects the AI styling applied to an uploaded drawing.
type TransformMode string

const (
	ModeNormal  TransformMode = "normal"
	ModeOil     TransformMode = "oil"
	ModeNeon    TransformMode = "neon"
	ModeInverse TransformMode = "inverse"
	ModeAnime   TransformMode = "anime"
	ModeCartoon TransformMode = "cartoon"
	ModeComic   TransformMode = "comic"
)

// TransformModes lists every mode the backend accepts, in menu order.
func TransformModes() []TransformMode {
	return []TransformMode{
		ModeNormal, ModeOil, ModeNeon, ModeInverse, ModeAnime, ModeCartoon, ModeComic,
	}
}

// Artwork is a single gallery post: an uploaded drawing plus its AI-styled
// version and the social aggregates attached to it.
//
// LocalID is a client-generated identifier used for list bookkeeping only.
// Ref is the backend's content identifier and is the key for every mutation
// endpoint. The two must never be conflated.
type Artwork struct {
	LocalID      string
	Ref          string
	OwnerID      int
	Title        string // Original client filename
	OriginalURL  string
	ImprovedURL  string
	Mode         TransformMode
	LikeCount    int
	IsLiked      bool // Whether the signed-in viewer likes this post
	Visibility   Visibility
	CommentCount int
	Comments     []Comment
	CreatedAt    time.Time
}

// Comment is a reader reaction on an artwork. Immutable once created;
// comment lists are append-only.
type Comment struct {
	ID         string
	AuthorID   int
	AuthorName string // Display name, falls back to username server-side
	AvatarName string
	Text       string
	CreatedAt  time.Time
}
