package gallery

import (
	"github.com/charmbracelet/bubbles/spinner"

	"terminalcanvas/app"
	"terminalcanvas/domain"
	"terminalcanvas/tui/common"
)

// --- Profile context ---

// profileContext says whose gallery is on screen. It is a closed sum:
// either the signed-in user's own profile, or another artist's, in which
// case the target id and follow relation travel with the context so an
// "other" view without a target cannot be represented.
type profileContext interface {
	isProfileContext()
}

type selfContext struct{}

type otherContext struct {
	UserID      int
	IsFollowing bool
}

func (selfContext) isProfileContext()  {}
func (otherContext) isProfileContext() {}

// --- Messages ---

// OpenProfileMsg asks the gallery to show a user's profile. Sent by the
// root model from search results or comment authors.
type OpenProfileMsg struct {
	UserID int
}

// BackToMyProfileMsg returns the gallery to the signed-in user's own view.
type BackToMyProfileMsg struct{}

// ArtworkCreatedMsg announces a freshly uploaded artwork.
type ArtworkCreatedMsg struct {
	Artwork domain.Artwork
}

// profileLoadedMsg is the profile+posts fetch completing. Epoch ties it to
// the context switch that issued it; stale epochs are dropped.
type profileLoadedMsg struct {
	TargetID int
	Epoch    int
	Profile  app.Profile
	Artworks []domain.Artwork
	Err      error
}

// followStatsMsg is the follower/following count fetch completing.
type followStatsMsg struct {
	TargetID int
	Epoch    int
	Stats    app.FollowStats
	Err      error
}

// isFollowingMsg is the "does the viewer follow this artist" check completing.
type isFollowingMsg struct {
	TargetID  int
	Epoch     int
	Following bool
	Err       error
}

// mutationKind distinguishes the optimistic mutations sharing one result path.
type mutationKind int

const (
	mutationLike mutationKind = iota
	mutationVisibility
)

// mutationResultMsg is the backend confirmation of an optimistic mutation.
// Snapshot is the full pre-mutation collection taken at apply time; on
// failure the collection is restored from it wholesale.
type mutationResultMsg struct {
	Kind     mutationKind
	LocalID  string
	Snapshot []domain.Artwork
	Err      error
}

// presetCommentsMsg delivers the backend's comment catalog.
type presetCommentsMsg struct {
	Presets []string
	Err     error
}

// commentResultMsg is a comment creation completing. The comment is the
// canonical server record; nothing was applied locally beforehand.
type commentResultMsg struct {
	LocalID string
	Comment domain.Comment
	Err     error
}

// followToggleResultMsg is a follow/unfollow completing.
type followToggleResultMsg struct {
	TargetID int
	Follow   bool
	Err      error
}

// clearGalleryResultMsg summarizes a best-effort gallery clear.
type clearGalleryResultMsg struct {
	Deleted int
	Total   int
}

// --- Model state ---

type modelServices struct {
	accounts app.AccountService
	artworks app.ArtworkService
}

type profileState struct {
	ctx          profileContext
	profileEpoch int
	profile      app.Profile
	stats        app.FollowStats
	loading      bool
	err          error
}

type galleryState struct {
	items      []domain.Artwork
	cursor     int
	startIndex int
}

type commentState struct {
	pickerOpen    bool
	pickerCursor  int
	pickerLocalID string
	presets       []string
	presetsLoaded bool
}

type uiState struct {
	keys         common.KeyMap
	spinner      spinner.Model
	width        int
	height       int
	status       string
	confirmClear bool
}
