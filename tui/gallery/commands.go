package gallery

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// fetchProfile loads a profile and its gallery in one backend round trip.
// The viewer id rides along so liked state is derived for the right user.
func (m Model) fetchProfile(targetID, epoch int) tea.Cmd {
	accounts := m.accounts
	viewerID := m.identity.UserID
	return func() tea.Msg {
		profile, artworks, err := accounts.ProfileWithArtworks(context.Background(), targetID, viewerID)
		if err != nil {
			return profileLoadedMsg{TargetID: targetID, Epoch: epoch, Err: err}
		}
		return profileLoadedMsg{TargetID: targetID, Epoch: epoch, Profile: profile, Artworks: artworks}
	}
}

func (m Model) fetchFollowStats(targetID, epoch int) tea.Cmd {
	accounts := m.accounts
	return func() tea.Msg {
		stats, err := accounts.FollowStats(context.Background(), targetID)
		return followStatsMsg{TargetID: targetID, Epoch: epoch, Stats: stats, Err: err}
	}
}

func (m Model) fetchIsFollowing(targetID, epoch int) tea.Cmd {
	accounts := m.accounts
	viewerID := m.identity.UserID
	return func() tea.Msg {
		following, err := accounts.IsFollowing(context.Background(), viewerID, targetID)
		return isFollowingMsg{TargetID: targetID, Epoch: epoch, Following: following, Err: err}
	}
}

func (m Model) toggleFollowCmd(targetID int, follow bool) tea.Cmd {
	accounts := m.accounts
	viewerID := m.identity.UserID
	return func() tea.Msg {
		var err error
		if follow {
			err = accounts.Follow(context.Background(), viewerID, targetID)
		} else {
			err = accounts.Unfollow(context.Background(), viewerID, targetID)
		}
		return followToggleResultMsg{TargetID: targetID, Follow: follow, Err: err}
	}
}

func (m Model) fetchPresetsCmd() tea.Cmd {
	artworks := m.artworks
	return func() tea.Msg {
		presets, err := artworks.PresetComments(context.Background())
		return presetCommentsMsg{Presets: presets, Err: err}
	}
}

func (m Model) addCommentCmd(localID, ref, text string) tea.Cmd {
	artworks := m.artworks
	return func() tea.Msg {
		comment, err := artworks.AddComment(context.Background(), ref, text)
		return commentResultMsg{LocalID: localID, Comment: comment, Err: err}
	}
}

// clearGalleryCmd deletes every own post best-effort: one failure does not
// stop the rest, and the summary reports successes against the total.
func (m Model) clearGalleryCmd(refs []string) tea.Cmd {
	artworks := m.artworks
	return func() tea.Msg {
		deleted := 0
		var wg sync.WaitGroup
		var mu sync.Mutex
		for _, ref := range refs {
			wg.Add(1)
			go func(ref string) {
				defer wg.Done()
				if err := artworks.Delete(context.Background(), ref); err != nil {
					return
				}
				mu.Lock()
				deleted++
				mu.Unlock()
			}(ref)
		}
		wg.Wait()
		return clearGalleryResultMsg{Deleted: deleted, Total: len(refs)}
	}
}

// ownRefs collects the server refs of the signed-in user's posts.
func (m Model) ownRefs() []string {
	refs := make([]string, 0, len(m.items))
	for _, a := range m.items {
		if a.OwnerID == m.identity.UserID && a.Ref != "" {
			refs = append(refs, a.Ref)
		}
	}
	return refs
}
