package gallery

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"terminalcanvas/domain"
)

// snapshotArtworks copies the collection for rollback. Like and visibility
// toggles only touch scalar fields, so a per-item struct copy is enough;
// comment slices are append-only and never mutated in place.
func snapshotArtworks(items []domain.Artwork) []domain.Artwork {
	snapshot := make([]domain.Artwork, len(items))
	copy(snapshot, items)
	return snapshot
}

// beginMutation is the shared optimistic-update path for like and
// visibility toggles:
//
//  1. snapshot the entire collection,
//  2. apply transform to the targeted item in place,
//  3. return a command that runs confirm against the backend and reports
//     the result together with the snapshot.
//
// On failure the handler restores the whole snapshot, so the visible state
// either converges to the backend's or reverts to exactly the pre-action
// state. The snapshot is taken fresh per action: a rollback of one item
// must not undo a concurrent, already-applied mutation of another, which a
// single global snapshot would.
func (m *Model) beginMutation(kind mutationKind, localID string, transform func(*domain.Artwork), confirm func(context.Context) error) tea.Cmd {
	idx := m.indexOf(localID)
	if idx < 0 {
		return nil
	}

	snapshot := snapshotArtworks(m.items)
	transform(&m.items[idx])

	return func() tea.Msg {
		err := confirm(context.Background())
		return mutationResultMsg{Kind: kind, LocalID: localID, Snapshot: snapshot, Err: err}
	}
}

// toggleLike flips the liked state of the selected artwork optimistically.
// The backend call is chosen by the pre-mutation value and keyed by the
// server ref.
func (m Model) toggleLike() (Model, tea.Cmd) {
	if err := m.requireSignIn(); err != nil {
		m.status = "Sign in to like artworks."
		return m, nil
	}
	art, ok := m.selectedArtwork()
	if !ok {
		return m, nil
	}

	wasLiked := art.IsLiked
	ref := art.Ref
	artworks := m.artworks

	cmd := m.beginMutation(mutationLike, art.LocalID,
		func(a *domain.Artwork) {
			if a.IsLiked {
				a.IsLiked = false
				if a.LikeCount > 0 {
					a.LikeCount--
				}
			} else {
				a.IsLiked = true
				a.LikeCount++
			}
		},
		func(ctx context.Context) error {
			if wasLiked {
				return artworks.Unlike(ctx, ref)
			}
			return artworks.Like(ctx, ref)
		})
	return m, cmd
}

// toggleVisibility flips the selected own artwork between public and
// private, optimistically.
func (m Model) toggleVisibility() (Model, tea.Cmd) {
	if err := m.requireSignIn(); err != nil {
		m.status = "Sign in to change visibility."
		return m, nil
	}
	art, ok := m.selectedArtwork()
	if !ok {
		return m, nil
	}
	if art.OwnerID != m.identity.UserID {
		m.status = "You can only change your own artworks."
		return m, nil
	}

	next := art.Visibility.Toggle()
	ref := art.Ref
	artworks := m.artworks

	cmd := m.beginMutation(mutationVisibility, art.LocalID,
		func(a *domain.Artwork) {
			a.Visibility = next
		},
		func(ctx context.Context) error {
			return artworks.SetVisibility(ctx, ref, next)
		})
	return m, cmd
}

// handleMutationMsg reconciles optimistic mutations and comment creation.
func (m Model) handleMutationMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mutationResultMsg:
		if msg.Err != nil {
			// Full rollback from the snapshot taken at apply time.
			m.items = msg.Snapshot
			m.status = "That didn't work, so your change was undone."
		}
		return m, nil

	case presetCommentsMsg:
		if msg.Err != nil {
			m.pickerOpen = false
			m.status = "Couldn't load comments. Try again!"
			return m, nil
		}
		m.presets = msg.Presets
		m.presetsLoaded = true
		return m, nil

	case commentResultMsg:
		if msg.Err != nil {
			m.status = "Couldn't add your comment. Try again!"
			return m, nil
		}
		// Confirm-first: append the canonical server record, never a
		// locally fabricated one.
		idx := m.indexOf(msg.LocalID)
		if idx < 0 {
			return m, nil
		}
		m.items[idx].Comments = append(m.items[idx].Comments, msg.Comment)
		m.items[idx].CommentCount++
		m.status = "Comment added!"
		return m, nil

	case ArtworkCreatedMsg:
		if !m.viewingSelf() {
			// Jump home so the new artwork is visible where it lives.
			updated, cmd := m.switchToSelf()
			updated.status = "Artwork shared!"
			return updated, cmd
		}
		m.items = append([]domain.Artwork{msg.Artwork}, m.items...)
		m.cursor = 0
		m.startIndex = 0
		m.status = "Artwork shared!"
		return m, nil
	}

	return m, nil
}
