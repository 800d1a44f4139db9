package gallery

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"terminalcanvas/app"
	"terminalcanvas/domain"
)

type stubAccounts struct {
	profile    app.Profile
	artworks   []domain.Artwork
	profileErr error

	stats    app.FollowStats
	statsErr error

	following    bool
	followingErr error

	followCalls   []int
	unfollowCalls []int
	followErr     error
}

func (s *stubAccounts) ProfileWithArtworks(_ context.Context, userID, _ int) (app.Profile, []domain.Artwork, error) {
	if s.profileErr != nil {
		return app.Profile{}, nil, s.profileErr
	}
	p := s.profile
	p.ID = userID
	return p, s.artworks, nil
}

func (s *stubAccounts) FollowStats(context.Context, int) (app.FollowStats, error) {
	return s.stats, s.statsErr
}

func (s *stubAccounts) IsFollowing(context.Context, int, int) (bool, error) {
	return s.following, s.followingErr
}

func (s *stubAccounts) Follow(_ context.Context, _, targetID int) error {
	s.followCalls = append(s.followCalls, targetID)
	return s.followErr
}

func (s *stubAccounts) Unfollow(_ context.Context, _, targetID int) error {
	s.unfollowCalls = append(s.unfollowCalls, targetID)
	return s.followErr
}

type stubArtworks struct {
	likeCalls   []string
	unlikeCalls []string
	likeErr     error
	likeErrs    map[string]error
	unlikeErr   error

	visibilityCalls []string
	visibilityErr   error

	presets    []string
	presetsErr error

	comment    domain.Comment
	commentErr error

	deleteErrs map[string]error
}

func (s *stubArtworks) Like(_ context.Context, ref string) error {
	s.likeCalls = append(s.likeCalls, ref)
	if err, ok := s.likeErrs[ref]; ok {
		return err
	}
	return s.likeErr
}

func (s *stubArtworks) Unlike(_ context.Context, ref string) error {
	s.unlikeCalls = append(s.unlikeCalls, ref)
	return s.unlikeErr
}

func (s *stubArtworks) SetVisibility(_ context.Context, ref string, _ domain.Visibility) error {
	s.visibilityCalls = append(s.visibilityCalls, ref)
	return s.visibilityErr
}

func (s *stubArtworks) AddComment(_ context.Context, _ string, text string) (domain.Comment, error) {
	if s.commentErr != nil {
		return domain.Comment{}, s.commentErr
	}
	c := s.comment
	if c.Text == "" {
		c.Text = text
	}
	return c, nil
}

func (s *stubArtworks) Comments(context.Context, string) ([]domain.Comment, error) {
	return nil, nil
}

func (s *stubArtworks) PresetComments(context.Context) ([]string, error) {
	return s.presets, s.presetsErr
}

func (s *stubArtworks) Upload(context.Context, int, string, domain.TransformMode) (domain.Artwork, error) {
	return domain.Artwork{}, errors.New("not implemented")
}

func (s *stubArtworks) Delete(_ context.Context, ref string) error {
	if s.deleteErrs == nil {
		return nil
	}
	return s.deleteErrs[ref]
}

func testIdentity() app.Identity {
	return app.Identity{UserID: 7, Username: "mia", DisplayName: "Mia"}
}

func testModel(accounts *stubAccounts, artworks *stubArtworks, items []domain.Artwork) Model {
	m := New(accounts, artworks, testIdentity())
	m.loading = false
	m.items = items
	return m
}

func sampleItems() []domain.Artwork {
	return []domain.Artwork{
		{LocalID: "local-a", Ref: "ref-a", OwnerID: 7, Title: "cat.png", LikeCount: 3, Visibility: domain.VisibilityPublic},
		{LocalID: "local-b", Ref: "ref-b", OwnerID: 9, Title: "dog.png", LikeCount: 1, Visibility: domain.VisibilityPublic},
	}
}

func TestLikeAppliesOptimisticallyThenConfirms(t *testing.T) {
	artworks := &stubArtworks{}
	m := testModel(&stubAccounts{}, artworks, sampleItems())

	m, cmd := m.toggleLike()
	if cmd == nil {
		t.Fatal("expected a confirm command")
	}
	if !m.items[0].IsLiked || m.items[0].LikeCount != 4 {
		t.Fatalf("optimistic apply missing: liked=%v count=%d", m.items[0].IsLiked, m.items[0].LikeCount)
	}

	msg := cmd()
	res, ok := msg.(mutationResultMsg)
	if !ok {
		t.Fatalf("unexpected msg %T", msg)
	}
	if res.Err != nil {
		t.Fatalf("unexpected confirm error: %v", res.Err)
	}
	if len(artworks.likeCalls) != 1 || artworks.likeCalls[0] != "ref-a" {
		t.Fatalf("like calls = %v", artworks.likeCalls)
	}

	m, _ = m.Update(msg)
	if !m.items[0].IsLiked || m.items[0].LikeCount != 4 {
		t.Fatal("confirmed mutation should keep the optimistic state")
	}
}

func TestLikeChoosesUnlikeWhenAlreadyLiked(t *testing.T) {
	artworks := &stubArtworks{}
	items := sampleItems()
	items[0].IsLiked = true
	items[0].LikeCount = 4
	m := testModel(&stubAccounts{}, artworks, items)

	m, cmd := m.toggleLike()
	if m.items[0].IsLiked || m.items[0].LikeCount != 3 {
		t.Fatalf("optimistic unlike missing: liked=%v count=%d", m.items[0].IsLiked, m.items[0].LikeCount)
	}
	cmd()
	if len(artworks.unlikeCalls) != 1 || artworks.unlikeCalls[0] != "ref-a" {
		t.Fatalf("unlike calls = %v", artworks.unlikeCalls)
	}
	if len(artworks.likeCalls) != 0 {
		t.Fatalf("unexpected like calls: %v", artworks.likeCalls)
	}
}

func TestLikeFailureRollsBackExactly(t *testing.T) {
	artworks := &stubArtworks{likeErr: errors.New("boom")}
	items := sampleItems()
	before := snapshotArtworks(items)
	m := testModel(&stubAccounts{}, artworks, items)

	m, cmd := m.toggleLike()
	msg := cmd()
	m, _ = m.Update(msg)

	if diff := cmp.Diff(before, m.items); diff != "" {
		t.Fatalf("rollback mismatch (-want +got):\n%s", diff)
	}
	if m.status == "" {
		t.Fatal("expected a user-facing failure status")
	}
}

func TestRollbackPreservesOtherConfirmedMutation(t *testing.T) {
	artworks := &stubArtworks{likeErrs: map[string]error{"ref-a": errors.New("boom")}}
	m := testModel(&stubAccounts{}, artworks, sampleItems())

	// B applies first, so A's snapshot already carries B's optimistic value.
	m.cursor = 1
	m, cmdB := m.toggleLike()

	m.cursor = 0
	m, cmdA := m.toggleLike()

	msgB := cmdB()
	msgA := cmdA()

	m, _ = m.Update(msgB)
	m, _ = m.Update(msgA)

	if m.items[0].IsLiked || m.items[0].LikeCount != 3 {
		t.Fatalf("A not rolled back: liked=%v count=%d", m.items[0].IsLiked, m.items[0].LikeCount)
	}
	if !m.items[1].IsLiked || m.items[1].LikeCount != 2 {
		t.Fatalf("B's confirmed mutation lost: liked=%v count=%d", m.items[1].IsLiked, m.items[1].LikeCount)
	}
}

func TestRequireSignInSentinel(t *testing.T) {
	anon := New(&stubAccounts{}, &stubArtworks{}, app.Identity{})
	if !errors.Is(anon.requireSignIn(), domain.ErrNotSignedIn) {
		t.Fatal("anonymous model must report ErrNotSignedIn")
	}
	if New(&stubAccounts{}, &stubArtworks{}, testIdentity()).requireSignIn() != nil {
		t.Fatal("signed-in model must pass the gate")
	}
}

// flattenMsgs expands nested batches so a test can inspect every message a
// command tree produces.
func flattenMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, flattenMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestSetIdentityRestartsSpinner(t *testing.T) {
	m := New(&stubAccounts{}, &stubArtworks{}, app.Identity{})

	m, cmd := m.SetIdentity(testIdentity())
	if m.Identity().UserID != 7 {
		t.Fatalf("identity = %+v", m.Identity())
	}

	ticked := false
	for _, msg := range flattenMsgs(cmd) {
		if _, ok := msg.(spinner.TickMsg); ok {
			ticked = true
		}
	}
	if !ticked {
		t.Fatal("identity swap must restart the spinner tick")
	}
}

func TestLikeRequiresSignIn(t *testing.T) {
	artworks := &stubArtworks{}
	m := New(&stubAccounts{}, artworks, app.Identity{})
	m.loading = false
	m.items = sampleItems()

	m, cmd := m.toggleLike()
	if cmd != nil {
		t.Fatal("anonymous like should not issue a request")
	}
	if m.items[0].IsLiked || m.items[0].LikeCount != 3 {
		t.Fatal("anonymous like should not mutate state")
	}
	if m.status == "" {
		t.Fatal("expected a sign-in prompt")
	}
}

func TestVisibilityToggleAndRollback(t *testing.T) {
	artworks := &stubArtworks{visibilityErr: errors.New("boom")}
	m := testModel(&stubAccounts{}, artworks, sampleItems())

	m, cmd := m.toggleVisibility()
	if m.items[0].Visibility != domain.VisibilityPrivate {
		t.Fatalf("optimistic visibility = %q", m.items[0].Visibility)
	}
	m, _ = m.Update(cmd())
	if m.items[0].Visibility != domain.VisibilityPublic {
		t.Fatalf("rollback visibility = %q", m.items[0].Visibility)
	}
}

func TestVisibilityRejectsForeignArtwork(t *testing.T) {
	m := testModel(&stubAccounts{}, &stubArtworks{}, sampleItems())
	m.cursor = 1 // owned by user 9

	m, cmd := m.toggleVisibility()
	if cmd != nil {
		t.Fatal("should not mutate someone else's artwork")
	}
	if m.items[1].Visibility != domain.VisibilityPublic {
		t.Fatal("foreign artwork visibility changed")
	}
}

func TestOpenProfileSwitchesContextAndDropsStaleResponses(t *testing.T) {
	accounts := &stubAccounts{}
	m := testModel(accounts, &stubArtworks{}, sampleItems())
	selfEpoch := m.profileEpoch

	m, _ = m.Update(OpenProfileMsg{UserID: 42})
	if m.viewingSelf() {
		t.Fatal("expected other-profile context")
	}
	if !m.loading {
		t.Fatal("context switch should enter loading")
	}
	if m.profileEpoch == selfEpoch {
		t.Fatal("context switch must bump the epoch")
	}
	if len(m.items) != 0 {
		t.Fatal("previous gallery should be cleared")
	}

	// A late response for the abandoned self view must be dropped.
	m, _ = m.Update(profileLoadedMsg{
		TargetID: 7,
		Epoch:    selfEpoch,
		Profile:  app.Profile{ID: 7, Username: "mia"},
		Artworks: sampleItems(),
	})
	if len(m.items) != 0 || m.profile.ID == 7 {
		t.Fatal("stale profile response applied")
	}

	m, _ = m.Update(profileLoadedMsg{
		TargetID: 42,
		Epoch:    m.profileEpoch,
		Profile:  app.Profile{ID: 42, Username: "leo"},
		Artworks: []domain.Artwork{{LocalID: "x", Ref: "ref-x", OwnerID: 42}},
	})
	if m.loading || m.profile.ID != 42 || len(m.items) != 1 {
		t.Fatalf("current response not applied: loading=%v profile=%d items=%d",
			m.loading, m.profile.ID, len(m.items))
	}
}

func TestOpenOwnProfileCollapsesToSelf(t *testing.T) {
	m := testModel(&stubAccounts{}, &stubArtworks{}, sampleItems())

	m, _ = m.Update(OpenProfileMsg{UserID: 7})
	if !m.viewingSelf() {
		t.Fatal("opening own id should stay on the self view")
	}
}

func TestBackToSelfResetsFollowState(t *testing.T) {
	m := testModel(&stubAccounts{}, &stubArtworks{}, sampleItems())

	m, _ = m.Update(OpenProfileMsg{UserID: 42})
	otherEpoch := m.profileEpoch
	m, _ = m.Update(isFollowingMsg{TargetID: 42, Epoch: otherEpoch, Following: true})

	m, _ = m.Update(BackToMyProfileMsg{})
	if !m.viewingSelf() {
		t.Fatal("expected self context")
	}

	// In-flight responses for the abandoned target must be dropped.
	m, _ = m.Update(followStatsMsg{TargetID: 42, Epoch: otherEpoch, Stats: app.FollowStats{Followers: 99}})
	if m.stats.Followers != 0 {
		t.Fatalf("stale stats applied: %+v", m.stats)
	}
}

func TestFollowStatsFailureFallsBackToZero(t *testing.T) {
	m := testModel(&stubAccounts{}, &stubArtworks{}, sampleItems())
	m.stats = app.FollowStats{Followers: 5, Following: 3}

	m, _ = m.Update(followStatsMsg{
		TargetID: 7,
		Epoch:    m.profileEpoch,
		Err:      errors.New("boom"),
	})
	if m.stats != (app.FollowStats{}) {
		t.Fatalf("expected zero stats, got %+v", m.stats)
	}
}

func TestIsFollowingFailureDefaultsToNotFollowing(t *testing.T) {
	m := testModel(&stubAccounts{}, &stubArtworks{}, sampleItems())
	m, _ = m.Update(OpenProfileMsg{UserID: 42})

	m, _ = m.Update(isFollowingMsg{
		TargetID: 42,
		Epoch:    m.profileEpoch,
		Err:      errors.New("boom"),
	})
	c, ok := m.ctx.(otherContext)
	if !ok || c.IsFollowing {
		t.Fatalf("expected not-following default, ctx=%+v", m.ctx)
	}
}

func TestFollowToggleUpdatesStatsOnConfirm(t *testing.T) {
	accounts := &stubAccounts{}
	m := testModel(accounts, &stubArtworks{}, nil)
	m, _ = m.Update(OpenProfileMsg{UserID: 42})
	m.stats = app.FollowStats{Followers: 10}

	m, cmd := m.toggleFollow()
	if cmd == nil {
		t.Fatal("expected a follow command")
	}
	msg := cmd()
	res, ok := msg.(followToggleResultMsg)
	if !ok || !res.Follow {
		t.Fatalf("unexpected msg %#v", msg)
	}
	m, _ = m.Update(msg)

	c, _ := m.ctx.(otherContext)
	if !c.IsFollowing || m.stats.Followers != 11 {
		t.Fatalf("follow not applied: ctx=%+v stats=%+v", c, m.stats)
	}
	if len(accounts.followCalls) != 1 || accounts.followCalls[0] != 42 {
		t.Fatalf("follow calls = %v", accounts.followCalls)
	}
}

func TestCommentRoundTripAppendsCanonicalRecord(t *testing.T) {
	artworks := &stubArtworks{
		presets: []string{"So cool!", "I love the colors!"},
		comment: domain.Comment{ID: "c-1", AuthorID: 7, AuthorName: "Mia", Text: "So cool!"},
	}
	m := testModel(&stubAccounts{}, artworks, sampleItems())

	m, cmd := m.openCommentPicker()
	if !m.pickerOpen {
		t.Fatal("picker should open")
	}
	if cmd == nil {
		t.Fatal("first open should fetch presets")
	}
	m, _ = m.Update(cmd())
	if !m.presetsLoaded || len(m.presets) != 2 {
		t.Fatalf("presets not loaded: %v", m.presets)
	}

	m, cmd = m.handlePickerKey(tea.KeyMsg{Type: tea.KeyEnter})
	if m.pickerOpen {
		t.Fatal("picker should close after selection")
	}
	if cmd == nil {
		t.Fatal("expected comment command")
	}

	// No optimistic apply before the server confirms.
	if len(m.items[0].Comments) != 0 || m.items[0].CommentCount != 0 {
		t.Fatal("comment applied before confirmation")
	}

	m, _ = m.Update(cmd())
	want := []domain.Comment{{ID: "c-1", AuthorID: 7, AuthorName: "Mia", Text: "So cool!"}}
	if diff := cmp.Diff(want, m.items[0].Comments); diff != "" {
		t.Fatalf("comment mismatch (-want +got):\n%s", diff)
	}
	if m.items[0].CommentCount != 1 {
		t.Fatalf("comment count = %d", m.items[0].CommentCount)
	}
}

func TestCommentFailureLeavesStateUntouched(t *testing.T) {
	artworks := &stubArtworks{
		presets:    []string{"So cool!"},
		commentErr: errors.New("boom"),
	}
	m := testModel(&stubAccounts{}, artworks, sampleItems())
	m.presets = artworks.presets
	m.presetsLoaded = true

	m, _ = m.openCommentPicker()
	m, cmd := m.handlePickerKey(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd())

	if len(m.items[0].Comments) != 0 || m.items[0].CommentCount != 0 {
		t.Fatal("failed comment must not appear")
	}
	if m.status == "" {
		t.Fatal("expected a failure status")
	}
}

func TestClearGalleryBestEffortSummary(t *testing.T) {
	artworks := &stubArtworks{
		deleteErrs: map[string]error{"ref-b": errors.New("boom")},
	}
	items := []domain.Artwork{
		{LocalID: "a", Ref: "ref-a", OwnerID: 7},
		{LocalID: "b", Ref: "ref-b", OwnerID: 7},
		{LocalID: "c", Ref: "ref-c", OwnerID: 7},
	}
	m := testModel(&stubAccounts{}, artworks, items)

	cmd := m.clearGalleryCmd(m.ownRefs())
	msg := cmd()
	res, ok := msg.(clearGalleryResultMsg)
	if !ok {
		t.Fatalf("unexpected msg %T", msg)
	}
	if res.Deleted != 2 || res.Total != 3 {
		t.Fatalf("summary = %d of %d", res.Deleted, res.Total)
	}

	m, refetch := m.Update(msg)
	if m.status != "Deleted 2 of 3 artworks." {
		t.Fatalf("status = %q", m.status)
	}
	if refetch == nil {
		t.Fatal("clear should refetch the gallery")
	}
}

func TestUploadedArtworkPrependsOnSelfView(t *testing.T) {
	m := testModel(&stubAccounts{}, &stubArtworks{}, sampleItems())

	created := domain.Artwork{LocalID: "new", Ref: "ref-new", OwnerID: 7, Title: "sun.png"}
	m, _ = m.Update(ArtworkCreatedMsg{Artwork: created})

	if len(m.items) != 3 || m.items[0].LocalID != "new" {
		t.Fatalf("new artwork not prepended: %v", m.items)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor = %d", m.cursor)
	}
}
