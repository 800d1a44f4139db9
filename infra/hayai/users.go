package hayai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"terminalcanvas/app"
	"terminalcanvas/domain"
)

// accountService implements app.AccountService and app.SearchService
// using the HayAI API.
type accountService struct {
	client *Client
}

// NewAccountService creates an AccountService backed by HayAI.
func NewAccountService(client *Client) *accountService {
	return &accountService{client: client}
}

type userJSON struct {
	ID          int        `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"displayName"`
	Bio         string     `json:"bio"`
	Interests   []string   `json:"interests"`
	AvatarName  string     `json:"avatar_name"`
	Posts       []postJSON `json:"posts"`
}

func (u userJSON) profile() app.Profile {
	return app.Profile{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		Interests:   u.Interests,
		AvatarName:  u.AvatarName,
	}
}

func (s *accountService) SearchUsers(ctx context.Context, query string) ([]app.Profile, error) {
	path := "/users/search?q=" + url.QueryEscape(query)
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}

	var resp struct {
		Count   int        `json:"count"`
		Results []userJSON `json:"results"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	profiles := make([]app.Profile, 0, len(resp.Results))
	for _, u := range resp.Results {
		profiles = append(profiles, u.profile())
	}
	return profiles, nil
}

func (s *accountService) ProfileWithArtworks(ctx context.Context, userID, viewerID int) (app.Profile, []domain.Artwork, error) {
	path := fmt.Sprintf("/users/%d", userID)
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return app.Profile{}, nil, fmt.Errorf("fetching profile: %w", err)
	}

	var u userJSON
	if err := json.Unmarshal(data, &u); err != nil {
		return app.Profile{}, nil, fmt.Errorf("parsing profile: %w", err)
	}

	artworks := make([]domain.Artwork, 0, len(u.Posts))
	for _, p := range u.Posts {
		artworks = append(artworks, p.artwork(userID, viewerID))
	}
	return u.profile(), artworks, nil
}

func (s *accountService) FollowStats(ctx context.Context, userID int) (app.FollowStats, error) {
	path := fmt.Sprintf("/users/%d/follow-stats", userID)
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return app.FollowStats{}, fmt.Errorf("fetching follow stats: %w", err)
	}

	var stats struct {
		Followers int `json:"followers"`
		Following int `json:"following"`
	}
	if err := json.Unmarshal(data, &stats); err != nil {
		return app.FollowStats{}, fmt.Errorf("parsing follow stats: %w", err)
	}
	return app.FollowStats{Followers: stats.Followers, Following: stats.Following}, nil
}

func (s *accountService) IsFollowing(ctx context.Context, userID, targetID int) (bool, error) {
	path := fmt.Sprintf("/users/%d/is-following/%d", userID, targetID)
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return false, fmt.Errorf("checking follow state: %w", err)
	}

	var resp struct {
		IsFollowing bool `json:"is_following"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return false, fmt.Errorf("parsing follow state: %w", err)
	}
	return resp.IsFollowing, nil
}

func (s *accountService) Follow(ctx context.Context, currentID, targetID int) error {
	path := fmt.Sprintf("/users/%d/follow?current_user_id=%d", targetID, currentID)
	if _, err := s.client.Post(ctx, path, nil); err != nil {
		return fmt.Errorf("following user: %w", err)
	}
	return nil
}

func (s *accountService) Unfollow(ctx context.Context, currentID, targetID int) error {
	path := fmt.Sprintf("/users/%d/follow?current_user_id=%d", targetID, currentID)
	if _, err := s.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("unfollowing user: %w", err)
	}
	return nil
}
