package hayai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"terminalcanvas/domain"
)

// artworkService implements app.ArtworkService using the HayAI API.
type artworkService struct {
	client *Client
}

// NewArtworkService creates an ArtworkService backed by HayAI.
func NewArtworkService(client *Client) *artworkService {
	return &artworkService{client: client}
}

type postJSON struct {
	ImageID          string        `json:"image_id"`
	Original         string        `json:"original"`
	Improved         string        `json:"improved"`
	Mode             string        `json:"mode"`
	OriginalFilename string        `json:"original_filename"`
	LikeCount        int           `json:"like_count"`
	LikedBy          []int         `json:"liked_by"`
	Visibility       string        `json:"visibility"`
	CommentCount     int           `json:"comment_count"`
	Comments         []commentJSON `json:"comments"`
	CreatedAt        string        `json:"created_at"`
}

type commentJSON struct {
	ID          string  `json:"id"`
	UserID      int     `json:"user_id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"displayName"`
	AvatarName  string  `json:"avatar_name"`
	CommentText string  `json:"comment_text"`
	Timestamp   float64 `json:"timestamp"`
}

// artwork converts the wire post to the domain model. The LocalID is minted
// here: the backend has no notion of it, and every decoded post gets a fresh
// one for client-side list bookkeeping.
func (p postJSON) artwork(ownerID, viewerID int) domain.Artwork {
	ref := p.ImageID
	if ref == "" {
		// Older backend responses carry the content id in original_filename.
		ref = p.OriginalFilename
	}

	liked := false
	if viewerID != 0 {
		for _, id := range p.LikedBy {
			if id == viewerID {
				liked = true
				break
			}
		}
	}

	visibility := domain.Visibility(p.Visibility)
	if visibility != domain.VisibilityPrivate {
		visibility = domain.VisibilityPublic
	}

	likeCount := p.LikeCount
	if likeCount == 0 && len(p.LikedBy) > 0 {
		likeCount = len(p.LikedBy)
	}
	commentCount := p.CommentCount
	if commentCount == 0 && len(p.Comments) > 0 {
		commentCount = len(p.Comments)
	}

	comments := make([]domain.Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, c.comment())
	}

	createdAt, _ := time.Parse(time.RFC3339, p.CreatedAt)

	return domain.Artwork{
		LocalID:      uuid.NewString(),
		Ref:          ref,
		OwnerID:      ownerID,
		Title:        p.OriginalFilename,
		OriginalURL:  p.Original,
		ImprovedURL:  p.Improved,
		Mode:         domain.TransformMode(p.Mode),
		LikeCount:    likeCount,
		IsLiked:      liked,
		Visibility:   visibility,
		CommentCount: commentCount,
		Comments:     comments,
		CreatedAt:    createdAt,
	}
}

func (c commentJSON) comment() domain.Comment {
	name := c.DisplayName
	if name == "" {
		name = c.Username
	}
	sec := int64(c.Timestamp)
	nsec := int64((c.Timestamp - float64(sec)) * float64(time.Second))
	return domain.Comment{
		ID:         c.ID,
		AuthorID:   c.UserID,
		AuthorName: name,
		AvatarName: c.AvatarName,
		Text:       c.CommentText,
		CreatedAt:  time.Unix(sec, nsec),
	}
}

func (s *artworkService) Like(ctx context.Context, ref string) error {
	path := fmt.Sprintf("/api/posts/%s/like", url.PathEscape(ref))
	if _, err := s.client.Post(ctx, path, nil); err != nil {
		return fmt.Errorf("liking post: %w", err)
	}
	return nil
}

func (s *artworkService) Unlike(ctx context.Context, ref string) error {
	path := fmt.Sprintf("/api/posts/%s/like", url.PathEscape(ref))
	if _, err := s.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("unliking post: %w", err)
	}
	return nil
}

func (s *artworkService) SetVisibility(ctx context.Context, ref string, v domain.Visibility) error {
	path := fmt.Sprintf("/api/posts/%s/visibility", url.PathEscape(ref))
	body := map[string]string{"visibility": string(v)}
	if _, err := s.client.Patch(ctx, path, body); err != nil {
		return fmt.Errorf("changing visibility: %w", err)
	}
	return nil
}

func (s *artworkService) AddComment(ctx context.Context, ref string, text string) (domain.Comment, error) {
	path := fmt.Sprintf("/api/posts/%s/comment", url.PathEscape(ref))
	body := map[string]string{"comment_text": text}
	data, err := s.client.Post(ctx, path, body)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("adding comment: %w", err)
	}

	var c commentJSON
	if err := json.Unmarshal(data, &c); err != nil {
		return domain.Comment{}, fmt.Errorf("parsing comment response: %w", err)
	}
	return c.comment(), nil
}

func (s *artworkService) Comments(ctx context.Context, ref string) ([]domain.Comment, error) {
	path := fmt.Sprintf("/posts/%s/comments", url.PathEscape(ref))
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching comments: %w", err)
	}

	var raw []commentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing comments: %w", err)
	}
	comments := make([]domain.Comment, 0, len(raw))
	for _, c := range raw {
		comments = append(comments, c.comment())
	}
	return comments, nil
}

func (s *artworkService) PresetComments(ctx context.Context) ([]string, error) {
	data, err := s.client.Get(ctx, "/comments/predefined")
	if err != nil {
		return nil, fmt.Errorf("fetching preset comments: %w", err)
	}

	var resp struct {
		Comments []string `json:"comments"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing preset comments: %w", err)
	}
	return resp.Comments, nil
}

func (s *artworkService) Upload(ctx context.Context, ownerID int, filePath string, mode domain.TransformMode) (domain.Artwork, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return domain.Artwork{}, fmt.Errorf("opening drawing: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return domain.Artwork{}, fmt.Errorf("building upload: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return domain.Artwork{}, fmt.Errorf("reading drawing: %w", err)
	}
	if err := w.WriteField("user_id", strconv.Itoa(ownerID)); err != nil {
		return domain.Artwork{}, fmt.Errorf("building upload: %w", err)
	}
	if err := w.WriteField("mode", string(mode)); err != nil {
		return domain.Artwork{}, fmt.Errorf("building upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return domain.Artwork{}, fmt.Errorf("building upload: %w", err)
	}

	data, err := s.client.PostRaw(ctx, "/upload/", &buf, w.FormDataContentType())
	if err != nil {
		return domain.Artwork{}, fmt.Errorf("uploading drawing: %w", err)
	}

	var resp struct {
		Filename         string `json:"filename"`
		OriginalFilename string `json:"original_filename"`
		OriginalURL      string `json:"original_url"`
		ImprovedURL      string `json:"improved_url"`
		Mode             string `json:"mode"`
		UserID           int    `json:"user_id"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return domain.Artwork{}, fmt.Errorf("parsing upload response: %w", err)
	}

	return domain.Artwork{
		LocalID:     uuid.NewString(),
		Ref:         resp.Filename,
		OwnerID:     resp.UserID,
		Title:       resp.OriginalFilename,
		OriginalURL: resp.OriginalURL,
		ImprovedURL: resp.ImprovedURL,
		Mode:        domain.TransformMode(resp.Mode),
		Visibility:  domain.VisibilityPublic,
		CreatedAt:   time.Now(),
	}, nil
}

func (s *artworkService) Delete(ctx context.Context, ref string) error {
	path := fmt.Sprintf("/delete/%s", url.PathEscape(ref))
	if _, err := s.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}
