package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"footy_server/models"
)

// PostService handles the feed: posts, likes and comments.
type PostService struct {
	Store DocumentStore
}

func NewPostService(store DocumentStore) *PostService {
	return &PostService{Store: store}
}

// Create inserts a new post owned by the caller and returns its id.
func (ps *PostService) Create(ctx context.Context, caller *models.User, content, imageURL string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", validationError("content is required")
	}
	post := models.Post{
		ID:        uuid.NewString(),
		OwnerID:   caller.ID,
		Content:   content,
		ImageURL:  imageURL,
		Likes:     []string{},
		Comments:  []models.Comment{},
		CreatedAt: nowRFC3339(),
	}
	if err := ps.Store.Insert(ctx, models.PostsTable, post.ID, post); err != nil {
		return "", err
	}
	return post.ID, nil
}

// Feed returns all posts newest first with owners resolved. A deleted
// owner degrades to a placeholder instead of dropping the post.
func (ps *PostService) Feed(ctx context.Context) ([]models.PostView, error) {
	return ps.listPosts(ctx, Filter{})
}

// ByOwner returns one user's posts, newest first.
func (ps *PostService) ByOwner(ctx context.Context, ownerID string) ([]models.PostView, error) {
	return ps.listPosts(ctx, Filter{Equals: map[string]string{"owner_id": ownerID}})
}

func (ps *PostService) listPosts(ctx context.Context, filter Filter) ([]models.PostView, error) {
	var posts []models.Post
	query := Query{Filter: filter, SortDesc: "created_at"}
	if _, err := ps.Store.FindMany(ctx, models.PostsTable, query, &posts); err != nil {
		return nil, err
	}
	views := make([]models.PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, ps.attachOwner(ctx, post))
	}
	return views, nil
}

func (ps *PostService) attachOwner(ctx context.Context, post models.Post) models.PostView {
	view := models.PostView{Post: post, Owner: models.PostOwner{Username: "User", FullName: "User"}}
	var owner models.User
	if err := ps.Store.FindByID(ctx, models.UsersTable, post.OwnerID, &owner); err == nil {
		view.Owner = models.PostOwner{
			ID:         owner.ID,
			Username:   owner.Username,
			FullName:   owner.FullName,
			ProfilePic: owner.ProfilePic,
		}
	}
	return view
}

// GetByID returns one post with its owner resolved.
func (ps *PostService) GetByID(ctx context.Context, postID string) (*models.PostView, error) {
	post, err := ps.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	view := ps.attachOwner(ctx, *post)
	return &view, nil
}

func (ps *PostService) getPost(ctx context.Context, postID string) (*models.Post, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, notFoundError("Post not found")
	}
	var post models.Post
	if err := ps.Store.FindByID(ctx, models.PostsTable, postID, &post); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, notFoundError("Post not found")
		}
		return nil, err
	}
	return &post, nil
}

// Update rewrites a post's content and, when supplied, its image. Owner
// only.
func (ps *PostService) Update(ctx context.Context, caller *models.User, postID, content, imageURL string) error {
	post, err := ps.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.OwnerID != caller.ID {
		return authorizationError("Unauthorized")
	}
	set := map[string]interface{}{"content": content}
	if imageURL != "" {
		set["image_url"] = imageURL
	}
	return ps.Store.UpdateFields(ctx, models.PostsTable, postID, Update{Set: set})
}

// Delete permanently removes a post. Owner only.
func (ps *PostService) Delete(ctx context.Context, caller *models.User, postID string) error {
	post, err := ps.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.OwnerID != caller.ID {
		return authorizationError("Unauthorized")
	}
	return ps.Store.Delete(ctx, models.PostsTable, postID)
}

// Like records the caller's like once; a second like is a conflict.
func (ps *PostService) Like(ctx context.Context, caller *models.User, postID string) error {
	post, err := ps.getPost(ctx, postID)
	if err != nil {
		return err
	}
	for _, id := range post.Likes {
		if id == caller.ID {
			return conflictError("Already liked")
		}
	}
	err = ps.Store.UpdateFields(ctx, models.PostsTable, postID, Update{
		Push:  map[string]interface{}{"likes": caller.ID},
		Guard: &Guard{Field: "likes", NotContains: caller.ID},
	})
	if errors.Is(err, ErrGuardFailed) {
		return conflictError("Already liked")
	}
	return err
}

// Unlike removes the caller's like; unliking a post that was never liked
// is a no-op.
func (ps *PostService) Unlike(ctx context.Context, caller *models.User, postID string) error {
	if _, err := ps.getPost(ctx, postID); err != nil {
		return err
	}
	return ps.Store.UpdateFields(ctx, models.PostsTable, postID, Update{
		Pull: map[string]interface{}{"likes": caller.ID},
	})
}

// AddComment appends a comment and returns it.
func (ps *PostService) AddComment(ctx context.Context, caller *models.User, postID, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, validationError("comment is required")
	}
	if _, err := ps.getPost(ctx, postID); err != nil {
		return nil, err
	}
	comment := models.Comment{
		UserID:    caller.ID,
		Comment:   text,
		Timestamp: nowRFC3339(),
	}
	err := ps.Store.UpdateFields(ctx, models.PostsTable, postID, Update{
		Push: map[string]interface{}{"comments": comment},
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
