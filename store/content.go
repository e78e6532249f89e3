package store

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/devworkshq/devworks/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxImagesPerPost caps how many image references a single post may carry.
const MaxImagesPerPost = 5

// ContentStore owns the post lifecycle together with the embedded like set
// and comment log.
type ContentStore struct {
	db *gorm.DB
}

func NewContentStore(db *gorm.DB) *ContentStore {
	return &ContentStore{db: db}
}

// PostInput carries the author-provided fields of a new post. Image
// references come from the upload collaborator, never raw bytes.
type PostInput struct {
	Title       string
	Description string
	TechTags    []string
	LiveUrl     string
	CodeUrl     string
	ImageUrls   []string
}

func validLink(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// CreatePost validates every field and reports all violations at once, then
// persists the post. Tags and image references are immutable afterwards.
func (s *ContentStore) CreatePost(ctx context.Context, authorID string, input PostInput) (*model.Post, error) {
	var v Violations
	if strings.TrimSpace(input.Title) == "" {
		v.Add("title", "title is required")
	}
	tags := trimAll(input.TechTags)
	if len(tags) == 0 {
		v.Add("techTags", "at least one tag is required")
	}
	if !validLink(input.LiveUrl) {
		v.Add("liveUrl", "a valid live URL is required")
	}
	if input.CodeUrl != "" && !validLink(input.CodeUrl) {
		v.Add("codeUrl", "code URL is not a valid URL")
	}
	if len(input.ImageUrls) > MaxImagesPerPost {
		v.Add("images", "at most 5 images are allowed")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	var author model.User
	res := s.db.WithContext(ctx).Where("id = ?", authorID).First(&author)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(res.Error, "look up post author")
	}

	post := model.Post{
		Id:          uuid.New().String(),
		CreatedAt:   time.Now(),
		AuthorID:    authorID,
		Author:      author,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		TechTags:    model.StringList(tags),
		LiveUrl:     input.LiveUrl,
		CodeUrl:     input.CodeUrl,
		ImageUrls:   model.StringList(input.ImageUrls),
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, errors.Wrap(err, "create post")
	}
	return &post, nil
}

// GetPost loads one post with its author and the comment log, most recent
// comment first.
func (s *ContentStore) GetPost(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	res := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC")
		}).
		Where("id = ?", id).
		First(&post)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(res.Error, "get post")
	}
	return &post, nil
}

// ListPosts returns every post, newest first. Cursor breaks ties between
// posts created in the same instant.
func (s *ContentStore) ListPosts(ctx context.Context) ([]*model.Post, error) {
	var posts []*model.Post
	res := s.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC, cursor DESC").
		Find(&posts)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "list posts")
	}
	return posts, nil
}

// ListPostsByAuthor returns one user's posts, newest first.
func (s *ContentStore) ListPostsByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	var posts []*model.Post
	res := s.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC, cursor DESC").
		Find(&posts)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "list posts by author")
	}
	return posts, nil
}

// DeletePost removes a post iff the requester is its author. The removal is a
// single conditional delete, the post is never materialized first. On zero
// rows affected a follow-up read classifies the failure.
func (s *ContentStore) DeletePost(ctx context.Context, id, requesterID string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, requesterID).
		Delete(&model.Post{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete post")
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return errors.Wrap(err, "classify post delete failure")
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrUnauthorized
}

// ToggleLike adds the user's like when absent and removes it when present,
// returning the updated like set in insertion order. Both directions are a
// single conditional write keyed on the (post, user) primary key, so two
// racing calls on the same post serialize in the database and never lose an
// update. The composite key also makes like uniqueness structural.
func (s *ContentStore) ToggleLike(ctx context.Context, postID, userID string) ([]string, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, errors.Wrap(err, "look up post for like")
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	like := model.PostLike{PostID: postID, UserID: userID, CreatedAt: time.Now()}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "insert like")
	}
	if res.RowsAffected == 0 {
		// Conflicted on the primary key: the like already existed, this call
		// means unlike.
		del := s.db.WithContext(ctx).
			Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&model.PostLike{})
		if del.Error != nil {
			return nil, errors.Wrap(del.Error, "remove like")
		}
	}
	return s.Likes(ctx, postID)
}

// Likes returns the user ids that like a post, oldest like first.
func (s *ContentStore) Likes(ctx context.Context, postID string) ([]string, error) {
	userIDs := []string{}
	res := s.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Pluck("user_id", &userIDs)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "list likes")
	}
	return userIDs, nil
}

// AddComment appends a comment to the post's log. The author's name and
// avatar are snapshotted into the row at write time and are never refreshed,
// so the comment keeps rendering as it did when written.
func (s *ContentStore) AddComment(ctx context.Context, postID, authorID, text string) (*model.Comment, error) {
	var v Violations
	if strings.TrimSpace(text) == "" {
		v.Add("text", "comment text is required")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, errors.Wrap(err, "look up post for comment")
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	var author model.User
	res := s.db.WithContext(ctx).Where("id = ?", authorID).First(&author)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(res.Error, "look up comment author")
	}

	comment := model.Comment{
		Id:           uuid.New().String(),
		CreatedAt:    time.Now(),
		PostID:       postID,
		AuthorID:     authorID,
		AuthorName:   author.Name,
		AuthorAvatar: author.AvatarUrl,
		Text:         strings.TrimSpace(text),
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, errors.Wrap(err, "create comment")
	}
	return &comment, nil
}

// DeleteComment removes a comment iff the requester wrote it. Deleting an
// unknown comment id is ErrNotFound, not a silent no-op.
func (s *ContentStore) DeleteComment(ctx context.Context, postID, commentID, requesterID string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND post_id = ? AND author_id = ?", commentID, postID, requesterID).
		Delete(&model.Comment{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete comment")
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ? AND post_id = ?", commentID, postID).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "classify comment delete failure")
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrUnauthorized
}
