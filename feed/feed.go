// Package feed derives a per-user timeline from the social graph and the
// content store. It is a read-only composition layer: it never mutates either
// store.
package feed

import (
	"context"

	"github.com/devworkshq/devworks/model"
	"github.com/devworkshq/devworks/store"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Composer builds reverse-chronological feeds. The cache is optional, a nil
// cache means every call recomputes from the database.
type Composer struct {
	db     *gorm.DB
	social *store.SocialStore
	cache  *Cache
}

func NewComposer(db *gorm.DB, social *store.SocialStore, cache *Cache) *Composer {
	return &Composer{db: db, social: social, cache: cache}
}

// ComposeFeed returns every post authored by a user the caller follows,
// newest first. A caller who follows nobody (or has no profile yet) gets an
// empty sequence, not an error. The caller's own posts never appear because a
// self edge can never be written.
func (c *Composer) ComposeFeed(ctx context.Context, userID string) ([]*model.Post, error) {
	if c.cache != nil {
		if ids, ok := c.cache.GetFeedPostIds(ctx, userID); ok {
			return c.postsInOrder(ctx, ids)
		}
	}

	following, err := c.social.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(following) == 0 {
		return []*model.Post{}, nil
	}

	var posts []*model.Post
	res := c.db.WithContext(ctx).
		Preload("Author").
		Where("author_id IN ?", following).
		Order("created_at DESC, cursor DESC").
		Find(&posts)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "compose feed")
	}

	if c.cache != nil {
		ids := make([]string, 0, len(posts))
		for _, post := range posts {
			ids = append(ids, post.Id)
		}
		c.cache.SetFeedPostIds(ctx, userID, ids)
	}
	return posts, nil
}

// postsInOrder loads posts by id and restores the given sequence order,
// silently dropping ids whose post was deleted since caching.
func (c *Composer) postsInOrder(ctx context.Context, ids []string) ([]*model.Post, error) {
	if len(ids) == 0 {
		return []*model.Post{}, nil
	}
	var posts []*model.Post
	res := c.db.WithContext(ctx).
		Preload("Author").
		Where("id IN ?", ids).
		Find(&posts)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "load cached feed posts")
	}
	byID := make(map[string]*model.Post, len(posts))
	for _, post := range posts {
		byID[post.Id] = post
	}
	ordered := make([]*model.Post, 0, len(posts))
	for _, id := range ids {
		if post, ok := byID[id]; ok {
			ordered = append(ordered, post)
		}
	}
	return ordered, nil
}

// Invalidate drops the user's cached feed if a cache is configured.
func (c *Composer) Invalidate(ctx context.Context, userID string) {
	if c.cache != nil {
		c.cache.InvalidateFeed(ctx, userID)
	}
}
