package store

import (
	"context"
	"strings"
	"time"

	"github.com/devworkshq/devworks/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SocialStore owns profiles and the directed follow edges between users.
type SocialStore struct {
	db *gorm.DB
}

func NewSocialStore(db *gorm.DB) *SocialStore {
	return &SocialStore{db: db}
}

// ProfileInput is a partial update: nil pointers (and a nil Skills slice)
// leave the stored field untouched, they never clear it.
type ProfileInput struct {
	Bio            *string
	Website        *string
	Location       *string
	GithubUserName *string
	Skills         []string

	Twitter  *string
	LinkedIn *string
	Github   *string
	Codepen  *string
}

// UpsertProfile creates the user's profile on first write and merges only the
// supplied fields into it afterwards.
func (s *SocialStore) UpsertProfile(ctx context.Context, userID string, input ProfileInput) (*model.Profile, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, errors.Wrap(err, "look up profile owner")
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	updates := map[string]interface{}{}
	setIf := func(column string, value *string) {
		if value != nil {
			updates[column] = strings.TrimSpace(*value)
		}
	}
	setIf("bio", input.Bio)
	setIf("website", input.Website)
	setIf("location", input.Location)
	setIf("github_user_name", input.GithubUserName)
	setIf("twitter", input.Twitter)
	setIf("linked_in", input.LinkedIn)
	setIf("github", input.Github)
	setIf("codepen", input.Codepen)
	if input.Skills != nil {
		updates["skills"] = model.StringList(trimAll(input.Skills))
	}

	var profile model.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(model.Profile{UserID: userID}).FirstOrCreate(&profile).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&profile).Updates(updates).Error
	})
	if err != nil {
		return nil, errors.Wrap(err, "upsert profile")
	}
	return s.GetProfile(ctx, userID)
}

// GetProfile loads one user's profile with the owning user record.
func (s *SocialStore) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	res := s.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(res.Error, "get profile")
	}
	return &profile, nil
}

// ListProfiles returns every profile with its owning user.
func (s *SocialStore) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	var profiles []*model.Profile
	res := s.db.WithContext(ctx).Preload("User").Order("created_at ASC").Find(&profiles)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "list profiles")
	}
	return profiles, nil
}

// Follow inserts the follower -> followee edge. Both sides of the relation
// are represented by the one inserted row, so there is no second write to
// keep in sync and a failed insert leaves no partial state. A duplicate edge
// conflicts on the composite primary key and reports ErrAlreadyFollowing.
func (s *SocialStore) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	if err := s.requireUser(ctx, followeeID); err != nil {
		return err
	}

	edge := model.FollowEdge{FollowerID: followerID, FolloweeID: followeeID, CreatedAt: time.Now()}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&edge)
	if res.Error != nil {
		return errors.Wrap(res.Error, "create follow edge")
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyFollowing
	}
	return nil
}

// Unfollow removes the follower -> followee edge, reporting ErrNotFollowing
// when no edge exists.
func (s *SocialStore) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if err := s.requireUser(ctx, followeeID); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.FollowEdge{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete follow edge")
	}
	if res.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// Followers returns the ids of users following userID, oldest edge first.
func (s *SocialStore) Followers(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	res := s.db.WithContext(ctx).
		Model(&model.FollowEdge{}).
		Where("followee_id = ?", userID).
		Order("created_at ASC").
		Pluck("follower_id", &ids)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "list followers")
	}
	return ids, nil
}

// Following returns the ids of users userID follows, oldest edge first.
func (s *SocialStore) Following(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	res := s.db.WithContext(ctx).
		Model(&model.FollowEdge{}).
		Where("follower_id = ?", userID).
		Order("created_at ASC").
		Pluck("followee_id", &ids)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "list following")
	}
	return ids, nil
}

func (s *SocialStore) requireUser(ctx context.Context, userID string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return errors.Wrap(err, "look up followee")
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
