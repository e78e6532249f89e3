package feed

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/devworkshq/devworks/model"
	"github.com/devworkshq/devworks/store"
	"github.com/devworkshq/devworks/utils"
	"github.com/devworkshq/devworks/utils/dotenv"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func createUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := model.User{
		Id:        uuid.New().String(),
		CreatedAt: time.Now(),
		Name:      name,
		Email:     fmt.Sprintf("%s-%s@example.com", name, utils.RandomAlphabetString(6)),
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createPostAt(t *testing.T, db *gorm.DB, authorID, title string, createdAt time.Time) *model.Post {
	t.Helper()
	post := model.Post{
		Id:        uuid.New().String(),
		CreatedAt: createdAt,
		AuthorID:  authorID,
		Title:     title,
		TechTags:  model.StringList([]string{"go"}),
		LiveUrl:   "https://example.com/" + title,
		ImageUrls: model.StringList(nil),
	}
	require.NoError(t, db.Create(&post).Error)
	return &post
}

func TestComposeFeedReturnsFolloweesPostsNewestFirst(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	social := store.NewSocialStore(db)
	composer := NewComposer(db, social, nil)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	dave := createUser(t, db, "dave")

	base := time.Now().Add(-time.Hour)
	p1 := createPostAt(t, db, bob.Id, "p1", base.Add(1*time.Minute))
	p2 := createPostAt(t, db, carol.Id, "p2", base.Add(2*time.Minute))
	// Not followed by alice, must never show up.
	createPostAt(t, db, dave.Id, "p3", base.Add(3*time.Minute))
	// Alice's own post must not show up either.
	createPostAt(t, db, alice.Id, "own", base.Add(4*time.Minute))

	require.NoError(t, social.Follow(context.Background(), alice.Id, bob.Id))
	require.NoError(t, social.Follow(context.Background(), alice.Id, carol.Id))

	posts, err := composer.ComposeFeed(context.Background(), alice.Id)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, p2.Id, posts[0].Id)
	require.Equal(t, p1.Id, posts[1].Id)
	require.Equal(t, carol.Id, posts[0].Author.Id)
}

func TestComposeFeedIsEmptyWithoutFollowees(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	social := store.NewSocialStore(db)
	composer := NewComposer(db, social, nil)

	// loner has neither profile nor followees: empty feed, not an error.
	loner := createUser(t, db, "loner")
	createPostAt(t, db, loner.Id, "own", time.Now())

	posts, err := composer.ComposeFeed(context.Background(), loner.Id)
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestComposeFeedReflectsUnfollow(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	social := store.NewSocialStore(db)
	composer := NewComposer(db, social, nil)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	createPostAt(t, db, bob.Id, "p1", time.Now())

	require.NoError(t, social.Follow(context.Background(), alice.Id, bob.Id))
	posts, err := composer.ComposeFeed(context.Background(), alice.Id)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	require.NoError(t, social.Unfollow(context.Background(), alice.Id, bob.Id))
	posts, err = composer.ComposeFeed(context.Background(), alice.Id)
	require.NoError(t, err)
	require.Empty(t, posts)
}
