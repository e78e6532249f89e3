package store

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/devworkshq/devworks/model"
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

func createTestUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := model.User{
		Id:        uuid.New().String(),
		CreatedAt: time.Now(),
		Name:      name,
		Email:     fmt.Sprintf("%s-%s@example.com", name, utils.RandomAlphabetString(6)),
		AvatarUrl: "https://www.gravatar.com/avatar/" + name,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func validPostInput() PostInput {
	return PostInput{
		Title:    "portfolio site",
		TechTags: []string{"go", "postgres"},
		LiveUrl:  "https://example.com/portfolio",
	}
}

func TestCreatePostValidationReportsEveryField(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	content := NewContentStore(db)
	author := createTestUser(t, db, "author")

	_, err := content.CreatePost(context.Background(), author.Id, PostInput{
		Title:    "   ",
		TechTags: []string{" ", ""},
		LiveUrl:  "not-a-url",
	})
	ve, ok := AsValidation(err)
	require.True(t, ok)

	fields := []string{}
	for _, f := range ve.Fields {
		fields = append(fields, f.Field)
	}
	require.Contains(t, fields, "title")
	require.Contains(t, fields, "techTags")
	require.Contains(t, fields, "liveUrl")
}

func TestCreateAndGetPost(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	content := NewContentStore(db)
	author := createTestUser(t, db, "author")

	input := validPostInput()
	input.Description = "my portfolio"
	input.CodeUrl = "https://github.com/author/portfolio"
	input.ImageUrls = []string{"https://img.example.com/a.png"}

	created, err := content.CreatePost(context.Background(), author.Id, input)
	require.NoError(t, err)

	got, err := content.GetPost(context.Background(), created.Id)
	require.NoError(t, err)
	require.Equal(t, "portfolio site", got.Title)
	require.Equal(t, author.Id, got.Author.Id)
	require.Equal(t, []string{"go", "postgres"}, got.TechTagList())
	require.Equal(t, []string{"https://img.example.com/a.png"}, got.ImageUrlList())

	_, err = content.GetPost(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestToggleLikeIsIdempotentPerIntentPair(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	content := NewContentStore(db)
	author := createTestUser(t, db, "author")
	liker := createTestUser(t, db, "liker")

	post, err := content.CreatePost(context.Background(), author.Id, validPostInput())
	require.NoError(t, err)

	likes, err := content.ToggleLike(context.Background(), post.Id, liker.Id)
	require.NoError(t, err)
	require.Equal(t, []string{liker.Id}, likes)

	// Second toggle removes the like: the set is back to its original state.
	likes, err = content.ToggleLike(context.Background(), post.Id, liker.Id)
	require.NoError(t, err)
	require.Empty(t, likes)

	_, err = content.ToggleLike(context.Background(), uuid.New().String(), liker.Id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLikeSetNeverHoldsDuplicates(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	content := NewContentStore(db)
	author := createTestUser(t, db, "author")

	post, err := content.CreatePost(context.Background(), author.Id, validPostInput())
	require.NoError(t, err)

	const likerCount = 8
	likers := make([]*model.User, 0, likerCount)
	for i := 0; i < likerCount; i++ {
		likers = append(likers, createTestUser(t, db, fmt.Sprintf("liker%d", i)))
	}

	// Concurrent likes from distinct users on the same post must each land
	// exactly once.
	var wg sync.WaitGroup
	for _, liker := range likers {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			_, err := content.ToggleLike(context.Background(), post.Id, userID)
			require.NoError(t, err)
		}(liker.Id)
	}
	wg.Wait()

	likes, err := content.Likes(context.Background(), post.Id)
	require.NoError(t, err)
	require.Len(t, likes, likerCount)

	seen := map[string]bool{}
	for _, id := range likes {
		require.False(t, seen[id], "user id appears twice in like set")
		seen[id] = true
	}
}

func TestDeletePostOnlyByAuthor(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	content := NewContentStore(db)
	author := createTestUser(t, db, "author")
	other := createTestUser(t, db, "other")

	post, err := content.CreatePost(context.Background(), author.Id, validPostInput())
	require.NoError(t, err)

	err = content.DeletePost(context.Background(), post.Id, other.Id)
	require.ErrorIs(t, err, ErrUnauthorized)

	// The post survives the unauthorized attempt.
	_, err = content.GetPost(context.Background(), post.Id)
	require.NoError(t, err)

	require.NoError(t, content.DeletePost(context.Background(), post.Id, author.Id))
	_, err = content.GetPost(context.Background(), post.Id)
	require.ErrorIs(t, err, ErrNotFound)

	err = content.DeletePost(context.Background(), post.Id, author.Id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCommentLifecycleAndAuthorization(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	content := NewContentStore(db)
	author := createTestUser(t, db, "author")
	commenter := createTestUser(t, db, "commenter")
	other := createTestUser(t, db, "other")

	post, err := content.CreatePost(context.Background(), author.Id, validPostInput())
	require.NoError(t, err)

	_, err = content.AddComment(context.Background(), post.Id, commenter.Id, "  ")
	_, ok := AsValidation(err)
	require.True(t, ok)

	comment, err := content.AddComment(context.Background(), post.Id, commenter.Id, "great work")
	require.NoError(t, err)
	require.Equal(t, commenter.Name, comment.AuthorName)
	require.Equal(t, commenter.AvatarUrl, comment.AuthorAvatar)

	err = content.DeleteComment(context.Background(), post.Id, comment.Id, other.Id)
	require.ErrorIs(t, err, ErrUnauthorized)

	err = content.DeleteComment(context.Background(), post.Id, uuid.New().String(), commenter.Id)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, content.DeleteComment(context.Background(), post.Id, comment.Id, commenter.Id))

	err = content.DeleteComment(context.Background(), post.Id, comment.Id, commenter.Id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCommentSnapshotSurvivesAuthorRename(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	content := NewContentStore(db)
	author := createTestUser(t, db, "author")
	commenter := createTestUser(t, db, "old name")

	post, err := content.CreatePost(context.Background(), author.Id, validPostInput())
	require.NoError(t, err)

	comment, err := content.AddComment(context.Background(), post.Id, commenter.Id, "first!")
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.User{}).Where("id = ?", commenter.Id).Update("name", "new name").Error)

	got, err := content.GetPost(context.Background(), post.Id)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	require.Equal(t, comment.Id, got.Comments[0].Id)
	require.Equal(t, "old name", got.Comments[0].AuthorName)
}

func TestCommentsAreMostRecentFirst(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	content := NewContentStore(db)
	author := createTestUser(t, db, "author")

	post, err := content.CreatePost(context.Background(), author.Id, validPostInput())
	require.NoError(t, err)

	first, err := content.AddComment(context.Background(), post.Id, author.Id, "first")
	require.NoError(t, err)
	// Force distinct timestamps, comment ordering is by created_at.
	require.NoError(t, db.Model(&model.Comment{}).Where("id = ?", first.Id).
		Update("created_at", time.Now().Add(-time.Minute)).Error)

	second, err := content.AddComment(context.Background(), post.Id, author.Id, "second")
	require.NoError(t, err)

	got, err := content.GetPost(context.Background(), post.Id)
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	require.Equal(t, second.Id, got.Comments[0].Id)
	require.Equal(t, first.Id, got.Comments[1].Id)
}
