// Package server wires the engine's operations onto the HTTP transport. It
// owns status mapping and response shaping only, all invariants live in the
// stores.
package server

import (
	"net/http"

	"github.com/devworkshq/devworks/auth"
	"github.com/devworkshq/devworks/feed"
	"github.com/devworkshq/devworks/github"
	"github.com/devworkshq/devworks/server/middlewares"
	"github.com/devworkshq/devworks/store"
	"github.com/devworkshq/devworks/uploader"
	"github.com/gin-gonic/gin"
)

// Server bundles the engine components behind the REST surface. Every
// dependency is injected at construction.
type Server struct {
	Auth    *auth.Manager
	Content *store.ContentStore
	Social  *store.SocialStore
	Feed    *feed.Composer
	Images  uploader.ImageStore
	Github  *github.Client
}

func NewServer(authManager *auth.Manager, content *store.ContentStore, social *store.SocialStore, composer *feed.Composer, images uploader.ImageStore, githubClient *github.Client) *Server {
	return &Server{
		Auth:    authManager,
		Content: content,
		Social:  social,
		Feed:    composer,
		Images:  images,
		Github:  githubClient,
	}
}

// RegisterRoutes binds every operation onto the router. Mutating and
// personalized routes sit behind the JWT middleware.
func (s *Server) RegisterRoutes(router *gin.Engine) {
	authed := middlewares.JWT(s.Auth)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	users := router.Group("/api/users")
	{
		users.POST("/signup", s.handleSignup)
		users.POST("/login", s.handleLogin)
		users.GET("/auth", authed, s.handleCurrentUser)
	}

	posts := router.Group("/api/posts")
	{
		posts.GET("", s.handleListPosts)
		posts.GET("/feed", authed, s.handleFeed)
		posts.GET("/user/:userID", s.handleListPostsByAuthor)
		posts.GET("/:postID", s.handleGetPost)
		posts.POST("", authed, s.handleCreatePost)
		posts.DELETE("/:postID", authed, s.handleDeletePost)
		posts.PUT("/:postID/like", authed, s.handleToggleLike)
		posts.POST("/:postID/comments", authed, s.handleAddComment)
		posts.DELETE("/:postID/comments/:commentID", authed, s.handleDeleteComment)
	}

	profiles := router.Group("/api/profiles")
	{
		profiles.GET("", s.handleListProfiles)
		profiles.GET("/me", authed, s.handleMyProfile)
		profiles.GET("/user/:userID", s.handleGetProfile)
		profiles.GET("/github/:username", s.handleGithubLookup)
		profiles.POST("", authed, s.handleUpsertProfile)
		profiles.PUT("/follow/:userID", authed, s.handleFollow)
		profiles.PUT("/unfollow/:userID", authed, s.handleUnfollow)
	}
}
