package server

import (
	"net/http"

	"github.com/devworkshq/devworks/model"
	"github.com/devworkshq/devworks/server/middlewares"
	"github.com/devworkshq/devworks/store"
	"github.com/gin-gonic/gin"
)

// upsertProfileRequest mirrors store.ProfileInput: absent fields stay nil and
// leave the stored value untouched.
type upsertProfileRequest struct {
	Bio            *string  `json:"bio"`
	Website        *string  `json:"website"`
	Location       *string  `json:"location"`
	GithubUserName *string  `json:"githubUserName"`
	Skills         []string `json:"skills"`
	Twitter        *string  `json:"twitter"`
	LinkedIn       *string  `json:"linkedIn"`
	Github         *string  `json:"github"`
	Codepen        *string  `json:"codepen"`
}

func (s *Server) handleUpsertProfile(c *gin.Context) {
	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed request body"})
		return
	}

	profile, err := s.Social.UpsertProfile(c.Request.Context(), middlewares.CallerID(c), store.ProfileInput{
		Bio:            req.Bio,
		Website:        req.Website,
		Location:       req.Location,
		GithubUserName: req.GithubUserName,
		Skills:         req.Skills,
		Twitter:        req.Twitter,
		LinkedIn:       req.LinkedIn,
		Github:         req.Github,
		Codepen:        req.Codepen,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	s.writeProfile(c, profile)
}

func (s *Server) handleMyProfile(c *gin.Context) {
	profile, err := s.Social.GetProfile(c.Request.Context(), middlewares.CallerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	s.writeProfile(c, profile)
}

func (s *Server) handleGetProfile(c *gin.Context) {
	profile, err := s.Social.GetProfile(c.Request.Context(), c.Param("userID"))
	if err != nil {
		writeError(c, err)
		return
	}
	s.writeProfile(c, profile)
}

func (s *Server) handleListProfiles(c *gin.Context) {
	ctx := c.Request.Context()
	profiles, err := s.Social.ListProfiles(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]profileView, 0, len(profiles))
	for _, profile := range profiles {
		followers, err := s.Social.Followers(ctx, profile.UserID)
		if err != nil {
			writeError(c, err)
			return
		}
		following, err := s.Social.Following(ctx, profile.UserID)
		if err != nil {
			writeError(c, err)
			return
		}
		views = append(views, toProfileView(profile, followers, following))
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) handleFollow(c *gin.Context) {
	ctx := c.Request.Context()
	followerID := middlewares.CallerID(c)
	err := s.Social.Follow(ctx, followerID, c.Param("userID"))
	if err != nil {
		writeError(c, err)
		return
	}
	// The follower's timeline changed, recompute it on next read.
	s.Feed.Invalidate(ctx, followerID)
	c.JSON(http.StatusOK, gin.H{"message": "successfully followed"})
}

func (s *Server) handleUnfollow(c *gin.Context) {
	ctx := c.Request.Context()
	followerID := middlewares.CallerID(c)
	err := s.Social.Unfollow(ctx, followerID, c.Param("userID"))
	if err != nil {
		writeError(c, err)
		return
	}
	s.Feed.Invalidate(ctx, followerID)
	c.JSON(http.StatusOK, gin.H{"message": "successfully unfollowed"})
}

func (s *Server) handleGithubLookup(c *gin.Context) {
	repos, err := s.Github.RecentRepos(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, repos)
}

func (s *Server) writeProfile(c *gin.Context, profile *model.Profile) {
	ctx := c.Request.Context()
	followers, err := s.Social.Followers(ctx, profile.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	following, err := s.Social.Following(ctx, profile.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileView(profile, followers, following))
}
