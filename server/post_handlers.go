package server

import (
	"net/http"
	"strings"

	"github.com/devworkshq/devworks/server/middlewares"
	"github.com/devworkshq/devworks/store"
	"github.com/gin-gonic/gin"
)

// handleCreatePost accepts a multipart form: text fields plus up to five
// image files. Files go through the upload collaborator first and only their
// returned URLs reach the content store. Upload happens before any store
// call, so no store state is held while the external upload is in flight.
func (s *Server) handleCreatePost(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed multipart form"})
		return
	}

	var imageUrls []string
	files := form.File["images"]
	if len(files) > store.MaxImagesPerPost {
		writeError(c, &store.ValidationError{Fields: []store.FieldError{
			{Field: "images", Message: "at most 5 images are allowed"},
		}})
		return
	}
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			writeError(c, err)
			return
		}
		url, err := s.Images.Store(header.Filename, file)
		file.Close()
		if err != nil {
			writeError(c, err)
			return
		}
		imageUrls = append(imageUrls, url)
	}

	post, err := s.Content.CreatePost(c.Request.Context(), middlewares.CallerID(c), store.PostInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		TechTags:    splitTags(form.Value["techTags"]),
		LiveUrl:     c.PostForm("liveUrl"),
		CodeUrl:     c.PostForm("codeUrl"),
		ImageUrls:   imageUrls,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPostView(post, nil))
}

// splitTags flattens repeated form fields and comma separated values into one
// tag list.
func splitTags(values []string) []string {
	var tags []string
	for _, value := range values {
		for _, tag := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
	}
	return tags
}

func (s *Server) handleListPosts(c *gin.Context) {
	posts, err := s.Content.ListPosts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostViews(posts))
}

func (s *Server) handleListPostsByAuthor(c *gin.Context) {
	posts, err := s.Content.ListPostsByAuthor(c.Request.Context(), c.Param("userID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostViews(posts))
}

func (s *Server) handleGetPost(c *gin.Context) {
	ctx := c.Request.Context()
	post, err := s.Content.GetPost(ctx, c.Param("postID"))
	if err != nil {
		writeError(c, err)
		return
	}
	likes, err := s.Content.Likes(ctx, post.Id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostView(post, likes))
}

func (s *Server) handleDeletePost(c *gin.Context) {
	err := s.Content.DeletePost(c.Request.Context(), c.Param("postID"), middlewares.CallerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) handleToggleLike(c *gin.Context) {
	likes, err := s.Content.ToggleLike(c.Request.Context(), c.Param("postID"), middlewares.CallerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

type addCommentRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleAddComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed request body"})
		return
	}

	comment, err := s.Content.AddComment(c.Request.Context(), c.Param("postID"), middlewares.CallerID(c), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentView(comment))
}

func (s *Server) handleDeleteComment(c *gin.Context) {
	err := s.Content.DeleteComment(c.Request.Context(), c.Param("postID"), c.Param("commentID"), middlewares.CallerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) handleFeed(c *gin.Context) {
	posts, err := s.Feed.ComposeFeed(c.Request.Context(), middlewares.CallerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostViews(posts))
}
