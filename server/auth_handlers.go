package server

import (
	"net/http"

	"github.com/devworkshq/devworks/server/middlewares"
	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// handleSignup registers a user and, like login, hands back a session token
// so the client is signed in immediately.
func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed request body"})
		return
	}

	user, err := s.Auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := s.Auth.IssueToken(user.Id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": toUserView(user)})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "malformed request body"})
		return
	}

	token, err := s.Auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// handleCurrentUser returns the authenticated caller's own record.
func (s *Server) handleCurrentUser(c *gin.Context) {
	user, err := s.Auth.CurrentUser(c.Request.Context(), middlewares.CallerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserView(user))
}
