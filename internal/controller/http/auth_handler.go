package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"velvetroom/internal/usecase"
	"velvetroom/pkg/config"
	"velvetroom/pkg/logger"
	"velvetroom/pkg/session"
)

type AuthHandler struct {
	auth     usecase.AuthUseCase
	sessions session.Store
	cfg      *config.Config
	logger   *logger.Logger
}

func NewAuthHandler(auth usecase.AuthUseCase, sessions session.Store, cfg *config.Config, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

type registerRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) userTTL() time.Duration {
	return time.Duration(h.cfg.UserSessionTTLSeconds) * time.Second
}

func (h *AuthHandler) secureCookies(c *gin.Context) bool {
	return c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := h.auth.Register(req.Username, req.Email, req.Password, req.DateOfBirth)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), session.ScopeUser, session.Data{
		UserID:   user.ID,
		Username: user.Username,
	}, h.userTTL())
	if err != nil {
		h.logger.Error("Failed to create session for user %d: %v", user.ID, err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	session.WriteCookie(c.Writer, session.UserCookie, token, h.cfg.UserSessionTTLSeconds, h.secureCookies(c))

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Login and password are required")
		return
	}

	user, err := h.auth.Login(req.Login, req.Password)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), session.ScopeUser, session.Data{
		UserID:   user.ID,
		Username: user.Username,
	}, h.userTTL())
	if err != nil {
		h.logger.Error("Failed to create session for user %d: %v", user.ID, err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	session.WriteCookie(c.Writer, session.UserCookie, token, h.cfg.UserSessionTTLSeconds, h.secureCookies(c))

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token := c.GetString("session_token"); token != "" {
		if err := h.sessions.Destroy(c.Request.Context(), session.ScopeUser, token); err != nil {
			h.logger.Warn("Failed to destroy session: %v", err)
		}
	}
	session.ClearCookie(c.Writer, session.UserCookie, h.secureCookies(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

// Check reports whether the request carries a live session. It never 401s so
// the frontend can poll it on page load.
func (h *AuthHandler) Check(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"authenticated": true,
		"user_id":       userID,
		"username":      c.GetString("username"),
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	profile, err := h.auth.Profile(c.GetInt("user_id"))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}
