package http

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"velvetroom/internal/gallery"
	"velvetroom/internal/usecase"
	"velvetroom/pkg/config"
	"velvetroom/pkg/logger"
	"velvetroom/pkg/session"
)

// AdminHandler serves the management surface. The admin identity comes from
// configuration, not the users table.
type AdminHandler struct {
	admin    usecase.GalleryAdminUseCase
	sessions session.Store
	cfg      *config.Config
	logger   *logger.Logger
}

func NewAdminHandler(admin usecase.GalleryAdminUseCase, sessions session.Store, cfg *config.Config, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		admin:    admin,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AdminHandler) adminTTL() time.Duration {
	return time.Duration(h.cfg.AdminSessionTTLSeconds) * time.Second
}

func (h *AdminHandler) secureCookies(c *gin.Context) bool {
	return c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	if req.Username != h.cfg.AdminUsername ||
		bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPasswordHash), []byte(req.Password)) != nil {
		h.logger.Warn("Failed admin login attempt for %q from %s", req.Username, c.ClientIP())
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), session.ScopeAdmin, session.Data{
		Username: req.Username,
	}, h.adminTTL())
	if err != nil {
		h.logger.Error("Failed to create admin session: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	session.WriteCookie(c.Writer, session.AdminCookie, token, h.cfg.AdminSessionTTLSeconds, h.secureCookies(c))

	c.JSON(http.StatusOK, gin.H{"success": true, "username": req.Username})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(session.AdminCookie); err == nil && token != "" {
		if err := h.sessions.Destroy(c.Request.Context(), session.ScopeAdmin, token); err != nil {
			h.logger.Warn("Failed to destroy admin session: %v", err)
		}
	}
	session.ClearCookie(c.Writer, session.AdminCookie, h.secureCookies(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

func (h *AdminHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"authenticated": true,
		"username":      c.GetString("admin_username"),
	})
}

func (h *AdminHandler) ListGallery(c *gin.Context) {
	doc, err := h.admin.List()
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "gallery": doc})
}

func uploadFromHeader(header *multipart.FileHeader) (usecase.Upload, func(), error) {
	file, err := header.Open()
	if err != nil {
		return usecase.Upload{}, nil, err
	}
	return usecase.Upload{
		File:        file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}, func() { file.Close() }, nil
}

func (h *AdminHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "image file is required")
		return
	}

	up, cleanup, err := uploadFromHeader(header)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	defer cleanup()

	img, err := h.admin.UploadImage(up, c.PostForm("alt"))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "image": img})
}

func (h *AdminHandler) UploadVideo(c *gin.Context) {
	videoHeader, err := c.FormFile("video")
	if err != nil {
		respondError(c, http.StatusBadRequest, "video file is required")
		return
	}
	thumbHeader, err := c.FormFile("thumbnail")
	if err != nil {
		respondError(c, http.StatusBadRequest, "thumbnail file is required")
		return
	}

	video, closeVideo, err := uploadFromHeader(videoHeader)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	defer closeVideo()

	thumb, closeThumb, err := uploadFromHeader(thumbHeader)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	defer closeThumb()

	v, err := h.admin.UploadVideo(video, thumb, c.PostForm("title"))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "video": v})
}

func itemID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid item id")
		return 0, false
	}
	return id, true
}

type altUpdateRequest struct {
	Alt string `json:"alt"`
}

func (h *AdminHandler) UpdateImageAlt(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	var req altUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.admin.UpdateImageAlt(id, req.Alt); err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type titleUpdateRequest struct {
	Title string `json:"title"`
}

func (h *AdminHandler) UpdateVideoTitle(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	var req titleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.admin.UpdateVideoTitle(id, req.Title); err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) ReplaceVideoThumbnail(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("thumbnail")
	if err != nil {
		respondError(c, http.StatusBadRequest, "thumbnail file is required")
		return
	}

	up, cleanup, err := uploadFromHeader(header)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	defer cleanup()

	v, err := h.admin.ReplaceVideoThumbnail(id, up)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "video": v})
}

func (h *AdminHandler) DeleteImage(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	if err := h.admin.DeleteImage(id); err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) DeleteVideo(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	if err := h.admin.DeleteVideo(id); err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type reorderRequest struct {
	Updates []gallery.OrderUpdate `json:"updates" binding:"required"`
}

func (h *AdminHandler) ReorderImages(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "updates are required")
		return
	}
	if err := h.admin.ReorderImages(req.Updates); err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) ReorderVideos(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "updates are required")
		return
	}
	if err := h.admin.ReorderVideos(req.Updates); err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
