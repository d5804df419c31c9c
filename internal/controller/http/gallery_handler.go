package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velvetroom/internal/entity"
	"velvetroom/internal/gallery"
	"velvetroom/internal/usecase"
)

type GalleryHandler struct {
	access usecase.AccessUseCase
	store  *gallery.Store
}

func NewGalleryHandler(access usecase.AccessUseCase, store *gallery.Store) *GalleryHandler {
	return &GalleryHandler{access: access, store: store}
}

// CheckAccess is public: anonymous callers get the not-logged-in state with
// the current price attached.
func (h *GalleryHandler) CheckAccess(c *gin.Context) {
	userID := c.GetInt("user_id")

	status, err := h.access.Check(userID, userID != 0)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "access": status})
}

// List returns the gallery content only to purchasers.
func (h *GalleryHandler) List(c *gin.Context) {
	status, err := h.access.Check(c.GetInt("user_id"), true)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	if !status.HasAccess {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Gallery access required",
			"reason":  entity.AccessNotPurchased,
		})
		return
	}

	doc, err := h.store.Load()
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "gallery": doc})
}
