package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"velvetroom/internal/entity"
	"velvetroom/internal/usecase"
	"velvetroom/pkg/config"
	"velvetroom/pkg/logger"
)

type PaymentHandler struct {
	checkout usecase.CheckoutUseCase
	auth     usecase.AuthUseCase
	tips     usecase.TipsUseCase
	cfg      *config.Config
	logger   *logger.Logger
}

func NewPaymentHandler(checkout usecase.CheckoutUseCase, auth usecase.AuthUseCase, tips usecase.TipsUseCase, cfg *config.Config, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		checkout: checkout,
		auth:     auth,
		tips:     tips,
		cfg:      cfg,
		logger:   logger,
	}
}

type tipRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required"`
	Message     string `json:"message"`
	Anonymous   bool   `json:"anonymous"`
}

func (h *PaymentHandler) currentUser(c *gin.Context) (*entity.User, bool) {
	user, err := h.auth.GetUser(c.GetInt("user_id"))
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return user, true
}

func (h *PaymentHandler) CreateGalleryCheckout(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	session, err := h.checkout.CreateGalleryCheckout(user, baseURL(c))
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sessionId": session.ID, "url": session.URL})
}

func (h *PaymentHandler) CreateTipCheckout(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req tipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "amount_cents is required")
		return
	}

	session, err := h.checkout.CreateTipCheckout(user, baseURL(c), req.AmountCents, req.Message, req.Anonymous)
	if err != nil {
		if errors.Is(err, usecase.ErrAmountOutOfRange) {
			respondError(c, http.StatusBadRequest, fmt.Sprintf(
				"Tip amount must be between $%s and $%s",
				dollars(h.cfg.TipMinCents), dollars(h.cfg.TipMaxCents)))
			return
		}
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sessionId": session.ID, "url": session.URL})
}

func dollars(cents int64) string {
	if cents%100 == 0 {
		return strconv.FormatInt(cents/100, 10)
	}
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

func (h *PaymentHandler) RecentTippers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	tippers, err := h.tips.RecentTippers(limit)
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tippers": tippers})
}

func (h *PaymentHandler) TipStats(c *gin.Context) {
	stats, err := h.tips.Stats()
	if err != nil {
		respondUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
