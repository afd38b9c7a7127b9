// internal/handlers/billing.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lojinha/lojinha-backend/internal/i18n"
	"github.com/lojinha/lojinha-backend/internal/services"
	"github.com/lojinha/lojinha-backend/internal/utils"
)

type BillingHandler struct {
	billingService *services.BillingService
}

func NewBillingHandler(billingService *services.BillingService) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
	}
}

// POST /billing/checkout
func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, err := h.billingService.CreateCheckoutSession(userID)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyBillingCheckoutCreated),
		"checkout": session,
	})
}

// GET /billing/checkout/:sessionId
//
// The frontend polls this after Stripe redirects back; a completed session
// upgrades the plan on first sight.
func (h *BillingHandler) GetCheckoutStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sessionID := c.Param("sessionId")
	if sessionID == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "session_id"), nil)
		return
	}

	status, err := h.billingService.ConfirmCheckoutSession(userID, sessionID)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"checkout": status,
	})
}
