// internal/handlers/public.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lojinha/lojinha-backend/internal/i18n"
	"github.com/lojinha/lojinha-backend/internal/services"
	"github.com/lojinha/lojinha-backend/internal/utils"
)

// PublicHandler serves the unauthenticated surface: the resolved storefront
// for visitors and the Open Graph preview for crawlers.
type PublicHandler struct {
	storefrontService *services.StorefrontService
	ogService         *services.OGService
}

func NewPublicHandler(storefrontService *services.StorefrontService, ogService *services.OGService) *PublicHandler {
	return &PublicHandler{
		storefrontService: storefrontService,
		ogService:         ogService,
	}
}

// GET /u/:username
//
// Returns the render-ready view: discounts netted, hidden kits dropped,
// checkout links resolved, theme tokens attached.
func (h *PublicHandler) GetStorefront(c *gin.Context) {
	username := c.Param("username")

	storefront, err := h.storefrontService.GetByUsername(c.Request.Context(), username)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyStorefrontNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"storefront": services.ResolvePublic(storefront),
	})
}

// GET /og/:username
func (h *PublicHandler) GetPreview(c *gin.Context) {
	page, err := h.ogService.PreviewHTML(c.Request.Context(), c.Param("username"))
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyStorefrontNotFound)
		return
	}

	c.Header("Cache-Control", "public, max-age=300")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// GET /og/:username/card.svg
func (h *PublicHandler) GetPreviewCard(c *gin.Context) {
	svg, err := h.ogService.CardSVG(c.Request.Context(), c.Param("username"))
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyStorefrontNotFound)
		return
	}

	c.Header("Cache-Control", "public, max-age=300")
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}
