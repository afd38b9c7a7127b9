// internal/handlers/storefront.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lojinha/lojinha-backend/internal/i18n"
	"github.com/lojinha/lojinha-backend/internal/models"
	"github.com/lojinha/lojinha-backend/internal/services"
	"github.com/lojinha/lojinha-backend/internal/utils"
)

// StorefrontHandler exposes the draft editing surface. Top-level profile
// edits are buffered and written after a quiet period; product and kit edits
// apply immediately and coalesce into debounced saves.
type StorefrontHandler struct {
	storefrontService *services.StorefrontService
	storageService    *services.StorageService
}

func NewStorefrontHandler(storefrontService *services.StorefrontService, storageService *services.StorageService) *StorefrontHandler {
	return &StorefrontHandler{
		storefrontService: storefrontService,
		storageService:    storageService,
	}
}

// GET /storefront
func (h *StorefrontHandler) GetDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, err := h.storefrontService.Session(userID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyStorefrontNotFound)
		return
	}

	draft, err := session.Draft()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"storefront": draft,
	})
}

// PATCH /storefront
//
// Accepts a shallow partial of the storefront's top level. The change is
// buffered; persistence happens after the configured quiet period, with
// rapid successive edits folded into one write.
func (h *StorefrontHandler) PatchDraft(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var partial map[string]interface{}
	if err := c.ShouldBindJSON(&partial); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	session, err := h.storefrontService.Session(userID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyStorefrontNotFound)
		return
	}

	if err := session.BufferConfig(partial); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyStorefrontDraft),
	})
}

// POST /storefront/save
func (h *StorefrontHandler) Save(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, err := h.storefrontService.Session(userID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyStorefrontNotFound)
		return
	}

	if err := session.SaveNow(); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	draft, err := session.Draft()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyStorefrontSaved),
		"storefront": draft,
	})
}

// POST /storefront/refresh
//
// Re-reads the stored record and folds it into the session. Local edits that
// have not been written yet win over the stored state.
func (h *StorefrontHandler) Refresh(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	draft, err := h.storefrontService.Refresh(userID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyStorefrontNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"storefront": draft,
	})
}

// POST /storefront/products
func (h *StorefrontHandler) AddProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	session, err := h.storefrontService.Session(userID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyStorefrontNotFound)
		return
	}

	session.AddProduct(product)

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductAdded),
		"product": product,
	})
}

// PATCH /storefront/products/:productId
func (h *StorefrontHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	session, err := h.storefrontService.Session(userID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyStorefrontNotFound)
		return
	}

	session.UpdateProduct(c.Param("productId"), patch)

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
	})
}

// DELETE /storefront/products/:productId
func (h *StorefrontHandler) RemoveProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, err := h.storefrontService.Session(userID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyStorefrontNotFound)
		return
	}

	session.RemoveProduct(c.Param("productId"))

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductRemoved),
	})
}

// PATCH /storefront/products/:productId/kits/:kitId
func (h *StorefrontHandler) UpdateProductKit(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var patch models.KitPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	session, err := h.storefrontService.Session(userID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyStorefrontNotFound)
		return
	}

	session.UpdateProductKit(c.Param("productId"), c.Param("kitId"), patch)

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
	})
}

// POST /storefront/upload
func (h *StorefrontHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if _, ok := currentUserID(c); !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "file"), err.Error())
		return
	}
	defer file.Close()

	category := c.DefaultPostForm("category", "products")
	options := h.storageService.GetDefaultUploadOptions(category)

	result, err := h.storageService.UploadFile(file, header, options)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"file":    result,
	})
}
