// internal/handlers/page.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lojinha/lojinha-backend/internal/i18n"
	"github.com/lojinha/lojinha-backend/internal/services"
	"github.com/lojinha/lojinha-backend/internal/utils"
)

type PageHandler struct {
	pageService *services.PageService
}

func NewPageHandler(pageService *services.PageService) *PageHandler {
	return &PageHandler{
		pageService: pageService,
	}
}

// POST /pages
func (h *PageHandler) CreatePage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	page, err := h.pageService.CreatePage(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPageCreated),
		"page":    page,
	})
}

// GET /pages
func (h *PageHandler) ListPages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pages, err := h.pageService.ListPages(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"pages": pages,
	})
}

// GET /pages/:pageId
func (h *PageHandler) GetPage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pageID, ok := pathUUID(c, "pageId")
	if !ok {
		return
	}

	page, err := h.pageService.GetPage(userID, pageID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	components, err := h.pageService.ListComponents(userID, pageID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"page":       page,
		"components": components,
	})
}

// PATCH /pages/:pageId
func (h *PageHandler) UpdatePage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pageID, ok := pathUUID(c, "pageId")
	if !ok {
		return
	}

	var req services.UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	page, err := h.pageService.UpdatePage(userID, pageID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPageUpdated),
		"page":    page,
	})
}

// GET /pages/:pageId/components
func (h *PageHandler) ListComponents(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pageID, ok := pathUUID(c, "pageId")
	if !ok {
		return
	}

	components, err := h.pageService.ListComponents(userID, pageID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"components": components,
	})
}

// POST /pages/:pageId/components
func (h *PageHandler) AddComponent(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pageID, ok := pathUUID(c, "pageId")
	if !ok {
		return
	}

	var req services.AddComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	component, err := h.pageService.AddComponent(userID, pageID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyComponentAdded),
		"component": component,
	})
}

// PATCH /pages/:pageId/components/:componentId
func (h *PageHandler) UpdateComponent(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pageID, ok := pathUUID(c, "pageId")
	if !ok {
		return
	}
	componentID, ok := pathUUID(c, "componentId")
	if !ok {
		return
	}

	var req services.UpdateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	component, err := h.pageService.UpdateComponent(userID, pageID, componentID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyComponentUpdated),
		"component": component,
	})
}

// DELETE /pages/:pageId/components/:componentId
func (h *PageHandler) DeleteComponent(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pageID, ok := pathUUID(c, "pageId")
	if !ok {
		return
	}
	componentID, ok := pathUUID(c, "componentId")
	if !ok {
		return
	}

	if err := h.pageService.DeleteComponent(userID, pageID, componentID); err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyComponentRemoved),
	})
}

// PUT /pages/:pageId/components/order
func (h *PageHandler) ReorderComponents(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pageID, ok := pathUUID(c, "pageId")
	if !ok {
		return
	}

	var req struct {
		ComponentIDs []uuid.UUID `json:"component_ids" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	components, err := h.pageService.ReorderComponents(userID, pageID, req.ComponentIDs)
	if err != nil {
		h.writeError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyComponentsReordered),
		"components": components,
	})
}

func (h *PageHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPageNotFound):
		utils.NotFoundResponse(c, i18n.KeyPageNotFound)
	case errors.Is(err, services.ErrComponentNotFound):
		utils.NotFoundResponse(c, i18n.KeyComponentNotFound)
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}
