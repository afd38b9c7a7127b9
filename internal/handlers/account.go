// internal/handlers/account.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lojinha/lojinha-backend/internal/services"
	"github.com/lojinha/lojinha-backend/internal/utils"
)

type AccountHandler struct {
	activityService *services.ActivityService
}

func NewAccountHandler(activityService *services.ActivityService) *AccountHandler {
	return &AccountHandler{
		activityService: activityService,
	}
}

// GET /account/activity
func (h *AccountHandler) GetActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	entries, total, err := h.activityService.GetUserActivity(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(entries, total, params))
}
