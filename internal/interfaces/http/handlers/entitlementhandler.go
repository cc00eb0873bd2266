package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	billingUsecases "github.com/solacehq/solace/internal/application/billing/usecases"
	"github.com/solacehq/solace/internal/shared/constants"
	"github.com/solacehq/solace/internal/shared/logger"
	"github.com/solacehq/solace/internal/shared/utils"
)

// EntitlementHandler answers the product's access question for the
// authenticated user.
type EntitlementHandler struct {
	getEntitlementUC getEntitlementUseCase
	logger           logger.Interface
}

func NewEntitlementHandler(getEntitlementUC getEntitlementUseCase, logger logger.Interface) *EntitlementHandler {
	return &EntitlementHandler{
		getEntitlementUC: getEntitlementUC,
		logger:           logger,
	}
}

type EntitlementResponse struct {
	Entitled  bool       `json:"entitled"`
	PlanID    uint       `json:"plan_id,omitempty"`
	Status    string     `json:"status,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// GetMyEntitlement handles GET /billing/entitlement
func (h *EntitlementHandler) GetMyEntitlement(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.getEntitlementUC.Execute(c.Request.Context(), billingUsecases.GetEntitlementQuery{UserID: userID})
	if err != nil {
		h.logger.Errorw("failed to get entitlement", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", EntitlementResponse{
		Entitled:  result.Entitled,
		PlanID:    result.PlanID,
		Status:    result.Status,
		ExpiresAt: result.ExpiresAt,
	})
}

func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}
