package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	billingUsecases "github.com/solacehq/solace/internal/application/billing/usecases"
	"github.com/solacehq/solace/internal/shared/logger"
	"github.com/solacehq/solace/internal/shared/utils"
)

// AccountLinkHandler records provider-side identifiers against the
// authenticated user so later webhooks resolve.
type AccountLinkHandler struct {
	linkUC linkExternalAccountUseCase
	logger logger.Interface
}

func NewAccountLinkHandler(linkUC linkExternalAccountUseCase, logger logger.Interface) *AccountLinkHandler {
	return &AccountLinkHandler{
		linkUC: linkUC,
		logger: logger,
	}
}

type CreateAccountLinkRequest struct {
	Provider   string `json:"provider" validate:"required"`
	Kind       string `json:"kind" validate:"required,oneof=obfuscated_account obfuscated_profile customer"`
	ExternalID string `json:"external_id" validate:"required,max=191"`
}

// Create handles POST /billing/links
func (h *AccountLinkHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req CreateAccountLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	err := h.linkUC.Execute(c.Request.Context(), billingUsecases.LinkExternalAccountCommand{
		UserID:     userID,
		Provider:   req.Provider,
		Kind:       req.Kind,
		ExternalID: req.ExternalID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "account link recorded", nil)
}
