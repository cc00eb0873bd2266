package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	billingUsecases "github.com/solacehq/solace/internal/application/billing/usecases"
	"github.com/solacehq/solace/internal/shared/logger"
	"github.com/solacehq/solace/internal/shared/utils"
)

// AccountTokenHandler manages the purchase tokens clients embed in store
// checkouts.
type AccountTokenHandler struct {
	issueUC      issueAccountTokenUseCase
	deactivateUC deactivateAccountTokenUseCase
	logger       logger.Interface
}

func NewAccountTokenHandler(
	issueUC issueAccountTokenUseCase,
	deactivateUC deactivateAccountTokenUseCase,
	logger logger.Interface,
) *AccountTokenHandler {
	return &AccountTokenHandler{
		issueUC:      issueUC,
		deactivateUC: deactivateUC,
		logger:       logger,
	}
}

type IssueAccountTokenResponse struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// Issue handles POST /billing/account-tokens
func (h *AccountTokenHandler) Issue(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.issueUC.Execute(c.Request.Context(), billingUsecases.IssueAccountTokenCommand{UserID: userID})
	if err != nil {
		h.logger.Errorw("failed to issue account token", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, IssueAccountTokenResponse{
		Token:     result.Token,
		CreatedAt: result.CreatedAt,
	}, "account token issued")
}

// Deactivate handles DELETE /billing/account-tokens/:token
func (h *AccountTokenHandler) Deactivate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	err := h.deactivateUC.Execute(c.Request.Context(), billingUsecases.DeactivateAccountTokenCommand{
		UserID: userID,
		Token:  c.Param("token"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
