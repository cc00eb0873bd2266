package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	billingUsecases "github.com/solacehq/solace/internal/application/billing/usecases"
	vo "github.com/solacehq/solace/internal/domain/billing/valueobjects"
	"github.com/solacehq/solace/internal/shared/errors"
	"github.com/solacehq/solace/internal/shared/logger"
	"github.com/solacehq/solace/internal/shared/utils"
)

// maxWebhookBodyBytes caps webhook bodies; store notifications are a few KB.
const maxWebhookBodyBytes = 1 << 20

// WebhookHandler receives provider billing notifications. Any terminal
// outcome, including quarantine and rejection, answers 2xx so providers stop
// redelivering; only infrastructure failures answer 5xx and draw a retry.
type WebhookHandler struct {
	applyUC applyNotificationUseCase
	logger  logger.Interface
}

func NewWebhookHandler(applyUC applyNotificationUseCase, logger logger.Interface) *WebhookHandler {
	return &WebhookHandler{
		applyUC: applyUC,
		logger:  logger,
	}
}

// HandleAppleStore handles POST /billing/webhooks/apple
func (h *WebhookHandler) HandleAppleStore(c *gin.Context) {
	h.handle(c, vo.ProviderAppleStore)
}

// HandleGooglePlay handles POST /billing/webhooks/google
func (h *WebhookHandler) HandleGooglePlay(c *gin.Context) {
	h.handle(c, vo.ProviderGooglePlay)
}

// HandleStripe handles POST /billing/webhooks/stripe
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	h.handle(c, vo.ProviderStripe)
}

func (h *WebhookHandler) handle(c *gin.Context, provider vo.Provider) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		h.logger.Warnw("failed to read webhook body", "provider", provider.String(), "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	result, err := h.applyUC.Execute(c.Request.Context(), billingUsecases.ApplyNotificationCommand{
		Provider: provider,
		Payload:  payload,
	})
	if err != nil {
		if errors.IsValidationError(err) {
			utils.ErrorResponseWithError(c, err)
			return
		}
		h.logger.Errorw("failed to process webhook", "provider", provider.String(), "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to process notification")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"outcome":   string(result.Outcome),
		"event_sid": result.EventSID,
	})
}
