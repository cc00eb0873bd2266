package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	billingUsecases "github.com/solacehq/solace/internal/application/billing/usecases"
	"github.com/solacehq/solace/internal/shared/logger"
	"github.com/solacehq/solace/internal/shared/utils"
)

// QuarantineHandler lets operators inspect and replay ledgered events.
type QuarantineHandler struct {
	listUC   listQuarantinedEventsUseCase
	replayUC replayWebhookEventUseCase
	logger   logger.Interface
}

func NewQuarantineHandler(
	listUC listQuarantinedEventsUseCase,
	replayUC replayWebhookEventUseCase,
	logger logger.Interface,
) *QuarantineHandler {
	return &QuarantineHandler{
		listUC:   listUC,
		replayUC: replayUC,
		logger:   logger,
	}
}

// List handles GET /admin/billing/quarantine
// Query parameters:
//   - outcome: ledger outcome to list, defaults to quarantined_unlinked
func (h *QuarantineHandler) List(c *gin.Context) {
	events, err := h.listUC.Execute(c.Request.Context(), billingUsecases.ListQuarantinedEventsQuery{
		Outcome: c.Query("outcome"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"events": events})
}

// Replay handles POST /admin/billing/quarantine/:id/replay
func (h *QuarantineHandler) Replay(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid event ID")
		return
	}

	result, err := h.replayUC.Execute(c.Request.Context(), billingUsecases.ReplayWebhookEventCommand{
		EventID: uint(eventID),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "event replayed", gin.H{
		"outcome":     string(result.Outcome),
		"lineage_sid": result.LineageSID,
	})
}
