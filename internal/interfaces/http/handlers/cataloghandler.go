package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	billingUsecases "github.com/solacehq/solace/internal/application/billing/usecases"
	"github.com/solacehq/solace/internal/shared/logger"
	"github.com/solacehq/solace/internal/shared/utils"
)

// CatalogHandler exposes administrative maintenance of the product catalog.
type CatalogHandler struct {
	upsertUC upsertCatalogEntryUseCase
	listUC   listCatalogEntriesUseCase
	logger   logger.Interface
}

func NewCatalogHandler(
	upsertUC upsertCatalogEntryUseCase,
	listUC listCatalogEntriesUseCase,
	logger logger.Interface,
) *CatalogHandler {
	return &CatalogHandler{
		upsertUC: upsertUC,
		listUC:   listUC,
		logger:   logger,
	}
}

type UpsertCatalogEntryRequest struct {
	Provider       string `json:"provider" binding:"required"`
	StoreProductID string `json:"store_product_id" binding:"required"`
	Environment    string `json:"environment" binding:"required,oneof=production sandbox"`
	PlanID         uint   `json:"plan_id" binding:"required"`
	Active         *bool  `json:"active"`
}

// Upsert handles POST /admin/billing/catalog
func (h *CatalogHandler) Upsert(c *gin.Context) {
	var req UpsertCatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	err := h.upsertUC.Execute(c.Request.Context(), billingUsecases.UpsertCatalogEntryCommand{
		Provider:       req.Provider,
		StoreProductID: req.StoreProductID,
		Environment:    req.Environment,
		PlanID:         req.PlanID,
		Active:         active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "catalog entry upserted", nil)
}

// List handles GET /admin/billing/catalog
func (h *CatalogHandler) List(c *gin.Context) {
	entries, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"entries": entries})
}
