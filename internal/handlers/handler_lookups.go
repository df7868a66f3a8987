package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/tx_classify_app/internal/core/domain"
	portssvc "github.com/SscSPs/tx_classify_app/internal/core/ports/services"
	"github.com/SscSPs/tx_classify_app/internal/dto"
	"github.com/SscSPs/tx_classify_app/internal/middleware"
)

type lookupHandler struct {
	lookupService portssvc.LookupSvcFacade
}

// RegisterLookupRoutes registers the read-only reference lists.
func RegisterLookupRoutes(rg *gin.RouterGroup, lookupService portssvc.LookupSvcFacade) {
	h := &lookupHandler{lookupService: lookupService}

	rg.GET("/transaction-types/", h.listTransactionTypes)
	rg.GET("/cost-centres/", h.listCostCentres)
	rg.GET("/entities/", h.listEntities)
	rg.GET("/assets/", h.listAssets)
	rg.GET("/contracts/", h.listContracts)
	rg.GET("/banks/", h.listBankAccounts)
}

// lookup runs fn with the request session and writes its result.
func lookup[T any](c *gin.Context, action string, fn func(session domain.Session) (T, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		unauthorized(c, logger)
		return
	}
	out, err := fn(session)
	if err != nil {
		writeServiceError(c, logger, err, action)
		return
	}
	c.JSON(http.StatusOK, out)
}

// listTransactionTypes godoc
// @Summary List transaction types
// @Tags lookups
// @Produce json
// @Param status query string false "Active to list active types only"
// @Success 200 {array} dto.TransactionTypeResponse
// @Security BearerAuth
// @Router /transaction-types/ [get]
func (h *lookupHandler) listTransactionTypes(c *gin.Context) {
	activeOnly := strings.EqualFold(c.Query("status"), domain.StatusActive)
	lookup(c, "List transaction types", func(session domain.Session) ([]dto.TransactionTypeResponse, error) {
		types, err := h.lookupService.ListTransactionTypes(c.Request.Context(), session, activeOnly)
		return dto.ToTransactionTypeResponses(types), err
	})
}

// listCostCentres godoc
// @Summary List cost centres
// @Tags lookups
// @Produce json
// @Param is_active query string false "true to list active centres only"
// @Success 200 {array} dto.CostCentreResponse
// @Security BearerAuth
// @Router /cost-centres/ [get]
func (h *lookupHandler) listCostCentres(c *gin.Context) {
	switch c.Query("is_active") {
	case "true", "True", "1":
		h.costCentres(c, true)
	default:
		h.costCentres(c, false)
	}
}

func (h *lookupHandler) costCentres(c *gin.Context, activeOnly bool) {
	lookup(c, "List cost centres", func(session domain.Session) ([]dto.CostCentreResponse, error) {
		centres, err := h.lookupService.ListCostCentres(c.Request.Context(), session, activeOnly)
		return dto.ToCostCentreResponses(centres), err
	})
}

// listEntities godoc
// @Summary List entities
// @Tags lookups
// @Produce json
// @Success 200 {array} dto.EntityResponse
// @Security BearerAuth
// @Router /entities/ [get]
func (h *lookupHandler) listEntities(c *gin.Context) {
	lookup(c, "List entities", func(session domain.Session) ([]dto.EntityResponse, error) {
		entities, err := h.lookupService.ListEntities(c.Request.Context(), session)
		return dto.ToEntityResponses(entities), err
	})
}

// listAssets godoc
// @Summary List assets
// @Tags lookups
// @Produce json
// @Success 200 {array} dto.AssetResponse
// @Security BearerAuth
// @Router /assets/ [get]
func (h *lookupHandler) listAssets(c *gin.Context) {
	lookup(c, "List assets", func(session domain.Session) ([]dto.AssetResponse, error) {
		assets, err := h.lookupService.ListAssets(c.Request.Context(), session)
		return dto.ToAssetResponses(assets), err
	})
}

// listContracts godoc
// @Summary List contracts
// @Tags lookups
// @Produce json
// @Success 200 {array} dto.ContractResponse
// @Security BearerAuth
// @Router /contracts/ [get]
func (h *lookupHandler) listContracts(c *gin.Context) {
	lookup(c, "List contracts", func(session domain.Session) ([]dto.ContractResponse, error) {
		contracts, err := h.lookupService.ListContracts(c.Request.Context(), session)
		return dto.ToContractResponses(contracts), err
	})
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Tags lookups
// @Produce json
// @Success 200 {array} dto.BankAccountResponse
// @Security BearerAuth
// @Router /banks/ [get]
func (h *lookupHandler) listBankAccounts(c *gin.Context) {
	lookup(c, "List bank accounts", func(session domain.Session) ([]dto.BankAccountResponse, error) {
		accounts, err := h.lookupService.ListBankAccounts(c.Request.Context(), session)
		return dto.ToBankAccountResponses(accounts), err
	})
}
