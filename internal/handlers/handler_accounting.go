package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/coa_ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/coa_ledger_engine/internal/dto"
	"github.com/SscSPs/coa_ledger_engine/internal/middleware"
)

// accountingHandler handles HTTP requests for product account mappings.
type accountingHandler struct {
	mappingService    portssvc.MappingSvcFacade
	accountingService portssvc.AccountingReaderSvcFacade
}

// productURI identifies the product addressed by the request path.
type productURI struct {
	ProductType string `uri:"productType" binding:"required,product_type"`
	ProductID   int64  `uri:"productID" binding:"required,gt=0"`
}

type readAccountingParams struct {
	Mode string `form:"accountingMode" binding:"required,accounting_mode"`
}

// RegisterAccountingRoutes registers the product accounting routes.
func RegisterAccountingRoutes(rg *gin.RouterGroup, mappingService portssvc.MappingSvcFacade, accountingService portssvc.AccountingReaderSvcFacade) {
	h := &accountingHandler{
		mappingService:    mappingService,
		accountingService: accountingService,
	}

	accounting := rg.Group("/products/:productType/:productID/accounting")
	{
		accounting.PUT("", h.saveProductAccounting)
		accounting.GET("", h.readAccounting)
		accounting.DELETE("", h.deleteAllMappings)
		accounting.GET("/payment-channels", h.listPaymentChannelMappings)
		accounting.GET("/charges", h.listChargeIncomeMappings)
		accounting.PUT("/:family", h.reconcile)
	}
}

// bindProduct reads the product path parameters, answering 400 itself on failure.
func bindProduct(c *gin.Context) (int64, domain.ProductType, bool) {
	var uri productURI
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid product path", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product path: " + err.Error()})
		return 0, "", false
	}
	productType, _ := domain.ParseProductType(uri.ProductType)
	return uri.ProductID, productType, true
}

// saveProductAccounting handles PUT /products/:productType/:productID/accounting.
func (h *accountingHandler) saveProductAccounting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID, productType, ok := bindProduct(c)
	if !ok {
		return
	}

	var req dto.SaveAccountingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveProductAccounting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.ProductID = productID
	req.ProductType = productType
	req.Mode, _ = domain.ParseAccountingMode(string(req.Mode))

	changes, err := h.mappingService.SaveProductAccounting(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to save product accounting")
		return
	}
	c.JSON(http.StatusOK, dto.ChangeSetResponse{ProductID: productID, ProductType: productType, Changes: changes})
}

// reconcile handles PUT /products/:productType/:productID/accounting/:family.
func (h *accountingHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID, productType, ok := bindProduct(c)
	if !ok {
		return
	}
	family, ok := domain.ParseSlotFamily(c.Param("family"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown mapping family: " + c.Param("family")})
		return
	}

	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Reconcile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.ProductID = productID
	req.ProductType = productType
	req.Family = family
	req.Mode, _ = domain.ParseAccountingMode(string(req.Mode))

	changes, err := h.mappingService.Reconcile(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to reconcile product mappings")
		return
	}
	c.JSON(http.StatusOK, dto.ChangeSetResponse{ProductID: productID, ProductType: productType, Changes: changes})
}

// readAccounting handles GET /products/:productType/:productID/accounting.
func (h *accountingHandler) readAccounting(c *gin.Context) {
	productID, productType, ok := bindProduct(c)
	if !ok {
		return
	}
	var params readAccountingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	mode, _ := domain.ParseAccountingMode(params.Mode)

	view, err := h.accountingService.ReadAccounting(c.Request.Context(), productID, productType, mode)
	if err != nil {
		respondError(c, err, "Failed to read product accounting")
		return
	}
	c.JSON(http.StatusOK, view)
}

// deleteAllMappings handles DELETE /products/:productType/:productID/accounting.
func (h *accountingHandler) deleteAllMappings(c *gin.Context) {
	productID, productType, ok := bindProduct(c)
	if !ok {
		return
	}

	changes, err := h.mappingService.DeleteAllMappings(c.Request.Context(), productID, productType)
	if err != nil {
		respondError(c, err, "Failed to delete product mappings")
		return
	}
	c.JSON(http.StatusOK, dto.ChangeSetResponse{ProductID: productID, ProductType: productType, Changes: changes})
}

func (h *accountingHandler) listPaymentChannelMappings(c *gin.Context) {
	productID, productType, ok := bindProduct(c)
	if !ok {
		return
	}

	mappings, err := h.accountingService.ListPaymentChannelMappings(c.Request.Context(), productID, productType)
	if err != nil {
		respondError(c, err, "Failed to list payment channel mappings")
		return
	}
	c.JSON(http.StatusOK, mappings)
}

func (h *accountingHandler) listChargeIncomeMappings(c *gin.Context) {
	productID, productType, ok := bindProduct(c)
	if !ok {
		return
	}
	var params dto.ListChargeMappingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	mappings, err := h.accountingService.ListChargeIncomeMappings(c.Request.Context(), productID, productType, params.Penalty)
	if err != nil {
		respondError(c, err, "Failed to list charge mappings")
		return
	}
	c.JSON(http.StatusOK, mappings)
}
