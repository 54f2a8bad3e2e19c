package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/coa_ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/coa_ledger_engine/internal/dto"
	"github.com/SscSPs/coa_ledger_engine/internal/middleware"
)

// cashierHandler handles cash-drawer postings and journal lookups.
type cashierHandler struct {
	tellerService portssvc.TellerLedgerSvcFacade
}

// RegisterCashierRoutes registers the cashier and journal entry routes.
func RegisterCashierRoutes(rg *gin.RouterGroup, tellerService portssvc.TellerLedgerSvcFacade) {
	h := &cashierHandler{tellerService: tellerService}

	cashiers := rg.Group("/cashiers/:cashierID")
	{
		cashiers.POST("/transactions", h.postCashierEvent)
		cashiers.GET("/transactions", h.listCashierTransactions)
	}
	rg.GET("/journal-entries/:transactionID", h.getJournalEntries)
}

func cashierIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("cashierID"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cashier ID"})
		return 0, false
	}
	return id, true
}

// postCashierEvent handles POST /cashiers/:cashierID/transactions.
func (h *cashierHandler) postCashierEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cashierID, ok := cashierIDParam(c)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.PostCashierEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostCashierEvent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.CashierID = cashierID
	req.Type = domain.CashierTxnType(strings.ToUpper(string(req.Type)))

	logger.Info("Received cashier event",
		slog.Int64("cashier_id", cashierID),
		slog.String("txn_type", string(req.Type)),
		slog.String("amount", req.Amount.String()))

	result, err := h.tellerService.PostCashierEvent(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to post cashier transaction")
		return
	}
	c.JSON(http.StatusCreated, result)
}

// listCashierTransactions handles GET /cashiers/:cashierID/transactions.
func (h *cashierHandler) listCashierTransactions(c *gin.Context) {
	cashierID, ok := cashierIDParam(c)
	if !ok {
		return
	}
	var params dto.ListCashierTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.tellerService.ListCashierTransactions(c.Request.Context(), cashierID, params)
	if err != nil {
		respondError(c, err, "Failed to list cashier transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getJournalEntries handles GET /journal-entries/:transactionID.
func (h *cashierHandler) getJournalEntries(c *gin.Context) {
	resp, err := h.tellerService.GetJournalEntries(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}
