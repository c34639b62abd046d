package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agrifarm-platform/finance-service/internal/application"
	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// TransactionHandler exposes the coordinated business operations: sales,
// purchases, expenses, payments, production and corrections.
type TransactionHandler struct {
	coordinator *application.TransactionCoordinator
	ledger      *application.LedgerService
	logger      *zap.Logger
}

// NewTransactionHandler constructs the HTTP handler adapter.
func NewTransactionHandler(coordinator *application.TransactionCoordinator, ledger *application.LedgerService, logger *zap.Logger) *TransactionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransactionHandler{coordinator: coordinator, ledger: ledger, logger: logger}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, domain.NewValidationError("date", "must be YYYY-MM-DD")
	}
	return date, nil
}

type eggSaleRequest struct {
	PartyID      string `json:"partyId" binding:"required"`
	Date         string `json:"date"`
	Quantity     int64  `json:"quantity" binding:"required"`
	UnitPrice    string `json:"unitPrice" binding:"required"`
	ExchangeRate string `json:"exchangeRate"`
	Method       string `json:"method" binding:"required"`
	Notes        string `json:"notes"`
}

// RecordEggSale sells eggs.
func (h *TransactionHandler) RecordEggSale(c *gin.Context) {
	var req eggSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cmd := application.RecordEggSaleCommand{
		PartyID:   req.PartyID,
		Quantity:  req.Quantity,
		Method:    application.PaymentMethod(req.Method),
		Notes:     req.Notes,
		CreatedBy: c.GetHeader("X-User-ID"),
	}
	var err error
	if cmd.Date, err = parseDate(req.Date); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if cmd.UnitPrice, err = parseDecimalField(req.UnitPrice, "unitPrice"); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if cmd.ExchangeRate, err = parseDecimalField(req.ExchangeRate, "exchangeRate"); err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.coordinator.RecordEggSale(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type feedSaleRequest struct {
	PartyID      string `json:"partyId" binding:"required"`
	FeedID       string `json:"feedId" binding:"required"`
	Date         string `json:"date"`
	QuantityKg   string `json:"quantityKg" binding:"required"`
	UnitPrice    string `json:"unitPrice" binding:"required"`
	ExchangeRate string `json:"exchangeRate"`
	Method       string `json:"method" binding:"required"`
	Notes        string `json:"notes"`
}

// RecordFeedSale sells finished feed.
func (h *TransactionHandler) RecordFeedSale(c *gin.Context) {
	var req feedSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cmd := application.RecordFeedSaleCommand{
		PartyID:   req.PartyID,
		FeedID:    req.FeedID,
		Method:    application.PaymentMethod(req.Method),
		Notes:     req.Notes,
		CreatedBy: c.GetHeader("X-User-ID"),
	}
	var err error
	if cmd.Date, err = parseDate(req.Date); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if cmd.QuantityKg, err = parseDecimalField(req.QuantityKg, "quantityKg"); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if cmd.UnitPrice, err = parseDecimalField(req.UnitPrice, "unitPrice"); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if cmd.ExchangeRate, err = parseDecimalField(req.ExchangeRate, "exchangeRate"); err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.coordinator.RecordFeedSale(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type purchaseRequest struct {
	PartyID      string `json:"partyId" binding:"required"`
	MaterialID   string `json:"materialId" binding:"required"`
	Date         string `json:"date"`
	Quantity     string `json:"quantity" binding:"required"`
	UnitCost     string `json:"unitCost" binding:"required"`
	ExchangeRate string `json:"exchangeRate"`
	Method       string `json:"method" binding:"required"`
	Notes        string `json:"notes"`
}

// RecordPurchase buys raw material.
func (h *TransactionHandler) RecordPurchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cmd := application.RecordPurchaseCommand{
		PartyID:    req.PartyID,
		MaterialID: req.MaterialID,
		Method:     application.PaymentMethod(req.Method),
		Notes:      req.Notes,
		CreatedBy:  c.GetHeader("X-User-ID"),
	}
	var err error
	if cmd.Date, err = parseDate(req.Date); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if cmd.Quantity, err = parseDecimalField(req.Quantity, "quantity"); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if cmd.UnitCost, err = parseDecimalField(req.UnitCost, "unitCost"); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if cmd.ExchangeRate, err = parseDecimalField(req.ExchangeRate, "exchangeRate"); err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.coordinator.RecordPurchase(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type expenseRequest struct {
	PartyID      string `json:"partyId" binding:"required"`
	Date         string `json:"date"`
	Amount       string `json:"amount" binding:"required"`
	ExchangeRate string `json:"exchangeRate"`
	Category     string `json:"category" binding:"required"`
	Method       string `json:"method" binding:"required"`
	Notes        string `json:"notes"`
}

// RecordExpense records a general expense.
func (h *TransactionHandler) RecordExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cmd := application.RecordExpenseCommand{
		PartyID:   req.PartyID,
		Category:  req.Category,
		Method:    application.PaymentMethod(req.Method),
		Notes:     req.Notes,
		CreatedBy: c.GetHeader("X-User-ID"),
	}
	var err error
	if cmd.Date, err = parseDate(req.Date); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if cmd.Amount, err = parseDecimalField(req.Amount, "amount"); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if cmd.ExchangeRate, err = parseDecimalField(req.ExchangeRate, "exchangeRate"); err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.coordinator.RecordExpense(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type paymentRequest struct {
	PartyID      string `json:"partyId" binding:"required"`
	Date         string `json:"date"`
	Amount       string `json:"amount" binding:"required"`
	ExchangeRate string `json:"exchangeRate"`
	Direction    string `json:"direction" binding:"required"`
	Notes        string `json:"notes"`
}

// RecordPayment records a standalone receipt or disbursement.
func (h *TransactionHandler) RecordPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cmd := application.RecordPaymentCommand{
		PartyID:   req.PartyID,
		Direction: application.PaymentDirection(req.Direction),
		Notes:     req.Notes,
		CreatedBy: c.GetHeader("X-User-ID"),
	}
	var err error
	if cmd.Date, err = parseDate(req.Date); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if cmd.Amount, err = parseDecimalField(req.Amount, "amount"); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if cmd.ExchangeRate, err = parseDecimalField(req.ExchangeRate, "exchangeRate"); err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.coordinator.RecordPayment(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type produceBatchRequest struct {
	FormulaID  string `json:"formulaId" binding:"required"`
	FeedID     string `json:"feedId" binding:"required"`
	QuantityKg string `json:"quantityKg" binding:"required"`
}

// ProduceBatch runs one feed production.
func (h *TransactionHandler) ProduceBatch(c *gin.Context) {
	var req produceBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cmd := application.ProduceFeedBatchCommand{
		FormulaID:  req.FormulaID,
		FeedID:     req.FeedID,
		ProducedBy: c.GetHeader("X-User-ID"),
	}
	var err error
	if cmd.QuantityKg, err = parseDecimalField(req.QuantityKg, "quantityKg"); err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.coordinator.ProduceFeedBatch(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type adjustmentRequest struct {
	PartyID         string `json:"partyId" binding:"required"`
	Date            string `json:"date"`
	Description     string `json:"description" binding:"required"`
	DebitBase       string `json:"debitBase"`
	CreditBase      string `json:"creditBase"`
	DebitSecondary  string `json:"debitSecondary"`
	CreditSecondary string `json:"creditSecondary"`
	ExchangeRate    string `json:"exchangeRate"`
}

// RecordAdjustment posts an explicit correction entry.
func (h *TransactionHandler) RecordAdjustment(c *gin.Context) {
	var req adjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cmd := application.RecordManualAdjustmentCommand{
		PartyID:     req.PartyID,
		Description: req.Description,
		CreatedBy:   c.GetHeader("X-User-ID"),
	}
	var err error
	if cmd.Date, err = parseDate(req.Date); err != nil {
		respondError(c, h.logger, err)
		return
	}
	fields := []struct {
		value string
		name  string
		dst   *domain.Decimal
	}{
		{req.DebitBase, "debitBase", &cmd.DebitBase},
		{req.CreditBase, "creditBase", &cmd.CreditBase},
		{req.DebitSecondary, "debitSecondary", &cmd.DebitSecondary},
		{req.CreditSecondary, "creditSecondary", &cmd.CreditSecondary},
		{req.ExchangeRate, "exchangeRate", &cmd.ExchangeRate},
	}
	for _, f := range fields {
		if *f.dst, err = parseDecimalField(f.value, f.name); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	result, err := h.coordinator.RecordManualAdjustment(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type reverseRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReverseEntry posts the compensating entry for an existing one.
func (h *TransactionHandler) ReverseEntry(c *gin.Context) {
	var req reverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.coordinator.ReverseEntry(c.Request.Context(), c.Param("id"), req.Reason, c.GetHeader("X-User-ID"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetTransaction returns every entry posted by one business operation.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	entries, err := h.ledger.Transaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactionId": c.Param("id"), "entries": entries})
}
