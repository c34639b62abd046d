package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agrifarm-platform/finance-service/internal/application"
	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// PartyHandler exposes party management and the derived ledger queries.
type PartyHandler struct {
	parties  *application.PartyService
	ledger   *application.LedgerService
	cache    application.ReportCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewPartyHandler constructs the HTTP handler adapter. The cache may be nil.
func NewPartyHandler(parties *application.PartyService, ledger *application.LedgerService, cache application.ReportCache, cacheTTL time.Duration, logger *zap.Logger) *PartyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PartyHandler{parties: parties, ledger: ledger, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

type createPartyRequest struct {
	Name    string `json:"name" binding:"required"`
	Kind    string `json:"kind" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Create registers a new party.
func (h *PartyHandler) Create(c *gin.Context) {
	var req createPartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	party, err := h.parties.Create(c.Request.Context(), application.CreatePartyCommand{
		Name:    req.Name,
		Kind:    domain.PartyKind(req.Kind),
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, party)
}

type updatePartyRequest struct {
	Name    *string `json:"name"`
	Kind    *string `json:"kind"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// Update applies an explicit field update.
func (h *PartyHandler) Update(c *gin.Context) {
	var req updatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	update := domain.PartyUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}
	if req.Kind != nil {
		kind := domain.PartyKind(*req.Kind)
		update.Kind = &kind
	}

	party, err := h.parties.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, party)
}

// Get returns one party.
func (h *PartyHandler) Get(c *gin.Context) {
	party, err := h.parties.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, party)
}

// List returns all parties.
func (h *PartyHandler) List(c *gin.Context) {
	parties, err := h.parties.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"parties": parties})
}

// Delete removes a party, optionally force-settling its ledger first.
func (h *PartyHandler) Delete(c *gin.Context) {
	force := c.Query("force") == "true"
	deletedBy := c.GetHeader("X-User-ID")

	if err := h.parties.Delete(c.Request.Context(), c.Param("id"), force, deletedBy); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Balance returns the party balance in one currency.
func (h *PartyHandler) Balance(c *gin.Context) {
	role := domain.CurrencyBase
	if c.Query("currency") == "secondary" {
		role = domain.CurrencySecondary
	}

	balance, err := h.ledger.Balance(c.Request.Context(), c.Param("id"), role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"partyId": c.Param("id"), "balance": balance})
}

// Statement returns the running-balance statement.
func (h *PartyHandler) Statement(c *gin.Context) {
	role := domain.CurrencyBase
	if c.Query("currency") == "secondary" {
		role = domain.CurrencySecondary
	}

	partyID := c.Param("id")
	key := fmt.Sprintf("parties:%s:statement:%s", partyID, role)
	respondCached(c, h.logger, h.cache, key, h.cacheTTL, func() (any, error) {
		seq, err := h.ledger.RunningBalance(c.Request.Context(), partyID, role)
		if err != nil {
			return nil, err
		}
		lines := []domain.RunningBalanceLine{}
		for line := range seq {
			lines = append(lines, line)
		}
		return gin.H{"partyId": partyID, "lines": lines}, nil
	})
}

// Summary returns per-currency totals for the party.
func (h *PartyHandler) Summary(c *gin.Context) {
	partyID := c.Param("id")
	respondCached(c, h.logger, h.cache, "parties:"+partyID+":summary", h.cacheTTL, func() (any, error) {
		return h.ledger.Summary(c.Request.Context(), partyID)
	})
}
