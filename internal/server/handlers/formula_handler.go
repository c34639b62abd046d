package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agrifarm-platform/finance-service/internal/application"
	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// FormulaHandler exposes feed formula management.
type FormulaHandler struct {
	formulas *application.FormulaService
	batches  domain.FeedBatchRepository
	logger   *zap.Logger
}

// NewFormulaHandler constructs the HTTP handler adapter.
func NewFormulaHandler(formulas *application.FormulaService, batches domain.FeedBatchRepository, logger *zap.Logger) *FormulaHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormulaHandler{formulas: formulas, batches: batches, logger: logger}
}

type formulaIngredientRequest struct {
	MaterialID string `json:"materialId" binding:"required"`
	Percentage string `json:"percentage" binding:"required"`
}

type createFormulaRequest struct {
	Name        string                     `json:"name" binding:"required"`
	Ingredients []formulaIngredientRequest `json:"ingredients" binding:"required"`
}

// Create registers a formula.
func (h *FormulaHandler) Create(c *gin.Context) {
	var req createFormulaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ingredients := make([]domain.FormulaIngredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		pct, err := parseDecimalField(ing.Percentage, "percentage")
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		ingredients = append(ingredients, domain.FormulaIngredient{
			MaterialID: ing.MaterialID,
			Percentage: pct,
		})
	}

	formula, err := h.formulas.Create(c.Request.Context(), application.CreateFormulaCommand{
		Name:        req.Name,
		Ingredients: ingredients,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, formula)
}

// Get returns one formula.
func (h *FormulaHandler) Get(c *gin.Context) {
	formula, err := h.formulas.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, formula)
}

// List returns all formulas.
func (h *FormulaHandler) List(c *gin.Context) {
	formulas, err := h.formulas.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"formulas": formulas})
}

// Batches lists recent production runs of one formula.
func (h *FormulaHandler) Batches(c *gin.Context) {
	batches, err := h.batches.FindByFormula(c.Request.Context(), c.Param("id"), 50)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batches": batches})
}
