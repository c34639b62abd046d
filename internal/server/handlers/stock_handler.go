package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agrifarm-platform/finance-service/internal/application"
	"github.com/agrifarm-platform/finance-service/internal/domain"
)

// StockHandler exposes stock registration, replenishment and queries.
type StockHandler struct {
	stock    *application.StockService
	cache    application.ReportCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewStockHandler constructs the HTTP handler adapter. The cache may be nil.
func NewStockHandler(stock *application.StockService, cache application.ReportCache, cacheTTL time.Duration, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{stock: stock, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

type createMaterialRequest struct {
	Name              string `json:"name" binding:"required"`
	Unit              string `json:"unit"`
	LowStockThreshold string `json:"lowStockThreshold"`
}

// CreateMaterial registers a raw material.
func (h *StockHandler) CreateMaterial(c *gin.Context) {
	var req createMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	threshold, err := parseDecimalField(req.LowStockThreshold, "lowStockThreshold")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	material, err := h.stock.CreateMaterial(c.Request.Context(), application.CreateMaterialCommand{
		Name:              req.Name,
		Unit:              req.Unit,
		LowStockThreshold: threshold,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, material)
}

// ListMaterials lists raw materials.
func (h *StockHandler) ListMaterials(c *gin.Context) {
	materials, err := h.stock.Materials(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"materials": materials})
}

// GetMaterial returns one raw material.
func (h *StockHandler) GetMaterial(c *gin.Context) {
	material, err := h.stock.Material(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

type createFeedRequest struct {
	Name              string `json:"name" binding:"required"`
	LowStockThreshold string `json:"lowStockThreshold"`
}

// CreateFeed registers a finished feed.
func (h *StockHandler) CreateFeed(c *gin.Context) {
	var req createFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	threshold, err := parseDecimalField(req.LowStockThreshold, "lowStockThreshold")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	feed, err := h.stock.CreateFeed(c.Request.Context(), application.CreateFeedCommand{
		Name:              req.Name,
		LowStockThreshold: threshold,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, feed)
}

// ListFeeds lists finished feeds.
func (h *StockHandler) ListFeeds(c *gin.Context) {
	feeds, err := h.stock.Feeds(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feeds": feeds})
}

// GetEggStock returns the graded egg stock.
func (h *StockHandler) GetEggStock(c *gin.Context) {
	stock, err := h.stock.EggStock(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

type addEggLayRequest struct {
	Grade             string `json:"grade" binding:"required"`
	Count             int64  `json:"count" binding:"required"`
	UnitCostBase      string `json:"unitCostBase"`
	UnitCostSecondary string `json:"unitCostSecondary"`
}

// AddEggLay records produced eggs into one grade.
func (h *StockHandler) AddEggLay(c *gin.Context) {
	var req addEggLayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	costBase, err := parseDecimalField(req.UnitCostBase, "unitCostBase")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	costSecondary, err := parseDecimalField(req.UnitCostSecondary, "unitCostSecondary")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	stock, err := h.stock.AddEggLay(c.Request.Context(), application.AddEggLayCommand{
		Grade:             domain.EggGrade(req.Grade),
		Count:             req.Count,
		UnitCostBase:      costBase,
		UnitCostSecondary: costSecondary,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// GetPackaging returns the packaging stock.
func (h *StockHandler) GetPackaging(c *gin.Context) {
	stock, err := h.stock.PackagingStock(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

type replenishPackagingRequest struct {
	Cartons        int64  `json:"cartons"`
	Trays          int64  `json:"trays"`
	UnitCostCarton string `json:"unitCostCarton"`
	UnitCostTray   string `json:"unitCostTray"`
}

// ReplenishPackaging adds cartons and trays.
func (h *StockHandler) ReplenishPackaging(c *gin.Context) {
	var req replenishPackagingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	costCarton, err := parseDecimalField(req.UnitCostCarton, "unitCostCarton")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	costTray, err := parseDecimalField(req.UnitCostTray, "unitCostTray")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	stock, err := h.stock.ReplenishPackaging(c.Request.Context(), application.ReplenishPackagingCommand{
		Cartons:        req.Cartons,
		Trays:          req.Trays,
		UnitCostCarton: costCarton,
		UnitCostTray:   costTray,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// LowStock returns everything at or below its threshold.
func (h *StockHandler) LowStock(c *gin.Context) {
	respondCached(c, h.logger, h.cache, "stock:low", h.cacheTTL, func() (any, error) {
		return h.stock.LowStockReport(c.Request.Context())
	})
}
