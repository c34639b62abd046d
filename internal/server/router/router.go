package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agrifarm-platform/finance-service/internal/server/handlers"
)

// New builds the gin engine with all finance routes wired.
func New(
	parties *handlers.PartyHandler,
	stock *handlers.StockHandler,
	formulas *handlers.FormulaHandler,
	transactions *handlers.TransactionHandler,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		p := v1.Group("/parties")
		{
			p.POST("", parties.Create)
			p.GET("", parties.List)
			p.GET("/:id", parties.Get)
			p.PATCH("/:id", parties.Update)
			p.DELETE("/:id", parties.Delete)
			p.GET("/:id/balance", parties.Balance)
			p.GET("/:id/statement", parties.Statement)
			p.GET("/:id/summary", parties.Summary)
		}

		s := v1.Group("/stock")
		{
			s.POST("/materials", stock.CreateMaterial)
			s.GET("/materials", stock.ListMaterials)
			s.GET("/materials/:id", stock.GetMaterial)
			s.POST("/feeds", stock.CreateFeed)
			s.GET("/feeds", stock.ListFeeds)
			s.GET("/eggs", stock.GetEggStock)
			s.POST("/eggs/lay", stock.AddEggLay)
			s.GET("/packaging", stock.GetPackaging)
			s.POST("/packaging/replenish", stock.ReplenishPackaging)
			s.GET("/low", stock.LowStock)
		}

		f := v1.Group("/formulas")
		{
			f.POST("", formulas.Create)
			f.GET("", formulas.List)
			f.GET("/:id", formulas.Get)
			f.GET("/:id/batches", formulas.Batches)
		}

		t := v1.Group("/transactions")
		{
			t.POST("/sales/eggs", transactions.RecordEggSale)
			t.POST("/sales/feed", transactions.RecordFeedSale)
			t.POST("/purchases", transactions.RecordPurchase)
			t.POST("/expenses", transactions.RecordExpense)
			t.POST("/payments", transactions.RecordPayment)
			t.POST("/batches", transactions.ProduceBatch)
			t.POST("/adjustments", transactions.RecordAdjustment)
			t.GET("/:id", transactions.GetTransaction)
		}

		v1.POST("/ledger/entries/:id/reverse", transactions.ReverseEntry)
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
