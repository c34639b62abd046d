package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agrifarm-platform/finance-service/internal/application"
	"github.com/agrifarm-platform/finance-service/internal/domain"
	"github.com/agrifarm-platform/finance-service/pkg/apperrors"
)

func respondError(c *gin.Context, logger *zap.Logger, err error) {
	app := apperrors.FromDomain(err)
	if app.HTTPStatus >= 500 {
		logger.Error("request failed", zap.Error(err))
	} else {
		logger.Warn("request rejected", zap.Error(err))
	}
	c.JSON(app.HTTPStatus, gin.H{"error": app})
}

// parseDecimal parses an optional amount string; empty means zero.
func parseDecimal(s string) (domain.Decimal, error) {
	if s == "" {
		return domain.ZeroDecimal(), nil
	}
	return domain.DecimalFromString(s)
}

func parseDecimalField(s, field string) (domain.Decimal, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return domain.Decimal{}, domain.NewValidationError(field, "is not a valid decimal")
	}
	return d, nil
}

// respondCached serves a report from the cache when possible, otherwise runs
// the query and stores the marshaled result. The coordinator invalidates the
// matching key prefixes after every committed write, so stale reports never
// outlive a mutation.
func respondCached(c *gin.Context, logger *zap.Logger, cache application.ReportCache, key string, ttl time.Duration, load func() (any, error)) {
	if cache != nil {
		if body, ok := cache.Get(key); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			return
		}
	}

	result, err := load()
	if err != nil {
		respondError(c, logger, err)
		return
	}

	if cache != nil {
		if body, err := json.Marshal(result); err == nil {
			cache.Set(key, body, ttl)
		}
	}
	c.JSON(http.StatusOK, result)
}
