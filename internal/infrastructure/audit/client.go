// Package audit posts action records to the external audit collaborator.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ActionRecord is the payload the audit endpoint receives.
type ActionRecord struct {
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	ActionType  string    `json:"actionType"`
	EntityType  string    `json:"entityType"`
	EntityID    string    `json:"entityId"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Client implements application.AuditLog over HTTP. Callers invoke it after
// commit and treat failures as log-and-drop; the client itself only reports
// the error.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates an audit client for the given base URL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)

	return &Client{
		http:   http,
		logger: logger.Named("audit"),
	}
}

// LogAction posts one action record.
func (c *Client) LogAction(ctx context.Context, userID, username, actionType, entityType, entityID, description string) error {
	record := ActionRecord{
		UserID:      userID,
		Username:    username,
		ActionType:  actionType,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
		Timestamp:   time.Now().UTC(),
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(record).
		Post("/api/v1/audit/actions")
	if err != nil {
		return fmt.Errorf("audit request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("audit endpoint returned %d", resp.StatusCode())
	}

	c.logger.Debug("action logged",
		zap.String("actionType", actionType),
		zap.String("entityId", entityID))
	return nil
}
