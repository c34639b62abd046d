package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agrifarm-platform/finance-service/internal/domain"
)

type mongoTx struct {
	ctx mongo.SessionContext
}

func (t mongoTx) Context() context.Context { return t.ctx }

// UnitOfWork implements domain.UnitOfWork on a MongoDB session. Every write
// issued through the Tx's context participates in the same transaction;
// returning an error from fn aborts it whole.
type UnitOfWork struct {
	client *Client
}

// NewUnitOfWork creates a unit of work factory bound to the client.
func NewUnitOfWork(client *Client) *UnitOfWork {
	return &UnitOfWork{client: client}
}

// Execute implements domain.UnitOfWork.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(tx domain.Tx) error) error {
	session, err := u.client.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(mongoTx{ctx: sessCtx})
	})
	return err
}
