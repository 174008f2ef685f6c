package postgresql

import (
	"context"

	"github.com/lianhui-erp/payroll-engine-go/internal/pkg/database"
)

// GetQuerier returns the transaction carried by the context when one is
// active, otherwise the pool. Repositories use it for every statement so
// calls issued inside database.WithTx share the transaction.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}
