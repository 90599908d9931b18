package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
)

type stubTx struct{ pgx.Tx }

func TestContextWithTxRoundTrip(t *testing.T) {
	tx := stubTx{}
	ctx := ContextWithTx(context.Background(), tx)

	got := TxFromContext(ctx)
	if got != tx {
		t.Errorf("TxFromContext = %v, want the stored transaction", got)
	}
}

func TestTxFromContextEmpty(t *testing.T) {
	if tx := TxFromContext(context.Background()); tx != nil {
		t.Errorf("expected nil without a transaction, got %v", tx)
	}
}
