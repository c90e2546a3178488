package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-backend/internal/apperrors"
)

func TestTranslatePgError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apperrors.Kind
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, apperrors.KindConflict},
		{"deadlock detected", &pgconn.PgError{Code: "40P01"}, apperrors.KindConflict},
		{"wrapped deadlock", fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40P01"}), apperrors.KindConflict},
		{"unique violation passes through", &pgconn.PgError{Code: "23505"}, apperrors.KindInternal},
		{"plain error passes through", errors.New("connection reset"), apperrors.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, apperrors.KindOf(translatePgError(tt.err)))
		})
	}
}

// seqTx stubs out the sequence read so invoice code generation can be
// exercised without a database.
type seqTx struct {
	pgx.Tx
	next int64
	err  error
}

func (tx seqTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return seqRow{next: tx.next, err: tx.err}
}

type seqRow struct {
	next int64
	err  error
}

func (r seqRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int64)) = r.next
	return nil
}

func TestNextInvoiceCode(t *testing.T) {
	tests := []struct {
		name string
		next int64
		want string
	}{
		{"first code is zero padded", 1, "INV-000001"},
		{"mid-range keeps six digits", 4321, "INV-004321"},
		{"wide values widen past the pad", 1234567, "INV-1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := nextInvoiceCode(context.Background(), seqTx{next: tt.next})
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestNextInvoiceCodeSequenceError(t *testing.T) {
	_, err := nextInvoiceCode(context.Background(), seqTx{err: errors.New("sequence missing")})
	assert.ErrorContains(t, err, "failed to get next invoice number")
}
