package delivery

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// PostgresLedger keeps assignments in the delivery_assignments table
// (migrations/0001_delivery_assignments.sql), which doubles as an audit trail.
type PostgresLedger struct {
	db    *sql.DB
	scope string
}

func NewPostgresLedger(db *sql.DB, scope string) *PostgresLedger {
	return &PostgresLedger{db: db, scope: scope}
}

func (l *PostgresLedger) Has(ctx context.Context, orderID string) (bool, error) {
	var exists bool
	err := l.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM delivery_assignments
			WHERE scope = $1 AND order_id = $2
		)
	`, l.scope, orderID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("postgres ledger lookup: %w", err)
	}
	return exists, nil
}

func (l *PostgresLedger) Lookup(ctx context.Context, orderIDs []string) (map[string]bool, error) {
	found := make(map[string]bool, len(orderIDs))
	if len(orderIDs) == 0 {
		return found, nil
	}
	rows, err := l.db.QueryContext(ctx, `
		SELECT order_id FROM delivery_assignments
		WHERE scope = $1 AND order_id = ANY($2)
	`, l.scope, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("postgres ledger lookup: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("postgres ledger scan: %w", err)
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres ledger lookup: %w", err)
	}
	return found, nil
}

func (l *PostgresLedger) Add(ctx context.Context, orderID string) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO delivery_assignments (scope, order_id)
		VALUES ($1, $2)
		ON CONFLICT (scope, order_id) DO NOTHING
	`, l.scope, orderID)
	if err != nil {
		return fmt.Errorf("postgres ledger add: %w", err)
	}
	return nil
}
