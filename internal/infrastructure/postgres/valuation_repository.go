package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hospimed/farmacia-api/internal/domain/entity"
	"github.com/hospimed/farmacia-api/internal/domain/repository"
)

var _ repository.ValuationRepository = (*ValuationRepo)(nil)

// ValuationRepo lectura de snapshot para valorización. Siempre trabaja sobre el
// pool: abre su propia transacción de solo lectura.
type ValuationRepo struct {
	pool *pgxpool.Pool
}

// NewValuationRepository construye el adaptador de valorización.
func NewValuationRepository(pool *pgxpool.Pool) *ValuationRepo {
	return &ValuationRepo{pool: pool}
}

// Snapshot lee el catálogo completo en una transacción REPEATABLE READ de solo
// lectura: una vista consistente aunque haya escrituras concurrentes, para que
// los porcentajes del reporte siempre sumen 100.
func (r *ValuationRepo) Snapshot(ctx context.Context) ([]*entity.Medicine, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		SELECT` + medicineColumns + `
		FROM medicines m
		LEFT JOIN categories c ON c.id = m.category_id`
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("snapshot medicines: %w", err)
	}
	defer rows.Close()

	var list []*entity.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit snapshot: %w", err)
	}
	return list, nil
}
