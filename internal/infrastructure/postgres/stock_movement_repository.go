package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hospimed/farmacia-api/internal/domain/entity"
	"github.com/hospimed/farmacia-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del historial de movimientos sobre PostgreSQL
// (usable con pool o tx). La tabla stock_movements solo recibe INSERT: no hay
// UPDATE ni DELETE en ningún camino del código.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `
	id, medicine_id, type, quantity, previous_stock, new_stock,
	reference_type, reference_id, adjustment_type, reason, notes, created_by, created_at`

// Create persiste un movimiento. Se ejecuta dentro de la misma transacción que
// la actualización de stock correspondiente.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.MedicineID, m.Type, m.Quantity, m.PreviousStock, m.NewStock,
		nullable(m.ReferenceType), nullable(m.ReferenceID),
		nullable(m.AdjustmentType), nullable(m.Reason),
		m.Notes, nullable(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List devuelve movimientos filtrados, del más reciente al más antiguo.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	where, args := buildMovementWhere(filter)
	query := `
		SELECT` + movementColumns + `
		FROM stock_movements` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// Count devuelve el total de movimientos que cumplen el filtro.
func (r *StockMovementRepo) Count(ctx context.Context, filter repository.MovementFilter) (int64, error) {
	where, args := buildMovementWhere(filter)
	var total int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return total, nil
}

// ListByMedicine devuelve todos los movimientos de un medicamento en orden de
// aplicación (más antiguo primero), para conciliación del libro.
func (r *StockMovementRepo) ListByMedicine(ctx context.Context, medicineID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT` + movementColumns + `
		FROM stock_movements
		WHERE medicine_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, medicineID)
	if err != nil {
		return nil, fmt.Errorf("list movements by medicine: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// buildMovementWhere arma la cláusula WHERE dinámica según el filtro.
func buildMovementWhere(filter repository.MovementFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}
	if filter.MedicineID != nil {
		add("medicine_id = $%d", *filter.MedicineID)
	}
	if filter.Type != nil {
		add("type = $%d", *filter.Type)
	}
	if filter.ReferenceType != nil {
		add("reference_type = $%d", *filter.ReferenceType)
	}
	if filter.DateFrom != nil {
		add("created_at >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("created_at <= $%d", *filter.DateTo)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		var (
			m                                         entity.StockMovement
			refType, refID, adjType, reason, createdBy *string
		)
		if err := rows.Scan(
			&m.ID, &m.MedicineID, &m.Type, &m.Quantity, &m.PreviousStock, &m.NewStock,
			&refType, &refID, &adjType, &reason, &m.Notes, &createdBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.ReferenceType = deref(refType)
		m.ReferenceID = deref(refID)
		m.AdjustmentType = deref(adjType)
		m.Reason = deref(reason)
		m.CreatedBy = deref(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
