package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hospimed/farmacia-api/internal/domain/entity"
	"github.com/hospimed/farmacia-api/internal/domain/repository"
)

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

// MedicineRepo implementación de MedicineRepository sobre PostgreSQL (usable con pool o tx).
type MedicineRepo struct {
	q Querier
}

// NewMedicineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMedicineRepository(q Querier) *MedicineRepo {
	return &MedicineRepo{q: q}
}

const medicineColumns = `
	m.id, m.name, m.category_id, COALESCE(c.name, ''),
	m.stock_quantity, m.reorder_level, m.unit_cost, m.sale_price,
	m.created_at, m.updated_at`

func scanMedicine(row pgx.Row) (*entity.Medicine, error) {
	var m entity.Medicine
	err := row.Scan(
		&m.ID, &m.Name, &m.CategoryID, &m.CategoryName,
		&m.StockQuantity, &m.ReorderLevel, &m.UnitCost, &m.SalePrice,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByID obtiene un medicamento por ID. Devuelve (nil, nil) si no existe.
func (r *MedicineRepo) GetByID(ctx context.Context, id string) (*entity.Medicine, error) {
	query := `
		SELECT` + medicineColumns + `
		FROM medicines m
		LEFT JOIN categories c ON c.id = m.category_id
		WHERE m.id = $1`
	m, err := scanMedicine(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medicine: %w", err)
	}
	return m, nil
}

// GetForUpdate obtiene el medicamento bloqueando su fila (SELECT FOR UPDATE).
// Serializa las mutaciones de stock del mismo medicamento; la espera por el
// bloqueo está acotada por el lock_timeout de la transacción.
func (r *MedicineRepo) GetForUpdate(ctx context.Context, id string) (*entity.Medicine, error) {
	query := `
		SELECT` + medicineColumns + `
		FROM medicines m
		LEFT JOIN categories c ON c.id = m.category_id
		WHERE m.id = $1
		FOR UPDATE OF m`
	m, err := scanMedicine(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medicine for update: %w", err)
	}
	return m, nil
}

// UpdateStock escribe la nueva cantidad. La invoca solo el libro de stock,
// dentro de la misma transacción que crea el movimiento.
func (r *MedicineRepo) UpdateStock(ctx context.Context, id string, quantity int64) error {
	query := `
		UPDATE medicines
		SET stock_quantity = $2, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, quantity)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock: medicamento %s no existe", id)
	}
	return nil
}

// List devuelve el catálogo completo ordenado por nombre.
func (r *MedicineRepo) List(ctx context.Context) ([]*entity.Medicine, error) {
	query := `
		SELECT` + medicineColumns + `
		FROM medicines m
		LEFT JOIN categories c ON c.id = m.category_id
		ORDER BY m.name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()

	var list []*entity.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
